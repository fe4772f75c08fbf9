// Package terminal renders the typing target on a raw-mode terminal and
// tracks the caret through it.
//
// Features:
//   - Length-aware styled text (visual width, never byte length)
//   - Word-wrap layout with terminal geometry validation
//   - Per-character cursor tracking across wrapped lines
//   - Raw stdin input parsing with escape sequence handling
//   - SIGWINCH resize detection
//   - Clean terminal restoration on exit/panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI
// sequences. Target environments: Linux, macOS, BSDs with xterm-compatible
// terminals.
package terminal
