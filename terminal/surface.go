package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// ResizeEvent carries the new terminal dimensions after a SIGWINCH
type ResizeEvent struct {
	Width  int
	Height int
}

// Surface owns the raw-mode terminal for the process's interactive
// lifetime. It renders centered word blocks, keeps the cursor tracker in
// sync with the rendered geometry, and guarantees the terminal is restored
// to a sane state when closed.
//
// All mutation of the tracker and the bottom-row reservation goes through
// Surface methods; every public operation flushes before returning so the
// terminal reflects state immediately.
type Surface struct {
	backend Backend
	w       *bufio.Writer
	tracker cursorTracker
	reader  *Reader

	// recording is true only for the duration of a single DisplayWords
	// call; line geometry captured outside it would corrupt the tracker
	recording  bool
	bottomRows int

	// Hardware cursor position, tracked arithmetically from our own
	// writes. No DSR query round-trip.
	curX, curY int

	resizeCh chan ResizeEvent

	initialized bool
	closed      bool
}

// NewSurface creates a surface over the process's controlling terminal
func NewSurface() *Surface {
	return NewSurfaceWithBackend(newBackend())
}

// NewSurfaceWithBackend creates a surface over the given backend.
// Tests use this with an in-memory backend.
func NewSurfaceWithBackend(b Backend) *Surface {
	return &Surface{
		backend:  b,
		w:        bufio.NewWriterSize(b, 32*1024),
		resizeCh: make(chan ResizeEvent, 1),
	}
}

// Init enters raw mode and installs the resize handler
func (s *Surface) Init() error {
	if err := s.backend.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}

	s.backend.SetResizeHandler(func(w, h int) {
		// Non-blocking send; drain and replace so the latest size wins
		select {
		case s.resizeCh <- ResizeEvent{Width: w, Height: h}:
		default:
			select {
			case <-s.resizeCh:
			default:
			}
			select {
			case s.resizeCh <- ResizeEvent{Width: w, Height: h}:
			default:
			}
		}
	})

	s.initialized = true
	return nil
}

// Close restores the terminal: screen cleared, steady block cursor, cursor
// visible at the top-left, attributes reset, raw mode left. Safe to call
// multiple times; runs the restore even when the in-progress render failed.
func (s *Surface) Close() error {
	if !s.initialized || s.closed {
		return nil
	}
	s.closed = true

	if s.reader != nil {
		s.reader.Stop()
	}

	s.w.Write(csiSGR0)
	s.w.Write(csiClear)
	s.w.Write(csiCursorSteadyBlock)
	s.w.Write(csiCursorShow)
	err := s.w.Flush()

	s.backend.Fini()

	if err != nil {
		// Nothing further can correct a failed restore
		return fmt.Errorf("terminal restore: %w", err)
	}
	return nil
}

// Input returns the raw input reader sharing this surface's terminal
// handle, creating and starting it on first use.
func (s *Surface) Input() *Reader {
	if s.reader == nil {
		s.reader = newReader(s.backend)
		s.reader.Start()
	}
	return s.reader
}

// ResizeChan returns the channel receiving terminal resize events
func (s *Surface) ResizeChan() <-chan ResizeEvent {
	return s.resizeCh
}

// Size returns the terminal dimensions (columns, rows)
func (s *Surface) Size() (int, int) {
	return s.backend.Size()
}

// ResetScreen clears the whole screen and parks a blinking bar caret at the
// terminal's geometric center; the idle state between tests
func (s *Surface) ResetScreen() error {
	w, h := s.backend.Size()
	s.w.Write(csiClear)
	s.curX, s.curY = 0, 0
	s.moveTo(w/2, h/2)
	s.w.Write(csiCursorBlinkingBar)
	return s.flush()
}

// DisplayLine writes one horizontally centered row of text at the current
// cursor row
func (s *Surface) DisplayLine(ts []Text) error {
	s.displayLine(ts)
	return s.flush()
}

// displayLine is DisplayLine without the flush. The cursor moves left by
// half the row's visual width before writing and left by the full width
// after, so subsequent absolute positioning is unaffected. While recording,
// the row's start coordinates and visual length go into the tracker first.
func (s *Surface) displayLine(ts []Text) {
	width := TextsWidth(ts)
	s.cursorLeft(width / 2)

	if s.recording {
		s.tracker.recordLine(s.curX, s.curY, width)
	}

	for _, t := range ts {
		s.w.WriteString(t.Raw())
	}
	s.curX += width

	s.cursorLeft(width)
}

// DisplayLines renders a block of rows vertically centered around
// mid-screen, each row horizontally centered
func (s *Surface) DisplayLines(lines [][]Text) error {
	w, h := s.backend.Size()
	offset := len(lines) / 2

	for i, line := range lines {
		s.moveTo(w/2, h/2+i-offset)
		s.displayLine(line)
	}
	return s.flush()
}

// DisplayLinesBottom renders a block of rows anchored above the bottom of
// the screen (status/help text) and reserves their row count so a later
// word-block render validates against the remaining height
func (s *Surface) DisplayLinesBottom(lines [][]Text) error {
	w, h := s.backend.Size()
	s.bottomRows = len(lines)

	for i, line := range lines {
		s.moveTo(w/2, h-2+i-len(lines))
		s.displayLine(line)
	}
	return s.flush()
}

// DisplayWords is the primary entry point: it wraps words against the live
// terminal geometry, renders the resulting faint lines centered while
// recording their geometry, and leaves the hardware cursor on the block's
// first character.
//
// The rendered lines come back to the caller, which keeps their plain-text
// content as the ground truth for correctness checking. A terminal too
// small for the block surfaces as *GeometryError.
func (s *Surface) DisplayWords(words []string) ([]Text, error) {
	s.tracker.reset()

	w, h := s.backend.Size()
	lines, err := wrapWords(words, w, h, s.bottomRows)
	if err != nil {
		return nil, err
	}

	rows := make([][]Text, len(lines))
	for i, line := range lines {
		rows[i] = []Text{line}
	}

	s.recording = true
	err = s.DisplayLines(rows)
	s.recording = false
	if err != nil {
		return nil, err
	}

	if err := s.MoveToCurPos(); err != nil {
		return nil, err
	}
	return lines, nil
}

// DisplayRawText writes a text at the hardware cursor position, emitting
// its display form verbatim
func (s *Surface) DisplayRawText(t Text) error {
	s.w.WriteString(t.Raw())
	s.curX += t.Width()
	return s.flush()
}

// ReplaceText retreats one logical character and repaints it with the
// given text, leaving the hardware cursor on the repainted character.
// The keystroke loop uses this to restore a character to its untyped
// style on backspace without disturbing layout.
func (s *Surface) ReplaceText(t Text) error {
	x, y := s.tracker.prev()
	s.moveTo(x, y)
	s.w.WriteString(t.Raw())
	s.curX += t.Width()
	x, y = s.tracker.pos()
	s.moveTo(x, y)
	return s.flush()
}

// MoveToNextChar advances the logical cursor one character, clamping at
// the block's final character, and moves the hardware cursor there
func (s *Surface) MoveToNextChar() error {
	x, y := s.tracker.next()
	s.moveTo(x, y)
	return s.flush()
}

// MoveToPrevChar retreats the logical cursor one character, clamping at
// the block's first character, and moves the hardware cursor there
func (s *Surface) MoveToPrevChar() error {
	x, y := s.tracker.prev()
	s.moveTo(x, y)
	return s.flush()
}

// MoveToCurPos moves the hardware cursor to the current logical position
func (s *Surface) MoveToCurPos() error {
	x, y := s.tracker.pos()
	s.moveTo(x, y)
	return s.flush()
}

// CurrentLine returns the logical line index the cursor is on
func (s *Surface) CurrentLine() int {
	return s.tracker.curLine
}

// AtLastChar reports whether the cursor sits on the block's final
// character. Navigation clamps there rather than signaling, so the
// keystroke loop observes the boundary through this.
func (s *Surface) AtLastChar() bool {
	return s.tracker.atEnd()
}

// HideCursor hides the hardware cursor
func (s *Surface) HideCursor() error {
	s.w.Write(csiCursorHide)
	return s.flush()
}

// ShowCursor shows the hardware cursor
func (s *Surface) ShowCursor() error {
	s.w.Write(csiCursorShow)
	return s.flush()
}

// moveTo positions the hardware cursor at absolute 0-indexed coordinates
func (s *Surface) moveTo(x, y int) {
	writeCursorPos(s.w, x, y)
	s.curX, s.curY = x, y
}

// cursorLeft moves the hardware cursor n columns left
func (s *Surface) cursorLeft(n int) {
	if n <= 0 {
		return
	}
	writeCursorLeft(s.w, n)
	s.curX -= n
	if s.curX < 0 {
		s.curX = 0
	}
}

func (s *Surface) flush() error {
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("terminal write: %w", err)
	}
	return nil
}

// EmergencyReset attempts to restore the terminal to a sane state.
// Called from panic recovery when Close cannot run normally.
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiCursorSteadyBlock)
	w.Write(csiSGR0)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios; best-effort, errors
	// ignored in crash context
	resetTerminalMode()
}
