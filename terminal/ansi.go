package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csi      = []byte("\x1b[")
	csiClear = []byte("\x1b[2J\x1b[H")
	csiSGR0  = []byte("\x1b[0m")
	csiRIS   = []byte("\x1bc") // Reset to Initial State (emergency)

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Cursor shape (DECSCUSR)
	csiCursorBlinkingBar = []byte("\x1b[5 q")
	csiCursorSteadyBlock = []byte("\x1b[2 q")
)

// SGR enable/disable pairs used by Text styling. Each style wraps the raw
// form in exactly one pair so styled texts nest without resetting each other.
const (
	sgrFaint       = "\x1b[2m"
	sgrNoFaint     = "\x1b[22m"
	sgrUnderline   = "\x1b[4m"
	sgrNoUnderline = "\x1b[24m"
	sgrFg256       = "\x1b[38;5;" // followed by N and 'm'
	sgrFgDefault   = "\x1b[39m"
)

// writeInt writes an integer without allocation
// Optimized for terminal coordinates (0-999 typical max)
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	// Fallback for >999 (rare)
	var buf [8]byte
	i := 7
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeCursorPos writes a cursor positioning sequence (0-indexed input)
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csi)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeCursorLeft writes a cursor-left-by-N sequence.
// CSI D treats a parameter of 0 as 1, so n <= 0 writes nothing.
func writeCursorLeft(w *bufio.Writer, n int) {
	if n <= 0 {
		return
	}
	if n == 1 {
		w.Write([]byte("\x1b[D"))
		return
	}
	w.Write(csi)
	writeInt(w, n)
	w.WriteByte('D')
}
