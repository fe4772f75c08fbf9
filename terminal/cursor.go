package terminal

// linePos locates one rendered line of the word block
type linePos struct {
	x      int // terminal column of the line's first character (0-indexed)
	y      int // terminal row of the line (0-indexed)
	length int // characters on the line, always >= 1
}

// cursorTracker maps a logical position inside the wrapped word block
// (line index, column within line) to absolute terminal coordinates.
// It decouples "the Nth character of the block" from "what cell is that
// on screen": the keystroke loop reasons purely in forward/backward
// moves while the renderer owns the wrapping geometry.
//
// Navigation clamps at the first and last character; it never wraps
// around the block.
type cursorTracker struct {
	lines   []linePos
	curLine int
	curChar int
}

// reset clears all tracked lines before a new word-block render
func (c *cursorTracker) reset() {
	*c = cursorTracker{}
}

// recordLine appends one rendered line, in top-to-bottom visual order.
// Empty lines are not tracked.
func (c *cursorTracker) recordLine(x, y, length int) {
	if length < 1 {
		return
	}
	c.lines = append(c.lines, linePos{x: x, y: y, length: length})
}

// next advances one character, wrapping to the next line where the layout
// placed the break, and returns the resulting terminal coordinates
func (c *cursorTracker) next() (int, int) {
	if len(c.lines) == 0 {
		return 0, 0
	}
	line := c.lines[c.curLine]
	if c.curChar < line.length-1 {
		c.curChar++
	} else if c.curLine+1 < len(c.lines) {
		c.curLine++
		c.curChar = 0
	}
	return c.pos()
}

// prev retreats one character, wrapping to the previous line's last
// character, and returns the resulting terminal coordinates
func (c *cursorTracker) prev() (int, int) {
	if len(c.lines) == 0 {
		return 0, 0
	}
	if c.curChar > 0 {
		c.curChar--
	} else if c.curLine > 0 {
		c.curLine--
		c.curChar = c.lines[c.curLine].length - 1
	}
	return c.pos()
}

// pos returns the absolute terminal coordinates of the current character
// without mutating state
func (c *cursorTracker) pos() (int, int) {
	if len(c.lines) == 0 {
		return 0, 0
	}
	line := c.lines[c.curLine]
	return line.x + c.curChar, line.y
}

// atEnd reports whether the cursor sits on the block's final character
func (c *cursorTracker) atEnd() bool {
	if len(c.lines) == 0 {
		return true
	}
	return c.curLine == len(c.lines)-1 && c.curChar == c.lines[c.curLine].length-1
}
