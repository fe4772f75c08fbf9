package terminal

import "strconv"

// Color is a 256-palette foreground color index. The first eight values
// cover every style the tester uses; the full palette works the same way.
type Color uint8

const (
	ColorBlack Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// fg returns the SGR sequence selecting c as the foreground color
func (c Color) fg() string {
	return sgrFg256 + strconv.Itoa(int(c)) + "m"
}
