package terminal

import (
	runewidth "github.com/mattn/go-runewidth"
)

// Text holds one run of display-ready text together with its styling-free
// content and the number of glyph columns it occupies on screen. A Text
// carries exactly one style combination; render a slice of Text when parts
// of a row need different styles.
//
// The zero value is an empty, unstyled Text.
type Text struct {
	raw   string // display form, may contain SGR sequences
	plain string // styling-free form
	width int    // glyph columns of the plain form
}

// NewText constructs a Text from a plain string.
// The caller must make sure s contains no styling sequences, zero-width
// characters, or multi-column glyphs.
func NewText(s string) Text {
	return Text{
		raw:   s,
		plain: s,
		width: runewidth.StringWidth(s),
	}
}

// Raw returns the display form, including any styling sequences.
// Rendering emits this verbatim.
func (t Text) Raw() string {
	return t.raw
}

// Plain returns the styling-free text.
func (t Text) Plain() string {
	return t.plain
}

// Width returns the glyph columns the plain form occupies on screen.
// Styling never changes it.
func (t Text) Width() int {
	return t.width
}

// WithFaint returns a copy rendered with reduced intensity
func (t Text) WithFaint() Text {
	t.raw = sgrFaint + t.raw + sgrNoFaint
	return t
}

// WithUnderline returns an underlined copy
func (t Text) WithUnderline() Text {
	t.raw = sgrUnderline + t.raw + sgrNoUnderline
	return t
}

// WithColor returns a copy rendered in the given foreground color
func (t Text) WithColor(c Color) Text {
	t.raw = c.fg() + t.raw + sgrFgDefault
	return t
}

// TextsWidth returns the total visual width of a row of texts. Every
// centering and fit computation uses this, never the byte length of the
// raw forms.
func TextsWidth(ts []Text) int {
	n := 0
	for _, t := range ts {
		n += t.width
	}
	return n
}
