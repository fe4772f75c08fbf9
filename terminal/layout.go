package terminal

import (
	"fmt"
	"strings"
)

const (
	// minLineWidth is the absolute floor on usable terminal columns
	minLineWidth = 50

	// maxWordsPerLine caps how many words a wrapped line may hold
	maxWordsPerLine = 10
)

// GeometryError reports a terminal too small for the requested word block.
// It carries the required and actual measurement so the caller can show a
// corrective message instead of a generic I/O failure.
type GeometryError struct {
	Dim      string // "rows" or "columns"
	Required int
	Actual   int
}

func (e *GeometryError) Error() string {
	if e.Dim == "rows" {
		return fmt.Sprintf("terminal height too short: typeing needs at least %d rows, got %d", e.Required, e.Actual)
	}
	return fmt.Sprintf("terminal width too low: typeing needs at least %d columns, got %d", e.Required, e.Actual)
}

// wrapWords partitions words into faint display lines that fit the terminal.
//
// Lines target 40% of the terminal width and at most maxWordsPerLine words.
// Every line except the last ends with one trailing space, because the user
// instinctively types a space after each word. The width cap only prevents
// adding further words to a line; a single over-long word still occupies its
// own line untruncated.
//
// reservedRows counts rows already consumed by other on-screen content
// (the bottom status block). Validation accounts for them plus a two-row
// margin around the block.
func wrapWords(words []string, width, height, reservedRows int) ([]Text, error) {
	maxWidth := width * 2 / 5

	var (
		lines   []Text
		line    []string
		lineLen int // running width including one trailing space per word
		longest int // longest word incl. its trailing space
	)

	for _, word := range words {
		wl := len(word) + 1
		if wl > longest {
			longest = wl
		}
		if len(line) > 0 && (len(line) >= maxWordsPerLine || lineLen+wl > maxWidth) {
			lines = append(lines, NewText(strings.Join(line, " ")+" ").WithFaint())
			line = nil
			lineLen = 0
		}
		line = append(line, word)
		lineLen += wl
	}
	// Last line carries no trailing space
	lines = append(lines, NewText(strings.Join(line, " ")).WithFaint())

	minCols := longest + 1
	if minCols < minLineWidth {
		minCols = minLineWidth
	}

	if need := len(lines) + reservedRows + 2; need > height {
		return nil, &GeometryError{Dim: "rows", Required: need, Actual: height}
	}
	if minCols > width {
		return nil, &GeometryError{Dim: "columns", Required: minCols, Actual: width}
	}

	return lines, nil
}
