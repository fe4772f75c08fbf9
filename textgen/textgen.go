// Package textgen produces the word sequences a typing test is run
// against, drawing either from lists bundled into the binary or from
// dictionary files on disk.
package textgen

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
)

// OSWordlistPath is the conventional location of the system dictionary
// on Unix-like hosts.
const OSWordlistPath = "/usr/share/dict/words"

// WordSelector yields n words for a single test round. Selections are
// independent, so repeated words are possible.
type WordSelector interface {
	Select(n int) ([]string, error)
}

// ListSelector picks uniformly at random from a fixed word list.
type ListSelector struct {
	words []string
}

// NewListSelector wraps an in-memory word list. The list must not be
// empty.
func NewListSelector(words []string) (*ListSelector, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return &ListSelector{words: words}, nil
}

// FromReader builds a selector from newline-separated words. Blank
// lines and entries containing whitespace are skipped, and words are
// lowercased so dictionaries with proper nouns stay typeable.
func FromReader(r io.Reader) (*ListSelector, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.ContainsAny(w, " \t") {
			continue
		}
		words = append(words, strings.ToLower(w))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return NewListSelector(words)
}

// FromFile builds a selector from a newline-separated word file.
func FromFile(path string) (*ListSelector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	s, err := FromReader(f)
	if err != nil {
		return nil, fmt.Errorf("word list %s: %w", path, err)
	}
	return s, nil
}

func (s *ListSelector) Select(n int) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("word count must be positive, got %d", n)
	}
	words := make([]string, n)
	for i := range words {
		words[i] = s.words[rand.Intn(len(s.words))]
	}
	return words, nil
}

// Len reports the number of distinct entries the selector draws from.
func (s *ListSelector) Len() int { return len(s.words) }
