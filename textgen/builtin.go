package textgen

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed word_lists
var builtinLists embed.FS

// BuiltinNames lists the word lists bundled into the binary, sorted for
// stable help output.
func BuiltinNames() []string {
	entries, err := builtinLists.ReadDir("word_lists")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// Builtin returns a selector over one of the bundled word lists.
func Builtin(name string) (*ListSelector, error) {
	f, err := builtinLists.Open("word_lists/" + name)
	if err != nil {
		return nil, fmt.Errorf("unknown word list %q, valid lists: %s",
			name, strings.Join(BuiltinNames(), ", "))
	}
	defer f.Close()

	s, err := FromReader(f)
	if err != nil {
		return nil, fmt.Errorf("word list %s: %w", name, err)
	}
	return s, nil
}
