// Copyright © 2018 The ELPS authors

package repl

import (
	"strings"

	"github.com/luthersystems/lispy/lisp"
)

// builtinCompleter implements readline.AutoCompleter by enumerating builtin
// names and aliases.
type builtinCompleter struct{}

func (c *builtinCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed (backwards from cursor to whitespace or an
	// open bracket).
	start := pos
	for start > 0 {
		ch := line[start-1]
		if ch == ' ' || ch == '\t' || ch == '(' || ch == '{' || ch == '\n' {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collectNames(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}

	// Build completions: each entry is the suffix to append.
	result := make([][]rune, 0, len(candidates))
	for _, name := range candidates {
		result = append(result, []rune(name[len(prefix):]))
	}
	return result, len(prefix)
}

func (c *builtinCompleter) collectNames(prefix string) []string {
	var result []string
	for _, name := range lisp.BuiltinNames() {
		if strings.HasPrefix(name, prefix) {
			result = append(result, name)
		}
	}
	return result
}
