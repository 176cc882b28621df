// Copyright © 2021 The ELPS authors

// Package libhelp renders documentation for lispy builtins.
package libhelp

import (
	"fmt"
	"io"
	"strings"

	"github.com/luthersystems/lispy/lisp"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// DocWidth is the column at which documentation is wrapped.
const DocWidth = 72

// CheckMissing returns the names of builtins missing documentation.
func CheckMissing() []string {
	var missing []string
	for _, b := range lisp.Builtins() {
		if strings.TrimSpace(b.Doc()) == "" {
			missing = append(missing, b.String())
		}
	}
	return missing
}

// RenderBuiltinList writes a summary of all builtins to w.  Each builtin is
// listed with its name, aliases and the first sentence of its doc string.
func RenderBuiltinList(w io.Writer) error {
	for _, b := range lisp.Builtins() {
		line := fmt.Sprintf("  %-6s", b)
		if aliases := b.Aliases(); len(aliases) > 0 {
			line += fmt.Sprintf(" %-10s", strings.Join(aliases, ","))
		} else {
			line += fmt.Sprintf(" %-10s", "")
		}
		line += "  " + firstSentence(b.Doc())
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// RenderBuiltin writes to w formatted documentation for the builtin named
// by query, which may be an alias.  The exact formatting of the rendered
// documentation is subject to change across lispy versions.
func RenderBuiltin(w io.Writer, query string) error {
	b, ok := lisp.LookupBuiltin(query)
	if !ok {
		return fmt.Errorf("no builtin: %q", query)
	}
	_, err := fmt.Fprintf(w, "builtin %s\n", b.Formals())
	if err != nil {
		return fmt.Errorf("rendering signature: %w", err)
	}
	if doc := cleanDocstring(b.Doc()); doc != "" {
		_, err = fmt.Fprintln(w, doc)
		if err != nil {
			return err
		}
	}
	if aliases := b.Aliases(); len(aliases) > 0 {
		_, err = fmt.Fprintf(w, "\n  Aliases: %s\n", strings.Join(aliases, " "))
	}
	return err
}

func firstSentence(doc string) string {
	doc = strings.Join(strings.Fields(doc), " ")
	if i := strings.Index(doc, ". "); i >= 0 {
		return doc[:i+1]
	}
	return doc
}

func cleanDocstring(doc string) string {
	if doc == "" {
		return ""
	}
	if doc[0] == '\n' {
		doc = doc[1:]
	}
	doc = indent.String(wordwrap.String(dedentDoc(doc), DocWidth), 2)
	doc = strings.TrimSuffix(doc, "\n")
	return doc
}

// dedentDoc removes common leading whitespace from all non-empty lines.
// The first line of a raw string literal is not indented so it is skipped
// when measuring.  Tabs are normalized to spaces before processing.
func dedentDoc(s string) string {
	s = strings.ReplaceAll(s, "\t", "    ")
	lines := strings.Split(s, "\n")

	minWS := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		ws := len(line) - len(trimmed)
		if minWS < 0 || ws < minWS {
			minWS = ws
		}
	}

	lines[0] = strings.TrimLeft(lines[0], " ")
	for i := 1; i < len(lines); i++ {
		switch {
		case strings.TrimSpace(lines[i]) == "":
			lines[i] = ""
		case minWS > 0:
			lines[i] = lines[i][minWS:]
		}
	}
	return strings.Join(lines, "\n")
}
