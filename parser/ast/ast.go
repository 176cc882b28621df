// Copyright © 2018 The ELPS authors

// Package ast defines the syntax tree produced by a lispy reader.  A tree is
// made of tagged nodes carrying their literal text and ordered children, the
// shape the value builder in package lisp consumes.
package ast

import (
	"bytes"
	"fmt"
)

// Kind tags a syntax Node.
type Kind uint

// Possible Kind values
const (
	// Invalid (0) is not a valid node kind.
	Invalid Kind = iota
	// Root is the top level node of a read.  Its children are the
	// expressions read, bracketed by Aux anchor nodes.
	Root
	// Number is a numeric literal leaf.  Text holds the literal source.
	Number
	// Symbol is an identifier leaf.
	Symbol
	// SExpr is a parenthesized expression.  Its first and last children are
	// Delim nodes.
	SExpr
	// QExpr is a braced expression.  Its first and last children are Delim
	// nodes.
	QExpr
	// Delim is a bracket token: one of ( ) { }.
	Delim
	// Aux nodes carry no value (input anchors).
	Aux
)

var kindStrings = []string{
	Invalid: "INVALID",
	Root:    ">",
	Number:  "number",
	Symbol:  "symbol",
	SExpr:   "sexpr",
	QExpr:   "qexpr",
	Delim:   "char",
	Aux:     "regex",
}

func (k Kind) String() string {
	if int(k) >= len(kindStrings) {
		return kindStrings[Invalid]
	}
	return kindStrings[k]
}

// Node is a syntax tree node.
type Node struct {
	Kind     Kind
	Text     string
	Children []*Node
}

// Leaf returns a childless node.
func Leaf(kind Kind, text string) *Node {
	return &Node{Kind: kind, Text: text}
}

// Branch returns an internal node with the given children.
func Branch(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// IsLeaf returns true if n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Dump returns an indented, one node per line rendering of the tree rooted
// at n.  It is intended for troubleshooting.
func (n *Node) Dump() string {
	var buf bytes.Buffer
	n.dump(&buf, "")
	return buf.String()
}

func (n *Node) dump(buf *bytes.Buffer, indent string) {
	if n.IsLeaf() {
		fmt.Fprintf(buf, "%s%s '%s'\n", indent, n.Kind, n.Text)
		return
	}
	fmt.Fprintf(buf, "%s%s\n", indent, n.Kind)
	for _, c := range n.Children {
		c.dump(buf, indent+"  ")
	}
}
