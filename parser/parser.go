// Copyright © 2018 The ELPS authors

// Package parser provides a lispy parser.
//
//	lispy  := /^/ <expr>* /$/
//	expr   := <number> | <symbol> | <sexpr> | <qexpr>
//	sexpr  := '(' <expr>* ')'
//	qexpr  := '{' <expr>* '}'
//	number := /-?([0-9]*[.])?[0-9]+/
//	symbol := /[a-zA-Z_][a-zA-Z0-9_]*/ | /[+\-*\/%^]/
//
// The parser produces ast.Node trees.  Numbers with a fractional part are
// accepted by the grammar and left for the value builder to reject.
package parser

import (
	"fmt"
	"io"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser/ast"
	parsec "github.com/prataprc/goparsec"
)

// NewReader returns a lisp.Reader.
func NewReader() lisp.Reader {
	return &parsecReader{}
}

type parsecReader struct{}

func (p *parsecReader) Read(name string, r io.Reader) (*ast.Node, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	root, _, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", name, err)
	}
	return root, nil
}

// Parse parses every expression in text and returns them as the children of
// an ast.Root node.  The number of bytes consumed is returned along with any
// error that was encountered.
func Parse(text []byte) (*ast.Node, int, error) {
	root := ast.Branch(ast.Root, ast.Leaf(ast.Aux, "^"))

	s := parsec.NewScanner(text)
	s = s.TrackLineno()
	parser := newParsecParser()
	node, s := parser(s)
	for node != nil {
		n, ok := node.(*ast.Node)
		if !ok {
			return nil, s.GetCursor(), fmt.Errorf("%d: unexpected parse node %T", s.Lineno(), node)
		}
		root.Children = append(root.Children, n)
		node, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		b, _ := s.Match(`.{1,16}`)
		if len(b) > 15 {
			b = append(b[:15:15], []byte("...")...)
		}
		return nil, s.GetCursor(), fmt.Errorf("%d: unexpected source text possibly starting: %s", s.Lineno(), b)
	}
	root.Children = append(root.Children, ast.Leaf(ast.Aux, "$"))
	return root, s.GetCursor(), nil
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	openB := parsec.Atom("{", "OPENB")
	closeB := parsec.Atom("}", "CLOSEB")
	number := parsec.Token(`-?([0-9]*[.])?[0-9]+`, "NUMBER")
	symbol := parsec.Token(`[a-zA-Z_][a-zA-Z0-9_]*|[+\-*/%^]`, "SYMBOL")
	term := parsec.OrdChoice(termNode,
		number,
		symbol, // symbol comes last so that -1 reads as a number
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	sexpr := parsec.And(branchNode(ast.SExpr), openP, exprList, closeP)
	qexpr := parsec.And(branchNode(ast.QExpr), openB, exprList, closeB)
	expr = parsec.OrdChoice(exprNode,
		term,
		sexpr,
		qexpr,
	)
	return expr
}

func termNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	if len(nodes) == 0 {
		return nil
	}
	term, ok := nodes[0].(*parsec.Terminal)
	if !ok {
		return nil
	}
	switch term.GetName() {
	case "NUMBER":
		return ast.Leaf(ast.Number, term.GetValue())
	case "SYMBOL":
		return ast.Leaf(ast.Symbol, term.GetValue())
	default:
		return nil
	}
}

// exprNode unwraps the single alternative matched by an OrdChoice.
func exprNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = flattenNodes(nodes)
	if len(nodes) != 1 {
		return nil
	}
	return nodes[0]
}

func branchNode(kind ast.Kind) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		n := ast.Branch(kind)
		for _, c := range flattenNodes(nodes) {
			switch c := c.(type) {
			case *parsec.Terminal:
				n.Children = append(n.Children, ast.Leaf(ast.Delim, c.GetValue()))
			case *ast.Node:
				n.Children = append(n.Children, c)
			}
		}
		return n
	}
}

// flattenNodes removes the nesting introduced by combinators without a
// Nodify function.
func flattenNodes(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, flattenNodes(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}
