// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseNewick reads a tree in Newick
// (parenthetical)
// format.
//
// Internal nodes can have labels,
// labels can be quoted with single quotes,
// and comments (in square brackets) are ignored.
// Branches without an explicit length
// have a length of DefaultLen.
func ParseNewick(r io.Reader) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	p := &parser{s: data}
	p.skip()
	if p.eof() {
		return nil, errors.New("newick: empty tree")
	}

	root, err := p.node(nil)
	if err != nil {
		return nil, err
	}
	p.skip()
	if !p.eof() {
		if p.s[p.pos] != ';' {
			return nil, p.errorf("expecting ';', found %q", p.s[p.pos])
		}
		p.pos++
		p.skip()
		if !p.eof() {
			return nil, p.errorf("unexpected data after end of tree")
		}
	}
	return New(root), nil
}

type parser struct {
	s   []byte
	pos int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.s)
}

func (p *parser) errorf(format string, a ...any) error {
	return fmt.Errorf("newick: at byte %d: %s", p.pos, fmt.Sprintf(format, a...))
}

// skip skips spaces and comments.
func (p *parser) skip() {
	for !p.eof() {
		c := p.s[p.pos]
		if c == '[' {
			end := strings.IndexByte(string(p.s[p.pos:]), ']')
			if end < 0 {
				p.pos = len(p.s)
				return
			}
			p.pos += end + 1
			continue
		}
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return
		}
		p.pos++
	}
}

func (p *parser) node(parent *Node) (*Node, error) {
	n := &Node{
		Len:    DefaultLen,
		Parent: parent,
	}

	p.skip()
	if !p.eof() && p.s[p.pos] == '(' {
		p.pos++
		for {
			c, err := p.node(n)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, c)

			p.skip()
			if p.eof() {
				return nil, p.errorf("unexpected end of tree")
			}
			d := p.s[p.pos]
			p.pos++
			if d == ',' {
				continue
			}
			if d == ')' {
				break
			}
			return nil, p.errorf("unexpected character %q", d)
		}
	}

	name, err := p.label()
	if err != nil {
		return nil, err
	}
	n.Name = name

	p.skip()
	if !p.eof() && p.s[p.pos] == ':' {
		p.pos++
		p.skip()
		start := p.pos
		for !p.eof() && !isDelim(p.s[p.pos]) {
			p.pos++
		}
		v := string(p.s[start:p.pos])
		l, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, p.errorf("invalid branch length %q", v)
		}
		if l < 0 {
			return nil, p.errorf("negative branch length %q", v)
		}
		n.Len = l
	}
	return n, nil
}

func (p *parser) label() (string, error) {
	p.skip()
	if p.eof() {
		return "", nil
	}
	if p.s[p.pos] == '\'' {
		p.pos++
		var b strings.Builder
		for {
			if p.eof() {
				return "", p.errorf("unterminated quoted label")
			}
			c := p.s[p.pos]
			p.pos++
			if c == '\'' {
				if !p.eof() && p.s[p.pos] == '\'' {
					b.WriteByte('\'')
					p.pos++
					continue
				}
				return b.String(), nil
			}
			b.WriteByte(c)
		}
	}

	start := p.pos
	for !p.eof() && !isDelim(p.s[p.pos]) {
		p.pos++
	}
	return string(p.s[start:p.pos]), nil
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', ',', ':', ';', '[', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// Newick writes a tree in Newick format.
// The length of the root is written
// only if it is different from DefaultLen.
func (t *Tree) Newick(w io.Writer) error {
	bw := bufio.NewWriter(w)
	writeNode(bw, t.root)
	bw.WriteString(";\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing tree: %v", err)
	}
	return nil
}

// String returns the tree in Newick format.
func (t *Tree) String() string {
	var b strings.Builder
	t.Newick(&b)
	return strings.TrimSpace(b.String())
}

func writeNode(w *bufio.Writer, n *Node) {
	if !n.IsLeaf() {
		w.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				w.WriteByte(',')
			}
			writeNode(w, c)
		}
		w.WriteByte(')')
	}
	w.WriteString(quote(n.Name))
	if n.IsRoot() && n.Len == DefaultLen {
		return
	}
	w.WriteByte(':')
	w.WriteString(strconv.FormatFloat(n.Len, 'g', -1, 64))
}

func quote(name string) string {
	if !strings.ContainsAny(name, "()[],:;' \t\n\r") {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
