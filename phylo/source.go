// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import (
	"fmt"
	"os"
	"strings"
)

type sourceKind int

const (
	parsedSource sourceKind = iota
	fileSource
	newickSource
)

// A Source is the origin of a tree:
// an already parsed tree,
// a file with a Newick tree,
// or a Newick string.
type Source struct {
	kind sourceKind
	tree *Tree
	text string
}

// FromTree returns a source for an already parsed tree.
func FromTree(t *Tree) Source {
	return Source{kind: parsedSource, tree: t}
}

// FromFile returns a source for a file
// that contains a single Newick tree.
func FromFile(name string) Source {
	return Source{kind: fileSource, text: name}
}

// FromNewick returns a source for a Newick string.
func FromNewick(newick string) Source {
	return Source{kind: newickSource, text: newick}
}

// String returns a description of the source.
func (s Source) String() string {
	switch s.kind {
	case parsedSource:
		return "parsed tree"
	case fileSource:
		return fmt.Sprintf("file %q", s.text)
	}
	return "newick string"
}

// Parse returns the tree of a source.
// If the source is an already parsed tree,
// the same tree is returned.
func Parse(s Source) (*Tree, error) {
	switch s.kind {
	case parsedSource:
		if s.tree == nil {
			return nil, fmt.Errorf("%s: nil tree", s)
		}
		return s.tree, nil
	case fileSource:
		return ReadNewick(s.text)
	}

	t, err := ParseNewick(strings.NewReader(s.text))
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ReadNewick reads a file
// that contains a single Newick tree.
func ReadNewick(name string) (*Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ParseNewick(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return t, nil
}
