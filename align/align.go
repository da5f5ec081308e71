// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package align implements a multiple sequence alignment
// of nucleotide sequences,
// and the statistics used to describe it
// for substitution model selection.
package align

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andrew-torda/matrix"
)

// Common alignment errors.
var (
	// ErrEmpty is returned by statistics
	// that require at least one column.
	ErrEmpty = errors.New("empty alignment")

	// ErrNoBases is returned when the alignment
	// does not have any nucleotide (A, C, G, or T).
	ErrNoBases = errors.New("alignment without nucleotides")
)

// An Alignment is a set of aligned sequences.
type Alignment struct {
	names []string
	seqs  [][]byte
	ids   map[string]int
}

// New creates a new empty alignment.
func New() *Alignment {
	return &Alignment{
		ids: make(map[string]int),
	}
}

// Add adds a sequence to the alignment.
// Names must be unique,
// and all sequences must have the same length.
func (a *Alignment) Add(name, seq string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("empty sequence name")
	}
	if _, dup := a.ids[name]; dup {
		return fmt.Errorf("sequence %q: repeated name", name)
	}
	if len(a.seqs) > 0 && len(seq) != len(a.seqs[0]) {
		return fmt.Errorf("sequence %q: length %d, want %d", name, len(seq), len(a.seqs[0]))
	}

	a.ids[name] = len(a.names)
	a.names = append(a.names, name)
	a.seqs = append(a.seqs, []byte(seq))
	return nil
}

// Len returns the number of sequences
// (i.e., taxa)
// in the alignment.
func (a *Alignment) Len() int {
	return len(a.seqs)
}

// NChars returns the number of columns
// of the alignment.
func (a *Alignment) NChars() int {
	if len(a.seqs) == 0 {
		return 0
	}
	return len(a.seqs[0])
}

// Names returns the sequence names
// in the alignment order.
func (a *Alignment) Names() []string {
	names := make([]string, len(a.names))
	copy(names, a.names)
	return names
}

// Seq returns the sequence with the given name.
// The returned slice should not be modified.
func (a *Alignment) Seq(name string) []byte {
	i, ok := a.ids[name]
	if !ok {
		return nil
	}
	return a.seqs[i]
}

// Column returns the characters
// at the indicated site.
func (a *Alignment) Column(i int) []byte {
	col := make([]byte, len(a.seqs))
	for j, s := range a.seqs {
		col[j] = s[i]
	}
	return col
}

// Nucleotide indexes in a count matrix.
const (
	A = iota
	C
	G
	T
)

// Bases are the nucleotides counted by the statistics,
// in count matrix order.
const Bases = "ACGT"

// BaseIndex returns the index of a nucleotide character
// (case insensitive)
// or -1 if the character is not A, C, G, or T.
func BaseIndex(c byte) int {
	switch c {
	case 'A', 'a':
		return A
	case 'C', 'c':
		return C
	case 'G', 'g':
		return G
	case 'T', 't':
		return T
	}
	return -1
}

// Counts returns a matrix with the number of
// each nucleotide at each column.
// Rows are the columns of the alignment,
// and columns are the nucleotides
// in the order A, C, G, T.
// Any other character is ignored.
func (a *Alignment) Counts() *matrix.FMatrix2d {
	counts := matrix.NewFMatrix2d(a.NChars(), len(Bases))
	for _, s := range a.seqs {
		for i, c := range s {
			b := BaseIndex(c)
			if b < 0 {
				continue
			}
			counts.Mat[i][b]++
		}
	}
	return counts
}

// Reduce returns a new alignment
// with only the sequences with the given names
// (in the original alignment order),
// and without the columns that
// after the removal of the sequences
// do not have any nucleotide
// (A, C, G, T, or U).
func (a *Alignment) Reduce(names []string) (*Alignment, error) {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := a.ids[n]; !ok {
			return nil, fmt.Errorf("sequence %q: not in alignment", n)
		}
		keep[n] = true
	}

	var rows []int
	for i, n := range a.names {
		if keep[n] {
			rows = append(rows, i)
		}
	}

	var sites []int
	for i := 0; i < a.NChars(); i++ {
		for _, r := range rows {
			if isNucleotide(a.seqs[r][i]) {
				sites = append(sites, i)
				break
			}
		}
	}

	na := New()
	for _, r := range rows {
		s := make([]byte, 0, len(sites))
		for _, i := range sites {
			s = append(s, a.seqs[r][i])
		}
		na.ids[a.names[r]] = len(na.names)
		na.names = append(na.names, a.names[r])
		na.seqs = append(na.seqs, s)
	}
	return na, nil
}

func isNucleotide(c byte) bool {
	switch c {
	case 'A', 'C', 'G', 'T', 'U', 'a', 'c', 'g', 't', 'u':
		return true
	}
	return false
}

// Validate returns the characters of the alignment
// that are neither nucleotides (A, C, G, T)
// nor gaps ('-').
// Comparison is case insensitive,
// and the returned characters are in upper case.
func (a *Alignment) Validate() []byte {
	var seen [256]bool
	for _, s := range a.seqs {
		for _, c := range s {
			if BaseIndex(c) >= 0 || c == '-' {
				continue
			}
			if 'a' <= c && c <= 'z' {
				c -= 'a' - 'A'
			}
			seen[c] = true
		}
	}

	var bad []byte
	for c, ok := range seen {
		if ok {
			bad = append(bad, byte(c))
		}
	}
	return bad
}
