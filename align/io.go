// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package align

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
)

// Format is an alignment file format.
type Format string

// Valid alignment formats.
const (
	FASTA            Format = "fasta"
	PhylipRelaxed    Format = "phylip-relaxed"
	PhylipSequential Format = "phylip-sequential"
)

// Formats are the formats tried when reading an alignment,
// in the order they are tried.
var Formats = []Format{
	FASTA,
	PhylipRelaxed,
	PhylipSequential,
}

// Read reads an alignment from a file.
//
// Each format in Formats is tried in order,
// and the first one that produces a valid alignment
// is returned.
func Read(name string) (*Alignment, Format, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, "", err
	}
	if info.Size() == 0 {
		return nil, "", fmt.Errorf("on file %q: empty file", name)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, "", fmt.Errorf("on file %q: %v", name, err)
	}
	defer m.Unmap()

	a, format, err := Parse(m)
	if err != nil {
		return nil, "", fmt.Errorf("on file %q: %v", name, err)
	}
	return a, format, nil
}

// Parse parses an alignment
// trying each format in Formats.
func Parse(data []byte) (*Alignment, Format, error) {
	var errs []error
	for _, f := range Formats {
		a, err := ParseFormat(bytes.NewReader(data), f)
		if err == nil {
			return a, f, nil
		}
		errs = append(errs, fmt.Errorf("as %s: %v", f, err))
	}
	return nil, "", fmt.Errorf("not a valid alignment: %w", errors.Join(errs...))
}

// ParseFormat reads an alignment in the given format.
func ParseFormat(r io.Reader, f Format) (*Alignment, error) {
	switch f {
	case FASTA:
		return ReadFASTA(r)
	case PhylipRelaxed:
		return ReadPhylip(r, true)
	case PhylipSequential:
		return ReadPhylip(r, false)
	}
	return nil, fmt.Errorf("unknown format %q", f)
}

// ReadFASTA reads an alignment in FASTA format.
// The name of each sequence is the first word
// of the description line.
func ReadFASTA(r io.Reader) (*Alignment, error) {
	a := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<30)

	var name string
	var seq strings.Builder
	ln := 0
	add := func() error {
		if name == "" {
			return nil
		}
		if seq.Len() == 0 {
			return fmt.Errorf("sequence %q: empty sequence", name)
		}
		if err := a.Add(name, seq.String()); err != nil {
			return err
		}
		seq.Reset()
		return nil
	}

	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if line[0] == '>' {
			if err := add(); err != nil {
				return nil, fmt.Errorf("line %d: %v", ln, err)
			}
			fields := strings.Fields(line[1:])
			if len(fields) == 0 {
				return nil, fmt.Errorf("line %d: empty sequence name", ln)
			}
			name = fields[0]
			continue
		}
		if name == "" {
			return nil, fmt.Errorf("line %d: expecting sequence name", ln)
		}
		seq.WriteString(strings.Join(strings.Fields(line), ""))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := add(); err != nil {
		return nil, fmt.Errorf("line %d: %v", ln, err)
	}
	if a.Len() == 0 {
		return nil, errors.New("no sequences")
	}
	return a, nil
}

// ReadPhylip reads an alignment in sequential PHYLIP format.
//
// The first line contains the number of sequences
// and the number of columns.
// In the relaxed variant,
// names are separated from the sequence by white space;
// otherwise names are the first ten characters of the line.
// A sequence can be split in several lines.
func ReadPhylip(r io.Reader, relaxed bool) (*Alignment, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<30)

	ln := 0
	var ntax, nchar int
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: invalid header %q", ln, line)
		}
		var err error
		if ntax, err = strconv.Atoi(fields[0]); err != nil {
			return nil, fmt.Errorf("line %d: number of sequences: %v", ln, err)
		}
		if nchar, err = strconv.Atoi(fields[1]); err != nil {
			return nil, fmt.Errorf("line %d: number of columns: %v", ln, err)
		}
		break
	}
	if ntax <= 0 || nchar <= 0 {
		return nil, errors.New("expecting header")
	}

	a := New()
	var name string
	var seq strings.Builder
	for sc.Scan() {
		ln++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if name == "" {
			if relaxed {
				line = strings.TrimSpace(line)
				i := strings.IndexAny(line, " \t")
				if i < 0 {
					return nil, fmt.Errorf("line %d: expecting name and sequence", ln)
				}
				name = line[:i]
				line = line[i:]
			} else {
				if len(line) <= 10 {
					return nil, fmt.Errorf("line %d: expecting name and sequence", ln)
				}
				name = strings.TrimSpace(line[:10])
				line = line[10:]
			}
			if name == "" {
				return nil, fmt.Errorf("line %d: empty sequence name", ln)
			}
		}
		seq.WriteString(strings.Join(strings.Fields(line), ""))
		if seq.Len() > nchar {
			return nil, fmt.Errorf("line %d: sequence %q: length %d, want %d", ln, name, seq.Len(), nchar)
		}
		if seq.Len() < nchar {
			continue
		}
		if err := a.Add(name, seq.String()); err != nil {
			return nil, fmt.Errorf("line %d: %v", ln, err)
		}
		name = ""
		seq.Reset()
		if a.Len() == ntax {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if name != "" {
		return nil, fmt.Errorf("sequence %q: length %d, want %d", name, seq.Len(), nchar)
	}
	if a.Len() != ntax {
		return nil, fmt.Errorf("found %d sequences, want %d", a.Len(), ntax)
	}
	return a, nil
}

// FASTA writes an alignment in FASTA format.
func (a *Alignment) FASTA(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, n := range a.names {
		fmt.Fprintf(bw, ">%s\n", n)
		s := a.seqs[i]
		for len(s) > 60 {
			fmt.Fprintf(bw, "%s\n", s[:60])
			s = s[60:]
		}
		fmt.Fprintf(bw, "%s\n", s)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// Phylip writes an alignment in relaxed PHYLIP format,
// one sequence per line.
func (a *Alignment) Phylip(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", a.Len(), a.NChars())
	for i, n := range a.names {
		fmt.Fprintf(bw, "%s  %s\n", n, a.seqs[i])
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// PhylipFile returns the name of a file
// with an alignment in relaxed PHYLIP format.
// If the alignment was read in a different format,
// a copy is written in a file with the extension ".phy".
func PhylipFile(name string, a *Alignment, f Format) (string, error) {
	if f == PhylipRelaxed {
		return name, nil
	}
	phy := name + ".phy"
	if err := writePhylip(phy, a); err != nil {
		return "", err
	}
	return phy, nil
}

func writePhylip(name string, a *Alignment) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := a.Phylip(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
