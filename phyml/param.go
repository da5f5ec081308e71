// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phyml

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/js-arias/mteller/cats"
)

// Param is a keyword to identify
// the type of parameter in a parameter file.
type Param string

// Valid parameters
const (
	// Args are additional arguments
	// passed to each PhyML run.
	Args Param = "args"

	// Bin is the path of the PhyML executable.
	Bin Param = "bin"

	// Cats is the number of categories
	// of the discrete gamma distribution.
	Cats Param = "cats"

	// Median sets the use of the median
	// instead of the mean
	// for the rate of each gamma category.
	Median Param = "median"

	// Reuse sets the use of an existing output
	// instead of running PhyML again.
	Reuse Param = "reuse"
)

// DefaultFile is the default name of a parameter file.
const DefaultFile = "mteller-param.tab"

// Params represents a collection of parameters
// used to run PhyML.
type Params struct {
	name string // file name

	bin  string
	args []string

	c      int  // gamma categories
	median bool // use median rates

	reuse bool
}

// New creates a new parameter collection.
func New(name string) *Params {
	return &Params{
		name:  name,
		bin:   "phyml",
		c:     4,
		reuse: true,
	}
}

var header = []string{
	"parameter",
	"value",
}

// Read reads a parameter file from a TSV file.
//
// The TSV must contains the following fields:
//
//   - parameter, the name of the parameter
//   - value, the value of the parameter
//
// Here is an example file:
//
//	# mteller phyml parameters
//	parameter	value
//	bin	/usr/local/bin/phyml
//	args	--r_seed 42
//	cats	4
//	median	false
//	reuse	true
func Read(name string) (*Params, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("on file %q: header: %v", name, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("on file %q: expecting field %q", name, h)
		}
	}

	p := New(name)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}

		f := "parameter"
		k := Param(strings.ToLower(row[fields[f]]))

		f = "value"
		v := strings.TrimSpace(row[fields[f]])
		switch k {
		case Args:
			p.args = strings.Fields(v)
		case Bin:
			if v == "" {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: empty executable", name, ln, f)
			}
			p.bin = v
		case Cats:
			c, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
			if err := p.SetCats(c); err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
		case Median:
			m, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
			p.median = m
		case Reuse:
			r, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
			p.reuse = r
		}
	}
	return p, nil
}

// Open reads a parameter file.
// If name is empty,
// the default file is read when it exists,
// otherwise the default parameters are returned.
func Open(name string) (*Params, error) {
	if name != "" {
		return Read(name)
	}
	if _, err := os.Stat(DefaultFile); err != nil {
		return New(DefaultFile), nil
	}
	return Read(DefaultFile)
}

// Args returns the additional arguments
// of each PhyML run.
func (p *Params) Args() []string {
	return append([]string(nil), p.args...)
}

// Bin returns the path of the PhyML executable.
func (p *Params) Bin() string {
	return p.bin
}

// Cats returns the number of categories
// of the discrete gamma distribution.
func (p *Params) Cats() int {
	return p.c
}

// Gamma returns the discrete gamma distribution
// for the indicated shape parameter.
func (p *Params) Gamma(alpha float64) cats.Gamma {
	return cats.Gamma{
		Alpha:  alpha,
		NumCat: p.c,
		Median: p.median,
	}
}

// Median returns true if the median of each gamma category
// is used instead of the mean.
func (p *Params) Median() bool {
	return p.median
}

// Name returns the name of the parameter file.
func (p *Params) Name() string {
	return p.name
}

// Reuse returns true if the output of a previous run
// will be used instead of running PhyML again.
func (p *Params) Reuse() bool {
	return p.reuse
}

// SetArgs sets the additional arguments of each PhyML run.
func (p *Params) SetArgs(args string) {
	p.args = strings.Fields(args)
}

// SetBin sets the path of the PhyML executable.
func (p *Params) SetBin(bin string) error {
	bin = strings.TrimSpace(bin)
	if bin == "" {
		return errors.New("empty executable")
	}
	p.bin = bin
	return nil
}

// SetCats sets the number of categories
// of the discrete gamma distribution.
func (p *Params) SetCats(c int) error {
	if c < 1 {
		return fmt.Errorf("invalid number of categories: %d", c)
	}
	p.c = c
	return nil
}

// SetMedian sets the use of the median
// for the rate of each gamma category.
func (p *Params) SetMedian(m bool) {
	p.median = m
}

// SetName sets the name of a parameter collection.
func (p *Params) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	p.name = name
}

// SetReuse sets the use of existing output files.
func (p *Params) SetReuse(r bool) {
	p.reuse = r
}

// Write writes a parameter collection into a file.
func (p *Params) Write() (err error) {
	f, err := os.Create(p.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# mteller phyml parameters\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("on file %q: while writing header: %v", p.name, err)
	}

	rows := [][]string{
		{string(Bin), p.bin},
		{string(Args), strings.Join(p.args, " ")},
		{string(Cats), strconv.Itoa(p.c)},
		{string(Median), strconv.FormatBool(p.median)},
		{string(Reuse), strconv.FormatBool(p.reuse)},
	}
	for _, row := range rows {
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("on file %q: %v", p.name, err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	return nil
}
