// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package features

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/js-arias/mteller/align"
	"github.com/js-arias/mteller/model"
	"gonum.org/v1/gonum/stat"
)

// Names of the features derived from the model.
const (
	ModelI           = "model_I"
	ModelG           = "model_G"
	ModelF           = "model_F"
	ModelMatrix      = "model_matrix"
	BaseFreqsEntropy = "base_freqs_entropy"
)

// ModelKeys are the features
// that describe the structure of a model.
var ModelKeys = []string{ModelI, ModelG, ModelF, ModelMatrix}

// A Row is the set of features of a sample
// for a given model.
type Row struct {
	// Index of the sample.
	Index int

	Model model.Model

	// Values of the features,
	// in the order of the table keys.
	Values []float64

	// Score and rank of the model,
	// assigned by a classifier.
	Score float64
	Rank  int
}

// A Table is a table of features.
type Table struct {
	keys []string
	cols map[string]int
	rows []Row
}

func newTable(keys []string) (*Table, error) {
	t := &Table{
		keys: keys,
		cols: make(map[string]int, len(keys)),
	}
	for i, k := range keys {
		if k == "" {
			return nil, errors.New("empty feature name")
		}
		if _, ok := t.cols[k]; ok {
			return nil, fmt.Errorf("feature %q: %w", k, ErrDuplicate)
		}
		t.cols[k] = i
	}
	return t, nil
}

// Expand returns a table with a row
// for each candidate model.
// All the rows share the values of the sample,
// and add the features derived from the model:
// model_I (has invariant sites),
// model_G (has gamma distributed rates),
// model_F (has empirical base frequencies),
// model_matrix (the substitution class),
// and base_freqs_entropy
// (the entropy of the base frequencies of the sample).
func Expand(s *Sample, index int) (*Table, error) {
	keys := s.Keys()
	keys = append(keys, ModelKeys...)
	keys = append(keys, BaseFreqsEntropy)
	t, err := newTable(keys)
	if err != nil {
		return nil, err
	}

	shared := make([]float64, 0, s.Len())
	for _, k := range s.keys {
		shared = append(shared, s.vals[k])
	}
	ent := FreqsEntropy(s)

	for _, m := range model.All() {
		vals := make([]float64, 0, len(keys))
		vals = append(vals, shared...)
		vals = append(vals,
			boolValue(m.HasInvariant()),
			boolValue(m.HasGamma()),
			boolValue(m.HasEmpiricalFreqs()),
			float64(m.MatrixClass()),
			ent,
		)
		t.rows = append(t.rows, Row{
			Index:  index,
			Model:  m,
			Values: vals,
			Score:  math.NaN(),
		})
	}
	return t, nil
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// FreqsEntropy returns the entropy,
// in bits,
// of the base frequencies of a sample.
// Missing or zero frequencies are ignored.
func FreqsEntropy(s *Sample) float64 {
	p := make([]float64, 0, len(align.Bases))
	for _, b := range align.Bases {
		v := s.Value("freq_" + string(b))
		if math.IsNaN(v) || v == 0 {
			continue
		}
		p = append(p, v)
	}
	e := stat.Entropy(p) / math.Ln2
	if e == 0 {
		// avoid negative zero
		return 0
	}
	return e
}

// Keys returns the names of the features in the table.
func (t *Table) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns a row of the table.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Value returns the value of a feature in a row.
// It returns NaN if the feature is not in the table.
func (t *Table) Value(row int, key string) float64 {
	c, ok := t.cols[key]
	if !ok {
		return math.NaN()
	}
	return t.rows[row].Values[c]
}

// Add adds the rows of another table.
// Both tables must have the same features.
func (t *Table) Add(o *Table) error {
	if len(o.keys) != len(t.keys) {
		return errors.New("tables with different features")
	}
	for i, k := range o.keys {
		if t.keys[i] != k {
			return fmt.Errorf("feature %q: not in table", k)
		}
	}
	t.rows = append(t.rows, o.rows...)
	return nil
}

// Select returns a new table
// with only the indicated features.
func (t *Table) Select(keys []string) (*Table, error) {
	nt, err := newTable(append([]string(nil), keys...))
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(keys))
	for i, k := range keys {
		c, ok := t.cols[k]
		if !ok {
			return nil, fmt.Errorf("feature %q: not in table", k)
		}
		idx[i] = c
	}
	for _, r := range t.rows {
		vals := make([]float64, len(idx))
		for i, c := range idx {
			vals[i] = r.Values[c]
		}
		nr := r
		nr.Values = vals
		nt.rows = append(nt.rows, nr)
	}
	return nt, nil
}

// TSV writes the table as a TSV file.
//
// The first two columns are the index of the sample
// and the model,
// followed by the features.
// Missing values are written as empty cells.
func (t *Table) TSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# mteller features\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	header := append([]string{"index", "model"}, t.keys...)
	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}

	for _, r := range t.rows {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(r.Index), r.Model.String())
		for _, v := range r.Values {
			row = append(row, formatValue(v))
		}
		if err := tsv.Write(row); err != nil {
			return err
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ReadTSV reads a table from a TSV file.
func ReadTSV(r io.Reader) (*Table, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	if len(head) < 2 || strings.ToLower(head[0]) != "index" || strings.ToLower(head[1]) != "model" {
		return nil, errors.New("expecting fields \"index\" and \"model\"")
	}
	t, err := newTable(append([]string(nil), head[2:]...))
	if err != nil {
		return nil, err
	}

	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "index"
		idx, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
		}
		f = "model"
		m, err := model.Parse(row[1])
		if err != nil {
			return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
		}

		vals := make([]float64, len(t.keys))
		for i, k := range t.keys {
			v := strings.TrimSpace(row[i+2])
			if v == "" {
				vals[i] = math.NaN()
				continue
			}
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("on row %d, field %q: %v", ln, k, err)
			}
			vals[i] = x
		}
		t.rows = append(t.rows, Row{
			Index:  idx,
			Model:  m,
			Values: vals,
			Score:  math.NaN(),
		})
	}
	return t, nil
}
