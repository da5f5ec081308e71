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
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/js-arias/mteller/model"
)

// A Score is the score assigned by a classifier
// to a model of a sample.
// Lower scores are better.
type Score struct {
	Index int
	Model model.Model
	Value float64
}

var scoreHeader = []string{
	"index",
	"model",
	"score",
}

// ReadScores reads the scores of a classifier
// from a TSV file.
//
// The TSV must contains the following fields:
//
//   - index, the index of the sample
//   - model, the name of the model
//   - score, the score of the model
//
// Here is an example file:
//
//	# classifier scores
//	index	model	score
//	0	JC	0.731
//	0	JC+I	0.512
func ReadScores(r io.Reader) ([]Score, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range scoreHeader {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var scores []Score
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
		idx, err := strconv.Atoi(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
		}

		f = "model"
		m, err := model.Parse(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
		}

		f = "score"
		v, err := strconv.ParseFloat(strings.TrimSpace(row[fields[f]]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
		}
		if math.IsNaN(v) {
			return nil, fmt.Errorf("on row %d, field %q: invalid score", ln, f)
		}
		scores = append(scores, Score{Index: idx, Model: m, Value: v})
	}
	return scores, nil
}

type rowKey struct {
	index int
	model model.Model
}

// Rank sets the scores of the rows of the table
// and ranks the models of each sample
// by increasing score.
// Models with the same score share the lowest rank.
//
// Each row of the table must have a score.
func (t *Table) Rank(scores []Score) error {
	byRow := make(map[rowKey]float64, len(scores))
	for _, s := range scores {
		byRow[rowKey{s.Index, s.Model}] = s.Value
	}

	samples := make(map[int][]float64)
	for i, r := range t.rows {
		v, ok := byRow[rowKey{r.Index, r.Model}]
		if !ok {
			return fmt.Errorf("sample %d, model %s: without score", r.Index, r.Model)
		}
		t.rows[i].Score = v
		samples[r.Index] = append(samples[r.Index], v)
	}
	for _, s := range samples {
		slices.Sort(s)
	}

	for i, r := range t.rows {
		s := samples[r.Index]
		p, _ := slices.BinarySearch(s, r.Score)
		t.rows[i].Rank = p + 1
	}
	return nil
}

// ErrNoRank is returned when a sample
// does not have ranked models.
var ErrNoRank = errors.New("models not ranked")

// Selected returns the selected model of a sample,
// i.e., the first model with rank 1.
func (t *Table) Selected(index int) (model.Model, error) {
	for _, r := range t.rows {
		if r.Index != index {
			continue
		}
		if r.Rank == 1 {
			return r.Model, nil
		}
	}
	return model.Model{}, fmt.Errorf("sample %d: %w", index, ErrNoRank)
}

// Report writes the table
// using human readable names for the features,
// the score and the rank of each model.
// The features that describe the structure of the model
// are not included.
func (t *Table) Report(w io.Writer) error {
	var cols []int
	header := []string{"index", "model"}
	for i, k := range t.keys {
		if slices.Contains(ModelKeys, k) {
			continue
		}
		cols = append(cols, i)
		header = append(header, Name(k))
	}
	header = append(header, "score", "rank")

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# mteller features with models rankings\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, r := range t.rows {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(r.Index), r.Model.String())
		for _, c := range cols {
			row = append(row, formatValue(r.Values[c]))
		}
		rank := ""
		if r.Rank > 0 {
			rank = strconv.Itoa(r.Rank)
		}
		row = append(row, formatValue(r.Score), rank)
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
