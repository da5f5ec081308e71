// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phyml

import (
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Nucleotides in the order used by PhyML.
const nucs = "ACGT"

// Pairs are the pairs of nucleotides
// of the relative substitution rates.
var Pairs = [6]string{"AC", "AG", "AT", "CG", "CT", "GT"}

// A Report contains the statistics of a PhyML run.
// Any field not found in the output
// is NaN.
type Report struct {
	Parsimony float64
	TreeSize  float64
	Gamma     float64 // gamma shape parameter
	PInv      float64 // proportion of invariant sites
	TsTv      float64 // transition/transversion ratio
	LogL      float64

	// Base frequencies
	// in A, C, G, T order.
	Freqs [4]float64

	// Relative substitution rates
	// in the order defined by Pairs.
	Rel [6]float64

	// Instantaneous rate matrix,
	// nil if not found.
	Matrix *mat.Dense
}

var (
	parsimonyRE = regexp.MustCompile(` Parsimony: \t{4}([0-9.\-]+)`)
	treeSizeRE  = regexp.MustCompile(` Tree size: \t{4}([0-9.\-]+)`)
	gammaRE     = regexp.MustCompile(` Gamma shape parameter: \t{2}([0-9.\-]+)`)
	pInvRE      = regexp.MustCompile(` Proportion of invariant: \t{2}([0-9.\-]+)`)
	tstvRE      = regexp.MustCompile(` Transition/transversion ratio: \t{1}([0-9.\-]+)`)
	logLRE      = regexp.MustCompile(` Log-likelihood: \t{3}([0-9.\-]+)`)

	matrixRE = regexp.MustCompile(`(?m)\. Instantaneous rate matrix :\s+\[A-+C-+G-+T-+\]((?:\s+.*[0-9]\.[0-9]{5} *){4})$`)
	valueRE  = regexp.MustCompile(`-?[0-9]\.[0-9]{5}`)

	freqRE [4]*regexp.Regexp
	relRE  [6]*regexp.Regexp
)

func init() {
	for i, n := range nucs {
		freqRE[i] = regexp.MustCompile(`f\(` + string(n) + `\)= ([.0-9]+)`)
	}
	for i, p := range Pairs {
		relRE[i] = regexp.MustCompile(`  ` + p[:1] + ` <-> ` + p[1:] + ` {2,4}([0-9.]*)`)
	}
}

// ReadStats reads a PhyML statistics file.
func ReadStats(name string) (*Report, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := ParseStats(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return r, nil
}

// ParseStats parses the statistics output of PhyML.
// Missing values are not an error.
func ParseStats(r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s := string(data)

	rp := &Report{
		Parsimony: search(parsimonyRE, s),
		TreeSize:  search(treeSizeRE, s),
		Gamma:     search(gammaRE, s),
		PInv:      search(pInvRE, s),
		TsTv:      search(tstvRE, s),
		LogL:      search(logLRE, s),
	}
	for i, re := range freqRE {
		rp.Freqs[i] = search(re, s)
	}
	for i, re := range relRE {
		rp.Rel[i] = search(re, s)
	}
	rp.Matrix = readMatrix(s)
	return rp, nil
}

func search(re *regexp.Regexp, s string) float64 {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(m[1]), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func readMatrix(s string) *mat.Dense {
	m := matrixRE.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	vs := valueRE.FindAllString(m[1], -1)
	if len(vs) < 16 {
		return nil
	}
	data := make([]float64, 16)
	for i := range data {
		v, err := strconv.ParseFloat(vs[i], 64)
		if err != nil {
			return nil
		}
		data[i] = v
	}
	return mat.NewDense(4, 4, data)
}

// MuRate returns the number of substitutions per unit of time
// calculated from the first non-zero value
// of the upper triangle of the instantaneous rate matrix,
// its relative rate,
// and the frequency of the target nucleotide.
// It returns NaN if it can not be calculated.
func (rp *Report) MuRate() float64 {
	if rp.Matrix == nil {
		return math.NaN()
	}
	k := 0
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 4; j++ {
			q := rp.Matrix.At(i, j)
			if q == 0 {
				k++
				continue
			}
			d := rp.Freqs[j] * rp.Rel[k]
			if d == 0 || math.IsNaN(d) {
				return math.NaN()
			}
			return q / d
		}
	}
	return math.NaN()
}

// A Field is a named value of a report.
type Field struct {
	Name  string
	Value float64
}

// Fields returns the values of the report
// used as features.
// The transition/transversion ratio is not included.
func (rp *Report) Fields() []Field {
	fs := []Field{
		{"parsimony", rp.Parsimony},
		{"tree_size", rp.TreeSize},
	}
	for i, n := range nucs {
		fs = append(fs, Field{"f" + string(n), rp.Freqs[i]})
	}
	fs = append(fs,
		Field{"pInv", rp.PInv},
		Field{"gamma", rp.Gamma},
		Field{"mu_rate", rp.MuRate()},
		Field{"logL", rp.LogL},
	)
	for i, p := range Pairs {
		fs = append(fs, Field{"rel_sub" + p, rp.Rel[i]})
	}
	for i, x := range nucs {
		for j, y := range nucs {
			v := math.NaN()
			if rp.Matrix != nil {
				v = rp.Matrix.At(i, j)
			}
			fs = append(fs, Field{"sub" + string(x) + string(y), v})
		}
	}
	return fs
}
