// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package align_test

import (
	"errors"
	"math"
	"testing"

	"github.com/js-arias/mteller/align"
)

func newAlignment(t testing.TB, seqs ...string) *align.Alignment {
	t.Helper()

	a := align.New()
	for i, s := range seqs {
		name := string(rune('a'+i)) + "_seq"
		if err := a.Add(name, s); err != nil {
			t.Fatalf("unable to add sequence %q: %v", name, err)
		}
	}
	return a
}

func TestIdentical(t *testing.T) {
	a := newAlignment(t,
		"ACGTACGTAC",
		"ACGTACGTAC",
		"ACGTACGTAC",
		"ACGTACGTAC",
	)

	cf, err := align.ConservedFraction(a)
	if err != nil {
		t.Fatalf("conserved fraction: %v", err)
	}
	if cf != 1 {
		t.Errorf("conserved fraction: got %.6f, want %.6f", cf, 1.0)
	}

	for i := 0; i < a.NChars(); i++ {
		if e := align.ColumnEntropy(a.Column(i)); e != 0 {
			t.Errorf("column %d: entropy: got %.6f, want 0", i, e)
		}
	}
	e, err := align.Entropy(a)
	if err != nil {
		t.Fatalf("entropy: %v", err)
	}
	if e != 0 {
		t.Errorf("entropy: got %.6f, want 0", e)
	}

	_, distinct, frac := align.Multinomial(a)
	if distinct != 4 {
		t.Errorf("patterns: got %d, want %d", distinct, 4)
	}
	if math.Abs(frac-0.4) > 1e-9 {
		t.Errorf("pattern fraction: got %.6f, want %.6f", frac, 0.4)
	}
}

func TestSinglePattern(t *testing.T) {
	a := newAlignment(t,
		"AAAAAAAAAA",
		"AAAAAAAAAA",
		"AAAAAAAAAA",
		"AAAAAAAAAA",
	)

	cf, err := align.ConservedFraction(a)
	if err != nil {
		t.Fatalf("conserved fraction: %v", err)
	}
	if cf != 1 {
		t.Errorf("conserved fraction: got %.6f, want %.6f", cf, 1.0)
	}

	stat, distinct, frac := align.Multinomial(a)
	if distinct != 1 {
		t.Errorf("patterns: got %d, want %d", distinct, 1)
	}
	if math.Abs(frac-0.1) > 1e-9 {
		t.Errorf("pattern fraction: got %.6f, want %.6f", frac, 0.1)
	}
	if math.Abs(stat) > 1e-9 {
		t.Errorf("multinomial: got %.6f, want 0", stat)
	}
}

func TestConservedFraction(t *testing.T) {
	tests := map[string]struct {
		seqs []string
		want float64
	}{
		"gapped column": {
			seqs: []string{"A-C", "A-C", "AGT"},
			want: 2.0 / 3.0,
		},
		"all gaps": {
			seqs: []string{"A-", "A-"},
			want: 0.5,
		},
		"ambiguous": {
			seqs: []string{"AN", "aN", "A-"},
			want: 0,
		},
		"gaps and bases": {
			seqs: []string{"A", "-", "N", "A"},
			want: 1,
		},
	}

	for name, test := range tests {
		a := newAlignment(t, test.seqs...)
		got, err := align.ConservedFraction(a)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if math.Abs(got-test.want) > 1e-9 {
			t.Errorf("%s: got %.6f, want %.6f", name, got, test.want)
		}
		if got < 0 || got > 1 {
			t.Errorf("%s: value %.6f outside [0, 1]", name, got)
		}
	}
}

func TestEmpty(t *testing.T) {
	a := align.New()
	if _, err := align.ConservedFraction(a); !errors.Is(err, align.ErrEmpty) {
		t.Errorf("conserved fraction: got error %v, want %v", err, align.ErrEmpty)
	}
	if _, err := align.Entropy(a); !errors.Is(err, align.ErrEmpty) {
		t.Errorf("entropy: got error %v, want %v", err, align.ErrEmpty)
	}
	if _, err := align.BaseFreqs(a); !errors.Is(err, align.ErrNoBases) {
		t.Errorf("base frequencies: got error %v, want %v", err, align.ErrNoBases)
	}
	if s, d, f := align.Multinomial(a); s != 0 || d != 0 || f != 0 {
		t.Errorf("multinomial: got %.6f %d %.6f, want zeros", s, d, f)
	}
	r := align.SubstitutionRates(a)
	if r.Transition != 0 || r.Transversion != 0 || r.SOP != 0 {
		t.Errorf("substitution rates: got %v, want zeros", r)
	}
}

func TestColumnEntropy(t *testing.T) {
	tests := map[string]struct {
		col  string
		want float64
	}{
		"empty":       {"", 0},
		"only gaps":   {"--N?", 0},
		"monomorphic": {"aAa-A", 0},
		"two states":  {"AACC", 4},
		"four states": {"ACGT", 8},
		"unbalanced":  {"AAAC-", -(3*math.Log2(3.0/4) + math.Log2(1.0/4))},
	}

	for name, test := range tests {
		got := align.ColumnEntropy([]byte(test.col))
		if math.Abs(got-test.want) > 1e-9 {
			t.Errorf("%s: got %.6f, want %.6f", name, got, test.want)
		}
	}
}

func TestEntropy(t *testing.T) {
	a := newAlignment(t,
		"AAa",
		"CA-",
		"GAa",
		"TAt",
	)
	want := (8 + 0 + align.ColumnEntropy([]byte("a-at"))) / 3
	got, err := align.Entropy(a)
	if err != nil {
		t.Fatalf("entropy: %v", err)
	}
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("entropy: got %.6f, want %.6f", got, want)
	}
}

func TestMultinomial(t *testing.T) {
	// patterns: "AA" x2, "AC" x1, "aA" x1 (case sensitive)
	a := newAlignment(t,
		"AAAa",
		"ACAA",
	)

	want := 2*math.Log(2) - 4*math.Log(4)
	stat, distinct, frac := align.Multinomial(a)
	if math.Abs(stat-want) > 1e-9 {
		t.Errorf("multinomial: got %.6f, want %.6f", stat, want)
	}
	if distinct != 3 {
		t.Errorf("patterns: got %d, want %d", distinct, 3)
	}
	if math.Abs(frac-0.75) > 1e-9 {
		t.Errorf("pattern fraction: got %.6f, want %.6f", frac, 0.75)
	}
}

func TestBaseFreqs(t *testing.T) {
	a := newAlignment(t,
		"AAcg-N",
		"AtTT-?",
	)

	freqs, err := align.BaseFreqs(a)
	if err != nil {
		t.Fatalf("base frequencies: %v", err)
	}
	want := [4]float64{3.0 / 8, 1.0 / 8, 1.0 / 8, 3.0 / 8}
	var sum float64
	for i, f := range freqs {
		sum += f
		if math.Abs(f-want[i]) > 1e-9 {
			t.Errorf("frequency %c: got %.6f, want %.6f", align.Bases[i], f, want[i])
		}
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("sum of frequencies: got %.9f, want 1", sum)
	}
}
