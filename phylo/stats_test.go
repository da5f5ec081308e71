// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/js-arias/mteller/phylo"
)

const balanced = "((A:1,B:2):3,(C:4,D:5):6);"

func TestBranchLengthStats(t *testing.T) {
	tr := parse(t, balanced)

	bl := phylo.BranchLengths(tr)
	want := []float64{3, 6, 1, 2, 4, 5}
	if !reflect.DeepEqual(bl, want) {
		t.Errorf("branch lengths: got %v, want %v", bl, want)
	}

	s, err := phylo.BranchLengthStats(tr)
	if err != nil {
		t.Fatalf("branch length stats: %v", err)
	}
	var ent float64
	for _, v := range want {
		p := v / 21
		ent -= p * math.Log2(p)
	}
	testSummary(t, "branch lengths", s, phylo.Summary{
		Max:     6,
		Min:     1,
		Mean:    3.5,
		Std:     math.Sqrt(35.0 / 12),
		Entropy: ent,
	})
}

func TestDistances(t *testing.T) {
	tr := parse(t, balanced)

	// A-B, A-C, A-D, B-C, B-D, C-D
	actual := []float64{3, 14, 15, 15, 16, 9}
	topo := []float64{2, 4, 4, 4, 4, 2}

	if got := phylo.Distances(tr, phylo.Actual); !reflect.DeepEqual(got, actual) {
		t.Errorf("actual distances: got %v, want %v", got, actual)
	}
	if got := phylo.Distances(tr, phylo.Topological); !reflect.DeepEqual(got, topo) {
		t.Errorf("topological distances: got %v, want %v", got, topo)
	}

	// topological distances do not modify the tree
	if got := tr.String(); got != balanced {
		t.Errorf("tree modified: got %q, want %q", got, balanced)
	}
	if got := phylo.Distances(tr, phylo.Actual); !reflect.DeepEqual(got, actual) {
		t.Errorf("actual distances after topological: got %v, want %v", got, actual)
	}
}

func TestDiameters(t *testing.T) {
	tr := parse(t, balanced)

	s, err := phylo.Diameters(tr, phylo.Topological)
	if err != nil {
		t.Fatalf("diameters: %v", err)
	}
	if s.Max != 4 || s.Min != 2 {
		t.Errorf("topological diameters: got max %g min %g, want %g %g", s.Max, s.Min, 4.0, 2.0)
	}
	if math.Abs(s.Mean-20.0/6) > 1e-9 {
		t.Errorf("topological diameters: mean: got %.6f, want %.6f", s.Mean, 20.0/6)
	}

	single := parse(t, "(A:1);")
	if _, err := phylo.Diameters(single, phylo.Actual); err == nil {
		t.Errorf("single terminal: expecting error")
	}
}

func TestDistEntropy(t *testing.T) {
	tests := map[string]struct {
		values []float64
		want   float64
	}{
		"uniform": {
			values: []float64{1, 1, 1, 1},
			want:   2,
		},
		"zero sum": {
			values: []float64{0, 0},
			want:   -2 * phylo.Epsilon * math.Log2(phylo.Epsilon),
		},
		"zero value": {
			values: []float64{0, 2},
			want: -(phylo.Epsilon*math.Log2(phylo.Epsilon) +
				(1+phylo.Epsilon)*math.Log2(1+phylo.Epsilon)),
		},
	}

	for name, test := range tests {
		got := phylo.DistEntropy(test.values)
		if math.IsNaN(got) || math.Abs(got-test.want) > 1e-12 {
			t.Errorf("%s: got %g, want %g", name, got, test.want)
		}
	}
}

func TestCherryFraction(t *testing.T) {
	tests := map[string]struct {
		newick string
		want   float64
	}{
		"balanced":      {"((A:1,B:1):1,(C:1,D:1):1);", 1},
		"caterpillar":   {"(((A,B),C),D);", 0.5},
		"multifurcated": {"(A,B,C);", 2},
	}

	for name, test := range tests {
		tr := parse(t, test.newick)
		if got := phylo.CherryFraction(tr); got != test.want {
			t.Errorf("%s: got %g, want %g", name, got, test.want)
		}
	}
}

func testSummary(t testing.TB, name string, got, want phylo.Summary) {
	t.Helper()

	const tol = 1e-9
	if math.Abs(got.Max-want.Max) > tol {
		t.Errorf("%s: max: got %.6f, want %.6f", name, got.Max, want.Max)
	}
	if math.Abs(got.Min-want.Min) > tol {
		t.Errorf("%s: min: got %.6f, want %.6f", name, got.Min, want.Min)
	}
	if math.Abs(got.Mean-want.Mean) > tol {
		t.Errorf("%s: mean: got %.6f, want %.6f", name, got.Mean, want.Mean)
	}
	if math.Abs(got.Std-want.Std) > tol {
		t.Errorf("%s: std: got %.6f, want %.6f", name, got.Std, want.Std)
	}
	if math.Abs(got.Entropy-want.Entropy) > tol {
		t.Errorf("%s: entropy: got %.6f, want %.6f", name, got.Entropy, want.Entropy)
	}
}
