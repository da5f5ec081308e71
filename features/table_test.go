// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package features_test

import (
	"bytes"
	"math"
	"reflect"
	"testing"

	"github.com/js-arias/mteller/features"
	"github.com/js-arias/mteller/model"
)

func testSample(t testing.TB) *features.Sample {
	t.Helper()

	s := features.NewSample()
	vals := []struct {
		key string
		v   float64
	}{
		{"ntaxa", 4},
		{"nchars", 10},
		{"freq_A", 0.5},
		{"freq_C", 0.25},
		{"freq_G", 0.25},
		{"freq_T", 0},
		{"GTR+I+G_gamma", math.NaN()},
	}
	for _, x := range vals {
		if err := s.Set(x.key, x.v); err != nil {
			t.Fatalf("set %q: %v", x.key, err)
		}
	}
	return s
}

func TestExpand(t *testing.T) {
	s := testSample(t)
	tab, err := features.Expand(s, 3)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}

	if tab.Len() != model.NumModels {
		t.Fatalf("rows: got %d, want %d", tab.Len(), model.NumModels)
	}
	wantKeys := append(s.Keys(), "model_I", "model_G", "model_F", "model_matrix", "base_freqs_entropy")
	if got := tab.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Errorf("keys: got %v, want %v", got, wantKeys)
	}

	ms := model.All()
	for i := 0; i < tab.Len(); i++ {
		r := tab.Row(i)
		if r.Index != 3 {
			t.Errorf("row %d: index: got %d, want %d", i, r.Index, 3)
		}
		if r.Model != ms[i] {
			t.Errorf("row %d: model: got %s, want %s", i, r.Model, ms[i])
		}
		testValue(t, "ntaxa", tab.Value(i, "ntaxa"), 4)
		testValue(t, "base_freqs_entropy", tab.Value(i, "base_freqs_entropy"), 1.5)
		if v := tab.Value(i, "GTR+I+G_gamma"); !math.IsNaN(v) {
			t.Errorf("row %d: gamma: got %g, want NaN", i, v)
		}
	}

	structure := map[string][4]float64{
		"GTR+I+G": {1, 1, 1, 2},
		"JC":      {0, 0, 0, 0},
		"HKY+I":   {1, 0, 1, 1},
		"SYM+G":   {0, 1, 0, 2},
	}
	for i := 0; i < tab.Len(); i++ {
		m := tab.Row(i).Model.String()
		want, ok := structure[m]
		if !ok {
			continue
		}
		for j, k := range features.ModelKeys {
			if got := tab.Value(i, k); got != want[j] {
				t.Errorf("model %s: %s: got %g, want %g", m, k, got, want[j])
			}
		}
	}
}

func TestFreqsEntropy(t *testing.T) {
	s := features.NewSample()
	for _, k := range []string{"freq_A", "freq_C", "freq_G", "freq_T"} {
		s.Set(k, 0.25)
	}
	testValue(t, "uniform", features.FreqsEntropy(s), 2)

	s = features.NewSample()
	s.Set("freq_A", 1)
	s.Set("freq_C", 0)
	if got := features.FreqsEntropy(s); got != 0 || math.Signbit(got) {
		t.Errorf("single base: got %g, want %g", got, 0.0)
	}
}

func TestTableTSV(t *testing.T) {
	s := testSample(t)
	tab, err := features.Expand(s, 0)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}

	var buf bytes.Buffer
	if err := tab.TSV(&buf); err != nil {
		t.Fatalf("write TSV: %v", err)
	}
	t.Logf("output:\n%s\n", buf.String())

	nt, err := features.ReadTSV(&buf)
	if err != nil {
		t.Fatalf("read TSV: %v", err)
	}
	if !reflect.DeepEqual(nt.Keys(), tab.Keys()) {
		t.Errorf("keys: got %v, want %v", nt.Keys(), tab.Keys())
	}
	if nt.Len() != tab.Len() {
		t.Fatalf("rows: got %d, want %d", nt.Len(), tab.Len())
	}
	for i := 0; i < tab.Len(); i++ {
		g, w := nt.Row(i), tab.Row(i)
		if g.Index != w.Index || g.Model != w.Model {
			t.Errorf("row %d: got %d %s, want %d %s", i, g.Index, g.Model, w.Index, w.Model)
		}
		for j, v := range w.Values {
			if math.IsNaN(v) {
				if !math.IsNaN(g.Values[j]) {
					t.Errorf("row %d, %s: got %g, want NaN", i, tab.Keys()[j], g.Values[j])
				}
				continue
			}
			if g.Values[j] != v {
				t.Errorf("row %d, %s: got %g, want %g", i, tab.Keys()[j], g.Values[j], v)
			}
		}
	}
}

func TestSelect(t *testing.T) {
	tab, err := features.Expand(testSample(t), 0)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}

	st, err := tab.Select([]string{"model_G", "ntaxa"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if st.Len() != tab.Len() {
		t.Errorf("rows: got %d, want %d", st.Len(), tab.Len())
	}
	last := st.Len() - 1
	if got := st.Row(last).Values; !reflect.DeepEqual(got, []float64{1, 4}) {
		t.Errorf("values: got %v, want %v", got, []float64{1, 4})
	}

	if _, err := tab.Select(features.Classifier); err == nil {
		t.Errorf("missing features: expecting error")
	}
}
