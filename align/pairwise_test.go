// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package align_test

import (
	"math"
	"testing"

	"github.com/js-arias/mteller/align"
)

func TestComparePair(t *testing.T) {
	pc := align.ComparePair([]byte("AAAA"), []byte("AAAG"))
	if pc.Matches[align.A] != 3 {
		t.Errorf("AA: got %d, want %d", pc.Matches[align.A], 3)
	}
	if pc.Subs[align.AG] != 1 {
		t.Errorf("AG: got %d, want %d", pc.Subs[align.AG], 1)
	}
	if v := pc.Valid(); v != 4 {
		t.Errorf("valid positions: got %d, want %d", v, 4)
	}
	if tr := pc.Transition(); math.Abs(tr-0.25) > 1e-9 {
		t.Errorf("transition: got %.6f, want %.6f", tr, 0.25)
	}
	if tv := pc.Transversion(); tv != 0 {
		t.Errorf("transversion: got %.6f, want 0", tv)
	}
	if s := pc.SOP(); s != 2 {
		t.Errorf("sop: got %d, want %d", s, 2)
	}
}

func TestComparePairGaps(t *testing.T) {
	// positions: Ac (sub), g- (one gap), -- (two gaps),
	// tT (match), N- (two gaps), Ct (sub)
	pc := align.ComparePair([]byte("Ag-tNC"), []byte("c--T-t"))
	if pc.Subs[align.AC] != 1 || pc.Subs[align.CT] != 1 {
		t.Errorf("substitutions: got %v", pc.Subs)
	}
	if pc.Matches[align.T] != 1 {
		t.Errorf("TT: got %d, want %d", pc.Matches[align.T], 1)
	}
	if pc.OneGap != 1 {
		t.Errorf("one gap: got %d, want %d", pc.OneGap, 1)
	}
	if pc.TwoGap != 2 {
		t.Errorf("two gaps: got %d, want %d", pc.TwoGap, 2)
	}
	if v := pc.Valid(); v != 3 {
		t.Errorf("valid positions: got %d, want %d", v, 3)
	}

	// match (+1), two substitutions (-2),
	// a single gap as mismatch (-1) and as gap (-1)
	if s := pc.SOP(); s != -3 {
		t.Errorf("sop: got %d, want %d", s, -3)
	}
}

func TestComparePairNoValid(t *testing.T) {
	pc := align.ComparePair([]byte("A-"), []byte("-C"))
	if v := pc.Valid(); v != 0 {
		t.Errorf("valid positions: got %d, want 0", v)
	}
	if tr := pc.Transition(); tr != 0 {
		t.Errorf("transition: got %.6f, want 0", tr)
	}
	if s := pc.SOP(); s != -2 {
		t.Errorf("sop: got %d, want %d", s, -2)
	}
}

func TestSubstitutionRates(t *testing.T) {
	a := newAlignment(t,
		"AAAA",
		"AAAG",
		"CAAG",
	)

	// pairs:
	//	1-2: AA x3, AG x1
	//	1-3: AC x1, AA x2, AG x1
	//	2-3: AC x1, AA x2, GG x1
	r := align.SubstitutionRates(a)

	wantTs := (0.25 + 0.25 + 0) / 3
	if math.Abs(r.Transition-wantTs) > 1e-9 {
		t.Errorf("transition: got %.6f, want %.6f", r.Transition, wantTs)
	}
	wantTv := (0 + 0.25 + 0.25) / 3
	if math.Abs(r.Transversion-wantTv) > 1e-9 {
		t.Errorf("transversion: got %.6f, want %.6f", r.Transversion, wantTv)
	}
	if r.SOP != 2+0+2 {
		t.Errorf("sop: got %d, want %d", r.SOP, 4)
	}

	want := map[int]float64{
		align.AC: 0.5,
		align.AG: 0.5,
	}
	for i, f := range r.Subs {
		if math.Abs(f-want[i]) > 1e-9 {
			t.Errorf("%s frequency: got %.6f, want %.6f", align.SubNames[i], f, want[i])
		}
	}
}

func TestSubstitutionRatesNoSubs(t *testing.T) {
	a := newAlignment(t,
		"ACGT",
		"ACGT",
	)

	r := align.SubstitutionRates(a)
	for i, f := range r.Subs {
		if f != 0 {
			t.Errorf("%s frequency: got %.6f, want 0", align.SubNames[i], f)
		}
	}
	if r.SOP != 4 {
		t.Errorf("sop: got %d, want %d", r.SOP, 4)
	}
}
