// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package features_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/js-arias/mteller/features"
	"github.com/js-arias/mteller/model"
)

func scoresBlob(scores map[string]float64) string {
	var b strings.Builder
	b.WriteString("# classifier scores\n")
	b.WriteString("index\tmodel\tscore\n")
	for _, m := range model.All() {
		v, ok := scores[m.String()]
		if !ok {
			v = 10
		}
		fmt.Fprintf(&b, "0\t%s\t%g\n", m, v)
	}
	return b.String()
}

func TestRank(t *testing.T) {
	tab, err := features.Expand(testSample(t), 0)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}

	if _, err := tab.Selected(0); !errors.Is(err, features.ErrNoRank) {
		t.Errorf("unranked: got error %v, want %v", err, features.ErrNoRank)
	}

	blob := scoresBlob(map[string]float64{
		"HKY+G":   0.1,
		"GTR+I+G": 0.1,
		"GTR+G":   0.2,
		"JC":      0.3,
	})
	scores, err := features.ReadScores(strings.NewReader(blob))
	if err != nil {
		t.Fatalf("read scores: %v", err)
	}
	if len(scores) != model.NumModels {
		t.Fatalf("scores: got %d, want %d", len(scores), model.NumModels)
	}

	if err := tab.Rank(scores); err != nil {
		t.Fatalf("rank: %v", err)
	}
	want := map[string]int{
		"HKY+G":   1,
		"GTR+I+G": 1,
		"GTR+G":   3,
		"JC":      4,
		"F81":     5,
		"SYM+I":   5,
	}
	for i := 0; i < tab.Len(); i++ {
		r := tab.Row(i)
		w, ok := want[r.Model.String()]
		if !ok {
			continue
		}
		if r.Rank != w {
			t.Errorf("model %s: rank: got %d, want %d", r.Model, r.Rank, w)
		}
	}

	// in case of ties, the first model is selected
	m, err := tab.Selected(0)
	if err != nil {
		t.Fatalf("selected: %v", err)
	}
	if m.String() != "HKY+G" {
		t.Errorf("selected: got %s, want %s", m, "HKY+G")
	}

	var buf bytes.Buffer
	if err := tab.Report(&buf); err != nil {
		t.Fatalf("report: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3+model.NumModels {
		t.Fatalf("report: got %d lines, want %d", len(lines), 3+model.NumModels)
	}
	header := strings.Split(strings.TrimSpace(lines[2]), "\t")
	wantHeader := []string{"index", "model", "# MSA sequences", "# MSA sites", "A frequency", "C frequency", "G frequency", "T frequency", "Gamma parameter", "base frequencies entropy", "score", "rank"}
	if strings.Join(header, "|") != strings.Join(wantHeader, "|") {
		t.Errorf("report header: got %q, want %q", header, wantHeader)
	}
}

func TestRankMissing(t *testing.T) {
	tab, err := features.Expand(testSample(t), 0)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}

	scores, err := features.ReadScores(strings.NewReader("index\tmodel\tscore\n0\tJC\t0.5\n"))
	if err != nil {
		t.Fatalf("read scores: %v", err)
	}
	if err := tab.Rank(scores); err == nil {
		t.Errorf("missing scores: expecting error")
	}

	bad := map[string]string{
		"no score field": "index\tmodel\n0\tJC\n",
		"invalid model":  "index\tmodel\tscore\n0\tWAG\t0.5\n",
		"invalid score":  "index\tmodel\tscore\n0\tJC\tgood\n",
	}
	for name, blob := range bad {
		if _, err := features.ReadScores(strings.NewReader(blob)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}
