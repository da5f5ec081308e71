// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package palette_test

import (
	"image/color"
	"testing"

	"github.com/js-arias/mteller/palette"
)

func TestParse(t *testing.T) {
	for _, n := range palette.Names {
		if _, err := palette.Parse(n); err != nil {
			t.Errorf("%s: unexpected error: %v", n, err)
		}
	}
	if _, err := palette.Parse("RAINBOW"); err != nil {
		t.Errorf("upper case: unexpected error: %v", err)
	}
	if _, err := palette.Parse("viridis"); err == nil {
		t.Errorf("unknown scheme: expecting error")
	}
}

func TestGrayScale(t *testing.T) {
	tests := map[string]struct {
		g    palette.Gradienter
		v    float64
		want color.RGBA
	}{
		"half black":  {palette.HalfGrayScale{}, 1, color.RGBA{0, 0, 0, 255}},
		"half gray":   {palette.HalfGrayScale{}, 0, color.RGBA{128, 128, 128, 255}},
		"half clamp":  {palette.HalfGrayScale{}, -3, color.RGBA{128, 128, 128, 255}},
		"light black": {palette.LightGrayScale{}, 2, color.RGBA{0, 0, 0, 255}},
		"light gray":  {palette.LightGrayScale{}, 0, color.RGBA{200, 200, 200, 255}},
	}

	for name, test := range tests {
		if got := test.g.Gradient(test.v); got != test.want {
			t.Errorf("%s: got %v, want %v", name, got, test.want)
		}
	}
}

func TestSteps(t *testing.T) {
	g := palette.HalfGrayScale{}
	cs := palette.Steps(g, 3)
	if len(cs) != 3 {
		t.Fatalf("steps: got %d colors, want %d", len(cs), 3)
	}
	if cs[0] != g.Gradient(0) || cs[2] != g.Gradient(1) {
		t.Errorf("steps: got %v, want gradient ends", cs)
	}
	if cs := palette.Steps(g, 0); cs != nil {
		t.Errorf("zero steps: got %v, want nil", cs)
	}
}
