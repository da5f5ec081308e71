// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package palette implements color gradients
// used to fill the plots of tree statistics.
package palette

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/js-arias/blind"
)

// Gradienter is an interface for types
// that return a color gradient.
type Gradienter interface {
	Gradient(v float64) color.Color
}

// Names of the defined gradients.
var Names = []string{"gray", "gray2", "incandescent", "iridescent", "rainbow"}

// Parse returns a gradient from its name.
func Parse(name string) (Gradienter, error) {
	switch strings.ToLower(name) {
	case "gray":
		return HalfGrayScale{}, nil
	case "gray2":
		return LightGrayScale{}, nil
	case "", "rainbow":
		return RainbowPurpleToRed{}, nil
	case "incandescent":
		return Incandescent{}, nil
	case "iridescent":
		return Iridescent{}, nil
	}
	return nil, fmt.Errorf("unknown color scheme %q", name)
}

// Steps returns n colors evenly spaced
// along a gradient.
func Steps(g Gradienter, n int) []color.Color {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []color.Color{g.Gradient(0.5)}
	}
	cs := make([]color.Color, n)
	for i := range cs {
		cs[i] = g.Gradient(float64(i) / float64(n-1))
	}
	return cs
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// HalfGrayScale returns a gray scale
// between 0 (black)
// and 128 (gray).
type HalfGrayScale struct{}

func (h HalfGrayScale) Gradient(v float64) color.Color {
	c := 128 - uint8(clamp(v)*128)
	return color.RGBA{c, c, c, 255}
}

// LightGrayScale returns a gray scale
// between 0 (black)
// to 200 (light gray).
type LightGrayScale struct{}

func (l LightGrayScale) Gradient(v float64) color.Color {
	c := 200 - uint8(clamp(v)*200)
	return color.RGBA{c, c, c, 255}
}

// Incandescent is the incandescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_incandescent>.
type Incandescent struct{}

func (i Incandescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Incandescent, clamp(v))
}

// Iridescent is the iridescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_iridescent>.
type Iridescent struct{}

func (i Iridescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Iridescent, clamp(v))
}

// RainbowPurpleToRed is the rainbow color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_rainbow_smooth>
// starting at purple and ending at red.
type RainbowPurpleToRed struct{}

func (r RainbowPurpleToRed) Gradient(v float64) color.Color {
	return blind.Sequential(blind.RainbowPurpleToRed, clamp(v))
}
