// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cats implements discrete categories
// of among-site rate variation
// from a continuous probability distribution function.
// Each category is expected to have the same probability.
package cats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// Discrete is a discrete category distribution.
type Discrete interface {
	// Cats returns the values of the different categories.
	Cats() []float64

	// String output for the function name and parameters.
	String() string
}

// Gamma is a discretized Gamma distribution
// with mean 1
// (i.e., the shape and rate parameters are equal),
// as used for rate variation across sites
// (Yang 1994).
type Gamma struct {
	// Shape parameter of the gamma distribution.
	Alpha float64

	// Number of categories
	NumCat int

	// If true,
	// the median of each category is used
	// instead of the mean.
	Median bool
}

// Cats returns the rates for a Gamma distribution
// discretized in equal probability categories.
func (g Gamma) Cats() []float64 {
	if g.NumCat < 1 || !(g.Alpha > 0) {
		return nil
	}
	if g.NumCat == 1 {
		return []float64{1}
	}

	d := distuv.Gamma{
		Alpha: g.Alpha,
		Beta:  g.Alpha,
	}
	if g.Median {
		return medianCats(d, g.NumCat)
	}

	cats := make([]float64, g.NumCat)
	n := float64(g.NumCat)
	prev := 0.0
	for i := range cats {
		next := 1.0
		if i < g.NumCat-1 {
			x := d.Quantile(float64(i+1) / n)
			next = mathext.GammaIncReg(g.Alpha+1, x*g.Alpha)
		}
		cats[i] = n * (next - prev)
		prev = next
	}
	return cats
}

// String output for the function name and parameters.
func (g Gamma) String() string {
	return fmt.Sprintf("gamma=%.6f", g.Alpha)
}

// Quantiler is a interfaces for distributions
// with a Quantile function
// (the inverse of the CDF function).
type quantiler interface {
	Quantile(p float64) float64
}

// medianCats returns the median of each category
// scaled so the mean of the categories is 1.
func medianCats(q quantiler, n int) []float64 {
	cats := make([]float64, n)
	var sum float64
	for i := range cats {
		p := (float64(i) + 0.5) / float64(n)
		cats[i] = q.Quantile(p)
		sum += cats[i]
	}
	if sum == 0 || math.IsInf(sum, 0) {
		return cats
	}
	for i := range cats {
		cats[i] *= float64(n) / sum
	}
	return cats
}
