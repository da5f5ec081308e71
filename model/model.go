// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package model implements the set of candidate
// nucleotide substitution models
// and their structural properties.
package model

import (
	"fmt"
	"strings"
)

// Base is a base substitution model.
type Base string

// Valid base models.
const (
	JC  Base = "JC"
	F81 Base = "F81"
	K80 Base = "K80"
	HKY Base = "HKY"
	SYM Base = "SYM"
	GTR Base = "GTR"
)

// Tag is a rate heterogeneity tag
// added to a base model.
type Tag string

// Valid rate heterogeneity tags.
const (
	// Equal rates across sites.
	Equal Tag = ""

	// A proportion of invariant sites.
	Invariant Tag = "+I"

	// Gamma distributed rates.
	Gamma Tag = "+G"

	// Invariant sites and gamma distributed rates.
	InvGamma Tag = "+I+G"
)

// bases is the list of base models,
// in canonical order.
var bases = [...]Base{JC, F81, K80, HKY, SYM, GTR}

var tags = [...]Tag{Equal, Invariant, Gamma, InvGamma}

// Class is the number of different substitution rates
// of a base model.
type Class int

// Valid substitution classes.
const (
	// A single rate for all substitutions.
	SingleRate Class = iota

	// Transitions and transversions.
	TwoRates

	// Six different substitution rates.
	SixRates
)

type baseProp struct {
	class     Class
	empirical bool
}

var baseProps = map[Base]baseProp{
	JC:  {class: SingleRate},
	F81: {class: SingleRate, empirical: true},
	K80: {class: TwoRates},
	HKY: {class: TwoRates, empirical: true},
	SYM: {class: SixRates},
	GTR: {class: SixRates, empirical: true},
}

// A Model is a candidate substitution model.
type Model struct {
	Base Base
	Tag  Tag
}

// NumModels is the number of candidate models.
const NumModels = len(bases) * len(tags)

// All returns all the candidate models.
// The order is fixed:
// each base model with all its tags
// (e.g., JC, JC+I, JC+G, JC+I+G, F81, ...).
func All() []Model {
	ms := make([]Model, 0, NumModels)
	for _, b := range bases {
		for _, t := range tags {
			ms = append(ms, Model{Base: b, Tag: t})
		}
	}
	return ms
}

// Parse returns a model from its name
// (e.g., "GTR+I+G").
func Parse(name string) (Model, error) {
	name = strings.TrimSpace(name)
	b, t, _ := strings.Cut(name, "+")
	m := Model{Base: Base(strings.ToUpper(b))}
	if t != "" {
		m.Tag = Tag("+" + strings.ToUpper(t))
	}
	if _, ok := baseProps[m.Base]; !ok {
		return Model{}, fmt.Errorf("unknown base model %q", b)
	}
	switch m.Tag {
	case Equal, Invariant, Gamma, InvGamma:
	default:
		return Model{}, fmt.Errorf("unknown model %q", name)
	}
	return m, nil
}

// String returns the name of the model.
func (m Model) String() string {
	return string(m.Base) + string(m.Tag)
}

// HasInvariant returns true
// if the model has a proportion of invariant sites.
func (m Model) HasInvariant() bool {
	return m.Tag == Invariant || m.Tag == InvGamma
}

// HasGamma returns true
// if the model has gamma distributed rates.
func (m Model) HasGamma() bool {
	return m.Tag == Gamma || m.Tag == InvGamma
}

// HasEmpiricalFreqs returns true
// if the base frequencies of the model
// are estimated from the data.
func (m Model) HasEmpiricalFreqs() bool {
	return baseProps[m.Base].empirical
}

// MatrixClass returns the substitution class
// of the model.
func (m Model) MatrixClass() Class {
	return baseProps[m.Base].class
}
