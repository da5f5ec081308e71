// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package features implements the extraction
// of the features of an alignment
// and its phylogenetic tree,
// and the table of features of each candidate
// substitution model,
// used by a classifier to select the best model.
package features

import (
	"errors"
	"fmt"
	"math"
)

// ErrDuplicate is returned when a feature
// is already defined in a sample.
var ErrDuplicate = errors.New("duplicated feature")

// A Sample is an ordered set of named features.
type Sample struct {
	keys []string
	vals map[string]float64
}

// NewSample returns an empty sample.
func NewSample() *Sample {
	return &Sample{vals: make(map[string]float64)}
}

// Set adds a feature to the sample.
func (s *Sample) Set(key string, v float64) error {
	if _, ok := s.vals[key]; ok {
		return fmt.Errorf("feature %q: %w", key, ErrDuplicate)
	}
	s.keys = append(s.keys, key)
	s.vals[key] = v
	return nil
}

// Merge adds all the features of g
// using the indicated prefix.
// If a feature is already in the sample
// the sample is not modified.
func (s *Sample) Merge(prefix string, g *Sample) error {
	for _, k := range g.keys {
		if _, ok := s.vals[prefix+k]; ok {
			return fmt.Errorf("feature %q: %w", prefix+k, ErrDuplicate)
		}
	}
	for _, k := range g.keys {
		s.Set(prefix+k, g.vals[k])
	}
	return nil
}

// Keys returns the names of the features
// in the order they were added.
func (s *Sample) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Len returns the number of features in the sample.
func (s *Sample) Len() int {
	return len(s.keys)
}

// Value returns the value of a feature.
// If the feature is not defined,
// it returns NaN.
func (s *Sample) Value(key string) float64 {
	v, ok := s.vals[key]
	if !ok {
		return math.NaN()
	}
	return v
}

// Has returns true if the feature is defined.
func (s *Sample) Has(key string) bool {
	_, ok := s.vals[key]
	return ok
}
