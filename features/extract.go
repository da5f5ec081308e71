// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package features

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/js-arias/mteller/align"
	"github.com/js-arias/mteller/model"
	"github.com/js-arias/mteller/phylo"
	"github.com/js-arias/mteller/phyml"
)

// Prefix of the features of the alignment
// reduced to the ingroup.
const ReducedPrefix = "rmsa_"

// TreeModel is the model used to estimate
// the tree and the model parameters.
var TreeModel = model.Model{Base: model.GTR, Tag: model.InvGamma}

// AlignmentFeatures returns the features of an alignment.
//
// If reduced is true,
// only the conservation,
// entropy,
// and site pattern features are calculated.
func AlignmentFeatures(a *align.Alignment, reduced bool) (*Sample, error) {
	s := NewSample()

	pinv, err := align.ConservedFraction(a)
	if err != nil {
		return nil, err
	}
	s.Set("pinv_sites_100p", pinv)

	ent, err := align.Entropy(a)
	if err != nil {
		return nil, err
	}
	s.Set("aln_entropy", ent)

	stat, distinct, frac := align.Multinomial(a)
	s.Set("bollback_multinomial", stat)
	s.Set("n_unique_sites", float64(distinct))
	s.Set("frac_unique_sites", frac)

	if reduced {
		return s, nil
	}

	r := align.SubstitutionRates(a)
	s.Set("transition_avg", r.Transition)
	s.Set("transversion_avg", r.Transversion)
	s.Set("sop_score", float64(r.SOP))
	for i, n := range align.SubNames {
		s.Set(strings.ToLower(n)+"_subs", r.Subs[i])
	}

	freqs, err := align.BaseFreqs(a)
	if err != nil {
		return nil, err
	}
	for i, b := range align.Bases {
		s.Set("freq_"+string(b), freqs[i])
	}
	return s, nil
}

// TreeFeatures returns the features of a tree
// and the statistics of the model
// used to estimate it.
//
// The tree is rerooted at its longest branch
// before calculating the stemminess indices.
// If the tree can not be rerooted,
// the original root is kept.
func TreeFeatures(t *phylo.Tree, rp *phyml.Report, logger *slog.Logger) (*Sample, error) {
	s := NewSample()

	bl, err := phylo.BranchLengthStats(t)
	if err != nil {
		return nil, fmt.Errorf("branch lengths: %v", err)
	}
	setSummary(s, "bl", bl)

	diam, err := phylo.Diameters(t, phylo.Actual)
	if err != nil {
		return nil, fmt.Errorf("diameters: %v", err)
	}
	setSummary(s, "diam", diam)

	cnt, err := phylo.Diameters(t, phylo.Topological)
	if err != nil {
		return nil, fmt.Errorf("diameters: %v", err)
	}
	setSummary(s, "diam_cnt", cnt)

	s.Set("frac_cherries", phylo.CherryFraction(t))

	if err := t.SetOutgroup(phylo.LongestBranch(t)); err != nil {
		logger.Debug("tree not rerooted", "error", err)
	}

	cum, nonCum, err := phylo.Stemminess(t)
	if err != nil {
		return nil, err
	}
	s.Set("stemminess85_idx", cum)
	s.Set("stemminess90_idx", nonCum)

	if rp != nil {
		for _, f := range rp.Fields() {
			if err := s.Set(f.Name, f.Value); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func setSummary(s *Sample, suffix string, sum phylo.Summary) {
	s.Set("max_"+suffix, sum.Max)
	s.Set("min_"+suffix, sum.Min)
	s.Set("mean_"+suffix, sum.Mean)
	s.Set("std_"+suffix, sum.Std)
	s.Set("entropy_"+suffix, sum.Entropy)
}

// Ingroup returns the names of the terminals
// of the ingroup and the outgroup
// of a tree,
// relative to its longest branch.
//
// The terminals that are not descendants
// of the node with the longest branch
// are the ingroup,
// unless the descendants of that node
// are more numerous.
func Ingroup(t *phylo.Tree) (ingroup, outgroup []string) {
	sub, rest := phylo.Partition(t, phylo.LongestBranch(t))
	in, out := rest, sub
	if len(sub) > len(rest) {
		in, out = sub, rest
	}
	return nodeNames(in), nodeNames(out)
}

func nodeNames(nodes []*phylo.Node) []string {
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name)
	}
	return names
}

// Build builds a sample
// from the features of an alignment,
// the alignment reduced to the ingroup,
// and the tree.
func Build(a *align.Alignment, full, reduced, tree *Sample) (*Sample, error) {
	s := NewSample()
	s.Set("ntaxa", float64(a.Len()))
	s.Set("nchars", float64(a.NChars()))

	if err := s.Merge("", full); err != nil {
		return nil, err
	}
	if err := s.Merge(ReducedPrefix, reduced); err != nil {
		return nil, err
	}
	if err := s.Merge(TreeModel.String()+"_", tree); err != nil {
		return nil, err
	}
	return s, nil
}

// Mode is the way in which the tree
// used to calculate the features is estimated.
type Mode int

// Valid tree modes.
const (
	// RatesTree optimizes the model parameters
	// on a distance tree built by PhyML.
	RatesTree Mode = iota

	// MLTree uses the maximum likelihood tree.
	MLTree

	// UserTree optimizes the model parameters
	// on a tree defined by the user.
	UserTree
)

// Input is the input for the extraction of features.
type Input struct {
	// Alignment is the alignment,
	// and Path is the path of the alignment file
	// in PHYLIP format.
	Alignment *align.Alignment
	Path      string

	Mode Mode

	// Tree is the path of the user tree
	// (used only if mode is UserTree).
	Tree string
}

// Request returns the request for the tree
// used to calculate the features.
func (in Input) Request() (phyml.Request, error) {
	r := phyml.Request{
		Alignment: in.Path,
		Model:     TreeModel,
	}
	switch in.Mode {
	case RatesTree:
		r.Topology = phyml.Rates
		r.RunID = "rates_" + TreeModel.String()
	case MLTree:
		r.Topology = phyml.ML
	case UserTree:
		if in.Tree == "" {
			return phyml.Request{}, errors.New("undefined user tree")
		}
		r.Topology = phyml.Rates
		r.RunID = "rates_trueTree"
		r.Tree = in.Tree
	default:
		return phyml.Request{}, fmt.Errorf("unknown tree mode %d", in.Mode)
	}
	return r, nil
}

// Extract extracts the features of an alignment.
// It returns the sample
// and the result of the tree estimation.
func Extract(ctx context.Context, p phyml.Producer, logger *slog.Logger, in Input) (*Sample, phyml.Result, error) {
	a := in.Alignment
	logger.Info("alignment features", "taxa", a.Len(), "chars", a.NChars())
	full, err := AlignmentFeatures(a, false)
	if err != nil {
		return nil, phyml.Result{}, fmt.Errorf("alignment features: %w", err)
	}

	req, err := in.Request()
	if err != nil {
		return nil, phyml.Result{}, err
	}
	res, err := p.Produce(ctx, req)
	if err != nil {
		return nil, phyml.Result{}, err
	}

	t, err := phylo.ReadNewick(res.Tree)
	if err != nil {
		return nil, phyml.Result{}, err
	}
	if err := CheckTerms(a, t); err != nil {
		return nil, phyml.Result{}, fmt.Errorf("tree %q: %v", res.Tree, err)
	}
	rp, err := phyml.ReadStats(res.Stats)
	if err != nil {
		return nil, phyml.Result{}, err
	}

	logger.Info("tree features", "tree", res.Tree, "terminals", len(t.Leaves()))
	tf, err := TreeFeatures(t, rp, logger)
	if err != nil {
		return nil, phyml.Result{}, fmt.Errorf("tree %q: %w", res.Tree, err)
	}

	ingroup, outgroup := Ingroup(t)
	logger.Info("ingroup", "ingroup", len(ingroup), "outgroup", len(outgroup))
	ra, err := a.Reduce(ingroup)
	if err != nil {
		return nil, phyml.Result{}, err
	}
	rf, err := AlignmentFeatures(ra, true)
	if err != nil {
		return nil, phyml.Result{}, fmt.Errorf("reduced alignment features: %w", err)
	}

	s, err := Build(a, full, rf, tf)
	if err != nil {
		return nil, phyml.Result{}, err
	}
	return s, res, nil
}

// CheckTerms checks that the terminals of a tree
// are the same as the sequences of an alignment.
func CheckTerms(a *align.Alignment, t *phylo.Tree) error {
	terms := t.Terms()
	slices.Sort(terms)
	names := a.Names()
	slices.Sort(names)
	if !slices.Equal(terms, names) {
		return errors.New("tree terminals and alignment sequences do not match")
	}
	return nil
}
