// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package stats implements a command to print
// the statistics of an alignment.
package stats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/mteller/align"
	"github.com/js-arias/mteller/features"
	"github.com/js-arias/mteller/phylo"
)

var Command = &command.Command{
	Usage: "stats [--tree <file>] <alignment-file>",
	Short: "print alignment statistics",
	Long: `
Command stats reads an alignment and prints the statistics of the alignment
used as features, without running PhyML.

The argument of the command is the name of the alignment file, in FASTA or
PHYLIP format.

If the flag --tree is set, the indicated newick file will be used to define
the ingroup of the alignment, and the statistics of the alignment reduced to
the ingroup will be printed too.

The output is a tab-delimited table with the fields "feature", "value", and
"description".
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "tree", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting alignment file")
	}

	a, format, err := align.Read(args[0])
	if err != nil {
		return err
	}
	if bad := a.Validate(); len(bad) > 0 {
		fmt.Fprintf(c.Stderr(), "warning: alignment %q: non-nucleotide characters: %s\n", args[0], bad)
	}

	s := features.NewSample()
	s.Set("ntaxa", float64(a.Len()))
	s.Set("nchars", float64(a.NChars()))
	full, err := features.AlignmentFeatures(a, false)
	if err != nil {
		return fmt.Errorf("alignment %q: %v", args[0], err)
	}
	if err := s.Merge("", full); err != nil {
		return err
	}

	if treeFile != "" {
		t, err := phylo.ReadNewick(treeFile)
		if err != nil {
			return err
		}
		if err := features.CheckTerms(a, t); err != nil {
			return fmt.Errorf("tree %q: %v", treeFile, err)
		}
		ingroup, _ := features.Ingroup(t)
		ra, err := a.Reduce(ingroup)
		if err != nil {
			return err
		}
		rs, err := features.AlignmentFeatures(ra, true)
		if err != nil {
			return fmt.Errorf("reduced alignment %q: %v", args[0], err)
		}
		if err := s.Merge(features.ReducedPrefix, rs); err != nil {
			return err
		}
	}

	fmt.Fprintf(c.Stdout(), "# alignment %s (%s)\n", args[0], format)
	return printSample(c.Stdout(), s)
}

func printSample(w io.Writer, s *features.Sample) error {
	fmt.Fprintf(w, "feature\tvalue\tdescription\n")
	for _, k := range s.Keys() {
		v := strconv.FormatFloat(s.Value(k), 'g', 6, 64)
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", k, v, features.Name(k)); err != nil {
			return err
		}
	}
	return nil
}
