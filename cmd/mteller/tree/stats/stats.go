// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package stats implements a command to print
// the statistics of a phylogenetic tree.
package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/mteller/features"
	"github.com/js-arias/mteller/logger"
	"github.com/js-arias/mteller/phylo"
	"github.com/js-arias/mteller/phyml"
)

var Command = &command.Command{
	Usage: `stats [--phyml <stats-file>] [--ingroup] [--verbose]
	<newick-file>`,
	Short: "print tree statistics",
	Long: `
Command stats reads a tree in newick format and prints the statistics of the
tree used as features.

The argument of the command is the name of the newick file. Only the first
tree of the file is read.

The statistics include the summaries of the branch lengths, of the patristic
distances between terminals, and of the number of branches between
terminals, the fraction of cherries, and the stemminess indices. The
stemminess indices are calculated after rerooting the tree at its longest
branch.

If the flag --phyml is set, the indicated PhyML statistics file will be read,
and the parameters of the model will be printed too.

The output is a tab-delimited table with the fields "feature", "value", and
"description".

If the flag --ingroup is set, instead of the statistics, it will print the
terminals of the ingroup and the outgroup defined by the longest branch of
the tree.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var phymlFile string
var ingroupFlag bool
var verboseFlag bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&phymlFile, "phyml", "", "")
	c.Flags().BoolVar(&ingroupFlag, "ingroup", false, "")
	c.Flags().BoolVar(&verboseFlag, "verbose", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting newick file")
	}

	t, err := phylo.ReadNewick(args[0])
	if err != nil {
		return err
	}

	if ingroupFlag {
		ingroup, outgroup := features.Ingroup(t)
		for _, n := range ingroup {
			fmt.Fprintf(c.Stdout(), "ingroup\t%s\n", n)
		}
		for _, n := range outgroup {
			fmt.Fprintf(c.Stdout(), "outgroup\t%s\n", n)
		}
		return nil
	}

	var rp *phyml.Report
	if phymlFile != "" {
		rp, err = phyml.ReadStats(phymlFile)
		if err != nil {
			return err
		}
	}

	lg := logger.New(c.Stderr(), verboseFlag)
	s, err := features.TreeFeatures(t, rp, lg)
	if err != nil {
		return fmt.Errorf("tree %q: %v", args[0], err)
	}

	fmt.Fprintf(c.Stdout(), "# tree %s: %d terminals\n", args[0], len(t.Leaves()))
	return printSample(c.Stdout(), s)
}

func printSample(w io.Writer, s *features.Sample) error {
	prefix := features.TreeModel.String() + "_"
	fmt.Fprintf(w, "feature\tvalue\tdescription\n")
	for _, k := range s.Keys() {
		v := strconv.FormatFloat(s.Value(k), 'g', 6, 64)
		name := strings.TrimPrefix(features.Name(prefix+k), prefix)
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", k, v, name); err != nil {
			return err
		}
	}
	return nil
}
