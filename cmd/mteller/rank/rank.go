// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rank implements a command to rank
// the substitution models of a feature table
// using the scores of a classifier.
package rank

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/mteller/align"
	"github.com/js-arias/mteller/features"
	"github.com/js-arias/mteller/logger"
	"github.com/js-arias/mteller/model"
	"github.com/js-arias/mteller/phylo"
	"github.com/js-arias/mteller/phyml"
)

var Command = &command.Command{
	Usage: `rank --scores <file> [-o|--output <file>]
	[--phyml --msa <file> [--gtrig | --tree <file>] [--param <file>]]
	[--index <value>] [--verbose] <feature-table>`,
	Short: "rank substitution models",
	Long: `
Command rank reads a feature table and the scores assigned by a classifier to
each model, and ranks the models of each alignment in the table. The model
with the lowest score receives rank 1, and models with the same score share
the lowest rank. The selected model of each alignment is the first model with
rank 1, and it is printed in the standard output.

The argument of the command is the name of the feature table, as produced by
the command 'mteller features'.

The flag --scores is required and defines a tab-delimited file with the
scores. The file must contain the fields "index", "model", and "score",
and there must be a score for each row of the feature table.

The table with the features, using descriptive names, the scores, and the
ranks, will be written in the file "features-with-models-rankings.tab". Use
the flag --output, or -o, to define a different file.

If the flag --phyml is set, PhyML will be run to estimate the tree of the
alignment defined with the flag --msa using the selected model. By default
the selected model of the alignment with index 0 is used; use the flag
--index to define a different alignment. If the flag --gtrig is set, the
topology of the maximum likelihood tree under GTR+I+G estimated by
'mteller features --gtrig' will be fixed. If the flag --tree is set, the
topology of the indicated newick file will be fixed. Otherwise the topology
will be estimated by PhyML.

The parameters used to run PhyML are read from the file defined by the flag
--param. If the flag is not set, the file "mteller-param.tab" will be used if
it exists.
	`,
	SetFlags: setFlags,
	Run:      run,
}

const defaultOutput = "features-with-models-rankings.tab"

var phymlFlag bool
var gtrigFlag bool
var verboseFlag bool
var indexFlag int
var scoresFile string
var output string
var msaFile string
var treeFile string
var paramFile string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&phymlFlag, "phyml", false, "")
	c.Flags().BoolVar(&gtrigFlag, "gtrig", false, "")
	c.Flags().BoolVar(&verboseFlag, "verbose", false, "")
	c.Flags().IntVar(&indexFlag, "index", 0, "")
	c.Flags().StringVar(&scoresFile, "scores", "", "")
	c.Flags().StringVar(&output, "output", defaultOutput, "")
	c.Flags().StringVar(&output, "o", defaultOutput, "")
	c.Flags().StringVar(&msaFile, "msa", "", "")
	c.Flags().StringVar(&treeFile, "tree", "", "")
	c.Flags().StringVar(&paramFile, "param", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting feature table file")
	}
	if scoresFile == "" {
		return c.UsageError("expecting scores file, flag --scores")
	}
	if phymlFlag && msaFile == "" {
		return c.UsageError("expecting alignment file, flag --msa")
	}
	if gtrigFlag && treeFile != "" {
		return c.UsageError("flags --gtrig and --tree can not be used together")
	}

	lg := logger.New(c.Stderr(), verboseFlag)

	t, err := readTable(args[0])
	if err != nil {
		return err
	}
	scores, err := readScores(scoresFile)
	if err != nil {
		return err
	}
	if err := t.Rank(scores); err != nil {
		return fmt.Errorf("on file %q: %v", scoresFile, err)
	}
	if err := writeReport(output, t); err != nil {
		return err
	}
	lg.Info("rankings", "file", output)

	for _, idx := range indices(t) {
		m, err := t.Selected(idx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Stdout(), "%d\t%s\n", idx, m)
	}

	if !phymlFlag {
		return nil
	}
	m, err := t.Selected(indexFlag)
	if err != nil {
		return err
	}
	return finalTree(c.Stdout(), lg, m)
}

func indices(t *features.Table) []int {
	var idx []int
	seen := make(map[int]bool)
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		if seen[r.Index] {
			continue
		}
		seen[r.Index] = true
		idx = append(idx, r.Index)
	}
	return idx
}

// finalTree runs PhyML with the selected model.
func finalTree(w io.Writer, lg *slog.Logger, m model.Model) error {
	a, format, err := align.Read(msaFile)
	if err != nil {
		return err
	}
	path, err := align.PhylipFile(msaFile, a, format)
	if err != nil {
		return err
	}

	req := phyml.Request{
		Alignment: path,
		Model:     m,
		Topology:  phyml.ML,
	}
	switch {
	case gtrigFlag:
		in := features.Input{
			Alignment: a,
			Path:      path,
			Mode:      features.MLTree,
		}
		fr, err := in.Request()
		if err != nil {
			return err
		}
		req.Tree = phyml.Output(fr).Tree
		if _, err := os.Stat(req.Tree); err != nil {
			return fmt.Errorf("%s tree of %q not found: %v", features.TreeModel, msaFile, err)
		}
		req.Topology = phyml.Fixed
	case treeFile != "":
		t, err := phylo.ReadNewick(treeFile)
		if err != nil {
			return err
		}
		if err := features.CheckTerms(a, t); err != nil {
			return fmt.Errorf("tree %q: %v", treeFile, err)
		}
		req.Tree = treeFile
		req.Topology = phyml.Fixed
	}

	p, err := phyml.Open(paramFile)
	if err != nil {
		return err
	}
	rn := phyml.NewRunner(p, lg)
	lg.Info("computing final tree", "model", m, "topology", req.Topology)
	res, err := rn.Produce(context.Background(), req)
	if err != nil {
		return err
	}
	rp, err := phyml.ReadStats(res.Stats)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "tree:\t%s\n", res.Tree)
	if !math.IsNaN(rp.LogL) {
		fmt.Fprintf(w, "log-likelihood:\t%.6f\n", rp.LogL)
	}
	if m.HasInvariant() && !math.IsNaN(rp.PInv) {
		fmt.Fprintf(w, "invariant sites:\t%.6f\n", rp.PInv)
	}
	if !m.HasGamma() || math.IsNaN(rp.Gamma) {
		return nil
	}
	g := p.Gamma(rp.Gamma)
	fmt.Fprintf(w, "%s\n", g)
	for i, r := range g.Cats() {
		fmt.Fprintf(w, "category %d:\t%.6f\n", i+1, r)
	}
	return nil
}

func readTable(name string) (*features.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := features.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, nil
}

func readScores(name string) ([]features.Score, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := features.ReadScores(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return s, nil
}

func writeReport(name string, t *features.Table) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := t.Report(f); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	return nil
}
