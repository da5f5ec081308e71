// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package features implements a command to extract
// the features of an alignment.
package features

import (
	"context"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/mteller/align"
	"github.com/js-arias/mteller/features"
	"github.com/js-arias/mteller/logger"
	"github.com/js-arias/mteller/phylo"
	"github.com/js-arias/mteller/phyml"
)

var Command = &command.Command{
	Usage: `features [--gtrig | --tree <file>] [--param <file>]
	[--index <value>] [-o|--output <file>] [--classifier <file>]
	[--verbose] <alignment-file>`,
	Short: "extract the features of an alignment",
	Long: `
Command features reads a nucleotide alignment, runs PhyML to estimate a tree
under the GTR+I+G model, and writes a table with the features of the
alignment for each of the 24 substitution models.

The argument of the command is the name of the alignment file. The alignment
can be in FASTA or PHYLIP format. If the alignment is not in relaxed PHYLIP
format, a copy in that format, with the extension ".phy", will be written
alongside the original file, and PhyML will read that copy. The output files
of PhyML are written in the same directory of the alignment.

By default, the tree used to calculate the features is a distance tree with
the model parameters optimized by PhyML. If the flag --gtrig is set, the
maximum likelihood tree will be used. If the flag --tree is set, the
indicated newick file will be used as the tree topology; the terminals of
the tree must be the same as the sequences of the alignment.

The parameters used to run PhyML are read from the file defined by the flag
--param. If the flag is not set, the file "mteller-param.tab" will be used if
it exists. See 'mteller help param' for details on the parameter file.

By default, the index of the alignment in the table is 0. Use the flag
--index to set a different index.

By default, the table will be printed in the standard output. Use the flag
--output, or -o, to define an output file. The flag --classifier defines a
file to write only the features used as input of the classifier.

Progress messages are printed in the standard error. Use the flag --verbose
to print the details of each step.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var gtrigFlag bool
var verboseFlag bool
var treeFile string
var paramFile string
var output string
var classFile string
var indexFlag int

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&gtrigFlag, "gtrig", false, "")
	c.Flags().BoolVar(&verboseFlag, "verbose", false, "")
	c.Flags().IntVar(&indexFlag, "index", 0, "")
	c.Flags().StringVar(&treeFile, "tree", "", "")
	c.Flags().StringVar(&paramFile, "param", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&classFile, "classifier", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting alignment file")
	}
	if gtrigFlag && treeFile != "" {
		return c.UsageError("flags --gtrig and --tree can not be used together")
	}

	lg := logger.New(c.Stderr(), verboseFlag)

	a, format, err := align.Read(args[0])
	if err != nil {
		return err
	}
	lg.Info("alignment", "file", args[0], "format", format, "taxa", a.Len(), "chars", a.NChars())
	if bad := a.Validate(); len(bad) > 0 {
		lg.Warn("alignment with non-nucleotide characters", "file", args[0], "chars", string(bad))
	}

	in := features.Input{
		Alignment: a,
		Mode:      features.RatesTree,
	}
	in.Path, err = align.PhylipFile(args[0], a, format)
	if err != nil {
		return err
	}
	if in.Path != args[0] {
		lg.Info("alignment converted to PHYLIP", "file", in.Path)
	}
	switch {
	case gtrigFlag:
		in.Mode = features.MLTree
	case treeFile != "":
		t, err := phylo.ReadNewick(treeFile)
		if err != nil {
			return err
		}
		if err := features.CheckTerms(a, t); err != nil {
			return fmt.Errorf("tree %q: %v", treeFile, err)
		}
		in.Mode = features.UserTree
		in.Tree = treeFile
	}

	p, err := phyml.Open(paramFile)
	if err != nil {
		return err
	}
	rn := phyml.NewRunner(p, lg)

	s, res, err := features.Extract(context.Background(), rn, lg, in)
	if err != nil {
		return err
	}
	lg.Info("features extracted", "features", s.Len(), "tree", res.Tree)

	tb, err := features.Expand(s, indexFlag)
	if err != nil {
		return err
	}

	if classFile != "" {
		ct, err := tb.Select(features.Classifier)
		if err != nil {
			return err
		}
		if err := writeTable(classFile, ct); err != nil {
			return err
		}
	}

	if output == "" {
		return tb.TSV(c.Stdout())
	}
	return writeTable(output, tb)
}

func writeTable(name string, t *features.Table) (err error) {
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

	if err := t.TSV(f); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	return nil
}
