// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package plot implements a command to plot
// the distribution of branch lengths
// and patristic distances of a tree.
package plot

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/mteller/palette"
	"github.com/js-arias/mteller/phylo"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var Command = &command.Command{
	Usage: `plot [-o|--output <prefix>] [--color <scheme>] [--bins <value>]
	[--topo] <newick-file>`,
	Short: "plot branch length and distance distributions",
	Long: `
Command plot reads a tree in newick format and draws the histograms of the
branch lengths and of the patristic distances between the terminals of the
tree.

The argument of the command is the name of the newick file.

Two PNG files are produced, one with the suffix "-bl.png" for the branch
lengths, and one with the suffix "-diam.png" for the distances. By default,
the prefix of the files is the name of the newick file without its
extension. Use the flag --output, or -o, to set a different prefix.

By default, the distances are the sum of the branch lengths between each
pair of terminals. If the flag --topo is set, the distances will be the
number of branches between each pair of terminals.

The flag --bins sets the number of bins of each histogram. The default is 20.

The flag --color sets the color scheme used to fill the bars. Valid values
are:

	gray          a gray scale between black and gray
	gray2         a gray scale between black and light gray
	incandescent  the incandescent color scheme of Paul Tol
	iridescent    the iridescent color scheme of Paul Tol
	rainbow       the rainbow color scheme of Paul Tol (the default)
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string
var colorScheme string
var binsFlag int
var topoFlag bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&colorScheme, "color", "rainbow", "")
	c.Flags().IntVar(&binsFlag, "bins", 20, "")
	c.Flags().BoolVar(&topoFlag, "topo", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting newick file")
	}
	if binsFlag < 1 {
		return c.UsageError(fmt.Sprintf("invalid number of bins: %d", binsFlag))
	}

	g, err := palette.Parse(colorScheme)
	if err != nil {
		return err
	}
	colors := palette.Steps(g, 5)

	t, err := phylo.ReadNewick(args[0])
	if err != nil {
		return err
	}

	prefix := output
	if prefix == "" {
		prefix = strings.TrimSuffix(args[0], filepath.Ext(args[0]))
	}

	bl := phylo.BranchLengths(t)
	if err := histogram(prefix+"-bl.png", "branch lengths", "branch length", bl, colors[1]); err != nil {
		return err
	}

	mode := phylo.Actual
	label := "distance"
	if topoFlag {
		mode = phylo.Topological
		label = "number of branches"
	}
	d := phylo.Distances(t, mode)
	if len(d) == 0 {
		return fmt.Errorf("tree %q: not enough terminals", args[0])
	}
	if err := histogram(prefix+"-diam.png", "patristic distances", label, d, colors[3]); err != nil {
		return err
	}
	return nil
}

func histogram(name, title, label string, values []float64, fill color.Color) error {
	p := plot.New()
	mean, std := stat.PopMeanStdDev(values, nil)
	p.Title.Text = fmt.Sprintf("%s (mean %.4g, std %.4g)", title, mean, std)
	p.X.Label.Text = label
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(values), binsFlag)
	if err != nil {
		return fmt.Errorf("while making histogram %q: %v", name, err)
	}
	h.FillColor = fill
	h.LineStyle.Width = vg.Length(0)
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, name); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	return nil
}
