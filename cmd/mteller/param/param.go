// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package param implements a command to manage
// the parameters used to run PhyML.
package param

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/mteller/phyml"
)

var Command = &command.Command{
	Usage: `param [--file <file-name>] [--bin <path>] [--args <text>]
	[--cats <value>] [--median=<bool>] [--reuse=<bool>]`,
	Short: "manage PhyML parameters",
	Long: `
Command param manages the parameters used to run PhyML.

By default, the command will print the parameters defined in the file
"mteller-param.tab" of the current directory, or the default parameters if
the file does not exist. Use the flag --file to define a different parameter
file. Any change on the parameters will be stored in the parameter file.

The flag --bin sets the path of the PhyML executable. The default is "phyml",
that is, the executable is searched in the system path.

The flag --args sets additional arguments that will be used on each PhyML
run, for example "--r_seed 42". Use an empty string ("") to remove previously
defined arguments.

The flag --cats sets the number of categories of the discrete gamma
distribution used in models with rate heterogeneity. The default is 4. If the
flag --median is set to true, the median of each category will be used
instead of the mean.

By default, if a PhyML output already exists and it is not empty, it will be
used instead of running PhyML again. Use --reuse=false to always run PhyML.

A parameter file is a tab-delimited file with the fields "parameter" and
"value". Here is an example file:

	# mteller phyml parameters
	parameter	value
	bin	/usr/local/bin/phyml
	args	--r_seed 42
	cats	4
	median	false
	reuse	true
	`,
	SetFlags: setFlags,
	Run:      run,
}

var paramFile string
var binFlag string
var argsFlag string
var catsFlag int
var medianFlag bool
var reuseFlag bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&paramFile, "file", "", "")
	c.Flags().StringVar(&binFlag, "bin", "", "")
	c.Flags().StringVar(&argsFlag, "args", "", "")
	c.Flags().IntVar(&catsFlag, "cats", 0, "")
	c.Flags().BoolVar(&medianFlag, "median", false, "")
	c.Flags().BoolVar(&reuseFlag, "reuse", true, "")
}

func run(c *command.Command, args []string) error {
	p, err := phyml.Open(paramFile)
	if err != nil {
		return err
	}

	set := make(map[string]bool)
	c.Flags().Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	ed := false
	if set["bin"] {
		if err := p.SetBin(binFlag); err != nil {
			return err
		}
		ed = true
	}
	if set["args"] {
		p.SetArgs(argsFlag)
		ed = true
	}
	if set["cats"] {
		if err := p.SetCats(catsFlag); err != nil {
			return err
		}
		ed = true
	}
	if set["median"] {
		p.SetMedian(medianFlag)
		ed = true
	}
	if set["reuse"] {
		p.SetReuse(reuseFlag)
		ed = true
	}
	if ed {
		return p.Write()
	}

	printParams(c.Stdout(), p)
	return nil
}

func printParams(w io.Writer, p *phyml.Params) {
	fmt.Fprintf(w, "file:        %s\n", p.Name())
	fmt.Fprintf(w, "bin:         %s\n", p.Bin())
	if args := p.Args(); len(args) > 0 {
		fmt.Fprintf(w, "args:        %s\n", strings.Join(args, " "))
	}
	fmt.Fprintf(w, "categories:  %d\n", p.Cats())
	if p.Median() {
		fmt.Fprintf(w, "median:      true\n")
	}
	fmt.Fprintf(w, "reuse:       %v\n", p.Reuse())
}
