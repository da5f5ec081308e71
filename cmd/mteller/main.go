// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Mteller is a tool to extract the features
// of a nucleotide alignment
// used to select a substitution model.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/mteller/cmd/mteller/features"
	"github.com/js-arias/mteller/cmd/mteller/msa"
	"github.com/js-arias/mteller/cmd/mteller/param"
	"github.com/js-arias/mteller/cmd/mteller/rank"
	"github.com/js-arias/mteller/cmd/mteller/tree"
)

var app = &command.Command{
	Usage: "mteller <command> [<argument>...]",
	Short: "a tool for substitution model selection",
}

func init() {
	app.Add(features.Command)
	app.Add(msa.Command)
	app.Add(param.Command)
	app.Add(rank.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}
