// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package msa is a metapackage for commands
// that dealt with sequence alignments.
package msa

import (
	"github.com/js-arias/command"
	"github.com/js-arias/mteller/cmd/mteller/msa/stats"
)

var Command = &command.Command{
	Usage: "msa <command> [<argument>...]",
	Short: "commands for sequence alignments",
}

func init() {
	Command.Add(stats.Command)
}
