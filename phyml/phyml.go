// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phyml implements running the PhyML program
// (Guindon et al. 2010)
// to produce maximum likelihood trees
// and the statistics of a substitution model,
// as well as reading the parameters used to run it.
package phyml

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/js-arias/mteller/logger"
	"github.com/js-arias/mteller/model"
)

// Topology is the way in which the tree topology
// is treated in a PhyML run.
type Topology string

// Valid topology treatments.
const (
	// ML searches for the maximum likelihood tree
	// using NNI moves.
	ML Topology = "ml"

	// Rates optimizes only the model parameters.
	Rates Topology = "rates"

	// Fixed optimizes the branch lengths
	// and the model parameters
	// on a fixed topology.
	Fixed Topology = "fixed"

	// NoOpt does not optimize anything.
	NoOpt Topology = "noopt"
)

var optFlags = map[Topology][]string{
	ML:    {"-o", "tlr", "-s", "NNI"},
	Fixed: {"-o", "lr"},
	Rates: {"-o", "r"},
	NoOpt: {"-o", "n"},
}

var classFlags = map[model.Class]string{
	model.SingleRate: "000000",
	model.TwoRates:   "010010",
	model.SixRates:   "012345",
}

const equalFreqs = "0.25,0.25,0.25,0.25"

// A Request is a request
// for a tree and its statistics
// under a given model.
type Request struct {
	// Alignment is the path of the alignment file
	// (in PHYLIP format).
	Alignment string

	Model    model.Model
	Topology Topology

	// Tree is the path of an optional starting
	// (or fixed)
	// tree in Newick format.
	Tree string

	// RunID is the identifier of the run,
	// by default it is the name of the model.
	RunID string
}

func (r Request) runID() string {
	if r.RunID != "" {
		return r.RunID
	}
	return r.Model.String()
}

// A Result contains the paths of the files
// produced by a run.
type Result struct {
	// Stats is the file with the statistics
	// of the model.
	Stats string

	// Tree is the file with the tree in Newick format.
	Tree string
}

// Output returns the paths of the files
// produced by a request.
func Output(r Request) Result {
	base := r.Alignment + "_phyml_%s_" + r.runID() + ".txt"
	return Result{
		Stats: fmt.Sprintf(base, "stats"),
		Tree:  fmt.Sprintf(base, "tree"),
	}
}

// A Producer produces a tree and model statistics.
type Producer interface {
	Produce(ctx context.Context, r Request) (Result, error)
}

// Runner is a Producer that runs the PhyML executable.
type Runner struct {
	param  *Params
	logger *slog.Logger
}

// NewRunner returns a new PhyML runner.
// If p is nil,
// default parameters are used.
// If lg is nil,
// log messages are discarded.
func NewRunner(p *Params, lg *slog.Logger) *Runner {
	if p == nil {
		p = New("")
	}
	if lg == nil {
		lg = logger.Discard()
	}
	return &Runner{
		param:  p,
		logger: lg,
	}
}

// Args returns the command line arguments
// of a request.
func (rn *Runner) Args(r Request) ([]string, error) {
	opt, ok := optFlags[r.Topology]
	if !ok {
		return nil, fmt.Errorf("unknown topology %q", r.Topology)
	}
	if r.Alignment == "" {
		return nil, fmt.Errorf("undefined alignment")
	}
	if r.Topology == Fixed && r.Tree == "" {
		return nil, fmt.Errorf("fixed topology without a tree")
	}

	args := []string{"-i", r.Alignment}

	args = append(args, "-m", classFlags[r.Model.MatrixClass()])
	if r.Model.HasEmpiricalFreqs() {
		args = append(args, "-f", "m")
	} else {
		args = append(args, "-f", equalFreqs)
	}
	if r.Model.HasInvariant() {
		args = append(args, "-v", "e")
	}
	if r.Model.HasGamma() {
		args = append(args, "-a", "e", "-c", strconv.Itoa(rn.param.Cats()))
		if rn.param.Median() {
			args = append(args, "--use_median")
		}
	} else {
		args = append(args, "-c", "1")
	}
	args = append(args, opt...)

	args = append(args, "-d", "nt", "-n", "1", "-b", "0", "--no_memory_check")
	args = append(args, "--run_id", r.runID())
	if r.Tree != "" {
		args = append(args, "-u", r.Tree)
	}
	args = append(args, rn.param.Args()...)
	return args, nil
}

// Produce runs PhyML.
//
// If the statistics file of the request
// already exists and is not empty,
// and the parameters allow reusing previous runs,
// PhyML is not executed.
func (rn *Runner) Produce(ctx context.Context, r Request) (Result, error) {
	out := Output(r)
	args, err := rn.Args(r)
	if err != nil {
		return Result{}, err
	}

	if rn.param.Reuse() && !isEmpty(out.Stats) {
		rn.logger.Info("reusing PhyML output", "model", r.Model, "run", r.runID(), "stats", out.Stats)
		return out, nil
	}

	rn.logger.Info("running PhyML", "model", r.Model, "run", r.runID(), "topology", r.Topology)
	rn.logger.Debug("PhyML command", "bin", rn.param.Bin(), "args", strings.Join(args, " "))
	start := time.Now()

	cmd := exec.CommandContext(ctx, rn.param.Bin(), args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		return Result{}, fmt.Errorf("while running PhyML for model %s: %v\n%s", r.Model, err, lastLines(output.String(), 10))
	}
	if isEmpty(out.Stats) {
		return Result{}, fmt.Errorf("PhyML for model %s: statistics file %q not found", r.Model, out.Stats)
	}
	rn.logger.Info("PhyML done", "model", r.Model, "run", r.runID(), "duration", time.Since(start).Round(time.Millisecond))
	return out, nil
}

// isEmpty returns true if a file does not exist
// or it has no content.
func isEmpty(name string) bool {
	info, err := os.Stat(name)
	if err != nil {
		return true
	}
	return info.Size() == 0
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
