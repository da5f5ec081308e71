// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phyml_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/js-arias/mteller/model"
	"github.com/js-arias/mteller/phyml"
)

func mustModel(t testing.TB, name string) model.Model {
	t.Helper()

	m, err := model.Parse(name)
	if err != nil {
		t.Fatalf("model %q: %v", name, err)
	}
	return m
}

func TestArgs(t *testing.T) {
	rn := phyml.NewRunner(nil, nil)

	tests := map[string]struct {
		req  phyml.Request
		want string
	}{
		"GTR+I+G ml": {
			req: phyml.Request{
				Alignment: "aln.phy",
				Model:     mustModel(t, "GTR+I+G"),
				Topology:  phyml.ML,
			},
			want: "-i aln.phy -m 012345 -f m -v e -a e -c 4 -o tlr -s NNI -d nt -n 1 -b 0 --no_memory_check --run_id GTR+I+G",
		},
		"JC rates": {
			req: phyml.Request{
				Alignment: "aln.phy",
				Model:     mustModel(t, "JC"),
				Topology:  phyml.Rates,
				Tree:      "tree.nwk",
				RunID:     "rates_trueTree",
			},
			want: "-i aln.phy -m 000000 -f 0.25,0.25,0.25,0.25 -c 1 -o r -d nt -n 1 -b 0 --no_memory_check --run_id rates_trueTree -u tree.nwk",
		},
		"HKY+G fixed": {
			req: phyml.Request{
				Alignment: "aln.phy",
				Model:     mustModel(t, "HKY+G"),
				Topology:  phyml.Fixed,
				Tree:      "tree.nwk",
			},
			want: "-i aln.phy -m 010010 -f m -a e -c 4 -o lr -d nt -n 1 -b 0 --no_memory_check --run_id HKY+G -u tree.nwk",
		},
		"K80+I noopt": {
			req: phyml.Request{
				Alignment: "aln.phy",
				Model:     mustModel(t, "K80+I"),
				Topology:  phyml.NoOpt,
			},
			want: "-i aln.phy -m 010010 -f 0.25,0.25,0.25,0.25 -v e -c 1 -o n -d nt -n 1 -b 0 --no_memory_check --run_id K80+I",
		},
	}

	for name, test := range tests {
		args, err := rn.Args(test.req)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		want := strings.Fields(test.want)
		if !reflect.DeepEqual(args, want) {
			t.Errorf("%s: got %q, want %q", name, strings.Join(args, " "), test.want)
		}
	}

	bad := map[string]phyml.Request{
		"topology":   {Alignment: "aln.phy", Topology: "spr"},
		"alignment":  {Topology: phyml.ML},
		"fixed tree": {Alignment: "aln.phy", Topology: phyml.Fixed},
	}
	for name, r := range bad {
		if _, err := rn.Args(r); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestArgsParams(t *testing.T) {
	p := phyml.New("")
	p.SetCats(6)
	p.SetMedian(true)
	p.SetArgs("--r_seed 1")
	rn := phyml.NewRunner(p, nil)

	args, err := rn.Args(phyml.Request{
		Alignment: "aln.phy",
		Model:     mustModel(t, "SYM+G"),
		Topology:  phyml.ML,
	})
	if err != nil {
		t.Fatalf("args: %v", err)
	}
	want := strings.Fields("-i aln.phy -m 012345 -f 0.25,0.25,0.25,0.25 -a e -c 6 --use_median -o tlr -s NNI -d nt -n 1 -b 0 --no_memory_check --run_id SYM+G --r_seed 1")
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args: got %q, want %q", args, want)
	}
}

func TestOutput(t *testing.T) {
	out := phyml.Output(phyml.Request{
		Alignment: "data/aln.phy",
		Model:     mustModel(t, "GTR+I+G"),
		RunID:     "rates_GTR+I+G",
	})
	want := phyml.Result{
		Stats: "data/aln.phy_phyml_stats_rates_GTR+I+G.txt",
		Tree:  "data/aln.phy_phyml_tree_rates_GTR+I+G.txt",
	}
	if out != want {
		t.Errorf("output: got %+v, want %+v", out, want)
	}
}

func TestProduceReuse(t *testing.T) {
	dir := t.TempDir()
	req := phyml.Request{
		Alignment: filepath.Join(dir, "aln.phy"),
		Model:     mustModel(t, "GTR+I+G"),
		Topology:  phyml.ML,
	}
	out := phyml.Output(req)
	if err := os.WriteFile(out.Stats, []byte(statsBlob), 0644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}

	p := phyml.New("")
	p.SetBin(filepath.Join(dir, "no-phyml"))
	rn := phyml.NewRunner(p, nil)

	res, err := rn.Produce(context.Background(), req)
	if err != nil {
		t.Fatalf("produce: %v", err)
	}
	if res != out {
		t.Errorf("result: got %+v, want %+v", res, out)
	}

	// without reuse the executable is called
	p.SetReuse(false)
	if _, err := rn.Produce(context.Background(), req); err == nil {
		t.Errorf("missing executable: expecting error")
	}
}

const fakePhyML = `#!/bin/sh
in=""
run=""
while [ $# -gt 0 ]; do
	case "$1" in
	-i) in="$2"; shift ;;
	--run_id) run="$2"; shift ;;
	esac
	shift
done
printf ' . Log-likelihood: \t\t\t-10.50000\n' > "${in}_phyml_stats_${run}.txt"
printf '((A:1,B:2):3,(C:4,D:5):6);\n' > "${in}_phyml_tree_${run}.txt"
`

func TestProduce(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	dir := t.TempDir()
	bin := filepath.Join(dir, "phyml")
	if err := os.WriteFile(bin, []byte(fakePhyML), 0755); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}

	p := phyml.New("")
	p.SetBin(bin)
	rn := phyml.NewRunner(p, nil)

	req := phyml.Request{
		Alignment: filepath.Join(dir, "aln.phy"),
		Model:     mustModel(t, "HKY"),
		Topology:  phyml.ML,
	}
	res, err := rn.Produce(context.Background(), req)
	if err != nil {
		t.Fatalf("produce: %v", err)
	}

	rp, err := phyml.ReadStats(res.Stats)
	if err != nil {
		t.Fatalf("read stats: %v", err)
	}
	testValue(t, "logL", rp.LogL, -10.5)

	data, err := os.ReadFile(res.Tree)
	if err != nil {
		t.Fatalf("read tree: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "((A:1,B:2):3,(C:4,D:5):6);" {
		t.Errorf("tree: got %q", got)
	}
}
