// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrNotBifurcating is returned when an operation
// requires a strictly bifurcating tree.
var ErrNotBifurcating = errors.New("tree is not bifurcating")

// Stemminess returns the mean cumulative stemminess index
// (Fiala and Sokal 1985)
// and the mean noncumulative stemminess index
// (Rohlf et al. 1990)
// over all internal nodes of the tree,
// excluding the root.
//
// For a node with branch length l,
// the cumulative index is l/(s+l),
// in which s is the sum of the branch lengths
// of the subtree below the node;
// the noncumulative index is calculated as l/h + l,
// in which h is the height of the subtree
// (i.e., the longest path to a terminal).
//
// The tree must be bifurcating
// (the root can have any number of children),
// otherwise ErrNotBifurcating is returned.
// If there are no internal nodes
// other than the root,
// both values are NaN.
func Stemminess(t *Tree) (cumulative, noncumulative float64, err error) {
	sum := make(map[*Node]float64)
	height := make(map[*Node]float64)

	var cum, nonCum []float64
	for _, n := range t.Postorder() {
		if n.IsLeaf() || n.IsRoot() {
			continue
		}
		if len(n.Children) != 2 {
			return 0, 0, fmt.Errorf("node with %d children: %w", len(n.Children), ErrNotBifurcating)
		}

		c0, c1 := n.Children[0], n.Children[1]
		sum[n] = sum[c0] + sum[c1] + c0.Len + c1.Len
		height[n] = math.Max(height[c0]+c0.Len, height[c1]+c1.Len)

		cum = append(cum, n.Len/(sum[n]+n.Len))
		nonCum = append(nonCum, n.Len/height[n]+n.Len)
	}

	if len(cum) == 0 {
		return math.NaN(), math.NaN(), nil
	}
	return stat.Mean(cum, nil), stat.Mean(nonCum, nil), nil
}
