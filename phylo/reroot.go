// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

import "errors"

// ErrOutgroup is returned when a node
// can not be used as an outgroup.
var ErrOutgroup = errors.New("invalid outgroup")

// LongestBranch returns the node
// with the longest branch,
// including the root.
// If several nodes have the same length,
// the first one in level order is returned.
func LongestBranch(t *Tree) *Node {
	var longest *Node
	for _, n := range t.Nodes() {
		if longest == nil || n.Len > longest.Len {
			longest = n
		}
	}
	return longest
}

// SetOutgroup reroots the tree
// so the outgroup node will be a child of the root.
//
// The root node is kept:
// if the root has more than two children
// the children that are not in the path
// to the outgroup are grouped in a new node,
// the path from the outgroup to the root
// is reversed,
// and the branch of the outgroup
// is split in two halves.
//
// If the outgroup is the root,
// or it is not part of the tree,
// ErrOutgroup is returned
// and the tree is left unchanged.
func (t *Tree) SetOutgroup(out *Node) error {
	root := t.root
	if out == nil || out == root || !t.contains(out) {
		return ErrOutgroup
	}

	parent := out.Parent

	// the child of the root
	// in the path to the outgroup
	n := out
	for n.Parent != root {
		n = n.Parent
	}
	root.removeChild(n)

	var down *Node
	if len(root.Children) != 1 {
		down = &Node{}
		for _, c := range root.Children {
			c.Parent = down
			down.Children = append(down.Children, c)
		}
		root.Children = nil
	} else {
		down = root.Children[0]
	}

	sister := down
	if parent != root {
		// reverse the path
		// from the outgroup parent to the root.
		p := parent
		child := p.Parent
		var prev *Node
		bl := p.Len
		for child != root {
			p.Children = append(p.Children, child)
			child.removeChild(p)
			child.Len, bl = bl, child.Len
			p.Parent = prev
			prev = p
			p = child
			child = p.Parent
		}
		p.Children = append(p.Children, down)
		down.Parent = p
		p.Parent = prev
		down.Len += bl

		parent.removeChild(out)
		parent.Len = 0
		sister = parent
	}

	out.Parent = root
	sister.Parent = root
	root.Children = []*Node{out, sister}
	mid := (out.Len + sister.Len) / 2
	out.Len = mid
	sister.Len = mid
	return nil
}

// Partition returns the terminals descendant of subroot,
// and the rest of the terminals of the tree.
// Both lists are in tree order.
func Partition(t *Tree, subroot *Node) (sub, rest []*Node) {
	in := make(map[*Node]bool)
	for _, n := range leaves(subroot) {
		in[n] = true
	}
	for _, n := range t.Leaves() {
		if in[n] {
			sub = append(sub, n)
			continue
		}
		rest = append(rest, n)
	}
	return sub, rest
}
