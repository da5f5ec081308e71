// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phylo implements phylogenetic trees
// with branch lengths
// (e.g., expected substitutions per site)
// and the statistics used to describe their shape.
package phylo

// DefaultLen is the length assigned to a branch
// when no length is given.
// As the root does not have a parent
// its length is always a placeholder.
const DefaultLen = 1.0

// A Node is a node of a phylogenetic tree.
type Node struct {
	// Name of the node.
	// Terminals are identified by their names.
	Name string

	// Len is the length of the branch
	// that connects the node to its parent.
	Len float64

	Parent   *Node
	Children []*Node
}

// IsLeaf returns true if the node is a terminal.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsRoot returns true if the node is a root.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

func (n *Node) removeChild(c *Node) {
	for i, x := range n.Children {
		if x == c {
			n.Children = append(n.Children[:i:i], n.Children[i+1:]...)
			return
		}
	}
}

// A Tree is a rooted phylogenetic tree.
type Tree struct {
	root *Node
}

// New returns a tree rooted at the given node.
func New(root *Node) *Tree {
	root.Parent = nil
	return &Tree{root: root}
}

// Root returns the root node of the tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Nodes returns the nodes of the tree
// in level order
// (i.e., breadth-first, starting at the root).
func (t *Tree) Nodes() []*Node {
	nodes := []*Node{t.root}
	for i := 0; i < len(nodes); i++ {
		nodes = append(nodes, nodes[i].Children...)
	}
	return nodes
}

// Preorder returns the nodes of the tree
// in depth-first order,
// a node before its descendants.
func (t *Tree) Preorder() []*Node {
	return preorder(t.root, nil)
}

func preorder(n *Node, nodes []*Node) []*Node {
	nodes = append(nodes, n)
	for _, c := range n.Children {
		nodes = preorder(c, nodes)
	}
	return nodes
}

// Postorder returns the nodes of the tree
// in depth-first order,
// the descendants before the node.
func (t *Tree) Postorder() []*Node {
	return postorder(t.root, nil)
}

func postorder(n *Node, nodes []*Node) []*Node {
	for _, c := range n.Children {
		nodes = postorder(c, nodes)
	}
	return append(nodes, n)
}

// Leaves returns the terminals of the tree.
func (t *Tree) Leaves() []*Node {
	return leaves(t.root)
}

func leaves(n *Node) []*Node {
	var ls []*Node
	for _, x := range preorder(n, nil) {
		if x.IsLeaf() {
			ls = append(ls, x)
		}
	}
	return ls
}

// Terms returns the names of the terminals of the tree.
func (t *Tree) Terms() []string {
	ls := t.Leaves()
	terms := make([]string, 0, len(ls))
	for _, n := range ls {
		terms = append(terms, n.Name)
	}
	return terms
}

// Find returns the first node
// (in level order)
// with the indicated name.
// It returns nil if there is no node with that name.
func (t *Tree) Find(name string) *Node {
	for _, n := range t.Nodes() {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Len returns the sum of the branch lengths of the tree
// (the root branch is ignored).
func (t *Tree) Len() float64 {
	var sum float64
	for _, n := range t.Nodes()[1:] {
		sum += n.Len
	}
	return sum
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	return &Tree{root: cloneNode(t.root, nil)}
}

func cloneNode(n, parent *Node) *Node {
	nn := &Node{
		Name:   n.Name,
		Len:    n.Len,
		Parent: parent,
	}
	if len(n.Children) > 0 {
		nn.Children = make([]*Node, 0, len(n.Children))
	}
	for _, c := range n.Children {
		nn.Children = append(nn.Children, cloneNode(c, nn))
	}
	return nn
}

func (t *Tree) contains(n *Node) bool {
	for n.Parent != nil {
		n = n.Parent
	}
	return n == t.root
}
