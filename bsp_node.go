package bspmesh

import (
	"fmt"
	"io"
	"strings"
)

// Node is either a *SplitNode or a *LeafNode. A nil Node is an empty subtree.
type Node interface {
	isNode()
}

// SplitNode has exactly two child slots, either of which may be nil. Child 0
// holds polygons behind the plane that created the split, child 1 the leaf of
// that plane followed by what lies in front of it.
type SplitNode struct {
	Children [2]Node
}

// LeafNode holds the polygons lying on one splitting plane. Portals has one
// vertex run per polygon that was tested against that plane, in input order.
// A polygon coplanar with the plane contributes its full vertex list.
type LeafNode struct {
	Contents []Ngon
	Portals  [][]VertexID
}

func (*SplitNode) isNode() {}
func (*LeafNode) isNode()  {}

// Tree is a built BSP tree together with the arena its polygons index into.
// Root is nil for an empty input.
type Tree struct {
	Arena *VertexArena
	Root  Node
	// Splits counts the polygons cut in two during the build.
	Splits int
}

// Walk visits node depth first, child 0 before child 1. depth is 0 for node.
// Nil subtrees are skipped.
func Walk(node Node, fn func(n Node, depth int)) {
	var visit func(n Node, depth int)
	visit = func(n Node, depth int) {
		switch n := n.(type) {
		case *SplitNode:
			fn(n, depth)
			visit(n.Children[0], depth+1)
			visit(n.Children[1], depth+1)
		case *LeafNode:
			fn(n, depth)
		}
	}
	visit(node, 0)
}

// TreeStats summarises the shape of a tree.
type TreeStats struct {
	Leaves     int
	SplitNodes int
	MaxDepth   int
	Polygons   int
	Portals    int
}

func (t *Tree) Stats() TreeStats {
	var s TreeStats
	Walk(t.Root, func(n Node, depth int) {
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		switch n := n.(type) {
		case *SplitNode:
			s.SplitNodes++
		case *LeafNode:
			s.Leaves++
			s.Polygons += len(n.Contents)
			s.Portals += len(n.Portals)
		}
	})
	return s
}

// Leaves returns the leaves in traversal order.
func (t *Tree) Leaves() []*LeafNode {
	var leaves []*LeafNode
	Walk(t.Root, func(n Node, _ int) {
		if leaf, ok := n.(*LeafNode); ok {
			leaves = append(leaves, leaf)
		}
	})
	return leaves
}

// Dump writes an indented outline of the tree, one node per line.
func (t *Tree) Dump(w io.Writer) error {
	if t.Root == nil {
		_, err := fmt.Fprintln(w, "<empty>")
		return err
	}
	var err error
	var visit func(n Node, depth int, slot string)
	visit = func(n Node, depth int, slot string) {
		if err != nil {
			return
		}
		indent := strings.Repeat("  ", depth)
		switch n := n.(type) {
		case nil:
			_, err = fmt.Fprintf(w, "%s%s-\n", indent, slot)
		case *SplitNode:
			_, err = fmt.Fprintf(w, "%s%ssplit\n", indent, slot)
			visit(n.Children[0], depth+1, "0: ")
			visit(n.Children[1], depth+1, "1: ")
		case *LeafNode:
			_, err = fmt.Fprintf(w, "%s%sleaf contents=%d portals=%d\n", indent, slot, len(n.Contents), len(n.Portals))
			for _, p := range n.Contents {
				if err != nil {
					return
				}
				_, err = fmt.Fprintf(w, "%s  polygon %v normal=(%.3f, %.3f, %.3f)\n", indent, p.Vertices, p.Normal[0], p.Normal[1], p.Normal[2])
			}
		}
	}
	visit(t.Root, 0, "")
	return err
}
