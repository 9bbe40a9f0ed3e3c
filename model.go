package bspmesh

import (
	"fmt"
	"log"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// DefaultParallelDepth is how many tree levels fork a goroutine for their
// behind subtree when BuildOptions.Parallel is set and no depth is given.
const DefaultParallelDepth = 4

// BuildOptions tunes BuildTree. The zero value builds sequentially and
// silently.
type BuildOptions struct {
	// Parallel builds the behind subtree of the first ParallelDepth levels on
	// its own goroutine. The tree has the same shape and geometry as a
	// sequential build, though new vertices may be numbered differently.
	Parallel      bool
	ParallelDepth int
	// Logger receives progress lines when not nil.
	Logger *log.Logger
}

type treeBuilder struct {
	arena  *VertexArena
	opts   BuildOptions
	splits atomic.Int64
}

// BuildTree partitions the soup's polygons into a BSP tree. Each level takes
// its first polygon as the splitting reference. Vertices created where
// polygons are cut are added to the soup's arena. An empty soup yields a tree
// with a nil root.
func BuildTree(soup *Soup, opts BuildOptions) (*Tree, error) {
	if err := soup.Validate(); err != nil {
		return nil, fmt.Errorf("invalid soup: %w", err)
	}
	if opts.Parallel && opts.ParallelDepth <= 0 {
		opts.ParallelDepth = DefaultParallelDepth
	}
	b := &treeBuilder{arena: soup.Arena, opts: opts}

	b.logf("Creating BSP Tree from %d polygons...", len(soup.Polygons))
	root, err := b.createNode(soup.Polygons, 0)
	if err != nil {
		return nil, err
	}
	tree := &Tree{
		Arena:  soup.Arena,
		Root:   root,
		Splits: int(b.splits.Load()),
	}

	stats := tree.Stats()
	b.logf("BSP Tree Created.")
	b.logf("Leaves: %d, split nodes: %d, depth: %d", stats.Leaves, stats.SplitNodes, stats.MaxDepth)
	b.logf("Polygons split: %d, vertices: %d", tree.Splits, soup.Arena.Len())
	return tree, nil
}

func (b *treeBuilder) logf(format string, args ...any) {
	if b.opts.Logger != nil {
		b.opts.Logger.Printf(format, args...)
	}
}

func (b *treeBuilder) createNode(polygons []Ngon, depth int) (Node, error) {
	if len(polygons) == 0 {
		return nil, nil
	}

	plane, err := polygons[0].Plane(b.arena)
	if err != nil {
		return nil, fmt.Errorf("depth %d: splitting polygon %v: %w", depth, polygons[0].Vertices, err)
	}

	// The reference polygon always lies on its own plane.
	onPlane := NewFaceStore()
	onPlane.AddFace(polygons[0])
	inFront := NewFaceStore()
	behind := NewFaceStore()
	portals := make([][]VertexID, 0, len(polygons)-1)

	// Partition the remaining polygons against the splitting plane.
	for _, poly := range polygons[1:] {
		res, err := SplitPolygon(b.arena, poly, plane)
		if err != nil {
			return nil, fmt.Errorf("depth %d: split polygon %v: %w", depth, poly.Vertices, err)
		}
		portals = append(portals, res.Portal)
		switch res.Class {
		case OnPlane:
			onPlane.AddFace(poly)
		case InFront:
			inFront.AddFace(poly)
		case Behind:
			behind.AddFace(poly)
		case Spanning:
			inFront.AddFace(res.Front)
			behind.AddFace(res.Back)
			b.splits.Add(1)
		}
	}

	leaf := &LeafNode{
		Contents: onPlane.Faces(),
		Portals:  portals,
	}
	if inFront.FaceCount() == 0 && behind.FaceCount() == 0 {
		return leaf, nil
	}

	frontNode, behindNode, err := b.createChildren(inFront.Faces(), behind.Faces(), depth)
	if err != nil {
		return nil, err
	}

	frontSplit := &SplitNode{Children: [2]Node{leaf, frontNode}}
	if behind.FaceCount() == 0 {
		return frontSplit, nil
	}
	return &SplitNode{Children: [2]Node{behindNode, frontSplit}}, nil
}

// createChildren builds the front and behind subtrees. They share no
// polygons, so near the root they can be built concurrently.
func (b *treeBuilder) createChildren(front, behind []Ngon, depth int) (Node, Node, error) {
	if !b.opts.Parallel || depth >= b.opts.ParallelDepth || len(front) == 0 || len(behind) == 0 {
		frontNode, err := b.createNode(front, depth+1)
		if err != nil {
			return nil, nil, err
		}
		behindNode, err := b.createNode(behind, depth+1)
		if err != nil {
			return nil, nil, err
		}
		return frontNode, behindNode, nil
	}

	var g errgroup.Group
	var behindNode Node
	g.Go(func() error {
		var err error
		behindNode, err = b.createNode(behind, depth+1)
		return err
	})
	frontNode, frontErr := b.createNode(front, depth+1)
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if frontErr != nil {
		return nil, nil, frontErr
	}
	return frontNode, behindNode, nil
}
