// Package scene is a small retained render graph. Drawables attach and
// remove nodes here; the engine adapter walks the graph once per frame.
package scene

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"sort"
)

// SpherePath names the built-in unit sphere model
const SpherePath = "models/misc/sphere"

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// ErrNoLoader is returned by LoadModel on a graph built without a loader
var ErrNoLoader = errors.New("scene has no model loader")

// Asset is an engine resource shared by every node loaded from the same
// path.
type Asset interface {
	Release()
}

// Loader loads engine assets by path
type Loader interface {
	Load(path string) (Asset, error)
}

// Graph owns the nodes of a scene
type Graph struct {
	loader Loader
	log    *slog.Logger
	nodes  map[NodeID]*Node
	assets map[string]Asset
	next   NodeID
}

// New creates an empty graph. loader may be nil for scenes that never
// load models; log may be nil.
func New(loader Loader, log *slog.Logger) *Graph {
	if log == nil {
		log = slog.Default()
	}
	return &Graph{
		loader: loader,
		log:    log,
		nodes:  make(map[NodeID]*Node),
		assets: make(map[string]Asset),
	}
}

func (g *Graph) attach(n *Node) *Node {
	g.next++
	n.id = g.next
	n.graph = g
	if n.Scale == 0 {
		n.Scale = 1
	}
	g.nodes[n.id] = n
	return n
}

func (g *Graph) remove(id NodeID) bool {
	if _, ok := g.nodes[id]; !ok {
		return false
	}
	delete(g.nodes, id)
	return true
}

// LoadModel instantiates the asset at path as a new node. Assets are
// loaded once per path and shared. A failed load is logged and returns
// a nil node; callers treat that as nothing drawn.
func (g *Graph) LoadModel(path string) (*Node, error) {
	asset, ok := g.assets[path]
	if !ok {
		if g.loader == nil {
			return nil, ErrNoLoader
		}
		var err error
		asset, err = g.loader.Load(path)
		if err != nil {
			g.log.Warn("failed to load model", "path", path, "err", err)
			return nil, fmt.Errorf("load model %s: %w", path, err)
		}
		g.assets[path] = asset
	}
	return g.attach(&Node{Kind: KindModel, Path: path, Asset: asset, Color: white}), nil
}

// AttachLines adds the segments collected by ls as one node
func (g *Graph) AttachLines(ls *LineSegs) *Node {
	segs := make([]Segment, len(ls.segments))
	copy(segs, ls.segments)
	return g.attach(&Node{Kind: KindLines, Name: ls.name, Segments: segs})
}

// AttachText adds a text label node
func (g *Graph) AttachText(t TextNode) *Node {
	return g.attach(&Node{
		Kind:      KindText,
		Name:      t.Name,
		Text:      t.Text,
		Color:     t.Color,
		Align:     t.Align,
		Billboard: t.Billboard,
	})
}

// Get returns the attached node with the given id
func (g *Graph) Get(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Len returns the number of attached nodes
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns the attached nodes in creation order
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Count returns the number of attached nodes of kind k
func (g *Graph) Count(k Kind) int {
	count := 0
	for _, n := range g.nodes {
		if n.Kind == k {
			count++
		}
	}
	return count
}

// Close removes every node and releases all loaded assets
func (g *Graph) Close() {
	for id := range g.nodes {
		delete(g.nodes, id)
	}
	for path, asset := range g.assets {
		asset.Release()
		delete(g.assets, path)
	}
}
