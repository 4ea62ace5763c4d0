// Package engine implements the yut board graph and the piece movement
// resolver: topology construction, path resolution, stacking, capture,
// lap detection and back-steps.
package engine

import (
	"errors"
	"fmt"
)

var ErrUnknownBoardKind = errors.New("unknown board kind")

// Board is the node arena for one game. Nodes are addressed by NodeID.
type Board struct {
	topology Topology
	nodes    []*Node
	start    NodeID
}

// Build constructs a fresh board. Builds never share node instances.
func Build(kind Kind) (*Board, error) {
	t, err := TopologyOf(kind)
	if err != nil {
		return nil, err
	}

	b := &Board{
		topology: t,
		nodes:    make([]*Node, t.NodeCount()),
		start:    0,
	}
	for i := range b.nodes {
		b.nodes[i] = newNode(NodeID(i))
	}

	outer := t.OuterSize()
	for i := 0; i < outer; i++ {
		b.nodes[i].forward = NodeID((i + 1) % outer)
	}

	for _, arm := range t.Arms {
		for i := 0; i < len(arm.Nodes)-1; i++ {
			b.nodes[arm.Nodes[i]].forward = arm.Nodes[i+1]
		}
		b.nodes[arm.Nodes[len(arm.Nodes)-1]].forward = arm.Into
	}

	for corner, target := range t.Corners {
		n := b.nodes[corner]
		n.intersection = true
		n.shortcut = target
	}

	center := b.nodes[t.Center]
	center.intersection = true
	center.forward = t.CenterForward
	center.shortcut = t.CenterExit

	b.mustValidate()
	return b, nil
}

// MustBuild is Build for kinds known to be valid.
func MustBuild(kind Kind) *Board {
	b, err := Build(kind)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Board) mustValidate() {
	for _, n := range b.nodes {
		if !b.valid(n.forward) {
			panic(fmt.Sprintf("engine: %s node %d has dangling forward edge %d", b.topology.Kind, n.id, n.forward))
		}
		if n.shortcut != NoNode && !b.valid(n.shortcut) {
			panic(fmt.Sprintf("engine: %s node %d has dangling shortcut %d", b.topology.Kind, n.id, n.shortcut))
		}
	}
	if last := b.nodes[b.topology.OuterSize()-1]; last.forward != b.start {
		panic(fmt.Sprintf("engine: %s outer ring does not close at start", b.topology.Kind))
	}
	exits := 0
	for _, arm := range b.topology.Arms {
		if arm.Into == b.start {
			exits++
		}
	}
	if exits != 1 {
		panic(fmt.Sprintf("engine: %s has %d exit arms", b.topology.Kind, exits))
	}
}

func (b *Board) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(b.nodes)
}

func (b *Board) Kind() Kind { return b.topology.Kind }
func (b *Board) Topology() Topology { return b.topology }
func (b *Board) Rules() Rules { return b.topology.Rules }

// StartID is the start and finish node.
func (b *Board) StartID() NodeID { return b.start }

// Start returns the start and finish node.
func (b *Board) Start() *Node { return b.nodes[b.start] }

// Node returns the node with id, or nil when id is not on the board.
func (b *Board) Node(id NodeID) *Node {
	if !b.valid(id) {
		return nil
	}
	return b.nodes[id]
}

// AllNodes returns every node in id order.
func (b *Board) AllNodes() []*Node {
	out := make([]*Node, len(b.nodes))
	copy(out, b.nodes)
	return out
}

// StopsAtShortcut reports whether a piece ending its move on id takes the
// shortcut on its next move.
func (b *Board) StopsAtShortcut(id NodeID) bool {
	n := b.Node(id)
	return n != nil && n.HasShortcut() && id != b.topology.Rules.FinishAdjacent
}
