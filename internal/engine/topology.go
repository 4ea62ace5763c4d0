package engine

import (
	"fmt"
	"strings"
)

// Kind names one of the supported board shapes.
type Kind string

const (
	Square   Kind = "square"
	Pentagon Kind = "pentagon"
	Hexagon  Kind = "hexagon"
)

// Kinds lists the supported shapes from the smallest ring up.
var Kinds = []Kind{Square, Pentagon, Hexagon}

// ParseKind resolves a board kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := topologies[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownBoardKind, s)
	}
	return k, nil
}

// Arm is a run of inner nodes linked in order, whose last node continues into
// Into.
type Arm struct {
	Nodes []NodeID
	Into  NodeID
}

// Reroute makes a path that crosses After->At leave At by its shortcut
// instead of its forward edge.
type Reroute struct {
	After NodeID
	At    NodeID
}

// Rules holds the per-topology movement quirks.
type Rules struct {
	// FinishAdjacent is the last corner before the finish; it never arms or
	// takes a shortcut.
	FinishAdjacent NodeID
	// DepartByShortcut nodes always leave by their shortcut on the first step.
	DepartByShortcut []NodeID
	Reroutes         []Reroute
}

func (r Rules) departsByShortcut(id NodeID) bool {
	for _, d := range r.DepartByShortcut {
		if d == id {
			return true
		}
	}
	return false
}

func (r Rules) armsReroute(from, to NodeID) (NodeID, bool) {
	for _, rr := range r.Reroutes {
		if rr.After == from && rr.At == to {
			return rr.At, true
		}
	}
	return NoNode, false
}

// Topology describes how to build one board shape.
type Topology struct {
	Kind         Kind
	Sides        int
	CellsPerSide int
	Center       NodeID
	// Corners maps an outer corner to the first node of its inner arm.
	Corners map[NodeID]NodeID
	Arms    []Arm
	// CenterForward continues past the center without stopping; CenterExit is
	// the center's shortcut and leads back to the start.
	CenterForward NodeID
	CenterExit    NodeID
	Rules         Rules
}

// OuterSize is the number of nodes on the outer ring.
func (t Topology) OuterSize() int { return t.Sides * t.CellsPerSide }

// NodeCount is the number of nodes on the whole board.
func (t Topology) NodeCount() int { return int(t.Center) + 1 }

var topologies = map[Kind]Topology{
	Square: {
		Kind:         Square,
		Sides:        4,
		CellsPerSide: 5,
		Center:       28,
		Corners:      map[NodeID]NodeID{5: 20, 10: 22},
		Arms: []Arm{
			{Nodes: []NodeID{20, 21}, Into: 28},
			{Nodes: []NodeID{22, 23}, Into: 28},
			{Nodes: []NodeID{24, 25}, Into: 15},
			{Nodes: []NodeID{26, 27}, Into: 0},
		},
		CenterForward: 24,
		CenterExit:    26,
		Rules: Rules{
			FinishAdjacent:   15,
			DepartByShortcut: []NodeID{10},
			Reroutes:         []Reroute{{After: 23, At: 28}},
		},
	},
	Pentagon: {
		Kind:         Pentagon,
		Sides:        5,
		CellsPerSide: 5,
		Center:       35,
		Corners:      map[NodeID]NodeID{5: 25, 10: 27, 15: 29},
		Arms: []Arm{
			{Nodes: []NodeID{25, 26}, Into: 35},
			{Nodes: []NodeID{27, 28}, Into: 35},
			{Nodes: []NodeID{29, 30}, Into: 35},
			{Nodes: []NodeID{31, 32}, Into: 20},
			{Nodes: []NodeID{33, 34}, Into: 0},
		},
		CenterForward: 31,
		CenterExit:    33,
		Rules: Rules{
			FinishAdjacent: 20,
		},
	},
	Hexagon: {
		Kind:         Hexagon,
		Sides:        6,
		CellsPerSide: 5,
		Center:       42,
		Corners:      map[NodeID]NodeID{5: 30, 10: 32, 15: 34, 20: 36},
		Arms: []Arm{
			{Nodes: []NodeID{30, 31}, Into: 42},
			{Nodes: []NodeID{32, 33}, Into: 42},
			{Nodes: []NodeID{34, 35}, Into: 42},
			{Nodes: []NodeID{36, 37}, Into: 42},
			{Nodes: []NodeID{38, 39}, Into: 25},
			{Nodes: []NodeID{40, 41}, Into: 0},
		},
		CenterForward: 38,
		CenterExit:    40,
		Rules: Rules{
			FinishAdjacent: 25,
		},
	},
}

// TopologyOf returns the build description for kind.
func TopologyOf(kind Kind) (Topology, error) {
	t, ok := topologies[kind]
	if !ok {
		return Topology{}, fmt.Errorf("%w: %q", ErrUnknownBoardKind, string(kind))
	}
	return t, nil
}
