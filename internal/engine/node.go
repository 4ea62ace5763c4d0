package engine

import "strconv"

// NodeID addresses a node inside a Board. It equals the node's index in the
// board arena.
type NodeID int

// NoNode marks an absent edge or an off-board piece.
const NoNode NodeID = -1

// Node is a single board vertex. Edges are fixed at build time; the occupant
// list changes as pieces move.
type Node struct {
	id           NodeID
	name         string
	forward      NodeID
	shortcut     NodeID
	intersection bool
	occupants    []*Piece
}

func newNode(id NodeID) *Node {
	return &Node{
		id:       id,
		name:     strconv.Itoa(int(id)),
		forward:  NoNode,
		shortcut: NoNode,
	}
}

func (n *Node) ID() NodeID { return n.id }
func (n *Node) Name() string { return n.name }
func (n *Node) Forward() NodeID { return n.forward }
func (n *Node) Shortcut() NodeID { return n.shortcut }
func (n *Node) IsIntersection() bool { return n.intersection }

// HasShortcut reports whether the node offers an inner-arm edge.
func (n *Node) HasShortcut() bool { return n.intersection && n.shortcut != NoNode }

// Occupants returns the pieces on the node in arrival order.
func (n *Node) Occupants() []*Piece {
	out := make([]*Piece, len(n.occupants))
	copy(out, n.occupants)
	return out
}

func (n *Node) String() string {
	return n.name + "[" + strconv.Itoa(len(n.occupants)) + "]"
}

func (n *Node) place(p *Piece) {
	n.occupants = append(n.occupants, p)
}

// takeOwnedBy removes and returns every occupant owned by owner.
func (n *Node) takeOwnedBy(owner *Player) []*Piece {
	var taken []*Piece
	kept := n.occupants[:0]
	for _, o := range n.occupants {
		if o.owner == owner {
			taken = append(taken, o)
		} else {
			kept = append(kept, o)
		}
	}
	n.occupants = kept
	return taken
}

// evictOthers removes and returns every occupant not owned by owner.
func (n *Node) evictOthers(owner *Player) []*Piece {
	var evicted []*Piece
	kept := n.occupants[:0]
	for _, o := range n.occupants {
		if o.owner != owner {
			evicted = append(evicted, o)
		} else {
			kept = append(kept, o)
		}
	}
	n.occupants = kept
	return evicted
}
