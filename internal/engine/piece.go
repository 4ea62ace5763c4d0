package engine

import "fmt"

// Piece is one token. Its fields change only through Engine.Apply.
type Piece struct {
	owner    *Player
	index    int
	position NodeID
	finished bool

	hasLeftStart  bool
	stoppedAtJunc bool
	history       History
}

func newPiece(owner *Player, index int) *Piece {
	return &Piece{
		owner:    owner,
		index:    index,
		position: NoNode,
		history:  newHistory(),
	}
}

func (p *Piece) Owner() *Player { return p.owner }
func (p *Piece) Index() int { return p.index }

// Position is the node the piece stands on, or NoNode when it is at home or
// finished.
func (p *Piece) Position() NodeID { return p.position }

func (p *Piece) Finished() bool { return p.finished }

// AtHome reports whether the piece is off the board and still in play.
func (p *Piece) AtHome() bool { return p.position == NoNode && !p.finished }

func (p *Piece) OnBoard() bool { return p.position != NoNode }

// HasLeftStart reports whether the piece has moved off the start node since it
// last entered the board.
func (p *Piece) HasLeftStart() bool { return p.hasLeftStart }

// JustStoppedAtIntersection reports whether the last move ended on a node whose
// shortcut the next move will take.
func (p *Piece) JustStoppedAtIntersection() bool { return p.stoppedAtJunc }

// History returns a copy of the recorded nodes, bottom first.
func (p *Piece) History() []NodeID { return p.history.Nodes() }

func (p *Piece) String() string {
	switch {
	case p.finished:
		return fmt.Sprintf("%s#%d@finished", p.owner.name, p.index)
	case p.position == NoNode:
		return fmt.Sprintf("%s#%d@home", p.owner.name, p.index)
	default:
		return fmt.Sprintf("%s#%d@%d", p.owner.name, p.index, p.position)
	}
}

func (p *Piece) sendHome() {
	p.position = NoNode
	p.hasLeftStart = false
	p.stoppedAtJunc = false
	p.history.Clear()
}

func (p *Piece) finish() {
	p.finished = true
	p.position = NoNode
	p.stoppedAtJunc = false
	p.history.Clear()
}
