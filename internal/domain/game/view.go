package game

import (
	"time"

	"yutnori/internal/engine"
)

const (
	PieceHome     = "home"
	PieceOnBoard  = "board"
	PieceFinished = "finished"
)

// GameState is the snapshot the table sends to its clients.
type GameState struct {
	ID         string       `json:"id"`
	PublicKey  string       `json:"public_key"`
	Status     string       `json:"status"`
	BoardKind  engine.Kind  `json:"board_kind"`
	CreatedAt  time.Time    `json:"created_at"`
	Turn       int          `json:"turn"`
	ThrowsOwed int          `json:"throws_owed"`
	Pending    []Throw      `json:"pending"`
	Winner     *int         `json:"winner,omitempty"`
	Players    []PlayerView `json:"players"`
	Last       *Event       `json:"last,omitempty"`
}

type PlayerView struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Finished int         `json:"finished"`
	Pieces   []PieceView `json:"pieces"`
}

type PieceView struct {
	Index    int    `json:"index"`
	State    string `json:"state"`
	Position *int   `json:"position,omitempty"`
	// Shortcut is set when the next move leaves by the node's shortcut.
	Shortcut bool `json:"shortcut"`
}

// Snapshot copies the public state of g. The caller holds g's lock.
func Snapshot(g *Game) GameState {
	st := GameState{
		ID:         g.ID,
		PublicKey:  g.PublicKey,
		Status:     g.Status,
		BoardKind:  g.Board.Kind(),
		CreatedAt:  g.CreatedAt,
		Turn:       g.Turn,
		ThrowsOwed: g.ThrowsOwed,
		Pending:    append([]Throw{}, g.Pending...),
		Players:    make([]PlayerView, 0, len(g.Players)),
	}
	if g.Winner >= 0 {
		w := g.Winner
		st.Winner = &w
	}
	if n := len(g.Events); n > 0 {
		last := g.Events[n-1]
		st.Last = &last
	}
	for _, pl := range g.Players {
		pv := PlayerView{ID: pl.ID(), Name: pl.Name(), Finished: pl.FinishedCount()}
		for _, p := range pl.Pieces() {
			pv.Pieces = append(pv.Pieces, newPieceView(p))
		}
		st.Players = append(st.Players, pv)
	}
	return st
}

func newPieceView(p *engine.Piece) PieceView {
	v := PieceView{Index: p.Index(), Shortcut: p.JustStoppedAtIntersection()}
	switch {
	case p.Finished():
		v.State = PieceFinished
	case p.AtHome():
		v.State = PieceHome
	default:
		v.State = PieceOnBoard
		pos := int(p.Position())
		v.Position = &pos
	}
	return v
}

// BoardView describes a board's graph for rendering.
type BoardView struct {
	Kind         engine.Kind `json:"kind" yaml:"kind"`
	Sides        int         `json:"sides" yaml:"sides"`
	CellsPerSide int         `json:"cells_per_side" yaml:"cells_per_side"`
	Start        int         `json:"start" yaml:"start"`
	Center       int         `json:"center" yaml:"center"`
	Nodes        []NodeView  `json:"nodes" yaml:"nodes"`
}

type NodeView struct {
	ID           int    `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Forward      int    `json:"forward" yaml:"forward"`
	Shortcut     *int   `json:"shortcut,omitempty" yaml:"shortcut,omitempty"`
	Intersection bool   `json:"intersection" yaml:"intersection"`
	// Stops marks intersections where stopping arms the shortcut.
	Stops bool `json:"stops" yaml:"stops"`
}

func NewBoardView(b *engine.Board) BoardView {
	t := b.Topology()
	v := BoardView{
		Kind:         b.Kind(),
		Sides:        t.Sides,
		CellsPerSide: t.CellsPerSide,
		Start:        int(b.StartID()),
		Center:       int(t.Center),
	}
	for _, n := range b.AllNodes() {
		nv := NodeView{
			ID:           int(n.ID()),
			Name:         n.Name(),
			Forward:      int(n.Forward()),
			Intersection: n.IsIntersection(),
			Stops:        b.StopsAtShortcut(n.ID()),
		}
		if n.HasShortcut() {
			s := int(n.Shortcut())
			nv.Shortcut = &s
		}
		v.Nodes = append(v.Nodes, nv)
	}
	return v
}
