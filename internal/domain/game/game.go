package game

import (
	"sync"
	"time"

	"yutnori/internal/engine"
)

// Game is one hot-seat session around a single board. Callers hold the lock
// for the whole of every read or state change.
type Game struct {
	sync.Mutex

	ID        string
	PublicKey string
	CreatedAt time.Time
	Status    string

	Board   *engine.Board
	Engine  *engine.Engine
	Players []*engine.Player

	// Turn indexes Players. ThrowsOwed counts throws the current player still
	// has to make; Pending holds thrown results not yet applied.
	Turn       int
	ThrowsOwed int
	Pending    []Throw
	Winner     int

	Events []Event
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *engine.Player {
	return g.Players[g.Turn]
}

// Event is one entry of the session log, in the order things happened.
type Event struct {
	Seq      int       `json:"seq" yaml:"seq"`
	Type     string    `json:"type" yaml:"type"`
	Player   int       `json:"player" yaml:"player"`
	Throw    *Throw    `json:"throw,omitempty" yaml:"throw,omitempty"`
	Piece    int       `json:"piece" yaml:"piece"`
	Applied  bool      `json:"applied" yaml:"applied"`
	From     int       `json:"from" yaml:"from"`
	To       int       `json:"to" yaml:"to"`
	Path     []int     `json:"path,omitempty" yaml:"path,omitempty"`
	Moved    []int     `json:"moved,omitempty" yaml:"moved,omitempty"`
	Captured []Victim  `json:"captured,omitempty" yaml:"captured,omitempty"`
	Finished bool      `json:"finished" yaml:"finished"`
	At       time.Time `json:"at" yaml:"at"`
}

const (
	EventThrow = "throw"
	EventMove  = "move"
	EventTurn  = "turn"
	EventWin   = "win"
)

// Victim names a piece sent home by a capture.
type Victim struct {
	Player int `json:"player" yaml:"player"`
	Piece  int `json:"piece" yaml:"piece"`
}
