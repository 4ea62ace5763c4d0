package engine

// Player owns an ordered set of pieces.
type Player struct {
	id     int
	name   string
	pieces []*Piece
}

// NewPlayer creates a player with count pieces, all at home.
func NewPlayer(id int, name string, count int) *Player {
	pl := &Player{id: id, name: name}
	pl.pieces = make([]*Piece, count)
	for i := range pl.pieces {
		pl.pieces[i] = newPiece(pl, i)
	}
	return pl
}

func (pl *Player) ID() int { return pl.id }
func (pl *Player) Name() string { return pl.name }

// Pieces returns every piece in index order.
func (pl *Player) Pieces() []*Piece {
	out := make([]*Piece, len(pl.pieces))
	copy(out, pl.pieces)
	return out
}

// Piece returns the piece at index, or nil.
func (pl *Player) Piece(index int) *Piece {
	if index < 0 || index >= len(pl.pieces) {
		return nil
	}
	return pl.pieces[index]
}

func (pl *Player) UnfinishedPieces() []*Piece {
	var out []*Piece
	for _, p := range pl.pieces {
		if !p.finished {
			out = append(out, p)
		}
	}
	return out
}

func (pl *Player) FinishedCount() int {
	n := 0
	for _, p := range pl.pieces {
		if p.finished {
			n++
		}
	}
	return n
}

func (pl *Player) AllFinished() bool {
	return pl.FinishedCount() == len(pl.pieces)
}
