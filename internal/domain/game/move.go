package game

// CreateGameRequest starts a session. Empty fields fall back to the server
// defaults.
type CreateGameRequest struct {
	BoardKind       string   `json:"board_kind"`
	Players         []string `json:"players"`
	PiecesPerPlayer int      `json:"pieces_per_player"`
}

type GameCreateResponse struct {
	ID        string `json:"id"`
	PublicKey string `json:"public_key"`
}

// ThrowRequest throws the sticks. A nil Result throws at random; otherwise
// the given result is recorded as thrown.
type ThrowRequest struct {
	Result *Throw `json:"result,omitempty"`
}

// MoveRequest applies the pending throw at index Throw to the current
// player's piece at index Piece.
type MoveRequest struct {
	Piece int `json:"piece"`
	Throw int `json:"throw"`
}

// Command is a message a websocket client sends to the table.
type Command struct {
	Type   string `json:"type"`
	Result *Throw `json:"result,omitempty"`
	Piece  int    `json:"piece,omitempty"`
	Throw  int    `json:"throw,omitempty"`
}

const (
	CommandThrow = "throw"
	CommandMove  = "move"
	CommandState = "state"
)

// TableMessage is what the table pushes to websocket clients.
type TableMessage struct {
	Type  string     `json:"type"`
	State *GameState `json:"state,omitempty"`
	Error string     `json:"error,omitempty"`
}

const (
	MessageState = "state"
	MessageError = "error"
)
