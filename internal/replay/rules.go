package replay

import (
	"github.com/corentings/chess/v2"
)

// Rules is a rules-aware game state that understands move notation.
type Rules interface {
	// Reset returns to the starting position and reports it.
	Reset() string
	// Apply plays one move and reports the resulting position.
	Apply(notation string) (string, error)
	// Position reports the current position.
	Position() string
}

// Display shows a board position.
type Display interface {
	Render(position string)
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(position string)

func (f DisplayFunc) Render(position string) { f(position) }

// ChessRules implements Rules with a chess game, positions are FEN strings.
type ChessRules struct {
	g *chess.Game
}

// NewChessRules starts a game at the standard opening position.
func NewChessRules() *ChessRules {
	return &ChessRules{g: chess.NewGame()}
}

func (r *ChessRules) Reset() string {
	r.g = chess.NewGame()
	return r.Position()
}

func (r *ChessRules) Apply(notation string) (string, error) {
	if err := r.g.PushMove(notation, nil); err != nil {
		return r.Position(), err
	}
	return r.Position(), nil
}

func (r *ChessRules) Position() string {
	return r.g.Position().String()
}

// Status describes a finished game, e.g. "1-0 by Checkmate", or "".
func (r *ChessRules) Status() string {
	if r.g.Outcome() == chess.NoOutcome {
		return ""
	}
	return r.g.Outcome().String() + " by " + r.g.Method().String()
}

// StartPosition is the FEN of the standard opening position.
func StartPosition() string {
	return chess.NewGame().Position().String()
}
