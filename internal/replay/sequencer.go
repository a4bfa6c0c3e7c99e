package replay

import (
	"errors"
	"fmt"
)

var (
	// ErrEnd is returned when stepping forward past the last move.
	ErrEnd = errors.New("replay: no more moves")
	// ErrStart is returned when stepping back from the first position.
	ErrStart = errors.New("replay: already at start")
)

// MoveError reports a move the rules refused. The sequencer still advances
// past it; the position stays where it was.
type MoveError struct {
	Ply  int
	Move string
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("replay: ply %d %q: %v", e.Ply, e.Move, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }

// Sequencer steps through a fixed move list. Its state is the number of
// moves applied and the resulting position. It is not safe for concurrent
// use; Autoplay serialises access to the one it drives.
type Sequencer struct {
	moves    []string
	rules    Rules
	display  Display
	index    int
	position string
}

// NewSequencer starts at index 0 on the starting position and renders it.
// A nil display is allowed.
func NewSequencer(moves []string, rules Rules, display Display) *Sequencer {
	s := &Sequencer{moves: moves, rules: rules, display: display}
	s.position = rules.Reset()
	s.render()
	return s
}

// Index is the number of moves applied.
func (s *Sequencer) Index() int { return s.index }

// Len is the number of moves in the list.
func (s *Sequencer) Len() int { return len(s.moves) }

// Position is the current board position.
func (s *Sequencer) Position() string { return s.position }

// Done reports whether every move has been applied.
func (s *Sequencer) Done() bool { return s.index >= len(s.moves) }

// Forward applies the move at the current index. At the end it is a no-op
// returning ErrEnd.
func (s *Sequencer) Forward() error {
	if s.Done() {
		return ErrEnd
	}
	err := s.apply(s.index)
	s.index++
	s.render()
	return err
}

// Backward undoes one move by replaying from the start up to the new
// index. At index 0 it is a no-op returning ErrStart.
func (s *Sequencer) Backward() error {
	if s.index <= 0 {
		return ErrStart
	}
	return s.Seek(s.index - 1)
}

// Seek rebuilds the position after n moves, clamped to the move list.
// The first refused move is returned, the position still reflects every
// move that was accepted.
func (s *Sequencer) Seek(n int) error {
	n = max(0, min(n, len(s.moves)))
	s.position = s.rules.Reset()
	var first error
	for i := 0; i < n; i++ {
		if err := s.apply(i); err != nil && first == nil {
			first = err
		}
	}
	s.index = n
	s.render()
	return first
}

func (s *Sequencer) apply(i int) error {
	pos, err := s.rules.Apply(s.moves[i])
	if err != nil {
		return &MoveError{Ply: i + 1, Move: s.moves[i], Err: err}
	}
	s.position = pos
	return nil
}

func (s *Sequencer) render() {
	if s.display != nil {
		s.display.Render(s.position)
	}
}
