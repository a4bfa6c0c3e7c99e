package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"chessleague/internal/league"
)

// ErrLoad wraps every failure to load the league documents.
var ErrLoad = errors.New("league data load failed")

// State is the loaded league plus its derived index. It is read-only once
// returned by Load.
type State struct {
	Players []league.Player
	Matches []league.Match
	Schools []league.School
	Index   *league.Index
}

// Loader fetches the league once and caches it. A failed load commits
// nothing, so a later call tries again.
type Loader struct {
	src    Source
	logger zerolog.Logger

	mu    sync.Mutex
	state *State
}

// New creates a loader over src.
func New(src Source, logger zerolog.Logger) *Loader {
	return &Loader{src: src, logger: logger}
}

// Load returns the cached state, fetching the three collections
// concurrently on first use.
func (l *Loader) Load(ctx context.Context) (*State, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != nil {
		return l.state, nil
	}

	var (
		players []league.Player
		matches []league.Match
		schools []league.School
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		players, err = l.src.Players(gctx)
		return err
	})
	g.Go(func() (err error) {
		matches, err = l.src.Matches(gctx)
		return err
	})
	g.Go(func() (err error) {
		schools, err = l.src.Schools(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		l.logger.Error().Err(err).Msg("league load failed")
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	l.state = &State{
		Players: players,
		Matches: matches,
		Schools: schools,
		Index:   league.BuildIndex(players, schools),
	}
	l.logger.Info().
		Int("players", len(players)).
		Int("matches", len(matches)).
		Int("schools", len(schools)).
		Msg("league loaded")
	return l.state, nil
}

// Loaded reports whether a load has succeeded.
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state != nil
}
