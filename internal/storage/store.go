package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"chessleague/internal/league"
)

// Store reads and writes the league collections. It satisfies
// loader.Source, so the site can be served from the database instead of
// static documents.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new store helper from a gorm DB.
func NewStore(db *gorm.DB) *Store {
	if db == nil {
		return nil
	}
	return &Store{db: db}
}

// DB exposes the underlying gorm DB instance.
func (s *Store) DB() *gorm.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// Players returns every player in import order.
func (s *Store) Players(ctx context.Context) ([]league.Player, error) {
	var rows []Player
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading players: %w", err)
	}
	out := make([]league.Player, len(rows))
	for i, r := range rows {
		out[i] = r.toLeague()
	}
	return out, nil
}

// Matches returns every match in import order.
func (s *Store) Matches(ctx context.Context) ([]league.Match, error) {
	var rows []Match
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading matches: %w", err)
	}
	out := make([]league.Match, len(rows))
	for i, r := range rows {
		out[i] = r.toLeague()
	}
	return out, nil
}

// Schools returns every school.
func (s *Store) Schools(ctx context.Context) ([]league.School, error) {
	var rows []School
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading schools: %w", err)
	}
	out := make([]league.School, len(rows))
	for i, r := range rows {
		out[i] = r.toLeague()
	}
	return out, nil
}

// snapshot is one import worth of rows.
type snapshot struct {
	schools []School
	players []Player
	matches []Match
}

// buildSnapshot converts the collections to rows. Positions are the
// collection indexes, so they are unique and dense within each table.
func buildSnapshot(players []league.Player, matches []league.Match, schools []league.School) snapshot {
	snap := snapshot{
		schools: make([]School, len(schools)),
		players: make([]Player, len(players)),
		matches: make([]Match, len(matches)),
	}
	for i, sc := range schools {
		snap.schools[i] = fromSchool(sc)
	}
	for i, p := range players {
		snap.players[i] = fromPlayer(p, i)
	}
	for i, m := range matches {
		snap.matches[i] = fromMatch(m, i)
	}
	return snap
}

// Import replaces the stored league with a full snapshot in one
// transaction. Rows missing from the snapshot are removed. Collection order
// is kept in the position columns so reads return the same order.
func (s *Store) Import(ctx context.Context, players []league.Player, matches []league.Match, schools []league.School) error {
	snap := buildSnapshot(players, matches, schools)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []any{&Match{}, &Player{}, &School{}} {
			if err := all.Delete(model).Error; err != nil {
				return fmt.Errorf("clearing %T: %w", model, err)
			}
		}
		if len(snap.schools) > 0 {
			if err := tx.Create(&snap.schools).Error; err != nil {
				return fmt.Errorf("importing schools: %w", err)
			}
		}
		if len(snap.players) > 0 {
			if err := tx.Create(&snap.players).Error; err != nil {
				return fmt.Errorf("importing players: %w", err)
			}
		}
		if len(snap.matches) > 0 {
			if err := tx.Create(&snap.matches).Error; err != nil {
				return fmt.Errorf("importing matches: %w", err)
			}
		}
		return nil
	})
}
