package storage

import (
	"strings"
	"time"

	"chessleague/internal/league"
)

// School is a persisted school.
type School struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Logo      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Player is a persisted player.
type Player struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Elo       int
	SchoolID  string `gorm:"index"`
	Position  int    `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Match is a persisted match. Moves are stored one per line.
type Match struct {
	ID             string `gorm:"primaryKey"`
	WhiteID        string `gorm:"index"`
	BlackID        string `gorm:"index"`
	Result         string
	Date           string
	Moves          string `gorm:"type:text"`
	SchoolID       string `gorm:"index"`
	EloBeforeWhite int
	EloBeforeBlack int
	EloAfterWhite  int
	EloAfterBlack  int
	EndReason      string
	Position       int `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func fromSchool(s league.School) School {
	return School{ID: s.ID, Name: s.Name, Logo: s.Logo}
}

func (s School) toLeague() league.School {
	return league.School{ID: s.ID, Name: s.Name, Logo: s.Logo}
}

func fromPlayer(p league.Player, pos int) Player {
	return Player{ID: p.ID, Name: p.Name, Elo: p.Elo, SchoolID: p.School, Position: pos}
}

func (p Player) toLeague() league.Player {
	return league.Player{ID: p.ID, Name: p.Name, Elo: p.Elo, School: p.SchoolID}
}

func fromMatch(m league.Match, pos int) Match {
	return Match{
		ID:             m.ID,
		WhiteID:        m.White,
		BlackID:        m.Black,
		Result:         m.Result,
		Date:           m.Date,
		Moves:          strings.Join(m.Moves, "\n"),
		SchoolID:       m.School,
		EloBeforeWhite: m.EloBefore.White,
		EloBeforeBlack: m.EloBefore.Black,
		EloAfterWhite:  m.EloAfter.White,
		EloAfterBlack:  m.EloAfter.Black,
		EndReason:      m.EndReason,
		Position:       pos,
	}
}

func (m Match) toLeague() league.Match {
	var moves []string
	if m.Moves != "" {
		moves = strings.Split(m.Moves, "\n")
	}
	return league.Match{
		ID:        m.ID,
		White:     m.WhiteID,
		Black:     m.BlackID,
		Result:    m.Result,
		Date:      m.Date,
		Moves:     moves,
		School:    m.SchoolID,
		EloBefore: league.EloPair{White: m.EloBeforeWhite, Black: m.EloBeforeBlack},
		EloAfter:  league.EloPair{White: m.EloAfterWhite, Black: m.EloAfterBlack},
		EndReason: m.EndReason,
	}
}
