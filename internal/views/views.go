// Package views turns the loaded league into page-ready rows. Every
// function here is pure: it reads the loader state and never mutates it.
package views

import (
	"strconv"
	"strings"

	"chessleague/internal/league"
	"chessleague/internal/loader"
	"chessleague/pkg/utils"
)

// SchoolRef is a resolved school reference.
type SchoolRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func schoolRef(idx *league.Index, id string) SchoolRef {
	return SchoolRef{ID: id, Name: idx.SchoolName(id)}
}

// MatchRow is one match with both sides resolved.
type MatchRow struct {
	ID     string           `json:"id"`
	Date   string           `json:"date"`
	White  league.PlayerRef `json:"white"`
	Black  league.PlayerRef `json:"black"`
	Result string           `json:"result"`
	School SchoolRef        `json:"school"`
	Moves  []string         `json:"moves"`
}

func matchRow(st *loader.State, m league.Match) MatchRow {
	return MatchRow{
		ID:     m.ID,
		Date:   m.Date,
		White:  st.Index.Player(m.White),
		Black:  st.Index.Player(m.Black),
		Result: m.Result,
		School: schoolRef(st.Index, m.School),
		Moves:  m.Moves,
	}
}

// PlayerRow is a player with derived columns.
type PlayerRow struct {
	Rank   int       `json:"rank"`
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Elo    int       `json:"elo"`
	School SchoolRef `json:"school"`
	Games  int       `json:"games"`
}

// GameCount is the number of matches the player appears in. A match where
// the player is on both sides counts once.
func GameCount(matches []league.Match, playerID string) int {
	n := 0
	for _, m := range matches {
		if m.Involves(playerID) {
			n++
		}
	}
	return n
}

func formatPair(p league.EloPair) string {
	return strconv.Itoa(p.White) + " | " + strconv.Itoa(p.Black)
}

func movesText(moves []string) string {
	return strings.Join(moves, " ")
}

func displayName(name, id string) string {
	return utils.Coalesce(name, id, "unknown")
}
