package views

import (
	"chessleague/internal/league"
	"chessleague/internal/loader"
)

// GameDetail is everything the game viewer shows for one match.
type GameDetail struct {
	MatchRow
	EloBefore league.EloPair `json:"eloBefore"`
	EloAfter  league.EloPair `json:"eloAfter"`
	BeforeTxt string         `json:"eloBeforeText"`
	AfterTxt  string         `json:"eloAfterText"`
	EndReason string         `json:"endReason"`
	MovesText string         `json:"movesText"`
}

// FindMatch returns the match with the given id.
func FindMatch(st *loader.State, id string) (league.Match, bool) {
	if id == "" {
		return league.Match{}, false
	}
	for _, m := range st.Matches {
		if m.ID == id {
			return m, true
		}
	}
	return league.Match{}, false
}

// BuildGame resolves a single match. An empty or unknown id yields false.
func BuildGame(st *loader.State, id string) (GameDetail, bool) {
	m, ok := FindMatch(st, id)
	if !ok {
		return GameDetail{}, false
	}
	return GameDetail{
		MatchRow:  matchRow(st, m),
		EloBefore: m.EloBefore,
		EloAfter:  m.EloAfter,
		BeforeTxt: formatPair(m.EloBefore),
		AfterTxt:  formatPair(m.EloAfter),
		EndReason: m.EndReason,
		MovesText: movesText(m.Moves),
	}, true
}
