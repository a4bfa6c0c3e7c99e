package views

import (
	"slices"

	"chessleague/internal/league"
	"chessleague/internal/loader"
)

const (
	recentCount  = 3
	previewCount = 5
)

// Home is the landing page: the newest match featured, the few before it
// and the top of the leaderboard.
type Home struct {
	Featured *MatchRow   `json:"featured"`
	Recent   []MatchRow  `json:"recent"`
	Top      []PlayerRow `json:"top"`
}

// BuildHome selects the last match as featured, the last three newest
// first as recent, and the five highest rated players. Equal ratings keep
// collection order.
func BuildHome(st *loader.State) Home {
	var h Home
	if n := len(st.Matches); n > 0 {
		f := matchRow(st, st.Matches[n-1])
		h.Featured = &f
		for i := n - 1; i >= 0 && i >= n-recentCount; i-- {
			h.Recent = append(h.Recent, matchRow(st, st.Matches[i]))
		}
	}

	players := slices.Clone(st.Players)
	slices.SortStableFunc(players, byEloDesc)
	if len(players) > previewCount {
		players = players[:previewCount]
	}
	for i, p := range players {
		h.Top = append(h.Top, PlayerRow{
			Rank:   i + 1,
			ID:     p.ID,
			Name:   displayName(p.Name, p.ID),
			Elo:    p.Elo,
			School: schoolRef(st.Index, p.School),
		})
	}
	return h
}

func byEloDesc(a, b league.Player) int {
	return b.Elo - a.Elo
}
