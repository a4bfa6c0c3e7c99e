package views

import (
	"slices"
	"strings"

	"chessleague/internal/loader"
)

// Sort modes for the leaderboard.
const (
	SortElo   = "elo"
	SortGames = "games"
)

// AllSchools disables the school filter.
const AllSchools = "all"

// LeaderboardParams are the user controls on the leaderboard page.
type LeaderboardParams struct {
	Search string
	School string
	Sort   string
}

// Normalize fills in defaults for empty or unknown values. The search term
// is matched as typed, surrounding spaces included.
func (p LeaderboardParams) Normalize() LeaderboardParams {
	if p.School == "" {
		p.School = AllSchools
	}
	if p.Sort != SortGames {
		p.Sort = SortElo
	}
	return p
}

// BuildLeaderboard filters players by a case-insensitive name substring and
// by school, attaches game counts and sorts descending by elo or games.
// Ties keep collection order. There is no pagination.
func BuildLeaderboard(st *loader.State, params LeaderboardParams) []PlayerRow {
	params = params.Normalize()
	search := strings.ToLower(params.Search)

	rows := make([]PlayerRow, 0, len(st.Players))
	for _, p := range st.Players {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if params.School != AllSchools && p.School != params.School {
			continue
		}
		rows = append(rows, PlayerRow{
			ID:     p.ID,
			Name:   displayName(p.Name, p.ID),
			Elo:    p.Elo,
			School: schoolRef(st.Index, p.School),
			Games:  GameCount(st.Matches, p.ID),
		})
	}

	if params.Sort == SortGames {
		slices.SortStableFunc(rows, func(a, b PlayerRow) int { return b.Games - a.Games })
	} else {
		slices.SortStableFunc(rows, func(a, b PlayerRow) int { return b.Elo - a.Elo })
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
