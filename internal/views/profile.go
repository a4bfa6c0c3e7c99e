package views

import (
	"strconv"

	"chessleague/internal/league"
	"chessleague/internal/loader"
)

// Profile is one player's page.
type Profile struct {
	Player  league.PlayerRef `json:"player"`
	EloText string           `json:"eloText"`
	School  SchoolRef        `json:"school"`
	Games   []ProfileRow     `json:"games"`
}

// ProfileRow is a match seen from the profile player's side.
type ProfileRow struct {
	MatchRow
	Opponent league.PlayerRef `json:"opponent"`
	Outcome  string           `json:"outcome"`
}

// BuildProfile lists every match the player took part in, in collection
// order. An empty or unknown id yields false.
func BuildProfile(st *loader.State, id string) (Profile, bool) {
	p, ok := st.Index.Players[id]
	if !ok || id == "" {
		return Profile{}, false
	}
	prof := Profile{
		Player:  st.Index.Player(id),
		EloText: "Elo: " + strconv.Itoa(p.Elo),
		School:  schoolRef(st.Index, p.School),
		Games:   []ProfileRow{},
	}
	for _, m := range st.Matches {
		if !m.Involves(id) {
			continue
		}
		opp := m.Black
		if m.White != id {
			opp = m.White
		}
		prof.Games = append(prof.Games, ProfileRow{
			MatchRow: matchRow(st, m),
			Opponent: st.Index.Player(opp),
			Outcome:  league.ParseResult(m.Result).For(m, id),
		})
	}
	return prof, true
}
