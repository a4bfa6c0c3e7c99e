package views

import (
	"reflect"
	"testing"

	"chessleague/internal/league"
	"chessleague/internal/loader"
)

func newState(players []league.Player, matches []league.Match, schools []league.School) *loader.State {
	return &loader.State{
		Players: players,
		Matches: matches,
		Schools: schools,
		Index:   league.BuildIndex(players, schools),
	}
}

func scenario() *loader.State {
	return newState(
		[]league.Player{
			{ID: "p1", Name: "Ann", Elo: 1500, School: "s1"},
			{ID: "p2", Name: "Bo", Elo: 1600, School: "s2"},
		},
		[]league.Match{
			{ID: "m1", White: "p1", Black: "p2", Result: "black-win", Moves: []string{"e4", "e5"},
				EloBefore: league.EloPair{White: 1500, Black: 1600}, EloAfter: league.EloPair{White: 1492, Black: 1608}},
		},
		[]league.School{{ID: "s1", Name: "North"}},
	)
}

func TestScenarioLeaderboard(t *testing.T) {
	rows := BuildLeaderboard(scenario(), LeaderboardParams{Sort: SortElo})
	if len(rows) != 2 || rows[0].Name != "Bo" || rows[1].Name != "Ann" {
		t.Fatalf("unexpected order %+v", rows)
	}
	if rows[0].Rank != 1 || rows[0].Games != 1 || rows[1].Games != 1 {
		t.Fatalf("unexpected derived columns %+v", rows)
	}
	if rows[0].School.Name != "s2" || rows[1].School.Name != "North" {
		t.Fatalf("unexpected school names %+v", rows)
	}
}

func TestScenarioProfile(t *testing.T) {
	prof, ok := BuildProfile(scenario(), "p1")
	if !ok {
		t.Fatalf("expected profile")
	}
	if len(prof.Games) != 1 {
		t.Fatalf("expected one row, got %d", len(prof.Games))
	}
	row := prof.Games[0]
	if row.Opponent.Name != "Bo" || row.Result != "black-win" || row.Outcome != "loss" {
		t.Fatalf("unexpected row %+v", row)
	}
	if prof.EloText != "Elo: 1500" || prof.School.Name != "North" {
		t.Fatalf("unexpected header %+v", prof)
	}
}

func TestScenarioGame(t *testing.T) {
	g, ok := BuildGame(scenario(), "m1")
	if !ok {
		t.Fatalf("expected game")
	}
	if g.White.Name != "Ann" || g.Black.Name != "Bo" {
		t.Fatalf("unexpected players %+v %+v", g.White, g.Black)
	}
	if !reflect.DeepEqual(g.Moves, []string{"e4", "e5"}) || g.MovesText != "e4 e5" {
		t.Fatalf("unexpected moves %v %q", g.Moves, g.MovesText)
	}
	if g.BeforeTxt != "1500 | 1600" || g.AfterTxt != "1492 | 1608" {
		t.Fatalf("unexpected elo text %q %q", g.BeforeTxt, g.AfterTxt)
	}
	if _, ok := BuildGame(scenario(), "m99"); ok {
		t.Fatalf("expected no result for unknown match")
	}
	if _, ok := BuildGame(scenario(), ""); ok {
		t.Fatalf("expected no result for empty id")
	}
}

func TestGameUnknownPlayersFallBack(t *testing.T) {
	st := newState(nil, []league.Match{{ID: "m1", White: "ghost", Black: "p2", School: "sx"}}, nil)
	g, ok := BuildGame(st, "m1")
	if !ok {
		t.Fatalf("expected game")
	}
	if g.White.Known || g.White.Name != "ghost" || g.School.Name != "sx" {
		t.Fatalf("expected raw id fallback, got %+v", g)
	}
}

func TestProfileUnknown(t *testing.T) {
	if _, ok := BuildProfile(scenario(), "p9"); ok {
		t.Fatalf("expected no profile")
	}
}

func manyPlayers() *loader.State {
	players := []league.Player{
		{ID: "a", Name: "Alice", Elo: 1400, School: "s1"},
		{ID: "b", Name: "bob", Elo: 1700, School: "s2"},
		{ID: "c", Name: "Carol", Elo: 1400, School: "s1"},
		{ID: "d", Name: "Dave", Elo: 1550, School: "s2"},
		{ID: "e", Name: "Eve", Elo: 1400, School: "s1"},
		{ID: "f", Name: "Bobby", Elo: 1200},
	}
	matches := []league.Match{
		{ID: "m1", White: "a", Black: "b"},
		{ID: "m2", White: "c", Black: "a"},
		{ID: "m3", White: "a", Black: "d"},
		{ID: "m4", White: "e", Black: "e"},
		{ID: "m5", White: "b", Black: "c"},
	}
	return newState(players, matches, []league.School{{ID: "s1", Name: "North"}, {ID: "s2", Name: "South"}})
}

func ids(rows []PlayerRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestLeaderboardFilters(t *testing.T) {
	st := manyPlayers()
	if got := ids(BuildLeaderboard(st, LeaderboardParams{Search: "BOB"})); !reflect.DeepEqual(got, []string{"b", "f"}) {
		t.Fatalf("search: got %v", got)
	}
	if got := ids(BuildLeaderboard(st, LeaderboardParams{School: "s1"})); !reflect.DeepEqual(got, []string{"a", "c", "e"}) {
		t.Fatalf("school filter: got %v", got)
	}
	if got := ids(BuildLeaderboard(st, LeaderboardParams{School: "all", Search: "o", Sort: "bogus"})); !reflect.DeepEqual(got, []string{"b", "c", "f"}) {
		t.Fatalf("combined: got %v", got)
	}
}

func TestLeaderboardSortByGames(t *testing.T) {
	st := manyPlayers()
	rows := BuildLeaderboard(st, LeaderboardParams{Sort: SortGames})
	if got := ids(rows); !reflect.DeepEqual(got, []string{"a", "b", "c", "d", "e", "f"}) {
		t.Fatalf("got %v", got)
	}
	if rows[0].Games != 3 || rows[4].Games != 1 || rows[5].Games != 0 {
		t.Fatalf("unexpected counts %+v", rows)
	}
}

func TestLeaderboardIdempotent(t *testing.T) {
	st := manyPlayers()
	for _, p := range []LeaderboardParams{{}, {Sort: SortGames}, {Search: "o", School: "s1"}} {
		a := BuildLeaderboard(st, p)
		b := BuildLeaderboard(st, p)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("params %+v: results differ", p)
		}
	}
}

func TestGameCountSelfPlay(t *testing.T) {
	st := manyPlayers()
	if n := GameCount(st.Matches, "e"); n != 1 {
		t.Fatalf("expected 1, got %d", n)
	}
	if n := GameCount(st.Matches, "a"); n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
}

func TestHome(t *testing.T) {
	st := manyPlayers()
	h := BuildHome(st)
	if h.Featured == nil || h.Featured.ID != "m5" {
		t.Fatalf("unexpected featured %+v", h.Featured)
	}
	got := []string{}
	for _, r := range h.Recent {
		got = append(got, r.ID)
	}
	if !reflect.DeepEqual(got, []string{"m5", "m4", "m3"}) {
		t.Fatalf("unexpected recent %v", got)
	}
	if got := ids(h.Top); !reflect.DeepEqual(got, []string{"b", "d", "a", "c", "e"}) {
		t.Fatalf("unexpected top %v", got)
	}
	if h.Top[0].Rank != 1 || h.Top[4].Rank != 5 {
		t.Fatalf("unexpected ranks %+v", h.Top)
	}
	if st.Players[0].ID != "a" {
		t.Fatalf("home must not reorder state")
	}
}

func TestHomeEmpty(t *testing.T) {
	h := BuildHome(newState(nil, nil, nil))
	if h.Featured != nil || len(h.Recent) != 0 || len(h.Top) != 0 {
		t.Fatalf("expected empty home, got %+v", h)
	}
}

func TestLeaderboardSearchKeepsSpaces(t *testing.T) {
	st := manyPlayers()
	if got := BuildLeaderboard(st, LeaderboardParams{Search: " bo"}); len(got) != 0 {
		t.Fatalf("expected no match for leading space, got %v", ids(got))
	}
	if got := ids(BuildLeaderboard(st, LeaderboardParams{Search: "bo"})); !reflect.DeepEqual(got, []string{"b", "f"}) {
		t.Fatalf("got %v", got)
	}
}
