package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"chessleague/internal/league"
	"chessleague/internal/loader"
	"chessleague/internal/views"
)

type stubSource struct {
	fail bool
}

func (s stubSource) Players(context.Context) ([]league.Player, error) {
	if s.fail {
		return nil, errors.New("unreachable")
	}
	return []league.Player{
		{ID: "p1", Name: "Ann", Elo: 1500, School: "s1"},
		{ID: "p2", Name: "Bo", Elo: 1600, School: "s2"},
	}, nil
}

func (stubSource) Matches(context.Context) ([]league.Match, error) {
	return []league.Match{
		{ID: "m1", White: "p1", Black: "p2", Result: "black-win", Moves: []string{"e4", "e5"}, School: "s1",
			EloBefore: league.EloPair{White: 1500, Black: 1600}, EloAfter: league.EloPair{White: 1492, Black: 1608},
			EndReason: "resignation", Date: "2024-05-01"},
	}, nil
}

func (stubSource) Schools(context.Context) ([]league.School, error) {
	return []league.School{{ID: "s1", Name: "North"}}, nil
}

func newTestHandler(fail bool) http.Handler {
	l := loader.New(stubSource{fail: fail}, zerolog.Nop())
	h := NewHandler(l, Options{FeaturedInterval: time.Millisecond, RecentInterval: time.Millisecond})
	return RequestID(zerolog.Nop())(h.Routes())
}

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHomePage(t *testing.T) {
	w := get(t, newTestHandler(false), "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Featured Game", "Ann", "Bo", "topPlayersTable", `data-school="s1"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("home missing %q", want)
		}
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestLeaderboardAPI(t *testing.T) {
	w := get(t, newTestHandler(false), "/api/leaderboard?sort=elo")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var rows []views.PlayerRow
	if err := json.NewDecoder(w.Body).Decode(&rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "Bo" || rows[1].Name != "Ann" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestLeaderboardPageFilter(t *testing.T) {
	w := get(t, newTestHandler(false), "/leaderboard?search=an&school=s1")
	body := w.Body.String()
	if w.Code != http.StatusOK || !strings.Contains(body, "Ann") || strings.Contains(body, ">Bo<") {
		t.Fatalf("unexpected leaderboard page (%d)", w.Code)
	}
}

func TestGamePage(t *testing.T) {
	h := newTestHandler(false)
	w := get(t, h, "/game?id=m1")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "1500 | 1600") {
		t.Fatalf("unexpected game page (%d)", w.Code)
	}
	w = get(t, h, "/game?id=m99")
	if w.Code != http.StatusOK || strings.Contains(w.Body.String(), "game-info") {
		t.Fatalf("unknown match should render an empty page (%d)", w.Code)
	}
}

func TestGameAPINotFound(t *testing.T) {
	w := get(t, newTestHandler(false), "/api/game?id=m99")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestProfileAPI(t *testing.T) {
	w := get(t, newTestHandler(false), "/api/profile?id=p1")
	var prof views.Profile
	if err := json.NewDecoder(w.Body).Decode(&prof); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(prof.Games) != 1 || prof.Games[0].Opponent.Name != "Bo" || prof.Games[0].Result != "black-win" {
		t.Fatalf("unexpected profile %+v", prof)
	}
}

func TestSchoolAPI(t *testing.T) {
	h := newTestHandler(false)
	w := get(t, h, "/api/schools/s1")
	var info map[string]any
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info["name"] != "North" || info["players"] != float64(1) || info["logo"] != "/images/s1.avif" {
		t.Fatalf("unexpected info %v", info)
	}
	if w := get(t, h, "/api/schools/s2"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown school, got %d", w.Code)
	}
}

func TestPositionAPI(t *testing.T) {
	h := newTestHandler(false)
	var st PositionState
	w := get(t, h, "/api/game/position?id=m1&from=0&step=next")
	if err := json.NewDecoder(w.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Ply != 1 || st.Total != 2 || !strings.HasPrefix(st.FEN, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b") {
		t.Fatalf("unexpected state %+v", st)
	}
	w = get(t, h, "/api/game/position?id=m1&from=2&step=prev")
	if err := json.NewDecoder(w.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Ply != 1 || !strings.HasPrefix(st.FEN, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b") {
		t.Fatalf("unexpected state after prev %+v", st)
	}
}

func TestLoadFailure(t *testing.T) {
	h := newTestHandler(true)
	if w := get(t, h, "/"); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if w := get(t, h, "/api/home"); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestReplaySSE(t *testing.T) {
	w := get(t, newTestHandler(false), "/sse/replay/m1?pace=recent")
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var frames []Frame
	for _, line := range strings.Split(w.Body.String(), "\n") {
		data, ok := strings.CutPrefix(line, "data: ")
		if !ok || data == "{}" {
			continue
		}
		var f Frame
		if err := json.Unmarshal([]byte(data), &f); err != nil {
			t.Fatalf("decode %q: %v", data, err)
		}
		frames = append(frames, f)
	}
	if len(frames) != 4 {
		t.Fatalf("expected 3 positions and done, got %+v", frames)
	}
	if frames[0].Ply != 0 || frames[2].Ply != 2 || frames[3].Kind != "done" || frames[3].Ply != 2 {
		t.Fatalf("unexpected frames %+v", frames)
	}
}

func TestReplaySSEUnknown(t *testing.T) {
	if w := get(t, newTestHandler(false), "/sse/replay/m99"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	if got := ClientIP(req); got != "10.0.0.1" {
		t.Fatalf("expected forwarded ip, got %s", got)
	}
}

func TestPagesEmbedSchoolSummaries(t *testing.T) {
	for _, url := range []string{"/", "/leaderboard", "/game?id=m1", "/profile?id=p1", "/game?id=m99"} {
		body := get(t, newTestHandler(false), url).Body.String()
		if !strings.Contains(body, `"name":"North"`) || !strings.Contains(body, `"players":1`) {
			t.Fatalf("%s: school summaries missing from page", url)
		}
	}
}

func TestPopupOffsetUsedAsGiven(t *testing.T) {
	l := loader.New(stubSource{}, zerolog.Nop())
	h := NewHandler(l, Options{})
	if h.Opts.Popup.Offset != 0 || h.Opts.Popup.HideDelay != 0 {
		t.Fatalf("popup settings rewritten: %+v", h.Opts.Popup)
	}
	if h.Opts.FeaturedInterval <= 0 || h.Opts.RecentInterval <= 0 {
		t.Fatalf("intervals must default: %+v", h.Opts)
	}
	body := strings.Join(strings.Fields(get(t, h.Routes(), "/").Body.String()), " ")
	if !strings.Contains(body, "const offset = 0") {
		t.Fatalf("expected zero offset in layout")
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(false)
	var resp map[string]any
	if err := json.NewDecoder(get(t, h, "/healthz").Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["loaded"] != false {
		t.Fatalf("health must not load the league: %v", resp)
	}
	get(t, h, "/")
	if err := json.NewDecoder(get(t, h, "/healthz").Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["loaded"] != true {
		t.Fatalf("expected loaded after a page view: %v", resp)
	}
}

func TestLoadFailureCarriesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/home", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	newTestHandler(true).ServeHTTP(w, req)
	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["request_id"] != "req-42" {
		t.Fatalf("expected request id in error, got %v", resp)
	}
}
