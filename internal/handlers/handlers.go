package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"chessleague/internal/loader"
	"chessleague/internal/logging"
	"chessleague/internal/overlay"
	"chessleague/internal/replay"
	"chessleague/internal/templates"
	"chessleague/internal/views"
	"chessleague/pkg/utils"
)

// Options holds the pacing and popup settings the pages use. Zero intervals
// fall back to the replay defaults; the popup settings are used as given.
type Options struct {
	FeaturedInterval time.Duration
	RecentInterval   time.Duration
	Popup            templates.PopupSettings
	Heartbeat        time.Duration
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	Loader *loader.Loader
	Opts   Options
}

// NewHandler creates a new handler instance
func NewHandler(l *loader.Loader, opts Options) *Handler {
	if opts.FeaturedInterval <= 0 {
		opts.FeaturedInterval = replay.FeaturedInterval
	}
	if opts.RecentInterval <= 0 {
		opts.RecentInterval = replay.RecentInterval
	}
	if opts.Heartbeat == 0 {
		opts.Heartbeat = 15 * time.Second
	}
	return &Handler{Loader: l, Opts: opts}
}

// Routes registers every page, API and stream endpoint.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.HandleHome)
	mux.HandleFunc("GET /index.html", h.HandleHome)
	mux.HandleFunc("GET /leaderboard", h.HandleLeaderboard)
	mux.HandleFunc("GET /game", h.HandleGame)
	mux.HandleFunc("GET /profile", h.HandleProfile)
	mux.HandleFunc("GET /healthz", h.HandleHealth)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/home", h.APIHome)
	api.HandleFunc("GET /api/leaderboard", h.APILeaderboard)
	api.HandleFunc("GET /api/game", h.APIGame)
	api.HandleFunc("GET /api/game/position", h.APIPosition)
	api.HandleFunc("GET /api/profile", h.APIProfile)
	api.HandleFunc("GET /api/schools/{id}", h.APISchool)
	mux.Handle("/api/", CORS(api))

	mux.HandleFunc("GET /sse/replay/{id}", h.HandleReplaySSE)
	return mux
}

// state loads league data or writes the failure response. Nothing is
// rendered when the load fails.
func (h *Handler) state(w http.ResponseWriter, r *http.Request, asJSON bool) (*loader.State, bool) {
	st, err := h.Loader.Load(r.Context())
	if err == nil {
		return st, true
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("league unavailable")
	if asJSON {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"ok":         false,
			"error":      err.Error(),
			"request_id": GetRequestID(r.Context()),
		})
	} else {
		http.Error(w, "league data unavailable", http.StatusServiceUnavailable)
	}
	return nil, false
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, st *loader.State, name string, p templates.Page) {
	p.Popups = overlay.Summaries(st.Index)
	if err := templates.Write(w, name, h.Opts.Popup, p); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("template failed")
		http.Error(w, "Template not found", http.StatusInternalServerError)
	}
}

func leaderboardParams(r *http.Request) views.LeaderboardParams {
	q := r.URL.Query()
	return views.LeaderboardParams{
		Search: q.Get("search"),
		School: q.Get("school"),
		Sort:   q.Get("sort"),
	}.Normalize()
}

func queryID(r *http.Request) string {
	return utils.QueryID(r.URL.Query().Get("id"))
}

// HandleHome serves the home page
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r, false)
	if !ok {
		return
	}
	h.page(w, r, st, templates.Home, templates.Page{Title: "Home", Data: views.BuildHome(st)})
}

// HandleLeaderboard serves the filtered, sorted player table
func (h *Handler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r, false)
	if !ok {
		return
	}
	params := leaderboardParams(r)
	h.page(w, r, st, templates.Leaderboard, templates.Page{
		Title:   "Leaderboard",
		Data:    views.BuildLeaderboard(st, params),
		Params:  params,
		Schools: st.Schools,
	})
}

// HandleGame serves the game viewer. An unknown match renders an empty page.
func (h *Handler) HandleGame(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r, false)
	if !ok {
		return
	}
	p := templates.Page{Title: "Game"}
	if g, found := views.BuildGame(st, queryID(r)); found {
		p.Data = g
	}
	h.page(w, r, st, templates.Game, p)
}

// HandleProfile serves a player's page. An unknown player renders an empty page.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r, false)
	if !ok {
		return
	}
	p := templates.Page{Title: "Profile"}
	if prof, found := views.BuildProfile(st, queryID(r)); found {
		p.Data = prof
		p.Title = prof.Player.Name
	}
	h.page(w, r, st, templates.Profile, p)
}

// HandleHealth reports whether the league has been loaded. It never
// triggers a load itself.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "loaded": h.Loader.Loaded()})
}

func (h *Handler) APIHome(w http.ResponseWriter, r *http.Request) {
	if st, ok := h.state(w, r, true); ok {
		WriteJSON(w, http.StatusOK, views.BuildHome(st))
	}
}

func (h *Handler) APILeaderboard(w http.ResponseWriter, r *http.Request) {
	if st, ok := h.state(w, r, true); ok {
		WriteJSON(w, http.StatusOK, views.BuildLeaderboard(st, leaderboardParams(r)))
	}
}

func (h *Handler) APIGame(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r, true)
	if !ok {
		return
	}
	g, found := views.BuildGame(st, queryID(r))
	if !found {
		WriteJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": "match not found"})
		return
	}
	WriteJSON(w, http.StatusOK, g)
}

func (h *Handler) APIProfile(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r, true)
	if !ok {
		return
	}
	prof, found := views.BuildProfile(st, queryID(r))
	if !found {
		WriteJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": "player not found"})
		return
	}
	WriteJSON(w, http.StatusOK, prof)
}

// APISchool returns the popup summary for a school.
func (h *Handler) APISchool(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r, true)
	if !ok {
		return
	}
	info, found := overlay.Lookup(st.Index, r.PathValue("id"))
	if !found {
		WriteJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": "school not found"})
		return
	}
	WriteJSON(w, http.StatusOK, info)
}

// PositionState is one step of the interactive viewer.
type PositionState struct {
	Ply    int    `json:"ply"`
	Total  int    `json:"total"`
	FEN    string `json:"fen"`
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// APIPosition rebuilds the board after "from" plies and optionally steps
// once with step=next or step=prev.
func (h *Handler) APIPosition(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r, true)
	if !ok {
		return
	}
	m, found := views.FindMatch(st, queryID(r))
	if !found {
		WriteJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": "match not found"})
		return
	}
	q := r.URL.Query()
	from, _ := strconv.Atoi(q.Get("from"))

	rules := replay.NewChessRules()
	seq := replay.NewSequencer(m.Moves, rules, nil)
	err := seq.Seek(from)
	switch q.Get("step") {
	case "next":
		err = seq.Forward()
	case "prev":
		err = seq.Backward()
	}
	resp := PositionState{Ply: seq.Index(), Total: seq.Len(), FEN: seq.Position(), Status: rules.Status()}
	var me *replay.MoveError
	if errors.As(err, &me) {
		resp.Error = me.Error()
		logging.Debugf("position %s: %v", m.ID, me)
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Frame is one Server-Sent Event of a replay stream.
type Frame struct {
	Kind  string `json:"kind"`
	FEN   string `json:"fen,omitempty"`
	Ply   int    `json:"ply"`
	Total int    `json:"total"`
}

// HandleReplaySSE streams an autoplay of a match. The autoplay stops when
// the client goes away.
func (h *Handler) HandleReplaySSE(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r, true)
	if !ok {
		return
	}
	m, found := views.FindMatch(st, r.PathValue("id"))
	if !found {
		http.NotFound(w, r)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	interval := h.Opts.FeaturedInterval
	if r.URL.Query().Get("pace") == "recent" {
		interval = h.Opts.RecentInterval
	}

	ctx := r.Context()
	logger := zerolog.Ctx(ctx).With().Str("stream_id", uuid.NewString()).Str("match", m.ID).Logger()
	ctx = logger.WithContext(ctx)

	frames := make(chan Frame, 16)
	ply := 0
	display := replay.DisplayFunc(func(pos string) {
		f := Frame{Kind: "position", FEN: pos, Ply: ply, Total: len(m.Moves)}
		ply++
		select {
		case frames <- f:
		case <-ctx.Done():
		}
	})

	seq := replay.NewSequencer(m.Moves, replay.NewChessRules(), display)
	write := func(f Frame) {
		data, _ := json.Marshal(f)
		_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}
	write(<-frames)

	auto := replay.Start(ctx, seq, interval)
	defer auto.Stop()
	logger.Debug().Dur("interval", interval).Msg("replay started")

	ticker := time.NewTicker(h.Opts.Heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = w.Write([]byte("data: {}\n\n"))
			flusher.Flush()
		case f := <-frames:
			write(f)
		case <-auto.Done():
			for {
				select {
				case f := <-frames:
					write(f)
				default:
					write(Frame{Kind: "done", Ply: seq.Index(), Total: seq.Len()})
					return
				}
			}
		}
	}
}
