package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

//go:embed *.html
var files embed.FS

// Pages.
const (
	Home        = "home.html"
	Leaderboard = "leaderboard.html"
	Game        = "game.html"
	Profile     = "profile.html"
)

var (
	commit = "dev"
	pages  = map[string]*template.Template{}
)

func init() {
	for _, name := range []string{Home, Leaderboard, Game, Profile} {
		pages[name] = template.Must(template.ParseFS(files, "layout.html", name))
	}
}

// SetCommit records the build revision shown in the footer.
func SetCommit(c string) { commit = c }

// Page is the data every page template receives. Data holds the page's
// materialized view and may be nil when nothing was found. Popups holds the
// school summaries the layout shows on hover.
type Page struct {
	Title       string
	Data        any
	Params      any
	Schools     any
	Popups      any
	Commit      string
	Offset      int
	HideDelayMs int64
}

// PopupSettings carries the school popup timings into the layout.
type PopupSettings struct {
	Offset    int
	HideDelay time.Duration
}

// Write renders a page template to w.
func Write(w http.ResponseWriter, name string, popup PopupSettings, p Page) error {
	t, ok := pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	p.Commit = commit
	p.Offset = popup.Offset
	p.HideDelayMs = popup.HideDelay.Milliseconds()

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", p); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	return nil
}
