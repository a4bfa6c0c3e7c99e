package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"chessleague/internal/league"
)

// Document names as served under /data/.
const (
	PlayersDoc = "players.json"
	MatchesDoc = "matches.json"
	SchoolsDoc = "schools.json"
)

// Source provides the three league collections.
type Source interface {
	Players(ctx context.Context) ([]league.Player, error)
	Matches(ctx context.Context) ([]league.Match, error)
	Schools(ctx context.Context) ([]league.School, error)
}

// Fetcher returns the raw bytes of a named document.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// JSONSource decodes the league documents produced by a Fetcher.
type JSONSource struct {
	Fetcher Fetcher
}

func (s JSONSource) Players(ctx context.Context) ([]league.Player, error) {
	var out []league.Player
	return out, s.decode(ctx, PlayersDoc, &out)
}

func (s JSONSource) Matches(ctx context.Context) ([]league.Match, error) {
	var out []league.Match
	return out, s.decode(ctx, MatchesDoc, &out)
}

func (s JSONSource) Schools(ctx context.Context) ([]league.School, error) {
	var out []league.School
	return out, s.decode(ctx, SchoolsDoc, &out)
}

func (s JSONSource) decode(ctx context.Context, name string, v any) error {
	data, err := s.Fetcher.Fetch(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

// DirFetcher reads documents from a local directory.
type DirFetcher string

func (d DirFetcher) Fetch(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(string(d), name))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// HTTPFetcher downloads documents relative to BaseURL. Any non-2xx status
// is an error.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

func (f HTTPFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	url := strings.TrimRight(f.BaseURL, "/") + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: status %d", name, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
