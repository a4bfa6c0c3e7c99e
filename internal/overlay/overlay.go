// Package overlay builds the summaries behind the school popup. The popup
// itself is driven in the browser by the page layout, which shows it from
// these summaries without a round trip.
package overlay

import (
	"time"

	"chessleague/internal/league"
)

// Defaults for the popup.
const (
	DefaultHideDelay = 200 * time.Millisecond
	DefaultOffset    = 15
)

// Info is the cached summary shown for a school.
type Info struct {
	SchoolID string `json:"id"`
	Name     string `json:"name"`
	Players  int    `json:"players"`
	Logo     string `json:"logo"`
}

// Lookup returns the summary for a known school.
func Lookup(idx *league.Index, schoolID string) (Info, bool) {
	s, ok := idx.Schools[schoolID]
	if !ok {
		return Info{}, false
	}
	return Info{
		SchoolID: s.ID,
		Name:     s.Name,
		Players:  idx.SchoolCount[s.ID],
		Logo:     league.LogoPath(s.ID),
	}, true
}

// Summaries returns the summary of every known school keyed by id.
func Summaries(idx *league.Index) map[string]Info {
	out := make(map[string]Info, len(idx.Schools))
	for id := range idx.Schools {
		info, _ := Lookup(idx, id)
		out[id] = info
	}
	return out
}
