package main

import (
	"runtime/debug"
	"time"
)

// Overridden with -ldflags "-X main.commit=... -X main.buildDate=...".
var (
	commit    = "dev"
	buildDate = ""
)

func init() {
	commit, buildDate = buildInfo(commit, buildDate)
}

// buildInfo fills unset values from the VCS stamp the go tool embeds.
func buildInfo(rev, date string) (string, string) {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && rev == "dev" && s.Value != "":
				rev = s.Value[:min(7, len(s.Value))]
			case s.Key == "vcs.time" && date == "" && s.Value != "":
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					date = t.Format(time.DateOnly)
				}
			}
		}
	}
	if date == "" {
		date = "unknown"
	}
	return rev, date
}
