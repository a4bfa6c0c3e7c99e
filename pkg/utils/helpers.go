package utils

import "strings"

// Coalesce returns the first value that is not blank.
func Coalesce(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// QueryID normalises an id taken from a query string.
func QueryID(raw string) string {
	return strings.TrimSpace(raw)
}
