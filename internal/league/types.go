package league

import (
	"strings"

	json "github.com/goccy/go-json"
)

// Player is a rated league member.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Elo    int    `json:"elo"`
	School string `json:"school,omitempty"`
}

// School is a club players may belong to.
type School struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// EloPair holds a rating for each side of a match.
type EloPair struct {
	White int `json:"white"`
	Black int `json:"black"`
}

// Match is a finished game between two players.
type Match struct {
	ID        string   `json:"id"`
	White     string   `json:"white"`
	Black     string   `json:"black"`
	Result    string   `json:"result"`
	Date      string   `json:"date"`
	Moves     []string `json:"moves"`
	School    string   `json:"school,omitempty"`
	EloBefore EloPair  `json:"eloBefore"`
	EloAfter  EloPair  `json:"eloAfter"`
	EndReason string   `json:"endReason"`
}

// UnmarshalJSON accepts both the nested eloBefore/eloAfter objects and the
// flat eloBeforeWhite/eloBeforeBlack/eloAfterWhite/eloAfterBlack fields.
func (m *Match) UnmarshalJSON(data []byte) error {
	type plain Match
	var raw struct {
		plain
		EloBeforeWhite *int `json:"eloBeforeWhite"`
		EloBeforeBlack *int `json:"eloBeforeBlack"`
		EloAfterWhite  *int `json:"eloAfterWhite"`
		EloAfterBlack  *int `json:"eloAfterBlack"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Match(raw.plain)
	setIf(&m.EloBefore.White, raw.EloBeforeWhite)
	setIf(&m.EloBefore.Black, raw.EloBeforeBlack)
	setIf(&m.EloAfter.White, raw.EloAfterWhite)
	setIf(&m.EloAfter.Black, raw.EloAfterBlack)
	return nil
}

func setIf(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Involves reports whether the player took either side of the match.
func (m Match) Involves(playerID string) bool {
	return m.White == playerID || m.Black == playerID
}

// Outcome is the parsed form of Match.Result.
type Outcome int

const (
	Undecided Outcome = iota
	WhiteWin
	BlackWin
	Draw
)

// ParseResult understands both the league's spelled-out results and PGN
// score notation. Anything else is Undecided.
func ParseResult(s string) Outcome {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white-win", "white", "1-0":
		return WhiteWin
	case "black-win", "black", "0-1":
		return BlackWin
	case "draw", "1/2-1/2", "½-½":
		return Draw
	}
	return Undecided
}

// For returns the outcome from one player's point of view: "win", "loss",
// "draw" or "" when the player is not in the match or the result is unknown.
func (o Outcome) For(m Match, playerID string) string {
	switch {
	case !m.Involves(playerID) || o == Undecided:
		return ""
	case o == Draw:
		return "draw"
	case (o == WhiteWin) == (m.White == playerID):
		return "win"
	}
	return "loss"
}
