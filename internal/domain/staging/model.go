package staging

import "unicode"

// Row holds one freshly scraped per-player season total before it is
// reconciled into the players table.
type Row struct {
	Season         string
	PlayerName     string
	TeamName       string
	Position       string
	Games          int
	Goals          int
	Assists        int
	Points         int
	PenaltyMinutes int
	Saves          int
	GoalsAgainst   int
	SavePct        float64
}

// IsJunk reports whether the row's name holds no letters at all. The league
// tables occasionally emit such rows for separators and totals; they are
// dropped before sync rather than turned into players.
func (r Row) IsJunk() bool {
	for _, ch := range r.PlayerName {
		if unicode.IsLetter(ch) {
			return false
		}
	}
	return true
}
