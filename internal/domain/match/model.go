package match

import (
	"fmt"
	"time"
)

// Status tracks a match through its lifecycle. Calendar ingestion flips a
// match to finished once a score or protocol link appears.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusFinished  Status = "finished"
)

var AllStatuses = map[Status]struct{}{
	StatusScheduled: {},
	StatusLive:      {},
	StatusFinished:  {},
}

// Match is one fixture in the league calendar. ExternalID is the league
// site's protocol identifier and the preferred upsert key; when absent the
// (season, date, home, away) composite is used instead.
type Match struct {
	ID         string
	ExternalID string
	Season     string
	Date       time.Time
	HomeTeamID string
	AwayTeamID string
	HomeScore  int
	AwayScore  int
	Status     Status
	Venue      string
}

func (m Match) Validate() error {
	if m.Season == "" {
		return fmt.Errorf("match season is required")
	}
	if m.Date.IsZero() {
		return fmt.Errorf("match date is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match team references are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match cannot have the same team on both sides")
	}
	if _, ok := AllStatuses[m.Status]; !ok {
		return fmt.Errorf("invalid match status: %s", m.Status)
	}
	if m.HomeScore < 0 || m.AwayScore < 0 {
		return fmt.Errorf("match scores cannot be negative")
	}

	return nil
}
