package postgres

import (
	"database/sql"
	"time"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/match"
)

type matchTableModel struct {
	ID         string         `db:"id"`
	ExternalID sql.NullString `db:"external_id"`
	Season     string         `db:"season"`
	Date       time.Time      `db:"date"`
	HomeTeamID string         `db:"home_team_id"`
	AwayTeamID string         `db:"away_team_id"`
	HomeScore  int            `db:"home_score"`
	AwayScore  int            `db:"away_score"`
	Status     string         `db:"status"`
	Venue      string         `db:"venue"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:         row.ID,
		ExternalID: row.ExternalID.String,
		Season:     row.Season,
		Date:       row.Date,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		HomeScore:  row.HomeScore,
		AwayScore:  row.AwayScore,
		Status:     match.Status(row.Status),
		Venue:      row.Venue,
	}
}
