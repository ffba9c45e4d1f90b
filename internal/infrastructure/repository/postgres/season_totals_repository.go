package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/usecase"
)

// SeasonTotalsRepository aggregates per-player totals from ingested match
// events. The parity check compares these against the league's own season
// tables.
type SeasonTotalsRepository struct {
	db *sqlx.DB
}

func NewSeasonTotalsRepository(db *sqlx.DB) *SeasonTotalsRepository {
	return &SeasonTotalsRepository{db: db}
}

const seasonTotalsQuery = `
WITH season_events AS (
    SELECT e.player_id, e.assist_player_id, e.type, e.value
    FROM match_events e
    JOIN matches m ON m.id = e.match_id
    WHERE m.season = $1
),
goals AS (
    SELECT player_id, COUNT(*) AS goals
    FROM season_events
    WHERE type = 'goal'
    GROUP BY player_id
),
assists AS (
    SELECT assist_player_id AS player_id, COUNT(*) AS assists
    FROM season_events
    WHERE type = 'goal'
      AND assist_player_id IS NOT NULL
    GROUP BY assist_player_id
),
penalties AS (
    SELECT player_id, SUM(value) AS penalty_minutes
    FROM season_events
    WHERE type <> 'goal'
    GROUP BY player_id
)
SELECT p.id AS player_id,
       p.name AS player_name,
       COALESCE(g.goals, 0) AS goals,
       COALESCE(a.assists, 0) AS assists,
       COALESCE(pen.penalty_minutes, 0) AS penalty_minutes
FROM players p
LEFT JOIN goals g ON g.player_id = p.id
LEFT JOIN assists a ON a.player_id = p.id
LEFT JOIN penalties pen ON pen.player_id = p.id
ORDER BY p.name, p.id`

func (r *SeasonTotalsRepository) SeasonTotals(ctx context.Context, season string) ([]usecase.ComputedTotals, error) {
	var rows []struct {
		PlayerID       string `db:"player_id"`
		PlayerName     string `db:"player_name"`
		Goals          int    `db:"goals"`
		Assists        int    `db:"assists"`
		PenaltyMinutes int    `db:"penalty_minutes"`
	}
	if err := r.db.SelectContext(ctx, &rows, seasonTotalsQuery, season); err != nil {
		return nil, fmt.Errorf("select season totals: %w", err)
	}

	out := make([]usecase.ComputedTotals, 0, len(rows))
	for _, row := range rows {
		out = append(out, usecase.ComputedTotals{
			PlayerID:       row.PlayerID,
			PlayerName:     row.PlayerName,
			Goals:          row.Goals,
			Assists:        row.Assists,
			PenaltyMinutes: row.PenaltyMinutes,
		})
	}

	return out, nil
}
