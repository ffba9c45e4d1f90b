package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	qb "github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/querybuilder"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/usecase"
)

// LeaderboardRepository reads the player_season_points view, which scores
// ingested match events with the fantasy point weights.
type LeaderboardRepository struct {
	db *sqlx.DB
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) Leaderboard(ctx context.Context, season string, limit, offset int) ([]usecase.LeaderboardEntry, error) {
	query, args, err := qb.Select(
		"player_id",
		"player_name",
		"COALESCE(team_id, '') AS team_id",
		"position",
		"price",
		"points",
	).From("player_season_points").
		Where(qb.Eq("season", season)).
		OrderBy("points DESC", "player_name", "player_id").
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leaderboard query: %w", err)
	}

	var rows []struct {
		PlayerID   string  `db:"player_id"`
		PlayerName string  `db:"player_name"`
		TeamID     string  `db:"team_id"`
		Position   string  `db:"position"`
		Price      float64 `db:"price"`
		Points     int     `db:"points"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leaderboard: %w", err)
	}

	out := make([]usecase.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, usecase.LeaderboardEntry{
			PlayerID:   row.PlayerID,
			PlayerName: row.PlayerName,
			TeamID:     row.TeamID,
			Position:   row.Position,
			Price:      row.Price,
			Points:     row.Points,
		})
	}

	return out, nil
}
