package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/fantasyteam"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
)

type FantasyTeamRepository struct {
	db *sqlx.DB
}

func NewFantasyTeamRepository(db *sqlx.DB) *FantasyTeamRepository {
	return &FantasyTeamRepository{db: db}
}

func (r *FantasyTeamRepository) GetByUserAndSeason(ctx context.Context, userID, season string) (fantasyteam.Team, bool, error) {
	const teamQuery = `
SELECT id, user_id, season, name, budget_cap, created_at, updated_at
FROM fantasy_teams
WHERE user_id = $1
  AND season = $2`

	var teamRow struct {
		ID        string    `db:"id"`
		UserID    string    `db:"user_id"`
		Season    string    `db:"season"`
		Name      string    `db:"name"`
		BudgetCap float64   `db:"budget_cap"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	if err := r.db.GetContext(ctx, &teamRow, teamQuery, userID, season); err != nil {
		if isNotFound(err) {
			return fantasyteam.Team{}, false, nil
		}
		return fantasyteam.Team{}, false, fmt.Errorf("get fantasy team: %w", err)
	}

	const picksQuery = `
SELECT player_id, COALESCE(team_id, '') AS team_id, position, price
FROM fantasy_team_players
WHERE fantasy_team_id = $1
ORDER BY id`

	var pickRows []struct {
		PlayerID string  `db:"player_id"`
		TeamID   string  `db:"team_id"`
		Position string  `db:"position"`
		Price    float64 `db:"price"`
	}
	if err := r.db.SelectContext(ctx, &pickRows, picksQuery, teamRow.ID); err != nil {
		return fantasyteam.Team{}, false, fmt.Errorf("list fantasy team picks: %w", err)
	}

	picks := make([]fantasyteam.Pick, 0, len(pickRows))
	for _, p := range pickRows {
		picks = append(picks, fantasyteam.Pick{
			PlayerID: p.PlayerID,
			TeamID:   p.TeamID,
			Position: player.Position(p.Position),
			Price:    p.Price,
		})
	}

	return fantasyteam.Team{
		ID:        teamRow.ID,
		UserID:    teamRow.UserID,
		Season:    teamRow.Season,
		Name:      teamRow.Name,
		Picks:     picks,
		BudgetCap: teamRow.BudgetCap,
		CreatedAt: teamRow.CreatedAt,
		UpdatedAt: teamRow.UpdatedAt,
	}, true, nil
}

func (r *FantasyTeamRepository) Upsert(ctx context.Context, team fantasyteam.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for fantasy team upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsertTeamQuery = `
INSERT INTO fantasy_teams (id, user_id, season, name, budget_cap)
VALUES (:id, :user_id, :season, :name, :budget_cap)
ON CONFLICT (user_id, season)
DO UPDATE SET
    name = EXCLUDED.name,
    budget_cap = EXCLUDED.budget_cap,
    updated_at = NOW()
RETURNING id`

	upsertSQL, upsertArgs, err := sqlx.Named(upsertTeamQuery, map[string]any{
		"id":         team.ID,
		"user_id":    team.UserID,
		"season":     team.Season,
		"name":       team.Name,
		"budget_cap": team.BudgetCap,
	})
	if err != nil {
		return fmt.Errorf("bind upsert fantasy team query: %w", err)
	}
	upsertSQL = tx.Rebind(upsertSQL)

	var teamID string
	if err := tx.GetContext(ctx, &teamID, upsertSQL, upsertArgs...); err != nil {
		return fmt.Errorf("upsert fantasy team: %w", err)
	}

	const clearPicksQuery = `
DELETE FROM fantasy_team_players
WHERE fantasy_team_id = $1`
	if _, err := tx.ExecContext(ctx, clearPicksQuery, teamID); err != nil {
		return fmt.Errorf("clear fantasy team picks: %w", err)
	}

	const insertPickQuery = `
INSERT INTO fantasy_team_players (fantasy_team_id, player_id, team_id, position, price)
VALUES (:fantasy_team_id, :player_id, :team_id, :position, :price)`

	for _, pick := range team.Picks {
		pickSQL, pickArgs, err := sqlx.Named(insertPickQuery, map[string]any{
			"fantasy_team_id": teamID,
			"player_id":       pick.PlayerID,
			"team_id":         nullString(pick.TeamID),
			"position":        string(pick.Position),
			"price":           pick.Price,
		})
		if err != nil {
			return fmt.Errorf("bind insert fantasy pick player=%s query: %w", pick.PlayerID, err)
		}
		pickSQL = tx.Rebind(pickSQL)
		if _, err := tx.ExecContext(ctx, pickSQL, pickArgs...); err != nil {
			return fmt.Errorf("insert fantasy pick player=%s: %w", pick.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit fantasy team upsert tx: %w", err)
	}

	return nil
}
