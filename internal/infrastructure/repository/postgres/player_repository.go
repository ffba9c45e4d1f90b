package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
	qb "github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"team_id",
	"name",
	"position",
	"games",
	"goals",
	"assists",
	"saves",
	"goals_against",
	"penalty_minutes",
	"price_computed",
	"price_manual",
	"price",
	"is_stub",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by team query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by team: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.In("id", stringSliceToAny(playerIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) CreateMany(ctx context.Context, players []player.Player) error {
	if len(players) == 0 {
		return nil
	}

	query, args, err := qb.InsertModels("players", playerInsertModels(players), "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert players query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert players: %w", err)
	}

	return nil
}

// ReplaceAll swaps the whole player pool for the fresh sync result. Delete
// and insert run in one transaction so readers never observe a half-synced
// table.
func (r *PlayerRepository) ReplaceAll(ctx context.Context, players []player.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for player replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("players").ToSQL()
	if err != nil {
		return fmt.Errorf("build delete players query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete players: %w", err)
	}

	if len(players) > 0 {
		query, args, err := qb.InsertModels("players", playerInsertModels(players), "")
		if err != nil {
			return fmt.Errorf("build insert players query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert players: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player replace tx: %w", err)
	}

	return nil
}

func (r *PlayerRepository) UpdatePrices(ctx context.Context, updates []player.PriceUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for price update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, update := range updates {
		query, args, err := qb.Update("players").
			Set("price_computed", update.PriceComputed).
			Set("price", update.Price).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("id", update.PlayerID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update price player=%s query: %w", update.PlayerID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update price player=%s: %w", update.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit price update tx: %w", err)
	}

	return nil
}

func playerInsertModels(players []player.Player) []playerInsertModel {
	models := make([]playerInsertModel, 0, len(players))
	for _, p := range players {
		models = append(models, playerInsertModel{
			ID:             p.ID,
			TeamID:         nullString(p.TeamID),
			Name:           p.Name,
			Position:       string(p.Position),
			Games:          p.Stats.Games,
			Goals:          p.Stats.Goals,
			Assists:        p.Stats.Assists,
			Saves:          p.Stats.Saves,
			GoalsAgainst:   p.Stats.GoalsAgainst,
			PenaltyMinutes: p.Stats.PenaltyMinutes,
			PriceComputed:  p.PriceComputed,
			PriceManual:    nullFloat(p.PriceManual),
			Price:          p.Price,
			Stub:           p.Stub,
		})
	}
	return models
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		var manual *float64
		if row.PriceManual.Valid {
			v := row.PriceManual.Float64
			manual = &v
		}
		out = append(out, player.Player{
			ID:       row.ID,
			TeamID:   row.TeamID.String,
			Name:     row.Name,
			Position: player.Position(row.Position),
			Stats: player.Stats{
				Games:          row.Games,
				Goals:          row.Goals,
				Assists:        row.Assists,
				Saves:          row.Saves,
				GoalsAgainst:   row.GoalsAgainst,
				PenaltyMinutes: row.PenaltyMinutes,
			},
			PriceComputed: row.PriceComputed,
			PriceManual:   manual,
			Price:         row.Price,
			Stub:          row.Stub,
		})
	}
	return out
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
