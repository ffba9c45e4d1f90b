package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/staging"
	qb "github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/querybuilder"
)

// StagingRepository stores scraped season totals verbatim before they are
// reconciled into the players table. Each scrape replaces the season's rows.
type StagingRepository struct {
	db *sqlx.DB
}

var stagingSelectColumns = []string{
	"season",
	"player_name",
	"team_name",
	"position",
	"games",
	"goals",
	"assists",
	"points",
	"penalty_minutes",
	"saves",
	"goals_against",
	"save_pct",
}

func NewStagingRepository(db *sqlx.DB) *StagingRepository {
	return &StagingRepository{db: db}
}

func (r *StagingRepository) Replace(ctx context.Context, season string, rows []staging.Row) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for staging replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("players_stats_staging").
		Where(qb.Eq("season", season)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete staging rows query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete staging rows season=%s: %w", season, err)
	}

	if len(rows) > 0 {
		query, args, err := qb.InsertModels("players_stats_staging", stagingInsertModels(rows), "")
		if err != nil {
			return fmt.Errorf("build insert staging rows query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert staging rows season=%s: %w", season, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit staging replace tx: %w", err)
	}

	return nil
}

func (r *StagingRepository) ListBySeason(ctx context.Context, season string) ([]staging.Row, error) {
	query, args, err := qb.Select(stagingSelectColumns...).From("players_stats_staging").
		Where(qb.Eq("season", season)).
		OrderBy("player_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select staging rows query: %w", err)
	}

	var rows []stagingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select staging rows: %w", err)
	}

	out := make([]staging.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, stagingRowFromModel(row))
	}

	return out, nil
}
