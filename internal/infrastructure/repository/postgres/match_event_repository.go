package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/match"
	qb "github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/querybuilder"
)

type MatchEventRepository struct {
	db *sqlx.DB
}

var matchEventSelectColumns = []string{
	"id",
	"match_id",
	"period",
	"second",
	"team_id",
	"player_id",
	"assist_player_id",
	"type",
	"value",
	"raw",
}

func NewMatchEventRepository(db *sqlx.DB) *MatchEventRepository {
	return &MatchEventRepository{db: db}
}

// ReplaceForMatch deletes the match's events and bulk-inserts the fresh
// parse. Events are never patched in place; re-running ingestion for a match
// must converge on the same set.
func (r *MatchEventRepository) ReplaceForMatch(ctx context.Context, matchID string, events []match.Event) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for event replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("match_events").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match events query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete match events match=%s: %w", matchID, err)
	}

	if len(events) > 0 {
		query, args, err := qb.InsertModels("match_events", matchEventInsertModels(events), "")
		if err != nil {
			return fmt.Errorf("build insert match events query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert match events match=%s: %w", matchID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit event replace tx: %w", err)
	}

	return nil
}

func (r *MatchEventRepository) ListByMatch(ctx context.Context, matchID string) ([]match.Event, error) {
	query, args, err := qb.Select(matchEventSelectColumns...).From("match_events").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("period", "second", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match events query: %w", err)
	}

	var rows []matchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match events: %w", err)
	}

	out := make([]match.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchEventFromRow(row))
	}

	return out, nil
}
