package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/match"
	qb "github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

var matchSelectColumns = []string{
	"id",
	"external_id",
	"season",
	"date",
	"home_team_id",
	"away_team_id",
	"home_score",
	"away_score",
	"status",
	"venue",
	"created_at",
	"updated_at",
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// UpsertMany writes a calendar page's worth of matches. The external
// protocol id is the preferred key; it survives fixture reschedules, so
// matches carrying one are first matched by it. Everything else falls back
// to the (season, date, home, away) composite.
func (r *MatchRepository) UpsertMany(ctx context.Context, matches []match.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for match upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, m := range matches {
		if err := upsertMatch(ctx, tx, m); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit match upsert tx: %w", err)
	}

	return nil
}

const updateMatchByExternalIDQuery = `
UPDATE matches
SET season = :season,
    date = :date,
    home_team_id = :home_team_id,
    away_team_id = :away_team_id,
    home_score = :home_score,
    away_score = :away_score,
    status = :status,
    venue = :venue,
    updated_at = NOW()
WHERE external_id = :external_id`

const upsertMatchByCompositeQuery = `
INSERT INTO matches (id, external_id, season, date, home_team_id, away_team_id, home_score, away_score, status, venue)
VALUES (:id, :external_id, :season, :date, :home_team_id, :away_team_id, :home_score, :away_score, :status, :venue)
ON CONFLICT (season, date, home_team_id, away_team_id)
DO UPDATE SET
    external_id = COALESCE(EXCLUDED.external_id, matches.external_id),
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    status = EXCLUDED.status,
    venue = EXCLUDED.venue,
    updated_at = NOW()`

func upsertMatch(ctx context.Context, tx *sqlx.Tx, m match.Match) error {
	args := map[string]any{
		"id":           m.ID,
		"external_id":  nullString(m.ExternalID),
		"season":       m.Season,
		"date":         m.Date,
		"home_team_id": m.HomeTeamID,
		"away_team_id": m.AwayTeamID,
		"home_score":   m.HomeScore,
		"away_score":   m.AwayScore,
		"status":       string(m.Status),
		"venue":        m.Venue,
	}

	if m.ExternalID != "" {
		updateSQL, updateArgs, err := sqlx.Named(updateMatchByExternalIDQuery, args)
		if err != nil {
			return fmt.Errorf("bind update match by external id query: %w", err)
		}
		updateSQL = tx.Rebind(updateSQL)
		result, err := tx.ExecContext(ctx, updateSQL, updateArgs...)
		if err != nil {
			return fmt.Errorf("update match external_id=%s: %w", m.ExternalID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected for match external_id=%s: %w", m.ExternalID, err)
		}
		if affected > 0 {
			return nil
		}
	}

	insertSQL, insertArgs, err := sqlx.Named(upsertMatchByCompositeQuery, args)
	if err != nil {
		return fmt.Errorf("bind upsert match query: %w", err)
	}
	insertSQL = tx.Rebind(insertSQL)
	if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return fmt.Errorf("upsert match season=%s home=%s away=%s: %w", m.Season, m.HomeTeamID, m.AwayTeamID, err)
	}

	return nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build select match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, fmt.Errorf("match %s not found", matchID)
		}
		return match.Match{}, fmt.Errorf("select match by id: %w", err)
	}

	return matchFromRow(row), nil
}

func (r *MatchRepository) GetByExternalID(ctx context.Context, externalID string) (match.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("external_id", externalID)).
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build select match by external id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, fmt.Errorf("match external_id=%s not found", externalID)
		}
		return match.Match{}, fmt.Errorf("select match by external id: %w", err)
	}

	return matchFromRow(row), nil
}

func (r *MatchRepository) ListFinished(ctx context.Context, season string) ([]match.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(
			qb.Eq("season", season),
			qb.Eq("status", string(match.StatusFinished)),
		).
		OrderBy("date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select finished matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select finished matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}

	return out, nil
}
