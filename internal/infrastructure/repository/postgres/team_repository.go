package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/team"
	qb "github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

var teamSelectColumns = []string{
	"id",
	"code",
	"name",
	"created_at",
	"updated_at",
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{
			ID:   row.ID,
			Code: row.Code,
			Name: row.Name,
		})
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, fmt.Errorf("team %s not found", teamID)
		}
		return team.Team{}, fmt.Errorf("select team by id: %w", err)
	}

	return team.Team{ID: row.ID, Code: row.Code, Name: row.Name}, nil
}

func (r *TeamRepository) CreateMany(ctx context.Context, teams []team.Team) error {
	if len(teams) == 0 {
		return nil
	}

	models := make([]teamInsertModel, 0, len(teams))
	for _, t := range teams {
		models = append(models, teamInsertModel{ID: t.ID, Code: t.Code, Name: t.Name})
	}

	query, args, err := qb.InsertModels("teams", models, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert teams query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert teams: %w", err)
	}

	return nil
}
