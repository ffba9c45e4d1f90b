package postgres

import "github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/staging"

type stagingTableModel struct {
	Season         string  `db:"season"`
	PlayerName     string  `db:"player_name"`
	TeamName       string  `db:"team_name"`
	Position       string  `db:"position"`
	Games          int     `db:"games"`
	Goals          int     `db:"goals"`
	Assists        int     `db:"assists"`
	Points         int     `db:"points"`
	PenaltyMinutes int     `db:"penalty_minutes"`
	Saves          int     `db:"saves"`
	GoalsAgainst   int     `db:"goals_against"`
	SavePct        float64 `db:"save_pct"`
}

func stagingInsertModels(rows []staging.Row) []stagingTableModel {
	models := make([]stagingTableModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, stagingTableModel{
			Season:         row.Season,
			PlayerName:     row.PlayerName,
			TeamName:       row.TeamName,
			Position:       row.Position,
			Games:          row.Games,
			Goals:          row.Goals,
			Assists:        row.Assists,
			Points:         row.Points,
			PenaltyMinutes: row.PenaltyMinutes,
			Saves:          row.Saves,
			GoalsAgainst:   row.GoalsAgainst,
			SavePct:        row.SavePct,
		})
	}
	return models
}

func stagingRowFromModel(model stagingTableModel) staging.Row {
	return staging.Row{
		Season:         model.Season,
		PlayerName:     model.PlayerName,
		TeamName:       model.TeamName,
		Position:       model.Position,
		Games:          model.Games,
		Goals:          model.Goals,
		Assists:        model.Assists,
		Points:         model.Points,
		PenaltyMinutes: model.PenaltyMinutes,
		Saves:          model.Saves,
		GoalsAgainst:   model.GoalsAgainst,
		SavePct:        model.SavePct,
	}
}
