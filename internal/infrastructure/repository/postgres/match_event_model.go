package postgres

import (
	"database/sql"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/match"
)

type matchEventTableModel struct {
	ID             string         `db:"id"`
	MatchID        string         `db:"match_id"`
	Period         int            `db:"period"`
	Second         int            `db:"second"`
	TeamID         string         `db:"team_id"`
	PlayerID       string         `db:"player_id"`
	AssistPlayerID sql.NullString `db:"assist_player_id"`
	Type           string         `db:"type"`
	Value          int            `db:"value"`
	Raw            string         `db:"raw"`
}

func matchEventInsertModels(events []match.Event) []matchEventTableModel {
	models := make([]matchEventTableModel, 0, len(events))
	for _, e := range events {
		models = append(models, matchEventTableModel{
			ID:             e.ID,
			MatchID:        e.MatchID,
			Period:         e.Period,
			Second:         e.Second,
			TeamID:         e.TeamID,
			PlayerID:       e.PlayerID,
			AssistPlayerID: nullString(e.AssistPlayerID),
			Type:           string(e.Type),
			Value:          e.Value,
			Raw:            e.Raw,
		})
	}
	return models
}

func matchEventFromRow(row matchEventTableModel) match.Event {
	return match.Event{
		ID:             row.ID,
		MatchID:        row.MatchID,
		Period:         row.Period,
		Second:         row.Second,
		TeamID:         row.TeamID,
		PlayerID:       row.PlayerID,
		AssistPlayerID: row.AssistPlayerID.String,
		Type:           match.EventType(row.Type),
		Value:          row.Value,
		Raw:            row.Raw,
	}
}
