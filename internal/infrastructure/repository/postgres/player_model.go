package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID             string          `db:"id"`
	TeamID         sql.NullString  `db:"team_id"`
	Name           string          `db:"name"`
	Position       string          `db:"position"`
	Games          int             `db:"games"`
	Goals          int             `db:"goals"`
	Assists        int             `db:"assists"`
	Saves          int             `db:"saves"`
	GoalsAgainst   int             `db:"goals_against"`
	PenaltyMinutes int             `db:"penalty_minutes"`
	PriceComputed  float64         `db:"price_computed"`
	PriceManual    sql.NullFloat64 `db:"price_manual"`
	Price          float64         `db:"price"`
	Stub           bool            `db:"is_stub"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

type playerInsertModel struct {
	ID             string          `db:"id"`
	TeamID         sql.NullString  `db:"team_id"`
	Name           string          `db:"name"`
	Position       string          `db:"position"`
	Games          int             `db:"games"`
	Goals          int             `db:"goals"`
	Assists        int             `db:"assists"`
	Saves          int             `db:"saves"`
	GoalsAgainst   int             `db:"goals_against"`
	PenaltyMinutes int             `db:"penalty_minutes"`
	PriceComputed  float64         `db:"price_computed"`
	PriceManual    sql.NullFloat64 `db:"price_manual"`
	Price          float64         `db:"price"`
	Stub           bool            `db:"is_stub"`
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func nullFloat(value *float64) sql.NullFloat64 {
	if value == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *value, Valid: true}
}
