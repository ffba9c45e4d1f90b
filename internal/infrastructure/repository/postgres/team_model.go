package postgres

import "time"

type teamTableModel struct {
	ID        string    `db:"id"`
	Code      string    `db:"code"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	ID   string `db:"id"`
	Code string `db:"code"`
	Name string `db:"name"`
}
