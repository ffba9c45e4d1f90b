package querybuilder

import "testing"

func TestSelect_WithWhereOrderLimitOffset(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id", "name").From("players").
		Where(
			Eq("team_id", "team-1"),
			IsNull("deleted_at"),
		).
		OrderBy("name", "id").
		Limit(100).
		Offset(200).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "SELECT id, name FROM players WHERE team_id = $1 AND deleted_at IS NULL ORDER BY name, id LIMIT 100 OFFSET 200"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 1 || args[0] != "team-1" {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestSelect_InWithEmptyValues(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id").From("matches").
		Where(In("status", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}
	if query != "SELECT id FROM matches WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %#v", args)
	}
}

func TestInsert_SuffixPlaceholdersUntouched(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("teams").
		Columns("code", "name").
		Values("RIG", "Rigas Lauvas").
		Suffix("ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "INSERT INTO teams (code, name) VALUES ($1, $2) ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestInsertModels_MultiRow(t *testing.T) {
	t.Parallel()

	type row struct {
		Code string `db:"code"`
		Name string `db:"name"`
	}

	query, args, err := InsertModels("teams", []row{
		{Code: "RIG", Name: "Rigas Lauvas"},
		{Code: "TAL", Name: "Talsi"},
	}, "")
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "INSERT INTO teams (code, name) VALUES ($1, $2), ($3, $4)"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestUpdate_SetExprMixesArgs(t *testing.T) {
	t.Parallel()

	query, args, err := Update("players").
		Set("price", 75).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "p1")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}

	want := "UPDATE players SET price = $1, updated_at = NOW() WHERE id = $2"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestDeleteFrom(t *testing.T) {
	t.Parallel()

	query, args, err := DeleteFrom("match_events").
		Where(Eq("match_id", "m1")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL error: %v", err)
	}
	if query != "DELETE FROM match_events WHERE match_id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != "m1" {
		t.Fatalf("unexpected args: %#v", args)
	}
}
