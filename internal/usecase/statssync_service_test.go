package usecase

import (
	"context"
	"testing"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/external/floorball"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/staging"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/team"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/logging"
)

type stubStatsFetcher struct {
	tables map[floorball.StatsRole]floorball.StatsTable
}

func (f *stubStatsFetcher) FetchStatsTable(_ context.Context, role floorball.StatsRole, _ string) (floorball.StatsTable, error) {
	return f.tables[role], nil
}

type stubStagingRepo struct {
	rows map[string][]staging.Row
}

func newStubStagingRepo() *stubStagingRepo {
	return &stubStagingRepo{rows: make(map[string][]staging.Row)}
}

func (r *stubStagingRepo) Replace(_ context.Context, season string, rows []staging.Row) error {
	r.rows[season] = append([]staging.Row(nil), rows...)
	return nil
}

func (r *stubStagingRepo) ListBySeason(_ context.Context, season string) ([]staging.Row, error) {
	return append([]staging.Row(nil), r.rows[season]...), nil
}

func TestStatsSyncService_Seed(t *testing.T) {
	fetcher := &stubStatsFetcher{tables: map[floorball.StatsRole]floorball.StatsTable{
		floorball.RoleSkater: {
			Role:    floorball.RoleSkater,
			Headers: []string{"Vārds", "Komanda", "Poz.", "Sp", "Vārti", "Piespēles", "Sodu minūtes"},
			Rows: [][]string{
				{"Jānis Bērziņš", "Rīgas Lauvas", "U", "14", "12", "8", "6"},
				{"---", "", "", "", "", "", ""},
			},
		},
		floorball.RoleGoalie: {
			Role:    floorball.RoleGoalie,
			Headers: []string{"Vārds", "Komanda", "Sp", "Atvairītie metieni", "Ielaistie vārti"},
			Rows:    [][]string{{"Kārlis Liepa", "Ķekava", "11", "245", "31"}},
		},
	}}

	stagingRepo := newStubStagingRepo()
	svc := NewStatsSyncService(fetcher, stagingRepo, &stubTeamRepo{}, &stubPlayerRepo{}, &seqIDGen{}, logging.NewNop())

	count, err := svc.Seed(context.Background(), "2024/2025")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 staged rows after junk filtering, got %d", count)
	}

	rows := stagingRepo.rows["2024/2025"]
	if rows[0].PlayerName != "Jānis Bērziņš" || rows[0].Goals != 12 {
		t.Fatalf("unexpected skater row: %+v", rows[0])
	}
	if rows[1].Position != "G" || rows[1].Saves != 245 || rows[1].GoalsAgainst != 31 {
		t.Fatalf("unexpected goalie row: %+v", rows[1])
	}
	if rows[1].Goals != 0 {
		t.Fatalf("conceded goals leaked into the scored-goals column: %+v", rows[1])
	}
}

func TestStatsSyncService_Sync(t *testing.T) {
	stagingRepo := newStubStagingRepo()
	stagingRepo.rows["2024/2025"] = []staging.Row{
		{Season: "2024/2025", PlayerName: "Jānis Bērziņš", TeamName: "Rīgas Lauvas", Position: "U", Games: 14, Goals: 12, Assists: 8, PenaltyMinutes: 6},
		{Season: "2024/2025", PlayerName: "Kārlis Liepa", TeamName: "Ķekava", Position: "V", Games: 11, Saves: 245, GoalsAgainst: 31},
		{Season: "2024/2025", PlayerName: "Bez Komandas", TeamName: "", Position: "A"},
	}

	teamRepo := &stubTeamRepo{teams: []team.Team{{ID: "t1", Code: "RIG", Name: "Rigas Lauvas"}}}
	playerRepo := &stubPlayerRepo{players: []player.Player{{ID: "old", Name: "Vecais Spēlētājs", Position: player.PositionAttacker}}}
	svc := NewStatsSyncService(&stubStatsFetcher{}, stagingRepo, teamRepo, playerRepo, &seqIDGen{}, logging.NewNop())

	count, err := svc.Sync(context.Background(), "2024/2025")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 players, got %d", count)
	}

	// Kekava was missing and had to be created with a derived code.
	if len(teamRepo.created) != 1 || teamRepo.created[0].Code != "KEK" {
		t.Fatalf("unexpected created teams: %+v", teamRepo.created)
	}

	// Full replace: the old player is gone.
	for _, p := range playerRepo.players {
		if p.ID == "old" {
			t.Fatalf("players table was not fully replaced")
		}
	}

	byName := make(map[string]player.Player, len(playerRepo.players))
	for _, p := range playerRepo.players {
		byName[p.Name] = p
	}
	if byName["Jānis Bērziņš"].Position != player.PositionAttacker {
		t.Fatalf("expected uzbrucējs mapped to attacker: %+v", byName["Jānis Bērziņš"])
	}
	if byName["Jānis Bērziņš"].TeamID != "t1" {
		t.Fatalf("expected diacritic-insensitive team resolution: %+v", byName["Jānis Bērziņš"])
	}
	if byName["Kārlis Liepa"].Position != player.PositionGoalie {
		t.Fatalf("expected vārtsargs mapped to goalie: %+v", byName["Kārlis Liepa"])
	}
	if byName["Kārlis Liepa"].Stats.Saves != 245 || byName["Kārlis Liepa"].Stats.GoalsAgainst != 31 {
		t.Fatalf("goalie stats did not survive sync: %+v", byName["Kārlis Liepa"].Stats)
	}
	if byName["Bez Komandas"].TeamID != "" {
		t.Fatalf("expected empty team reference: %+v", byName["Bez Komandas"])
	}
}
