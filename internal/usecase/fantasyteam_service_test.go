package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/fantasyteam"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
)

type stubFantasyRepo struct {
	teams map[string]fantasyteam.Team
}

func newStubFantasyRepo() *stubFantasyRepo {
	return &stubFantasyRepo{teams: make(map[string]fantasyteam.Team)}
}

func (r *stubFantasyRepo) GetByUserAndSeason(_ context.Context, userID, season string) (fantasyteam.Team, bool, error) {
	team, ok := r.teams[userID+":"+season]
	return team, ok, nil
}

func (r *stubFantasyRepo) Upsert(_ context.Context, team fantasyteam.Team) error {
	r.teams[team.UserID+":"+team.Season] = team
	return nil
}

func fantasyPool() []player.Player {
	return []player.Player{
		{ID: "g1", TeamID: "t1", Name: "Keeper", Position: player.PositionGoalie, Price: 10},
		{ID: "d1", TeamID: "t1", Name: "D One", Position: player.PositionDefender, Price: 10},
		{ID: "d2", TeamID: "t2", Name: "D Two", Position: player.PositionDefender, Price: 10},
		{ID: "d3", TeamID: "t3", Name: "D Three", Position: player.PositionDefender, Price: 10},
		{ID: "a1", TeamID: "t2", Name: "A One", Position: player.PositionAttacker, Price: 10},
		{ID: "a2", TeamID: "t3", Name: "A Two", Position: player.PositionAttacker, Price: 10},
		{ID: "a3", TeamID: "t4", Name: "A Three", Position: player.PositionAttacker, Price: 10},
		{ID: "a4", TeamID: "t5", Name: "A Four", Position: player.PositionAttacker, Price: 10},
	}
}

func fullRosterIDs() []string {
	return []string{"g1", "d1", "d2", "d3", "a1", "a2", "a3", "a4"}
}

func TestFantasyTeamService_SaveAndGet(t *testing.T) {
	repo := newStubFantasyRepo()
	playerRepo := &stubPlayerRepo{players: fantasyPool()}
	svc := NewFantasyTeamService(repo, playerRepo, fantasyteam.DefaultRules(), &seqIDGen{})

	saved, err := svc.Save(context.Background(), SaveInput{
		UserID:    "u1",
		Season:    "2024/2025",
		Name:      "Mans Sapņu Sastāvs",
		PlayerIDs: fullRosterIDs(),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(saved.Picks) != 8 {
		t.Fatalf("expected 8 picks, got %d", len(saved.Picks))
	}

	got, err := svc.Get(context.Background(), "u1", "2024/2025")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != saved.ID || got.Name != "Mans Sapņu Sastāvs" {
		t.Fatalf("unexpected team: %+v", got)
	}

	// Saving again keeps the same team id.
	again, err := svc.Save(context.Background(), SaveInput{
		UserID:    "u1",
		Season:    "2024/2025",
		Name:      "Pārsaukts",
		PlayerIDs: fullRosterIDs(),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if again.ID != saved.ID {
		t.Fatalf("resave must not mint a new id: %s vs %s", again.ID, saved.ID)
	}
}

func TestFantasyTeamService_SaveRejectsBudgetBreach(t *testing.T) {
	pool := fantasyPool()
	pool[0].Price = 60
	pool[1].Price = 60
	svc := NewFantasyTeamService(newStubFantasyRepo(), &stubPlayerRepo{players: pool}, fantasyteam.DefaultRules(), &seqIDGen{})

	_, err := svc.Save(context.Background(), SaveInput{
		UserID:    "u1",
		Season:    "2024/2025",
		Name:      "Par dārgu",
		PlayerIDs: fullRosterIDs(),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestFantasyTeamService_PartialSave(t *testing.T) {
	svc := NewFantasyTeamService(newStubFantasyRepo(), &stubPlayerRepo{players: fantasyPool()}, fantasyteam.DefaultRules(), &seqIDGen{})

	saved, err := svc.Save(context.Background(), SaveInput{
		UserID:    "u1",
		Season:    "2024/2025",
		Name:      "Tikai sākums",
		PlayerIDs: []string{"g1", "d1"},
		Partial:   true,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(saved.Picks) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(saved.Picks))
	}
}

func TestFantasyTeamService_SaveUnknownPlayer(t *testing.T) {
	svc := NewFantasyTeamService(newStubFantasyRepo(), &stubPlayerRepo{players: fantasyPool()}, fantasyteam.DefaultRules(), &seqIDGen{})

	_, err := svc.Save(context.Background(), SaveInput{
		UserID:    "u1",
		Season:    "2024/2025",
		Name:      "Nederīgs",
		PlayerIDs: []string{"missing"},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFantasyTeamService_GetMissing(t *testing.T) {
	svc := NewFantasyTeamService(newStubFantasyRepo(), &stubPlayerRepo{}, fantasyteam.DefaultRules(), &seqIDGen{})
	if _, err := svc.Get(context.Background(), "u9", "2024/2025"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
