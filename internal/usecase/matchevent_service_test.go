package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/match"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/logging"
)

type stubProtocolFetcher struct {
	pages map[string][]byte
	err   error
}

func (f *stubProtocolFetcher) FetchProtocol(_ context.Context, protocolID string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	page, ok := f.pages[protocolID]
	if !ok {
		return nil, fmt.Errorf("no page for protocol %s", protocolID)
	}
	return page, nil
}

type stubPlayerRepo struct {
	players []player.Player
	updates []player.PriceUpdate
}

func (r *stubPlayerRepo) List(_ context.Context) ([]player.Player, error) {
	return append([]player.Player(nil), r.players...), nil
}

func (r *stubPlayerRepo) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPlayerRepo) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	wanted := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		wanted[id] = struct{}{}
	}
	out := make([]player.Player, 0, len(playerIDs))
	for _, p := range r.players {
		if _, ok := wanted[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPlayerRepo) CreateMany(_ context.Context, players []player.Player) error {
	r.players = append(r.players, players...)
	return nil
}

func (r *stubPlayerRepo) ReplaceAll(_ context.Context, players []player.Player) error {
	r.players = append([]player.Player(nil), players...)
	return nil
}

func (r *stubPlayerRepo) UpdatePrices(_ context.Context, updates []player.PriceUpdate) error {
	r.updates = append(r.updates, updates...)
	for i := range r.players {
		for _, u := range updates {
			if r.players[i].ID == u.PlayerID {
				r.players[i].PriceComputed = u.PriceComputed
				r.players[i].Price = u.Price
			}
		}
	}
	return nil
}

type stubEventRepo struct {
	byMatch map[string][]match.Event
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{byMatch: make(map[string][]match.Event)}
}

func (r *stubEventRepo) ReplaceForMatch(_ context.Context, matchID string, events []match.Event) error {
	r.byMatch[matchID] = append([]match.Event(nil), events...)
	return nil
}

func (r *stubEventRepo) ListByMatch(_ context.Context, matchID string) ([]match.Event, error) {
	return append([]match.Event(nil), r.byMatch[matchID]...), nil
}

const eventProtocolPage = `
<table class="protocol">
<tr class="event home"><td class="time">04:15</td><td class="details">Jānis Bērziņš (Pēteris Ozols)</td></tr>
<tr class="event away"><td class="time">27:40</td><td class="details">Svešs Spēlētājs 2 min</td></tr>
</table>`

func finishedMatch() match.Match {
	return match.Match{
		ID:         "m1",
		ExternalID: "123",
		Season:     "2024/2025",
		Date:       time.Date(2024, 9, 12, 18, 0, 0, 0, time.UTC),
		HomeTeamID: "t1",
		AwayTeamID: "t2",
		HomeScore:  3,
		AwayScore:  1,
		Status:     match.StatusFinished,
	}
}

func newEventService(matchRepo *stubMatchRepo, playerRepo *stubPlayerRepo, eventRepo *stubEventRepo) *MatchEventService {
	fetcher := &stubProtocolFetcher{pages: map[string][]byte{"123": []byte(eventProtocolPage)}}
	return NewMatchEventService(fetcher, matchRepo, eventRepo, playerRepo, &seqIDGen{}, logging.NewNop())
}

func TestMatchEventService_IngestMatch(t *testing.T) {
	matchRepo := newStubMatchRepo()
	matchRepo.matches["m1"] = finishedMatch()
	playerRepo := &stubPlayerRepo{players: []player.Player{
		{ID: "p1", TeamID: "t1", Name: "Janis Berzins", Position: player.PositionAttacker},
		{ID: "p2", TeamID: "t1", Name: "Peteris Ozols", Position: player.PositionDefender},
	}}
	eventRepo := newStubEventRepo()
	svc := newEventService(matchRepo, playerRepo, eventRepo)

	if err := svc.IngestMatch(context.Background(), "m1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	events := eventRepo.byMatch["m1"]
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	goal := events[0]
	if goal.Type != match.EventGoal || goal.TeamID != "t1" {
		t.Fatalf("unexpected goal event: %+v", goal)
	}
	if goal.PlayerID != "p1" || goal.AssistPlayerID != "p2" {
		t.Fatalf("diacritic-insensitive resolution failed: %+v", goal)
	}

	penalty := events[1]
	if penalty.Type != match.EventMinor2 || penalty.Value != 2 || penalty.TeamID != "t2" {
		t.Fatalf("unexpected penalty event: %+v", penalty)
	}

	// The unknown away player became a stub on the away team.
	var stub player.Player
	for _, p := range playerRepo.players {
		if p.Stub {
			stub = p
		}
	}
	if stub.ID == "" || stub.TeamID != "t2" || stub.Position != player.PositionUnknown {
		t.Fatalf("expected stub player on away team, got %+v", stub)
	}
	if penalty.PlayerID != stub.ID {
		t.Fatalf("penalty should reference the stub, got %+v", penalty)
	}
}

func TestMatchEventService_ReplacementIsTotal(t *testing.T) {
	matchRepo := newStubMatchRepo()
	matchRepo.matches["m1"] = finishedMatch()
	playerRepo := &stubPlayerRepo{players: []player.Player{
		{ID: "p1", TeamID: "t1", Name: "Janis Berzins", Position: player.PositionAttacker},
		{ID: "p2", TeamID: "t1", Name: "Peteris Ozols", Position: player.PositionDefender},
	}}
	eventRepo := newStubEventRepo()
	eventRepo.byMatch["m1"] = []match.Event{{ID: "stale", MatchID: "m1", TeamID: "t1", PlayerID: "p9", Type: match.EventGoal, Value: 1}}
	svc := newEventService(matchRepo, playerRepo, eventRepo)

	if err := svc.IngestMatch(context.Background(), "m1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, ev := range eventRepo.byMatch["m1"] {
		if ev.ID == "stale" {
			t.Fatalf("stale event survived replacement")
		}
	}
}

func TestMatchEventService_SecondRunCreatesNoMoreStubs(t *testing.T) {
	matchRepo := newStubMatchRepo()
	matchRepo.matches["m1"] = finishedMatch()
	playerRepo := &stubPlayerRepo{players: []player.Player{
		{ID: "p1", TeamID: "t1", Name: "Janis Berzins", Position: player.PositionAttacker},
		{ID: "p2", TeamID: "t1", Name: "Peteris Ozols", Position: player.PositionDefender},
	}}
	eventRepo := newStubEventRepo()
	svc := newEventService(matchRepo, playerRepo, eventRepo)

	for i := 0; i < 2; i++ {
		if err := svc.IngestMatch(context.Background(), "m1"); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	stubs := 0
	for _, p := range playerRepo.players {
		if p.Stub {
			stubs++
		}
	}
	if stubs != 1 {
		t.Fatalf("expected one stub after two runs, got %d", stubs)
	}
}

func TestMatchEventService_Skips(t *testing.T) {
	matchRepo := newStubMatchRepo()
	scheduled := finishedMatch()
	scheduled.ID = "m2"
	scheduled.Status = match.StatusScheduled
	matchRepo.matches["m2"] = scheduled

	noProto := finishedMatch()
	noProto.ID = "m3"
	noProto.ExternalID = ""
	matchRepo.matches["m3"] = noProto

	svc := newEventService(matchRepo, &stubPlayerRepo{}, newStubEventRepo())

	if err := svc.IngestMatch(context.Background(), "m2"); !errors.Is(err, ErrSkipped) {
		t.Fatalf("expected skip for scheduled match, got %v", err)
	}
	if err := svc.IngestMatch(context.Background(), "m3"); !errors.Is(err, ErrSkipped) {
		t.Fatalf("expected skip for missing protocol, got %v", err)
	}
}

func TestMatchEventService_IngestAllFinished(t *testing.T) {
	matchRepo := newStubMatchRepo()
	matchRepo.matches["m1"] = finishedMatch()

	broken := finishedMatch()
	broken.ID = "m4"
	broken.ExternalID = "999"
	matchRepo.matches["m4"] = broken

	noProto := finishedMatch()
	noProto.ID = "m3"
	noProto.ExternalID = ""
	matchRepo.matches["m3"] = noProto

	playerRepo := &stubPlayerRepo{players: []player.Player{
		{ID: "p1", TeamID: "t1", Name: "Janis Berzins", Position: player.PositionAttacker},
		{ID: "p2", TeamID: "t1", Name: "Peteris Ozols", Position: player.PositionDefender},
	}}
	svc := newEventService(matchRepo, playerRepo, newStubEventRepo())

	result, err := svc.IngestAllFinished(context.Background(), "2024/2025")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Ingested != 1 || result.Failed != 1 || result.Skipped != 1 {
		t.Fatalf("unexpected batch result: %+v", result)
	}
}
