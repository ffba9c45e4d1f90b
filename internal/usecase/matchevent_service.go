package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/external/floorball"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/match"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/id"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/logging"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/normalize"
)

// ProtocolFetcher is the slice of the scrape client the event job needs.
type ProtocolFetcher interface {
	FetchProtocol(ctx context.Context, protocolID string) ([]byte, error)
}

type MatchEventService struct {
	fetcher    ProtocolFetcher
	matchRepo  match.Repository
	eventRepo  match.EventRepository
	playerRepo player.Repository
	idGen      id.Generator
	logger     *logging.Logger
}

func NewMatchEventService(
	fetcher ProtocolFetcher,
	matchRepo match.Repository,
	eventRepo match.EventRepository,
	playerRepo player.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *MatchEventService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchEventService{
		fetcher:    fetcher,
		matchRepo:  matchRepo,
		eventRepo:  eventRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		logger:     logger,
	}
}

// IngestMatch replaces one finished match's events with the set parsed from
// its protocol page. Name resolution is two-phase: all names are resolved
// against a snapshot of known players first, the unresolved ones become
// stub players in a single batch, then events are built and swapped in.
// Returns ErrSkipped for matches without a protocol id or not yet finished.
func (s *MatchEventService) IngestMatch(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchEventService.IngestMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if m.Status != match.StatusFinished {
		return fmt.Errorf("%w: match %s is %s", ErrSkipped, matchID, m.Status)
	}
	if m.ExternalID == "" {
		return fmt.Errorf("%w: match %s has no protocol id", ErrSkipped, matchID)
	}

	payload, err := s.fetcher.FetchProtocol(ctx, m.ExternalID)
	if err != nil {
		return fmt.Errorf("fetch protocol %s: %w", m.ExternalID, err)
	}
	parsed, err := floorball.ParseProtocol(payload)
	if err != nil {
		return fmt.Errorf("parse protocol %s: %w", m.ExternalID, err)
	}

	known, err := s.playerRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	byKey := make(map[string]player.Player, len(known))
	for _, p := range known {
		byKey[normalize.FoldKey(p.Name)] = p
	}

	stubs, err := s.collectStubs(parsed, byKey, m)
	if err != nil {
		return err
	}
	if len(stubs) > 0 {
		if err := s.playerRepo.CreateMany(ctx, stubs); err != nil {
			return fmt.Errorf("create stub players: %w", err)
		}
		s.logger.InfoContext(ctx, "created stub players", "match_id", matchID, "count", len(stubs))
		for _, p := range stubs {
			byKey[normalize.FoldKey(p.Name)] = p
		}
	}

	events := make([]match.Event, 0, len(parsed))
	for _, ev := range parsed {
		teamID := m.AwayTeamID
		if ev.Home {
			teamID = m.HomeTeamID
		}
		p, ok := byKey[normalize.FoldKey(ev.PlayerName)]
		if !ok {
			// Cannot happen after the stub pass unless the name folds empty.
			s.logger.WarnContext(ctx, "event player unresolved", "match_id", matchID, "name", ev.PlayerName)
			continue
		}

		eventID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate event id: %w", err)
		}
		item := match.Event{
			ID:      eventID,
			MatchID: m.ID,
			Period:  ev.Period,
			Second:  ev.Second,
			TeamID:  teamID,
			Type:    ev.Type,
			Value:   ev.Value,
			Raw:     ev.Raw,
		}
		item.PlayerID = p.ID
		if ev.AssistName != "" {
			if assist, ok := byKey[normalize.FoldKey(ev.AssistName)]; ok && assist.ID != p.ID {
				item.AssistPlayerID = assist.ID
			}
		}
		if err := item.Validate(); err != nil {
			s.logger.WarnContext(ctx, "event row invalid", "match_id", matchID, "error", err)
			continue
		}
		events = append(events, item)
	}

	if err := s.eventRepo.ReplaceForMatch(ctx, m.ID, events); err != nil {
		return fmt.Errorf("replace match events: %w", err)
	}

	s.logger.InfoContext(ctx, "match events replaced",
		"match_id", matchID, "protocol_id", m.ExternalID, "events", len(events))
	return nil
}

func (s *MatchEventService) collectStubs(parsed []floorball.ParsedEvent, byKey map[string]player.Player, m match.Match) ([]player.Player, error) {
	pending := make(map[string]player.Player, 8)
	for _, ev := range parsed {
		names := []string{ev.PlayerName}
		if ev.AssistName != "" {
			names = append(names, ev.AssistName)
		}
		teamID := m.AwayTeamID
		if ev.Home {
			teamID = m.HomeTeamID
		}

		for _, name := range names {
			key := normalize.FoldKey(name)
			if key == "" {
				continue
			}
			if _, ok := byKey[key]; ok {
				continue
			}
			if _, ok := pending[key]; ok {
				continue
			}

			playerID, err := s.idGen.NewID()
			if err != nil {
				return nil, fmt.Errorf("generate stub player id: %w", err)
			}
			pending[key] = player.Player{
				ID:       playerID,
				TeamID:   teamID,
				Name:     name,
				Position: player.PositionUnknown,
				Stub:     true,
			}
		}
	}

	out := make([]player.Player, 0, len(pending))
	for _, p := range pending {
		out = append(out, p)
	}
	return out, nil
}

// BatchResult aggregates an --all-finished run. Per-match failures are
// isolated; the batch keeps going.
type BatchResult struct {
	Ingested int
	Failed   int
	Skipped  int
}

func (s *MatchEventService) IngestAllFinished(ctx context.Context, season string) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchEventService.IngestAllFinished")
	defer span.End()

	season = strings.TrimSpace(season)
	if season == "" {
		return BatchResult{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	matches, err := s.matchRepo.ListFinished(ctx, season)
	if err != nil {
		return BatchResult{}, fmt.Errorf("list finished matches: %w", err)
	}

	var result BatchResult
	for _, m := range matches {
		err := s.IngestMatch(ctx, m.ID)
		switch {
		case err == nil:
			result.Ingested++
		case isSkip(err):
			result.Skipped++
		case ctx.Err() != nil:
			return result, ctx.Err()
		default:
			result.Failed++
			s.logger.WarnContext(ctx, "match event ingestion failed", "match_id", m.ID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "match event batch finished",
		"season", season,
		"ingested", result.Ingested,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return result, nil
}

func isSkip(err error) bool {
	return errors.Is(err, ErrSkipped)
}
