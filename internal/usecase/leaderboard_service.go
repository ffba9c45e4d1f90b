package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/cache"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/logging"
)

const leaderboardMaxLimit = 100

// LeaderboardEntry is one row of the season points leaderboard, read from
// the database's derived view.
type LeaderboardEntry struct {
	PlayerID   string
	PlayerName string
	TeamID     string
	Position   string
	Price      float64
	Points     int
}

// LeaderboardReader pages through the season points view.
type LeaderboardReader interface {
	Leaderboard(ctx context.Context, season string, limit, offset int) ([]LeaderboardEntry, error)
}

type LeaderboardService struct {
	reader LeaderboardReader
	store  *cache.Store
	logger *logging.Logger
}

func NewLeaderboardService(reader LeaderboardReader, store *cache.Store, logger *logging.Logger) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{reader: reader, store: store, logger: logger}
}

// Leaderboard returns one page of the season leaderboard. Pages are cached
// briefly; the view only moves when an ingestion job runs.
func (s *LeaderboardService) Leaderboard(ctx context.Context, season string, limit, offset int) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboard")
	defer span.End()

	season = strings.TrimSpace(season)
	if season == "" {
		return nil, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if limit <= 0 || limit > leaderboardMaxLimit {
		limit = leaderboardMaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	if s.store == nil {
		return s.reader.Leaderboard(ctx, season, limit, offset)
	}

	key := fmt.Sprintf("leaderboard:%s:%d:%d", season, limit, offset)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		entries, err := s.reader.Leaderboard(ctx, season, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("read leaderboard: %w", err)
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}

	entries, ok := value.([]LeaderboardEntry)
	if !ok {
		return nil, fmt.Errorf("unexpected cached leaderboard type %T", value)
	}
	return entries, nil
}
