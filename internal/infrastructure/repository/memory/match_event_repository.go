package memory

import (
	"context"
	"sync"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/match"
)

type MatchEventRepository struct {
	mu      sync.RWMutex
	byMatch map[string][]match.Event
}

func NewMatchEventRepository() *MatchEventRepository {
	return &MatchEventRepository{byMatch: make(map[string][]match.Event)}
}

func (r *MatchEventRepository) ReplaceForMatch(_ context.Context, matchID string, events []match.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byMatch[matchID] = append([]match.Event(nil), events...)

	return nil
}

func (r *MatchEventRepository) ListByMatch(_ context.Context, matchID string) ([]match.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]match.Event(nil), r.byMatch[matchID]...), nil
}
