package memory

import (
	"context"
	"sync"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/staging"
)

type StagingRepository struct {
	mu       sync.RWMutex
	bySeason map[string][]staging.Row
}

func NewStagingRepository() *StagingRepository {
	return &StagingRepository{bySeason: make(map[string][]staging.Row)}
}

func (r *StagingRepository) Replace(_ context.Context, season string, rows []staging.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySeason[season] = append([]staging.Row(nil), rows...)

	return nil
}

func (r *StagingRepository) ListBySeason(_ context.Context, season string) ([]staging.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]staging.Row(nil), r.bySeason[season]...), nil
}
