package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	index := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		index[m.ID] = m
	}
	return &MatchRepository{matches: index}
}

func (r *MatchRepository) UpsertMany(_ context.Context, matches []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range matches {
		if existing, ok := r.findLocked(m); ok {
			m.ID = existing.ID
			if m.ExternalID == "" {
				m.ExternalID = existing.ExternalID
			}
		}
		r.matches[m.ID] = m
	}

	return nil
}

func (r *MatchRepository) findLocked(m match.Match) (match.Match, bool) {
	for _, existing := range r.matches {
		if m.ExternalID != "" && existing.ExternalID == m.ExternalID {
			return existing, true
		}
		if existing.Season == m.Season && existing.Date.Equal(m.Date) &&
			existing.HomeTeamID == m.HomeTeamID && existing.AwayTeamID == m.AwayTeamID {
			return existing, true
		}
	}
	return match.Match{}, false
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, fmt.Errorf("match %s not found", matchID)
	}
	return m, nil
}

func (r *MatchRepository) GetByExternalID(_ context.Context, externalID string) (match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.matches {
		if m.ExternalID == externalID {
			return m, nil
		}
	}
	return match.Match{}, fmt.Errorf("match external_id=%s not found", externalID)
}

func (r *MatchRepository) ListFinished(_ context.Context, season string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	for _, m := range r.matches {
		if m.Season == season && m.Status == match.StatusFinished {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}
