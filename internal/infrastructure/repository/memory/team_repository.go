package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	index := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		index[t.ID] = t
	}
	return &TeamRepository{teams: index}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[teamID]
	if !ok {
		return team.Team{}, fmt.Errorf("team %s not found", teamID)
	}
	return t, nil
}

func (r *TeamRepository) CreateMany(_ context.Context, teams []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range teams {
		if _, ok := r.teams[t.ID]; ok {
			continue
		}
		r.teams[t.ID] = t
	}

	return nil
}
