package memory

import (
	"context"
	"sync"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/fantasyteam"
)

type FantasyTeamRepository struct {
	mu    sync.RWMutex
	teams map[string]fantasyteam.Team
}

func NewFantasyTeamRepository() *FantasyTeamRepository {
	return &FantasyTeamRepository{teams: make(map[string]fantasyteam.Team)}
}

func fantasyKey(userID, season string) string {
	return userID + ":" + season
}

func (r *FantasyTeamRepository) GetByUserAndSeason(_ context.Context, userID, season string) (fantasyteam.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.teams[fantasyKey(userID, season)]
	return team, ok, nil
}

func (r *FantasyTeamRepository) Upsert(_ context.Context, team fantasyteam.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	team.Picks = append([]fantasyteam.Pick(nil), team.Picks...)
	r.teams[fantasyKey(team.UserID, team.Season)] = team

	return nil
}
