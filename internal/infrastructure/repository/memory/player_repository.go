package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	index := make(map[string]player.Player, len(players))
	for _, p := range players {
		index[p.ID] = p
	}
	return &PlayerRepository{players: index}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedLocked(func(player.Player) bool { return true }), nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedLocked(func(p player.Player) bool { return p.TeamID == teamID }), nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.players[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *PlayerRepository) CreateMany(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range players {
		if _, ok := r.players[p.ID]; ok {
			continue
		}
		r.players[p.ID] = p
	}

	return nil
}

func (r *PlayerRepository) ReplaceAll(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players = make(map[string]player.Player, len(players))
	for _, p := range players {
		r.players[p.ID] = p
	}

	return nil
}

func (r *PlayerRepository) UpdatePrices(_ context.Context, updates []player.PriceUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, update := range updates {
		p, ok := r.players[update.PlayerID]
		if !ok {
			continue
		}
		p.PriceComputed = update.PriceComputed
		p.Price = update.Price
		r.players[update.PlayerID] = p
	}

	return nil
}

func (r *PlayerRepository) sortedLocked(keep func(player.Player) bool) []player.Player {
	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
