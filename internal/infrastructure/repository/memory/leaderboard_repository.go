package memory

import (
	"context"
	"sort"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/pricing"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/usecase"
)

// LeaderboardRepository scores the seeded player pool with the fantasy point
// weights. The database mode reads a view over ingested match events instead.
type LeaderboardRepository struct {
	players *PlayerRepository
	params  pricing.Params
}

func NewLeaderboardRepository(players *PlayerRepository, params pricing.Params) *LeaderboardRepository {
	return &LeaderboardRepository{players: players, params: params}
}

func (r *LeaderboardRepository) Leaderboard(ctx context.Context, _ string, limit, offset int) ([]usecase.LeaderboardEntry, error) {
	players, err := r.players.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]usecase.LeaderboardEntry, 0, len(players))
	for _, p := range players {
		pp, ok := r.params.ByPosition[p.Position]
		if !ok {
			continue
		}
		entries = append(entries, usecase.LeaderboardEntry{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			TeamID:     p.TeamID,
			Position:   string(p.Position),
			Price:      p.FinalPrice(),
			Points:     int(pricing.FantasyPoints(pp.Weights, p.Stats)),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].PlayerName < entries[j].PlayerName
	})

	if offset >= len(entries) {
		return []usecase.LeaderboardEntry{}, nil
	}
	entries = entries[offset:]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	return append([]usecase.LeaderboardEntry(nil), entries...), nil
}

var _ usecase.LeaderboardReader = (*LeaderboardRepository)(nil)
