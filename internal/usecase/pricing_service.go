package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/pricing"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/logging"
)

type PricingService struct {
	playerRepo player.Repository
	params     pricing.Params
	logger     *logging.Logger
}

func NewPricingService(playerRepo player.Repository, params pricing.Params, logger *logging.Logger) (*PricingService, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PricingService{playerRepo: playerRepo, params: params, logger: logger}, nil
}

// Reprice recomputes every player's price from season totals, one position
// group at a time. Skaters run through the curve formula; goalies are
// always percentile-ranked within their group. A manual price overrides
// the computed one in the final field. Empty groups are skipped and logged;
// players with positions outside the params (the Unknown stubs) keep their
// current price.
func (s *PricingService) Reprice(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PricingService.Reprice")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list players: %w", err)
	}

	groups := make(map[player.Position][]player.Player, len(s.params.ByPosition))
	for _, p := range players {
		if _, ok := s.params.ByPosition[p.Position]; !ok {
			continue
		}
		groups[p.Position] = append(groups[p.Position], p)
	}

	updates := make([]player.PriceUpdate, 0, len(players))
	for pos, pp := range s.params.ByPosition {
		group := groups[pos]
		if len(group) == 0 {
			s.logger.WarnContext(ctx, "pricing group empty, skipping", "position", string(pos))
			continue
		}

		if pos == player.PositionGoalie {
			updates = append(updates, s.priceGoalies(group, pp)...)
			continue
		}
		for _, p := range group {
			points := pricing.FantasyPoints(pp.Weights, p.Stats)
			updates = append(updates, buildUpdate(p, pricing.SkaterPrice(pp, points)))
		}
	}

	if len(updates) == 0 {
		return 0, nil
	}
	if err := s.playerRepo.UpdatePrices(ctx, updates); err != nil {
		return 0, fmt.Errorf("update prices: %w", err)
	}

	s.logger.InfoContext(ctx, "players repriced", "updated", len(updates))
	return len(updates), nil
}

// priceGoalies ranks the group by fantasy points and maps the percentile
// onto the goalie band. A lone goalie sits mid-band.
func (s *PricingService) priceGoalies(group []player.Player, pp pricing.PositionParams) []player.PriceUpdate {
	type ranked struct {
		p      player.Player
		points float64
	}
	items := make([]ranked, 0, len(group))
	for _, p := range group {
		items = append(items, ranked{p: p, points: pricing.FantasyPoints(pp.Weights, p.Stats)})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].points != items[j].points {
			return items[i].points < items[j].points
		}
		return items[i].p.ID < items[j].p.ID
	})

	out := make([]player.PriceUpdate, 0, len(items))
	for rank, item := range items {
		percentile := 0.5
		if len(items) > 1 {
			percentile = float64(rank) / float64(len(items)-1)
		}
		out = append(out, buildUpdate(item.p, pricing.GoaliePrice(pp.Band, percentile)))
	}
	return out
}

func buildUpdate(p player.Player, computed float64) player.PriceUpdate {
	final := computed
	if p.PriceManual != nil {
		final = *p.PriceManual
	}
	return player.PriceUpdate{
		PlayerID:      p.ID,
		PriceComputed: computed,
		Price:         final,
	}
}
