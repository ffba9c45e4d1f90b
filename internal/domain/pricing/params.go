package pricing

import (
	"fmt"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
)

// Weights are the per-position stat weights feeding a player's season
// fantasy-point total.
type Weights struct {
	Goals          float64
	Assists        float64
	Saves          float64
	GoalsAgainst   float64
	PenaltyMinutes float64
}

// Band is the allowed price range for a position group.
type Band struct {
	Min float64
	Max float64
}

// Curve holds the skater price-curve constants: an offset square root
// followed by a logistic saturation onto the position's band.
type Curve struct {
	Base          float64
	Scale         float64
	Offset        float64
	LogisticMid   float64
	LogisticSteep float64
}

// PositionParams bundle the formula inputs for one position group.
type PositionParams struct {
	Weights Weights
	Band    Band
	Curve   Curve
}

// Params parameterize the whole pricing run. Keeping the formula constants
// here rather than inline lets tests pin them down and lets a season admin
// retune them without code changes.
type Params struct {
	ByPosition map[player.Position]PositionParams
}

func DefaultParams() Params {
	return Params{
		ByPosition: map[player.Position]PositionParams{
			player.PositionAttacker: {
				Weights: Weights{Goals: 2, Assists: 1, PenaltyMinutes: -0.25},
				Band:    Band{Min: 5, Max: 20},
				Curve:   Curve{Base: 0, Scale: 1.6, Offset: 0, LogisticMid: 9, LogisticSteep: 0.35},
			},
			player.PositionDefender: {
				Weights: Weights{Goals: 2, Assists: 1.5, PenaltyMinutes: -0.25},
				Band:    Band{Min: 4, Max: 16},
				Curve:   Curve{Base: 0, Scale: 1.6, Offset: 0, LogisticMid: 8, LogisticSteep: 0.4},
			},
			player.PositionGoalie: {
				Weights: Weights{Saves: 0.2, GoalsAgainst: -1},
				Band:    Band{Min: 4, Max: 18},
			},
		},
	}
}

func (p Params) Validate() error {
	if len(p.ByPosition) == 0 {
		return fmt.Errorf("pricing params require at least one position group")
	}
	for pos, pp := range p.ByPosition {
		if _, ok := player.AllPositions[pos]; !ok {
			return fmt.Errorf("invalid position in pricing params: %s", pos)
		}
		if pp.Band.Min <= 0 || pp.Band.Max <= pp.Band.Min {
			return fmt.Errorf("invalid price band for position %s", pos)
		}
	}

	return nil
}
