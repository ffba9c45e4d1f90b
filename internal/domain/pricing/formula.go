package pricing

import (
	"math"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
)

// FantasyPoints computes a player's season fantasy-point total under the
// given weights.
func FantasyPoints(w Weights, s player.Stats) float64 {
	return w.Goals*float64(s.Goals) +
		w.Assists*float64(s.Assists) +
		w.Saves*float64(s.Saves) +
		w.GoalsAgainst*float64(s.GoalsAgainst) +
		w.PenaltyMinutes*float64(s.PenaltyMinutes)
}

// SkaterPrice maps a skater's fantasy-point total onto the position's price
// band: an offset square root compresses the top end, then a logistic curve
// saturates onto the band so outliers cannot escape it.
func SkaterPrice(pp PositionParams, points float64) float64 {
	shifted := points - pp.Curve.Offset
	if shifted < 0 {
		shifted = 0
	}
	raw := pp.Curve.Base + pp.Curve.Scale*math.Sqrt(shifted)

	span := pp.Band.Max - pp.Band.Min
	price := pp.Band.Min + span/(1+math.Exp(-pp.Curve.LogisticSteep*(raw-pp.Curve.LogisticMid)))

	return clampHalf(price, pp.Band)
}

// GoaliePrice maps a goalie's percentile rank within the group (0..1)
// linearly onto the band. Goalies are always priced by rank because save
// totals scale with minutes played, not skill, across small samples.
func GoaliePrice(band Band, percentile float64) float64 {
	if percentile < 0 {
		percentile = 0
	}
	if percentile > 1 {
		percentile = 1
	}

	return clampHalf(band.Min+percentile*(band.Max-band.Min), band)
}

// RoundHalf rounds to the nearest 0.5 price step.
func RoundHalf(x float64) float64 {
	return math.Round(x*2) / 2
}

func clampHalf(price float64, band Band) float64 {
	price = RoundHalf(price)
	if price < band.Min {
		return band.Min
	}
	if price > band.Max {
		return band.Max
	}
	return price
}
