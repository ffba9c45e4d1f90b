package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
)

func TestFantasyPoints(t *testing.T) {
	w := Weights{Goals: 2, Assists: 1, PenaltyMinutes: -0.25}
	got := FantasyPoints(w, player.Stats{Goals: 10, Assists: 5, PenaltyMinutes: 4})
	assert.InDelta(t, 24.0, got, 1e-9)
}

func TestSkaterPrice_StaysInBand(t *testing.T) {
	params := DefaultParams()
	require.NoError(t, params.Validate())
	pp := params.ByPosition[player.PositionAttacker]

	for _, points := range []float64{-5, 0, 1, 10, 50, 200, 10000} {
		price := SkaterPrice(pp, points)
		assert.GreaterOrEqual(t, price, pp.Band.Min, "points=%v", points)
		assert.LessOrEqual(t, price, pp.Band.Max, "points=%v", points)
		assert.InDelta(t, 0, price*2-float64(int(price*2)), 1e-9, "price must be a half step: %v", price)
	}
}

func TestSkaterPrice_Monotonic(t *testing.T) {
	pp := DefaultParams().ByPosition[player.PositionDefender]

	prev := SkaterPrice(pp, 0)
	for points := 1.0; points <= 100; points++ {
		price := SkaterPrice(pp, points)
		assert.GreaterOrEqual(t, price, prev, "points=%v", points)
		prev = price
	}
}

func TestGoaliePrice(t *testing.T) {
	band := Band{Min: 4, Max: 18}

	assert.Equal(t, 4.0, GoaliePrice(band, 0))
	assert.Equal(t, 18.0, GoaliePrice(band, 1))
	assert.Equal(t, 11.0, GoaliePrice(band, 0.5))
	assert.Equal(t, 4.0, GoaliePrice(band, -0.3))
	assert.Equal(t, 18.0, GoaliePrice(band, 2))
}

func TestRoundHalf(t *testing.T) {
	assert.Equal(t, 7.5, RoundHalf(7.6))
	assert.Equal(t, 7.5, RoundHalf(7.74))
	assert.Equal(t, 8.0, RoundHalf(7.75))
	assert.Equal(t, 7.0, RoundHalf(7.2))
}

func TestParamsValidate(t *testing.T) {
	bad := Params{ByPosition: map[player.Position]PositionParams{
		player.PositionGoalie: {Band: Band{Min: 10, Max: 5}},
	}}
	assert.Error(t, bad.Validate())

	assert.Error(t, Params{}.Validate())
	assert.NoError(t, DefaultParams().Validate())
}
