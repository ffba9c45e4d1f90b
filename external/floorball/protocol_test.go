package floorball

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/match"
)

func TestClassifyPenalty(t *testing.T) {
	tests := []struct {
		details string
		want    []PenaltyPart
	}{
		{
			details: "Jānis Bērziņš 2 min (Aizkavēšana)",
			want:    []PenaltyPart{{Type: match.EventMinor2, Minutes: 2}},
		},
		{
			details: "Pēteris Ozols 4 min",
			want:    []PenaltyPart{{Type: match.EventDoubleMinor, Minutes: 4}},
		},
		{
			details: "Pēteris Ozols 2+2 min",
			want:    []PenaltyPart{{Type: match.EventDoubleMinor, Minutes: 4}},
		},
		{
			details: "Kārlis Liepa 10 min",
			want:    []PenaltyPart{{Type: match.EventMisconduct10, Minutes: 10}},
		},
		{
			details: "Kārlis Liepa 12 min (izcieš cits spēlētājs)",
			want: []PenaltyPart{
				{Type: match.EventMinor2, Minutes: 2},
				{Type: match.EventMisconduct10, Minutes: 10},
			},
		},
		{
			details: "Andris Kalniņš 20 min",
			want:    []PenaltyPart{{Type: match.EventRedCard, Minutes: 20}},
		},
		{
			details: "Andris Kalniņš spēles sods",
			want:    []PenaltyPart{{Type: match.EventRedCard, Minutes: 20}},
		},
	}

	for _, tt := range tests {
		parts, ok := ClassifyPenalty(tt.details)
		require.True(t, ok, "details %q", tt.details)
		assert.Equal(t, tt.want, parts, "details %q", tt.details)
	}
}

func TestClassifyPenalty_GoalTextIsNotAPenalty(t *testing.T) {
	_, ok := ClassifyPenalty("Jānis Bērziņš (Pēteris Ozols)")
	assert.False(t, ok)
}

const protocolPage = `
<html><body>
<table class="protocol">
<tr><th>Laiks</th><th>Notikums</th></tr>
<tr class="event home"><td class="time">04:15</td><td class="details">Jānis Bērziņš (Pēteris Ozols)</td></tr>
<tr class="event away"><td class="time">27:40</td><td class="details">#9 Kārlis Liepa 2 min (Aizkavēšana)</td></tr>
<tr class="event home"><td class="time">43:02</td><td class="details">Māris Eglītis</td></tr>
<tr class="event away"><td class="time">51:10</td><td class="details">Andris Kalniņš 12 min</td></tr>
</table>
</body></html>`

func TestParseProtocol(t *testing.T) {
	events, err := ParseProtocol([]byte(protocolPage))
	require.NoError(t, err)
	require.Len(t, events, 5)

	goal := events[0]
	assert.True(t, goal.Home)
	assert.Equal(t, match.EventGoal, goal.Type)
	assert.Equal(t, 1, goal.Value)
	assert.Equal(t, 1, goal.Period)
	assert.Equal(t, 4*60+15, goal.Second)
	assert.Equal(t, "Jānis Bērziņš", goal.PlayerName)
	assert.Equal(t, "Pēteris Ozols", goal.AssistName)
	assert.NotEmpty(t, goal.Raw)

	minor := events[1]
	assert.False(t, minor.Home)
	assert.Equal(t, match.EventMinor2, minor.Type)
	assert.Equal(t, 2, minor.Value)
	assert.Equal(t, 2, minor.Period)
	assert.Equal(t, "Kārlis Liepa", minor.PlayerName, "jersey number stripped")

	unassisted := events[2]
	assert.Equal(t, match.EventGoal, unassisted.Type)
	assert.Equal(t, 3, unassisted.Period)
	assert.Empty(t, unassisted.AssistName)

	// The 12 minute penalty expands into a minor plus a misconduct at the
	// same second.
	assert.Equal(t, match.EventMinor2, events[3].Type)
	assert.Equal(t, match.EventMisconduct10, events[4].Type)
	assert.Equal(t, events[3].Second, events[4].Second)
	assert.Equal(t, "Andris Kalniņš", events[3].PlayerName)
}

func TestParseProtocol_NoEventRows(t *testing.T) {
	_, err := ParseProtocol([]byte("<html><body><p>nav datu</p></body></html>"))
	if !errors.Is(err, ErrUpstreamFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestParseMatchTime(t *testing.T) {
	sec, err := parseMatchTime("59:59")
	require.NoError(t, err)
	assert.Equal(t, 59*60+59, sec)

	_, err = parseMatchTime("nav")
	assert.Error(t, err)

	_, err = parseMatchTime("12:75")
	assert.Error(t, err)
}
