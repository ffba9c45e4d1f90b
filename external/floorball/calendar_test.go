package floorball

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalendarCells_FinishedWithProtocol(t *testing.T) {
	cells := []string{
		"12.09", "18:00",
		"<span>Team A</span>",
		"<a href='/proto/123'>3:1</a>",
		"Team B",
		"Arena X",
	}

	row, err := ParseCalendarCells(cells, "2024/2025")
	require.NoError(t, err)

	assert.Equal(t, "Team A", row.HomeName)
	assert.Equal(t, "Team B", row.AwayName)
	assert.Equal(t, 3, row.HomeScore)
	assert.Equal(t, 1, row.AwayScore)
	assert.Equal(t, "123", row.ProtocolID)
	assert.Equal(t, "Arena X", row.Venue)
	assert.True(t, row.Finished)
	assert.Equal(t, time.Date(2024, 9, 12, 18, 0, 0, 0, time.UTC), row.Date)
}

func TestParseCalendarCells_ScheduledWithoutScore(t *testing.T) {
	cells := []string{"03.02", "19:30", "Team A", "-", "Team B"}

	row, err := ParseCalendarCells(cells, "2024/2025")
	require.NoError(t, err)

	assert.False(t, row.Finished)
	assert.Empty(t, row.ProtocolID)
	assert.Zero(t, row.HomeScore)
	// February belongs to the season's second calendar year.
	assert.Equal(t, 2025, row.Date.Year())
}

func TestParseCalendarCells_ProtocolLinkWithoutScoreIsFinished(t *testing.T) {
	cells := []string{"12.09", "18:00", "Team A", `<a href="/protokols/77">skatīt</a>`, "Team B"}

	row, err := ParseCalendarCells(cells, "2024/2025")
	require.NoError(t, err)

	assert.True(t, row.Finished)
	assert.Equal(t, "77", row.ProtocolID)
}

func TestParseCalendarCells_Invalid(t *testing.T) {
	_, err := ParseCalendarCells([]string{"12.09", "18:00", "Team A"}, "2024/2025")
	assert.Error(t, err)

	_, err = ParseCalendarCells([]string{"garbage", "18:00", "Team A", "-", "Team B"}, "2024/2025")
	assert.Error(t, err)

	_, err = ParseCalendarCells([]string{"12.09", "18:00", "", "-", "Team B"}, "2024/2025")
	assert.Error(t, err)
}

func TestSeasonYears(t *testing.T) {
	first, second := seasonYears("2024/2025")
	assert.Equal(t, 2024, first)
	assert.Equal(t, 2025, second)

	first, second = seasonYears("2023")
	assert.Equal(t, 2023, first)
	assert.Equal(t, 2024, second)
}

func TestReportedTotal(t *testing.T) {
	assert.Equal(t, 61, reportedTotal([]byte(`{"iTotalDisplayRecords":61,"aaData":[]}`)))
	assert.Equal(t, 12, reportedTotal([]byte(`{"total":"12","rows":[]}`)))
	assert.Zero(t, reportedTotal([]byte(`[["a"]]`)))
}
