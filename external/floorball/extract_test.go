package floorball

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRows(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    [][]string
	}{
		{
			name:    "array of arrays",
			payload: `[["12.09","18:00","<span>Team A</span>","3:1"],["13.09","19:00","Team B","-"]]`,
			want: [][]string{
				{"12.09", "18:00", "Team A", "3:1"},
				{"13.09", "19:00", "Team B", "-"},
			},
		},
		{
			name:    "envelope with aaData",
			payload: `{"sEcho":1,"iTotalRecords":2,"aaData":[["a","b"],["c","d"]]}`,
			want:    [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:    "envelope with rows key",
			payload: `{"rows":[["x"]]}`,
			want:    [][]string{{"x"}},
		},
		{
			name:    "array of objects in sorted key order",
			payload: `[{"b":"2","a":"1"}]`,
			want:    [][]string{{"1", "2"}},
		},
		{
			name:    "numeric and null cells",
			payload: `[[7, 2.5, null, true]]`,
			want:    [][]string{{"7", "2.5", "", "true"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ExtractRows([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)
		})
	}
}

func TestExtractRows_FormatDrift(t *testing.T) {
	for _, payload := range []string{
		"",
		"  ",
		"<html><body>blocked</body></html>",
		"not json at all",
		`{"sEcho":1}`,
	} {
		_, err := ExtractRows([]byte(payload))
		if !errors.Is(err, ErrUpstreamFormat) {
			t.Fatalf("payload %q: expected format error, got %v", payload, err)
		}
	}
}

func TestExtractRawRows_KeepsMarkup(t *testing.T) {
	rows, err := ExtractRawRows([]byte(`[["<a href='/proto/123'>3:1</a>"]]`))
	require.NoError(t, err)
	assert.Equal(t, "<a href='/proto/123'>3:1</a>", rows[0][0])
}

func TestMatchHeader(t *testing.T) {
	tests := []struct {
		label string
		want  Field
	}{
		{"Vārds", FieldName},
		{"Spēlētājs", FieldName},
		{"Player name", FieldName},
		{"Komanda", FieldTeam},
		{"Club", FieldTeam},
		{"Poz.", FieldPosition},
		{"Sp", FieldGames},
		{"Spēles", FieldGames},
		{"GP", FieldGames},
		{"Vārti", FieldGoals},
		{"G", FieldGoals},
		{"Rezultatīvās piespēles", FieldAssists},
		{"A", FieldAssists},
		{"Punkti", FieldPoints},
		{"Pkt", FieldPoints},
		{"Sodu minūtes", FieldPenaltyMinutes},
		{"PIM", FieldPenaltyMinutes},
		{"Atvairītie metieni", FieldSaves},
		{"Ielaistie vārti", FieldGoalsAgainst},
		{"IV", FieldGoalsAgainst},
		{"Goals against", FieldGoalsAgainst},
		{"Atv%", FieldSavePct},
		{"SV%", FieldSavePct},
		{"Cena", FieldPrice},
		{"", FieldUnknown},
		{"Dzimšanas datums", FieldUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchHeader(tt.label), "label %q", tt.label)
	}
}

func TestHeaderWarnings_DedupesLabels(t *testing.T) {
	warnings := NewHeaderWarnings()

	assert.True(t, warnings.FirstSeen("Dzimšanas datums"))
	assert.False(t, warnings.FirstSeen("Dzimšanas datums"))
	assert.False(t, warnings.FirstSeen("dzimsanas  datums"), "normalized duplicates collapse")
	assert.True(t, warnings.FirstSeen("Cits"))
	assert.Equal(t, []string{"cits", "dzimsanas datums"}, warnings.Labels())
}

func TestMapHeaders_RecordsUnknowns(t *testing.T) {
	warnings := NewHeaderWarnings()
	fields := MapHeaders([]string{"Vārds", "Mystery", "Vārti"}, warnings)

	assert.Equal(t, []Field{FieldName, FieldUnknown, FieldGoals}, fields)
	assert.Equal(t, []string{"mystery"}, warnings.Labels())
}
