package floorball

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/staging"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/normalize"
)

// StatsRole selects which aggregate table to scrape. Skaters and goalies
// expose different columns, so each role maps independently.
type StatsRole string

const (
	RoleSkater StatsRole = "skater"
	RoleGoalie StatsRole = "goalie"

	statsPageSize = 100
)

func (r StatsRole) pagePath() string {
	if r == RoleGoalie {
		return "/statistika/vartsargi"
	}
	return "/statistika/speletaji"
}

func (r StatsRole) ajaxPath() string {
	if r == RoleGoalie {
		return "/ajax/statistika/vartsargi"
	}
	return "/ajax/statistika/speletaji"
}

// StatsTable is one scraped aggregate table: the header labels from the
// HTML page plus the AJAX rows.
type StatsTable struct {
	Role    StatsRole
	Headers []string
	Rows    [][]string
}

// FetchStatsTable loads the role's stats page for its header row, then
// pages through the AJAX endpoint for the data rows.
func (c *Client) FetchStatsTable(ctx context.Context, role StatsRole, season string) (StatsTable, error) {
	raw, err := c.get(ctx, role.pagePath(), nil)
	if err != nil {
		return StatsTable{}, err
	}

	headers, err := parseStatsHeaders(raw)
	if err != nil {
		return StatsTable{}, err
	}

	table := StatsTable{Role: role, Headers: headers}
	for offset := 0; ; offset += statsPageSize {
		form := url.Values{}
		form.Set("season", season)
		form.Set("iDisplayStart", strconv.Itoa(offset))
		form.Set("iDisplayLength", strconv.Itoa(statsPageSize))

		payload, err := c.postForm(ctx, role.ajaxPath(), form)
		if err != nil {
			return StatsTable{}, err
		}
		rows, err := ExtractRows(payload)
		if err != nil {
			return StatsTable{}, err
		}
		table.Rows = append(table.Rows, rows...)

		total := reportedTotal(payload)
		if len(rows) < statsPageSize || (total > 0 && len(table.Rows) >= total) {
			break
		}
	}
	return table, nil
}

func parseStatsHeaders(page []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("%w: parse stats page: %v", ErrUpstreamFormat, err)
	}

	headers := make([]string, 0, 12)
	doc.Find("table.stats thead th, table#stats thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: no header row on stats page", ErrUpstreamFormat)
	}
	return headers, nil
}

// MapStatsRows turns a scraped table into staging rows using the header
// mapping. Rows without a name cell are dropped; unknown columns are
// recorded once in the warnings and otherwise ignored.
func MapStatsRows(table StatsTable, season string, warnings *HeaderWarnings) []staging.Row {
	fields := MapHeaders(table.Headers, warnings)

	out := make([]staging.Row, 0, len(table.Rows))
	for _, cells := range table.Rows {
		row := staging.Row{Season: season}
		if table.Role == RoleGoalie {
			row.Position = "G"
		}

		for i, field := range fields {
			if i >= len(cells) {
				break
			}
			cell := cells[i]
			switch field {
			case FieldName:
				row.PlayerName = normalize.StripAnnotations(cell)
			case FieldTeam:
				row.TeamName = cell
			case FieldPosition:
				row.Position = cell
			case FieldGames:
				row.Games = parseIntCell(cell)
			case FieldGoals:
				row.Goals = parseIntCell(cell)
			case FieldAssists:
				row.Assists = parseIntCell(cell)
			case FieldPoints:
				row.Points = parseIntCell(cell)
			case FieldPenaltyMinutes:
				row.PenaltyMinutes = parseIntCell(cell)
			case FieldSaves:
				row.Saves = parseIntCell(cell)
			case FieldGoalsAgainst:
				row.GoalsAgainst = parseIntCell(cell)
			case FieldSavePct:
				row.SavePct = parseFloatCell(cell)
			}
		}

		if strings.TrimSpace(row.PlayerName) == "" {
			continue
		}
		out = append(out, row)
	}
	return out
}
