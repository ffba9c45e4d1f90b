package floorball

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	sonic "github.com/bytedance/sonic"
)

const (
	calendarPagePath = "/kalendars"
	calendarAjaxPath = "/ajax/kalendars"
	CalendarPageSize = 50
)

var (
	protocolHrefRegex = regexp.MustCompile(`href=['"]?[^'">]*?/proto[a-z]*/(\d+)`)
	scoreRegex        = regexp.MustCompile(`(\d+)\s*:\s*(\d+)`)
	calendarDateRegex = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})`)
)

// CalendarRow is one parsed fixture row from the month calendar table.
type CalendarRow struct {
	Date       time.Time
	HomeName   string
	AwayName   string
	HomeScore  int
	AwayScore  int
	ProtocolID string
	Venue      string
	Finished   bool
}

// FetchCalendarMonths loads the calendar page and returns the month filter
// values the site offers for the season.
func (c *Client) FetchCalendarMonths(ctx context.Context) ([]string, error) {
	raw, err := c.get(ctx, calendarPagePath, nil)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: parse calendar page: %v", ErrUpstreamFormat, err)
	}

	months := make([]string, 0, 12)
	doc.Find("select[name=month] option, select#month option").Each(func(_ int, opt *goquery.Selection) {
		value := strings.TrimSpace(opt.AttrOr("value", ""))
		if value == "" {
			return
		}
		months = append(months, value)
	})
	if len(months) == 0 {
		return nil, fmt.Errorf("%w: no month filter values on calendar page", ErrUpstreamFormat)
	}
	return months, nil
}

// FetchCalendarPage fetches one page of a month's fixtures via the AJAX
// endpoint. It returns the raw rows plus the total the site reports for the
// month, which drives the paging loop.
func (c *Client) FetchCalendarPage(ctx context.Context, month string, offset int) ([][]string, int, error) {
	form := url.Values{}
	form.Set("month", month)
	form.Set("iDisplayStart", strconv.Itoa(offset))
	form.Set("iDisplayLength", strconv.Itoa(CalendarPageSize))

	raw, err := c.postForm(ctx, calendarAjaxPath, form)
	if err != nil {
		return nil, 0, err
	}

	rows, err := ExtractRawRows(raw)
	if err != nil {
		return nil, 0, err
	}
	return rows, reportedTotal(raw), nil
}

func reportedTotal(raw []byte) int {
	var envelope map[string]any
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return 0
	}
	for _, key := range []string{"iTotalDisplayRecords", "iTotalRecords", "total"} {
		switch v := envelope[key].(type) {
		case float64:
			return int(v)
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}

// ParseCalendarCells maps one raw AJAX calendar row to a fixture. Layout:
// date, time, home team cell, score cell, away team cell, venue. The score
// cell holds either plain text for an upcoming match or a protocol link
// like <a href='/proto/123'>3:1</a> once the match was played, so the cell
// markup must still be intact here.
func ParseCalendarCells(cells []string, season string) (CalendarRow, error) {
	if len(cells) < 5 {
		return CalendarRow{}, fmt.Errorf("calendar row has %d cells, want at least 5", len(cells))
	}

	date, err := parseCalendarDate(StripTags(cells[0]), StripTags(cells[1]), season)
	if err != nil {
		return CalendarRow{}, err
	}

	row := CalendarRow{
		Date:     date,
		HomeName: StripTags(cells[2]),
		AwayName: StripTags(cells[4]),
	}
	if len(cells) > 5 {
		row.Venue = StripTags(cells[5])
	}

	if m := protocolHrefRegex.FindStringSubmatch(cells[3]); m != nil {
		row.ProtocolID = m[1]
	}
	if m := scoreRegex.FindStringSubmatch(StripTags(cells[3])); m != nil {
		row.HomeScore, _ = strconv.Atoi(m[1])
		row.AwayScore, _ = strconv.Atoi(m[2])
		row.Finished = true
	}
	if row.ProtocolID != "" {
		row.Finished = true
	}

	if strings.TrimSpace(row.HomeName) == "" || strings.TrimSpace(row.AwayName) == "" {
		return CalendarRow{}, fmt.Errorf("calendar row is missing a team name")
	}
	return row, nil
}

// parseCalendarDate resolves a DD.MM cell against the season. Seasons span
// the new year, so months from August onward belong to the season's first
// year and the rest to the second.
func parseCalendarDate(dateCell, timeCell, season string) (time.Time, error) {
	m := calendarDateRegex.FindStringSubmatch(strings.TrimSpace(dateCell))
	if m == nil {
		return time.Time{}, fmt.Errorf("unparseable calendar date %q", dateCell)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("calendar date out of range %q", dateCell)
	}

	firstYear, secondYear := seasonYears(season)
	year := secondYear
	if month >= 8 {
		year = firstYear
	}

	hour, minute := 0, 0
	if parts := strings.SplitN(strings.TrimSpace(timeCell), ":", 2); len(parts) == 2 {
		hour, _ = strconv.Atoi(parts[0])
		minute, _ = strconv.Atoi(parts[1])
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), nil
}

// seasonYears splits "2024/2025" into its years; a bare "2024" counts as a
// season ending in the next calendar year.
func seasonYears(season string) (int, int) {
	parts := strings.SplitN(strings.TrimSpace(season), "/", 2)
	first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || first <= 0 {
		now := time.Now().Year()
		return now, now + 1
	}
	if len(parts) == 2 {
		if second, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil && second > 0 {
			return first, second
		}
	}
	return first, first + 1
}
