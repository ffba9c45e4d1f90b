package floorball

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/match"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/normalize"
)

const periodSeconds = 20 * 60

var (
	timeRegex        = regexp.MustCompile(`(\d{1,3}):(\d{2})`)
	assistRegex      = regexp.MustCompile(`\(([^)]+)\)`)
	penaltyMinRegex  = regexp.MustCompile(`(\d+)\s*min`)
	doubleMinorRegex = regexp.MustCompile(`2\s*\+\s*2`)
)

// ParsedEvent is one goal or penalty parsed off a protocol page, still
// carrying names instead of ids. A 2+10 penalty expands into two entries.
type ParsedEvent struct {
	Home       bool
	Period     int
	Second     int
	Type       match.EventType
	Value      int
	PlayerName string
	AssistName string
	Raw        string
}

// FetchProtocol downloads the protocol page for one match.
func (c *Client) FetchProtocol(ctx context.Context, protocolID string) ([]byte, error) {
	if strings.TrimSpace(protocolID) == "" {
		return nil, fmt.Errorf("protocol id is required")
	}
	return c.get(ctx, "/proto/"+strings.TrimSpace(protocolID), nil)
}

// ParseProtocol walks the protocol page's event table. Each row carries a
// home/away marker class, an mm:ss time cell and a free-text details cell:
// a scorer with the assist in parentheses, or a penalized player with the
// penalty duration text.
func ParseProtocol(payload []byte) ([]ParsedEvent, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: parse protocol page: %v", ErrUpstreamFormat, err)
	}

	rows := doc.Find("table.protocol tr.event, tr.protocol-event")
	if rows.Length() == 0 {
		return nil, fmt.Errorf("%w: no event rows on protocol page", ErrUpstreamFormat)
	}

	events := make([]ParsedEvent, 0, rows.Length())
	var rowErr error
	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		parsed, ok, err := parseProtocolRow(row)
		if err != nil {
			rowErr = err
			return false
		}
		if ok {
			events = append(events, parsed...)
		}
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return events, nil
}

func parseProtocolRow(row *goquery.Selection) ([]ParsedEvent, bool, error) {
	class := row.AttrOr("class", "")
	home := strings.Contains(class, "home")
	if !home && !strings.Contains(class, "away") {
		// Header and separator rows carry neither marker.
		return nil, false, nil
	}

	timeText := strings.TrimSpace(row.Find("td.time").First().Text())
	details := strings.TrimSpace(row.Find("td.details").First().Text())
	if details == "" {
		details = strings.TrimSpace(row.Find("td").Last().Text())
	}
	if details == "" {
		return nil, false, nil
	}

	second, err := parseMatchTime(timeText)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrUpstreamFormat, err)
	}
	period := second/periodSeconds + 1

	raw := strings.Join(strings.Fields(row.Text()), " ")

	if parts, isPenalty := ClassifyPenalty(details); isPenalty {
		name := penalizedName(details)
		if name == "" {
			return nil, false, nil
		}
		out := make([]ParsedEvent, 0, len(parts))
		for _, part := range parts {
			out = append(out, ParsedEvent{
				Home:       home,
				Period:     period,
				Second:     second,
				Type:       part.Type,
				Value:      part.Minutes,
				PlayerName: name,
				Raw:        raw,
			})
		}
		return out, true, nil
	}

	scorer, assist := splitGoalDetails(details)
	if scorer == "" {
		return nil, false, nil
	}
	return []ParsedEvent{{
		Home:       home,
		Period:     period,
		Second:     second,
		Type:       match.EventGoal,
		Value:      1,
		PlayerName: scorer,
		AssistName: assist,
		Raw:        raw,
	}}, true, nil
}

func parseMatchTime(text string) (int, error) {
	m := timeRegex.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("unparseable match time %q", text)
	}
	minutes, _ := strconv.Atoi(m[1])
	seconds, _ := strconv.Atoi(m[2])
	if seconds >= 60 {
		return 0, fmt.Errorf("match time seconds out of range %q", text)
	}
	return minutes*60 + seconds, nil
}

// splitGoalDetails pulls the scorer and the optional parenthesized assist
// out of a goal row's details text.
func splitGoalDetails(details string) (string, string) {
	assist := ""
	if m := assistRegex.FindStringSubmatch(details); m != nil {
		assist = normalize.StripAnnotations(m[1])
	}
	scorer := normalize.StripAnnotations(assistRegex.ReplaceAllString(details, ""))
	return scorer, assist
}

// penalizedName strips the duration text and annotations off a penalty
// row's details, leaving the player name.
func penalizedName(details string) string {
	text := assistRegex.ReplaceAllString(details, "")
	text = penaltyMinRegex.ReplaceAllString(text, "")
	text = doubleMinorRegex.ReplaceAllString(text, "")
	return normalize.StripAnnotations(text)
}

// PenaltyPart is one event produced by classifying a penalty text; a 12
// minute penalty with a serving note expands into a minor plus misconduct.
type PenaltyPart struct {
	Type    match.EventType
	Minutes int
}

// ClassifyPenalty maps free-text penalty details to event categories. The
// site writes durations as "2 min", "2+2 min", "10 min" and marks game
// penalties with the phrase "spēles sods".
func ClassifyPenalty(details string) ([]PenaltyPart, bool) {
	text := strings.ToLower(normalize.Name(details))

	gamePenalty := strings.Contains(text, "speles sods")
	doubleMinor := doubleMinorRegex.MatchString(text)

	minutes := 0
	if m := penaltyMinRegex.FindStringSubmatch(text); m != nil {
		minutes, _ = strconv.Atoi(m[1])
	}
	if minutes == 0 && !gamePenalty && !doubleMinor {
		return nil, false
	}

	switch {
	case gamePenalty || minutes >= 20:
		return []PenaltyPart{{Type: match.EventRedCard, Minutes: 20}}, true
	case doubleMinor || minutes == 4:
		return []PenaltyPart{{Type: match.EventDoubleMinor, Minutes: 4}}, true
	case minutes == 12:
		return []PenaltyPart{
			{Type: match.EventMinor2, Minutes: 2},
			{Type: match.EventMisconduct10, Minutes: 10},
		}, true
	case minutes == 10:
		return []PenaltyPart{{Type: match.EventMisconduct10, Minutes: 10}}, true
	case minutes == 2:
		return []PenaltyPart{{Type: match.EventMinor2, Minutes: 2}}, true
	default:
		// Odd durations show up on old protocols; keep them as minors so
		// the minutes still count.
		return []PenaltyPart{{Type: match.EventMinor2, Minutes: minutes}}, true
	}
}
