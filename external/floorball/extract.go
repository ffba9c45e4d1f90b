package floorball

import (
	"fmt"
	"html"
	"regexp"
	"sort"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/normalize"
)

// Field is the canonical meaning of one scraped table column.
type Field int

const (
	FieldUnknown Field = iota
	FieldName
	FieldTeam
	FieldPosition
	FieldGames
	FieldGoals
	FieldAssists
	FieldPoints
	FieldPenaltyMinutes
	FieldSaves
	FieldGoalsAgainst
	FieldSavePct
	FieldPrice
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldTeam:
		return "team"
	case FieldPosition:
		return "position"
	case FieldGames:
		return "games"
	case FieldGoals:
		return "goals"
	case FieldAssists:
		return "assists"
	case FieldPoints:
		return "points"
	case FieldPenaltyMinutes:
		return "penalty_minutes"
	case FieldSaves:
		return "saves"
	case FieldGoalsAgainst:
		return "goals_against"
	case FieldSavePct:
		return "save_pct"
	case FieldPrice:
		return "price"
	default:
		return "unknown"
	}
}

var dataArrayKeys = []string{"aaData", "data", "rows", "items"}

var tagRegex = regexp.MustCompile(`<[^>]*>`)

// StripTags removes HTML tags from a cell and unescapes entities. The AJAX
// tables wrap team and player names in spans and anchors.
func StripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagRegex.ReplaceAllString(s, " ")))
}

// ExtractRows pulls tabular rows out of an AJAX payload, stripping HTML
// inside cells. The site answers with a JSON array of arrays, an array of
// objects, or an envelope object holding the array under a well-known key.
// A payload that opens as HTML means the session cookie expired or the site
// is blocking us.
func ExtractRows(payload []byte) ([][]string, error) {
	return extractRows(payload, true)
}

// ExtractRawRows keeps cell markup intact for callers that need attributes
// from it, like the protocol link inside a calendar score cell.
func ExtractRawRows(payload []byte) ([][]string, error) {
	return extractRows(payload, false)
}

func extractRows(payload []byte, strip bool) ([][]string, error) {
	trimmed := strings.TrimSpace(string(payload))
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrUpstreamFormat)
	}
	if strings.HasPrefix(trimmed, "<") {
		return nil, fmt.Errorf("%w: got HTML where JSON was expected", ErrUpstreamFormat)
	}

	var decoded any
	if err := sonic.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode payload: %v", ErrUpstreamFormat, err)
	}

	rows, ok := extractRowsFromNode(decoded, strip)
	if !ok {
		return nil, fmt.Errorf("%w: no data array found", ErrUpstreamFormat)
	}
	return rows, nil
}

func extractRowsFromNode(node any, strip bool) ([][]string, bool) {
	switch typed := node.(type) {
	case []any:
		rows := make([][]string, 0, len(typed))
		for _, item := range typed {
			switch cells := item.(type) {
			case []any:
				rows = append(rows, stringifyCells(cells, strip))
			case map[string]any:
				rows = append(rows, stringifyObjectRow(cells, strip))
			}
		}
		return rows, true
	case map[string]any:
		for _, key := range dataArrayKeys {
			if child, ok := typed[key]; ok {
				if rows, found := extractRowsFromNode(child, strip); found {
					return rows, true
				}
			}
		}
		return nil, false
	default:
		return nil, false
	}
}

func stringifyCells(cells []any, strip bool) []string {
	out := make([]string, 0, len(cells))
	for _, cell := range cells {
		out = append(out, stringifyCell(cell, strip))
	}
	return out
}

// stringifyObjectRow flattens an object row into cells in sorted-key order
// so repeated runs see a stable layout.
func stringifyObjectRow(row map[string]any, strip bool) []string {
	keys := make([]string, 0, len(row))
	for key := range row {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, stringifyCell(row[key], strip))
	}
	return out
}

func stringifyCell(cell any, strip bool) string {
	switch typed := cell.(type) {
	case nil:
		return ""
	case string:
		if strip {
			return StripTags(typed)
		}
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return ""
	}
}

// headerAliases maps normalized column labels to fields. The site serves
// Latvian labels by default and English ones on the translated pages, with
// several abbreviation variants across seasons.
var headerAliases = map[string]Field{
	"vards":                  FieldName,
	"vards uzvards":          FieldName,
	"speletajs":              FieldName,
	"name":                   FieldName,
	"player":                 FieldName,
	"komanda":                FieldTeam,
	"klubs":                  FieldTeam,
	"team":                   FieldTeam,
	"club":                   FieldTeam,
	"poz":                    FieldPosition,
	"pozicija":               FieldPosition,
	"pos":                    FieldPosition,
	"position":               FieldPosition,
	"sp":                     FieldGames,
	"speles":                 FieldGames,
	"gp":                     FieldGames,
	"games":                  FieldGames,
	"v":                      FieldGoals,
	"varti":                  FieldGoals,
	"g":                      FieldGoals,
	"goals":                  FieldGoals,
	"p":                      FieldAssists,
	"piespeles":              FieldAssists,
	"rezultativas piespeles": FieldAssists,
	"a":                      FieldAssists,
	"assists":                FieldAssists,
	"pkt":                    FieldPoints,
	"punkti":                 FieldPoints,
	"pts":                    FieldPoints,
	"points":                 FieldPoints,
	"sm":                     FieldPenaltyMinutes,
	"sodu minutes":           FieldPenaltyMinutes,
	"pim":                    FieldPenaltyMinutes,
	"penalty minutes":        FieldPenaltyMinutes,
	"am":                     FieldSaves,
	"atvairitie metieni":     FieldSaves,
	"saves":                  FieldSaves,
	"iv":                     FieldGoalsAgainst,
	"ielaistie varti":        FieldGoalsAgainst,
	"ga":                     FieldGoalsAgainst,
	"goals against":          FieldGoalsAgainst,
	"atv%":                   FieldSavePct,
	"atvairito %":            FieldSavePct,
	"sv%":                    FieldSavePct,
	"save%":                  FieldSavePct,
	"save pct":               FieldSavePct,
	"cena":                   FieldPrice,
	"price":                  FieldPrice,
}

// headerKeywords is the ordered substring fallback for labels the alias
// table misses. Order matters: more specific fragments come first so
// "sodu minutes kopa" does not land on minutes-played style columns.
var headerKeywords = []struct {
	fragment string
	field    Field
}{
	{"uzvard", FieldName},
	{"speletaj", FieldName},
	{"player", FieldName},
	{"komand", FieldTeam},
	{"club", FieldTeam},
	{"team", FieldTeam},
	{"pozicij", FieldPosition},
	{"position", FieldPosition},
	{"poz", FieldPosition},
	{"sodu", FieldPenaltyMinutes},
	{"penalty", FieldPenaltyMinutes},
	{"atvairito %", FieldSavePct},
	{"save%", FieldSavePct},
	{"atvair", FieldSaves},
	{"save", FieldSaves},
	{"piespel", FieldAssists},
	{"assist", FieldAssists},
	// Conceded-goals labels contain the same root as scored goals
	// ("ielaistie varti" vs "varti"), so they must match first.
	{"ielaist", FieldGoalsAgainst},
	{"against", FieldGoalsAgainst},
	{"vart", FieldGoals},
	{"goal", FieldGoals},
	{"punkt", FieldPoints},
	{"point", FieldPoints},
	{"spele", FieldGames},
	{"game", FieldGames},
	{"cena", FieldPrice},
	{"price", FieldPrice},
}

// MatchHeader maps one free-text column label to its canonical field. It is
// a pure function: unknown labels map to FieldUnknown and never error, so
// callers treat unmapped columns as absent data.
func MatchHeader(label string) Field {
	key := strings.ToLower(normalize.Name(label))
	if key == "" {
		return FieldUnknown
	}

	if field, ok := headerAliases[key]; ok {
		return field
	}
	for _, kw := range headerKeywords {
		if strings.Contains(key, kw.fragment) {
			return kw.field
		}
	}
	return FieldUnknown
}

// HeaderWarnings tracks unknown labels already reported during one run so a
// repeated header only gets logged once. Runs hold their own instance.
type HeaderWarnings struct {
	seen map[string]struct{}
}

func NewHeaderWarnings() *HeaderWarnings {
	return &HeaderWarnings{seen: make(map[string]struct{})}
}

// FirstSeen records the label and reports whether this was its first
// occurrence in the run.
func (w *HeaderWarnings) FirstSeen(label string) bool {
	if w == nil {
		return false
	}
	key := strings.ToLower(normalize.Name(label))
	if _, ok := w.seen[key]; ok {
		return false
	}
	w.seen[key] = struct{}{}
	return true
}

func (w *HeaderWarnings) Labels() []string {
	if w == nil {
		return nil
	}
	out := make([]string, 0, len(w.seen))
	for label := range w.seen {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// MapHeaders resolves a header row to fields, recording unknown labels.
func MapHeaders(labels []string, warnings *HeaderWarnings) []Field {
	out := make([]Field, 0, len(labels))
	for _, label := range labels {
		field := MatchHeader(label)
		if field == FieldUnknown {
			warnings.FirstSeen(label)
		}
		out = append(out, field)
	}
	return out
}

func parseIntCell(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func parseFloatCell(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" || s == "-" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
