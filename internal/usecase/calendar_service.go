package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/external/floorball"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/match"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/team"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/id"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/logging"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/normalize"
)

// CalendarFetcher is the slice of the scrape client the calendar job needs.
type CalendarFetcher interface {
	FetchCalendarMonths(ctx context.Context) ([]string, error)
	FetchCalendarPage(ctx context.Context, month string, offset int) ([][]string, int, error)
}

type CalendarService struct {
	fetcher   CalendarFetcher
	teamRepo  team.Repository
	matchRepo match.Repository
	idGen     id.Generator
	logger    *logging.Logger
	softSkip  bool
}

// NewCalendarService builds the calendar ingestion job. softSkip turns an
// all-months-failed run into a warning instead of an error, which keeps CI
// green when the league site blocks the runner.
func NewCalendarService(
	fetcher CalendarFetcher,
	teamRepo team.Repository,
	matchRepo match.Repository,
	idGen id.Generator,
	logger *logging.Logger,
	softSkip bool,
) *CalendarService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CalendarService{
		fetcher:   fetcher,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		idGen:     idGen,
		logger:    logger,
		softSkip:  softSkip,
	}
}

type CalendarResult struct {
	MonthsFetched int
	MonthsFailed  int
	Upserted      int
	SkippedRows   int
	SoftSkipped   bool
}

// IngestSeason fetches every month of the season calendar, resolves team
// names to stored teams and upserts the fixture rows. Per-month failures
// are isolated; only an all-months-failed run is fatal.
func (s *CalendarService) IngestSeason(ctx context.Context, season string) (CalendarResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CalendarService.IngestSeason")
	defer span.End()

	season = strings.TrimSpace(season)
	if season == "" {
		return CalendarResult{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return CalendarResult{}, fmt.Errorf("list teams: %w", err)
	}
	resolver := newTeamResolver(teams)

	var result CalendarResult
	months, err := s.fetcher.FetchCalendarMonths(ctx)
	if err != nil {
		return s.finishUnavailable(ctx, result, fmt.Errorf("fetch calendar months: %w", err))
	}

	seen := make(map[string]struct{}, 256)
	matches := make([]match.Match, 0, 256)

	for _, month := range months {
		rows, err := s.fetchMonth(ctx, month)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.MonthsFailed++
			s.logger.WarnContext(ctx, "calendar month fetch failed", "month", month, "error", err)
			continue
		}
		result.MonthsFetched++

		for _, cells := range rows {
			row, err := floorball.ParseCalendarCells(cells, season)
			if err != nil {
				result.SkippedRows++
				s.logger.WarnContext(ctx, "calendar row skipped", "month", month, "error", err)
				continue
			}

			key := dedupeKey(season, row)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			home, okHome := resolver.resolve(row.HomeName)
			away, okAway := resolver.resolve(row.AwayName)
			if !okHome || !okAway {
				result.SkippedRows++
				s.logger.WarnContext(ctx, "calendar row has unmapped team",
					"home", row.HomeName, "away", row.AwayName,
					"candidates", resolver.suggestions(row.HomeName, row.AwayName))
				continue
			}

			matchID, err := s.idGen.NewID()
			if err != nil {
				return result, fmt.Errorf("generate match id: %w", err)
			}
			status := match.StatusScheduled
			if row.Finished {
				status = match.StatusFinished
			}
			item := match.Match{
				ID:         matchID,
				ExternalID: row.ProtocolID,
				Season:     season,
				Date:       row.Date,
				HomeTeamID: home.ID,
				AwayTeamID: away.ID,
				HomeScore:  row.HomeScore,
				AwayScore:  row.AwayScore,
				Status:     status,
				Venue:      row.Venue,
			}
			if err := item.Validate(); err != nil {
				result.SkippedRows++
				s.logger.WarnContext(ctx, "calendar row invalid", "error", err)
				continue
			}
			matches = append(matches, item)
		}
	}

	if result.MonthsFetched == 0 {
		return s.finishUnavailable(ctx, result, fmt.Errorf("%w: all calendar months failed", ErrDependencyUnavailable))
	}

	if len(matches) > 0 {
		if err := s.matchRepo.UpsertMany(ctx, matches); err != nil {
			return result, fmt.Errorf("upsert matches: %w", err)
		}
	}
	result.Upserted = len(matches)

	s.logger.InfoContext(ctx, "calendar ingestion finished",
		"season", season,
		"months", result.MonthsFetched,
		"months_failed", result.MonthsFailed,
		"upserted", result.Upserted,
		"skipped_rows", result.SkippedRows,
	)
	return result, nil
}

func (s *CalendarService) fetchMonth(ctx context.Context, month string) ([][]string, error) {
	all := make([][]string, 0, floorball.CalendarPageSize)
	for offset := 0; ; offset += floorball.CalendarPageSize {
		rows, total, err := s.fetcher.FetchCalendarPage(ctx, month, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
		if len(rows) < floorball.CalendarPageSize {
			break
		}
		if total > 0 && len(all) >= total {
			break
		}
	}
	return all, nil
}

func (s *CalendarService) finishUnavailable(ctx context.Context, result CalendarResult, err error) (CalendarResult, error) {
	if s.softSkip {
		result.SoftSkipped = true
		s.logger.WarnContext(ctx, "calendar ingestion soft-skipped", "error", err)
		return result, nil
	}
	return result, err
}

func dedupeKey(season string, row floorball.CalendarRow) string {
	if row.ProtocolID != "" {
		return "proto:" + row.ProtocolID
	}
	return fmt.Sprintf("%s:%s:%s:%s",
		season,
		row.Date.Format("2006-01-02"),
		normalize.FoldKey(row.HomeName),
		normalize.FoldKey(row.AwayName),
	)
}

// teamResolver matches scraped team names to stored teams: exact on the
// fold key first, then substring containment either way. Containment ties
// go to the longest stored name so "Talsi" cannot shadow "FK Talsi Krauzers"
// when both contain the query.
type teamResolver struct {
	teams []team.Team
	byKey map[string]team.Team
}

func newTeamResolver(teams []team.Team) *teamResolver {
	byKey := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		byKey[normalize.FoldKey(t.Name)] = t
	}
	return &teamResolver{teams: teams, byKey: byKey}
}

func (r *teamResolver) resolve(name string) (team.Team, bool) {
	key := normalize.FoldKey(name)
	if key == "" {
		return team.Team{}, false
	}
	if t, ok := r.byKey[key]; ok {
		return t, true
	}

	var best team.Team
	found := false
	for _, t := range r.teams {
		stored := normalize.FoldKey(t.Name)
		if !strings.Contains(stored, key) && !strings.Contains(key, stored) {
			continue
		}
		if !found || len(t.Name) > len(best.Name) {
			best = t
			found = true
		}
	}
	return best, found
}

// suggestions lists stored teams sharing a word with any of the scraped
// names, to make unmapped-team log lines actionable.
func (r *teamResolver) suggestions(names ...string) []string {
	words := make(map[string]struct{}, 8)
	for _, name := range names {
		for _, word := range strings.Fields(normalize.FoldKey(name)) {
			words[word] = struct{}{}
		}
	}

	out := make([]string, 0, 4)
	for _, t := range r.teams {
		for _, word := range strings.Fields(normalize.FoldKey(t.Name)) {
			if _, ok := words[word]; ok {
				out = append(out, t.Name)
				break
			}
		}
	}
	return out
}
