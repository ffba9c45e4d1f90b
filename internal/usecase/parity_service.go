package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/staging"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/logging"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/normalize"
)

const parityReportLimit = 25

// ComputedTotals is one player's season totals as derived by the database
// from ingested match events.
type ComputedTotals struct {
	PlayerID       string
	PlayerName     string
	Goals          int
	Assists        int
	PenaltyMinutes int
}

// SeasonTotalsReader reads the database-side aggregates view.
type SeasonTotalsReader interface {
	SeasonTotals(ctx context.Context, season string) ([]ComputedTotals, error)
}

// ParityThresholds are the per-metric tolerances before a difference counts
// as a mismatch. Off-by-one differences are routine scrape noise.
type ParityThresholds struct {
	Goals          int
	Assists        int
	PenaltyMinutes int
}

func DefaultParityThresholds() ParityThresholds {
	return ParityThresholds{Goals: 1, Assists: 1, PenaltyMinutes: 2}
}

type ParityService struct {
	stagingRepo  staging.Repository
	totalsReader SeasonTotalsReader
	thresholds   ParityThresholds
	logger       *logging.Logger
}

func NewParityService(stagingRepo staging.Repository, totalsReader SeasonTotalsReader, thresholds ParityThresholds, logger *logging.Logger) *ParityService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ParityService{
		stagingRepo:  stagingRepo,
		totalsReader: totalsReader,
		thresholds:   thresholds,
		logger:       logger,
	}
}

type ParityMismatch struct {
	PlayerName  string
	DiffGoals   int
	DiffAssists int
	DiffPIM     int
}

func (m ParityMismatch) weight() int {
	return absInt(m.DiffGoals) + absInt(m.DiffAssists) + absInt(m.DiffPIM)
}

type ParityReport struct {
	Compared   int
	Unmatched  int
	Mismatches []ParityMismatch
}

// Check compares staged scraped totals against the database's computed
// totals and logs the worst mismatches. It is a monitoring aid, not a gate;
// the CLI exits zero whatever the report says.
func (s *ParityService) Check(ctx context.Context, season string) (ParityReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParityService.Check")
	defer span.End()

	season = strings.TrimSpace(season)
	if season == "" {
		return ParityReport{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	staged, err := s.stagingRepo.ListBySeason(ctx, season)
	if err != nil {
		return ParityReport{}, fmt.Errorf("list staged rows: %w", err)
	}
	computed, err := s.totalsReader.SeasonTotals(ctx, season)
	if err != nil {
		return ParityReport{}, fmt.Errorf("read computed totals: %w", err)
	}

	computedByKey := make(map[string]ComputedTotals, len(computed))
	for _, row := range computed {
		computedByKey[normalize.FoldKey(row.PlayerName)] = row
	}

	var report ParityReport
	for _, row := range staged {
		if row.IsJunk() {
			continue
		}
		got, ok := computedByKey[normalize.FoldKey(row.PlayerName)]
		if !ok {
			report.Unmatched++
			continue
		}
		report.Compared++

		mismatch := ParityMismatch{
			PlayerName:  row.PlayerName,
			DiffGoals:   got.Goals - row.Goals,
			DiffAssists: got.Assists - row.Assists,
			DiffPIM:     got.PenaltyMinutes - row.PenaltyMinutes,
		}
		if absInt(mismatch.DiffGoals) > s.thresholds.Goals ||
			absInt(mismatch.DiffAssists) > s.thresholds.Assists ||
			absInt(mismatch.DiffPIM) > s.thresholds.PenaltyMinutes {
			report.Mismatches = append(report.Mismatches, mismatch)
		}
	}

	sort.SliceStable(report.Mismatches, func(i, j int) bool {
		if report.Mismatches[i].weight() != report.Mismatches[j].weight() {
			return report.Mismatches[i].weight() > report.Mismatches[j].weight()
		}
		return report.Mismatches[i].PlayerName < report.Mismatches[j].PlayerName
	})

	limit := len(report.Mismatches)
	if limit > parityReportLimit {
		limit = parityReportLimit
	}
	for _, m := range report.Mismatches[:limit] {
		s.logger.WarnContext(ctx, "season totals mismatch",
			"player", m.PlayerName,
			"diff_goals", m.DiffGoals,
			"diff_assists", m.DiffAssists,
			"diff_pim", m.DiffPIM,
		)
	}
	s.logger.InfoContext(ctx, "parity check finished",
		"season", season,
		"compared", report.Compared,
		"unmatched", report.Unmatched,
		"mismatches", len(report.Mismatches),
	)
	return report, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
