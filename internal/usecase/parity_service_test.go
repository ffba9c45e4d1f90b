package usecase

import (
	"context"
	"testing"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/staging"
	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/logging"
)

type stubTotalsReader struct {
	totals []ComputedTotals
}

func (r *stubTotalsReader) SeasonTotals(_ context.Context, _ string) ([]ComputedTotals, error) {
	return r.totals, nil
}

func TestParityService_Check(t *testing.T) {
	stagingRepo := newStubStagingRepo()
	stagingRepo.rows["2024/2025"] = []staging.Row{
		{Season: "2024/2025", PlayerName: "Jānis Bērziņš", Goals: 10, Assists: 5, PenaltyMinutes: 4},
		{Season: "2024/2025", PlayerName: "Pēteris Ozols", Goals: 4, Assists: 9, PenaltyMinutes: 2},
		{Season: "2024/2025", PlayerName: "Nezināms Cilvēks", Goals: 1},
	}
	reader := &stubTotalsReader{totals: []ComputedTotals{
		{PlayerID: "p1", PlayerName: "Janis Berzins", Goals: 12, Assists: 5, PenaltyMinutes: 4},
		{PlayerID: "p2", PlayerName: "Peteris Ozols", Goals: 4, Assists: 9, PenaltyMinutes: 2},
	}}

	svc := NewParityService(stagingRepo, reader, DefaultParityThresholds(), logging.NewNop())
	report, err := svc.Check(context.Background(), "2024/2025")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if report.Compared != 2 || report.Unmatched != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Mismatches) != 1 {
		t.Fatalf("expected one mismatch, got %+v", report.Mismatches)
	}
	if report.Mismatches[0].DiffGoals != 2 {
		t.Fatalf("expected diff_goals=2, got %+v", report.Mismatches[0])
	}
}

func TestParityService_WithinThresholdIsClean(t *testing.T) {
	stagingRepo := newStubStagingRepo()
	stagingRepo.rows["2024/2025"] = []staging.Row{
		{Season: "2024/2025", PlayerName: "Jānis Bērziņš", Goals: 10, Assists: 5, PenaltyMinutes: 4},
	}
	reader := &stubTotalsReader{totals: []ComputedTotals{
		{PlayerID: "p1", PlayerName: "Janis Berzins", Goals: 11, Assists: 5, PenaltyMinutes: 6},
	}}

	svc := NewParityService(stagingRepo, reader, DefaultParityThresholds(), logging.NewNop())
	report, err := svc.Check(context.Background(), "2024/2025")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report.Mismatches) != 0 {
		t.Fatalf("off-by-one should stay under thresholds: %+v", report.Mismatches)
	}
}
