package fantasyteam

import (
	"errors"
	"testing"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
)

func validRoster() []Pick {
	return []Pick{
		{PlayerID: "p1", TeamID: "t1", Position: player.PositionGoalie, Price: 12},
		{PlayerID: "p2", TeamID: "t1", Position: player.PositionDefender, Price: 12},
		{PlayerID: "p3", TeamID: "t2", Position: player.PositionDefender, Price: 12},
		{PlayerID: "p4", TeamID: "t3", Position: player.PositionDefender, Price: 12},
		{PlayerID: "p5", TeamID: "t2", Position: player.PositionAttacker, Price: 12},
		{PlayerID: "p6", TeamID: "t3", Position: player.PositionAttacker, Price: 12},
		{PlayerID: "p7", TeamID: "t4", Position: player.PositionAttacker, Price: 12},
		{PlayerID: "p8", TeamID: "t4", Position: player.PositionAttacker, Price: 12},
	}
}

func TestValidatePicks(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func([]Pick, *Rules)
		targetErr error
	}{
		{
			name:      "valid roster",
			mutate:    func(_ []Pick, _ *Rules) {},
			targetErr: nil,
		},
		{
			name: "invalid size",
			mutate: func(_ []Pick, cfg *Rules) {
				cfg.RosterSize = 7
			},
			targetErr: ErrInvalidRosterSize,
		},
		{
			name: "budget exceeded",
			mutate: func(picks []Pick, _ *Rules) {
				picks[0].Price = 50
				picks[1].Price = 50
			},
			targetErr: ErrExceededBudget,
		},
		{
			name: "club limit exceeded",
			mutate: func(picks []Pick, _ *Rules) {
				picks[4].TeamID = "t1"
				picks[5].TeamID = "t1"
			},
			targetErr: ErrExceededTeamLimit,
		},
		{
			name: "formation insufficient",
			mutate: func(picks []Pick, _ *Rules) {
				picks[0].Position = player.PositionAttacker
			},
			targetErr: ErrInsufficientFormation,
		},
		{
			name: "duplicate player",
			mutate: func(picks []Pick, _ *Rules) {
				picks[1].PlayerID = "p1"
			},
			targetErr: ErrDuplicatePlayer,
		},
		{
			name: "unknown position code",
			mutate: func(picks []Pick, _ *Rules) {
				picks[0].Position = player.Position("Z")
			},
			targetErr: ErrUnknownPosition,
		},
		{
			name: "stub player picked",
			mutate: func(picks []Pick, _ *Rules) {
				picks[7].Position = player.PositionUnknown
			},
			targetErr: ErrUnknownPositionPicked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			picks := validRoster()
			cfg := DefaultRules()
			tt.mutate(picks, &cfg)

			err := ValidatePicks(picks, cfg)
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected error %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestValidatePicksPartial(t *testing.T) {
	rules := DefaultRules()
	picks := validRoster()[:3]

	if err := ValidatePicksPartial(picks, rules); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := ValidatePicksPartial(nil, rules); !errors.Is(err, ErrInvalidRosterSize) {
		t.Fatalf("expected roster size error, got %v", err)
	}

	tooMany := append(validRoster(), Pick{PlayerID: "p9", TeamID: "t5", Position: player.PositionDefender, Price: 5})
	if err := ValidatePicksPartial(tooMany, rules); !errors.Is(err, ErrInvalidRosterSize) {
		t.Fatalf("expected roster size error, got %v", err)
	}
}
