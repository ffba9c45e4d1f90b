package fantasyteam

import (
	"errors"
	"fmt"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
)

var (
	ErrInvalidRosterSize     = errors.New("invalid roster size")
	ErrExceededBudget        = errors.New("budget cap exceeded")
	ErrExceededTeamLimit     = errors.New("max players from same club exceeded")
	ErrInsufficientFormation = errors.New("minimum formation requirement not met")
	ErrUnknownPosition       = errors.New("unknown player position")
	ErrDuplicatePlayer       = errors.New("duplicate player in roster")
	ErrUnknownPositionPicked = errors.New("players without a known position cannot be picked")
)

// Rules stores fantasy roster validation parameters. Floorball fields five
// skaters and a goalie, so the default roster is smaller than a football one.
type Rules struct {
	RosterSize        int
	BudgetCap         float64
	MaxPlayersPerTeam int
	MinByPosition     map[player.Position]int
}

func DefaultRules() Rules {
	return Rules{
		RosterSize:        8,
		BudgetCap:         100,
		MaxPlayersPerTeam: 3,
		MinByPosition: map[player.Position]int{
			player.PositionGoalie:   1,
			player.PositionDefender: 2,
			player.PositionAttacker: 2,
		},
	}
}

func ValidatePicks(picks []Pick, rules Rules) error {
	if len(picks) != rules.RosterSize {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidRosterSize, rules.RosterSize, len(picks))
	}

	return validateCommon(picks, rules, true)
}

// ValidatePicksPartial validates a roster while the user is still building
// it. It does not require exact size or minimum formation yet.
func ValidatePicksPartial(picks []Pick, rules Rules) error {
	if len(picks) == 0 {
		return fmt.Errorf("%w: expected at least 1, got 0", ErrInvalidRosterSize)
	}
	if len(picks) > rules.RosterSize {
		return fmt.Errorf("%w: expected at most %d, got %d", ErrInvalidRosterSize, rules.RosterSize, len(picks))
	}

	return validateCommon(picks, rules, false)
}

func validateCommon(picks []Pick, rules Rules, requireFormation bool) error {
	teamCounter := make(map[string]int)
	positionCounter := make(map[player.Position]int)
	playerSet := make(map[string]struct{})
	var totalCost float64

	for _, pick := range picks {
		if pick.PlayerID == "" {
			return fmt.Errorf("player id is required")
		}
		if _, exists := playerSet[pick.PlayerID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, pick.PlayerID)
		}
		playerSet[pick.PlayerID] = struct{}{}

		if _, ok := player.AllPositions[pick.Position]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPosition, pick.Position)
		}
		if pick.Position == player.PositionUnknown {
			return fmt.Errorf("%w: %s", ErrUnknownPositionPicked, pick.PlayerID)
		}
		if pick.TeamID == "" {
			return fmt.Errorf("team id is required for player %s", pick.PlayerID)
		}
		if pick.Price <= 0 {
			return fmt.Errorf("player price must be greater than zero: %s", pick.PlayerID)
		}

		teamCounter[pick.TeamID]++
		if teamCounter[pick.TeamID] > rules.MaxPlayersPerTeam {
			return fmt.Errorf("%w: team=%s max=%d", ErrExceededTeamLimit, pick.TeamID, rules.MaxPlayersPerTeam)
		}

		positionCounter[pick.Position]++
		totalCost += pick.Price
	}

	if totalCost > rules.BudgetCap {
		return fmt.Errorf("%w: cap=%.1f used=%.1f", ErrExceededBudget, rules.BudgetCap, totalCost)
	}

	if requireFormation {
		for pos, minRequired := range rules.MinByPosition {
			if positionCounter[pos] < minRequired {
				return fmt.Errorf("%w: pos=%s min=%d current=%d", ErrInsufficientFormation, pos, minRequired, positionCounter[pos])
			}
		}
	}

	return nil
}
