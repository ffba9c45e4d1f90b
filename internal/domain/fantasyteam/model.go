package fantasyteam

import (
	"fmt"
	"time"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/domain/player"
)

// Pick represents one selected player in a user's fantasy team.
type Pick struct {
	PlayerID string
	TeamID   string
	Position player.Position
	Price    float64
}

// Team contains one user's fantasy roster for a season.
type Team struct {
	ID        string
	UserID    string
	Season    string
	Name      string
	Picks     []Pick
	BudgetCap float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t Team) ValidateBasic() error {
	if t.ID == "" {
		return fmt.Errorf("fantasy team id is required")
	}
	if t.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if t.Season == "" {
		return fmt.Errorf("season is required")
	}
	if t.Name == "" {
		return fmt.Errorf("fantasy team name is required")
	}
	if t.BudgetCap <= 0 {
		return fmt.Errorf("budget cap must be greater than zero")
	}
	if len(t.Picks) == 0 {
		return fmt.Errorf("fantasy team picks are required")
	}

	return nil
}
