package player

import "fmt"

// Position is the single-letter position code used across the league tables.
type Position string

const (
	PositionAttacker Position = "A"
	PositionDefender Position = "D"
	PositionGoalie   Position = "G"
	PositionUnknown  Position = "U"
)

var AllPositions = map[Position]struct{}{
	PositionAttacker: {},
	PositionDefender: {},
	PositionGoalie:   {},
	PositionUnknown:  {},
}

// Stats holds a player's season aggregates as scraped from the league site.
type Stats struct {
	Games          int
	Goals          int
	Assists        int
	Saves          int
	GoalsAgainst   int
	PenaltyMinutes int
}

// Player is a selectable athlete in the fantasy pool. TeamID is empty when
// the scraped team name could not be resolved. Stub players minted during
// event ingestion carry position Unknown until a later stats sync fixes them.
type Player struct {
	ID            string
	TeamID        string
	Name          string
	Position      Position
	Stats         Stats
	PriceComputed float64
	PriceManual   *float64
	Price         float64
	Stub          bool
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Price < 0 || p.PriceComputed < 0 {
		return fmt.Errorf("player price cannot be negative")
	}

	return nil
}

// FinalPrice prefers a manual override over the computed price.
func (p Player) FinalPrice() float64 {
	if p.PriceManual != nil {
		return *p.PriceManual
	}
	return p.Price
}
