package team

import "fmt"

// Team is a club in the league. Code is a 3-letter short code derived from
// the name unless it was set manually.
type Team struct {
	ID   string
	Code string
	Name string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if len(t.Code) != 3 {
		return fmt.Errorf("team code must be 3 characters: %q", t.Code)
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
