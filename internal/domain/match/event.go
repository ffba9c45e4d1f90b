package match

import "fmt"

// EventType classifies one protocol row. Penalty types carry their duration
// as the event value in minutes; goals carry value 1.
type EventType string

const (
	EventGoal         EventType = "goal"
	EventMinor2       EventType = "minor_2"
	EventDoubleMinor  EventType = "double_minor"
	EventMisconduct10 EventType = "misconduct_10"
	EventRedCard      EventType = "red_card"
)

var AllEventTypes = map[EventType]struct{}{
	EventGoal:         {},
	EventMinor2:       {},
	EventDoubleMinor:  {},
	EventMisconduct10: {},
	EventRedCard:      {},
}

// Event is one goal or penalty row parsed from a protocol page. Raw keeps
// the source row text for auditing. Events are never patched in place; each
// ingestion run replaces the whole set for the match.
type Event struct {
	ID             string
	MatchID        string
	Period         int
	Second         int
	TeamID         string
	PlayerID       string
	AssistPlayerID string
	Type           EventType
	Value          int
	Raw            string
}

func (e Event) Validate() error {
	if e.MatchID == "" {
		return fmt.Errorf("event match reference is required")
	}
	if e.TeamID == "" {
		return fmt.Errorf("event team reference is required")
	}
	if e.PlayerID == "" {
		return fmt.Errorf("event player reference is required")
	}
	if e.AssistPlayerID != "" && e.AssistPlayerID == e.PlayerID {
		return fmt.Errorf("event assist cannot be the scorer")
	}
	if _, ok := AllEventTypes[e.Type]; !ok {
		return fmt.Errorf("invalid event type: %s", e.Type)
	}
	if e.Second < 0 || e.Period < 0 {
		return fmt.Errorf("event time cannot be negative")
	}

	return nil
}
