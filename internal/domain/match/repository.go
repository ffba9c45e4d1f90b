package match

import "context"

// Repository describes match persistence needs from use cases. UpsertMany
// resolves conflicts on the external protocol id when present and on the
// (season, date, home, away) composite otherwise.
type Repository interface {
	UpsertMany(ctx context.Context, matches []Match) error
	GetByID(ctx context.Context, matchID string) (Match, error)
	GetByExternalID(ctx context.Context, externalID string) (Match, error)
	ListFinished(ctx context.Context, season string) ([]Match, error)
}

// EventRepository replaces a match's events wholesale inside one transaction.
type EventRepository interface {
	ReplaceForMatch(ctx context.Context, matchID string, events []Event) error
	ListByMatch(ctx context.Context, matchID string) ([]Event, error)
}
