package fantasyteam

import "context"

// Repository describes fantasy team persistence needs from use cases.
type Repository interface {
	GetByUserAndSeason(ctx context.Context, userID, season string) (Team, bool, error)
	Upsert(ctx context.Context, team Team) error
}
