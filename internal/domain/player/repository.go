package player

import "context"

// PriceUpdate carries one player's pricing result back to storage.
type PriceUpdate struct {
	PlayerID      string
	PriceComputed float64
	Price         float64
}

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	CreateMany(ctx context.Context, players []Player) error
	ReplaceAll(ctx context.Context, players []Player) error
	UpdatePrices(ctx context.Context, updates []PriceUpdate) error
}
