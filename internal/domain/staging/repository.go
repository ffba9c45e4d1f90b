package staging

import "context"

// Repository describes the staging table from use cases. Replace clears the
// season's rows and bulk-inserts the fresh scrape in one transaction.
type Repository interface {
	Replace(ctx context.Context, season string, rows []Row) error
	ListBySeason(ctx context.Context, season string) ([]Row, error)
}
