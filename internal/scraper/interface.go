package scraper

import (
	"context"

	"github.com/nhasan/jobwatch/internal/models"
)

// Scraper discovers job listings on one external source. Implementations
// never panic across this boundary and never return listings without a real
// title and link; a source that cannot be read yields an empty slice.
type Scraper interface {
	Name() string
	Scrape(ctx context.Context) ([]models.Listing, error)
}
