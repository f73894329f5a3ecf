package scraper

import (
	"context"

	"github.com/nhasan/jobwatch/internal/models"
	"github.com/nhasan/jobwatch/internal/network"
)

// Kaz scrapes Kaz Software's Trakstar Hire board.
type Kaz struct {
	client *network.Client
	opts   Options
	board  trakstarBoard
}

func NewKaz(client *network.Client, opts Options) *Kaz {
	return &Kaz{
		client: client,
		opts:   opts,
		board: trakstarBoard{
			source:  SourceKaz,
			company: "Kaz Software",
			base:    "https://kazsoftware.hire.trakstar.com",
			career:  "https://kazsoftware.hire.trakstar.com/",
			api:     "https://kazsoftware.hire.trakstar.com/api/v1/openings",
			tags:    []string{"Kaz Software"},
		},
	}
}

func (k *Kaz) Name() string {
	return SourceKaz
}

func (k *Kaz) Scrape(ctx context.Context) ([]models.Listing, error) {
	return k.board.scrape(ctx, k.client, k.opts)
}
