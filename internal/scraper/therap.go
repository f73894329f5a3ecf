package scraper

import (
	"context"

	"github.com/nhasan/jobwatch/internal/models"
	"github.com/nhasan/jobwatch/internal/network"
)

// Therap scrapes Therap BD's Trakstar Hire board.
type Therap struct {
	client *network.Client
	opts   Options
	board  trakstarBoard
}

func NewTherap(client *network.Client, opts Options) *Therap {
	return &Therap{
		client: client,
		opts:   opts,
		board: trakstarBoard{
			source:  SourceTherap,
			company: "Therap BD",
			base:    "https://therap.hire.trakstar.com",
			career:  "https://therap.hire.trakstar.com/",
			api:     "https://therap.hire.trakstar.com/api/v1/openings",
			tags:    []string{"Therap", "US Healthcare", "SaaS"},
		},
	}
}

func (t *Therap) Name() string {
	return SourceTherap
}

func (t *Therap) Scrape(ctx context.Context) ([]models.Listing, error) {
	return t.board.scrape(ctx, t.client, t.opts)
}
