// Package runner orchestrates one discovery pass over the registered
// sources: scrape concurrently, reconcile sequentially.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nhasan/jobwatch/internal/models"
	"github.com/nhasan/jobwatch/internal/scraper"
)

const defaultConcurrency = 4

// Store is the persistence contract the runner reconciles against.
type Store interface {
	FindByURL(ctx context.Context, url string) (*models.Job, error)
	Insert(ctx context.Context, listing models.Listing) (*models.Job, error)
	Refresh(ctx context.Context, id int64, listing models.Listing) error
}

// Options tune a run.
type Options struct {
	// Concurrency bounds how many sources scrape at once.
	Concurrency int
}

// SourceStats is one source's contribution to a run.
type SourceStats struct {
	Scraped  int `json:"scraped"`
	New      int `json:"new"`
	Existing int `json:"existing"`
	Errors   int `json:"errors"`
}

// Stats aggregates a full run.
type Stats struct {
	New      int                    `json:"new"`
	Existing int                    `json:"existing"`
	Errors   int                    `json:"errors"`
	BySource map[string]SourceStats `json:"by_source"`
}

// Result carries the run outcome. NewJobs holds only the postings inserted
// during this run, in source order, ready for digest matching.
type Result struct {
	NewJobs []models.Job
	Stats   Stats
}

type scrapeOutcome struct {
	source   string
	listings []models.Listing
	err      error
}

// Run executes one pass: every scraper runs under a bounded worker pool,
// then results reconcile against the store one source at a time so insert
// order stays deterministic. A failing or panicking scraper costs only its
// own listings.
func Run(ctx context.Context, scrapers map[string]scraper.Scraper, store Store, logger zerolog.Logger, opts Options) (*Result, error) {
	if store == nil {
		return nil, errors.New("runner: nil store")
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	names := make([]string, 0, len(scrapers))
	for name := range scrapers {
		names = append(names, name)
	}
	sort.Strings(names)

	outcomes := make(map[string]scrapeOutcome, len(names))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for _, name := range names {
		wg.Add(1)
		go func(name string, s scraper.Scraper) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcome := scrapeOne(ctx, name, s, logger)
			mu.Lock()
			outcomes[name] = outcome
			mu.Unlock()
		}(name, scrapers[name])
	}
	wg.Wait()

	result := &Result{Stats: Stats{BySource: make(map[string]SourceStats, len(names))}}
	for _, name := range names {
		outcome := outcomes[name]
		stats := SourceStats{Scraped: len(outcome.listings)}

		// An unavailable source (captcha wall, bot detection) is an empty
		// result, not a failure.
		if errors.Is(outcome.err, models.ErrSourceUnavailable) {
			logger.Warn().Str("source", name).Msg("source unavailable, skipping")
		} else if outcome.err != nil {
			stats.Errors++
			logger.Error().Err(outcome.err).Str("source", name).Msg("scrape failed")
		}

		for _, listing := range outcome.listings {
			if !listing.Valid() {
				logger.Debug().Str("source", name).Str("title", listing.Title).Msg("dropping invalid listing")
				continue
			}
			job, created, err := reconcile(ctx, store, listing)
			if err != nil {
				stats.Errors++
				logger.Error().Err(err).Str("source", name).Str("url", listing.URL).Msg("reconcile failed")
				continue
			}
			if created {
				stats.New++
				result.NewJobs = append(result.NewJobs, *job)
			} else {
				stats.Existing++
			}
		}

		result.Stats.New += stats.New
		result.Stats.Existing += stats.Existing
		result.Stats.Errors += stats.Errors
		result.Stats.BySource[name] = stats

		logger.Info().
			Str("source", name).
			Int("scraped", stats.Scraped).
			Int("new", stats.New).
			Int("existing", stats.Existing).
			Int("errors", stats.Errors).
			Msg("source done")
	}

	return result, nil
}

// scrapeOne contains one adapter's failure modes, panics included.
func scrapeOne(ctx context.Context, name string, s scraper.Scraper, logger zerolog.Logger) (outcome scrapeOutcome) {
	outcome.source = name
	defer func() {
		if r := recover(); r != nil {
			outcome.listings = nil
			outcome.err = fmt.Errorf("scraper %s panicked: %v", name, r)
		}
	}()

	logger.Debug().Str("source", name).Msg("scraping")
	outcome.listings, outcome.err = s.Scrape(ctx)
	return outcome
}

// reconcile inserts a never-seen URL or refreshes the stored row. Refresh
// always reactivates: a posting visible on its source is active regardless
// of what an operator set earlier.
func reconcile(ctx context.Context, store Store, listing models.Listing) (*models.Job, bool, error) {
	existing, err := store.FindByURL(ctx, listing.URL)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		job, err := store.Insert(ctx, listing)
		if err != nil {
			return nil, false, err
		}
		return job, true, nil
	}
	if err := store.Refresh(ctx, existing.ID, listing); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}
