package runner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nhasan/jobwatch/internal/models"
	"github.com/nhasan/jobwatch/internal/scraper"
)

type fakeScraper struct {
	name     string
	listings []models.Listing
	err      error
	panics   bool
}

func (f *fakeScraper) Name() string { return f.name }

func (f *fakeScraper) Scrape(context.Context) ([]models.Listing, error) {
	if f.panics {
		panic("boom")
	}
	return f.listings, f.err
}

type memStore struct {
	mu     sync.Mutex
	nextID int64
	byURL  map[string]*models.Job
}

func newMemStore() *memStore {
	return &memStore{byURL: make(map[string]*models.Job)}
}

func (m *memStore) FindByURL(_ context.Context, url string) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.byURL[url]
	if !ok {
		return nil, nil
	}
	copied := *job
	return &copied, nil
}

func (m *memStore) Insert(_ context.Context, listing models.Listing) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	job := &models.Job{
		ID:       m.nextID,
		Source:   listing.Source,
		Company:  listing.Company,
		Title:    listing.Title,
		URL:      listing.URL,
		IsActive: true,
	}
	m.byURL[listing.URL] = job
	copied := *job
	return &copied, nil
}

func (m *memStore) Refresh(_ context.Context, id int64, listing models.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, job := range m.byURL {
		if job.ID == id {
			job.Title = listing.Title
			job.IsActive = true
			return nil
		}
	}
	return errors.New("not found")
}

func listing(source, title, url string) models.Listing {
	return models.Listing{Source: source, Company: source, Title: title, URL: url}
}

func TestRun_InsertsAndCounts(t *testing.T) {
	scrapers := map[string]scraper.Scraper{
		"alpha": &fakeScraper{name: "alpha", listings: []models.Listing{
			listing("alpha", "Engineer A", "https://alpha.example.com/job/1"),
			listing("alpha", "Engineer B", "https://alpha.example.com/job/2"),
		}},
		"beta": &fakeScraper{name: "beta", listings: []models.Listing{
			listing("beta", "Engineer C", "https://beta.example.com/job/1"),
		}},
	}
	store := newMemStore()

	result, err := Run(context.Background(), scrapers, store, zerolog.Nop(), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Stats.New != 3 || result.Stats.Existing != 0 || result.Stats.Errors != 0 {
		t.Fatalf("unexpected stats: %+v", result.Stats)
	}
	if len(result.NewJobs) != 3 {
		t.Fatalf("expected 3 new jobs, got %d", len(result.NewJobs))
	}
	if result.Stats.BySource["alpha"].New != 2 {
		t.Fatalf("unexpected per-source stats: %+v", result.Stats.BySource)
	}
}

func TestRun_SecondRunIsIdempotent(t *testing.T) {
	scrapers := map[string]scraper.Scraper{
		"alpha": &fakeScraper{name: "alpha", listings: []models.Listing{
			listing("alpha", "Engineer A", "https://alpha.example.com/job/1"),
		}},
	}
	store := newMemStore()

	if _, err := Run(context.Background(), scrapers, store, zerolog.Nop(), Options{}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	result, err := Run(context.Background(), scrapers, store, zerolog.Nop(), Options{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if result.Stats.New != 0 || result.Stats.Existing != 1 {
		t.Fatalf("second run should refresh, not insert: %+v", result.Stats)
	}
	if len(result.NewJobs) != 0 {
		t.Fatalf("second run should produce no new jobs")
	}
}

func TestRun_IsolatesFailingScrapers(t *testing.T) {
	scrapers := map[string]scraper.Scraper{
		"ok": &fakeScraper{name: "ok", listings: []models.Listing{
			listing("ok", "Engineer A", "https://ok.example.com/job/1"),
		}},
		"down":     &fakeScraper{name: "down", err: errors.New("connection refused")},
		"panicky":  &fakeScraper{name: "panicky", panics: true},
		"walled":   &fakeScraper{name: "walled", err: models.ErrSourceUnavailable},
		"silently": &fakeScraper{name: "silently"},
	}
	store := newMemStore()

	result, err := Run(context.Background(), scrapers, store, zerolog.Nop(), Options{Concurrency: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Stats.New != 1 {
		t.Fatalf("healthy source should still insert: %+v", result.Stats)
	}
	// "down" and "panicky" are failures; the walled source is unavailable,
	// which is an empty result, not an error.
	if result.Stats.Errors != 2 {
		t.Fatalf("expected 2 source errors, got %d", result.Stats.Errors)
	}
	if result.Stats.BySource["walled"].Errors != 0 {
		t.Fatalf("unavailable source must not count as an error: %+v", result.Stats.BySource["walled"])
	}
	if result.Stats.BySource["down"].Errors != 1 || result.Stats.BySource["panicky"].Errors != 1 {
		t.Fatalf("unexpected per-source errors: %+v", result.Stats.BySource)
	}
}

func TestRun_DropsInvalidListings(t *testing.T) {
	scrapers := map[string]scraper.Scraper{
		"alpha": &fakeScraper{name: "alpha", listings: []models.Listing{
			listing("alpha", "", "https://alpha.example.com/job/1"),
			listing("alpha", "Engineer A", ""),
			listing("alpha", "Engineer B", "https://alpha.example.com/job/2"),
		}},
	}
	store := newMemStore()

	result, err := Run(context.Background(), scrapers, store, zerolog.Nop(), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Stats.New != 1 {
		t.Fatalf("only the complete listing should be stored: %+v", result.Stats)
	}
}
