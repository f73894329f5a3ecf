package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/nhasan/jobwatch/internal/models"
	"github.com/nhasan/jobwatch/internal/network"
	"github.com/nhasan/jobwatch/internal/normalize"
)

const (
	seliseBase    = "https://selise.ch"
	seliseCareer  = "https://selise.ch/career/"
	seliseOpenApp = "https://selisegroup.com/job/open-application-2/"
)

// Selise scrapes the SELISE Digital Platforms career page. The standing
// open-application posting is always appended, even when the page yields
// nothing.
type Selise struct {
	client *network.Client
	opts   Options
}

func NewSelise(client *network.Client, opts Options) *Selise {
	return &Selise{client: client, opts: opts}
}

func (s *Selise) Name() string {
	return SourceSelise
}

func (s *Selise) Scrape(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing

	doc, err := fetchDocument(ctx, s.client, seliseCareer)
	if err != nil {
		s.opts.Logger.Warn().Err(err).Str("source", s.Name()).Msg("career page fetch failed")
	} else {
		listings = dedupeByURL(cascade(doc, s.extractCards, s.extractJobLinks))
	}

	listings = append(listings, models.Listing{
		Source:          s.Name(),
		Company:         "SELISE",
		Title:           "Open Application - Submit Your Profile",
		URL:             seliseOpenApp,
		Description:     "Didn't see your exact role listed? Submit an open application.",
		Location:        defaultLocation,
		ExperienceLevel: "All Levels",
		Tags:            []string{"SELISE", "Swiss Company", "Open Application"},
	})

	return listings, nil
}

func (s *Selise) extractCards(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find(".job-listing, .career-listing, .position-item, .jobs-list li, article.job, .vacancy").Each(func(_ int, card *goquery.Selection) {
		title := cardTitle(card, "h2, h3, h4, .job-title, .title")
		link := cardLink(card, seliseBase)
		if title == "" || !normalize.ValidJobURL(link) {
			return
		}

		location := normalize.CleanText(card.Find(".location, .job-location").First().Text())
		if location == "" {
			location = defaultLocation
		}

		listings = append(listings, models.Listing{
			Source:          s.Name(),
			Company:         "SELISE",
			Title:           title,
			URL:             link,
			Location:        location,
			ExperienceLevel: normalize.ExperienceLevel(title, ""),
			Tags:            []string{"SELISE", "Swiss Company", "Enterprise"},
		})
	})

	return listings
}

func (s *Selise) extractJobLinks(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find("a[href*='job'], a[href*='career'], a[href*='position']").Each(func(_ int, anchor *goquery.Selection) {
		title := normalize.CleanText(anchor.Text())
		link := normalize.ResolveURL(seliseBase, anchor.AttrOr("href", ""))
		if len(title) < 5 || !normalize.PlausibleTitle(title, nil) || !normalize.ValidJobURL(link) {
			return
		}

		listings = append(listings, models.Listing{
			Source:          s.Name(),
			Company:         "SELISE",
			Title:           title,
			URL:             link,
			Location:        defaultLocation,
			ExperienceLevel: normalize.ExperienceLevel(title, ""),
			Tags:            []string{"SELISE", "Swiss Company", "Enterprise"},
		})
	})

	return listings
}
