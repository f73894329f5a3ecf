package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nhasan/jobwatch/internal/models"
	"github.com/nhasan/jobwatch/internal/network"
	"github.com/nhasan/jobwatch/internal/normalize"
)

const (
	bjitBase   = "https://bjitgroup.com"
	bjitCareer = "https://bjitgroup.com/career"
)

// bjitSkipTitles extends the shared nav deny list with labels seen on the
// BJIT site chrome.
var bjitSkipTitles = []string{
	"home", "about", "contact", "services", "projects",
	"blog", "news", "team", "submit", "send", "join us",
}

// BJIT scrapes the BJIT Group career page. The page frequently states that
// there are no openings; that short-circuits to an empty result rather than
// an extraction attempt.
type BJIT struct {
	client *network.Client
	opts   Options
}

func NewBJIT(client *network.Client, opts Options) *BJIT {
	return &BJIT{client: client, opts: opts}
}

func (b *BJIT) Name() string {
	return SourceBJIT
}

func (b *BJIT) Scrape(ctx context.Context) ([]models.Listing, error) {
	doc, err := fetchDocument(ctx, b.client, bjitCareer)
	if err != nil {
		b.opts.Logger.Warn().Err(err).Str("source", b.Name()).Msg("career page fetch failed")
		return nil, nil
	}

	if saysNoVacancies(doc) {
		b.opts.Logger.Info().Str("source", b.Name()).Msg("no vacancies advertised")
		return nil, nil
	}

	return dedupeByURL(cascade(doc, b.extractCards, b.extractJobLinks)), nil
}

func (b *BJIT) extractCards(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find(".job-card, .career-card, .position-card, .jobs-list li, .vacancy-item, article.job").Each(func(_ int, card *goquery.Selection) {
		title := cardTitle(card, "h2, h3, h4, .job-title, .title")
		if len(title) < 5 || b.skipTitle(title) {
			return
		}
		link := cardLink(card, bjitBase)
		if !normalize.ValidJobURL(link) {
			return
		}

		location := normalize.CleanText(card.Find(".location").First().Text())
		if location == "" {
			location = defaultLocation
		}
		description := normalize.CleanText(card.Find(".description, .summary, p").First().Text())

		listings = append(listings, models.Listing{
			Source:          b.Name(),
			Company:         "BJIT",
			Title:           title,
			URL:             link,
			Description:     description,
			Location:        location,
			ExperienceLevel: normalize.ExperienceLevel(title, description),
			Tags:            []string{"BJIT", "Japanese Clients", "Global"},
		})
	})

	return listings
}

// extractJobLinks sweeps every anchor with strict validation: deny-listed
// and short labels are dropped, and the target must look like a job detail
// page.
func (b *BJIT) extractJobLinks(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		title := normalize.CleanText(anchor.Text())
		if len(title) < 10 || b.skipTitle(title) {
			return
		}

		link := normalize.ResolveURL(bjitBase, anchor.AttrOr("href", ""))
		if !normalize.ValidJobURL(link) || !normalize.JobDetailPath(link) {
			return
		}

		listings = append(listings, models.Listing{
			Source:          b.Name(),
			Company:         "BJIT",
			Title:           title,
			URL:             link,
			Location:        defaultLocation,
			ExperienceLevel: normalize.ExperienceLevel(title, ""),
			Tags:            []string{"BJIT", "Japanese Clients", "Global"},
		})
	})

	return listings
}

func (b *BJIT) skipTitle(title string) bool {
	lower := strings.ToLower(strings.TrimSpace(title))
	for _, skip := range bjitSkipTitles {
		if lower == skip {
			return true
		}
	}
	return !normalize.PlausibleTitle(title, nil)
}
