package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/nhasan/jobwatch/internal/models"
	"github.com/nhasan/jobwatch/internal/network"
	"github.com/nhasan/jobwatch/internal/normalize"
)

const (
	samsungBase   = "https://www.samsung.com"
	samsungCareer = "https://www.samsung.com/bd/about-us/careers/"
	samsungBDJobs = "https://jobs.bdjobs.com/companyofferedjobs.asp?id=31249"
	bdjobsBase    = "https://jobs.bdjobs.com"
)

// Samsung scrapes Samsung R&D Institute Bangladesh from two seeds: the
// official career page and the company's BDJobs page. Results merge with a
// title dedupe since the same posting appears on both with different URLs.
type Samsung struct {
	client *network.Client
	opts   Options
}

func NewSamsung(client *network.Client, opts Options) *Samsung {
	return &Samsung{client: client, opts: opts}
}

func (s *Samsung) Name() string {
	return SourceSamsung
}

func (s *Samsung) Scrape(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing

	if doc, err := fetchDocument(ctx, s.client, samsungCareer); err != nil {
		s.opts.Logger.Warn().Err(err).Str("source", s.Name()).Msg("career page fetch failed")
	} else {
		listings = append(listings, cascade(doc, s.extractCareerCards, s.extractCareerLinks)...)
	}

	if doc, err := fetchDocument(ctx, s.client, samsungBDJobs); err != nil {
		s.opts.Logger.Warn().Err(err).Str("source", s.Name()).Msg("bdjobs page fetch failed")
	} else {
		listings = append(listings, s.extractBDJobsLinks(doc)...)
	}

	return dedupeByTitle(listings), nil
}

func (s *Samsung) extractCareerCards(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find(".job-listing, .career-item, .position-card, [class*='career'], [class*='job']").Each(func(_ int, card *goquery.Selection) {
		title := cardTitle(card, "h2, h3, h4, .title, a")
		if len(title) < 5 || !normalize.PlausibleTitle(title, nil) {
			return
		}
		link := cardLink(card, samsungBase)
		if !normalize.ValidJobURL(link) {
			return
		}

		listings = append(listings, models.Listing{
			Source:          s.Name(),
			Company:         "Samsung R&D",
			Title:           title,
			URL:             link,
			Location:        defaultLocation,
			ExperienceLevel: normalize.ExperienceLevel(title, ""),
			Tags:            []string{"Samsung", "MNC", "R&D"},
		})
	})

	return listings
}

func (s *Samsung) extractCareerLinks(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find("a[href*='job'], a[href*='career'], a[href*='position']").Each(func(_ int, anchor *goquery.Selection) {
		title := normalize.CleanText(anchor.Text())
		link := normalize.ResolveURL(samsungBase, anchor.AttrOr("href", ""))
		if len(title) < 5 || !normalize.PlausibleTitle(title, nil) || !normalize.ValidJobURL(link) {
			return
		}

		listings = append(listings, models.Listing{
			Source:          s.Name(),
			Company:         "Samsung R&D",
			Title:           title,
			URL:             link,
			Location:        defaultLocation,
			ExperienceLevel: normalize.ExperienceLevel(title, ""),
			Tags:            []string{"Samsung", "MNC", "R&D"},
		})
	})

	return listings
}

func (s *Samsung) extractBDJobsLinks(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find("a[href*='jobdetails'], a[href*='job']").Each(func(_ int, anchor *goquery.Selection) {
		title := normalize.CleanText(anchor.Text())
		link := normalize.ResolveURL(bdjobsBase, anchor.AttrOr("href", ""))
		if len(title) < 5 || !normalize.PlausibleTitle(title, nil) || !normalize.ValidJobURL(link) {
			return
		}

		listings = append(listings, models.Listing{
			Source:          s.Name(),
			Company:         "Samsung R&D",
			Title:           title,
			URL:             link,
			Location:        defaultLocation,
			ExperienceLevel: normalize.ExperienceLevel(title, ""),
			Tags:            []string{"Samsung", "MNC", "R&D", "BDJobs"},
		})
	})

	return listings
}
