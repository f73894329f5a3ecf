package scraper

import (
	"context"
	"errors"

	"github.com/PuerkitoBio/goquery"
	"github.com/nhasan/jobwatch/internal/models"
	"github.com/nhasan/jobwatch/internal/network"
	"github.com/nhasan/jobwatch/internal/normalize"
)

// trakstarOpening is one posting of a Trakstar Hire board's
// /api/v1/openings feed.
type trakstarOpening struct {
	Title          string `json:"title"`
	URL            string `json:"url"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	EmploymentType string `json:"employment_type"`
}

type trakstarFeed struct {
	Openings []trakstarOpening `json:"openings"`
}

// trakstarBoard holds the board identity shared by the Trakstar-backed
// sources; Kaz and Therap differ only in these fields.
type trakstarBoard struct {
	source  string
	company string
	base    string
	career  string
	api     string
	tags    []string
}

// apiListings fetches the openings feed and maps it to listings.
func (b trakstarBoard) apiListings(ctx context.Context, client *network.Client) ([]models.Listing, error) {
	var feed trakstarFeed
	if err := fetchJSON(ctx, client, b.api, &feed); err != nil {
		return nil, err
	}
	if len(feed.Openings) == 0 {
		return nil, errors.New("empty openings feed")
	}

	var listings []models.Listing
	for _, opening := range feed.Openings {
		link := normalize.ResolveURL(b.base, opening.URL)
		if link == "" {
			link = b.career
		}
		if opening.Title == "" || !normalize.ValidJobURL(link) {
			continue
		}

		location := normalize.CleanText(opening.Location)
		if location == "" {
			location = defaultLocation
		}
		jobType := opening.EmploymentType
		if jobType == "" {
			jobType = "Full-time"
		}

		description := truncateText(normalize.CleanText(opening.Description), 2000)
		listings = append(listings, models.Listing{
			Source:          b.source,
			Company:         b.company,
			Title:           normalize.CleanText(opening.Title),
			URL:             link,
			Description:     description,
			Location:        location,
			JobType:         jobType,
			ExperienceLevel: normalize.ExperienceLevel(opening.Title, description),
			Tags:            append([]string(nil), b.tags...),
		})
	}
	return dedupeByURL(listings), nil
}

// cardListings parses a rendered board's opening cards.
func (b trakstarBoard) cardListings(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find(".opening, .job-opening, .position-listing, [data-opening], .jobs-list li").Each(func(_ int, card *goquery.Selection) {
		title := cardTitle(card, ".title, h2, h3, a")
		link := cardLink(card, b.base)
		if title == "" || !normalize.ValidJobURL(link) {
			return
		}

		location := normalize.CleanText(card.Find(".location").First().Text())
		if location == "" {
			location = defaultLocation
		}

		listings = append(listings, models.Listing{
			Source:          b.source,
			Company:         b.company,
			Title:           title,
			URL:             link,
			Location:        location,
			JobType:         "Full-time",
			ExperienceLevel: normalize.ExperienceLevel(title, ""),
			Tags:            append([]string(nil), b.tags...),
		})
	})

	return dedupeByURL(listings)
}

// linkListings scans the board page for posting links.
func (b trakstarBoard) linkListings(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find("a[href*='jobs'], a[href*='opening']").Each(func(_ int, anchor *goquery.Selection) {
		title := normalize.CleanText(anchor.Text())
		link := normalize.ResolveURL(b.base, anchor.AttrOr("href", ""))
		if len(title) < 3 || !normalize.ValidJobURL(link) {
			return
		}

		listings = append(listings, models.Listing{
			Source:          b.source,
			Company:         b.company,
			Title:           title,
			URL:             link,
			Location:        defaultLocation,
			JobType:         "Full-time",
			ExperienceLevel: normalize.ExperienceLevel(title, ""),
			Tags:            append([]string(nil), b.tags...),
		})
	})

	return dedupeByURL(listings)
}

// scrape runs the board's strategy order: openings API first, then the
// rendered page's cards, then a bare link scan.
func (b trakstarBoard) scrape(ctx context.Context, client *network.Client, opts Options) ([]models.Listing, error) {
	listings, err := b.apiListings(ctx, client)
	if err == nil && len(listings) > 0 {
		return listings, nil
	}
	if err != nil {
		opts.Logger.Debug().Err(err).Str("source", b.source).Msg("openings api failed, trying board page")
	}

	doc, derr := fetchDocument(ctx, client, b.career)
	if derr != nil {
		opts.Logger.Warn().Err(derr).Str("source", b.source).Msg("board page fetch failed")
		return nil, nil
	}
	return cascade(doc, b.cardListings, b.linkListings), nil
}
