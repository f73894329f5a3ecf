package scraper

import (
	"context"
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/nhasan/jobwatch/internal/models"
	"github.com/nhasan/jobwatch/internal/network"
	"github.com/nhasan/jobwatch/internal/normalize"
)

const (
	enosisBase   = "https://enosisbd.pinpointhq.com"
	enosisCareer = "https://enosisbd.pinpointhq.com/"
	enosisAPI    = "https://enosisbd.pinpointhq.com/postings.json"
)

// pinpointPosting is one entry of a Pinpoint board's postings.json feed.
// Posting pages live at /postings/<id>.
type pinpointPosting struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	Description    string `json:"description"`
	EmploymentType string `json:"employment_type"`
	Location       struct {
		Name string `json:"name"`
	} `json:"location"`
}

type pinpointFeed struct {
	Data []pinpointPosting `json:"data"`
}

// Enosis scrapes Enosis Solutions through the Pinpoint postings API, with
// HTML card and link-scan fallbacks.
type Enosis struct {
	client *network.Client
	opts   Options
}

func NewEnosis(client *network.Client, opts Options) *Enosis {
	return &Enosis{client: client, opts: opts}
}

func (e *Enosis) Name() string {
	return SourceEnosis
}

func (e *Enosis) Scrape(ctx context.Context) ([]models.Listing, error) {
	listings, err := e.apiListings(ctx)
	if err == nil && len(listings) > 0 {
		return listings, nil
	}
	if err != nil {
		e.opts.Logger.Debug().Err(err).Str("source", e.Name()).Msg("postings api failed, trying board page")
	}

	doc, derr := fetchDocument(ctx, e.client, enosisCareer)
	if derr != nil {
		e.opts.Logger.Warn().Err(derr).Str("source", e.Name()).Msg("board page fetch failed")
		return nil, nil
	}
	return cascade(doc, e.extractCards, e.extractPostingLinks), nil
}

func (e *Enosis) apiListings(ctx context.Context) ([]models.Listing, error) {
	var feed pinpointFeed
	if err := fetchJSON(ctx, e.client, enosisAPI, &feed); err != nil {
		return nil, err
	}
	if len(feed.Data) == 0 {
		return nil, errors.New("empty postings feed")
	}

	var listings []models.Listing
	for _, posting := range feed.Data {
		link := normalize.ResolveURL(enosisBase, posting.URL)
		if link == "" && posting.ID != 0 {
			link = fmt.Sprintf("%s/postings/%d", enosisBase, posting.ID)
		}
		if posting.Title == "" || !normalize.ValidJobURL(link) {
			continue
		}

		location := normalize.CleanText(posting.Location.Name)
		if location == "" {
			location = defaultLocation
		}
		jobType := posting.EmploymentType
		if jobType == "" {
			jobType = "Full-time"
		}

		description := truncateText(normalize.CleanText(posting.Description), 2000)
		listings = append(listings, models.Listing{
			Source:          e.Name(),
			Company:         "Enosis Solutions",
			Title:           normalize.CleanText(posting.Title),
			URL:             link,
			Description:     description,
			Location:        location,
			JobType:         jobType,
			ExperienceLevel: normalize.ExperienceLevel(posting.Title, description),
			Tags:            []string{"Enosis", "US Clients"},
		})
	}
	return dedupeByURL(listings), nil
}

func (e *Enosis) extractCards(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find(".posting, .job-posting, .position, [data-posting], .vacancy-item").Each(func(_ int, card *goquery.Selection) {
		title := cardTitle(card, ".posting-title, h2, h3, a")
		link := cardLink(card, enosisBase)
		if title == "" || !normalize.ValidJobURL(link) {
			return
		}

		tags := []string{"Enosis", "US Clients"}
		if dept := normalize.CleanText(card.Find(".department, .team").First().Text()); dept != "" {
			tags = append(tags, dept)
		}

		listings = append(listings, models.Listing{
			Source:          e.Name(),
			Company:         "Enosis Solutions",
			Title:           title,
			URL:             link,
			Location:        defaultLocation,
			ExperienceLevel: normalize.ExperienceLevel(title, ""),
			Tags:            tags,
		})
	})

	return dedupeByURL(listings)
}

func (e *Enosis) extractPostingLinks(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find("a[href*='/postings/'], a[href*='jobs']").Each(func(_ int, anchor *goquery.Selection) {
		title := normalize.CleanText(anchor.Text())
		link := normalize.ResolveURL(enosisBase, anchor.AttrOr("href", ""))
		if len(title) < 3 || !normalize.ValidJobURL(link) {
			return
		}

		listings = append(listings, models.Listing{
			Source:          e.Name(),
			Company:         "Enosis Solutions",
			Title:           title,
			URL:             link,
			Location:        defaultLocation,
			ExperienceLevel: normalize.ExperienceLevel(title, ""),
			Tags:            []string{"Enosis", "US Clients"},
		})
	})

	return dedupeByURL(listings)
}
