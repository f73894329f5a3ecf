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
	cefaloBase   = "https://career.cefalo.com"
	cefaloCareer = "https://career.cefalo.com/"
)

// Cefalo scrapes the Cefalo Bangladesh career site. Listing cards carry the
// title and link; deadlines live on the detail page in the apply section.
type Cefalo struct {
	client *network.Client
	opts   Options
}

func NewCefalo(client *network.Client, opts Options) *Cefalo {
	return &Cefalo{client: client, opts: opts}
}

func (c *Cefalo) Name() string {
	return SourceCefalo
}

func (c *Cefalo) Scrape(ctx context.Context) ([]models.Listing, error) {
	doc, err := fetchDocument(ctx, c.client, cefaloCareer)
	if err != nil {
		c.opts.Logger.Warn().Err(err).Str("source", c.Name()).Msg("career page fetch failed")
		return nil, nil
	}

	listings := cascade(doc, c.extractCards, c.extractJobLinks)
	listings = dedupeByURL(listings)

	// Detail pages are fetched for the first few listings only to bound
	// request volume per run.
	for i := range listings {
		if i >= c.opts.DetailFetchLimit {
			break
		}
		c.fetchDetail(ctx, &listings[i])
	}

	return listings, nil
}

func (c *Cefalo) extractCards(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find(".job-card, .job-listing, .position-card, article.job, .career-item").Each(func(_ int, card *goquery.Selection) {
		title := cardTitle(card, "h2, h3, .job-title, .position-title")
		if title == "" {
			title = normalize.CleanText(card.Text())
		}
		link := cardLink(card, cefaloBase)
		if title == "" || !normalize.ValidJobURL(link) {
			return
		}

		location := normalize.CleanText(card.Find(".location, .job-location").First().Text())
		if location == "" {
			location = defaultLocation
		}

		listing := models.Listing{
			Source:          c.Name(),
			Company:         "Cefalo",
			Title:           title,
			URL:             link,
			Location:        location,
			JobType:         "Full-time",
			ExperienceLevel: normalize.ExperienceLevel(title, ""),
			Tags:            []string{"Cefalo", "Norwegian Company"},
		}
		if deadline, ok := normalize.ParseDeadline(card.Text()); ok {
			listing.Deadline = &deadline
		}
		listings = append(listings, listing)
	})

	return listings
}

func (c *Cefalo) extractJobLinks(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find("a[href*='/job/']").Each(func(_ int, anchor *goquery.Selection) {
		title := normalize.CleanText(anchor.Text())
		link := normalize.ResolveURL(cefaloBase, anchor.AttrOr("href", ""))
		if title == "" || !normalize.ValidJobURL(link) {
			return
		}

		listings = append(listings, models.Listing{
			Source:          c.Name(),
			Company:         "Cefalo",
			Title:           title,
			URL:             link,
			Location:        defaultLocation,
			JobType:         "Full-time",
			ExperienceLevel: normalize.ExperienceLevel(title, ""),
			Tags:            []string{"Cefalo", "Norwegian Company"},
		})
	})

	return listings
}

// fetchDetail enriches one listing from its detail page: description,
// requirements and the "Application Deadline:" date in the apply section.
func (c *Cefalo) fetchDetail(ctx context.Context, listing *models.Listing) {
	doc, err := fetchDocument(ctx, c.client, listing.URL)
	if err != nil {
		c.opts.Logger.Debug().Err(err).Str("source", c.Name()).Str("url", listing.URL).Msg("detail fetch failed")
		return
	}

	if desc := normalize.CleanText(doc.Find(".job-description, .description, article").First().Text()); desc != "" {
		listing.Description = truncateText(desc, 2000)
	}
	if req := normalize.CleanText(doc.Find(".requirements, .qualifications").First().Text()); req != "" {
		listing.Requirements = truncateText(req, 2000)
	}

	if applyText := doc.Find(".apply-sec").First().Text(); applyText != "" {
		if deadline, ok := normalize.ParseDeadline(applyText); ok {
			listing.Deadline = &deadline
			return
		}
	}

	// Fall back to any element mentioning a deadline.
	doc.Find("*").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		lower := strings.ToLower(text)
		if !strings.Contains(lower, "deadline") && !strings.Contains(lower, "last date") && !strings.Contains(lower, "apply before") {
			return true
		}
		if deadline, ok := normalize.ParseDeadline(text); ok {
			listing.Deadline = &deadline
			return false
		}
		return true
	})
}

// truncateText caps value at max runes. Posting text from these sources
// mixes ASCII and Bangla, so cutting on a byte offset could split a rune.
func truncateText(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return strings.TrimSpace(string(runes[:max]))
}
