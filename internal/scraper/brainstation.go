package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/nhasan/jobwatch/internal/models"
	"github.com/nhasan/jobwatch/internal/network"
	"github.com/nhasan/jobwatch/internal/normalize"
)

const (
	brainStationBase   = "https://brainstation-23.com"
	brainStationCareer = "https://brainstation-23.com/career-verse/"
)

// brainStationDeny drops the marketing copy that surrounds the postings.
var brainStationDeny = []string{"apply now", "learn more", "read more", "view all", "contact"}

// BrainStation scrapes the Brain Station 23 career page: structured cards
// first, then a section-by-section anchor sweep.
type BrainStation struct {
	client *network.Client
	opts   Options
}

func NewBrainStation(client *network.Client, opts Options) *BrainStation {
	return &BrainStation{client: client, opts: opts}
}

func (b *BrainStation) Name() string {
	return SourceBrainStation
}

func (b *BrainStation) Scrape(ctx context.Context) ([]models.Listing, error) {
	doc, err := fetchDocument(ctx, b.client, brainStationCareer)
	if err != nil {
		b.opts.Logger.Warn().Err(err).Str("source", b.Name()).Msg("career page fetch failed")
		return nil, nil
	}
	return dedupeByURL(cascade(doc, b.extractCards, b.extractSectionLinks)), nil
}

func (b *BrainStation) extractCards(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find(".job-card, .career-card, .position-item, .jobs-listing li, article.job, .vacancy").Each(func(_ int, card *goquery.Selection) {
		title := cardTitle(card, "h2, h3, h4, .job-title, .title")
		if title == "" {
			return
		}
		link := cardLink(card, brainStationBase)
		if !normalize.ValidJobURL(link) {
			return
		}

		description := normalize.CleanText(card.Find(".description, .summary, p").First().Text())
		tags := []string{"Brain Station 23", "Local Company"}
		if dept := normalize.CleanText(card.Find(".department, .team, .category").First().Text()); dept != "" {
			tags = append(tags, dept)
		}

		listings = append(listings, models.Listing{
			Source:          b.Name(),
			Company:         "Brain Station 23",
			Title:           title,
			URL:             link,
			Description:     description,
			Location:        defaultLocation,
			ExperienceLevel: normalize.ExperienceLevel(title, description),
			Tags:            tags,
		})
	})

	return listings
}

// extractSectionLinks sweeps anchors inside job-looking sections, dropping
// call-to-action labels.
func (b *BrainStation) extractSectionLinks(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find("[class*='job'], [class*='career'], [class*='position'], .grid, .list, section").Each(func(_ int, section *goquery.Selection) {
		section.Find("a").Each(func(_ int, anchor *goquery.Selection) {
			title := normalize.CleanText(anchor.Text())
			if len(title) < 5 || !normalize.PlausibleTitle(title, brainStationDeny) {
				return
			}
			link := normalize.ResolveURL(brainStationBase, anchor.AttrOr("href", ""))
			if !normalize.ValidJobURL(link) {
				return
			}

			listings = append(listings, models.Listing{
				Source:          b.Name(),
				Company:         "Brain Station 23",
				Title:           title,
				URL:             link,
				Location:        defaultLocation,
				ExperienceLevel: normalize.ExperienceLevel(title, ""),
				Tags:            []string{"Brain Station 23", "Local Company", "700+ Engineers"},
			})
		})
	})

	return listings
}
