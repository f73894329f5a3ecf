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
	a2iBase      = "https://a2i.gov.bd"
	a2iCareer    = "https://a2i.gov.bd/site/view/jobs/-"
	a2iAltBase   = "https://a2i.portal.gov.bd"
	a2iAltCareer = "https://a2i.portal.gov.bd/site/view/jobs/Job-Circular"
)

// a2iRoleKeywords gate the last-resort anchor sweep on government portal
// pages, which are dense with notice links.
var a2iRoleKeywords = []string{
	"consultant", "engineer", "developer", "programmer",
	"officer", "specialist", "intern",
}

// A2I scrapes the a2i (Aspire to Innovate) circulars from both government
// portals, merging with a title dedupe.
type A2I struct {
	client *network.Client
	opts   Options
}

func NewA2I(client *network.Client, opts Options) *A2I {
	return &A2I{client: client, opts: opts}
}

func (a *A2I) Name() string {
	return SourceA2I
}

func (a *A2I) Scrape(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing

	for _, seed := range []struct{ base, career string }{
		{a2iBase, a2iCareer},
		{a2iAltBase, a2iAltCareer},
	} {
		doc, err := fetchDocument(ctx, a.client, seed.career)
		if err != nil {
			a.opts.Logger.Warn().Err(err).Str("source", a.Name()).Str("url", seed.career).Msg("portal fetch failed")
			continue
		}
		base := seed.base
		listings = append(listings, cascade(doc,
			func(doc *goquery.Document) []models.Listing { return a.extractTables(doc, base) },
			func(doc *goquery.Document) []models.Listing { return a.extractListItems(doc, base) },
			func(doc *goquery.Document) []models.Listing { return a.extractKeywordLinks(doc, base) },
		)...)
	}

	return dedupeByTitle(listings), nil
}

func (a *A2I) extractTables(doc *goquery.Document, base string) []models.Listing {
	var listings []models.Listing

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		anchor := row.Find("a").First()
		if anchor.Length() == 0 {
			return
		}
		title := normalize.CleanText(anchor.Text())
		if len(title) < 5 || a2iHeaderRow(title) {
			return
		}
		link := normalize.ResolveURL(base, anchor.AttrOr("href", ""))
		if !normalize.ValidJobURL(link) {
			return
		}

		listing := a.listing(title, link)
		row.Find("td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
			if deadline, ok := normalize.ParseDeadline(cell.Text()); ok {
				listing.Deadline = &deadline
				return false
			}
			return true
		})
		listings = append(listings, listing)
	})

	return listings
}

func (a *A2I) extractListItems(doc *goquery.Document, base string) []models.Listing {
	var listings []models.Listing

	doc.Find("ul li, .list-group-item, .job-list li").Each(func(_ int, item *goquery.Selection) {
		anchor := item.Find("a").First()
		if anchor.Length() == 0 {
			return
		}
		title := normalize.CleanText(anchor.Text())
		link := normalize.ResolveURL(base, anchor.AttrOr("href", ""))
		if len(title) < 5 || !normalize.ValidJobURL(link) {
			return
		}
		listings = append(listings, a.listing(title, link))
	})

	return listings
}

// extractKeywordLinks is the last resort: any anchor whose label carries a
// role keyword.
func (a *A2I) extractKeywordLinks(doc *goquery.Document, base string) []models.Listing {
	var listings []models.Listing

	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		title := normalize.CleanText(anchor.Text())
		if len(title) <= 10 || !a2iRoleTitle(title) {
			return
		}
		link := normalize.ResolveURL(base, anchor.AttrOr("href", ""))
		if !normalize.ValidJobURL(link) {
			return
		}
		listings = append(listings, a.listing(title, link))
	})

	return listings
}

func (a *A2I) listing(title, link string) models.Listing {
	return models.Listing{
		Source:          a.Name(),
		Company:         "a2i",
		Title:           title,
		URL:             link,
		Location:        defaultLocation,
		JobType:         "Government/Semi-Government",
		ExperienceLevel: normalize.ExperienceLevel(title, ""),
		Tags:            []string{"a2i", "ICT Division", "Digital Bangladesh"},
	}
}

// a2iHeaderRow spots table header labels masquerading as link text.
func a2iHeaderRow(title string) bool {
	lower := strings.ToLower(title)
	for _, header := range []string{"title", "position", "job"} {
		if strings.Contains(lower, header) {
			return true
		}
	}
	return false
}

func a2iRoleTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range a2iRoleKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
