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
	bbBase   = "https://erecruitment.bb.org.bd"
	bbCareer = "https://erecruitment.bb.org.bd/"
	bbNotice = "https://erecruitment.bb.org.bd/onlineapp/joblist.php"
)

// bbSkipTitles filters the portal chrome around the circular tables.
var bbSkipTitles = []string{
	"erecruitment home", "edit resume", "guidance",
	"online job application", "contact us", "login",
	"register", "forgot password", "help", "faq",
	"privacy policy", "terms", "sitemap",
}

// bbSkipPaths are portal pages that are never circulars.
var bbSkipPaths = []string{"appguide", "front_resume", "index.php", "login", "register"}

// BangladeshBank scrapes the central bank's e-recruitment portal. The portal
// sits behind a CAPTCHA wall part of the time; that case short-circuits as
// source-unavailable rather than an extraction failure.
type BangladeshBank struct {
	client *network.Client
	opts   Options
}

func NewBangladeshBank(client *network.Client, opts Options) *BangladeshBank {
	return &BangladeshBank{client: client, opts: opts}
}

func (b *BangladeshBank) Name() string {
	return SourceBangladeshBank
}

func (b *BangladeshBank) Scrape(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing

	if doc, err := fetchDocument(ctx, b.client, bbCareer); err != nil {
		b.opts.Logger.Warn().Err(err).Str("source", b.Name()).Msg("portal fetch failed")
	} else if listings, err = b.parsePage(doc, "portal"); err != nil {
		return nil, err
	}

	if len(listings) == 0 {
		doc, err := fetchDocument(ctx, b.client, bbNotice)
		if err != nil {
			b.opts.Logger.Warn().Err(err).Str("source", b.Name()).Msg("joblist fetch failed")
			return nil, nil
		}
		if listings, err = b.parsePage(doc, "joblist"); err != nil {
			return nil, err
		}
	}

	return dedupeByTitle(listings), nil
}

// parsePage guards table extraction behind the captcha check. A walled page
// is source-unavailable; its tables are never touched.
func (b *BangladeshBank) parsePage(doc *goquery.Document, page string) ([]models.Listing, error) {
	if behindCaptcha(doc) {
		b.opts.Logger.Warn().Str("source", b.Name()).Str("page", page).Msg("captcha wall detected")
		return nil, models.ErrSourceUnavailable
	}
	return b.extractTables(doc), nil
}

// extractTables walks every table row with a link cell. Deadlines come from
// sibling cells holding a numeric date.
func (b *BangladeshBank) extractTables(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		anchor := row.Find("a[href]").First()
		if anchor.Length() == 0 {
			return
		}

		title := normalize.CleanText(anchor.Text())
		if len(title) < 10 || b.skipTitle(title) {
			return
		}

		link := normalize.ResolveURL(bbBase, anchor.AttrOr("href", ""))
		if !normalize.ValidJobURL(link) || b.skipPath(link) {
			return
		}

		listing := models.Listing{
			Source:          b.Name(),
			Company:         "Bangladesh Bank",
			Title:           title,
			URL:             link,
			Location:        "Bangladesh",
			JobType:         "Government",
			ExperienceLevel: normalize.ExperienceLevel(title, ""),
			Tags:            []string{"Bangladesh Bank", "Government", "Central Bank"},
		}

		cells.EachWithBreak(func(_ int, cell *goquery.Selection) bool {
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

func (b *BangladeshBank) skipTitle(title string) bool {
	lower := strings.ToLower(strings.TrimSpace(title))
	for _, pattern := range bbSkipTitles {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

func (b *BangladeshBank) skipPath(link string) bool {
	lower := strings.ToLower(link)
	for _, pattern := range bbSkipPaths {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
