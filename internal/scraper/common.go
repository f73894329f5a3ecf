package scraper

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nhasan/jobwatch/internal/models"
	"github.com/nhasan/jobwatch/internal/network"
	"github.com/nhasan/jobwatch/internal/normalize"
)

// fetchDocument GETs target and parses it into a goquery document.
// Transport and status failures come back as *FetchError, a broken body as
// *ParseError; callers treat either as "zero candidates from this URL" and
// move on.
func fetchDocument(ctx context.Context, client *network.Client, target string) (*goquery.Document, error) {
	resp, err := client.Get(ctx, target, "")
	if err != nil {
		return nil, &models.FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &models.FetchError{URL: target, Status: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &models.ParseError{URL: target, Stage: "html", Err: err}
	}
	return doc, nil
}

// fetchJSON GETs target and decodes the payload into out. Decode failures
// are typed failures too, not fatal to the caller.
func fetchJSON(ctx context.Context, client *network.Client, target string, out any) error {
	resp, err := client.Get(ctx, target, "application/json")
	if err != nil {
		return &models.FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &models.FetchError{URL: target, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &models.ParseError{URL: target, Stage: "json", Err: err}
	}
	return nil
}

// extractor pulls candidate listings out of an already-fetched document.
type extractor func(doc *goquery.Document) []models.Listing

// cascade runs extractors in priority order and returns the first non-empty
// result. Once a high-fidelity strategy succeeds, the noisier fallbacks are
// skipped entirely.
func cascade(doc *goquery.Document, extractors ...extractor) []models.Listing {
	for _, extract := range extractors {
		if listings := extract(doc); len(listings) > 0 {
			return listings
		}
	}
	return nil
}

// dedupeByURL keeps the first listing per URL. A single page can surface
// the same posting through several DOM paths.
func dedupeByURL(listings []models.Listing) []models.Listing {
	seen := map[string]struct{}{}
	out := make([]models.Listing, 0, len(listings))
	for _, listing := range listings {
		if listing.URL == "" {
			continue
		}
		if _, ok := seen[listing.URL]; ok {
			continue
		}
		seen[listing.URL] = struct{}{}
		out = append(out, listing)
	}
	return out
}

// dedupeByTitle keeps the first listing per title, for sources whose
// detail links are unstable or shared.
func dedupeByTitle(listings []models.Listing) []models.Listing {
	seen := map[string]struct{}{}
	out := make([]models.Listing, 0, len(listings))
	for _, listing := range listings {
		key := strings.ToLower(strings.TrimSpace(listing.Title))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, listing)
	}
	return out
}

// captchaMarkers are phrases a bot wall renders instead of listings.
var captchaMarkers = []string{
	"captcha",
	"what code is in the image",
	"please enable javascript",
	"security verification",
}

// behindCaptcha reports whether the page is a CAPTCHA or bot-detection wall
// rather than real content. Such a source is unavailable, not failing.
func behindCaptcha(doc *goquery.Document) bool {
	text := strings.ToLower(doc.Text())
	for _, marker := range captchaMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// noVacancyMarkers are the ways career pages announce an empty board.
var noVacancyMarkers = []string{
	"no vacancies", "no vacancy", "no current openings", "no positions",
	"currently no", "no jobs available", "no open positions",
}

// saysNoVacancies reports whether the page explicitly states there are no
// openings, so lower-fidelity strategies don't misfire on marketing copy.
func saysNoVacancies(doc *goquery.Document) bool {
	text := strings.ToLower(doc.Text())
	for _, marker := range noVacancyMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// cardTitle reads the first matching heading inside a card selection.
func cardTitle(card *goquery.Selection, selectors string) string {
	return normalize.CleanText(card.Find(selectors).First().Text())
}

// cardLink resolves the first anchor href inside a card against base.
func cardLink(card *goquery.Selection, base string) string {
	href := strings.TrimSpace(card.Find("a[href]").First().AttrOr("href", ""))
	if href == "" {
		return ""
	}
	return normalize.ResolveURL(base, href)
}
