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
	chaldalBase   = "https://chaldal.tech"
	chaldalCareer = "https://chaldal.tech/"
)

var chaldalRoleKeywords = []string{
	"engineer", "developer", "designer", "analyst",
	"manager", "lead", "architect", "intern",
}

// chaldalTechTags maps stack names to the phrasings that show up in posting
// text.
var chaldalTechTags = []struct {
	tag      string
	keywords []string
}{
	{".NET", []string{".net", "dotnet", ".net core"}},
	{"F#", []string{"f#", "fsharp"}},
	{"C#", []string{"c#", "csharp"}},
	{"SQL Server", []string{"sql server", "mssql"}},
	{"TypeScript", []string{"typescript"}},
	{"React Native", []string{"react native"}},
	{"React", []string{"react", "reactjs"}},
	{"Python", []string{"python"}},
	{"JavaScript", []string{"javascript"}},
}

// Chaldal scrapes the Chaldal engineering page. The page is a single
// document of list-group cards whose anchors carry no real href; the apply
// link is a shared form discovered among the elements following each card.
// Listings without an apply link get a synthetic career-page fragment URL
// derived from the title, so each posting keeps a stable unique URL for
// reconciliation.
type Chaldal struct {
	client *network.Client
	opts   Options
}

func NewChaldal(client *network.Client, opts Options) *Chaldal {
	return &Chaldal{client: client, opts: opts}
}

func (c *Chaldal) Name() string {
	return SourceChaldal
}

func (c *Chaldal) Scrape(ctx context.Context) ([]models.Listing, error) {
	doc, err := fetchDocument(ctx, c.client, chaldalCareer)
	if err != nil {
		c.opts.Logger.Warn().Err(err).Str("source", c.Name()).Msg("career page fetch failed")
		return nil, nil
	}
	return c.extractListings(doc), nil
}

func (c *Chaldal) extractListings(doc *goquery.Document) []models.Listing {
	var listings []models.Listing
	doc.Find("div.list-group a[href='#']").Each(func(_ int, card *goquery.Selection) {
		title := normalize.CleanText(card.Find("span").First().Text())
		if len(title) < 10 || !chaldalRoleTitle(title) {
			return
		}

		location := normalize.CleanText(card.Find("p").First().Text())
		if location == "" {
			location = defaultLocation
		}

		description := c.extractDescription(card)
		link := c.findApplyLink(card)
		if link == "" {
			link = chaldalCareer + "#job-" + titleSlug(title)
		}

		listings = append(listings, models.Listing{
			Source:          c.Name(),
			Company:         "Chaldal",
			Title:           title,
			URL:             link,
			Description:     truncateText(description, 2000),
			Location:        location,
			ExperienceLevel: normalize.ExperienceLevel(title, description),
			Tags:            chaldalTags(title + " " + description),
		})
	})

	return dedupeByTitle(listings)
}

// findApplyLink walks the siblings after the card's list-group for a form
// link, stopping at the next job card.
func (c *Chaldal) findApplyLink(card *goquery.Selection) string {
	group := card.Closest("div.list-group")
	sibling := group.Next()
	for count := 0; sibling.Length() > 0 && count < 20; count++ {
		if sibling.Find("div.list-group a[href='#']").Length() > 0 {
			break
		}
		if form := sibling.Find("a[href*='forms.office.com'], a[href*='forms.gle']").First(); form.Length() > 0 {
			return normalize.ResolveURL(chaldalBase, form.AttrOr("href", ""))
		}
		found := ""
		sibling.Find("a[href]").EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
			if strings.Contains(strings.ToLower(anchor.Text()), "apply") {
				found = anchor.AttrOr("href", "")
				return false
			}
			return true
		})
		if found != "" {
			return normalize.ResolveURL(chaldalBase, found)
		}
		sibling = sibling.Next()
	}
	return ""
}

// extractDescription assembles posting text from the elements between this
// card and the next one.
func (c *Chaldal) extractDescription(card *goquery.Selection) string {
	var parts []string
	group := card.Closest("div.list-group")
	sibling := group.Next()
	for count := 0; sibling.Length() > 0 && count < 15; count++ {
		if sibling.Find("div.list-group a[href='#']").Length() > 0 {
			break
		}
		if sibling.Find("a[href*='forms.office.com']").Length() > 0 {
			break
		}
		if text := normalize.CleanText(sibling.Text()); len(text) > 10 {
			parts = append(parts, text)
		}
		sibling = sibling.Next()
	}
	return strings.Join(parts, " ")
}

func chaldalRoleTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range chaldalRoleKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// titleSlug turns a posting title into a URL fragment: lowercase, runs of
// non-alphanumerics collapsed to single dashes.
func titleSlug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func chaldalTags(text string) []string {
	tags := []string{"Chaldal"}
	lower := strings.ToLower(text)
	for _, tech := range chaldalTechTags {
		for _, kw := range tech.keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, tech.tag)
				break
			}
		}
	}
	return tags
}
