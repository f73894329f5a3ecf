package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/nhasan/jobwatch/internal/models"
	"github.com/nhasan/jobwatch/internal/network"
	"github.com/nhasan/jobwatch/internal/normalize"
)

const linkedinBase = "https://www.linkedin.com"

// linkedinSearchURLs cover the .NET keyword spread; each is a guest search
// scoped to Bangladesh over the past month.
var linkedinSearchURLs = []string{
	"https://www.linkedin.com/jobs/search?keywords=.NET+developer&location=Bangladesh&f_TPR=r2592000",
	"https://www.linkedin.com/jobs/search?keywords=C%23+developer&location=Bangladesh&f_TPR=r2592000",
	"https://www.linkedin.com/jobs/search?keywords=ASP.NET&location=Bangladesh&f_TPR=r2592000",
	"https://www.linkedin.com/jobs/search?keywords=dotnet&location=Bangladesh&f_TPR=r2592000",
}

var dotnetKeywords = []string{
	".net", "dotnet", "c#", "csharp", "asp.net", "entity framework",
	"sql server", "mssql", "azure", "blazor", "maui", "xamarin",
	"wpf", "winforms", "ef core",
}

// linkedinOtherTech marks titles that are explicitly another stack.
var linkedinOtherTech = []string{
	"python", "django", "flask", "ruby", "rails",
	"php", "laravel", "wordpress", "drupal",
	"java ", "spring boot", "kotlin",
	"flutter", "dart",
	"go developer", "golang", "rust developer",
}

var linkedinGenericDev = []string{
	"software engineer", "full stack", "full-stack", "fullstack",
	"backend", "programmer",
}

var linkedinTagMap = []struct {
	tag      string
	keywords []string
}{
	{".NET", []string{".net", "dotnet"}},
	{"C#", []string{"c#", "csharp"}},
	{"ASP.NET", []string{"asp.net"}},
	{"SQL Server", []string{"sql server", "mssql"}},
	{"Azure", []string{"azure"}},
	{"Entity Framework", []string{"entity framework", "ef core"}},
	{"Full-Stack", []string{"full stack", "full-stack", "fullstack"}},
	{"Backend", []string{"backend", "back-end"}},
}

// LinkedIn scrapes .NET roles in Bangladesh from LinkedIn's guest job
// search. The guest pages return the first result batch without auth; each
// seed URL is one keyword query, and results merge with a URL dedupe after
// tracking parameters are stripped.
type LinkedIn struct {
	client *network.Client
	opts   Options
}

func NewLinkedIn(client *network.Client, opts Options) *LinkedIn {
	return &LinkedIn{client: client, opts: opts}
}

func (l *LinkedIn) Name() string {
	return SourceLinkedIn
}

func (l *LinkedIn) Scrape(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing

	for _, seed := range linkedinSearchURLs {
		doc, err := fetchDocument(ctx, l.client, seed)
		if err != nil {
			l.opts.Logger.Warn().Err(err).Str("source", l.Name()).Str("url", seed).Msg("search fetch failed")
			continue
		}
		listings = append(listings, cascade(doc, l.extractCards, l.extractViewLinks)...)
	}

	return dedupeByURL(listings), nil
}

func (l *LinkedIn) extractCards(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find(".base-card, .job-search-card, [data-entity-urn*='jobPosting'], .jobs-search__results-list li").Each(func(_ int, card *goquery.Selection) {
		title := cardTitle(card, ".base-search-card__title, .job-search-card__title, h3, h4, .base-card__full-link")
		if len(title) < 5 || !dotnetTitle(title) {
			return
		}

		anchor := card.Find("a[href*='/jobs/view/']").First()
		if anchor.Length() == 0 {
			anchor = card.Find("a[href]").First()
		}
		if anchor.Length() == 0 {
			return
		}
		link := normalize.StripTracking(normalize.ResolveURL(linkedinBase, anchor.AttrOr("href", "")))
		if !normalize.ValidJobURL(link) {
			return
		}

		company := normalize.CleanText(card.Find(".base-search-card__subtitle, .job-search-card__company-name, h4 a, .base-card__subtitle").First().Text())
		if company == "" {
			company = "Unknown"
		}
		location := normalize.CleanText(card.Find(".job-search-card__location, .base-search-card__metadata, [class*='location']").First().Text())
		if location == "" {
			location = "Bangladesh"
		}

		listing := models.Listing{
			Source:          l.Name(),
			Company:         company,
			Title:           title,
			URL:             link,
			Location:        location,
			JobType:         "Full-time",
			ExperienceLevel: normalize.ExperienceLevel(title, ""),
			Tags:            linkedinTags(title),
		}

		if stamp := card.Find("time, .job-search-card__listdate, [datetime]").First().AttrOr("datetime", ""); stamp != "" {
			if posted, err := time.Parse(time.RFC3339, strings.Replace(stamp, "Z", "+00:00", 1)); err == nil {
				listing.PostedAt = &posted
			} else if posted, err := time.Parse("2006-01-02", stamp); err == nil {
				listing.PostedAt = &posted
			}
		}

		listings = append(listings, listing)
	})

	return dedupeByURL(listings)
}

func (l *LinkedIn) extractViewLinks(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find("a[href*='/jobs/view/']").Each(func(_ int, anchor *goquery.Selection) {
		title := normalize.CleanText(anchor.Text())
		if len(title) < 10 || !dotnetTitle(title) {
			return
		}
		link := normalize.StripTracking(normalize.ResolveURL(linkedinBase, anchor.AttrOr("href", "")))
		if !normalize.ValidJobURL(link) {
			return
		}

		company := linkedinCompanyNear(anchor)

		listings = append(listings, models.Listing{
			Source:          l.Name(),
			Company:         company,
			Title:           title,
			URL:             link,
			Location:        "Bangladesh",
			JobType:         "Full-time",
			ExperienceLevel: normalize.ExperienceLevel(title, ""),
			Tags:            linkedinTags(title),
		})
	})

	return dedupeByURL(listings)
}

// linkedinCompanyNear looks for a company label around a bare job link.
func linkedinCompanyNear(anchor *goquery.Selection) string {
	for _, scope := range []*goquery.Selection{anchor.Parent(), anchor.Parent().Parent()} {
		if company := normalize.CleanText(scope.Find(".base-search-card__subtitle, h4, [class*='company']").First().Text()); company != "" {
			return company
		}
	}
	return "Unknown"
}

// dotnetTitle accepts .NET keyword titles outright; generic developer
// titles pass only with a Microsoft-stack hint and no competing stack.
func dotnetTitle(title string) bool {
	lower := strings.ToLower(title)

	for _, kw := range dotnetKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	generic := false
	for _, kw := range linkedinGenericDev {
		if strings.Contains(lower, kw) {
			generic = true
			break
		}
	}
	if !generic {
		return false
	}
	for _, kw := range linkedinOtherTech {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	for _, hint := range []string{".net", "c#", "sql server", "azure", "microsoft"} {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func linkedinTags(title string) []string {
	tags := []string{"LinkedIn", "Bangladesh"}
	lower := strings.ToLower(title)
	for _, entry := range linkedinTagMap {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, entry.tag)
				break
			}
		}
	}
	return tags
}
