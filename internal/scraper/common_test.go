package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/nhasan/jobwatch/internal/models"
)

func TestCascade_FirstNonEmptyWins(t *testing.T) {
	doc := mustDoc(t, "<html><body></body></html>")

	var thirdCalled bool
	first := func(*goquery.Document) []models.Listing { return nil }
	second := func(*goquery.Document) []models.Listing {
		return []models.Listing{{Title: "Backend Engineer", URL: "https://example.com/job/1"}}
	}
	third := func(*goquery.Document) []models.Listing {
		thirdCalled = true
		return []models.Listing{{Title: "Should Not Appear", URL: "https://example.com/job/2"}}
	}

	got := cascade(doc, first, second, third)
	if len(got) != 1 || got[0].Title != "Backend Engineer" {
		t.Fatalf("unexpected cascade result: %+v", got)
	}
	if thirdCalled {
		t.Fatalf("later strategies should not run once one succeeds")
	}
}

func TestCascade_AllEmpty(t *testing.T) {
	doc := mustDoc(t, "<html><body></body></html>")
	empty := func(*goquery.Document) []models.Listing { return nil }

	if got := cascade(doc, empty, empty); len(got) != 0 {
		t.Fatalf("expected no listings, got %+v", got)
	}
}

func TestDedupeByURL(t *testing.T) {
	listings := []models.Listing{
		{Title: "A", URL: "https://example.com/job/1"},
		{Title: "B", URL: "https://example.com/job/2"},
		{Title: "A again", URL: "https://example.com/job/1"},
	}

	got := dedupeByURL(listings)
	if len(got) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(got))
	}
	if got[0].Title != "A" || got[1].Title != "B" {
		t.Fatalf("dedupe should keep first occurrence: %+v", got)
	}
}

func TestDedupeByTitle(t *testing.T) {
	listings := []models.Listing{
		{Title: "Software Engineer", URL: "https://a.example.com/1"},
		{Title: "Software Engineer", URL: "https://b.example.com/2"},
		{Title: "QA Engineer", URL: "https://a.example.com/3"},
	}

	got := dedupeByTitle(listings)
	if len(got) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(got))
	}
	if got[0].URL != "https://a.example.com/1" {
		t.Fatalf("dedupe should keep first occurrence: %+v", got)
	}
}

func TestBehindCaptcha(t *testing.T) {
	doc := mustDoc(t, `<html><body><p>What code is in the image?</p></body></html>`)
	if !behindCaptcha(doc) {
		t.Fatalf("captcha marker should be detected")
	}

	doc = mustDoc(t, `<html><body><h1>Current Openings</h1></body></html>`)
	if behindCaptcha(doc) {
		t.Fatalf("plain page should not look like a captcha wall")
	}
}

func TestSaysNoVacancies(t *testing.T) {
	doc := mustDoc(t, `<html><body><p>There are no current openings at this time.</p></body></html>`)
	if !saysNoVacancies(doc) {
		t.Fatalf("no-vacancy text should be detected")
	}

	doc = mustDoc(t, `<html><body><div class="job-card"><h3>Backend Engineer</h3></div></body></html>`)
	if saysNoVacancies(doc) {
		t.Fatalf("page with openings should not report no vacancies")
	}
}

func TestCardTitleAndLink(t *testing.T) {
	html := `
<div class="job-card">
  <h3>  Senior&nbsp;Backend Engineer </h3>
  <a href="/job/senior-backend-engineer">Details</a>
</div>`
	doc := mustDoc(t, html)
	card := doc.Find(".job-card").First()

	if got := cardTitle(card, "h2, h3"); got != "Senior Backend Engineer" {
		t.Fatalf("unexpected title: %q", got)
	}
	if got := cardLink(card, "https://career.cefalo.com"); got != "https://career.cefalo.com/job/senior-backend-engineer" {
		t.Fatalf("unexpected link: %q", got)
	}
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}
