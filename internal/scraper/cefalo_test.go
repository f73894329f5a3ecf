package scraper

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestCefaloExtractCards(t *testing.T) {
	html := `
<div class="job-card">
  <h3 class="job-title">Software Engineer (Node.js)</h3>
  <a href="/job/software-engineer-nodejs">Details</a>
  <span class="location">Dhaka</span>
  <p>Application Deadline: 14 December, 2025</p>
</div>`

	c := NewCefalo(nil, Options{Logger: zerolog.Nop()})
	listings := c.extractCards(mustDoc(t, html))

	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d: %+v", len(listings), listings)
	}
	got := listings[0]
	if got.URL != "https://career.cefalo.com/job/software-engineer-nodejs" {
		t.Fatalf("unexpected url: %q", got.URL)
	}
	if got.Deadline == nil {
		t.Fatalf("card deadline should be parsed")
	}
	want := time.Date(2025, 12, 14, 0, 0, 0, 0, time.UTC)
	if !got.Deadline.Equal(want) {
		t.Fatalf("unexpected deadline: %v", got.Deadline)
	}
}

func TestCefaloExtractJobLinks(t *testing.T) {
	html := `
<a href="/job/senior-software-engineer">Senior Software Engineer</a>
<a href="/job/qa-engineer">QA Engineer</a>
<a href="/about">About Cefalo</a>
<a href="/job/qa-engineer">QA Engineer</a>`

	c := NewCefalo(nil, Options{Logger: zerolog.Nop()})
	listings := dedupeByURL(c.extractJobLinks(mustDoc(t, html)))

	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}
	if listings[0].ExperienceLevel != "Senior" {
		t.Fatalf("unexpected level: %q", listings[0].ExperienceLevel)
	}
}

func TestTruncateTextKeepsRunesIntact(t *testing.T) {
	// Bangla text: 3 bytes per rune, so a byte-offset cut would land
	// mid-sequence.
	bangla := "সফটওয়্যার প্রকৌশলী পদে নিয়োগ বিজ্ঞপ্তি"

	got := truncateText(bangla, 10)
	if len([]rune(got)) > 10 {
		t.Fatalf("expected at most 10 runes, got %d", len([]rune(got)))
	}
	for _, r := range got {
		if r == '�' {
			t.Fatalf("truncation produced a broken rune: %q", got)
		}
	}

	if short := truncateText("short", 2000); short != "short" {
		t.Fatalf("text under the cap should pass through: %q", short)
	}
}
