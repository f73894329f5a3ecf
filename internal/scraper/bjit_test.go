package scraper

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestBJITExtractJobLinks_StrictFiltering(t *testing.T) {
	html := `
<html><body>
  <nav>
    <a href="https://bjitgroup.com/services">Services</a>
    <a href="https://bjitgroup.com/career">Career</a>
  </nav>
  <a href="https://bjitgroup.com/career/senior-software-engineer-java">Senior Software Engineer (Java)</a>
  <a href="https://bjitgroup.com/career/apply#">Apply for this position now</a>
  <a href="javascript:void(0)">Experienced Automation Engineer</a>
  <a href="https://bjitgroup.com/blog/ai-trends">Our thoughts on AI and what comes next</a>
</body></html>`

	b := NewBJIT(nil, Options{Logger: zerolog.Nop()})
	listings := b.extractJobLinks(mustDoc(t, html))

	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d: %+v", len(listings), listings)
	}
	got := listings[0]
	if got.Title != "Senior Software Engineer (Java)" {
		t.Fatalf("unexpected title: %q", got.Title)
	}
	if got.URL != "https://bjitgroup.com/career/senior-software-engineer-java" {
		t.Fatalf("unexpected url: %q", got.URL)
	}
	if got.ExperienceLevel != "Senior" {
		t.Fatalf("unexpected level: %q", got.ExperienceLevel)
	}
}

func TestBJITExtractCards(t *testing.T) {
	html := `
<div class="job-card">
  <h3>Backend Developer</h3>
  <a href="/career/backend-developer">View</a>
  <span class="location">Dhaka</span>
  <p>Work with Japanese clients on embedded platforms.</p>
</div>`

	b := NewBJIT(nil, Options{Logger: zerolog.Nop()})
	listings := b.extractCards(mustDoc(t, html))

	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	if listings[0].URL != "https://bjitgroup.com/career/backend-developer" {
		t.Fatalf("unexpected url: %q", listings[0].URL)
	}
	if listings[0].Location != "Dhaka" {
		t.Fatalf("unexpected location: %q", listings[0].Location)
	}
}
