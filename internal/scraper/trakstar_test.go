package scraper

import "testing"

func TestTrakstarBoardCardListings(t *testing.T) {
	html := `
<div class="opening">
  <a href="/openings/123"><span class="title">Software Engineer</span></a>
  <span class="location">Dhaka, Bangladesh</span>
</div>
<div class="opening">
  <a href="/openings/124"><span class="title">Senior QA Engineer</span></a>
</div>`

	board := trakstarBoard{
		source:  SourceTherap,
		company: "Therap BD",
		base:    "https://therap.hire.trakstar.com",
		tags:    []string{"Therap"},
	}
	listings := board.cardListings(mustDoc(t, html))

	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d: %+v", len(listings), listings)
	}
	if listings[0].URL != "https://therap.hire.trakstar.com/openings/123" {
		t.Fatalf("unexpected url: %q", listings[0].URL)
	}
	if listings[1].ExperienceLevel != "Senior" {
		t.Fatalf("unexpected level: %q", listings[1].ExperienceLevel)
	}
	if listings[1].Location != "Dhaka, Bangladesh" {
		t.Fatalf("missing location should fall back to default: %q", listings[1].Location)
	}
}

func TestTrakstarBoardLinkListings(t *testing.T) {
	html := `
<a href="/jobs/55">Implementation Specialist</a>
<a href="/jobs/55">Implementation Specialist</a>
<a href="/about">About</a>`

	board := trakstarBoard{
		source:  SourceKaz,
		company: "Kaz Software",
		base:    "https://kazsoftware.hire.trakstar.com",
		tags:    []string{"Kaz Software"},
	}
	listings := board.linkListings(mustDoc(t, html))

	if len(listings) != 1 {
		t.Fatalf("duplicate links should collapse to 1, got %d", len(listings))
	}
	if listings[0].Company != "Kaz Software" {
		t.Fatalf("unexpected company: %q", listings[0].Company)
	}
}
