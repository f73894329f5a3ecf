package scraper

import (
	"testing"

	"github.com/rs/zerolog"
)

const chaldalPage = `
<html><body>
  <div class="list-group">
    <a href="#"><span>Software Engineer (Functional Programming)</span><p>Dhaka</p></a>
  </div>
  <div class="details">
    <p>We build our platform in F# and TypeScript. You will own services end to end.</p>
  </div>
  <div class="apply">
    <a href="https://forms.office.com/r/chaldal-apply">APPLY</a>
  </div>
  <div class="list-group">
    <a href="#"><span>Frontend Engineer</span><p>Dhaka, Remote</p></a>
  </div>
  <div class="details">
    <p>React and TypeScript work on the storefront.</p>
  </div>
  <div class="list-group">
    <a href="#"><span>Backend Engineer (Distributed Systems)</span><p>Dhaka</p></a>
  </div>
  <div class="details">
    <p>High-volume order processing in .NET on SQL Server.</p>
  </div>
  <div class="list-group">
    <a href="#"><span>Our Mission And Culture</span><p></p></a>
  </div>
</body></html>`

func TestChaldalScrapeParsing(t *testing.T) {
	c := NewChaldal(nil, Options{Logger: zerolog.Nop()})
	doc := mustDoc(t, chaldalPage)

	var listings = c.extractListings(doc)

	if len(listings) != 3 {
		t.Fatalf("expected 3 listings, got %d: %+v", len(listings), listings)
	}

	first := listings[0]
	if first.Title != "Software Engineer (Functional Programming)" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.URL != "https://forms.office.com/r/chaldal-apply" {
		t.Fatalf("apply form link should be used: %q", first.URL)
	}
	if first.Location != "Dhaka" {
		t.Fatalf("unexpected location: %q", first.Location)
	}
	if !hasTag(first.Tags, "F#") || !hasTag(first.Tags, "TypeScript") {
		t.Fatalf("tech tags missing: %v", first.Tags)
	}

	second := listings[1]
	if second.URL != "https://chaldal.tech/#job-frontend-engineer" {
		t.Fatalf("listing without apply link should get a stable fragment URL: %q", second.URL)
	}
	if !hasTag(second.Tags, "React") {
		t.Fatalf("tech tags missing: %v", second.Tags)
	}

	// Two postings without apply links must not share a URL, or the store
	// would refresh one row back and forth instead of keeping both.
	third := listings[2]
	if third.URL != "https://chaldal.tech/#job-backend-engineer-distributed-systems" {
		t.Fatalf("fragment URL should come from the title: %q", third.URL)
	}
	if second.URL == third.URL {
		t.Fatalf("no-link postings collapsed onto one URL: %q", second.URL)
	}
}

func TestChaldalRelativeApplyLink(t *testing.T) {
	const page = `
<html><body>
  <div class="list-group">
    <a href="#"><span>Platform Engineer (Infrastructure)</span><p>Dhaka</p></a>
  </div>
  <div class="apply">
    <a href="/careers/platform/apply">Apply here</a>
  </div>
</body></html>`

	c := NewChaldal(nil, Options{Logger: zerolog.Nop()})
	listings := c.extractListings(mustDoc(t, page))

	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	if listings[0].URL != "https://chaldal.tech/careers/platform/apply" {
		t.Fatalf("relative apply link should resolve against the site: %q", listings[0].URL)
	}
}

func TestTitleSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Frontend Engineer", "frontend-engineer"},
		{"Backend Engineer (Distributed Systems)", "backend-engineer-distributed-systems"},
		{"C# / .NET Developer", "c-net-developer"},
	}
	for _, tc := range cases {
		if got := titleSlug(tc.in); got != tc.want {
			t.Fatalf("titleSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestChaldalTitleFilter(t *testing.T) {
	if chaldalRoleTitle("Our Mission And Culture") {
		t.Fatalf("marketing heading should not pass the role filter")
	}
	if !chaldalRoleTitle("Senior Software Engineer") {
		t.Fatalf("engineer title should pass")
	}
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
