package scraper

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestA2IExtractTables(t *testing.T) {
	html := `
<table>
  <tr><th><a href="/site/view/jobs">Job Title</a></th><th>Deadline</th></tr>
  <tr>
    <td><a href="/site/notices/senior-consultant-ict">Senior Consultant (ICT)</a></td>
    <td>15-01-2026</td>
  </tr>
</table>`

	a := NewA2I(nil, Options{Logger: zerolog.Nop()})
	listings := a.extractTables(mustDoc(t, html), "https://a2i.gov.bd")

	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d: %+v", len(listings), listings)
	}
	got := listings[0]
	if got.URL != "https://a2i.gov.bd/site/notices/senior-consultant-ict" {
		t.Fatalf("unexpected url: %q", got.URL)
	}
	if got.JobType != "Government/Semi-Government" {
		t.Fatalf("unexpected job type: %q", got.JobType)
	}
	if got.Deadline == nil {
		t.Fatalf("deadline cell should be parsed")
	}
	want := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	if !got.Deadline.Equal(want) {
		t.Fatalf("unexpected deadline: %v", got.Deadline)
	}
}

func TestA2IExtractKeywordLinks(t *testing.T) {
	html := `
<a href="/notice/12">Recruitment of National Consultant, Digital Services</a>
<a href="/notice/13">Annual Report Published Today Online</a>`

	a := NewA2I(nil, Options{Logger: zerolog.Nop()})
	listings := a.extractKeywordLinks(mustDoc(t, html), "https://a2i.gov.bd")

	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	if listings[0].Title != "Recruitment of National Consultant, Digital Services" {
		t.Fatalf("unexpected title: %q", listings[0].Title)
	}
}
