package scraper

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/nhasan/jobwatch/internal/models"
)

func TestBangladeshBankExtractTables(t *testing.T) {
	html := `
<table>
  <tr>
    <td><a href="/onlineapp/circular.php?id=77">Assistant Programmer - Combined Circular</a></td>
    <td>20-12-2025</td>
  </tr>
  <tr>
    <td><a href="/onlineapp/front_resume.php">Edit Resume and Application Details</a></td>
    <td></td>
  </tr>
  <tr>
    <td>No link here</td>
    <td>01-01-2026</td>
  </tr>
</table>`

	b := NewBangladeshBank(nil, Options{Logger: zerolog.Nop()})
	listings := b.extractTables(mustDoc(t, html))

	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d: %+v", len(listings), listings)
	}
	got := listings[0]
	if got.URL != "https://erecruitment.bb.org.bd/onlineapp/circular.php?id=77" {
		t.Fatalf("unexpected url: %q", got.URL)
	}
	if got.JobType != "Government" {
		t.Fatalf("unexpected job type: %q", got.JobType)
	}
	if got.Deadline == nil {
		t.Fatalf("deadline should be parsed from the date cell")
	}
}

func TestBangladeshBankCaptchaWallShortCircuits(t *testing.T) {
	// The wall page still carries a parseable circular row; it must not be
	// extracted when the captcha marker is present.
	html := `
<html><body>
  <p>What code is in the image? Please verify to continue.</p>
  <table>
    <tr>
      <td><a href="/onlineapp/circular.php?id=12">Officer (General) - Combined Circular</a></td>
      <td>10-11-2025</td>
    </tr>
  </table>
</body></html>`

	b := NewBangladeshBank(nil, Options{Logger: zerolog.Nop()})
	listings, err := b.parsePage(mustDoc(t, html), "portal")

	if err != models.ErrSourceUnavailable {
		t.Fatalf("captcha wall should signal source unavailable, got %v", err)
	}
	if len(listings) != 0 {
		t.Fatalf("no listings should be extracted behind the wall: %+v", listings)
	}
}

func TestBangladeshBankParsePageWithoutWall(t *testing.T) {
	html := `
<table>
  <tr>
    <td><a href="/onlineapp/circular.php?id=12">Officer (General) - Combined Circular</a></td>
    <td>10-11-2025</td>
  </tr>
</table>`

	b := NewBangladeshBank(nil, Options{Logger: zerolog.Nop()})
	listings, err := b.parsePage(mustDoc(t, html), "portal")

	if err != nil {
		t.Fatalf("parsePage: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
}

func TestBangladeshBankSkipsPortalChrome(t *testing.T) {
	b := NewBangladeshBank(nil, Options{Logger: zerolog.Nop()})
	if !b.skipTitle("eRecruitment Home") {
		t.Fatalf("portal nav title should be skipped")
	}
	if b.skipTitle("Officer (General) Recruitment") {
		t.Fatalf("circular title should not be skipped")
	}
	if !b.skipPath("https://erecruitment.bb.org.bd/onlineapp/index.php") {
		t.Fatalf("portal index should be skipped")
	}
}
