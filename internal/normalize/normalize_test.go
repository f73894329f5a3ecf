package normalize

import (
	"testing"
	"time"
)

func TestExperienceLevel_TierPriority(t *testing.T) {
	cases := []struct {
		title string
		desc  string
		want  string
	}{
		{"Senior Software Engineer", "", LevelSenior},
		{"Sr. Backend Developer", "", LevelSenior},
		{"Principal Architect", "", LevelSenior},
		{"Mid Level Developer", "", LevelMid},
		{"Associate Engineer", "", LevelMid},
		{"Junior QA Engineer", "", LevelJunior},
		{"Software Engineer", "open to fresh graduates", LevelJunior},
		{"Software Engineer Intern", "", LevelIntern},
		{"Trainee Developer", "", LevelIntern},
		{"Platform Engineer", "", LevelNotSpecified},
		// Higher tier wins when several keywords appear.
		{"Senior Intern Coordinator", "", LevelSenior},
		{"Lead Junior Trainer", "", LevelSenior},
	}

	for _, tc := range cases {
		got := ExperienceLevel(tc.title, tc.desc)
		if got != tc.want {
			t.Fatalf("ExperienceLevel(%q, %q) = %q, want %q", tc.title, tc.desc, got, tc.want)
		}
	}
}

func TestParseDeadline(t *testing.T) {
	cases := []struct {
		text string
		want time.Time
	}{
		{"Application Deadline: 14 December, 2025", time.Date(2025, 12, 14, 0, 0, 0, 0, time.UTC)},
		{"Apply before 3 Jan 2026", time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)},
		{"Last date 10/02/2026", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
		{"deadline 05-11-2025", time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)},
		{"closes 7/6/26", time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, ok := ParseDeadline(tc.text)
		if !ok {
			t.Fatalf("ParseDeadline(%q) returned ok=false", tc.text)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseDeadline(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestParseDeadline_NoDate(t *testing.T) {
	for _, text := range []string{"", "Rolling basis", "Apply as soon as possible"} {
		if _, ok := ParseDeadline(text); ok {
			t.Fatalf("ParseDeadline(%q) should not find a date", text)
		}
	}
}

func TestCleanText(t *testing.T) {
	got := CleanText("  Senior&nbsp;Engineer \n\t (Backend)  ")
	if got != "Senior Engineer (Backend)" {
		t.Fatalf("unexpected clean text: %q", got)
	}
}

func TestResolveURL(t *testing.T) {
	cases := []struct {
		href string
		want string
	}{
		{"/job/backend-engineer", "https://career.example.com/job/backend-engineer"},
		{"https://other.com/a", "https://other.com/a"},
		{"//cdn.example.com/job/1", "https://cdn.example.com/job/1"},
		{"", ""},
	}

	for _, tc := range cases {
		got := ResolveURL("https://career.example.com/", tc.href)
		if got != tc.want {
			t.Fatalf("ResolveURL(%q) = %q, want %q", tc.href, got, tc.want)
		}
	}
}

func TestStripTracking(t *testing.T) {
	got := StripTracking("https://www.linkedin.com/jobs/view/123?refId=abc&trackingId=def")
	if got != "https://www.linkedin.com/jobs/view/123" {
		t.Fatalf("unexpected stripped URL: %q", got)
	}
	if StripTracking("https://example.com/job/1") != "https://example.com/job/1" {
		t.Fatalf("clean URL should pass through unchanged")
	}
}

func TestValidJobURL(t *testing.T) {
	valid := []string{
		"https://career.cefalo.com/job/backend-engineer",
		"http://example.com/vacancy/12",
	}
	invalid := []string{
		"",
		"#",
		"#apply",
		"javascript:void(0)",
		"mailto:hr@example.com",
		"tel:+880123456",
		"/job/backend-engineer",
		"https://example.com/careers#",
		"https://example.com/#openings",
	}

	for _, raw := range valid {
		if !ValidJobURL(raw) {
			t.Fatalf("expected valid: %q", raw)
		}
	}
	for _, raw := range invalid {
		if ValidJobURL(raw) {
			t.Fatalf("expected invalid: %q", raw)
		}
	}
}

func TestPlausibleTitle(t *testing.T) {
	if PlausibleTitle("Careers", nil) {
		t.Fatalf("nav label should not be plausible")
	}
	if PlausibleTitle("Apply Now", nil) {
		t.Fatalf("call-to-action label should not be plausible")
	}
	if !PlausibleTitle("QA Lead", nil) {
		t.Fatalf("short title with role keyword should be plausible")
	}
	if !PlausibleTitle("Head of People Operations", nil) {
		t.Fatalf("long title without role keyword should be plausible")
	}
	if PlausibleTitle("Read More About Our Projects", []string{"read more"}) {
		t.Fatalf("extra deny list should reject")
	}
}

func TestJobDetailPath(t *testing.T) {
	if !JobDetailPath("https://bjitgroup.com/career/senior-engineer") {
		t.Fatalf("career path should match")
	}
	if JobDetailPath("https://bjitgroup.com/services") {
		t.Fatalf("services path should not match")
	}
}
