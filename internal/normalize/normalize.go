// Package normalize holds the pure routines shared by every scraper:
// experience-level inference, deadline parsing, URL canonicalization and the
// job-link plausibility checks. Nothing here touches the network.
package normalize

import (
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	LevelSenior       = "Senior"
	LevelMid          = "Mid-Level"
	LevelJunior       = "Junior"
	LevelIntern       = "Intern"
	LevelNotSpecified = "Not Specified"
)

// experienceTiers are checked in order; the first tier with a keyword hit
// wins, so "Senior Intern Coordinator" resolves to Senior.
var experienceTiers = []struct {
	level    string
	keywords []string
}{
	{LevelSenior, []string{"senior", "sr.", "lead", "principal", "staff"}},
	{LevelMid, []string{"mid", "intermediate", "associate"}},
	{LevelJunior, []string{"junior", "jr.", "entry", "fresher", "fresh"}},
	{LevelIntern, []string{"intern", "trainee"}},
}

// ExperienceLevel infers a seniority tier from a title and optional
// description. The result is a hint, never authoritative.
func ExperienceLevel(title string, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, tier := range experienceTiers {
		for _, keyword := range tier.keywords {
			if strings.Contains(text, keyword) {
				return tier.level
			}
		}
	}
	return LevelNotSpecified
}

var (
	longMonthPattern  = regexp.MustCompile(`(?i)(\d{1,2})\s+(January|February|March|April|May|June|July|August|September|October|November|December),?\s+(\d{4})`)
	shortMonthPattern = regexp.MustCompile(`(?i)(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*,?\s+(\d{4})`)
	numericPattern    = regexp.MustCompile(`(\d{1,2})([-/])(\d{1,2})[-/](\d{2,4})`)
)

// ParseDeadline extracts a calendar date from free text. It tries a
// "14 December, 2025" pattern first (full then abbreviated month names),
// then numeric day-month-year with "-" or "/" separators. Unparsable text
// yields ok=false, never an error.
func ParseDeadline(text string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}

	if m := longMonthPattern.FindStringSubmatch(text); m != nil {
		if ts, err := time.Parse("2 January 2006", m[1]+" "+monthName(m[2])+" "+m[3]); err == nil {
			return ts, true
		}
	}
	if m := shortMonthPattern.FindStringSubmatch(text); m != nil {
		if ts, err := time.Parse("2 Jan 2006", m[1]+" "+monthName(m[2])+" "+m[3]); err == nil {
			return ts, true
		}
	}
	if m := numericPattern.FindStringSubmatch(text); m != nil {
		layout := "2" + m[2] + "1" + m[2] + "2006"
		if len(m[4]) == 2 {
			layout = "2" + m[2] + "1" + m[2] + "06"
		}
		if ts, err := time.Parse(layout, m[1]+m[2]+m[3]+m[2]+m[4]); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}

// monthName folds a case-insensitive month match into time.Parse form.
func monthName(raw string) string {
	return strings.ToUpper(raw[:1]) + strings.ToLower(raw[1:])
}

// CleanText unescapes HTML entities and collapses all whitespace runs.
func CleanText(value string) string {
	value = html.UnescapeString(value)
	return strings.Join(strings.Fields(value), " ")
}

// ResolveURL makes href absolute against base. Already-absolute and
// protocol-relative references pass through.
func ResolveURL(base string, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

// StripTracking drops the query string and fragment so the same posting
// reached through different campaigns dedupes to one URL across runs.
func StripTracking(raw string) string {
	if idx := strings.IndexAny(raw, "?#"); idx >= 0 {
		return raw[:idx]
	}
	return raw
}

// ValidJobURL reports whether raw is an absolute http(s) address that could
// point at a job posting. Fragment-only and scripted links are rejected; a
// listing without a real link is dropped, never given an invented one.
func ValidJobURL(raw string) bool {
	if raw == "" {
		return false
	}
	lower := strings.ToLower(raw)
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "#"} {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	if strings.HasSuffix(raw, "#") || strings.Contains(raw, "/#") {
		return false
	}
	return true
}

// roleKeywords mark anchor text as a probable job title.
var roleKeywords = []string{
	"engineer", "developer", "programmer", "designer", "architect",
	"analyst", "consultant", "officer", "specialist", "manager",
	"lead", "intern", "trainee", "executive",
}

// navTitles are anchor texts that are never job postings, shared by all
// scrapers; adapters add their own on top.
var navTitles = []string{
	"home", "about", "about us", "contact", "contact us", "careers",
	"career", "jobs", "apply", "apply now", "login", "register",
	"learn more", "read more", "view all", "submit", "send", "join us",
	"privacy policy", "terms", "sitemap", "faq", "help", "blog", "news",
}

const minPlausibleTitleLen = 10

// PlausibleTitle reports whether anchor text looks like a job title: not a
// known navigation label, and either carrying a role keyword or long enough
// to be a real position name.
func PlausibleTitle(text string, extraDeny []string) bool {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	if cleaned == "" {
		return false
	}
	for _, deny := range navTitles {
		if cleaned == deny {
			return false
		}
	}
	for _, deny := range extraDeny {
		if strings.Contains(cleaned, strings.ToLower(deny)) {
			return false
		}
	}
	for _, keyword := range roleKeywords {
		if strings.Contains(cleaned, keyword) {
			return true
		}
	}
	return len(cleaned) >= minPlausibleTitleLen
}

// HasRoleKeyword reports whether text names a role outright. Used by the
// keyword-only fallback strategy, which accepts no other evidence.
func HasRoleKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range roleKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// jobPathMarkers identify job detail pages across the monitored sources.
var jobPathMarkers = []string{
	"/job/", "/jobs/", "/career/", "/careers/", "/position/",
	"/vacancy/", "/opening/", "/openings/", "/postings/", "jobdetails",
}

// JobDetailPath reports whether a URL's path looks like a job detail page.
func JobDetailPath(raw string) bool {
	lower := strings.ToLower(raw)
	for _, marker := range jobPathMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
