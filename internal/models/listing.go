package models

import "time"

// Listing is a candidate job record produced by a scraper before
// reconciliation against the store.
type Listing struct {
	Source          string     `json:"source"`
	Company         string     `json:"company"`
	Title           string     `json:"title"`
	URL             string     `json:"url"`
	Description     string     `json:"description,omitempty"`
	Requirements    string     `json:"requirements,omitempty"`
	Location        string     `json:"location,omitempty"`
	JobType         string     `json:"job_type,omitempty"`
	ExperienceLevel string     `json:"experience_level,omitempty"`
	PostedAt        *time.Time `json:"posted_at,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Salary          string     `json:"salary,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
}

// Valid reports whether the listing carries the minimum fields required for
// reconciliation. URL shape checks are the owning scraper's responsibility;
// this is the last gate before the store.
func (l Listing) Valid() bool {
	return l.Title != "" && l.URL != ""
}

// AddTag appends a tag unless the listing already carries it.
func (l *Listing) AddTag(tag string) {
	if tag == "" {
		return
	}
	for _, existing := range l.Tags {
		if existing == tag {
			return
		}
	}
	l.Tags = append(l.Tags, tag)
}
