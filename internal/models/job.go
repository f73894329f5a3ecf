package models

import "time"

// Job is a persisted posting, keyed by unique URL. The pipeline only ever
// inserts or refreshes jobs; deactivation is an administrative action that
// happens elsewhere.
type Job struct {
	ID              int64      `json:"id"`
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
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Subscription holds a subscriber's digest preferences. Empty company and
// keyword lists mean the subscriber wants every new job.
type Subscription struct {
	ID        int64    `json:"id"`
	Email     string   `json:"email"`
	Companies []string `json:"companies,omitempty"`
	Keywords  []string `json:"keywords,omitempty"`
	Active    bool     `json:"active"`
}
