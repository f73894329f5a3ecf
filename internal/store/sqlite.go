// Package store persists jobs and digest subscriptions in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nhasan/jobwatch/internal/models"
)

// SQLiteStore backs the pipeline with a single SQLite file. Jobs are keyed
// by unique URL; the pipeline never deletes rows.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the
// schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS jobs (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		source           TEXT NOT NULL,
		company          TEXT NOT NULL,
		title            TEXT NOT NULL,
		url              TEXT NOT NULL UNIQUE,
		description      TEXT NOT NULL DEFAULT '',
		requirements     TEXT NOT NULL DEFAULT '',
		location         TEXT NOT NULL DEFAULT '',
		job_type         TEXT NOT NULL DEFAULT '',
		experience_level TEXT NOT NULL DEFAULT '',
		posted_at        DATETIME,
		deadline         DATETIME,
		salary           TEXT NOT NULL DEFAULT '',
		tags             TEXT NOT NULL DEFAULT '',
		is_active        INTEGER NOT NULL DEFAULT 1,
		created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs(company);
	CREATE INDEX IF NOT EXISTS idx_jobs_active ON jobs(is_active);
	CREATE TABLE IF NOT EXISTS subscriptions (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		email     TEXT NOT NULL UNIQUE,
		companies TEXT NOT NULL DEFAULT '',
		keywords  TEXT NOT NULL DEFAULT '',
		active    INTEGER NOT NULL DEFAULT 1
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// FindByURL returns the stored job for a URL, or nil when none exists.
func (s *SQLiteStore) FindByURL(ctx context.Context, url string) (*models.Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE url = ?`, url)
	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding job by url %s: %w", url, err)
	}
	return job, nil
}

// Insert stores a never-seen listing as an active job and returns the row.
func (s *SQLiteStore) Insert(ctx context.Context, listing models.Listing) (*models.Job, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (source, company, title, url, description, requirements,
			location, job_type, experience_level, posted_at, deadline, salary,
			tags, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		listing.Source, listing.Company, listing.Title, listing.URL,
		listing.Description, listing.Requirements, listing.Location,
		listing.JobType, listing.ExperienceLevel,
		nullableTime(listing.PostedAt), nullableTime(listing.Deadline),
		listing.Salary, joinTags(listing.Tags), now, now)
	if err != nil {
		return nil, fmt.Errorf("inserting job %s: %w", listing.URL, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading insert id for %s: %w", listing.URL, err)
	}

	job := listingToJob(listing)
	job.ID = id
	job.IsActive = true
	job.CreatedAt = now
	job.UpdatedAt = now
	return &job, nil
}

// Refresh updates the mutable fields of an existing row and forces it
// active again.
func (s *SQLiteStore) Refresh(ctx context.Context, id int64, listing models.Listing) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE jobs SET title = ?, description = ?, requirements = ?,
			location = ?, job_type = ?, experience_level = ?,
			posted_at = COALESCE(?, posted_at), deadline = COALESCE(?, deadline),
			salary = ?, tags = ?, is_active = 1, updated_at = ?
		WHERE id = ?`,
		listing.Title, listing.Description, listing.Requirements,
		listing.Location, listing.JobType, listing.ExperienceLevel,
		nullableTime(listing.PostedAt), nullableTime(listing.Deadline),
		listing.Salary, joinTags(listing.Tags), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("refreshing job %d: %w", id, err)
	}
	return nil
}

// ListOptions filter List.
type ListOptions struct {
	Company    string
	Source     string
	ActiveOnly bool
	Limit      int
}

// List returns jobs, newest first.
func (s *SQLiteStore) List(ctx context.Context, opts ListOptions) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	var clauses []string
	var args []any

	if opts.Company != "" {
		clauses = append(clauses, "company = ? COLLATE NOCASE")
		args = append(args, opts.Company)
	}
	if opts.Source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, opts.Source)
	}
	if opts.ActiveOnly {
		clauses = append(clauses, "is_active = 1")
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning job row: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// AddSubscription registers or replaces a subscriber's preferences.
func (s *SQLiteStore) AddSubscription(ctx context.Context, sub models.Subscription) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscriptions (email, companies, keywords, active)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(email) DO UPDATE SET
			companies = excluded.companies,
			keywords = excluded.keywords,
			active = 1`,
		sub.Email, joinTags(sub.Companies), joinTags(sub.Keywords))
	if err != nil {
		return fmt.Errorf("adding subscription for %s: %w", sub.Email, err)
	}
	return nil
}

// Subscriptions returns all active subscriptions.
func (s *SQLiteStore) Subscriptions(ctx context.Context) ([]models.Subscription, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, companies, keywords, active
		FROM subscriptions WHERE active = 1 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []models.Subscription
	for rows.Next() {
		var sub models.Subscription
		var companies, keywords string
		var active int
		if err := rows.Scan(&sub.ID, &sub.Email, &companies, &keywords, &active); err != nil {
			return nil, fmt.Errorf("scanning subscription row: %w", err)
		}
		sub.Companies = splitTags(companies)
		sub.Keywords = splitTags(keywords)
		sub.Active = active == 1
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const jobColumns = `id, source, company, title, url, description, requirements,
	location, job_type, experience_level, posted_at, deadline, salary, tags,
	is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*models.Job, error) {
	var job models.Job
	var postedAt, deadline sql.NullTime
	var tags string
	var active int

	err := row.Scan(&job.ID, &job.Source, &job.Company, &job.Title, &job.URL,
		&job.Description, &job.Requirements, &job.Location, &job.JobType,
		&job.ExperienceLevel, &postedAt, &deadline, &job.Salary, &tags,
		&active, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if postedAt.Valid {
		t := postedAt.Time
		job.PostedAt = &t
	}
	if deadline.Valid {
		t := deadline.Time
		job.Deadline = &t
	}
	job.Tags = splitTags(tags)
	job.IsActive = active == 1
	return &job, nil
}

func listingToJob(listing models.Listing) models.Job {
	return models.Job{
		Source:          listing.Source,
		Company:         listing.Company,
		Title:           listing.Title,
		URL:             listing.URL,
		Description:     listing.Description,
		Requirements:    listing.Requirements,
		Location:        listing.Location,
		JobType:         listing.JobType,
		ExperienceLevel: listing.ExperienceLevel,
		PostedAt:        listing.PostedAt,
		Deadline:        listing.Deadline,
		Salary:          listing.Salary,
		Tags:            listing.Tags,
	}
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
