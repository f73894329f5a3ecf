// Package export renders job listings as tables, CSV, TSV, JSON or
// markdown for terminals, files and pipes.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/muesli/termenv"

	"github.com/nhasan/jobwatch/internal/models"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

func WriteJobs(w io.Writer, jobs []models.Job, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jobs)
	case FormatCSV:
		return writeDelimited(w, jobs, ',')
	case FormatTSV:
		return writeDelimited(w, jobs, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, jobs)
	default:
		return writeTable(w, jobs, opts)
	}
}

var csvColumns = []string{
	"source", "company", "title", "url", "location", "job_type",
	"experience_level", "salary", "deadline", "posted_at", "tags", "active",
}

func writeDelimited(w io.Writer, jobs []models.Job, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvColumns); err != nil {
		return err
	}
	for _, job := range jobs {
		row := []string{
			job.Source,
			job.Company,
			job.Title,
			job.URL,
			job.Location,
			job.JobType,
			job.ExperienceLevel,
			job.Salary,
			dateString(job.Deadline),
			timestampString(job.PostedAt),
			strings.Join(job.Tags, ";"),
			boolString(job.IsActive),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, jobs []models.Job, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "company\ttitle\tlevel\turl")
	output := termenv.NewOutput(w)
	for _, job := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			safe(job.Company), safe(job.Title), safe(job.ExperienceLevel),
			displayURL(job.URL, output, opts))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, jobs []models.Job) error {
	if len(jobs) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, job := range jobs {
		for _, line := range markdownLines(job) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func markdownLines(job models.Job) []string {
	urlLine := "  URL: -"
	if u := safe(job.URL); u != "" {
		urlLine = fmt.Sprintf("  URL: [Open listing](<%s>)", u)
	}
	lines := []string{
		fmt.Sprintf("- **%s** (%s)", safe(job.Title), safe(job.Company)),
		fmt.Sprintf("  Location: %s", safe(job.Location)),
		fmt.Sprintf("  Source: %s", safe(job.Source)),
		urlLine,
	}
	if job.JobType != "" {
		lines = append(lines, fmt.Sprintf("  Type: %s", safe(job.JobType)))
	}
	if job.ExperienceLevel != "" {
		lines = append(lines, fmt.Sprintf("  Level: %s", safe(job.ExperienceLevel)))
	}
	if job.Salary != "" {
		lines = append(lines, fmt.Sprintf("  Salary: %s", safe(job.Salary)))
	}
	if job.Deadline != nil {
		lines = append(lines, fmt.Sprintf("  Deadline: %s", dateString(job.Deadline)))
	}
	if job.PostedAt != nil {
		lines = append(lines, fmt.Sprintf("  Posted: %s", timestampString(job.PostedAt)))
	}
	if len(job.Tags) > 0 {
		lines = append(lines, fmt.Sprintf("  Tags: %s", strings.Join(job.Tags, ", ")))
	}
	return lines
}

// displayURL renders a listing URL for the table: shortened when asked,
// sky blue when color is on, wrapped in an OSC 8 hyperlink on terminals
// that support them.
func displayURL(raw string, output *termenv.Output, opts WriteOptions) string {
	const linkColor = "#87CEEB"

	u := safe(raw)
	if u == "" {
		return "-"
	}

	display := u
	if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
		display = shortURLLabel(u)
	}
	if opts.ColorEnabled {
		display = output.String(display).Foreground(output.Color(linkColor)).String()
	}
	if opts.Hyperlinks {
		const esc = "\x1b"
		display = esc + "]8;;" + u + esc + "\\" + display + esc + "]8;;" + esc + "\\"
	}
	return display
}

// shortURLLabel collapses a URL to host+path, capped at 60 chars.
func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func timestampString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func boolString(value bool) string {
	if value {
		return "true"
	}
	return "false"
}

func safe(value string) string {
	return strings.TrimSpace(value)
}
