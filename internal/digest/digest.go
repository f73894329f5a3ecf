// Package digest matches persisted jobs against subscriber preferences.
package digest

import (
	"strings"

	"github.com/nhasan/jobwatch/internal/models"
)

// Matching filters jobs down to the ones a subscription cares about. No
// companies and no keywords means the subscriber takes everything.
// Otherwise a job matches on company equality (case-insensitive) or on any
// keyword appearing in its title, description or requirements.
func Matching(jobs []models.Job, sub models.Subscription) []models.Job {
	if len(sub.Companies) == 0 && len(sub.Keywords) == 0 {
		return append([]models.Job(nil), jobs...)
	}

	var matched []models.Job
	for _, job := range jobs {
		if matchesCompany(job, sub.Companies) || matchesKeyword(job, sub.Keywords) {
			matched = append(matched, job)
		}
	}
	return matched
}

func matchesCompany(job models.Job, companies []string) bool {
	for _, company := range companies {
		if strings.EqualFold(strings.TrimSpace(company), job.Company) {
			return true
		}
	}
	return false
}

func matchesKeyword(job models.Job, keywords []string) bool {
	haystack := strings.ToLower(job.Title + " " + job.Description + " " + job.Requirements)
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}
