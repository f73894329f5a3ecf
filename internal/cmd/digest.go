package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nhasan/jobwatch/internal/digest"
	"github.com/nhasan/jobwatch/internal/models"
	"github.com/nhasan/jobwatch/internal/store"
)

type DigestCmd struct {
	Email string `help:"Only this subscriber."`
	Limit int    `help:"Maximum jobs per subscriber." default:"20"`
}

type digestEntry struct {
	Email string       `json:"email"`
	Jobs  []models.Job `json:"jobs"`
}

// Run matches the active job set against every subscription and prints the
// result per subscriber. Delivery stays in the terminal; there is no mail
// transport here.
func (d *DigestCmd) Run(ctx *Context) error {
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	runCtx := context.Background()
	subs, err := db.Subscriptions(runCtx)
	if err != nil {
		return err
	}
	if d.Email != "" {
		filtered := subs[:0]
		for _, sub := range subs {
			if strings.EqualFold(sub.Email, d.Email) {
				filtered = append(filtered, sub)
			}
		}
		subs = filtered
	}
	if len(subs) == 0 {
		ctx.UI.Warnf("No matching subscriptions.")
		return nil
	}

	jobs, err := db.List(runCtx, store.ListOptions{ActiveOnly: true})
	if err != nil {
		return err
	}

	entries := make([]digestEntry, 0, len(subs))
	for _, sub := range subs {
		matched := digest.Matching(jobs, sub)
		if d.Limit > 0 && len(matched) > d.Limit {
			matched = matched[:d.Limit]
		}
		entries = append(entries, digestEntry{Email: sub.Email, Jobs: matched})
	}

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for _, entry := range entries {
		ctx.UI.Infof("%s (%d jobs)", entry.Email, len(entry.Jobs))
		for _, job := range entry.Jobs {
			line := fmt.Sprintf("  %s - %s", job.Company, job.Title)
			if job.URL != "" {
				line += "  " + ctx.UI.LinkText(job.URL)
			}
			fmt.Fprintln(ctx.Out, line)
		}
	}
	return nil
}
