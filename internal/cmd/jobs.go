package cmd

import (
	"context"
	"os"

	"github.com/nhasan/jobwatch/internal/export"
	"github.com/nhasan/jobwatch/internal/store"
)

type JobsCmd struct {
	Company string `help:"Filter by company (case-insensitive)."`
	Source  string `help:"Filter by source."`
	All     bool   `help:"Include inactive jobs."`
	Limit   int    `help:"Maximum rows." default:"50"`
	Format  string `help:"Output format: csv, json, md." enum:",csv,json,md" default:""`
	Links   string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output  string `name:"output" short:"o" help:"Write output to a file."`
}

func (j *JobsCmd) Run(ctx *Context) error {
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	jobs, err := db.List(context.Background(), store.ListOptions{
		Company:    j.Company,
		Source:     j.Source,
		ActiveOnly: !j.All,
		Limit:      j.Limit,
	})
	if err != nil {
		return err
	}

	format, err := resolveFormat(ctx, j.Format, j.Output)
	if err != nil {
		return err
	}

	writer := ctx.Out
	if j.Output != "" {
		file, err := os.Create(j.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	return export.WriteJobs(writer, jobs, format, writeOptions(ctx, writer, j.Links))
}
