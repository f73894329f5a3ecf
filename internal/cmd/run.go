package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/nhasan/jobwatch/internal/config"
	"github.com/nhasan/jobwatch/internal/export"
	"github.com/nhasan/jobwatch/internal/network"
	"github.com/nhasan/jobwatch/internal/runner"
	"github.com/nhasan/jobwatch/internal/scraper"
	"github.com/nhasan/jobwatch/internal/store"
)

type RunCmd struct {
	Sources     string `help:"Comma-separated list of sources (default: all)." default:"all"`
	Proxies     string `help:"Comma-separated proxy URLs." env:"JOBWATCH_PROXIES"`
	DetailLimit int    `help:"Max detail-page fetches per source."`
	Concurrency int    `help:"Concurrent sources."`
	Format      string `help:"Output format for new jobs: csv, json, md." enum:",csv,json,md" default:""`
	Links       string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output      string `name:"output" short:"o" help:"Write new jobs to a file."`
}

func (r *RunCmd) Run(ctx *Context) error {
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	scrapers, err := buildScrapers(ctx, r.Sources, r.Proxies, r.DetailLimit)
	if err != nil {
		return err
	}

	stopIndicator := startRunIndicator(ctx)
	if stopIndicator != nil {
		defer stopIndicator()
	}

	result, err := runner.Run(context.Background(), scrapers, db, ctx.Logger, runner.Options{
		Concurrency: defaultInt(r.Concurrency, ctx.Config.Concurrency),
	})
	if stopIndicator != nil {
		stopIndicator()
	}
	if err != nil {
		return err
	}

	format, err := resolveFormat(ctx, r.Format, r.Output)
	if err != nil {
		return err
	}

	writer := ctx.Out
	if r.Output != "" {
		file, err := os.Create(r.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	if err := export.WriteJobs(writer, result.NewJobs, format, writeOptions(ctx, writer, r.Links)); err != nil {
		return err
	}

	printRunSummary(ctx, result.Stats)
	return nil
}

// openStore resolves the database path and opens it, creating the config
// dir on first use.
func openStore(ctx *Context) (*store.SQLiteStore, error) {
	path, err := ctx.Config.ResolveDBPath()
	if err != nil {
		return nil, err
	}
	if dir := ctx.ConfigDir; dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return store.NewSQLiteStore(path)
}

// buildScrapers loads proxies, builds the registry and narrows it to the
// requested sources.
func buildScrapers(ctx *Context, sourcesArg string, proxiesFlag string, detailLimit int) (map[string]scraper.Scraper, error) {
	proxies, err := config.LoadProxies(proxiesFlag)
	if err != nil {
		return nil, err
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, 10*time.Minute)
		if err != nil {
			return nil, err
		}
	}

	registry, err := scraper.Registry(rotator, scraper.Options{
		DetailFetchLimit: defaultInt(detailLimit, ctx.Config.DetailFetchLimit),
		Logger:           ctx.Logger,
	})
	if err != nil {
		return nil, err
	}

	requested := scraper.NormalizeSources(strings.Split(sourcesArg, ","))
	if len(requested) == 0 || (len(requested) == 1 && requested[0] == "all") {
		return registry, nil
	}

	selected := make(map[string]scraper.Scraper, len(requested))
	for _, source := range requested {
		sc, ok := registry[source]
		if !ok {
			return nil, fmt.Errorf("unknown source: %s", source)
		}
		selected[source] = sc
	}
	return selected, nil
}

func printRunSummary(ctx *Context, stats runner.Stats) {
	if ctx == nil || ctx.Err == nil {
		return
	}
	_, _ = fmt.Fprintf(ctx.Err, "%s\n", formatRunSummary(stats))
}

func formatRunSummary(stats runner.Stats) string {
	if len(stats.BySource) == 0 {
		return "summary: new=0 existing=0 errors=0 by_source=none"
	}

	sources := make([]string, 0, len(stats.BySource))
	for source := range stats.BySource {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	parts := make([]string, 0, len(sources))
	for _, source := range sources {
		parts = append(parts, fmt.Sprintf("%s:%d", source, stats.BySource[source].New))
	}

	return fmt.Sprintf("summary: new=%d existing=%d errors=%d by_source=%s",
		stats.New, stats.Existing, stats.Errors, strings.Join(parts, ", "))
}

func startRunIndicator(ctx *Context) func() {
	if ctx == nil || ctx.Err == nil || ctx.UI == nil {
		return nil
	}
	if !isTTY(ctx.Err) {
		return nil
	}

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		start := time.Now()
		frames := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		index := 0

		for {
			select {
			case <-done:
				fmt.Fprint(ctx.Err, "\r\033[2K")
				return
			case <-ticker.C:
				seconds := int(time.Since(start).Seconds())
				frame := frames[index%len(frames)]
				fmt.Fprintf(ctx.Err, "\r\033[2KScraping... %ds %s", seconds, frame)
				index++
			}
		}
	}()

	var once bool
	return func() {
		if once {
			return
		}
		once = true
		close(done)
		<-stopped
	}
}
