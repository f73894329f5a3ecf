package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nhasan/jobwatch/internal/runner"
	"github.com/nhasan/jobwatch/internal/scheduler"
)

type WatchCmd struct {
	Sources     string `help:"Comma-separated list of sources (default: all)." default:"all"`
	Proxies     string `help:"Comma-separated proxy URLs." env:"JOBWATCH_PROXIES"`
	Interval    int    `help:"Hours between discovery passes."`
	Concurrency int    `help:"Concurrent sources."`
}

// Run keeps a discovery loop alive until interrupted. Each pass reopens
// nothing: the store and scrapers are built once and shared.
func (w *WatchCmd) Run(ctx *Context) error {
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	scrapers, err := buildScrapers(ctx, w.Sources, w.Proxies, 0)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pass := func(passCtx context.Context) error {
		result, err := runner.Run(passCtx, scrapers, db, ctx.Logger, runner.Options{
			Concurrency: defaultInt(w.Concurrency, ctx.Config.Concurrency),
		})
		if err != nil {
			return err
		}
		printRunSummary(ctx, result.Stats)
		return nil
	}

	sched := scheduler.New(pass, defaultInt(w.Interval, ctx.Config.WatchInterval), ctx.Logger)
	if err := sched.Start(runCtx); err != nil {
		return err
	}
	defer sched.Stop()

	<-runCtx.Done()
	return nil
}
