package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/nhasan/jobwatch/internal/scraper"
)

type SourcesCmd struct{}

func (s *SourcesCmd) Run(ctx *Context) error {
	registry, err := scraper.Registry(nil, scraper.Options{Logger: ctx.Logger})
	if err != nil {
		return err
	}

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(names)
	}
	for _, name := range names {
		fmt.Fprintln(ctx.Out, name)
	}
	return nil
}
