package cmd

import (
	"fmt"
	"strings"

	"github.com/nhasan/jobwatch/internal/config"
)

type ConfigCmd struct {
	Init InitConfigCmd `cmd:"" help:"Write default config and proxies files."`
	Path PathConfigCmd `cmd:"" help:"Print config directory and database location."`
}

type InitConfigCmd struct{}

type PathConfigCmd struct{}

func (c *InitConfigCmd) Run(ctx *Context) error {
	created, err := config.Init()
	if err != nil {
		return err
	}
	if len(created) == 0 {
		ctx.UI.Infof("Config already initialized at %s", ctx.ConfigDir)
		return nil
	}
	ctx.UI.Infof("Created: %s", strings.Join(created, ", "))
	return nil
}

func (c *PathConfigCmd) Run(ctx *Context) error {
	dbPath, err := ctx.Config.ResolveDBPath()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "config: %s\n", ctx.ConfigDir)
	fmt.Fprintf(ctx.Out, "database: %s\n", dbPath)
	return nil
}
