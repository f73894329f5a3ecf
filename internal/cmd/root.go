package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version   VersionCmd   `cmd:"" help:"Print version."`
	Config    ConfigCmd    `cmd:"" help:"Manage configuration."`
	Run       RunCmd       `cmd:"" help:"Run one discovery pass over the sources."`
	Watch     WatchCmd     `cmd:"" help:"Run discovery on a schedule."`
	Jobs      JobsCmd      `cmd:"" help:"List stored jobs."`
	Subscribe SubscribeCmd `cmd:"" help:"Register digest preferences for an email."`
	Digest    DigestCmd    `cmd:"" help:"Show matching jobs per subscription."`
	Sources   SourcesCmd   `cmd:"" help:"List monitored sources."`
	Proxies   ProxiesCmd   `cmd:"" help:"Proxy utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}
