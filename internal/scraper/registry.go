package scraper

import (
	"strings"

	"github.com/nhasan/jobwatch/internal/network"
	"github.com/rs/zerolog"
)

const (
	SourceCefalo         = "cefalo"
	SourceKaz            = "kaz"
	SourceSelise         = "selise"
	SourceEnosis         = "enosis"
	SourceBJIT           = "bjit"
	SourceSamsung        = "samsung"
	SourceTherap         = "therap"
	SourceBrainStation   = "brainstation"
	SourceBangladeshBank = "bangladeshbank"
	SourceA2I            = "a2i"
	SourceChaldal        = "chaldal"
	SourceLinkedIn       = "linkedin"
)

// defaultLocation applies when a source does not state one.
const defaultLocation = "Dhaka, Bangladesh"

// Options carries the per-run knobs shared by all scrapers.
type Options struct {
	// DetailFetchLimit caps secondary detail-page fetches per source.
	DetailFetchLimit int
	Logger           zerolog.Logger
}

// Registry builds one scraper per monitored source, each with its own
// client so cookies and proxy state don't bleed between sources.
func Registry(rotator *network.Rotator, opts Options) (map[string]Scraper, error) {
	if opts.DetailFetchLimit <= 0 {
		opts.DetailFetchLimit = 5
	}

	clients := make(map[string]*network.Client, 12)
	for _, source := range []string{
		SourceCefalo, SourceKaz, SourceSelise, SourceEnosis,
		SourceBJIT, SourceSamsung, SourceTherap, SourceBrainStation,
		SourceBangladeshBank, SourceA2I, SourceChaldal, SourceLinkedIn,
	} {
		client, err := network.NewClient(rotator)
		if err != nil {
			return nil, err
		}
		clients[source] = client
	}

	return map[string]Scraper{
		SourceCefalo:         NewCefalo(clients[SourceCefalo], opts),
		SourceKaz:            NewKaz(clients[SourceKaz], opts),
		SourceSelise:         NewSelise(clients[SourceSelise], opts),
		SourceEnosis:         NewEnosis(clients[SourceEnosis], opts),
		SourceBJIT:           NewBJIT(clients[SourceBJIT], opts),
		SourceSamsung:        NewSamsung(clients[SourceSamsung], opts),
		SourceTherap:         NewTherap(clients[SourceTherap], opts),
		SourceBrainStation:   NewBrainStation(clients[SourceBrainStation], opts),
		SourceBangladeshBank: NewBangladeshBank(clients[SourceBangladeshBank], opts),
		SourceA2I:            NewA2I(clients[SourceA2I], opts),
		SourceChaldal:        NewChaldal(clients[SourceChaldal], opts),
		SourceLinkedIn:       NewLinkedIn(clients[SourceLinkedIn], opts),
	}, nil
}

// NormalizeSources lower-cases and trims requested source names.
func NormalizeSources(sources []string) []string {
	out := make([]string, 0, len(sources))
	for _, source := range sources {
		source = strings.ToLower(strings.TrimSpace(source))
		if source == "" {
			continue
		}
		out = append(out, source)
	}
	return out
}
