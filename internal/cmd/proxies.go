package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"

	"github.com/nhasan/jobwatch/internal/config"
	"github.com/nhasan/jobwatch/internal/network"
)

type ProxiesCmd struct {
	Check ProxyCheckCmd `cmd:"" help:"Validate proxies against a career site."`
}

type ProxyCheckCmd struct {
	Target  string `help:"URL to fetch through each proxy." default:"https://career.cefalo.com/"`
	File    string `help:"Proxy list file (one proxy per line)."`
	Timeout int    `help:"Per-proxy timeout in seconds." default:"15"`
}

type proxyResult struct {
	Proxy     string `json:"proxy"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func (p *ProxyCheckCmd) Run(ctx *Context) error {
	proxies, err := config.LoadProxies(p.File)
	if err != nil {
		return err
	}
	if len(proxies) == 0 {
		return fmt.Errorf("no proxies configured")
	}

	timeout := time.Duration(p.Timeout) * time.Second
	results := make([]proxyResult, 0, len(proxies))
	for _, proxy := range proxies {
		results = append(results, p.checkOne(proxy, timeout))
	}
	return writeProxyResults(ctx, results)
}

func (p *ProxyCheckCmd) checkOne(proxy string, timeout time.Duration) proxyResult {
	rotator, err := network.NewRotator([]string{proxy}, 5*time.Minute)
	if err != nil {
		return proxyResult{Proxy: proxy, Status: "error", Error: err.Error()}
	}
	client, err := network.NewClient(rotator)
	if err != nil {
		return proxyResult{Proxy: proxy, Status: "error", Error: err.Error()}
	}
	req, err := fhttp.NewRequest(fhttp.MethodGet, p.Target, nil)
	if err != nil {
		return proxyResult{Proxy: proxy, Status: "error", Error: err.Error()}
	}

	reqCtx, cancel := context.WithTimeout(req.Context(), timeout)
	defer cancel()

	start := time.Now()
	resp, err := client.Do(req.WithContext(reqCtx))
	if err != nil {
		return proxyResult{Proxy: proxy, Status: "error", Error: err.Error()}
	}
	_ = resp.Body.Close()

	return proxyResult{
		Proxy:     proxy,
		Status:    fmt.Sprintf("%d", resp.StatusCode),
		LatencyMS: time.Since(start).Milliseconds(),
	}
}

func writeProxyResults(ctx *Context, results []proxyResult) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if ctx.PlainText {
		for _, res := range results {
			fields := []string{res.Proxy, res.Status, fmt.Sprintf("%d", res.LatencyMS), res.Error}
			fmt.Fprintln(ctx.Out, strings.Join(fields, "\t"))
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "proxy\tstatus\tlatency_ms\terror")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", res.Proxy, res.Status, res.LatencyMS, res.Error)
	}
	return tw.Flush()
}
