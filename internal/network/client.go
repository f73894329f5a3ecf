package network

import (
	"context"
	"math/rand"
	"net/url"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// fetchTimeoutSeconds bounds every request; exceeding it surfaces as a
// transport error, never a hang.
const fetchTimeoutSeconds = 30

const (
	acceptHTML     = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguage = "en-US,en;q=0.9"
)

// Client wraps a browser-profile HTTP client. Career sites and job boards
// routinely reject default Go TLS fingerprints, so requests go out looking
// like Chrome with a rotating user agent.
type Client struct {
	http    tls_client.HttpClient
	rotator *Rotator
	rand    *rand.Rand
}

// NewClient builds a client with redirects, a cookie jar and the bounded
// timeout. rotator may be nil when no proxies are configured.
func NewClient(rotator *Rotator) (*Client, error) {
	jar, _ := fhttpcookiejar.New(nil)

	httpClient, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(fetchTimeoutSeconds),
		tls_client.WithCookieJar(jar),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:    httpClient,
		rotator: rotator,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Get issues a browser-shaped GET. An empty accept falls back to the
// standard HTML accept header.
func (c *Client) Get(ctx context.Context, target string, accept string) (*fhttp.Response, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if accept == "" {
		accept = acceptHTML
	}
	req.Header.Set("accept", accept)
	req.Header.Set("accept-language", acceptLanguage)
	return c.Do(req)
}

// Do sends a prepared request, filling in a random user agent and the
// current proxy when one is configured.
func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	proxy := c.rotateProxy()
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgents[c.rand.Intn(len(userAgents))])
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if proxy != nil {
		c.rotator.Report(proxy, resp.StatusCode)
	}
	return resp, nil
}

// rotateProxy installs the next usable proxy on the transport. A nil
// return means the request goes out direct.
func (c *Client) rotateProxy() *url.URL {
	if c.rotator == nil {
		return nil
	}
	proxy, err := c.rotator.Next()
	if err != nil || proxy == nil {
		return nil
	}
	_ = c.http.SetProxy(proxy.String())
	return proxy
}
