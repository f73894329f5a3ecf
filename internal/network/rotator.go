package network

import (
	"errors"
	"net/url"
	"sync"
	"time"
)

var ErrNoProxies = errors.New("no proxies available")

// Rotator cycles through configured proxies round-robin, sidelining any
// that answer 403/429 for banDuration. Scrape runs work fine without one;
// it exists for sources that throttle repeat visitors.
type Rotator struct {
	mu          sync.Mutex
	proxies     []*url.URL
	index       int
	banDuration time.Duration
	bans        map[string]time.Time
}

func NewRotator(raw []string, banDuration time.Duration) (*Rotator, error) {
	proxies := make([]*url.URL, 0, len(raw))
	for _, entry := range raw {
		u, err := url.Parse(entry)
		if err != nil {
			return nil, err
		}
		proxies = append(proxies, u)
	}

	return &Rotator{
		proxies:     proxies,
		banDuration: banDuration,
		bans:        map[string]time.Time{},
	}, nil
}

// Next returns the next usable proxy, skipping banned ones. ErrNoProxies
// means none are configured or all are currently banned.
func (r *Rotator) Next() (*url.URL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for range r.proxies {
		proxy := r.proxies[r.index]
		r.index = (r.index + 1) % len(r.proxies)
		if r.usable(proxy) {
			return proxy, nil
		}
	}
	return nil, ErrNoProxies
}

// Report records the response status a proxy produced; throttling statuses
// put it on the ban list.
func (r *Rotator) Report(proxy *url.URL, status int) {
	if proxy == nil || (status != 403 && status != 429) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bans[proxy.String()] = time.Now().Add(r.banDuration)
}

func (r *Rotator) usable(proxy *url.URL) bool {
	until, ok := r.bans[proxy.String()]
	if !ok {
		return true
	}
	if time.Now().After(until) {
		delete(r.bans, proxy.String())
		return true
	}
	return false
}
