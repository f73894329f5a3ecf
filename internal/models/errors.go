package models

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable signals a source that cannot be scraped right now
// (CAPTCHA wall, bot detection). It is an empty result, not a failure.
var ErrSourceUnavailable = errors.New("source unavailable")

// FetchError wraps a transport or non-2xx failure for one URL. Scrapers
// recover from it locally; a failed fetch yields zero candidates.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: http %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError wraps a malformed document or JSON payload. Like FetchError it
// is recovered where it occurs; the fetch succeeded but the body was junk.
type ParseError struct {
	URL   string
	Stage string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s (%s): %v", e.URL, e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
