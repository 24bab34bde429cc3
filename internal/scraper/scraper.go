package scraper

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pfrederiksen/monoid-roster/internal/logger"
	"github.com/pfrederiksen/monoid-roster/internal/roster"
)

const (
	SolversURL   = "http://monoid.mathematik.uni-mainz.de/loeser.php"
	UserAgent    = "monoid-roster/1.0 (github.com/pfrederiksen/monoid-roster)"
	Timeout      = 30 * time.Second
	MaxRedirects = 10
)

// Scraper fetches the solver page from the Monoid website. A Scraper
// belongs to the caller that created it and is not meant to be shared.
type Scraper struct {
	client *resty.Client
	url    string
}

// New creates a Scraper for the given page URL. An empty URL selects
// SolversURL.
func New(url string) *Scraper {
	if url == "" {
		url = SolversURL
	}

	client := resty.New().
		SetTimeout(Timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(MaxRedirects)).
		SetHeader("User-Agent", UserAgent)

	return &Scraper{
		client: client,
		url:    url,
	}
}

// URL returns the page the scraper fetches.
func (s *Scraper) URL() string {
	return s.url
}

// FetchLatest downloads the raw page. Redirects are followed. Every
// transport or HTTP failure is reported as ErrFetchFailed.
func (s *Scraper) FetchLatest(ctx context.Context) ([]byte, error) {
	start := time.Now()
	defer func() {
		logger.RecordTiming("scraper.fetch", time.Since(start))
	}()

	resp, err := s.client.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		logger.IncrCounter("scraper.fetch.errors")
		return nil, fmt.Errorf("%w: fetching page: %v", ErrFetchFailed, err)
	}

	if !resp.IsSuccess() {
		logger.IncrCounter("scraper.fetch.errors")
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrFetchFailed, resp.StatusCode())
	}

	logger.Debug("Fetched solver page", logger.Fields{
		"url":   s.url,
		"bytes": len(resp.Body()),
	})

	return resp.Body(), nil
}

// FetchTable downloads the solver page and extracts its nested roster table.
func (s *Scraper) FetchTable(ctx context.Context) (*roster.Table, error) {
	data, err := s.FetchLatest(ctx)
	if err != nil {
		return nil, err
	}

	headers, rows, err := ParseWebsite(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing website data: %w", err)
	}

	return roster.NewTable(headers, rows), nil
}
