// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads player pages and runs the extractor over them.
// A page without an info panel is skipped and a page that fails to
// download or extract is counted as failed; neither aborts the batch.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/pdiddy/player-scraper/internal/extract"
	"github.com/pdiddy/player-scraper/internal/httputil"
	"github.com/pdiddy/player-scraper/internal/logging"
	"github.com/pdiddy/player-scraper/pkg/types"
)

// Status is the outcome of scraping one page.
type Status string

const (
	StatusScraped Status = "scraped"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// BatchResult holds the outcome of a batch scrape.
type BatchResult struct {
	Scraped int
	Skipped int
	Failed  int

	// Records holds the scraped records in input order.
	Records []types.PlayerRecord
}

// Total returns the number of URLs processed.
func (r BatchResult) Total() int {
	return r.Scraped + r.Skipped + r.Failed
}

// HasFailures reports whether any page failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Scraper fetches pages and extracts player records from them.
type Scraper struct {
	client    *http.Client
	extractor *extract.Extractor
	cfg       types.FetchConfig
	log       *logging.Logger
}

// NewScraper builds a Scraper. A nil client gets one with cfg.Timeout.
func NewScraper(client *http.Client, ex *extract.Extractor, cfg types.FetchConfig, log *logging.Logger) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Scraper{client: client, extractor: ex, cfg: cfg, log: log}
}

// FetchDocument downloads url and parses it. Throttled responses are
// retried; any other non-200 status is an error.
func (s *Scraper) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := httputil.DoWithRetry(ctx, s.client, req, s.cfg.MaxRetries, s.log)
	if err != nil {
		return nil, errors.Wrap(err, "HTTP request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("HTTP %d from %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "parsing page")
	}
	return doc, nil
}

// ScrapePage fetches one page and extracts its record. The returned status
// is StatusSkipped with a nil error when the page has no info panel.
func (s *Scraper) ScrapePage(ctx context.Context, url string) (types.PlayerRecord, Status, error) {
	doc, err := s.FetchDocument(ctx, url)
	if err != nil {
		return types.PlayerRecord{}, StatusFailed, err
	}

	rec, err := s.extractor.Extract(doc)
	switch {
	case errors.Is(err, extract.ErrNoPanel):
		return types.PlayerRecord{}, StatusSkipped, nil
	case err != nil:
		return types.PlayerRecord{}, StatusFailed, err
	}
	rec.URL = url
	return rec, StatusScraped, nil
}

type pageOutcome struct {
	rec    types.PlayerRecord
	status Status
	err    error
}

// ScrapeBatch scrapes every URL, writing one status line per page to w and
// a summary at the end. With one worker pages are fetched in order with
// cfg.Delay between requests; otherwise they are spread over a worker pool.
// Only context cancellation returns an error.
func (s *Scraper) ScrapeBatch(ctx context.Context, urls []string, w io.Writer) (BatchResult, error) {
	outcomes := make([]pageOutcome, len(urls))
	var mu sync.Mutex
	report := func(i int, o pageOutcome) {
		outcomes[i] = o
		mu.Lock()
		defer mu.Unlock()
		writeStatus(w, urls[i], o)
	}

	var err error
	if s.cfg.Workers == 1 {
		err = s.scrapeSerial(ctx, urls, report)
	} else {
		err = s.scrapePooled(ctx, urls, report)
	}

	var result BatchResult
	for _, o := range outcomes {
		switch o.status {
		case StatusScraped:
			result.Scraped++
			result.Records = append(result.Records, o.rec)
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d scraped, %d skipped, %d failed (total: %d)\n",
		result.Scraped, result.Skipped, result.Failed, result.Total())
	return result, err
}

func (s *Scraper) scrapeSerial(ctx context.Context, urls []string, report func(int, pageOutcome)) error {
	for i, url := range urls {
		if i > 0 && s.cfg.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.cfg.Delay):
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, status, err := s.ScrapePage(ctx, url)
		report(i, pageOutcome{rec: rec, status: status, err: err})
	}
	return nil
}

func (s *Scraper) scrapePooled(ctx context.Context, urls []string, report func(int, pageOutcome)) error {
	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return errors.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, url := range urls {
		if ctx.Err() != nil {
			break
		}
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if ctx.Err() != nil {
				return
			}
			rec, status, err := s.ScrapePage(ctx, url)
			report(i, pageOutcome{rec: rec, status: status, err: err})
		}); err != nil {
			workers.Done()
			workers.Wait()
			return errors.Wrap(err, "submit page to worker pool")
		}
	}
	workers.Wait()
	return ctx.Err()
}

func writeStatus(w io.Writer, url string, o pageOutcome) {
	switch o.status {
	case StatusScraped:
		fmt.Fprintf(w, "scraped: %s (%s)\n", url, o.rec.Name)
	case StatusSkipped:
		fmt.Fprintf(w, "skipped: %s (no info panel)\n", url)
	default:
		fmt.Fprintf(w, "failed:  %s (%v)\n", url, o.err)
	}
}
