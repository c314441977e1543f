// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/player-scraper/internal/extract"
	"github.com/pdiddy/player-scraper/internal/httputil"
	"github.com/pdiddy/player-scraper/internal/logging"
	"github.com/pdiddy/player-scraper/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func playerPage(name, club string, apps, goals int) string {
	return fmt.Sprintf(`<html><body><h1 id="firstHeading"><span class="mw-page-title-main">%s</span></h1>
<table class="infobox vcard"><tbody>
<tr><th>Current team</th><td class="infobox-data org">%s</td></tr>
<tr><th>Position</th><td class="infobox-data role">Forward</td></tr>
<tr><td class="infobox-data infobox-data-a">%s</td><td class="infobox-data infobox-data-b">%d</td><td class="infobox-data infobox-data-c">(%d)</td></tr>
</tbody></table></body></html>`, name, club, club, apps, goals)
}

const listPage = `<html><body><span class="mw-page-title-main">List of clubs</span><p>No panel here.</p></body></html>`

const brokenPage = `<html><body><span class="mw-page-title-main">Broken</span>
<table class="infobox vcard"><tbody>
<tr><td class="infobox-data org">Club A</td></tr>
<tr><td class="infobox-data infobox-data-a">Club A</td><td class="infobox-data infobox-data-b">n/a</td><td class="infobox-data infobox-data-c">(1)</td></tr>
</tbody></table></body></html>`

// newWikiServer serves player pages under /wiki/ keyed by path.
func newWikiServer(t *testing.T, userAgent *atomic.Value) *httptest.Server {
	t.Helper()
	pages := map[string]string{
		"/wiki/Alpha":  playerPage("Alpha", "Club A", 10, 2),
		"/wiki/Beta":   playerPage("Beta", "Club B", 20, 5),
		"/wiki/Gamma":  playerPage("Gamma (footballer)", "Club C", 3, 0),
		"/wiki/List":   listPage,
		"/wiki/Broken": brokenPage,
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userAgent != nil {
			userAgent.Store(r.Header.Get("User-Agent"))
		}
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}))
}

func newTestScraper(t *testing.T, ts *httptest.Server, workers int) *Scraper {
	t.Helper()
	ex, err := extract.New(types.ExtractionConfig{})
	require.NoError(t, err)
	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "player-scraper-test/1.0", MaxRetries: 2},
		Workers:    workers,
	}
	return NewScraper(ts.Client(), ex, cfg, logging.NewNop())
}

func TestScrapePage(t *testing.T) {
	var ua atomic.Value
	ts := newWikiServer(t, &ua)
	defer ts.Close()
	s := newTestScraper(t, ts, 1)

	rec, status, err := s.ScrapePage(context.Background(), ts.URL+"/wiki/Alpha")
	require.NoError(t, err)
	assert.Equal(t, StatusScraped, status)
	assert.Equal(t, ts.URL+"/wiki/Alpha", rec.URL)
	assert.Equal(t, "Alpha", rec.Name)
	require.NotNil(t, rec.AppearanceCount)
	assert.Equal(t, 10, *rec.AppearanceCount)
	assert.Equal(t, "player-scraper-test/1.0", ua.Load())
}

func TestScrapePage_Outcomes(t *testing.T) {
	ts := newWikiServer(t, nil)
	defer ts.Close()
	s := newTestScraper(t, ts, 1)

	tests := []struct {
		path       string
		wantStatus Status
		wantErr    string
	}{
		{"/wiki/List", StatusSkipped, ""},
		{"/wiki/Broken", StatusFailed, "malformed numeric text"},
		{"/wiki/Missing", StatusFailed, "HTTP 404"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, status, err := s.ScrapePage(context.Background(), ts.URL+tt.path)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScrapeBatch(t *testing.T) {
	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			ts := newWikiServer(t, nil)
			defer ts.Close()
			s := newTestScraper(t, ts, workers)

			urls := []string{
				ts.URL + "/wiki/Alpha",
				ts.URL + "/wiki/List",
				ts.URL + "/wiki/Beta",
				ts.URL + "/wiki/Broken",
				ts.URL + "/wiki/Gamma",
			}
			var out bytes.Buffer
			result, err := s.ScrapeBatch(context.Background(), urls, &out)
			require.NoError(t, err)

			assert.Equal(t, 3, result.Scraped)
			assert.Equal(t, 1, result.Skipped)
			assert.Equal(t, 1, result.Failed)
			assert.Equal(t, 5, result.Total())
			assert.True(t, result.HasFailures())

			require.Len(t, result.Records, 3)
			assert.Equal(t, "Alpha", result.Records[0].Name)
			assert.Equal(t, "Beta", result.Records[1].Name)
			assert.Equal(t, "Gamma", result.Records[2].Name)

			text := out.String()
			assert.Contains(t, text, "scraped: "+ts.URL+"/wiki/Alpha (Alpha)")
			assert.Contains(t, text, "skipped: "+ts.URL+"/wiki/List (no info panel)")
			assert.Contains(t, text, "failed:  "+ts.URL+"/wiki/Broken")
			assert.Contains(t, text, "Batch summary: 3 scraped, 1 skipped, 1 failed (total: 5)")
		})
	}
}

func TestScrapeBatch_Cancelled(t *testing.T) {
	ts := newWikiServer(t, nil)
	defer ts.Close()
	s := newTestScraper(t, ts, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	result, err := s.ScrapeBatch(ctx, []string{ts.URL + "/wiki/Alpha"}, &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Total())
}

func TestFetchDocument_RetriesThrottle(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, listPage)
	}))
	defer ts.Close()
	s := newTestScraper(t, ts, 1)

	doc, err := s.FetchDocument(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "List of clubs", doc.Find("span.mw-page-title-main").Text())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestLoadURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.csv")
	content := "url\n\"https://en.wikipedia.org/wiki/Pepe_(footballer,_born_1983)\"\n\n  https://en.wikipedia.org/wiki/Bruno_Fernandes  \n\"https://en.wikipedia.org/wiki/Rafael_Le%C3%A3o\",extra\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	urls, err := LoadURLs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://en.wikipedia.org/wiki/Pepe_(footballer,_born_1983)",
		"https://en.wikipedia.org/wiki/Bruno_Fernandes",
		"https://en.wikipedia.org/wiki/Rafael_Le%C3%A3o",
	}, urls)
}

func TestReadURLs_HeaderOnly(t *testing.T) {
	urls, err := ReadURLs(strings.NewReader("url\n"))
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestLoadURLs_Missing(t *testing.T) {
	_, err := LoadURLs(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
