// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns a parsed encyclopedia player page into a
// types.PlayerRecord.
//
// Every field is read by a pure function over the page's info panel and
// degrades to nil when its cell is missing. The only ordering dependency is
// that the current club is read before the career table is aggregated,
// since it is the aggregation key. A page without an info panel yields
// ErrNoPanel; a numeric cell that is neither a placeholder nor an integer
// fails the whole record. The package does no I/O and keeps no state, so an
// Extractor may be shared across goroutines.
package extract

import (
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/pdiddy/player-scraper/pkg/types"
)

// Extractor assembles player records. The zero value is not usable; call New.
type Extractor struct {
	panelSelector string
	matcher       TeamMatcher
	now           func() time.Time
}

// New builds an Extractor from cfg.
func New(cfg types.ExtractionConfig) (*Extractor, error) {
	m, err := MatcherByName(cfg.TeamMatcher)
	if err != nil {
		return nil, err
	}
	selector := cfg.PanelSelector
	if selector == "" {
		selector = DefaultPanelSelector
	}
	return &Extractor{
		panelSelector: selector,
		matcher:       m,
		now:           time.Now,
	}, nil
}

// WithClock returns a copy of e that reads capture timestamps from now.
func (e *Extractor) WithClock(now func() time.Time) *Extractor {
	c := *e
	c.now = now
	return &c
}

// WithMatcher returns a copy of e that aggregates with m.
func (e *Extractor) WithMatcher(m TeamMatcher) *Extractor {
	c := *e
	c.matcher = m
	return &c
}

// ExtractHTML parses markup from r and extracts a record from it.
func (e *Extractor) ExtractHTML(r io.Reader) (types.PlayerRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return types.PlayerRecord{}, errors.Wrap(err, "parsing page markup")
	}
	return e.Extract(doc)
}

// Extract builds a record from doc. It returns ErrNoPanel when the page has
// no info panel, and an error wrapping ErrMalformedNumber or
// ErrMalformedTable when a numeric cell cannot be read. No partial record
// is returned with an error.
func (e *Extractor) Extract(doc *goquery.Document) (types.PlayerRecord, error) {
	panel, err := LocatePanel(doc, e.panelSelector)
	if err != nil {
		return types.PlayerRecord{}, err
	}

	name := Name(doc)
	rec := types.PlayerRecord{
		Name:        name,
		FullName:    FullName(panel, name),
		DateOfBirth: DateOfBirth(panel),
	}

	rec.Age, err = Age(panel)
	if err != nil {
		return types.PlayerRecord{}, errors.Wrap(err, "reading age")
	}

	rec.PlaceOfBirth, rec.CountryOfBirth = Birthplace(panel)
	rec.Position = Position(panel)
	rec.CurrentClub = CurrentClub(panel)

	totals, err := Aggregate(ScanAffiliations(panel), rec.CurrentClub, e.matcher)
	if err != nil {
		return types.PlayerRecord{}, errors.Wrap(err, "aggregating career table")
	}
	rec.AppearanceCount = totals.Appearances
	rec.GoalCount = totals.Goals
	rec.NationalTeam = totals.NationalTeam

	rec.ScrapedAt = e.now()
	return rec, nil
}
