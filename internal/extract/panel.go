// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
)

// DefaultPanelSelector locates the vital-statistics card of an encyclopedia
// biography page.
const DefaultPanelSelector = ".infobox.vcard"

// Selectors inside the page and its info panel.
const (
	titleSelector         = "span.mw-page-title-main"
	headingSelector       = "#firstHeading"
	fullNameSelector      = "td.infobox-data.nickname"
	birthDateSelector     = "span.bday"
	ageSelector           = "span.noprint.ForceAgeToShow"
	birthplaceSelector    = "td.infobox-data.birthplace"
	roleSelector          = "td.infobox-data.role"
	orgSelector           = "td.infobox-data.org"
	teamCellSelector      = ".infobox-data.infobox-data-a"
	appsCellSelector      = ".infobox-data.infobox-data-b"
	goalsCellSelector     = ".infobox-data.infobox-data-c"
	panelHeaderSelector   = ".infobox-header"
	internationalCareerKw = "international career"
)

var (
	// ErrNoPanel signals that a page carries no info panel and therefore no
	// extractable record. Callers skip the page.
	ErrNoPanel = errors.New("page has no player info panel")

	// ErrMalformedNumber marks a numeric cell that is neither a placeholder
	// nor an integer.
	ErrMalformedNumber = errors.New("malformed numeric text")

	// ErrMalformedTable marks an affiliation table whose columns do not line up.
	ErrMalformedTable = errors.New("malformed affiliation table")
)

// LocatePanel returns the first element matching selector, or ErrNoPanel.
// An empty selector means DefaultPanelSelector.
func LocatePanel(doc *goquery.Document, selector string) (*goquery.Selection, error) {
	if doc == nil {
		return nil, ErrNoPanel
	}
	if selector == "" {
		selector = DefaultPanelSelector
	}
	panel := doc.Find(selector).First()
	if panel.Length() == 0 {
		return nil, ErrNoPanel
	}
	return panel, nil
}

// cellText returns the text of the first match of selector under s and
// whether one was found.
func cellText(s *goquery.Selection, selector string) (string, bool) {
	cell := s.Find(selector).First()
	if cell.Length() == 0 {
		return "", false
	}
	return cell.Text(), true
}
