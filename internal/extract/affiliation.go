// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
)

// Affiliations holds the raw columns of the panel's career table. Teams,
// Apps and Goals are index-aligned; Headers are the panel's section
// headings.
type Affiliations struct {
	Teams   []string
	Apps    []string
	Goals   []string
	Headers []string
}

// Totals is the outcome of one aggregation pass. Appearances and Goals are
// both nil when the panel has no affiliation rows.
type Totals struct {
	Appearances  *int
	Goals        *int
	NationalTeam *string
}

// ScanAffiliations collects the career table columns from the panel.
func ScanAffiliations(panel *goquery.Selection) Affiliations {
	return Affiliations{
		Teams:   texts(panel.Find(teamCellSelector)),
		Apps:    texts(panel.Find(appsCellSelector)),
		Goals:   texts(panel.Find(goalsCellSelector)),
		Headers: texts(panel.Find(panelHeaderSelector)),
	}
}

func texts(s *goquery.Selection) []string {
	out := make([]string, 0, s.Length())
	s.Each(func(_ int, cell *goquery.Selection) {
		out = append(out, cell.Text())
	})
	return out
}

// HasNationalTeam reports whether any header announces an international
// career section.
func (a Affiliations) HasNationalTeam() bool {
	for _, h := range a.Headers {
		if strings.Contains(strings.ToLower(strings.TrimSpace(h)), internationalCareerKw) {
			return true
		}
	}
	return false
}

// Aggregate sums appearances and goals over the rows whose team matches
// club, and names the national team when the panel has an international
// career section. The national team is the last row's label. A nil club
// matches no row.
func Aggregate(a Affiliations, club *string, m TeamMatcher) (Totals, error) {
	if len(a.Teams) == 0 {
		return Totals{}, nil
	}
	if m == nil {
		m = ExactMatcher{}
	}

	var apps, goals int
	for i, raw := range a.Teams {
		if club == nil || !m.Match(StripBrackets(raw), *club) {
			continue
		}
		if i >= len(a.Apps) || i >= len(a.Goals) {
			return Totals{}, errors.Wrapf(ErrMalformedTable, "row %d has no appearance or goal cell", i)
		}
		n, err := parseApps(a.Apps[i])
		if err != nil {
			return Totals{}, errors.Wrapf(err, "row %d", i)
		}
		g, err := parseGoals(a.Goals[i])
		if err != nil {
			return Totals{}, errors.Wrapf(err, "row %d", i)
		}
		apps += n
		goals += g
	}

	totals := Totals{Appearances: &apps, Goals: &goals}
	if a.HasNationalTeam() {
		totals.NationalTeam = strPtr(StripBrackets(a.Teams[len(a.Teams)-1]))
	}
	return totals, nil
}

// isPlaceholder reports whether a trimmed cell stands for "unknown".
func isPlaceholder(s string) bool {
	return s == "" || s == "?"
}

// parseApps reads an appearance cell such as "34". Placeholders count as 0.
func parseApps(raw string) (int, error) {
	text := strings.TrimSpace(raw)
	if isPlaceholder(text) {
		return 0, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedNumber, "appearances %q", raw)
	}
	return n, nil
}

// parseGoals reads a goal cell such as "(3)": the first and last
// characters are dropped and the rest must be an integer. Placeholders
// read as "(0)".
func parseGoals(raw string) (int, error) {
	text := strings.TrimSpace(raw)
	if isPlaceholder(text) {
		text = "(0)"
	}
	n, err := strconv.Atoi(strings.TrimSpace(dropEnds(text)))
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedNumber, "goals %q", raw)
	}
	return n, nil
}
