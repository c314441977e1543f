// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		aff      Affiliations
		club     *string
		matcher  TeamMatcher
		wantApps *int
		wantGls  *int
		wantNat  *string
	}{
		{
			name: "placeholder row counts as zero",
			aff: Affiliations{
				Teams:   []string{"Club A", "Club A", "National X"},
				Apps:    []string{"10", "?", "5"},
				Goals:   []string{"(2)", "?", "(1)"},
				Headers: []string{"Senior career*", " International Career "},
			},
			club:     strPtr("Club A"),
			wantApps: intPtr(10),
			wantGls:  intPtr(2),
			wantNat:  strPtr("National X"),
		},
		{
			name: "no rows",
			aff: Affiliations{
				Headers: []string{"International career"},
			},
			club: strPtr("Club A"),
		},
		{
			name: "no international section",
			aff: Affiliations{
				Teams:   []string{"Club A", "Club B"},
				Apps:    []string{" 12 ", ""},
				Goals:   []string{" (3) ", "   "},
				Headers: []string{"Senior career*"},
			},
			club:     strPtr("Club A"),
			wantApps: intPtr(12),
			wantGls:  intPtr(3),
		},
		{
			name: "annotations stripped before matching",
			aff: Affiliations{
				Teams: []string{"Club A[a]", "→ Club B (loan)", "Club A"},
				Apps:  []string{"7", "20", "8"},
				Goals: []string{"(1)", "(9)", "(2)"},
			},
			club:     strPtr("Club A"),
			wantApps: intPtr(15),
			wantGls:  intPtr(3),
		},
		{
			name: "exact match misses near duplicates",
			aff: Affiliations{
				Teams: []string{"club a", "Club  A"},
				Apps:  []string{"7", "8"},
				Goals: []string{"(1)", "(2)"},
			},
			club:     strPtr("Club A"),
			wantApps: intPtr(0),
			wantGls:  intPtr(0),
		},
		{
			name: "fold matcher accepts near duplicates",
			aff: Affiliations{
				Teams: []string{"club a", "Club  A"},
				Apps:  []string{"7", "8"},
				Goals: []string{"(1)", "(2)"},
			},
			club:     strPtr("Club A"),
			matcher:  FoldMatcher{},
			wantApps: intPtr(15),
			wantGls:  intPtr(3),
		},
		{
			name: "no current club",
			aff: Affiliations{
				Teams:   []string{"Club A", "National X"},
				Apps:    []string{"7", "bad"},
				Goals:   []string{"(1)", "bad"},
				Headers: []string{"International career"},
			},
			wantApps: intPtr(0),
			wantGls:  intPtr(0),
			wantNat:  strPtr("National X"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Aggregate(tt.aff, tt.club, tt.matcher)
			require.NoError(t, err)
			assert.Equal(t, tt.wantApps, got.Appearances)
			assert.Equal(t, tt.wantGls, got.Goals)
			assert.Equal(t, tt.wantNat, got.NationalTeam)
		})
	}
}

func TestAggregate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		aff     Affiliations
		wantErr error
	}{
		{
			name:    "footnote in appearances",
			aff:     Affiliations{Teams: []string{"Club A"}, Apps: []string{"12[a]"}, Goals: []string{"(1)"}},
			wantErr: ErrMalformedNumber,
		},
		{
			name:    "goals without parentheses",
			aff:     Affiliations{Teams: []string{"Club A"}, Apps: []string{"12"}, Goals: []string{"1"}},
			wantErr: ErrMalformedNumber,
		},
		{
			name:    "missing goal cell",
			aff:     Affiliations{Teams: []string{"Club B", "Club A"}, Apps: []string{"1", "2"}, Goals: []string{"(0)"}},
			wantErr: ErrMalformedTable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Aggregate(tt.aff, strPtr("Club A"), ExactMatcher{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestParseGoals(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"(3)", 3},
		{" (12) ", 12},
		{"?", 0},
		{"", 0},
		{"[7]", 7},
	}
	for _, tt := range tests {
		got, err := parseGoals(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestScanAffiliations(t *testing.T) {
	_, panel := panelFrom(t, "", `
<tr><th colspan="3" class="infobox-header">Senior career*</th></tr>
<tr><td class="infobox-data infobox-data-a">Club A</td><td class="infobox-data infobox-data-b">10</td><td class="infobox-data infobox-data-c">(2)</td></tr>
<tr><th colspan="3" class="infobox-header">International career</th></tr>
<tr><td class="infobox-data infobox-data-a">National X</td><td class="infobox-data infobox-data-b">5</td><td class="infobox-data infobox-data-c">(1)</td></tr>`)

	aff := ScanAffiliations(panel)
	assert.Equal(t, []string{"Club A", "National X"}, aff.Teams)
	assert.Equal(t, []string{"10", "5"}, aff.Apps)
	assert.Equal(t, []string{"(2)", "(1)"}, aff.Goals)
	assert.Equal(t, []string{"Senior career*", "International career"}, aff.Headers)
	assert.True(t, aff.HasNationalTeam())
}

func TestMatcherByName(t *testing.T) {
	m, err := MatcherByName("")
	require.NoError(t, err)
	assert.IsType(t, ExactMatcher{}, m)

	m, err = MatcherByName("fold")
	require.NoError(t, err)
	assert.True(t, m.Match(" Sporting  CP", "sporting cp"))

	_, err = MatcherByName("fuzzy")
	assert.Error(t, err)
}
