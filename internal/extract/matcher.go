// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/pdiddy/player-scraper/pkg/types"
)

// TeamMatcher decides whether an affiliation row's normalized team label
// names the player's current club.
type TeamMatcher interface {
	Match(team, club string) bool
}

// ExactMatcher matches on byte-for-byte equality. A label differing from
// the club only by whitespace or a leftover annotation does not match.
type ExactMatcher struct{}

func (ExactMatcher) Match(team, club string) bool { return team == club }

// FoldMatcher matches case-insensitively after collapsing runs of
// whitespace.
type FoldMatcher struct{}

func (FoldMatcher) Match(team, club string) bool {
	return strings.EqualFold(collapseSpace(team), collapseSpace(club))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// MatcherByName resolves a configured matcher name. Empty selects exact.
func MatcherByName(name types.TeamMatcherName) (TeamMatcher, error) {
	switch name {
	case "", types.MatcherExact:
		return ExactMatcher{}, nil
	case types.MatcherFold:
		return FoldMatcher{}, nil
	default:
		return nil, errors.Newf("unknown team matcher %q: use exact or fold", name)
	}
}
