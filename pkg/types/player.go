// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// PlayerRecord is the normalized record extracted from one player page.
// Nullable fields are pointers; nil means the page did not carry the fact.
// A record is built once per page and never mutated afterwards.
type PlayerRecord struct {
	// URL is the page the record was scraped from. Set by the fetch stage;
	// empty for records extracted from local files.
	URL string `json:"url" yaml:"url" db:"url"`

	// Name is the page title with bracketed annotations removed.
	Name string `json:"name" yaml:"name" db:"name"`

	// FullName is the labeled full name, falling back to Name.
	FullName string `json:"full_name" yaml:"full_name" db:"full_name"`

	// DateOfBirth is the machine-readable birth date token as rendered on the
	// page (usually YYYY-MM-DD).
	DateOfBirth *string `json:"date_of_birth" yaml:"date_of_birth" db:"date_of_birth"`

	Age            *int    `json:"age" yaml:"age" db:"age"`
	PlaceOfBirth   *string `json:"place_of_birth" yaml:"place_of_birth" db:"place_of_birth"`
	CountryOfBirth *string `json:"country_of_birth" yaml:"country_of_birth" db:"country_of_birth"`
	Position       *string `json:"position" yaml:"position" db:"position"`
	CurrentClub    *string `json:"current_club" yaml:"current_club" db:"current_club"`
	NationalTeam   *string `json:"national_team" yaml:"national_team" db:"national_team"`

	// AppearanceCount and GoalCount are both set or both nil.
	AppearanceCount *int `json:"appearance_count" yaml:"appearance_count" db:"appearance_count"`
	GoalCount       *int `json:"goal_count" yaml:"goal_count" db:"goal_count"`

	// ScrapedAt is the capture timestamp, read once per extraction.
	ScrapedAt time.Time `json:"scraped_at" yaml:"scraped_at" db:"scraped_at"`
}

// Equal reports whether r and o carry the same extracted facts. The
// capture timestamp is ignored.
func (r PlayerRecord) Equal(o PlayerRecord) bool {
	return r.URL == o.URL &&
		r.Name == o.Name &&
		r.FullName == o.FullName &&
		eqPtr(r.DateOfBirth, o.DateOfBirth) &&
		eqPtr(r.Age, o.Age) &&
		eqPtr(r.PlaceOfBirth, o.PlaceOfBirth) &&
		eqPtr(r.CountryOfBirth, o.CountryOfBirth) &&
		eqPtr(r.Position, o.Position) &&
		eqPtr(r.CurrentClub, o.CurrentClub) &&
		eqPtr(r.NationalTeam, o.NationalTeam) &&
		eqPtr(r.AppearanceCount, o.AppearanceCount) &&
		eqPtr(r.GoalCount, o.GoalCount)
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// BatchLogEntry is one row of the append-only upsert log.
type BatchLogEntry struct {
	UpdatedAt      time.Time `json:"update_timestamp" yaml:"update_timestamp" db:"update_timestamp"`
	UpdatedPlayers int       `json:"updated_players" yaml:"updated_players" db:"updated_players"`
}
