// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes player records to delimited files, YAML and JSON,
// and reads delimited files back.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/pdiddy/player-scraper/pkg/types"
)

// Separator is the field delimiter of player CSV files.
const Separator = ';'

// timestampLayout matches the capture timestamps of earlier CSV exports.
const timestampLayout = "2006-01-02 15:04:05.999999"

// Column titles, in file order.
const (
	colURL             = "URL"
	colName            = "Name"
	colFullName        = "Full name"
	colDateOfBirth     = "Date of birth"
	colAge             = "Age"
	colPlaceOfBirth    = "Place of birth"
	colCountryOfBirth  = "Country of birth"
	colPosition        = "Position"
	colCurrentClub     = "Current club"
	colNationalTeam    = "National team"
	colAppearanceCount = "Appearance count"
	colGoalCount       = "Goal count"
	colScrapedAt       = "Scrap timestamp"

	// legacyPlaceOfBirth is read as colPlaceOfBirth.
	legacyPlaceOfBirth = "City of birth"
)

// Header is the header row written by WriteCSV.
var Header = []string{
	colURL, colName, colFullName, colDateOfBirth, colAge, colPlaceOfBirth,
	colCountryOfBirth, colPosition, colCurrentClub, colNationalTeam,
	colAppearanceCount, colGoalCount, colScrapedAt,
}

// WriteCSV writes records as semicolon-separated rows under one header row.
// Nil fields are written as empty cells.
func WriteCSV(w io.Writer, records []types.PlayerRecord) error {
	cw := csv.NewWriter(w)
	cw.Comma = Separator

	if err := cw.Write(Header); err != nil {
		return errors.Wrap(err, "writing CSV header")
	}
	for _, r := range records {
		row := []string{
			r.URL,
			r.Name,
			r.FullName,
			str(r.DateOfBirth),
			num(r.Age),
			str(r.PlaceOfBirth),
			str(r.CountryOfBirth),
			str(r.Position),
			str(r.CurrentClub),
			str(r.NationalTeam),
			num(r.AppearanceCount),
			num(r.GoalCount),
			stamp(r.ScrapedAt),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "writing CSV row for %s", r.FullName)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing CSV")
}

// ReadCSV reads records written by WriteCSV. Columns are matched by header
// title, unknown columns are ignored and the legacy "City of birth" title
// is accepted for the place of birth. Empty cells read as nil.
func ReadCSV(r io.Reader) ([]types.PlayerRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = Separator
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading CSV header")
	}

	index := make(map[string]int, len(header))
	for i, title := range header {
		title = strings.TrimSpace(strings.TrimPrefix(title, "\ufeff"))
		if title == legacyPlaceOfBirth {
			title = colPlaceOfBirth
		}
		index[title] = i
	}

	var records []types.PlayerRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading CSV line %d", line)
		}
		rec, err := parseRow(row, index)
		if err != nil {
			return nil, errors.Wrapf(err, "CSV line %d", line)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, index map[string]int) (types.PlayerRecord, error) {
	cell := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	optStr := func(col string) *string {
		if v := cell(col); v != "" {
			return &v
		}
		return nil
	}

	rec := types.PlayerRecord{
		URL:            cell(colURL),
		Name:           cell(colName),
		FullName:       cell(colFullName),
		DateOfBirth:    optStr(colDateOfBirth),
		PlaceOfBirth:   optStr(colPlaceOfBirth),
		CountryOfBirth: optStr(colCountryOfBirth),
		Position:       optStr(colPosition),
		CurrentClub:    optStr(colCurrentClub),
		NationalTeam:   optStr(colNationalTeam),
	}

	var err error
	if rec.Age, err = optInt(cell(colAge)); err != nil {
		return rec, errors.Wrap(err, colAge)
	}
	if rec.AppearanceCount, err = optInt(cell(colAppearanceCount)); err != nil {
		return rec, errors.Wrap(err, colAppearanceCount)
	}
	if rec.GoalCount, err = optInt(cell(colGoalCount)); err != nil {
		return rec, errors.Wrap(err, colGoalCount)
	}
	if ts := cell(colScrapedAt); ts != "" {
		if rec.ScrapedAt, err = parseStamp(ts); err != nil {
			return rec, errors.Wrap(err, colScrapedAt)
		}
	}
	return rec, nil
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}

func optInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseStamp(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(timestampLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func writeLogCSV(w io.Writer, entries []types.BatchLogEntry) error {
	cw := csv.NewWriter(w)
	cw.Comma = Separator
	if err := cw.Write([]string{"Update timestamp", "Updated players"}); err != nil {
		return errors.Wrap(err, "writing CSV header")
	}
	for _, e := range entries {
		if err := cw.Write([]string{stamp(e.UpdatedAt), strconv.Itoa(e.UpdatedPlayers)}); err != nil {
			return errors.Wrap(err, "writing CSV row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing CSV")
}
