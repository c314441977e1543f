// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/player-scraper/pkg/types"
)

// Format selects a document export format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Write encodes records to w in the given format.
func Write(w io.Writer, format Format, records []types.PlayerRecord) error {
	switch format {
	case FormatYAML, "":
		return WriteYAML(w, records)
	case FormatJSON:
		return WriteJSON(w, records)
	case FormatCSV:
		return WriteCSV(w, records)
	default:
		return unsupported(format)
	}
}

// WriteYAML writes records as a YAML sequence.
func WriteYAML(w io.Writer, records []types.PlayerRecord) error {
	if records == nil {
		records = []types.PlayerRecord{}
	}
	return encodeYAML(w, records)
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records []types.PlayerRecord) error {
	if records == nil {
		records = []types.PlayerRecord{}
	}
	return encodeJSON(w, records)
}

// WriteLog encodes the upsert batch log in the given format.
func WriteLog(w io.Writer, format Format, entries []types.BatchLogEntry) error {
	if entries == nil {
		entries = []types.BatchLogEntry{}
	}
	switch format {
	case FormatYAML, "":
		return encodeYAML(w, entries)
	case FormatJSON:
		return encodeJSON(w, entries)
	case FormatCSV:
		return writeLogCSV(w, entries)
	default:
		return unsupported(format)
	}
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encoding YAML")
	}
	return errors.Wrap(enc.Close(), "closing YAML encoder")
}

func encodeJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	_, err = w.Write(append(data, '\n'))
	return errors.Wrap(err, "writing JSON")
}

func unsupported(format Format) error {
	return errors.Newf("unsupported format %q: use yaml, json or csv", format)
}
