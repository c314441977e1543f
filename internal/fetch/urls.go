// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// LoadURLs reads page URLs from the first column of a CSV file. The first
// row is a header and is skipped, as are blank cells.
func LoadURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening URL list %s", path)
	}
	defer f.Close()
	return ReadURLs(f)
}

// ReadURLs is LoadURLs over a reader.
func ReadURLs(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var urls []string
	for line := 0; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading URL list")
		}
		if line == 0 || len(record) == 0 {
			continue
		}
		if u := strings.TrimSpace(record[0]); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}
