package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pdiddy/player-scraper/internal/export"
	"github.com/pdiddy/player-scraper/internal/store"
)

var loadCmd = &cobra.Command{
	Use:   "load <players.csv>",
	Short: "Upsert a scraped CSV file into the store",
	Long: `Load reads a semicolon-separated file written by scrape and upserts every
row into the configured store, keyed on full name and date of birth. Birth
dates in dd.mm.yyyy form are rewritten as yyyy-mm-dd.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return errors.Wrapf(err, "opening %s", args[0])
	}
	defer f.Close()

	records, err := export.ReadCSV(f)
	if err != nil {
		return err
	}

	s, err := store.Open(cmd.Context(), cfg.Store, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.Upsert(cmd.Context(), records)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Upserted %d record(s) from %s\n", n, args[0])
	return nil
}
