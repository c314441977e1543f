package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/player-scraper/internal/export"
	"github.com/pdiddy/player-scraper/internal/extract"
	"github.com/pdiddy/player-scraper/internal/fetch"
	"github.com/pdiddy/player-scraper/internal/store"
	"github.com/pdiddy/player-scraper/pkg/types"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <urls.csv>",
	Short: "Scrape player pages listed in a CSV file",
	Long: `Scrape reads page URLs from the first column of a CSV file, downloads each
page and extracts a player record from its info panel. Pages without a panel
are skipped. Records are written to a semicolon-separated file and, with
--store, upserted into the configured database.`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringP("out", "o", "", "output CSV file (default players_scraped.csv)")
	scrapeCmd.Flags().Int("workers", 0, "pages fetched in parallel (default 1)")
	scrapeCmd.Flags().Duration("delay", 0, "delay between consecutive requests with one worker (default 1s)")
	scrapeCmd.Flags().Bool("store", false, "also upsert records into the configured store")
	_ = viper.BindPFlag("export.csv_path", scrapeCmd.Flags().Lookup("out"))
	_ = viper.BindPFlag("fetch.workers", scrapeCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("fetch.delay", scrapeCmd.Flags().Lookup("delay"))

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	urls, err := fetch.LoadURLs(args[0])
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return errors.Newf("no URLs found in %s", args[0])
	}

	ex, err := extract.New(cfg.Extraction)
	if err != nil {
		return err
	}
	scraper := fetch.NewScraper(nil, ex, cfg.Fetch, logger)

	ctx := cmd.Context()
	logger.Info("scraping pages", "count", len(urls), "workers", cfg.Fetch.Workers)
	result, err := scraper.ScrapeBatch(ctx, urls, os.Stdout)
	if err != nil {
		return err
	}

	if err := writeCSVFile(cfg.Export.CSVPath, result.Records); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %d record(s) to %s\n", len(result.Records), cfg.Export.CSVPath)

	if useStore, _ := cmd.Flags().GetBool("store"); useStore {
		s, err := store.Open(ctx, cfg.Store, logger)
		if err != nil {
			return err
		}
		defer s.Close()
		n, err := s.Upsert(ctx, result.Records)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Upserted %d record(s)\n", n)
	}

	if result.HasFailures() {
		return errors.Newf("%d page(s) failed", result.Failed)
	}
	return nil
}

func writeCSVFile(path string, records []types.PlayerRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := export.WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "closing %s", path)
}
