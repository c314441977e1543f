package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pdiddy/player-scraper/internal/export"
	"github.com/pdiddy/player-scraper/internal/extract"
	"github.com/pdiddy/player-scraper/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <page.html>...",
	Short: "Extract player records from saved HTML pages",
	Long: `Extract parses saved player pages and prints one record per page with an
info panel. Pages without a panel are reported and skipped. Nothing is
downloaded or stored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringP("format", "f", "yaml", "output format: yaml, json or csv")
	extractCmd.Flags().String("matcher", "", "team matcher: exact or fold (default from config)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	exCfg := cfg.Extraction
	if m, _ := cmd.Flags().GetString("matcher"); m != "" {
		exCfg.TeamMatcher = types.TeamMatcherName(m)
	}
	ex, err := extract.New(exCfg)
	if err != nil {
		return err
	}

	var records []types.PlayerRecord
	var failed int
	for _, path := range args {
		rec, err := extractFile(ex, path)
		switch {
		case errors.Is(err, extract.ErrNoPanel):
			logger.Warn("no info panel", "file", path)
		case err != nil:
			logger.Error("extraction failed", "file", path, "error", err)
			failed++
		default:
			records = append(records, rec)
		}
	}

	if err := export.Write(os.Stdout, export.Format(format), records); err != nil {
		return err
	}
	if failed > 0 {
		return errors.Newf("%d file(s) failed extraction", failed)
	}
	return nil
}

func extractFile(ex *extract.Extractor, path string) (types.PlayerRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.PlayerRecord{}, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	return ex.ExtractHTML(f)
}
