package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/player-scraper/internal/export"
	"github.com/pdiddy/player-scraper/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print stored players as YAML, JSON or CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringP("format", "f", "yaml", "output format: yaml, json or csv")
	exportCmd.Flags().Bool("log", false, "print the upsert batch log instead of players")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	s, err := store.Open(cmd.Context(), cfg.Store, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	if showLog, _ := cmd.Flags().GetBool("log"); showLog {
		entries, err := s.Log(cmd.Context())
		if err != nil {
			return err
		}
		return export.WriteLog(os.Stdout, export.Format(format), entries)
	}

	records, err := s.List(cmd.Context())
	if err != nil {
		return err
	}
	return export.Write(os.Stdout, export.Format(format), records)
}
