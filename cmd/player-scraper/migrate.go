package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pdiddy/player-scraper/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <up|down|version> [steps]",
	Short: "Manage the store schema",
	Long: `Migrate applies or rolls back the embedded schema migrations of the
configured store. "down" rolls back one migration unless a step count is
given.`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"up", "down", "version"},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	m, err := store.NewMigrator(cfg.Store, logger)
	if err != nil {
		return err
	}
	defer m.Close()

	switch args[0] {
	case "up":
		return m.Up()
	case "down":
		steps, err := parseSteps(args[1:])
		if err != nil {
			return err
		}
		return m.Down(steps)
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "version: %d\ndirty: %t\n", v, dirty)
		return nil
	default:
		return errors.Newf("unknown migrate command %q: use up, down or version", args[0])
	}
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errors.Wrapf(err, "invalid down steps %q", args[0])
	}
	if steps <= 0 {
		return 0, errors.New("down steps must be > 0")
	}
	return steps, nil
}
