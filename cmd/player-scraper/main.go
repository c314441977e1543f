// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the player-scraper CLI.
// It scrapes footballer info panels from Wikipedia into player records,
// writes them to delimited files and keeps them in a relational store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/player-scraper/internal/logging"
	"github.com/pdiddy/player-scraper/internal/secrets"
	"github.com/pdiddy/player-scraper/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the validated configuration, loaded before every command runs.
	cfg types.PipelineConfig

	logger = logging.NewNop()
)

// rootCmd is the base command for the player-scraper CLI.
var rootCmd = &cobra.Command{
	Use:   "player-scraper",
	Short: "Scrape footballer records from Wikipedia info panels",
	Long: `player-scraper downloads Wikipedia player pages, extracts a normalized
record from each page's info panel, and writes the records to a
semicolon-separated file. Records can be loaded into a SQLite or PostgreSQL
store and exported again as YAML, JSON or CSV.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewStderr(viper.GetString("log.format"), logging.ParseLevel(viper.GetString("log.level")))
		logging.SetDefault(logger)

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		if keys := s.Keys(); len(keys) > 0 {
			sort.Strings(keys)
			logger.Debug("loaded secrets", "keys", keys)
		}

		if err := viper.Unmarshal(&cfg); err != nil {
			return errors.Wrap(err, "decoding configuration")
		}
		cfg.Store.User = s.Or(secrets.DBUser, cfg.Store.User)
		cfg.Store.Password = s.Or(secrets.DBPassword, cfg.Store.Password)
		return cfg.Validate()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./player-scraper.yaml or ~/.config/player-scraper/player-scraper.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("fetch.timeout", "30s")
	viper.SetDefault("fetch.user_agent", "player-scraper/0.1 (+https://github.com/pdiddy/player-scraper)")
	viper.SetDefault("fetch.max_retries", 5)
	viper.SetDefault("fetch.workers", 1)
	viper.SetDefault("fetch.delay", "1s")

	viper.SetDefault("extraction.panel_selector", ".infobox.vcard")
	viper.SetDefault("extraction.team_matcher", string(types.MatcherExact))

	viper.SetDefault("store.driver", string(types.DriverSQLite))
	viper.SetDefault("store.path", filepath.Join("data", "players.db"))
	viper.SetDefault("store.host", "")
	viper.SetDefault("store.port", 5432)
	viper.SetDefault("store.user", "")
	viper.SetDefault("store.password", "")
	viper.SetDefault("store.name", "")
	viper.SetDefault("store.sslmode", "")

	viper.SetDefault("export.csv_path", "players_scraped.csv")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("player-scraper")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "player-scraper"))
		}
	}

	viper.SetEnvPrefix("PLAYER_SCRAPER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
