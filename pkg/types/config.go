package types

import (
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout" validate:"gte=0"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "player-scraper/0.1"). Wikipedia rejects anonymous clients.
	UserAgent string `mapstructure:"user_agent" json:"user_agent" yaml:"user_agent" validate:"required"`

	// MaxRetries bounds retries on 429/503 responses (default 5).
	MaxRetries int `mapstructure:"max_retries" json:"max_retries" yaml:"max_retries" validate:"gte=0"`
}

// FetchConfig holds settings for the fetch stage.
type FetchConfig struct {
	HTTPConfig `mapstructure:",squash" yaml:",inline"`

	// Workers is the number of pages fetched in parallel (default 1).
	Workers int `mapstructure:"workers" json:"workers" yaml:"workers" validate:"gte=1,lte=64"`

	// Delay is the pause between consecutive requests when Workers is 1.
	Delay time.Duration `mapstructure:"delay" json:"delay" yaml:"delay" validate:"gte=0"`
}

// TeamMatcherName selects how affiliation rows are matched to the current club.
type TeamMatcherName string

const (
	MatcherExact TeamMatcherName = "exact"
	MatcherFold  TeamMatcherName = "fold"
)

// ExtractionConfig holds settings for the extraction stage.
type ExtractionConfig struct {
	// PanelSelector is the CSS selector locating the info panel
	// (default ".infobox.vcard").
	PanelSelector string `mapstructure:"panel_selector" json:"panel_selector" yaml:"panel_selector"`

	// TeamMatcher selects the team-name matcher: exact or fold.
	TeamMatcher TeamMatcherName `mapstructure:"team_matcher" json:"team_matcher" yaml:"team_matcher" validate:"omitempty,oneof=exact fold"`
}

// StoreDriver identifies the relational backend.
type StoreDriver string

const (
	DriverSQLite   StoreDriver = "sqlite3"
	DriverPostgres StoreDriver = "postgres"
)

// StoreConfig holds settings for the relational store.
type StoreConfig struct {
	Driver StoreDriver `mapstructure:"driver" json:"driver" yaml:"driver" validate:"oneof=sqlite3 postgres"`

	// Path is the SQLite database file (driver sqlite3).
	Path string `mapstructure:"path" json:"path" yaml:"path" validate:"required_if=Driver sqlite3"`

	Host     string `mapstructure:"host" json:"host" yaml:"host" validate:"required_if=Driver postgres"`
	Port     int    `mapstructure:"port" json:"port" yaml:"port" validate:"omitempty,gte=1,lte=65535"`
	User     string `mapstructure:"user" json:"user" yaml:"user"`
	Password string `mapstructure:"password" json:"-" yaml:"-"`
	Name     string `mapstructure:"name" json:"name" yaml:"name" validate:"required_if=Driver postgres"`
	SSLMode  string `mapstructure:"sslmode" json:"sslmode" yaml:"sslmode"`
}

// DSN returns the database/sql data source name for the configured driver.
func (c StoreConfig) DSN() string {
	if c.Driver == DriverPostgres {
		return c.url("postgres").String()
	}
	return c.Path + "?_journal_mode=WAL&_foreign_keys=on"
}

// MigrateURL returns the golang-migrate database URL for the configured driver.
func (c StoreConfig) MigrateURL() string {
	if c.Driver == DriverPostgres {
		return c.url("postgres").String()
	}
	return "sqlite3://" + c.Path
}

func (c StoreConfig) url(scheme string) *url.URL {
	port := c.Port
	if port == 0 {
		port = 5432
	}
	u := &url.URL{
		Scheme: scheme,
		Host:   fmt.Sprintf("%s:%d", c.Host, port),
		Path:   "/" + c.Name,
	}
	if c.User != "" {
		if c.Password != "" {
			u.User = url.UserPassword(c.User, c.Password)
		} else {
			u.User = url.User(c.User)
		}
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u
}

// ExportConfig holds settings for file output.
type ExportConfig struct {
	// CSVPath is the delimited output file written by scrape.
	CSVPath string `mapstructure:"csv_path" json:"csv_path" yaml:"csv_path" validate:"required"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" json:"format" yaml:"format" validate:"oneof=console json"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch      FetchConfig      `mapstructure:"fetch" json:"fetch" yaml:"fetch"`
	Extraction ExtractionConfig `mapstructure:"extraction" json:"extraction" yaml:"extraction"`
	Store      StoreConfig      `mapstructure:"store" json:"store" yaml:"store"`
	Export     ExportConfig     `mapstructure:"export" json:"export" yaml:"export"`
	Log        LogConfig        `mapstructure:"log" json:"log" yaml:"log"`
}

var validate = validator.New()

// Validate checks field constraints declared in struct tags.
func (c PipelineConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
