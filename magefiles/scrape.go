//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const urlList = "data/urls.csv"

// Scrape builds the CLI and scrapes every page listed in data/urls.csv into
// output/players_scraped.csv.
func Scrape() error {
	mg.Deps(Init, Build)
	return sh.RunV(bin(), "scrape", urlList, "--out", "output/players_scraped.csv")
}

// Load upserts output/players_scraped.csv into the configured store.
func Load() error {
	mg.Deps(Build)
	return sh.RunV(bin(), "load", "output/players_scraped.csv")
}

// Migrate applies pending schema migrations to the configured store.
func Migrate() error {
	mg.Deps(Init, Build)
	return sh.RunV(bin(), "migrate", "up")
}

func bin() string {
	return "." + string(os.PathSeparator) + binDir + string(os.PathSeparator) + binName
}
