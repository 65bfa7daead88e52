package config

import (
	"time"

	"threatfeed/parser"
)

// Config represents the top-level configuration structure.
type Config struct {
	Environment string        `yaml:"environment"`          // "development" or "production" logging
	Timeout     time.Duration `yaml:"timeout,omitempty"`    // Per-request download timeout
	OutputDir   string        `yaml:"output_dir,omitempty"` // Directory receiving the .txt files
	Sources     []Source      `yaml:"sources"`
}

// Source is one remote blocklist.
type Source struct {
	Name   string        `yaml:"name"`
	URL    string        `yaml:"url"`
	Format parser.Format `yaml:"format"`
}
