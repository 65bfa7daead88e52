package config

import (
	"bytes"
	_ "embed"
	"strings"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"

	"threatfeed/parser"
)

//go:embed sources.yaml
var defaultSources []byte

// Default returns the built-in source list.
func Default() (*Config, error) {
	return Load(defaultSources)
}

// Load decodes and validates a YAML configuration document.
func Load(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = parser.DefaultTimeout
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	files := make(map[string]string, len(c.Sources))
	for i, src := range c.Sources {
		if strings.TrimSpace(src.Name) == "" {
			return errors.Errorf("source #%d: name is required", i+1)
		}
		if src.URL == "" {
			return errors.Errorf("source %q: url is required", src.Name)
		}
		if src.Format == parser.FormatUnknown {
			return errors.Errorf("source %q: format is required", src.Name)
		}
		file := OutputFilename(src.Name)
		if other, ok := files[file]; ok {
			return errors.Errorf("sources %q and %q both write %s", other, src.Name, file)
		}
		files[file] = src.Name
	}
	return nil
}

// OutputFilename derives the file a source is written to:
// "AdGuard DNS Filter" becomes "adguard_dns_filter.txt".
func OutputFilename(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_") + ".txt"
}
