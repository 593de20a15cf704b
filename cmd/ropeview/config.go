package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds ropeview's on-disk settings. Unlike the teacher's layered,
// schema-driven config package, this is a single flat struct — a viewer
// has nothing to layer configuration over.
type Config struct {
	Theme struct {
		StatusStart string `toml:"status_start"`
		StatusEnd   string `toml:"status_end"`
	} `toml:"theme"`
	TabWidth  int  `toml:"tab_width"`
	WrapLines bool `toml:"wrap_lines"`
}

func defaultConfig() Config {
	var c Config
	c.Theme.StatusStart = "#1b2735"
	c.Theme.StatusEnd = "#90caf9"
	c.TabWidth = 4
	c.WrapLines = false
	return c
}

// loadConfig reads a TOML config file, falling back to defaultConfig when
// path is empty or the file does not exist.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
