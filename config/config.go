// Package config loads the typeing configuration from the user's TOML
// config file, falling back to built-in defaults when no file exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the test parameters. WordlistFile, when set, overrides
// Wordlist.
type Config struct {
	NumWords     int    `toml:"num_words"`
	Wordlist     string `toml:"wordlist"`
	WordlistFile string `toml:"wordlist_file"`
	Sound        bool   `toml:"sound"`
}

func Default() Config {
	return Config{
		NumWords: 30,
		Wordlist: "top250",
	}
}

// Path returns the conventional config file location, typically
// ~/.config/typeing/config.toml on Linux.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "typeing", "config.toml"), nil
}

// Load reads the config file at the conventional location. A missing
// file is not an error, the defaults apply.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads the given TOML config file on top of the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values no test round could run with.
func (c Config) Validate() error {
	if c.NumWords < 1 {
		return fmt.Errorf("num_words must be positive, got %d", c.NumWords)
	}
	if c.Wordlist == "" && c.WordlistFile == "" {
		return fmt.Errorf("one of wordlist or wordlist_file must be set")
	}
	return nil
}
