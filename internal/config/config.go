// Package config loads and saves the savrate TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all savrate configuration.
type Config struct {
	Hledger    HledgerConfig    `toml:"hledger"`
	Queries    QueriesConfig    `toml:"queries"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// HledgerConfig controls how hledger is invoked.
type HledgerConfig struct {
	Binary      string `toml:"binary"`
	File        string `toml:"file,omitempty"`
	Commodity   string `toml:"commodity"`
	Begin       string `toml:"begin"`
	Format      string `toml:"format"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

// QueriesConfig holds the account queries for each report.
type QueriesConfig struct {
	Expenses     string `toml:"expenses"`
	Income       string `toml:"income"`
	Liabilities  string `toml:"liabilities"`
	InvertIncome bool   `toml:"invert_income"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Hledger: HledgerConfig{
			Binary:      "hledger",
			Commodity:   "USD",
			Begin:       "lastquarter",
			Format:      "json",
			TimeoutSecs: 30,
		},
		Queries: QueriesConfig{
			Expenses:     "^Expenses",
			Income:       "^Income",
			Liabilities:  "Liabilities",
			InvertIncome: true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "savrate")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "savrate")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// LoadEnv loads a .env file from the working directory, if there is one.
// Variables already set in the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetLedgerFile returns the journal path from LEDGER_FILE or config, in that order.
func GetLedgerFile(cfg Config) string {
	if f := os.Getenv("LEDGER_FILE"); f != "" {
		return f
	}
	return cfg.Hledger.File
}

// GetBinary returns the hledger executable from SAVRATE_HLEDGER or config.
func GetBinary(cfg Config) string {
	if b := os.Getenv("SAVRATE_HLEDGER"); b != "" {
		return b
	}
	return cfg.Hledger.Binary
}

// Timeout returns the per-command hledger timeout.
func (c Config) Timeout() time.Duration {
	if c.Hledger.TimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Hledger.TimeoutSecs) * time.Second
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
