// Package config loads and saves compound's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/compound/internal/challenge"
	"github.com/theirongolddev/compound/internal/model"
)

// Config holds all compound configuration.
type Config struct {
	Challenge  ChallengeConfig  `toml:"challenge"`
	Storage    StorageConfig    `toml:"storage"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// ChallengeConfig holds the parameters used to generate a new challenge.
type ChallengeConfig struct {
	StartingAmount float64 `toml:"starting_amount"`
	StepCount      int     `toml:"step_count"`
	GrowthRate     float64 `toml:"growth_rate"`
}

// StorageConfig says where challenge state is persisted.
type StorageConfig struct {
	DBPath string `toml:"db_path,omitempty"`
	Slot   string `toml:"slot,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig controls the diagnostic log. An empty File disables it.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	p := challenge.DefaultParams()
	return Config{
		Challenge: ChallengeConfig{
			StartingAmount: p.StartingAmount,
			StepCount:      p.StepCount,
			GrowthRate:     p.GrowthRate,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(StateDir(), "compound.log"),
		},
	}
}

// Params returns the challenge parameters as the generator takes them.
func (c Config) Params() model.Params {
	return model.Params{
		StartingAmount: c.Challenge.StartingAmount,
		StepCount:      c.Challenge.StepCount,
		GrowthRate:     c.Challenge.GrowthRate,
	}
}

// SetParams stores p as the challenge parameters.
func (c *Config) SetParams(p model.Params) {
	c.Challenge = ChallengeConfig{
		StartingAmount: p.StartingAmount,
		StepCount:      p.StepCount,
		GrowthRate:     p.GrowthRate,
	}
}

// MaxStepCount bounds the length of a generated challenge.
const MaxStepCount = 1000

// ValidateParams rejects parameters that cannot produce a usable challenge.
func ValidateParams(p model.Params) error {
	switch {
	case math.IsNaN(p.StartingAmount) || math.IsInf(p.StartingAmount, 0),
		math.IsNaN(p.GrowthRate) || math.IsInf(p.GrowthRate, 0):
		return errors.New("amounts must be finite numbers")
	case p.StepCount < 1:
		return errors.New("step count must be at least 1")
	case p.StepCount > MaxStepCount:
		return fmt.Errorf("step count must be at most %d", MaxStepCount)
	case p.StartingAmount <= 0:
		return errors.New("starting amount must be positive")
	case p.GrowthRate <= -1:
		return errors.New("growth rate must be greater than -100%")
	}
	return nil
}

// ParseParams reads challenge parameters as a person types them: amounts
// may carry a "$" and commas, and the growth rate is a percent ("20" or
// "20%" for 0.2). The result is validated.
func ParseParams(start, steps, ratePercent string) (model.Params, error) {
	amount, err := strconv.ParseFloat(strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(start)), 64)
	if err != nil {
		return model.Params{}, fmt.Errorf("starting amount %q is not a number", start)
	}
	n, err := strconv.Atoi(strings.TrimSpace(steps))
	if err != nil {
		return model.Params{}, fmt.Errorf("step count %q is not a whole number", steps)
	}
	rate, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(ratePercent), "%"), 64)
	if err != nil {
		return model.Params{}, fmt.Errorf("growth rate %q is not a number", ratePercent)
	}

	p := model.Params{StartingAmount: amount, StepCount: n, GrowthRate: rate / 100}
	if err := ValidateParams(p); err != nil {
		return model.Params{}, err
	}
	return p, nil
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "compound")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "compound")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "compound")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "compound")
}

// StateDir returns the XDG-compliant state directory, where logs go.
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "compound")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "compound")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DBPath returns the database path from env var or config, in that order,
// falling back to the data directory.
func DBPath(cfg Config) string {
	if p := os.Getenv("COMPOUND_DB"); p != "" {
		return p
	}
	if cfg.Storage.DBPath != "" {
		return cfg.Storage.DBPath
	}
	return filepath.Join(DataDir(), "compound.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
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
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
