package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"coursecal/internal/ics"
	"coursecal/internal/term"
)

const (
	defaultSchedule = "schedule.xlsx"
	defaultOutput   = "schedule.ics"
	defaultTimezone = ics.TZID
	defaultListen   = "127.0.0.1:8080"
	defaultRefresh  = "0 * * * *"
)

// Environment variables that override file values.
const (
	EnvSchedule  = "COURSECAL_SCHEDULE"
	EnvOutput    = "COURSECAL_OUTPUT"
	EnvTermDates = "COURSECAL_TERM_DATES"
	EnvTimezone  = "COURSECAL_TIMEZONE"
	EnvListen    = "COURSECAL_LISTEN"
	EnvRefresh   = "COURSECAL_REFRESH"
)

// Config is the top-level application configuration.
type Config struct {
	// TermDates is the term table file (8 YYYYMMDD lines).
	TermDates string `yaml:"term_dates" json:"term_dates" validate:"required"`

	// Schedule is the xlsx workbook listing the courses.
	Schedule string `yaml:"schedule" json:"schedule" validate:"required"`

	// Output is where the generated calendar is written.
	Output string `yaml:"output" json:"output" validate:"required"`

	// Timezone is the IANA zone used when listing meetings in preview and
	// the occurrences API. Events themselves are always written in
	// America/New_York.
	Timezone string `yaml:"timezone" json:"timezone" validate:"required"`

	// ProdID is written to the calendar PRODID property.
	ProdID string `yaml:"prodid" json:"prodid" validate:"required"`

	// Listen is the HTTP listen address for serve mode.
	Listen string `yaml:"listen" json:"listen" validate:"required,hostname_port"`

	// Refresh is a cron-style schedule string (e.g. "0 * * * *") on which
	// serve mode rebuilds the calendar.
	Refresh string `yaml:"refresh" json:"refresh" validate:"required"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		TermDates: term.DefaultTableFile,
		Schedule:  defaultSchedule,
		Output:    defaultOutput,
		Timezone:  defaultTimezone,
		ProdID:    ics.DefaultProdID,
		Listen:    defaultListen,
		Refresh:   defaultRefresh,
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.TermDates == "" {
		c.TermDates = d.TermDates
	}
	if c.Schedule == "" {
		c.Schedule = d.Schedule
	}
	if c.Output == "" {
		c.Output = d.Output
	}
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if c.ProdID == "" {
		c.ProdID = d.ProdID
	}
	if c.Listen == "" {
		c.Listen = d.Listen
	}
	if c.Refresh == "" {
		c.Refresh = d.Refresh
	}
}

// ApplyEnv loads an optional .env file from envFile (ignored if absent) and
// then overrides fields from COURSECAL_* variables that are set.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}
	overrides := []struct {
		key string
		dst *string
	}{
		{EnvSchedule, &c.Schedule},
		{EnvOutput, &c.Output},
		{EnvTermDates, &c.TermDates},
		{EnvTimezone, &c.Timezone},
		{EnvListen, &c.Listen},
		{EnvRefresh, &c.Refresh},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.dst = v
		}
	}
	return nil
}

var validate = validator.New()

// Validate checks required fields, that Timezone names a loadable zone and
// that Refresh parses as a standard five-field cron expression.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	if _, err := cron.ParseStandard(c.Refresh); err != nil {
		return fmt.Errorf("config: refresh %q: %w", c.Refresh, err)
	}
	return nil
}

// Location returns the display location, falling back to time.Local.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path atomically
// (temp file + rename) with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: nil config")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("config: create %s: %w", dir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".coursecal-config-*.tmp")
	if err != nil {
		return fmt.Errorf("config: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// Removing after a successful rename is a no-op.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("config: write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("config: sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("config: close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("config: chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("config: replace %s: %w", path, err)
	}
	return nil
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
