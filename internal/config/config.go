package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DailyColumns maps the logical daily-feed fields to physical column names.
type DailyColumns struct {
	// ShortDescription is the column holding the free-text description the
	// site code is extracted from.
	ShortDescription string `yaml:"short_description_column"`
	// Alarms is the column holding the alarm text reported today.
	Alarms string `yaml:"alarms_column"`
}

// HistoryColumns maps the logical NMS-history fields to physical column names.
type HistoryColumns struct {
	// Site is the column holding the controlling object name.
	Site string `yaml:"site_column"`
	// AlarmTime is the column holding the origin alarm timestamp.
	AlarmTime string `yaml:"alarm_time_column"`
	// AlarmText is the column holding the recorded alarm text.
	AlarmText string `yaml:"alarm_text_column"`
}

// Config holds the schema contract and comparison settings for a
// reconciliation run. Column names are a declared contract between the
// input files and the core, never hardcoded at the point of use.
type Config struct {
	// Daily names the required columns of the daily ticket feed.
	Daily DailyColumns `yaml:"daily"`
	// History names the required columns of the NMS history feed.
	History HistoryColumns `yaml:"history"`
	// TimeLayout is the Go reference layout used to parse origin alarm
	// times and to render the latest alarm time in the output.
	TimeLayout string `yaml:"time_layout"`
	// OutputTimezone is the fixed offset (e.g. "+08:00") the latest alarm
	// time is rendered in. "UTC" and "Z" select UTC.
	OutputTimezone string `yaml:"output_timezone"`
	// StrictMatch switches alarm-text comparison to exact byte equality
	// instead of the default normalized comparison.
	StrictMatch bool `yaml:"strict_match"`
}

const (
	// DefaultConfigFilename is the default filename for reconciler settings.
	DefaultConfigFilename = "ticket-reconciler-settings.yaml"

	// DefaultTimeLayout matches the NMS export format "2006-01-02 15:04:05".
	DefaultTimeLayout = "2006-01-02 15:04:05"

	// DefaultOutputTimezone is the offset the operations team reports in.
	DefaultOutputTimezone = "+08:00"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// Environment variables overriding the YAML settings. A .env file in the
// working directory is loaded first when present.
const (
	envTimeLayout     = "RECONCILER_TIME_LAYOUT"
	envOutputTimezone = "RECONCILER_OUTPUT_TIMEZONE"
	envStrictMatch    = "RECONCILER_STRICT_MATCH"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errTimeLayoutRequired is returned when the time layout is blank.
	errTimeLayoutRequired = errors.New("time layout must be provided")

	// offsetPattern matches fixed offsets of the form "+08:00" or "-05:30".
	offsetPattern = regexp.MustCompile(`^([+-])(\d{2}):(\d{2})$`)
)

// Default returns the configuration matching the standard daily and NMS
// export formats.
func Default() *Config {
	return &Config{
		Daily: DailyColumns{
			ShortDescription: "short_description",
			Alarms:           "ALARMS",
		},
		History: HistoryColumns{
			Site:      "Controlling Object Name",
			AlarmTime: "Origin Alarm Time",
			AlarmText: "Alarm Text",
		},
		TimeLayout:     DefaultTimeLayout,
		OutputTimezone: DefaultOutputTimezone,
	}
}

// Load reads configuration from the provided path, applies environment
// overrides and validates the result. When the default path does not exist
// the built-in defaults are used; an explicitly provided path must exist.
func Load(path string) (*Config, error) {
	usingDefaultPath := path == "" || path == DefaultConfigFilename
	if path == "" {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && usingDefaultPath:
		// No settings file: defaults apply.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err = applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and formatting.
// Blank schema fields fall back to defaults before validation.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	defaults := Default()

	if cfg.Daily.ShortDescription == "" {
		cfg.Daily.ShortDescription = defaults.Daily.ShortDescription
	}

	if cfg.Daily.Alarms == "" {
		cfg.Daily.Alarms = defaults.Daily.Alarms
	}

	if cfg.History.Site == "" {
		cfg.History.Site = defaults.History.Site
	}

	if cfg.History.AlarmTime == "" {
		cfg.History.AlarmTime = defaults.History.AlarmTime
	}

	if cfg.History.AlarmText == "" {
		cfg.History.AlarmText = defaults.History.AlarmText
	}

	if cfg.TimeLayout == "" {
		return errTimeLayoutRequired
	}

	if cfg.OutputTimezone == "" {
		cfg.OutputTimezone = defaults.OutputTimezone
	}

	if _, err := ParseOffset(cfg.OutputTimezone); err != nil {
		return err
	}

	return nil
}

// Location resolves the configured output timezone to a time.Location.
func (c *Config) Location() (*time.Location, error) {
	return ParseOffset(c.OutputTimezone)
}

// ParseOffset converts a fixed offset string such as "+08:00" into a
// time.Location. "UTC" and "Z" resolve to UTC.
func ParseOffset(offset string) (*time.Location, error) {
	if offset == "UTC" || offset == "Z" {
		return time.UTC, nil
	}

	match := offsetPattern.FindStringSubmatch(offset)
	if match == nil {
		return nil, fmt.Errorf("invalid timezone offset %q: expected format ±HH:MM", offset)
	}

	hours, _ := strconv.Atoi(match[2])
	minutes, _ := strconv.Atoi(match[3])

	seconds := (hours*60 + minutes) * 60
	if match[1] == "-" {
		seconds = -seconds
	}

	return time.FixedZone(offset, seconds), nil
}

// applyEnvOverrides layers environment variables over the YAML settings.
// A .env file in the working directory is honored when present.
func applyEnvOverrides(cfg *Config) error {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	if v := os.Getenv(envTimeLayout); v != "" {
		cfg.TimeLayout = v
	}

	if v := os.Getenv(envOutputTimezone); v != "" {
		cfg.OutputTimezone = v
	}

	if v := os.Getenv(envStrictMatch); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected a boolean, got %q", envStrictMatch, v)
		}

		cfg.StrictMatch = strict
	}

	return nil
}
