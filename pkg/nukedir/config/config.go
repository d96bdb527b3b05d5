package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Sentinel errors for configuration validation.
var (
	ErrIONiceRange    = errors.New("ionice level must be between 0 and 3")
	ErrInvalidTimeout = errors.New("invalid timeout duration")
	ErrNoTargets      = errors.New("no directory specified")
)

// RunConfig holds the per-run options resolved from the command line.
// It is constructed once after parsing and never mutated afterwards;
// last-flag-wins for the paired toggles is resolved during parsing.
type RunConfig struct {
	DryRun       bool
	Verbose      bool
	IONice       int
	Timeout      time.Duration
	WaitForRsync bool
	RsyncVerbose bool
	Targets      []string
}

// Validate checks ranges and presence of targets.
func (c *RunConfig) Validate() error {
	if c.IONice < 0 || c.IONice > MaxIONice {
		return fmt.Errorf("%w: got %d", ErrIONiceRange, c.IONice)
	}
	if len(c.Targets) == 0 {
		return ErrNoTargets
	}
	return nil
}

// Settings are the ambient knobs loadable from the config file and the
// NUKEDIR_ environment, never from flags.
type Settings struct {
	RsyncPath     string `mapstructure:"rsync_path"`
	PollInterval  int    `mapstructure:"poll_interval"` // seconds
	ScratchParent string `mapstructure:"scratch_parent"`
}

// SetDefaults registers the settings defaults on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("rsync_path", DefaultRsyncPath)
	v.SetDefault("poll_interval", int(DefaultPollInterval/time.Second))
	v.SetDefault("scratch_parent", "")
}

// FromViper extracts settings from an already-initialized viper instance,
// such as the global one the CLI binds flags and the config file against.
func FromViper(v *viper.Viper) *Settings {
	return &Settings{
		RsyncPath:     v.GetString("rsync_path"),
		PollInterval:  v.GetInt("poll_interval"),
		ScratchParent: v.GetString("scratch_parent"),
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "nukedir")
	}
	return filepath.Join(xdg.ConfigHome, "nukedir")
}

// bareSecondsPattern matches timeout values given as a plain number.
var bareSecondsPattern = regexp.MustCompile(`^[0-9]+$`)

// daysPattern matches day-suffixed durations like "2d", which Go's duration
// parser does not accept.
var daysPattern = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)d$`)

// ParseTimeout parses the --timeout argument. Accepted forms:
//   - Go durations: "90s", "2m", "4h", "1h30m"
//   - bare seconds: "90"
//   - days: "2d"
//
// The empty string means no timeout.
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if bareSecondsPattern.MatchString(s) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, s)
		}
		return time.Duration(n) * time.Second, nil
	}

	if m := daysPattern.FindStringSubmatch(s); m != nil {
		days, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, s)
		}
		return time.Duration(days * 24 * float64(time.Hour)), nil
	}

	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, s)
	}
	return d, nil
}
