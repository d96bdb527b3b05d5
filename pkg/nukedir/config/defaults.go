// Package config provides configuration for nukedir: the immutable per-run
// options resolved from flags and the ambient settings loaded from the
// config file and environment.
package config

import "time"

// Default configuration values.
const (
	// DefaultRsyncPath is the rsync binary resolved on PATH.
	DefaultRsyncPath = "rsync"

	// DefaultPollInterval is how often the executor re-checks for
	// conflicting rsync processes when --wait-for-rsync is set.
	DefaultPollInterval = 60 * time.Second

	// DefaultIONice requests no I/O scheduling adjustment.
	DefaultIONice = 0

	// MaxIONice is the highest accepted I/O priority level.
	MaxIONice = 3
)
