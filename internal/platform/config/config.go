package config

import (
	"os"
	"runtime"
	"strconv"
)

// Analysis captures engine-level tuning for analysis runs.
type Analysis struct {
	// DebounceCount is the number of consecutive matching observations
	// required before a well state change is accepted.
	DebounceCount int
	// MaxWorkers bounds the per-well and per-region fan-out.
	MaxWorkers int
}

// Default returns the built-in tuning.
func Default() Analysis {
	return Analysis{
		DebounceCount: 2,
		MaxWorkers:    runtime.GOMAXPROCS(0),
	}
}

// FromEnv builds an Analysis config from environment variables so callers
// stay lean. Unset or unparsable values fall back to the defaults.
func FromEnv() Analysis {
	cfg := Default()
	if v := os.Getenv("INP_DEBOUNCE_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			cfg.DebounceCount = n
		}
	}
	if v := os.Getenv("INP_MAX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			cfg.MaxWorkers = n
		}
	}
	return cfg
}
