package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Validate checks the fields a given mode depends on. Modes map to commands:
// "estimate" for one-shot calculations, "history" for store-backed commands,
// "serve" for the HTTP server.
func (c *Config) Validate(mode string) error {
	var errs []string

	check := func(cond bool, msg string) {
		if cond {
			errs = append(errs, msg)
		}
	}

	checkStore := func() {
		check(c.Store.Driver != "sqlite" && c.Store.Driver != "postgres",
			fmt.Sprintf("store.driver must be sqlite or postgres, got %q", c.Store.Driver))
		check(c.Store.DatabaseURL == "", "store.database_url is required")
	}

	switch mode {
	case "estimate":
		// Pure calculation, nothing external required.
	case "history":
		checkStore()
		check(c.History.RetentionDays < 0, "history.retention_days must be >= 0")
	case "serve":
		checkStore()
		check(c.Server.Port <= 0 || c.Server.Port > 65535, "server.port must be > 0 and <= 65535")
		check(c.Server.RateLimitPerSec <= 0, "server.rate_limit_per_sec must be > 0")
		check(c.Server.RateLimitBurst <= 0, "server.rate_limit_burst must be > 0")
		check(c.Batch.MaxConcurrentProfiles < 1 || c.Batch.MaxConcurrentProfiles > 64,
			"batch.max_concurrent_profiles must be between 1 and 64")
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: invalid for mode %s: %s", mode, strings.Join(errs, "; "))
	}
	return nil
}
