package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/creatorpulse/earnings-cli/internal/estimator"
	"github.com/creatorpulse/earnings-cli/internal/rates"
	"github.com/creatorpulse/earnings-cli/internal/store"
)

// loadTables returns the rate tables, applying the configured YAML override
// file when one is set.
func loadTables() (*rates.Tables, error) {
	if cfg.Rates.OverridePath != "" {
		zap.L().Info("loading rate table overrides", zap.String("path", cfg.Rates.OverridePath))
		return rates.FromYAML(cfg.Rates.OverridePath)
	}
	t := rates.Default()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// newService builds the estimator service over the configured tables.
func newService() (*estimator.Service, error) {
	tables, err := loadTables()
	if err != nil {
		return nil, eris.Wrap(err, "load rate tables")
	}
	return estimator.New(tables)
}

// initStore opens the configured history backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "earnings.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, cfg.Store.Pool)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// usd formats a dollar amount with locale-aware digit grouping.
func usd(amount float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("$%.2f", amount)
}
