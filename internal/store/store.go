// Package store persists estimate history. Two backends implement the same
// interface: SQLite for local CLI use and Postgres for shared deployments.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/creatorpulse/earnings-cli/internal/engine"
	"github.com/creatorpulse/earnings-cli/internal/rates"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = eris.New("store: estimate not found")

// Record is one saved estimate with the input that produced it.
type Record struct {
	ID        string                   `json:"id"`
	Platform  rates.Platform           `json:"platform"`
	Input     engine.NormalizedInput   `json:"input"`
	Result    engine.CalculationResult `json:"result"`
	CreatedAt time.Time                `json:"createdAt"`
}

// Filter specifies criteria for listing estimates.
type Filter struct {
	Platform string `json:"platform,omitempty"`
	Niche    string `json:"niche,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for estimate history.
type Store interface {
	SaveEstimate(ctx context.Context, platform rates.Platform, in engine.NormalizedInput, result *engine.CalculationResult) (*Record, error)
	GetEstimate(ctx context.Context, id string) (*Record, error)
	ListEstimates(ctx context.Context, filter Filter) ([]Record, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
