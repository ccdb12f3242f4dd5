// Package benchmark supplies industry comparison figures for a platform and
// niche. The engine treats it as a pluggable collaborator: when a provider
// is missing or fails, callers degrade to the built-in defaults instead of
// surfacing an error.
package benchmark

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/creatorpulse/earnings-cli/internal/rates"
)

// Benchmarks holds monthly industry comparison figures for one
// platform/niche pair.
type Benchmarks struct {
	AverageEarnings       float64 `json:"averageEarnings"`
	TopPercentileEarnings float64 `json:"topPercentileEarnings"`
	AverageEngagement     float64 `json:"averageEngagement"` // percent
	GrowthRate            float64 `json:"growthRate"`        // monthly follower growth, fraction
}

// Provider fetches benchmarks. Implementations may be backed by cached
// market data; the static provider below is the default.
type Provider interface {
	IndustryBenchmarks(ctx context.Context, platform rates.Platform, niche string) (Benchmarks, error)
}

// Defaults is the documented fallback benchmark set, used whenever a
// provider is unavailable or errors.
func Defaults(platform rates.Platform) Benchmarks {
	switch platform {
	case rates.YouTube:
		return Benchmarks{AverageEarnings: 1_200, TopPercentileEarnings: 45_000, AverageEngagement: 4.0, GrowthRate: 0.02}
	case rates.Instagram:
		return Benchmarks{AverageEarnings: 700, TopPercentileEarnings: 25_000, AverageEngagement: 3.0, GrowthRate: 0.025}
	default:
		return Benchmarks{AverageEarnings: 500, TopPercentileEarnings: 20_000, AverageEngagement: 3.5, GrowthRate: 0.04}
	}
}

// StaticProvider serves benchmarks from an in-memory table seeded from the
// rate tables: niche multipliers scale the platform default figures.
type StaticProvider struct {
	tables *rates.Tables
}

// NewStaticProvider creates the default provider. Returns an error on nil
// tables so miswiring fails at startup.
func NewStaticProvider(tables *rates.Tables) (*StaticProvider, error) {
	if tables == nil {
		return nil, eris.New("benchmark: nil rate tables")
	}
	return &StaticProvider{tables: tables}, nil
}

// IndustryBenchmarks scales the platform defaults by the niche multiplier.
// Unknown niches use the default niche config, mirroring the engine.
func (p *StaticProvider) IndustryBenchmarks(_ context.Context, platform rates.Platform, niche string) (Benchmarks, error) {
	if _, err := rates.ParsePlatform(string(platform)); err != nil {
		return Benchmarks{}, err
	}
	n, _ := p.tables.Niche(niche)
	base := Defaults(platform)
	return Benchmarks{
		AverageEarnings:       base.AverageEarnings * n.Multiplier,
		TopPercentileEarnings: base.TopPercentileEarnings * n.Multiplier,
		AverageEngagement:     base.AverageEngagement,
		GrowthRate:            base.GrowthRate,
	}, nil
}
