// Package estimator is the service facade over the calculation engine, the
// prediction model, the risk module and the benchmark provider. It owns
// normalization, memoization and the degrade paths, so callers get one
// entry point with stable semantics.
package estimator

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/creatorpulse/earnings-cli/internal/benchmark"
	"github.com/creatorpulse/earnings-cli/internal/engine"
	"github.com/creatorpulse/earnings-cli/internal/predict"
	"github.com/creatorpulse/earnings-cli/internal/rates"
	"github.com/creatorpulse/earnings-cli/internal/risk"
)

// memoCap bounds the result cache. Past this size the cache is reset rather
// than evicted per entry; estimates are cheap to recompute.
const memoCap = 4096

// Predictor is the prediction dependency. *predict.Model satisfies it; tests
// inject failing implementations to exercise the fallback path.
type Predictor interface {
	Predict(in engine.NormalizedInput, platform rates.Platform) (predict.Prediction, error)
}

// EnterpriseResult bundles the full analysis for one profile.
type EnterpriseResult struct {
	Calculation *engine.CalculationResult `json:"calculation"`
	Risk        risk.Assessment           `json:"riskAssessment"`
	Prediction  predict.Prediction        `json:"prediction"`
	Benchmarks  benchmark.Benchmarks      `json:"industryBenchmarks"`
}

// Service coordinates the collaborators. Safe for concurrent use.
type Service struct {
	tables *rates.Tables
	calc   *engine.Calculator
	model  Predictor
	bench  benchmark.Provider

	group singleflight.Group

	mu   sync.RWMutex
	memo map[string]*engine.CalculationResult
}

// Option configures a Service.
type Option func(*Service)

// WithPredictor overrides the default model.
func WithPredictor(p Predictor) Option {
	return func(s *Service) { s.model = p }
}

// WithBenchmarkProvider overrides the default static provider.
func WithBenchmarkProvider(p benchmark.Provider) Option {
	return func(s *Service) { s.bench = p }
}

// New wires a service over the given tables. Table validation and the model
// weight invariant are both checked here, so a bad configuration fails at
// startup.
func New(tables *rates.Tables, opts ...Option) (*Service, error) {
	calc, err := engine.NewCalculator(tables)
	if err != nil {
		return nil, eris.Wrap(err, "estimator: build calculator")
	}

	s := &Service{
		tables: tables,
		calc:   calc,
		memo:   make(map[string]*engine.CalculationResult),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.model == nil {
		model, err := predict.NewModel(tables)
		if err != nil {
			return nil, eris.Wrap(err, "estimator: build model")
		}
		s.model = model
	}
	if s.bench == nil {
		provider, err := benchmark.NewStaticProvider(tables)
		if err != nil {
			return nil, eris.Wrap(err, "estimator: build benchmark provider")
		}
		s.bench = provider
	}
	return s, nil
}

// Estimate normalizes the profile and runs the earnings calculation.
// Identical profiles share one computation and one cached result; the
// calculation is pure, so cached results never go stale.
func (s *Service) Estimate(ctx context.Context, raw engine.RawInput, platform string) (*engine.CalculationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "estimator: estimate")
	}
	p, err := rates.ParsePlatform(platform)
	if err != nil {
		return nil, err
	}
	in, err := engine.Normalize(raw)
	if err != nil {
		return nil, err
	}
	return s.calculate(p, in)
}

func (s *Service) calculate(p rates.Platform, in engine.NormalizedInput) (*engine.CalculationResult, error) {
	key := string(p) + "|" + in.Key()

	s.mu.RLock()
	cached, ok := s.memo[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		result, err := s.calc.Calculate(p, in)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if len(s.memo) >= memoCap {
			zap.L().Debug("estimator: memo cache full, resetting", zap.Int("size", len(s.memo)))
			s.memo = make(map[string]*engine.CalculationResult)
		}
		s.memo[key] = result
		s.mu.Unlock()
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*engine.CalculationResult), nil
}

// EstimateEnterprise runs the calculation plus risk, prediction and industry
// benchmarks. The calculation itself is the only hard failure; the
// prediction degrades to the documented fallback and benchmarks degrade to
// platform defaults.
func (s *Service) EstimateEnterprise(ctx context.Context, raw engine.RawInput, platform string) (*EnterpriseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "estimator: estimate enterprise")
	}
	p, err := rates.ParsePlatform(platform)
	if err != nil {
		return nil, err
	}
	in, err := engine.Normalize(raw)
	if err != nil {
		return nil, err
	}

	calc, err := s.calculate(p, in)
	if err != nil {
		return nil, err
	}

	pred, err := s.model.Predict(in, p)
	if err != nil {
		zap.L().Warn("estimator: prediction failed, using fallback", zap.Error(err))
		pred = predict.FallbackPrediction(in)
	}

	bench, err := s.bench.IndustryBenchmarks(ctx, p, in.Niche)
	if err != nil {
		zap.L().Warn("estimator: benchmark provider failed, using defaults", zap.Error(err))
		bench = benchmark.Defaults(p)
	}

	return &EnterpriseResult{
		Calculation: calc,
		Risk:        risk.Assess(in, calc, s.tables),
		Prediction:  pred,
		Benchmarks:  bench,
	}, nil
}

// IndustryBenchmarks exposes the benchmark provider with the same degrade
// semantics as the enterprise path.
func (s *Service) IndustryBenchmarks(ctx context.Context, platform, niche string) (benchmark.Benchmarks, error) {
	p, err := rates.ParsePlatform(platform)
	if err != nil {
		return benchmark.Benchmarks{}, err
	}
	b, err := s.bench.IndustryBenchmarks(ctx, p, niche)
	if err != nil {
		zap.L().Warn("estimator: benchmark provider failed, using defaults", zap.Error(err))
		return benchmark.Defaults(p), nil
	}
	return b, nil
}
