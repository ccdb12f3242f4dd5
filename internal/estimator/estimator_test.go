package estimator

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorpulse/earnings-cli/internal/benchmark"
	"github.com/creatorpulse/earnings-cli/internal/engine"
	"github.com/creatorpulse/earnings-cli/internal/predict"
	"github.com/creatorpulse/earnings-cli/internal/rates"
)

func ptr(v float64) *float64 { return &v }

func sampleRaw() engine.RawInput {
	return engine.RawInput{
		Followers:      ptr(100_000),
		EngagementRate: ptr(4.5),
		AverageViews:   ptr(40_000),
		PostFrequency:  ptr(5),
		Niche:          "tech",
		Location:       "us",
	}
}

type failingPredictor struct{}

func (failingPredictor) Predict(engine.NormalizedInput, rates.Platform) (predict.Prediction, error) {
	return predict.Prediction{}, eris.New("model exploded")
}

type failingBenchmarks struct{}

func (failingBenchmarks) IndustryBenchmarks(context.Context, rates.Platform, string) (benchmark.Benchmarks, error) {
	return benchmark.Benchmarks{}, eris.New("market data unavailable")
}

func TestEstimate_HappyPath(t *testing.T) {
	s, err := New(rates.Default())
	require.NoError(t, err)

	result, err := s.Estimate(context.Background(), sampleRaw(), "tiktok")
	require.NoError(t, err)
	assert.Equal(t, rates.TikTok, result.Platform)
	assert.Positive(t, result.MonthlyEarnings)
}

func TestEstimate_RejectsBadPlatformAndInput(t *testing.T) {
	s, err := New(rates.Default())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Estimate(ctx, sampleRaw(), "vine")
	require.Error(t, err)
	assert.True(t, eris.Is(err, rates.ErrUnsupportedPlatform))

	_, err = s.Estimate(ctx, engine.RawInput{EngagementRate: ptr(3)}, "tiktok")
	require.Error(t, err)
	assert.True(t, eris.Is(err, engine.ErrInvalidInput))
}

func TestEstimate_CancelledContext(t *testing.T) {
	s, err := New(rates.Default())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Estimate(ctx, sampleRaw(), "tiktok")
	require.Error(t, err)
	assert.True(t, eris.Is(err, context.Canceled))
}

func TestEstimate_MemoizesIdenticalProfiles(t *testing.T) {
	s, err := New(rates.Default())
	require.NoError(t, err)
	ctx := context.Background()

	first, err := s.Estimate(ctx, sampleRaw(), "tiktok")
	require.NoError(t, err)
	second, err := s.Estimate(ctx, sampleRaw(), "tiktok")
	require.NoError(t, err)

	// Same pointer: the second call was served from the cache.
	assert.Same(t, first, second)

	// A different platform is a different key.
	other, err := s.Estimate(ctx, sampleRaw(), "instagram")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}

func TestEstimate_ConcurrentCallsShareOneComputation(t *testing.T) {
	s, err := New(rates.Default())
	require.NoError(t, err)
	ctx := context.Background()

	const callers = 32
	var wg sync.WaitGroup
	results := make([]*engine.CalculationResult, callers)
	var failures atomic.Int64
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := s.Estimate(ctx, sampleRaw(), "youtube")
			if err != nil {
				failures.Add(1)
				return
			}
			results[i] = r
		}(i)
	}
	wg.Wait()

	require.Zero(t, failures.Load())
	for i := 1; i < callers; i++ {
		assert.Equal(t, results[0], results[i])
	}
}

func TestEstimateEnterprise_FullBundle(t *testing.T) {
	s, err := New(rates.Default())
	require.NoError(t, err)

	r, err := s.EstimateEnterprise(context.Background(), sampleRaw(), "youtube")
	require.NoError(t, err)

	require.NotNil(t, r.Calculation)
	assert.Positive(t, r.Calculation.MonthlyEarnings)
	assert.Len(t, r.Risk.Factors, 7)
	assert.Equal(t, predict.ModelVersion, r.Prediction.ModelVersion)
	assert.Positive(t, r.Benchmarks.AverageEarnings)
}

func TestEstimateEnterprise_FallsBackWhenModelFails(t *testing.T) {
	s, err := New(rates.Default(), WithPredictor(failingPredictor{}))
	require.NoError(t, err)

	r, err := s.EstimateEnterprise(context.Background(), sampleRaw(), "tiktok")
	require.NoError(t, err)

	assert.Equal(t, predict.FallbackVersion, r.Prediction.ModelVersion)
	assert.InDelta(t, 0.6, r.Prediction.Confidence, 1e-9)
	// followers × 0.01 × engagement/3.5
	assert.InDelta(t, 100_000*0.01*4.5/3.5, r.Prediction.PredictedEarnings, 0.01)
}

func TestEstimateEnterprise_BenchmarkDegradesToDefaults(t *testing.T) {
	s, err := New(rates.Default(), WithBenchmarkProvider(failingBenchmarks{}))
	require.NoError(t, err)

	r, err := s.EstimateEnterprise(context.Background(), sampleRaw(), "instagram")
	require.NoError(t, err)
	assert.Equal(t, benchmark.Defaults(rates.Instagram), r.Benchmarks)
}

func TestIndustryBenchmarks_DegradesToDefaults(t *testing.T) {
	s, err := New(rates.Default(), WithBenchmarkProvider(failingBenchmarks{}))
	require.NoError(t, err)

	b, err := s.IndustryBenchmarks(context.Background(), "tiktok", "tech")
	require.NoError(t, err)
	assert.Equal(t, benchmark.Defaults(rates.TikTok), b)

	_, err = s.IndustryBenchmarks(context.Background(), "vine", "tech")
	require.Error(t, err)
}
