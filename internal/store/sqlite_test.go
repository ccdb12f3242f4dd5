package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorpulse/earnings-cli/internal/engine"
	"github.com/creatorpulse/earnings-cli/internal/rates"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testInput(niche string) engine.NormalizedInput {
	return engine.NormalizedInput{
		Followers:      50_000,
		EngagementRate: 4.2,
		AverageViews:   18_000,
		PostFrequency:  4,
		Niche:          niche,
		Location:       "us",
	}
}

func testCalcResult() *engine.CalculationResult {
	return &engine.CalculationResult{
		Platform:        rates.TikTok,
		MonthlyEarnings: 1234.56,
		YearlyEarnings:  14814.72,
		Breakdown: engine.Breakdown{
			engine.ChannelCreatorFund:       200,
			engine.ChannelBrandPartnerships: 1034.56,
		},
	}
}

func TestSQLite_SaveAndGetEstimate(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	rec, err := st.SaveEstimate(ctx, rates.TikTok, testInput("tech"), testCalcResult())
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)

	got, err := st.GetEstimate(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rates.TikTok, got.Platform)
	assert.Equal(t, "tech", got.Input.Niche)
	assert.InDelta(t, 1234.56, got.Result.MonthlyEarnings, 1e-9)
	assert.InDelta(t, 1034.56, got.Result.Breakdown[engine.ChannelBrandPartnerships], 1e-9)
}

func TestSQLite_GetEstimate_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetEstimate(context.Background(), "nonexistent-id")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
}

func TestSQLite_SaveEstimate_NilResult(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.SaveEstimate(context.Background(), rates.TikTok, testInput("tech"), nil)
	require.Error(t, err)
}

func TestSQLite_ListEstimates_Filtering(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.SaveEstimate(ctx, rates.TikTok, testInput("tech"), testCalcResult())
	require.NoError(t, err)
	_, err = st.SaveEstimate(ctx, rates.TikTok, testInput("beauty"), testCalcResult())
	require.NoError(t, err)
	_, err = st.SaveEstimate(ctx, rates.Instagram, testInput("tech"), testCalcResult())
	require.NoError(t, err)

	all, err := st.ListEstimates(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	tiktok, err := st.ListEstimates(ctx, Filter{Platform: "tiktok"})
	require.NoError(t, err)
	assert.Len(t, tiktok, 2)

	tech, err := st.ListEstimates(ctx, Filter{Niche: "tech"})
	require.NoError(t, err)
	assert.Len(t, tech, 2)

	igTech, err := st.ListEstimates(ctx, Filter{Platform: "instagram", Niche: "tech"})
	require.NoError(t, err)
	assert.Len(t, igTech, 1)

	limited, err := st.ListEstimates(ctx, Filter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLite_DeleteOlderThan(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.SaveEstimate(ctx, rates.TikTok, testInput("tech"), testCalcResult())
	require.NoError(t, err)

	n, err := st.DeleteOlderThan(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = st.DeleteOlderThan(ctx, time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := st.ListEstimates(ctx, Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}
