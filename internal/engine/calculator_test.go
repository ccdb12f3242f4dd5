package engine

import (
	"math"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorpulse/earnings-cli/internal/rates"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	calc, err := NewCalculator(rates.Default())
	require.NoError(t, err)
	return calc
}

func mustNormalize(t *testing.T, raw RawInput) NormalizedInput {
	t.Helper()
	in, err := Normalize(raw)
	require.NoError(t, err)
	return in
}

func midTierTikTokInput(t *testing.T) NormalizedInput {
	return mustNormalize(t, RawInput{
		Followers:      fptr(100_000),
		AverageViews:   fptr(50_000),
		EngagementRate: fptr(5.2),
		Niche:          "tech",
		Location:       "us",
		PostFrequency:  fptr(7),
	})
}

func TestCalculate_UnsupportedPlatform(t *testing.T) {
	calc := newTestCalculator(t)

	_, err := calc.Calculate(rates.Platform("vine"), midTierTikTokInput(t))
	require.Error(t, err)
	assert.True(t, eris.Is(err, rates.ErrUnsupportedPlatform))
}

func TestCalculate_TikTokScenario(t *testing.T) {
	calc := newTestCalculator(t)

	result, err := calc.Calculate(rates.TikTok, midTierTikTokInput(t))
	require.NoError(t, err)

	// Exactly the six TikTok channels.
	wantChannels := []string{
		ChannelCreatorFund, ChannelLiveGifts, ChannelBrandPartnerships,
		ChannelAffiliate, ChannelMerchandise, ChannelOther,
	}
	assert.Len(t, result.Breakdown, len(wantChannels))
	for _, ch := range wantChannels {
		v, ok := result.Breakdown[ch]
		assert.True(t, ok, "missing channel %s", ch)
		assert.GreaterOrEqual(t, v, 0.0)
	}

	assert.InDelta(t, result.MonthlyEarnings, result.Breakdown.Total(), 0.01)
	assert.Positive(t, result.MonthlyEarnings)
}

func TestCalculate_SumAndYearlyInvariants(t *testing.T) {
	calc := newTestCalculator(t)

	for _, platform := range []rates.Platform{rates.TikTok, rates.Instagram, rates.YouTube} {
		t.Run(string(platform), func(t *testing.T) {
			result, err := calc.Calculate(platform, midTierTikTokInput(t))
			require.NoError(t, err)

			assert.InDelta(t, result.MonthlyEarnings, result.Breakdown.Total(), 0.01)
			assert.InDelta(t, math.Round(result.MonthlyEarnings*12*100)/100, result.YearlyEarnings, 1e-9)
		})
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	calc := newTestCalculator(t)
	in := midTierTikTokInput(t)

	first, err := calc.Calculate(rates.TikTok, in)
	require.NoError(t, err)
	second, err := calc.Calculate(rates.TikTok, in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculate_MonotonicInFollowers(t *testing.T) {
	calc := newTestCalculator(t)

	var prev float64
	for _, followers := range []float64{500, 5_000, 50_000, 250_000, 750_000, 2_000_000} {
		in := mustNormalize(t, RawInput{
			Followers:      fptr(followers),
			AverageViews:   fptr(20_000),
			EngagementRate: fptr(4.0),
			PostFrequency:  fptr(5),
		})
		result, err := calc.Calculate(rates.TikTok, in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.MonthlyEarnings, prev,
			"earnings dropped at %.0f followers", followers)
		prev = result.MonthlyEarnings
	}
}

func TestCalculate_MonotonicInEngagement(t *testing.T) {
	calc := newTestCalculator(t)

	var prev float64
	for _, engagement := range []float64{2, 3, 4, 5, 6, 7, 8} {
		in := mustNormalize(t, RawInput{
			Followers:      fptr(100_000),
			AverageViews:   fptr(30_000),
			EngagementRate: fptr(engagement),
			PostFrequency:  fptr(4),
		})
		result, err := calc.Calculate(rates.TikTok, in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.MonthlyEarnings, prev,
			"earnings dropped at %.0f%% engagement", engagement)
		prev = result.MonthlyEarnings
	}
}

func TestCalculate_HigherNicheMultiplierEarnsMore(t *testing.T) {
	calc := newTestCalculator(t)

	base := RawInput{
		Followers:      fptr(80_000),
		AverageViews:   fptr(25_000),
		EngagementRate: fptr(4.5),
		Location:       "us",
		PostFrequency:  fptr(5),
	}

	lifestyle := base
	lifestyle.Niche = "lifestyle"
	tech := base
	tech.Niche = "tech"

	lifestyleResult, err := calc.Calculate(rates.TikTok, mustNormalize(t, lifestyle))
	require.NoError(t, err)
	techResult, err := calc.Calculate(rates.TikTok, mustNormalize(t, tech))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, techResult.MonthlyEarnings, lifestyleResult.MonthlyEarnings)
}

func TestCalculate_TinyAccountStaysSmall(t *testing.T) {
	calc := newTestCalculator(t)

	in := mustNormalize(t, RawInput{
		Followers:      fptr(100),
		EngagementRate: fptr(3.5),
	})
	result, err := calc.Calculate(rates.TikTok, in)
	require.NoError(t, err)

	assert.Less(t, result.MonthlyEarnings, 100.0)
}

func TestCalculate_MegaAccountWithinPlausibilityBounds(t *testing.T) {
	calc := newTestCalculator(t)

	in := mustNormalize(t, RawInput{
		Followers:      fptr(5e7),
		EngagementRate: fptr(15),
	})
	result, err := calc.Calculate(rates.TikTok, in)
	require.NoError(t, err)

	assert.Greater(t, result.MonthlyEarnings, 10_000.0)
	assert.Less(t, result.MonthlyEarnings, 1_000_000.0)
}

func TestCalculate_YouTubeSubMonetizationFloor(t *testing.T) {
	calc := newTestCalculator(t)

	in := mustNormalize(t, RawInput{
		Subscribers:     fptr(500),
		AverageViews:    fptr(100),
		EngagementRate:  fptr(5.0),
		Niche:           "entertainment",
		Location:        "us",
		UploadFrequency: fptr(1),
	})
	result, err := calc.Calculate(rates.YouTube, in)
	require.NoError(t, err)

	assert.Less(t, result.Breakdown[ChannelAdRevenue], 100.0)
}

func TestCalculate_YouTubeChannelSet(t *testing.T) {
	calc := newTestCalculator(t)

	result, err := calc.Calculate(rates.YouTube, midTierTikTokInput(t))
	require.NoError(t, err)

	for _, ch := range []string{ChannelAdRevenue, ChannelMemberships, ChannelSuperChat} {
		assert.Contains(t, result.Breakdown, ch)
	}
	assert.NotContains(t, result.Breakdown, ChannelCreatorFund)
	assert.NotContains(t, result.Breakdown, ChannelLiveGifts)
}

func TestCalculate_ZeroViewsGuardsDerivedMetrics(t *testing.T) {
	calc := newTestCalculator(t)

	in := mustNormalize(t, RawInput{
		Followers:      fptr(1_000),
		EngagementRate: fptr(3),
		AverageViews:   fptr(0),
	})
	result, err := calc.Calculate(rates.TikTok, in)
	require.NoError(t, err)

	assert.Zero(t, result.PerThousandViewsEarnings)
	assert.False(t, math.IsNaN(result.PerPostEarnings))
	assert.False(t, math.IsInf(result.PerPostEarnings, 0))
}

func TestNewCalculator_RejectsBrokenTables(t *testing.T) {
	tables := rates.Default()
	r := tables.Platforms[rates.TikTok]
	r.CPM.Avg = 99 // outside declared range
	tables.Platforms[rates.TikTok] = r

	_, err := NewCalculator(tables)
	require.Error(t, err)
	assert.True(t, eris.Is(err, rates.ErrMissingConfiguration))
}
