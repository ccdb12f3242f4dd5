package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorpulse/earnings-cli/internal/engine"
	"github.com/creatorpulse/earnings-cli/internal/rates"
)

func testResult(monthly float64, breakdown engine.Breakdown) *engine.CalculationResult {
	return &engine.CalculationResult{
		Platform:        rates.TikTok,
		MonthlyEarnings: monthly,
		YearlyEarnings:  monthly * 12,
		Breakdown:       breakdown,
	}
}

func balancedBreakdown(monthly float64) engine.Breakdown {
	per := monthly / 5
	return engine.Breakdown{
		engine.ChannelCreatorFund:       per,
		engine.ChannelLiveGifts:         per,
		engine.ChannelBrandPartnerships: per,
		engine.ChannelAffiliate:         per,
		engine.ChannelMerchandise:       per,
	}
}

func healthyInput() engine.NormalizedInput {
	return engine.NormalizedInput{
		Followers:      200_000,
		EngagementRate: 5.0,
		AverageViews:   100_000,
		PostFrequency:  5,
		Niche:          "education", // low competition
		Location:       "us",
	}
}

func TestAssess_ScoreInRangeAndTiered(t *testing.T) {
	tables := rates.Default()
	a := Assess(healthyInput(), testResult(5_000, balancedBreakdown(5_000)), tables)

	assert.GreaterOrEqual(t, a.RiskScore, 0.0)
	assert.LessOrEqual(t, a.RiskScore, 1.0)
	assert.Contains(t, []Level{LevelLow, LevelMedium, LevelHigh, LevelCritical}, a.OverallRisk)
	assert.Len(t, a.Factors, 7)
}

func TestAssess_ConfidenceIntervalFormula(t *testing.T) {
	tables := rates.Default()
	monthly := 10_000.0
	a := Assess(healthyInput(), testResult(monthly, balancedBreakdown(monthly)), tables)

	sigma := monthly * (0.1 + a.RiskScore*0.4)
	assert.InDelta(t, monthly-1.96*sigma, a.ConfidenceInterval.Lower, 1.0)
	assert.InDelta(t, monthly, a.ConfidenceInterval.Median, 1e-9)
	assert.InDelta(t, monthly+1.96*sigma, a.ConfidenceInterval.Upper, 1.0)
	assert.GreaterOrEqual(t, a.ConfidenceInterval.Lower, 0.0)
}

func TestAssess_LowerBoundNeverNegative(t *testing.T) {
	tables := rates.Default()
	// High-risk profile: tiny monthly, weak engagement on TikTok.
	in := engine.NormalizedInput{
		Followers:      800,
		EngagementRate: 1.0,
		AverageViews:   40,
		PostFrequency:  1,
		Niche:          "entertainment",
		Location:       "indonesia",
	}
	breakdown := engine.Breakdown{engine.ChannelBrandPartnerships: 14.5, engine.ChannelOther: 1.1}
	a := Assess(in, testResult(15.6, breakdown), tables)

	assert.GreaterOrEqual(t, a.ConfidenceInterval.Lower, 0.0)
	assert.Greater(t, a.RiskScore, 0.5, "weak profile should score high risk")
}

func TestAssess_ConcentrationRisk(t *testing.T) {
	tables := rates.Default()

	concentrated := engine.Breakdown{
		engine.ChannelBrandPartnerships: 9_500,
		engine.ChannelCreatorFund:       500,
	}
	balanced := balancedBreakdown(10_000)

	concA := Assess(healthyInput(), testResult(10_000, concentrated), tables)
	balA := Assess(healthyInput(), testResult(10_000, balanced), tables)

	assert.Greater(t, concA.RiskScore, balA.RiskScore)
}

func TestAssess_DegradesOnNilResult(t *testing.T) {
	a := Assess(healthyInput(), nil, rates.Default())
	assert.Equal(t, LevelMedium, a.OverallRisk)
	assert.InDelta(t, 0.5, a.RiskScore, 1e-9)
}

func TestAssess_StressScenarios(t *testing.T) {
	tables := rates.Default()
	a := Assess(healthyInput(), testResult(5_000, balancedBreakdown(5_000)), tables)

	require.Len(t, a.StressTests, 5)
	for _, st := range a.StressTests {
		assert.NotEmpty(t, st.Scenario)
		assert.Greater(t, st.Probability, 0.0)
		assert.LessOrEqual(t, st.Probability, 1.0)
		// Every documented scenario is adverse.
		assert.Negative(t, st.Impact)
	}
}

func TestAssess_RecommendationsTop3(t *testing.T) {
	tables := rates.Default()
	a := Assess(healthyInput(), testResult(5_000, balancedBreakdown(5_000)), tables)

	require.Len(t, a.Recommendations, 3)
	// Sorted by score × weight descending.
	for i := 1; i < len(a.Recommendations); i++ {
		prev := a.Recommendations[i-1]
		assert.NotEmpty(t, prev.Mitigation)
		assert.GreaterOrEqual(t, prev.ExpectedImpact, 0.0)
	}

	// TikTok platform risk (0.70 × 0.25) should lead for this profile.
	assert.Equal(t, FactorPlatform, a.Recommendations[0].Factor)
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{0.0, LevelLow},
		{0.29, LevelLow},
		{0.3, LevelMedium},
		{0.49, LevelMedium},
		{0.5, LevelHigh},
		{0.69, LevelHigh},
		{0.7, LevelCritical},
		{1.0, LevelCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levelFor(tt.score), "score %.2f", tt.score)
	}
}
