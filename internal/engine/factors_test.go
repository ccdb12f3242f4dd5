package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorpulse/earnings-cli/internal/rates"
)

func TestAnalyzeFactors_EngagementBreakpoints(t *testing.T) {
	tables := rates.Default()
	niche, _ := tables.Niche("lifestyle")
	loc, _ := tables.Location("us")

	tests := []struct {
		name       string
		engagement float64
		want       Impact
	}{
		{"low", 1.5, ImpactLow},
		{"just below medium", 3.9, ImpactLow},
		{"medium", 4.0, ImpactMedium},
		{"high", 6.0, ImpactHigh},
		{"far above high", 12.0, ImpactHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := mustNormalize(t, RawInput{
				Followers:      fptr(50_000),
				EngagementRate: fptr(tt.engagement),
			})
			factors := analyzeFactors(in, rates.TikTok, niche, loc)
			assert.Equal(t, tt.want, factors.Engagement.Impact)
		})
	}
}

func TestAnalyzeFactors_QualityScore(t *testing.T) {
	tables := rates.Default()
	niche, _ := tables.Niche("lifestyle")
	loc, _ := tables.Location("other")

	// 50k views on 100k followers: 0.5 ratio × 2 = 1.0, capped.
	in := mustNormalize(t, RawInput{
		Followers:      fptr(100_000),
		AverageViews:   fptr(50_000),
		EngagementRate: fptr(4),
	})
	factors := analyzeFactors(in, rates.TikTok, niche, loc)
	assert.InDelta(t, 1.0, factors.Quality.Score, 0.001)
	assert.Equal(t, ImpactHigh, factors.Quality.Impact)

	// 5k views on 100k followers: 0.05 × 2 = 0.1.
	weak := mustNormalize(t, RawInput{
		Followers:      fptr(100_000),
		AverageViews:   fptr(5_000),
		EngagementRate: fptr(4),
	})
	factors = analyzeFactors(weak, rates.TikTok, niche, loc)
	assert.InDelta(t, 0.1, factors.Quality.Score, 0.001)
	assert.Equal(t, ImpactLow, factors.Quality.Impact)
}

func TestGenerateTips_OrderAndCap(t *testing.T) {
	tables := rates.Default()
	niche, _ := tables.Niche("lifestyle") // multiplier 1.0, triggers niche tip
	loc, _ := tables.Location("india")    // multiplier 0.30, triggers geo tip

	// Trip as many rules as possible at once.
	in := mustNormalize(t, RawInput{
		Followers:      fptr(500),
		EngagementRate: fptr(1.0),
		AverageViews:   fptr(10),
		PostFrequency:  fptr(1),
		Niche:          "lifestyle",
		Location:       "india",
	})

	tips := generateTips(in, niche, loc)
	require.NotEmpty(t, tips)
	assert.LessOrEqual(t, len(tips), maxTips)

	// The engagement rule fires first; its tip must lead the list.
	assert.Contains(t, tips[0], "engagement")

	// Deduplicated.
	seen := map[string]struct{}{}
	for _, tip := range tips {
		_, dup := seen[tip]
		assert.False(t, dup, "duplicate tip: %s", tip)
		seen[tip] = struct{}{}
	}
}

func TestGenerateTips_HealthyProfileGetsFewTips(t *testing.T) {
	tables := rates.Default()
	niche, _ := tables.Niche("tech")
	loc, _ := tables.Location("us")

	in := mustNormalize(t, RawInput{
		Followers:      fptr(500_000),
		EngagementRate: fptr(5),
		AverageViews:   fptr(300_000),
		PostFrequency:  fptr(7),
		Niche:          "tech",
		Location:       "us",
	})

	tips := generateTips(in, niche, loc)
	assert.LessOrEqual(t, len(tips), 2)
}
