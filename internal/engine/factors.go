package engine

import (
	"fmt"
	"math"

	"github.com/creatorpulse/earnings-cli/internal/rates"
)

// Impact classifies how strongly a factor moves the estimate.
type Impact string

// Impact levels.
const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// Factor is one human-readable influence on the estimate.
type Factor struct {
	Score       float64 `json:"score"`
	Impact      Impact  `json:"impact"`
	Description string  `json:"description"`
}

// InfluencingFactors reports the five factor scores alongside every result.
type InfluencingFactors struct {
	Engagement  Factor `json:"engagement"`
	Niche       Factor `json:"niche"`
	Location    Factor `json:"location"`
	Consistency Factor `json:"consistency"`
	Quality     Factor `json:"quality"`
}

// engagementBreakpoints holds the per-platform medium/high thresholds
// (engagement rate %). These are fixed contract values.
var engagementBreakpoints = map[rates.Platform]struct{ medium, high float64 }{
	rates.TikTok:    {medium: 4.0, high: 6.0},
	rates.Instagram: {medium: 3.5, high: 5.0},
	rates.YouTube:   {medium: 4.5, high: 7.0},
}

// qualityScore approximates content quality from reach efficiency:
// min(1, averageViews/followers × 2). Zero followers scores zero.
func qualityScore(in NormalizedInput) float64 {
	if in.Followers <= 0 {
		return 0
	}
	return math.Min(1, in.AverageViews/in.Followers*2)
}

func analyzeFactors(in NormalizedInput, platform rates.Platform, niche rates.NicheConfig, loc rates.LocationConfig) InfluencingFactors {
	bp := engagementBreakpoints[platform]

	engagement := Factor{
		Score:       in.EngagementRate,
		Impact:      ImpactLow,
		Description: fmt.Sprintf("%.1f%% engagement rate", in.EngagementRate),
	}
	switch {
	case in.EngagementRate >= bp.high:
		engagement.Impact = ImpactHigh
	case in.EngagementRate >= bp.medium:
		engagement.Impact = ImpactMedium
	}

	nicheFactor := Factor{
		Score:       niche.Multiplier,
		Impact:      ImpactLow,
		Description: niche.Description,
	}
	switch {
	case niche.Multiplier >= 1.5:
		nicheFactor.Impact = ImpactHigh
	case niche.Multiplier >= 1.2:
		nicheFactor.Impact = ImpactMedium
	}

	location := Factor{
		Score:       loc.Multiplier,
		Impact:      ImpactLow,
		Description: fmt.Sprintf("%s market, %.2fx earnings multiplier", loc.Maturity, loc.Multiplier),
	}
	switch {
	case loc.Multiplier >= 0.9:
		location.Impact = ImpactHigh
	case loc.Multiplier >= 0.6:
		location.Impact = ImpactMedium
	}

	consistency := Factor{
		Score:       in.PostFrequency,
		Impact:      ImpactLow,
		Description: fmt.Sprintf("%.0f posts per week", in.PostFrequency),
	}
	switch {
	case in.PostFrequency >= 7:
		consistency.Impact = ImpactHigh
	case in.PostFrequency >= 3:
		consistency.Impact = ImpactMedium
	}

	quality := Factor{
		Score:       round2(qualityScore(in)),
		Impact:      ImpactLow,
		Description: "views relative to audience size",
	}
	switch {
	case quality.Score >= 0.8:
		quality.Impact = ImpactHigh
	case quality.Score >= 0.4:
		quality.Impact = ImpactMedium
	}

	return InfluencingFactors{
		Engagement:  engagement,
		Niche:       nicheFactor,
		Location:    location,
		Consistency: consistency,
		Quality:     quality,
	}
}

// maxTips caps the advice list length.
const maxTips = 8

// generateTips builds a prioritized recommendation list. Rules run in a
// fixed order; earlier rules win when the cap truncates the list, and that
// ordering is part of the observable contract.
func generateTips(in NormalizedInput, niche rates.NicheConfig, loc rates.LocationConfig) []string {
	type rule struct {
		applies bool
		tip     string
	}

	rules := []rule{
		{in.EngagementRate < 2,
			"Boost engagement by replying to comments within the first hour and ending videos with a question."},
		{in.PostFrequency < 3,
			"Post at least 3 times per week; consistent output is the strongest driver of steady growth."},
		{qualityScore(in) < 0.4,
			"Improve your hook in the first 3 seconds; your views lag your audience size."},
		{niche.Multiplier < 1.2,
			"Cover higher-value subtopics inside your niche to attract better-paying sponsors."},
		{in.Followers < 10_000,
			"Collaborate with creators of similar size and ride trending formats to accelerate follower growth."},
		{in.EngagementRate > 8,
			"Your audience is highly engaged; add live sessions or a membership offer to monetize that loyalty."},
		{in.AverageViews > in.Followers && in.Followers > 0,
			"Your content reaches beyond your audience; add clear follow prompts to convert viewers."},
		{loc.Multiplier < 0.6,
			"Produce some content aimed at higher-spending markets to raise your effective rates."},
	}

	seen := make(map[string]struct{}, len(rules))
	var tips []string
	for _, r := range rules {
		if !r.applies {
			continue
		}
		if _, dup := seen[r.tip]; dup {
			continue
		}
		seen[r.tip] = struct{}{}
		tips = append(tips, r.tip)
		if len(tips) == maxTips {
			break
		}
	}
	return tips
}
