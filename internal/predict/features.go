// Package predict refines the base earnings estimate with a fixed-weight
// feature model: extraction, log/z-score transforms, a weighted sum,
// piecewise multiplier curves, and shrinkage. Weights are static; nothing is
// trained at runtime.
package predict

import (
	"math"
	"time"

	"github.com/creatorpulse/earnings-cli/internal/engine"
	"github.com/creatorpulse/earnings-cli/internal/rates"
)

// Feature names, used as keys in the weight table and feature importance.
const (
	FeatFollowers       = "followerCount"
	FeatEngagement      = "engagementRate"
	FeatAvgViews        = "averageViews"
	FeatPostFrequency   = "postFrequency"
	FeatNicheScore      = "nicheScore"
	FeatContentQuality  = "contentQualityScore"
	FeatConsistency     = "consistencyScore"
	FeatSaturation      = "marketSaturation"
	FeatSeasonality     = "seasonalityFactor"
	FeatCompetition     = "competitionIndex"
	FeatPlatformGrowth  = "platformGrowth"
	FeatAlgoFavor       = "algorithmFavorability"
	FeatMonetization    = "monetizationMaturity"
	FeatLocationMult    = "locationMultiplier"
	FeatEconomicIndex   = "economicIndex"
	FeatDigitalAdoption = "digitalAdoptionRate"
)

// featureVector is the fixed-shape input to the model.
type featureVector map[string]float64

// platformProfile holds per-platform model constants.
type platformProfile struct {
	growth       float64 // audience growth momentum, 0-1
	algoFavor    float64 // how much the feed algorithm boosts small creators, 0-1
	monetization float64 // maturity of built-in monetization features, 0-1
}

var platformProfiles = map[rates.Platform]platformProfile{
	rates.TikTok:    {growth: 0.85, algoFavor: 0.75, monetization: 0.55},
	rates.Instagram: {growth: 0.60, algoFavor: 0.65, monetization: 0.75},
	rates.YouTube:   {growth: 0.50, algoFavor: 0.70, monetization: 0.90},
}

// seasonalityByMonth reflects ad-budget cycles: Q4 peaks, January trough.
var seasonalityByMonth = [13]float64{
	0,    // unused, months are 1-based
	0.85, // January
	0.90,
	0.95,
	1.00,
	1.00,
	0.95,
	0.90, // July
	0.95,
	1.00,
	1.05,
	1.15, // November
	1.20, // December
}

// extract builds the feature vector from a normalized input plus resolved
// niche/location config.
func extract(in engine.NormalizedInput, platform rates.Platform, niche rates.NicheConfig, loc rates.LocationConfig, month time.Month) featureVector {
	profile := platformProfiles[platform]

	quality := 0.0
	if in.Followers > 0 {
		quality = math.Min(1, in.AverageViews/in.Followers*2)
	}
	// Consistency saturates at daily posting.
	consistency := math.Min(1, in.PostFrequency/7)
	// Saturation blends niche crowding with how saturated the market's
	// social usage already is.
	saturation := math.Min(1, niche.CompetitionLevel*0.7+loc.SocialPenetration*0.3)

	return featureVector{
		FeatFollowers:       in.Followers,
		FeatEngagement:      in.EngagementRate,
		FeatAvgViews:        in.AverageViews,
		FeatPostFrequency:   in.PostFrequency,
		FeatNicheScore:      (niche.BrandAffinity + niche.AudienceValue) / 2,
		FeatContentQuality:  quality,
		FeatConsistency:     consistency,
		FeatSaturation:      saturation,
		FeatSeasonality:     seasonalityByMonth[month],
		FeatCompetition:     niche.CompetitionLevel,
		FeatPlatformGrowth:  profile.growth,
		FeatAlgoFavor:       profile.algoFavor,
		FeatMonetization:    profile.monetization,
		FeatLocationMult:    loc.Multiplier,
		FeatEconomicIndex:   loc.PurchasingPower / 2, // scale to 0-1
		FeatDigitalAdoption: loc.SocialPenetration,
	}
}

// Fixed historical constants for z-score standardization of bounded features.
const (
	engagementMean = 3.2
	engagementStd  = 2.1
	frequencyMean  = 4.5
	frequencyStd   = 3.0
)

// transform applies log10 to heavy-tailed features and z-scores to
// bounded-range ones; everything else passes through.
func transform(f featureVector) featureVector {
	out := make(featureVector, len(f))
	for name, v := range f {
		switch name {
		case FeatFollowers, FeatAvgViews:
			out[name] = math.Log10(1 + v)
		case FeatEngagement:
			out[name] = (v - engagementMean) / engagementStd
		case FeatPostFrequency:
			out[name] = (v - frequencyMean) / frequencyStd
		default:
			out[name] = v
		}
	}
	return out
}
