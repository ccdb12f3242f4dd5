// Package risk derives a weighted risk assessment and a confidence interval
// around a finished earnings calculation. It never fails outward: any
// internal problem degrades to a documented medium-risk default so a risk
// hiccup cannot block returning an estimate.
package risk

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/creatorpulse/earnings-cli/internal/engine"
	"github.com/creatorpulse/earnings-cli/internal/rates"
)

// Level is the overall risk tier.
type Level string

// Risk tiers, thresholds at 0.3 / 0.5 / 0.7.
const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Factor names.
const (
	FactorPlatform      = "platform"
	FactorConcentration = "concentration"
	FactorCompetition   = "competition"
	FactorQuality       = "contentQuality"
	FactorGeographic    = "geographic"
	FactorRegulatory    = "regulatory"
	FactorTechnical     = "technical"
)

// factorWeights is the fixed weighting of the seven risk factors.
var factorWeights = map[string]float64{
	FactorPlatform:      0.25,
	FactorConcentration: 0.20,
	FactorCompetition:   0.15,
	FactorQuality:       0.15,
	FactorGeographic:    0.10,
	FactorRegulatory:    0.10,
	FactorTechnical:     0.05,
}

// Platform dependence and regulatory exposure lookups.
var (
	platformRisk = map[rates.Platform]float64{
		rates.TikTok:    0.70,
		rates.Instagram: 0.50,
		rates.YouTube:   0.35,
	}
	regulatoryRisk = map[rates.Platform]float64{
		rates.TikTok:    0.80,
		rates.Instagram: 0.40,
		rates.YouTube:   0.30,
	}
)

// Interval is the normal-approximation confidence interval around the
// monthly estimate.
type Interval struct {
	Lower  float64 `json:"lower"`
	Median float64 `json:"median"`
	Upper  float64 `json:"upper"`
}

// Volatility reports the dispersion behind the interval.
type Volatility struct {
	StandardDeviation      float64 `json:"standardDeviation"`
	CoefficientOfVariation float64 `json:"coefficientOfVariation"`
}

// Factor is one scored risk component.
type Factor struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`  // 0-1
	Weight float64 `json:"weight"`
}

// Recommendation maps a leading risk factor to a mitigation.
type Recommendation struct {
	Factor         string  `json:"factor"`
	Mitigation     string  `json:"mitigation"`
	ExpectedImpact float64 `json:"expectedImpact"` // (1-score) × weight × 100
}

// Assessment is the full risk output, recomputed per call and never stored
// by this package.
type Assessment struct {
	OverallRisk        Level            `json:"overallRisk"`
	RiskScore          float64          `json:"riskScore"`
	ConfidenceInterval Interval         `json:"confidenceInterval"`
	Volatility         Volatility       `json:"volatilityMetrics"`
	Factors            []Factor         `json:"factors"`
	StressTests        []StressResult   `json:"stressTests"`
	Recommendations    []Recommendation `json:"recommendations"`
}

// Assess scores the seven risk factors for a finished calculation. A nil or
// degenerate input falls back to DefaultAssessment rather than failing.
func Assess(in engine.NormalizedInput, result *engine.CalculationResult, tables *rates.Tables) Assessment {
	if result == nil || tables == nil {
		zap.L().Warn("risk: missing result or tables, using default assessment")
		return DefaultAssessment(0)
	}

	niche, _ := tables.Niche(in.Niche)
	loc, _ := tables.Location(in.Location)

	factors := []Factor{
		{FactorPlatform, lookupOr(platformRisk, result.Platform, 0.5), factorWeights[FactorPlatform]},
		{FactorConcentration, concentrationScore(result.Breakdown), factorWeights[FactorConcentration]},
		{FactorCompetition, niche.CompetitionLevel, factorWeights[FactorCompetition]},
		{FactorQuality, qualityRisk(in), factorWeights[FactorQuality]},
		{FactorGeographic, geographicRisk(loc), factorWeights[FactorGeographic]},
		{FactorRegulatory, lookupOr(regulatoryRisk, result.Platform, 0.4), factorWeights[FactorRegulatory]},
		{FactorTechnical, technicalRisk(in), factorWeights[FactorTechnical]},
	}

	var weighted, weightSum float64
	for _, f := range factors {
		weighted += f.Score * f.Weight
		weightSum += f.Weight
	}
	score := weighted / weightSum
	if math.IsNaN(score) || math.IsInf(score, 0) {
		zap.L().Warn("risk: non-finite risk score, using default assessment")
		return DefaultAssessment(result.MonthlyEarnings)
	}
	score = round2(score)

	monthly := result.MonthlyEarnings

	// Known approximation: assumes normally distributed earnings with a
	// heuristic sigma, not one derived from historical variance.
	sigma := monthly * (0.1 + score*0.4)

	assessment := Assessment{
		OverallRisk: levelFor(score),
		RiskScore:   score,
		ConfidenceInterval: Interval{
			Lower:  round2(math.Max(0, monthly-1.96*sigma)),
			Median: round2(monthly),
			Upper:  round2(monthly + 1.96*sigma),
		},
		Volatility: Volatility{
			StandardDeviation:      round2(sigma),
			CoefficientOfVariation: round2(safeDiv(sigma, monthly)),
		},
		Factors:         factors,
		StressTests:     runStressTests(monthly),
		Recommendations: recommend(factors),
	}
	return assessment
}

// DefaultAssessment is the degraded medium-risk result used when scoring
// cannot proceed.
func DefaultAssessment(monthly float64) Assessment {
	const score = 0.5
	sigma := monthly * (0.1 + score*0.4)
	return Assessment{
		OverallRisk: LevelMedium,
		RiskScore:   score,
		ConfidenceInterval: Interval{
			Lower:  round2(math.Max(0, monthly-1.96*sigma)),
			Median: round2(monthly),
			Upper:  round2(monthly + 1.96*sigma),
		},
		Volatility: Volatility{
			StandardDeviation:      round2(sigma),
			CoefficientOfVariation: round2(safeDiv(sigma, monthly)),
		},
		StressTests: runStressTests(monthly),
	}
}

func levelFor(score float64) Level {
	switch {
	case score < 0.3:
		return LevelLow
	case score < 0.5:
		return LevelMedium
	case score < 0.7:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// concentrationScore is the largest channel's share of total earnings; a
// creator living off one channel carries that share as risk.
func concentrationScore(b engine.Breakdown) float64 {
	total := b.Total()
	if total <= 0 {
		return 0.5
	}
	var max float64
	for _, v := range b {
		if v > max {
			max = v
		}
	}
	return math.Min(1, max/total)
}

// qualityRisk rises when engagement or reach efficiency is weak.
func qualityRisk(in engine.NormalizedInput) float64 {
	viewRatio := 0.0
	if in.Followers > 0 {
		viewRatio = in.AverageViews / in.Followers
	}
	switch {
	case in.EngagementRate < 2 || viewRatio < 0.1:
		return 0.8
	case in.EngagementRate < 4 || viewRatio < 0.3:
		return 0.5
	default:
		return 0.2
	}
}

func geographicRisk(loc rates.LocationConfig) float64 {
	switch loc.Maturity {
	case rates.MarketMature:
		return 0.2
	case rates.MarketGrowing:
		return 0.5
	default:
		return 0.7
	}
}

func technicalRisk(in engine.NormalizedInput) float64 {
	// Baseline platform/tooling exposure, worse for inconsistent posters.
	if in.PostFrequency < 2 {
		return 0.5
	}
	return 0.3
}

// recommend returns mitigations for the top-3 factors by score × weight.
func recommend(factors []Factor) []Recommendation {
	mitigations := map[string]string{
		FactorPlatform:      "Expand to a second platform to reduce dependence on one algorithm and payout policy.",
		FactorConcentration: "Grow your smaller revenue channels so no single source dominates your income.",
		FactorCompetition:   "Sharpen a distinctive angle within your niche to stand out from the crowd.",
		FactorQuality:       "Invest in content quality; weak engagement compounds into weaker reach over time.",
		FactorGeographic:    "Broaden your audience into mature ad markets to stabilize sponsorship rates.",
		FactorRegulatory:    "Keep a direct audience channel (email, community) as a hedge against platform restrictions.",
		FactorTechnical:     "Maintain a consistent posting pipeline; irregular output amplifies algorithm swings.",
	}

	sorted := make([]Factor, len(factors))
	copy(sorted, factors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score*sorted[i].Weight > sorted[j].Score*sorted[j].Weight
	})

	n := 3
	if len(sorted) < n {
		n = len(sorted)
	}
	recs := make([]Recommendation, 0, n)
	for _, f := range sorted[:n] {
		recs = append(recs, Recommendation{
			Factor:         f.Name,
			Mitigation:     mitigations[f.Name],
			ExpectedImpact: round2((1 - f.Score) * f.Weight * 100),
		})
	}
	return recs
}

func lookupOr(m map[rates.Platform]float64, p rates.Platform, def float64) float64 {
	if v, ok := m[p]; ok {
		return v
	}
	return def
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
