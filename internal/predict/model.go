package predict

import (
	"math"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/creatorpulse/earnings-cli/internal/engine"
	"github.com/creatorpulse/earnings-cli/internal/rates"
)

// ModelVersion identifies the weight set in every prediction.
const ModelVersion = "v2.1.0"

// FallbackVersion marks predictions produced by the degraded path.
const FallbackVersion = "fallback"

// defaultWeights is the fixed feature weight table. It must sum to 1.0
// within ±0.01; NewModel enforces that.
var defaultWeights = map[string]float64{
	FeatFollowers:       0.18,
	FeatEngagement:      0.15,
	FeatAvgViews:        0.12,
	FeatPostFrequency:   0.06,
	FeatNicheScore:      0.08,
	FeatContentQuality:  0.07,
	FeatConsistency:     0.05,
	FeatSaturation:      0.04,
	FeatSeasonality:     0.02,
	FeatCompetition:     0.05,
	FeatPlatformGrowth:  0.04,
	FeatAlgoFavor:       0.03,
	FeatMonetization:    0.04,
	FeatLocationMult:    0.03,
	FeatEconomicIndex:   0.02,
	FeatDigitalAdoption: 0.02,
}

// Model constants.
const (
	scorePerFollower = 0.01 // converts weighted score to a dollar base
	modelAccuracy    = 0.85 // starting confidence before penalties

	l1Lambda  = 0.002
	l2Lambda  = 0.0005
	maxShrink = 0.30

	// Plausibility bounds on the final prediction, as fractions of the
	// follower count.
	lowerBoundPerFollower = 0.001
	upperBoundPerFollower = 0.1
)

// Prediction is the adjustment layer's refined estimate.
type Prediction struct {
	PredictedEarnings float64            `json:"predictedEarnings"`
	Confidence        float64            `json:"confidence"`
	Variance          float64            `json:"variance"`
	FeatureImportance map[string]float64 `json:"featureImportance"`
	ModelVersion      string             `json:"modelVersion"`
}

// Model applies the fixed-weight scoring pass. Safe for concurrent use.
type Model struct {
	tables  *rates.Tables
	weights map[string]float64
	now     func() time.Time
}

// Option configures a Model.
type Option func(*Model)

// WithClock fixes the time source, pinning the seasonality factor in tests.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithWeights replaces the default weight table.
func WithWeights(w map[string]float64) Option {
	return func(m *Model) { m.weights = w }
}

// NewModel builds a model over the given tables. The weight-sum invariant is
// checked here so a bad table is a startup failure, not a runtime one.
func NewModel(tables *rates.Tables, opts ...Option) (*Model, error) {
	if tables == nil {
		return nil, eris.New("predict: nil rate tables")
	}
	m := &Model{
		tables:  tables,
		weights: defaultWeights,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	var sum float64
	for _, w := range m.weights {
		sum += w
	}
	if math.Abs(sum-1.0) > 0.01 {
		return nil, eris.Errorf("predict: feature weights sum to %.4f, want 1.0 ±0.01", sum)
	}
	return m, nil
}

// Predict runs the full pipeline. Errors indicate an internal numeric
// failure; callers substitute FallbackPrediction rather than surfacing them.
func (m *Model) Predict(in engine.NormalizedInput, platform rates.Platform) (Prediction, error) {
	if _, ok := platformProfiles[platform]; !ok {
		return Prediction{}, eris.Wrapf(rates.ErrUnsupportedPlatform, "predict: platform %q", platform)
	}
	niche, _ := m.tables.Niche(in.Niche)
	loc, _ := m.tables.Location(in.Location)

	features := extract(in, platform, niche, loc, m.now().Month())
	transformed := transform(features)

	var score, sumAbs, sumSq float64
	for name, w := range m.weights {
		v := transformed[name]
		score += w * v
		sumAbs += math.Abs(v)
		sumSq += v * v
	}

	pred := score * in.Followers * scorePerFollower

	// Piecewise multiplier curves, then market penalty and seasonality.
	pred *= followerCurve(in.Followers)
	pred *= engagementCurve(in.EngagementRate)
	pred *= 1 - 0.3*features[FeatSaturation]*features[FeatCompetition]
	pred *= features[FeatSeasonality]

	// L1/L2-style shrinkage toward zero.
	shrink := math.Min(maxShrink, l1Lambda*sumAbs+l2Lambda*sumSq)
	pred *= 1 - shrink

	// Plausibility bounds.
	pred = math.Max(pred, in.Followers*lowerBoundPerFollower)
	pred = math.Min(pred, in.Followers*upperBoundPerFollower)
	pred = math.Max(pred, 0)

	if math.IsNaN(pred) || math.IsInf(pred, 0) {
		return Prediction{}, eris.Wrapf(engine.ErrCalculation, "predict: non-finite prediction for %g followers", in.Followers)
	}

	confidence := modelAccuracy
	if in.Followers < 1_000 {
		confidence *= 0.8
	}
	if in.EngagementRate < 1 || in.EngagementRate > 10 {
		confidence *= 0.85
	}
	if in.PostFrequency < 1 {
		confidence *= 0.9
	}

	variance := pred * 0.2 * (1 + features[FeatSaturation]) * (1 + features[FeatCompetition])
	if in.Followers < 10_000 {
		variance *= 1.5
	}

	importance := make(map[string]float64, len(m.weights))
	for name, w := range m.weights {
		importance[name] = w
	}

	return Prediction{
		PredictedEarnings: math.Round(pred*100) / 100,
		Confidence:        confidence,
		Variance:          math.Round(variance*100) / 100,
		FeatureImportance: importance,
		ModelVersion:      ModelVersion,
	}, nil
}

// followerCurve is the 4-band multiplier over audience size.
func followerCurve(followers float64) float64 {
	switch {
	case followers < 1_000:
		return 0.5
	case followers < 10_000:
		return 0.8
	case followers < 100_000:
		return 1.0
	default:
		return 1.2
	}
}

// engagementCurve is the 4-band multiplier over engagement rate.
func engagementCurve(engagement float64) float64 {
	switch {
	case engagement < 1:
		return 0.6
	case engagement < 3:
		return 0.9
	case engagement < 6:
		return 1.1
	default:
		return 1.25
	}
}

// FallbackPrediction is the documented degraded result used whenever the
// pipeline fails: followers × 0.01 × engagementRate/3.5, confidence 0.6.
func FallbackPrediction(in engine.NormalizedInput) Prediction {
	pred := math.Max(0, in.Followers*0.01*in.EngagementRate/3.5)
	zap.L().Warn("predict: using fallback prediction",
		zap.Float64("followers", in.Followers),
		zap.Float64("predicted_earnings", pred),
	)
	return Prediction{
		PredictedEarnings: math.Round(pred*100) / 100,
		Confidence:        0.6,
		Variance:          math.Round(pred*0.5*100) / 100,
		FeatureImportance: map[string]float64{},
		ModelVersion:      FallbackVersion,
	}
}
