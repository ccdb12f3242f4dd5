package engine

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/creatorpulse/earnings-cli/internal/rates"
)

// Calculator turns a normalized creator profile into a channel-by-channel
// earnings breakdown. It is a pure function of its input and the tables it
// was constructed with, so a single instance is safe for concurrent use.
type Calculator struct {
	tables *rates.Tables
}

// NewCalculator validates the tables and returns a calculator. Table
// inconsistencies fail here, at startup, never during a calculation.
func NewCalculator(tables *rates.Tables) (*Calculator, error) {
	if tables == nil {
		return nil, eris.New("engine: nil rate tables")
	}
	if err := tables.Validate(); err != nil {
		return nil, eris.Wrap(err, "engine: validate tables")
	}
	return &Calculator{tables: tables}, nil
}

// Calculate estimates monthly earnings for a creator on the given platform.
// The input must already be normalized; callers go through Normalize first.
func (c *Calculator) Calculate(platform rates.Platform, in NormalizedInput) (*CalculationResult, error) {
	specs, err := platformChannels(platform)
	if err != nil {
		return nil, err
	}
	pr, err := c.tables.Platform(platform)
	if err != nil {
		return nil, err
	}

	niche, knownNiche := c.tables.Niche(in.Niche)
	loc, knownLoc := c.tables.Location(in.Location)
	if !knownNiche || !knownLoc {
		zap.L().Debug("engine: unknown niche or location, using defaults",
			zap.String("niche", in.Niche),
			zap.Bool("niche_known", knownNiche),
			zap.String("location", in.Location),
			zap.Bool("location_known", knownLoc),
		)
	}

	env := &channelEnv{
		in:           in,
		rates:        pr,
		niche:        niche,
		loc:          loc,
		tier:         rates.TierFor(in.Followers),
		monthlyViews: in.AverageViews * in.PostFrequency * weeksPerMonth,
	}

	// Primary channels first; "other" is a fixed fraction of their sum and
	// is computed last so the breakdown-sum invariant holds by construction.
	breakdown := make(Breakdown, len(specs)+1)
	var primarySum float64
	for _, spec := range specs {
		amount := math.Max(0, spec.amount(env))
		breakdown[spec.name] = round2(amount)
		primarySum += breakdown[spec.name]
	}
	breakdown[ChannelOther] = round2(primarySum * pr.OtherRatio)

	monthly := round2(breakdown.Total())
	perPost := monthly / (in.PostFrequency * weeksPerMonth)
	perThousand := 0.0
	if in.AverageViews > 0 {
		perThousand = perPost / in.AverageViews * 1000
	}

	result := &CalculationResult{
		Platform:                 platform,
		MonthlyEarnings:          monthly,
		YearlyEarnings:           round2(monthly * 12),
		PerPostEarnings:          round2(perPost),
		PerThousandViewsEarnings: round2(perThousand),
		Breakdown:                breakdown,
		Factors:                  analyzeFactors(in, platform, niche, loc),
		Tips:                     generateTips(in, niche, loc),
	}

	if err := result.validate(); err != nil {
		return nil, err
	}

	zap.L().Debug("engine: calculation complete",
		zap.String("platform", string(platform)),
		zap.String("tier", string(env.tier)),
		zap.Float64("monthly_earnings", monthly),
	)

	return result, nil
}

// validate rejects non-finite or negative monetary outputs. Hitting this is
// an internal invariant failure, so it wraps ErrCalculation.
func (r *CalculationResult) validate() error {
	check := map[string]float64{
		"monthlyEarnings":          r.MonthlyEarnings,
		"yearlyEarnings":           r.YearlyEarnings,
		"perPostEarnings":          r.PerPostEarnings,
		"perThousandViewsEarnings": r.PerThousandViewsEarnings,
	}
	for name, v := range check {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return eris.Wrapf(ErrCalculation, "%s is %v", name, v)
		}
	}
	for name, v := range r.Breakdown {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return eris.Wrapf(ErrCalculation, "breakdown channel %s is %v", name, v)
		}
	}
	return nil
}
