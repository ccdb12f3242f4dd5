package risk

// StressResult is one scenario's outcome. Impact is the expected fractional
// change to monthly earnings (e.g. -0.24 means a 24% drop); callers decide
// how to aggregate across scenarios.
type StressResult struct {
	Scenario    string  `json:"scenario"`
	Probability float64 `json:"probability"`
	Impact      float64 `json:"impact"`
}

// scenario deltas express shocks to the four market drivers; the impact is a
// fixed linear combination of them.
type scenario struct {
	name        string
	probability float64

	platformGrowth float64
	competition    float64
	brandBudget    float64
	regulatory     float64
}

// Driver sensitivities for the linear impact formula.
const (
	growthSensitivity      = 0.40
	brandSensitivity       = 0.25
	competitionSensitivity = 0.20
	regulatorySensitivity  = 0.15
)

// The fixed market scenarios.
var scenarios = []scenario{
	{
		name:           "platform algorithm change",
		probability:    0.30,
		platformGrowth: -0.35,
		competition:    0.10,
	},
	{
		name:        "ad market downturn",
		probability: 0.20,
		brandBudget: -0.45,
		regulatory:  0.05,
	},
	{
		name:           "new competitor platform",
		probability:    0.15,
		platformGrowth: -0.15,
		competition:    0.40,
	},
	{
		name:           "regulatory restriction",
		probability:    0.10,
		regulatory:     0.60,
		platformGrowth: -0.10,
	},
	{
		name:        "economic recession",
		probability: 0.12,
		brandBudget: -0.55,
		competition: 0.15,
	},
}

// runStressTests evaluates every scenario against the monthly estimate.
// monthly is accepted for future per-scenario dollar scaling; the impact
// itself is dimensionless.
func runStressTests(monthly float64) []StressResult {
	_ = monthly
	results := make([]StressResult, 0, len(scenarios))
	for _, s := range scenarios {
		impact := growthSensitivity*s.platformGrowth +
			brandSensitivity*s.brandBudget -
			competitionSensitivity*s.competition -
			regulatorySensitivity*s.regulatory
		results = append(results, StressResult{
			Scenario:    s.name,
			Probability: s.probability,
			Impact:      round2(impact),
		})
	}
	return results
}
