package engine

import (
	"math"

	"github.com/creatorpulse/earnings-cli/internal/rates"
)

// Channel names. These strings are part of the JSON contract with callers.
const (
	ChannelCreatorFund       = "creatorFund"
	ChannelLiveGifts         = "liveGifts"
	ChannelBrandPartnerships = "brandPartnerships"
	ChannelAffiliate         = "affiliateMarketing"
	ChannelMerchandise       = "merchandise"
	ChannelOther             = "other"

	// YouTube-specific channels.
	ChannelAdRevenue   = "adRevenue"
	ChannelMemberships = "memberships"
	ChannelSuperChat   = "superChat"
)

// Breakdown maps channel name to estimated monthly USD. Values are always
// finite and non-negative, and sum to the monthly total within 0.01.
type Breakdown map[string]float64

// Total returns the sum of all channel amounts.
func (b Breakdown) Total() float64 {
	var sum float64
	for _, v := range b {
		sum += v
	}
	return sum
}

// CalculationResult is the full output of one earnings estimation. It is
// constructed once per call and never mutated afterwards.
type CalculationResult struct {
	Platform                 rates.Platform      `json:"platform"`
	MonthlyEarnings          float64             `json:"monthlyEarnings"`
	YearlyEarnings           float64             `json:"yearlyEarnings"`
	PerPostEarnings          float64             `json:"perPostEarnings"`
	PerThousandViewsEarnings float64             `json:"perThousandViewsEarnings"`
	Breakdown                Breakdown           `json:"breakdown"`
	Factors                  InfluencingFactors  `json:"factors"`
	Tips                     []string            `json:"tips"`
}

// round2 rounds to 2 decimal places. Applied only at result boundaries;
// intermediate math keeps full precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
