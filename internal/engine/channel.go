package engine

import (
	"math"

	"github.com/creatorpulse/earnings-cli/internal/rates"
)

// weeksPerMonth converts weekly posting frequency to monthly volume.
const weeksPerMonth = 4.33

// channelEnv carries everything a channel formula can read: the normalized
// input plus the resolved configuration for this calculation.
type channelEnv struct {
	in    NormalizedInput
	rates rates.PlatformRates
	niche rates.NicheConfig
	loc   rates.LocationConfig
	tier  rates.FollowerTier

	// monthlyViews = averageViews × postFrequency × 4.33, the volume basis
	// for views-driven channels.
	monthlyViews float64
}

// channelSpec names one revenue channel and its formula. Each platform is a
// list of these; the calculator itself is platform-agnostic.
type channelSpec struct {
	name   string
	amount func(env *channelEnv) float64
}

// engagementAdj is the shared linear engagement adjustment:
// min(cap, engagementRate/reference). Bounded so a channel can never go
// negative or blow up on outlier engagement.
func (e *channelEnv) engagementAdj() float64 {
	return math.Min(e.rates.EngagementCap, e.in.EngagementRate/e.rates.EngagementRef)
}

// giftAdj is the live-gift engagement term: the power law
// (engagementRate/reference)^exponent capped at GiftCap when an exponent is
// configured, otherwise the linear adjustment.
func (e *channelEnv) giftAdj() float64 {
	if e.rates.GiftExponent <= 0 {
		return e.engagementAdj()
	}
	pow := math.Pow(e.in.EngagementRate/e.rates.EngagementRef, e.rates.GiftExponent)
	return math.Min(e.rates.GiftCap, pow)
}

// loyaltyScore gates membership-style income on audience engagement:
// min(cap, engagementRate/loyaltyRef).
func (e *channelEnv) loyaltyScore() float64 {
	if e.rates.LoyaltyRef <= 0 {
		return 0
	}
	return math.Min(e.rates.LoyaltyCap, e.in.EngagementRate/e.rates.LoyaltyRef)
}

// Shared channel formulas. Views-driven channels use monthlyViews as volume;
// audience-driven channels use followers (brand deals enter through the
// follower tier).

func creatorFundAmount(e *channelEnv) float64 {
	return e.monthlyViews / 1000 * e.rates.CPM.Avg * e.rates.RevenueShare *
		e.niche.Multiplier * e.loc.Multiplier * e.engagementAdj()
}

func liveGiftsAmount(e *channelEnv) float64 {
	return e.in.Followers * e.rates.LiveGiftRate * e.giftAdj() * e.loc.Multiplier
}

func brandPartnershipsAmount(e *channelEnv) float64 {
	return e.rates.BrandDealAvg[e.tier] * e.rates.SponsoredPerMonth *
		e.niche.Multiplier * e.loc.Multiplier * e.engagementAdj() * e.rates.TierAdjust[e.tier]
}

func affiliateAmount(e *channelEnv) float64 {
	return e.monthlyViews / 1000 * e.rates.AffiliateCPM *
		e.niche.Multiplier * e.loc.Multiplier * e.engagementAdj()
}

func merchandiseAmount(e *channelEnv) float64 {
	return e.in.Followers * e.rates.MerchRate *
		e.niche.Multiplier * e.loc.Multiplier * e.engagementAdj()
}

func membershipsAmount(e *channelEnv) float64 {
	return e.in.Followers * e.rates.MembershipFraction * e.rates.MembershipNet *
		e.loyaltyScore() * e.loc.Multiplier
}

func superChatAmount(e *channelEnv) float64 {
	return e.in.Followers * e.rates.SuperChatFraction * e.rates.SuperChatAvg *
		e.loyaltyScore() * e.loc.Multiplier
}
