package rates

import "github.com/rotisserie/eris"

// ErrMissingConfiguration signals a rate table missing a required sub-key.
// It indicates a deployment or config bug and is surfaced at load time.
var ErrMissingConfiguration = eris.New("rates: missing configuration")

// CPMRange holds the min/avg/max cost per 1,000 views for a platform's
// views-driven primary channel.
type CPMRange struct {
	Min float64 `yaml:"min"`
	Avg float64 `yaml:"avg"`
	Max float64 `yaml:"max"`
}

// PlatformRates holds the per-platform rate data driving every channel
// calculation. Monetary values are USD.
type PlatformRates struct {
	// Views-driven primary channel (creator fund / ad revenue).
	CPM          CPMRange `yaml:"cpm"`
	RevenueShare float64  `yaml:"revenue_share"` // creator's cut of CPM revenue; 1.0 when the platform pays flat fund rates

	// Engagement adjustment: amount scales with engagementRate/EngagementRef,
	// capped at EngagementCap so outliers cannot blow up a channel.
	EngagementRef float64 `yaml:"engagement_ref"` // %, the 1.0x point
	EngagementCap float64 `yaml:"engagement_cap"`

	// Live gifts. GiftExponent > 0 switches the engagement term to the
	// power law (engagement/ref)^exponent, capped at GiftCap.
	LiveGiftRate float64 `yaml:"live_gift_rate"` // $ per follower per month
	GiftExponent float64 `yaml:"gift_exponent"`
	GiftCap      float64 `yaml:"gift_cap"`

	// Brand deals: flat per-tier deal averages times a monthly cadence,
	// stepped by the tier adjustment.
	BrandDealAvg      map[FollowerTier]float64 `yaml:"brand_deal_avg"` // $ per sponsored post
	SponsoredPerMonth float64                  `yaml:"sponsored_per_month"`
	TierAdjust        map[FollowerTier]float64 `yaml:"tier_adjust"`

	// Affiliate marketing ($ per 1,000 views) and merchandise ($ per
	// follower per month).
	AffiliateCPM float64 `yaml:"affiliate_cpm"`
	MerchRate    float64 `yaml:"merch_rate"`

	// YouTube-only: memberships and Super Chat against a loyal fraction of
	// subscribers. loyaltyScore = min(LoyaltyCap, engagement/LoyaltyRef).
	MembershipFraction float64 `yaml:"membership_fraction"`
	MembershipNet      float64 `yaml:"membership_net"` // $ per member per month after platform cut
	SuperChatFraction  float64 `yaml:"superchat_fraction"`
	SuperChatAvg       float64 `yaml:"superchat_avg"` // $ per contributing viewer per month
	LoyaltyRef         float64 `yaml:"loyalty_ref"`
	LoyaltyCap         float64 `yaml:"loyalty_cap"`

	// Everything-else bucket, as a fraction of the primary channel sum.
	OtherRatio float64 `yaml:"other_ratio"`

	// Content-format multipliers, declared per platform.
	ContentTypeMult map[string]float64 `yaml:"content_type_mult"`
}

func defaultPlatformRates() map[Platform]PlatformRates {
	return map[Platform]PlatformRates{
		TikTok: {
			CPM:           CPMRange{Min: 0.02, Avg: 0.03, Max: 0.04},
			RevenueShare:  1.0,
			EngagementRef: 3.5,
			EngagementCap: 2.0,
			LiveGiftRate:  0.0005,
			GiftExponent:  1.2,
			GiftCap:       3.0,
			BrandDealAvg: map[FollowerTier]float64{
				TierNano: 25, TierMicro: 150, TierMid: 800, TierMacro: 2500, TierMega: 6000,
			},
			SponsoredPerMonth: 2,
			TierAdjust: map[FollowerTier]float64{
				TierNano: 0.5, TierMicro: 1.0, TierMid: 1.5, TierMacro: 2.0, TierMega: 2.5,
			},
			AffiliateCPM: 0.40,
			MerchRate:    0.001,
			OtherRatio:   0.08,
			ContentTypeMult: map[string]float64{
				"video": 1.0, "live": 1.3, "photo": 0.7,
			},
		},
		Instagram: {
			CPM:           CPMRange{Min: 0.01, Avg: 0.02, Max: 0.03},
			RevenueShare:  1.0,
			EngagementRef: 3.0,
			EngagementCap: 2.0,
			LiveGiftRate:  0.0003,
			BrandDealAvg: map[FollowerTier]float64{
				TierNano: 40, TierMicro: 250, TierMid: 1200, TierMacro: 3500, TierMega: 8000,
			},
			SponsoredPerMonth: 2,
			TierAdjust: map[FollowerTier]float64{
				TierNano: 0.5, TierMicro: 1.0, TierMid: 1.5, TierMacro: 2.0, TierMega: 2.5,
			},
			AffiliateCPM: 0.60,
			MerchRate:    0.0012,
			OtherRatio:   0.10,
			ContentTypeMult: map[string]float64{
				"reel": 1.2, "post": 1.0, "story": 0.8,
			},
		},
		YouTube: {
			CPM:           CPMRange{Min: 2.0, Avg: 4.0, Max: 7.0},
			RevenueShare:  0.55,
			EngagementRef: 4.0,
			EngagementCap: 2.0,
			BrandDealAvg: map[FollowerTier]float64{
				TierNano: 100, TierMicro: 500, TierMid: 2500, TierMacro: 7000, TierMega: 15000,
			},
			SponsoredPerMonth: 1.5,
			TierAdjust: map[FollowerTier]float64{
				TierNano: 0.5, TierMicro: 1.0, TierMid: 1.5, TierMacro: 2.0, TierMega: 2.5,
			},
			AffiliateCPM:       1.20,
			MerchRate:          0.0015,
			MembershipFraction: 0.02,
			MembershipNet:      3.49,
			SuperChatFraction:  0.005,
			SuperChatAvg:       2.00,
			LoyaltyRef:         4.0,
			LoyaltyCap:         1.5,
			OtherRatio:         0.05,
			ContentTypeMult: map[string]float64{
				"video": 1.0, "short": 0.6, "live": 1.2,
			},
		},
	}
}
