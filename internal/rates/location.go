package rates

// MarketMaturity classifies how developed a creator-economy market is.
type MarketMaturity string

// Market maturity levels.
const (
	MarketMature   MarketMaturity = "mature"
	MarketGrowing  MarketMaturity = "growing"
	MarketEmerging MarketMaturity = "emerging"
)

// LocationConfig describes how an audience's primary geography scales
// earnings.
type LocationConfig struct {
	Multiplier       float64        `yaml:"multiplier"`         // 0.1-2.0
	PurchasingPower  float64        `yaml:"purchasing_power"`   // 0-2.0
	BrandSpending    float64        `yaml:"brand_spending"`     // index, 1.0 = global average
	SocialPenetration float64       `yaml:"social_penetration"` // 0-1
	Maturity         MarketMaturity `yaml:"maturity"`
}

func defaultLocations() map[string]LocationConfig {
	return map[string]LocationConfig{
		"us": {
			Multiplier:        1.00,
			PurchasingPower:   1.45,
			BrandSpending:     1.60,
			SocialPenetration: 0.91,
			Maturity:          MarketMature,
		},
		"uk": {
			Multiplier:        0.88,
			PurchasingPower:   1.25,
			BrandSpending:     1.35,
			SocialPenetration: 0.89,
			Maturity:          MarketMature,
		},
		"canada": {
			Multiplier:        0.85,
			PurchasingPower:   1.22,
			BrandSpending:     1.25,
			SocialPenetration: 0.90,
			Maturity:          MarketMature,
		},
		"australia": {
			Multiplier:        0.82,
			PurchasingPower:   1.20,
			BrandSpending:     1.18,
			SocialPenetration: 0.88,
			Maturity:          MarketMature,
		},
		"germany": {
			Multiplier:        0.80,
			PurchasingPower:   1.18,
			BrandSpending:     1.15,
			SocialPenetration: 0.84,
			Maturity:          MarketMature,
		},
		"france": {
			Multiplier:        0.75,
			PurchasingPower:   1.10,
			BrandSpending:     1.05,
			SocialPenetration: 0.83,
			Maturity:          MarketMature,
		},
		"japan": {
			Multiplier:        0.72,
			PurchasingPower:   1.08,
			BrandSpending:     1.00,
			SocialPenetration: 0.80,
			Maturity:          MarketMature,
		},
		"brazil": {
			Multiplier:        0.45,
			PurchasingPower:   0.62,
			BrandSpending:     0.55,
			SocialPenetration: 0.79,
			Maturity:          MarketGrowing,
		},
		"india": {
			Multiplier:        0.30,
			PurchasingPower:   0.40,
			BrandSpending:     0.42,
			SocialPenetration: 0.48,
			Maturity:          MarketGrowing,
		},
		"indonesia": {
			Multiplier:        0.28,
			PurchasingPower:   0.38,
			BrandSpending:     0.36,
			SocialPenetration: 0.62,
			Maturity:          MarketEmerging,
		},
		"other": {
			Multiplier:        0.55,
			PurchasingPower:   0.70,
			BrandSpending:     0.65,
			SocialPenetration: 0.60,
			Maturity:          MarketGrowing,
		},
	}
}
