package rates

// NicheConfig describes how a content niche scales earnings.
type NicheConfig struct {
	Multiplier        float64 `yaml:"multiplier"`          // 0.5-3.0
	BrandAffinity     float64 `yaml:"brand_affinity"`      // 0-1, willingness of brands to sponsor
	AudienceValue     float64 `yaml:"audience_value"`      // 0-1, purchasing intent of the audience
	CompetitionLevel  float64 `yaml:"competition_level"`   // 0-1, creator saturation in the niche
	Description       string  `yaml:"description"`
}

func defaultNiches() map[string]NicheConfig {
	return map[string]NicheConfig{
		"tech": {
			Multiplier:       1.85,
			BrandAffinity:    0.92,
			AudienceValue:    0.88,
			CompetitionLevel: 0.65,
			Description:      "Technology, gadgets, software reviews",
		},
		"finance": {
			Multiplier:       2.10,
			BrandAffinity:    0.95,
			AudienceValue:    0.93,
			CompetitionLevel: 0.70,
			Description:      "Personal finance, investing, crypto",
		},
		"beauty": {
			Multiplier:       1.45,
			BrandAffinity:    0.90,
			AudienceValue:    0.78,
			CompetitionLevel: 0.88,
			Description:      "Makeup, skincare, cosmetics",
		},
		"fitness": {
			Multiplier:       1.35,
			BrandAffinity:    0.82,
			AudienceValue:    0.75,
			CompetitionLevel: 0.80,
			Description:      "Workouts, nutrition, wellness",
		},
		"gaming": {
			Multiplier:       1.25,
			BrandAffinity:    0.78,
			AudienceValue:    0.68,
			CompetitionLevel: 0.85,
			Description:      "Gameplay, esports, streaming",
		},
		"food": {
			Multiplier:       1.20,
			BrandAffinity:    0.80,
			AudienceValue:    0.70,
			CompetitionLevel: 0.75,
			Description:      "Cooking, recipes, restaurant reviews",
		},
		"travel": {
			Multiplier:       1.30,
			BrandAffinity:    0.85,
			AudienceValue:    0.72,
			CompetitionLevel: 0.72,
			Description:      "Destinations, travel tips, vlogs",
		},
		"education": {
			Multiplier:       1.40,
			BrandAffinity:    0.75,
			AudienceValue:    0.82,
			CompetitionLevel: 0.55,
			Description:      "Tutorials, courses, study content",
		},
		"entertainment": {
			Multiplier:       1.10,
			BrandAffinity:    0.72,
			AudienceValue:    0.60,
			CompetitionLevel: 0.90,
			Description:      "Comedy, sketches, reactions",
		},
		"fashion": {
			Multiplier:       1.50,
			BrandAffinity:    0.88,
			AudienceValue:    0.76,
			CompetitionLevel: 0.86,
			Description:      "Outfits, styling, hauls",
		},
		"lifestyle": {
			Multiplier:       1.00,
			BrandAffinity:    0.70,
			AudienceValue:    0.62,
			CompetitionLevel: 0.82,
			Description:      "Daily life, vlogs, general content",
		},
	}
}
