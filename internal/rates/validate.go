package rates

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Validate checks that the table set is internally consistent. It is meant to
// run once at process start; any error here is a configuration bug, not a
// runtime condition.
func (t *Tables) Validate() error {
	var errs []string

	if len(t.Niches) == 0 {
		errs = append(errs, "no niches configured")
	}
	if _, ok := t.Niches[DefaultNiche]; !ok {
		errs = append(errs, fmt.Sprintf("default niche %q missing", DefaultNiche))
	}
	for key, n := range t.Niches {
		if n.Multiplier < 0.5 || n.Multiplier > 3.0 {
			errs = append(errs, fmt.Sprintf("niche %q: multiplier %.2f outside [0.5, 3.0]", key, n.Multiplier))
		}
		for name, v := range map[string]float64{
			"brand_affinity":    n.BrandAffinity,
			"audience_value":    n.AudienceValue,
			"competition_level": n.CompetitionLevel,
		} {
			if v < 0 || v > 1 {
				errs = append(errs, fmt.Sprintf("niche %q: %s %.2f outside [0, 1]", key, name, v))
			}
		}
	}

	if len(t.Locations) == 0 {
		errs = append(errs, "no locations configured")
	}
	if _, ok := t.Locations[DefaultLocation]; !ok {
		errs = append(errs, fmt.Sprintf("default location %q missing", DefaultLocation))
	}
	for key, l := range t.Locations {
		if l.Multiplier < 0.1 || l.Multiplier > 2.0 {
			errs = append(errs, fmt.Sprintf("location %q: multiplier %.2f outside [0.1, 2.0]", key, l.Multiplier))
		}
		if l.PurchasingPower < 0 || l.PurchasingPower > 2.0 {
			errs = append(errs, fmt.Sprintf("location %q: purchasing_power %.2f outside [0, 2.0]", key, l.PurchasingPower))
		}
		if l.SocialPenetration < 0 || l.SocialPenetration > 1 {
			errs = append(errs, fmt.Sprintf("location %q: social_penetration %.2f outside [0, 1]", key, l.SocialPenetration))
		}
		switch l.Maturity {
		case MarketMature, MarketGrowing, MarketEmerging:
		default:
			errs = append(errs, fmt.Sprintf("location %q: unknown maturity %q", key, l.Maturity))
		}
	}

	if len(t.Platforms) == 0 {
		errs = append(errs, "no platforms configured")
	}
	for p, r := range t.Platforms {
		errs = append(errs, validatePlatform(p, r)...)
	}

	if len(errs) > 0 {
		return eris.Wrapf(ErrMissingConfiguration, "table validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validatePlatform(p Platform, r PlatformRates) []string {
	var errs []string
	prefix := fmt.Sprintf("platform %q", p)

	// CPM average must sit inside its own declared range.
	if r.CPM.Min < 0 || r.CPM.Max < r.CPM.Min {
		errs = append(errs, fmt.Sprintf("%s: cpm range [%.2f, %.2f] inverted", prefix, r.CPM.Min, r.CPM.Max))
	}
	if r.CPM.Avg < r.CPM.Min || r.CPM.Avg > r.CPM.Max {
		errs = append(errs, fmt.Sprintf("%s: cpm avg %.2f outside [%.2f, %.2f]", prefix, r.CPM.Avg, r.CPM.Min, r.CPM.Max))
	}
	if r.RevenueShare <= 0 || r.RevenueShare > 1 {
		errs = append(errs, fmt.Sprintf("%s: revenue_share %.2f outside (0, 1]", prefix, r.RevenueShare))
	}
	if r.EngagementRef <= 0 {
		errs = append(errs, fmt.Sprintf("%s: engagement_ref must be > 0", prefix))
	}
	if r.EngagementCap < 1 {
		errs = append(errs, fmt.Sprintf("%s: engagement_cap must be >= 1", prefix))
	}
	if r.GiftExponent > 0 && r.GiftCap < 1 {
		errs = append(errs, fmt.Sprintf("%s: gift_cap must be >= 1 when gift_exponent is set", prefix))
	}
	if r.SponsoredPerMonth <= 0 {
		errs = append(errs, fmt.Sprintf("%s: sponsored_per_month must be > 0", prefix))
	}
	if r.OtherRatio < 0.05 || r.OtherRatio > 0.10 {
		errs = append(errs, fmt.Sprintf("%s: other_ratio %.2f outside [0.05, 0.10]", prefix, r.OtherRatio))
	}

	// Per-tier tables must cover every tier.
	for _, tier := range AllTiers() {
		if v, ok := r.BrandDealAvg[tier]; !ok || v <= 0 {
			errs = append(errs, fmt.Sprintf("%s: brand_deal_avg missing or non-positive for tier %q", prefix, tier))
		}
		if v, ok := r.TierAdjust[tier]; !ok || v <= 0 {
			errs = append(errs, fmt.Sprintf("%s: tier_adjust missing or non-positive for tier %q", prefix, tier))
		}
	}

	for name, v := range r.ContentTypeMult {
		if v <= 0 {
			errs = append(errs, fmt.Sprintf("%s: content_type_mult %q must be > 0", prefix, name))
		}
	}

	return errs
}
