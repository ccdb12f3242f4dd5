package rates

// FollowerTier bands creators by audience size. Bands are half-open
// [min, max) except mega, which is unbounded above.
type FollowerTier string

// Follower tiers, smallest to largest.
const (
	TierNano  FollowerTier = "nano"  // [0, 10k)
	TierMicro FollowerTier = "micro" // [10k, 100k)
	TierMid   FollowerTier = "mid"   // [100k, 500k)
	TierMacro FollowerTier = "macro" // [500k, 1M)
	TierMega  FollowerTier = "mega"  // [1M, inf)
)

// Tier band boundaries (followers).
const (
	microMin = 10_000
	midMin   = 100_000
	macroMin = 500_000
	megaMin  = 1_000_000
)

// TierFor returns the follower tier for the given follower count.
func TierFor(followers float64) FollowerTier {
	switch {
	case followers >= megaMin:
		return TierMega
	case followers >= macroMin:
		return TierMacro
	case followers >= midMin:
		return TierMid
	case followers >= microMin:
		return TierMicro
	default:
		return TierNano
	}
}

// AllTiers lists every tier, smallest to largest. Used by validation to
// check that per-tier tables are fully populated.
func AllTiers() []FollowerTier {
	return []FollowerTier{TierNano, TierMicro, TierMid, TierMacro, TierMega}
}
