// Package rates holds the static configuration tables behind the earnings
// engine: niche and location multipliers, follower-tier bands, and
// per-platform rate data. Tables are built once at startup, validated, and
// treated as read-only afterwards, so concurrent calculations need no locking.
package rates

import (
	"github.com/rotisserie/eris"
)

// Platform identifies a supported social platform.
type Platform string

// Supported platforms.
const (
	TikTok    Platform = "tiktok"
	Instagram Platform = "instagram"
	YouTube   Platform = "youtube"
)

// ErrUnsupportedPlatform is returned for platform keys outside the table.
var ErrUnsupportedPlatform = eris.New("rates: unsupported platform")

// ParsePlatform maps a raw platform key to a Platform.
func ParsePlatform(key string) (Platform, error) {
	switch Platform(key) {
	case TikTok, Instagram, YouTube:
		return Platform(key), nil
	default:
		return "", eris.Wrapf(ErrUnsupportedPlatform, "key %q", key)
	}
}

// Tables bundles every static lookup table the engine reads.
type Tables struct {
	Niches    map[string]NicheConfig     `yaml:"niches"`
	Locations map[string]LocationConfig  `yaml:"locations"`
	Platforms map[Platform]PlatformRates `yaml:"platforms"`
}

// Fallback keys used when an input carries an unknown niche or location.
// Unknown keys deliberately degrade instead of failing (unlike missing
// platform rate data, which is a configuration error).
const (
	DefaultNiche    = "lifestyle"
	DefaultLocation = "other"
)

// Niche returns the config for the given niche key and whether the key was
// known. Unknown keys return the default niche config.
func (t *Tables) Niche(key string) (NicheConfig, bool) {
	if c, ok := t.Niches[key]; ok {
		return c, true
	}
	return t.Niches[DefaultNiche], false
}

// Location returns the config for the given location key and whether the key
// was known. Unknown keys return the default location config.
func (t *Tables) Location(key string) (LocationConfig, bool) {
	if c, ok := t.Locations[key]; ok {
		return c, true
	}
	return t.Locations[DefaultLocation], false
}

// Platform returns the rate data for a platform. Missing entries are a
// deployment bug and surface as an error rather than defaulting to zero.
func (t *Tables) Platform(p Platform) (PlatformRates, error) {
	r, ok := t.Platforms[p]
	if !ok {
		return PlatformRates{}, eris.Wrapf(ErrMissingConfiguration, "no rate table for platform %q", p)
	}
	return r, nil
}

// Default returns the built-in table set. Callers should run Validate before
// using it with alternate data loaded from config.
func Default() *Tables {
	return &Tables{
		Niches:    defaultNiches(),
		Locations: defaultLocations(),
		Platforms: defaultPlatformRates(),
	}
}
