package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/creatorpulse/earnings-cli/internal/rates"
)

// RawInput is the loosely-shaped creator profile as callers submit it.
// Pointer fields distinguish "absent" from zero. Platform-specific aliases
// (subscribers, uploadFrequency) are resolved during normalization.
type RawInput struct {
	Followers       *float64 `json:"followers,omitempty"`
	Subscribers     *float64 `json:"subscribers,omitempty"` // YouTube alias for followers
	EngagementRate  *float64 `json:"engagementRate,omitempty"`
	AverageViews    *float64 `json:"averageViews,omitempty"`
	PostFrequency   *float64 `json:"postFrequency,omitempty"`
	UploadFrequency *float64 `json:"uploadFrequency,omitempty"` // YouTube alias for postFrequency
	Niche           string   `json:"niche,omitempty"`
	Location        string   `json:"location,omitempty"`
}

// NormalizedInput is the canonical calculation input. All numeric fields are
// finite and inside their documented ranges once Normalize has run.
type NormalizedInput struct {
	Followers      float64 `json:"followers"`
	EngagementRate float64 `json:"engagementRate"` // percent, [0.1, 20]
	Niche          string  `json:"niche"`
	Location       string  `json:"location"`
	PostFrequency  float64 `json:"postFrequency"` // posts per week, [1, 50]
	AverageViews   float64 `json:"averageViews"`  // [0, 1e9]
}

// Clamping bounds and defaults applied during normalization.
const (
	minEngagementRate = 0.1
	maxEngagementRate = 20.0
	minPostFrequency  = 1.0
	maxPostFrequency  = 50.0
	maxAverageViews   = 1e9

	defaultPostFrequency = 3.0
	// When average views are not reported, assume a typical reach of 30% of
	// the follower count.
	defaultViewsRatio = 0.3
)

// Normalize converts a raw profile to canonical shape. Missing or non-finite
// required fields are rejected with InvalidInputError; out-of-range values on
// present fields are silently clamped. Normalizing an already-normalized
// input is a no-op.
func Normalize(raw RawInput) (NormalizedInput, error) {
	var in NormalizedInput

	followers := raw.Followers
	if followers == nil {
		followers = raw.Subscribers
	}
	if followers == nil {
		return in, invalidInput("followers", "required field missing")
	}
	if !isFinite(*followers) {
		return in, invalidInput("followers", "must be a finite number")
	}

	if raw.EngagementRate == nil {
		return in, invalidInput("engagementRate", "required field missing")
	}
	if !isFinite(*raw.EngagementRate) {
		return in, invalidInput("engagementRate", "must be a finite number")
	}

	in.Followers = math.Max(0, *followers)
	in.EngagementRate = clamp(*raw.EngagementRate, minEngagementRate, maxEngagementRate)

	freq := raw.PostFrequency
	if freq == nil {
		freq = raw.UploadFrequency
	}
	switch {
	case freq == nil:
		in.PostFrequency = defaultPostFrequency
	case !isFinite(*freq):
		return in, invalidInput("postFrequency", "must be a finite number")
	default:
		in.PostFrequency = clamp(*freq, minPostFrequency, maxPostFrequency)
	}

	switch {
	case raw.AverageViews == nil:
		in.AverageViews = math.Min(in.Followers*defaultViewsRatio, maxAverageViews)
	case !isFinite(*raw.AverageViews):
		return in, invalidInput("averageViews", "must be a finite number")
	default:
		in.AverageViews = clamp(*raw.AverageViews, 0, maxAverageViews)
	}

	in.Niche = strings.ToLower(strings.TrimSpace(raw.Niche))
	if in.Niche == "" {
		in.Niche = rates.DefaultNiche
	}
	in.Location = strings.ToLower(strings.TrimSpace(raw.Location))
	if in.Location == "" {
		in.Location = rates.DefaultLocation
	}

	return in, nil
}

// Raw converts a normalized input back to raw shape, for re-normalization
// round-trips and memoization tests.
func (in NormalizedInput) Raw() RawInput {
	f, e, v, p := in.Followers, in.EngagementRate, in.AverageViews, in.PostFrequency
	return RawInput{
		Followers:      &f,
		EngagementRate: &e,
		AverageViews:   &v,
		PostFrequency:  &p,
		Niche:          in.Niche,
		Location:       in.Location,
	}
}

// Key returns a stable identity string for memoization.
func (in NormalizedInput) Key() string {
	return fmt.Sprintf("%g|%g|%g|%g|%s|%s",
		in.Followers, in.EngagementRate, in.AverageViews, in.PostFrequency, in.Niche, in.Location)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
