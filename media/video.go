package media

import "github.com/samber/mo"

// VideoURLSet holds the stream URLs of a show per quality tier.
// Tiers without a published encoding are left empty.
type VideoURLSet struct {
	Low    string `json:"low,omitempty"`
	Medium string `json:"medium,omitempty"`
	High   string `json:"high,omitempty"`
}

// URL returns the exact URL published for the requested tier, which may be empty.
func (v VideoURLSet) URL(q Quality) string {
	switch q {
	case QualityLow:
		return v.Low
	case QualityMedium:
		return v.Medium
	case QualityHigh:
		return v.High
	default:
		return ""
	}
}

// Available returns the tiers with a resolvable URL, ordered lowest first.
func (v VideoURLSet) Available() []Quality {
	var tiers []Quality
	for _, q := range Qualities() {
		if v.URL(q) != "" {
			tiers = append(tiers, q)
		}
	}
	return tiers
}

// Resolve returns the URL for the requested tier, falling back to the nearest
// available one when the exact tier has no published encoding.
// Fallback: lower tiers are preferred over higher ones.
func (v VideoURLSet) Resolve(q Quality) mo.Option[string] {
	if url := v.URL(q); url != "" {
		return mo.Some(url)
	}
	for tier := q - 1; tier >= QualityLow; tier-- {
		if url := v.URL(tier); url != "" {
			return mo.Some(url)
		}
	}
	for tier := q + 1; tier <= QualityHigh; tier++ {
		if url := v.URL(tier); url != "" {
			return mo.Some(url)
		}
	}
	return mo.None[string]()
}

// Contains reports whether the given URL is one of the published encodings.
func (v VideoURLSet) Contains(url string) bool {
	if url == "" {
		return false
	}
	return url == v.Low || url == v.Medium || url == v.High
}
