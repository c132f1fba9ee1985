package media

import "fmt"

// Quality identifies a stream quality tier.
type Quality int

// Quality tiers ordered from lowest to highest.
const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
)

// Qualities returns all tiers ordered from lowest to highest.
func Qualities() []Quality {
	return []Quality{QualityLow, QualityMedium, QualityHigh}
}

// String returns the configuration identifier of the tier.
func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MaxBitrate returns the peak bitrate cap in bits per second applied when
// playing a live stream at this tier. On-demand playback is never capped.
func (q Quality) MaxBitrate() int {
	switch q {
	case QualityLow:
		return 700_000
	case QualityMedium:
		return 1_800_000
	case QualityHigh:
		return 3_000_000
	default:
		return 0
	}
}

// ParseQuality maps a configuration or flag value to a tier.
func ParseQuality(s string) (Quality, error) {
	switch s {
	case "low":
		return QualityLow, nil
	case "medium":
		return QualityMedium, nil
	case "high":
		return QualityHigh, nil
	default:
		return QualityLow, fmt.Errorf("unknown quality %q, expected one of: low, medium, high", s)
	}
}
