package media

import (
	"time"

	"github.com/samber/mo"
)

// Show represents an on-demand item from a broadcaster archive.
type Show struct {
	// Stable identifier used for position persistence.
	ID string `json:"id"`
	// Display title (e.g. "Tagesschau 20:00 Uhr").
	Title string `json:"title"`
	// Series or topic the show belongs to (e.g. "Tagesschau").
	Topic string `json:"topic"`
	// Duration declared by the broadcaster metadata; zero when unknown.
	Duration time.Duration `json:"duration"`
	// Channel that published the show, when known.
	Channel mo.Option[*Channel] `json:"-"`

	// Stream URLs per quality tier.
	// Not every tier is available for every show.
	URLs VideoURLSet `json:"urls"`
}

// String returns the display title of the show.
func (s *Show) String() string {
	return s.Title
}

// DeclaredDuration returns the metadata duration when the broadcaster supplied one.
func (s *Show) DeclaredDuration() mo.Option[time.Duration] {
	if s.Duration <= 0 {
		return mo.None[time.Duration]()
	}
	return mo.Some(s.Duration)
}
