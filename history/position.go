package history

import (
	"fmt"
	"time"

	"github.com/zapp-cli/zapp/media"
	"github.com/zapp-cli/zapp/util"
)

// SavedPosition represents the resume point of a show preserved across sessions.
// The stream URLs are kept alongside the position so the show can be reloaded
// straight from its history entry.
type SavedPosition struct {
	ShowID   string            `json:"show_id"`
	Title    string            `json:"title"`
	Topic    string            `json:"topic,omitempty"`
	URLs     media.VideoURLSet `json:"urls,omitempty"`
	Position time.Duration     `json:"position"`
	Duration time.Duration     `json:"duration"`
	SavedAt  time.Time         `json:"saved_at"`
}

func (s *SavedPosition) encode() string {
	return s.ShowID
}

func (s *SavedPosition) String() string {
	return fmt.Sprintf("%s : %s / %s", s.Title, util.FormatDuration(s.Position), util.FormatDuration(s.Duration))
}

// Show reconstructs the show model for resuming playback.
func (s *SavedPosition) Show() *media.Show {
	return &media.Show{
		ID:       s.ShowID,
		Title:    s.Title,
		Topic:    s.Topic,
		Duration: s.Duration,
		URLs:     s.URLs,
	}
}

// Percentage returns how much of the show has been watched, from 0 to 100.
func (s *SavedPosition) Percentage() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Position) / float64(s.Duration) * 100
}

func newSavedPosition(show *media.Show, position, duration time.Duration) *SavedPosition {
	return &SavedPosition{
		ShowID:   show.ID,
		Title:    show.Title,
		Topic:    show.Topic,
		URLs:     show.URLs,
		Position: position,
		Duration: duration,
		SavedAt:  time.Now(),
	}
}
