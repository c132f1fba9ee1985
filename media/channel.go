// Package media defines the domain models for broadcast channels, shows, and playback sources.
package media

// Channel represents a live public-broadcasting channel.
type Channel struct {
	// Stable identifier (e.g. "das_erste").
	ID string `json:"id"`
	// Display name (e.g. "Das Erste").
	Name string `json:"name"`
	// Direct URL to the HLS master playlist of the live stream.
	StreamURL string `json:"stream_url"`
	// Channel homepage.
	Website string `json:"website"`
	// Brand color as a hex string, used for accenting the status view.
	Color string `json:"color"`
}

// String returns the canonical display name of the channel.
func (c *Channel) String() string {
	return c.Name
}
