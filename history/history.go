// Package history provides the implementation for tracking and persisting playback positions.
package history

import (
	"time"

	"github.com/metafates/gache"
	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/filesystem"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/media"
	"github.com/zapp-cli/zapp/where"
)

// cacher provides an abstracted, disk-backed registry for playback position records.
var cacher = gache.New[map[string]*SavedPosition](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of saved positions from the persistent store.
func Get() (map[string]*SavedPosition, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedPosition), nil
	}
	return cached, nil
}

// Save persists the resume point of a show.
// Last write wins: rewinding a show moves its resume point backward as well.
// Positions at or beyond the configured completion percentage mark the show as
// finished and remove its record instead.
func Save(show *media.Show, position, duration time.Duration) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedPosition(show, position, duration)

	completion := float64(viper.GetInt(key.HistoryCompletionPercentage))
	if completion > 0 && record.Percentage() >= completion {
		delete(saved, record.encode())
		return cacher.Set(saved)
	}

	saved[record.encode()] = record
	return cacher.Set(saved)
}

// For returns the saved resume position of a show, if any.
func For(show *media.Show) (time.Duration, bool) {
	saved, err := Get()
	if err != nil {
		return 0, false
	}
	record, ok := saved[show.ID]
	if !ok || record.Position <= 0 {
		return 0, false
	}
	return record.Position, true
}

// Remove permanently deletes the record of a show from the registry.
func Remove(record *SavedPosition) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, record.encode())
	return cacher.Set(saved)
}

// Clear removes every saved position.
func Clear() error {
	return cacher.Set(make(map[string]*SavedPosition))
}

// Store adapts the package-level registry to the position persistence interface
// consumed by the playback controller.
type Store struct{}

// Save persists the resume point of a show when position saving is enabled.
func (Store) Save(show *media.Show, position, duration time.Duration) error {
	if !viper.GetBool(key.HistorySavePosition) {
		return nil
	}
	return Save(show, position, duration)
}
