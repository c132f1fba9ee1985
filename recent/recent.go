// Package recent tracks how often each channel gets watched and uses that
// frequency to order and resolve channel suggestions.
package recent

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/filesystem"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/media"
	"github.com/zapp-cli/zapp/where"
	"golang.org/x/exp/slices"
)

type watchRecord struct {
	Rank      int    `json:"rank"`
	ChannelID string `json:"channel_id"`
}

var cacher = gache.New[map[string]*watchRecord](
	&gache.Options{
		Path:       where.Recents(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Remember increments the watch count of a channel in the persistent records.
func Remember(channel *media.Channel) error {
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*watchRecord)
	}

	if record, ok := cached[channel.ID]; ok {
		record.Rank++
	} else {
		cached[channel.ID] = &watchRecord{Rank: 1, ChannelID: channel.ID}
	}

	return cacher.Set(cached)
}

// Ranked orders channels by watch frequency, most watched first.
// Unwatched channels keep their original order. Ranking can be turned off
// through the channels.rank_recent key.
func Ranked(channels []*media.Channel) []*media.Channel {
	if !viper.GetBool(key.ChannelsRankRecent) {
		return channels
	}

	cached, expired, err := cacher.Get()
	if err != nil || expired || cached == nil {
		return channels
	}

	ranked := slices.Clone(channels)
	slices.SortStableFunc(ranked, func(a, b *media.Channel) int {
		return rankOf(cached, b.ID) - rankOf(cached, a.ID) // Descending rank
	})
	return ranked
}

func rankOf(records map[string]*watchRecord, id string) int {
	if record, ok := records[id]; ok {
		return record.Rank
	}
	return 0
}

// Suggest resolves a partial channel name or id to the best matching channel.
// Exact matches win outright, fuzzy matches are tie-broken by watch frequency.
func Suggest(q string) mo.Option[*media.Channel] {
	q = strings.TrimSpace(q)
	if q == "" {
		return mo.None[*media.Channel]()
	}

	var matches []*media.Channel
	for _, channel := range media.Channels() {
		if strings.EqualFold(q, channel.ID) || strings.EqualFold(q, channel.Name) {
			return mo.Some(channel)
		}
		if fuzzy.MatchNormalizedFold(q, channel.Name) || fuzzy.MatchNormalizedFold(q, channel.ID) {
			matches = append(matches, channel)
		}
	}

	if len(matches) == 0 {
		return mo.None[*media.Channel]()
	}

	cached, _, err := cacher.Get()
	if err != nil || cached == nil {
		cached = make(map[string]*watchRecord)
	}

	best := matches[0]
	for _, match := range matches[1:] {
		if rankOf(cached, match.ID) > rankOf(cached, best.ID) {
			best = match
		}
	}
	return mo.Some(best)
}
