package media

// registry is the bundled channel set, ordered for display.
// Stream URLs point at the public HLS master playlists of the broadcasters.
var registry = []*Channel{
	{
		ID:        "das_erste",
		Name:      "Das Erste",
		StreamURL: "https://mcdn.daserste.de/daserste/de/master.m3u8",
		Website:   "https://www.daserste.de",
		Color:     "#0D2E7A",
	},
	{
		ID:        "zdf",
		Name:      "ZDF",
		StreamURL: "https://zdf-hls-15.akamaized.net/hls/live/2016498/de/high/master.m3u8",
		Website:   "https://www.zdf.de",
		Color:     "#FA7D19",
	},
	{
		ID:        "arte",
		Name:      "arte",
		StreamURL: "https://artesimulcast.akamaized.net/hls/live/2030993/artelive_de/master.m3u8",
		Website:   "https://www.arte.tv",
		Color:     "#FA481C",
	},
	{
		ID:        "dreisat",
		Name:      "3sat",
		StreamURL: "https://zdf-hls-18.akamaized.net/hls/live/2016501/dach/high/master.m3u8",
		Website:   "https://www.3sat.de",
		Color:     "#B70E0C",
	},
	{
		ID:        "kika",
		Name:      "KiKA",
		StreamURL: "https://kikageohls.akamaized.net/hls/live/2022693/livetvkika_de/master.m3u8",
		Website:   "https://www.kika.de",
		Color:     "#35A84C",
	},
	{
		ID:        "phoenix",
		Name:      "phoenix",
		StreamURL: "https://zdf-hls-19.akamaized.net/hls/live/2016502/de/high/master.m3u8",
		Website:   "https://www.phoenix.de",
		Color:     "#D8A11E",
	},
	{
		ID:        "tagesschau24",
		Name:      "tagesschau24",
		StreamURL: "https://tagesschau.akamaized.net/hls/live/2020115/tagesschau/tagesschau_1/master.m3u8",
		Website:   "https://www.tagesschau.de",
		Color:     "#0A3C7C",
	},
	{
		ID:        "one",
		Name:      "ONE",
		StreamURL: "https://mcdn.one.ard.de/ardone/hls/master.m3u8",
		Website:   "https://www.ardmediathek.de/one",
		Color:     "#E6007E",
	},
	{
		ID:        "zdfneo",
		Name:      "ZDFneo",
		StreamURL: "https://zdf-hls-16.akamaized.net/hls/live/2016499/de/high/master.m3u8",
		Website:   "https://www.zdf.de/sender/zdfneo",
		Color:     "#3CB4B4",
	},
	{
		ID:        "zdfinfo",
		Name:      "ZDFinfo",
		StreamURL: "https://zdf-hls-17.akamaized.net/hls/live/2016500/de/high/master.m3u8",
		Website:   "https://www.zdf.de/sender/zdfinfo",
		Color:     "#0F5CA8",
	},
	{
		ID:        "deutsche_welle",
		Name:      "Deutsche Welle",
		StreamURL: "https://dwamdstream102.akamaized.net/hls/live/2015525/dwstream102/index.m3u8",
		Website:   "https://www.dw.com",
		Color:     "#002D5A",
	},
	{
		ID:        "br",
		Name:      "BR Fernsehen",
		StreamURL: "https://mcdn.br.de/br/fs/bfs_sued/hls/de/master.m3u8",
		Website:   "https://www.br.de",
		Color:     "#1D56A3",
	},
	{
		ID:        "hr",
		Name:      "hr-fernsehen",
		StreamURL: "https://mcdn.hr.de/hr/hls/hr_fernsehen/master.m3u8",
		Website:   "https://www.hr.de",
		Color:     "#00375C",
	},
	{
		ID:        "mdr",
		Name:      "MDR Fernsehen",
		StreamURL: "https://mcdn.mdr.de/mdr/mdrfs/livestream/profile_hls/manifest.m3u8",
		Website:   "https://www.mdr.de",
		Color:     "#0B5BA7",
	},
	{
		ID:        "ndr",
		Name:      "NDR Fernsehen",
		StreamURL: "https://mcdn.ndr.de/ndr/hls/ndr_fs/ndr_nds/master.m3u8",
		Website:   "https://www.ndr.de",
		Color:     "#003480",
	},
	{
		ID:        "rbb",
		Name:      "rbb Fernsehen",
		StreamURL: "https://rbb-hls-berlin.akamaized.net/hls/live/2017824/rbbb/master.m3u8",
		Website:   "https://www.rbb-online.de",
		Color:     "#9B0E1D",
	},
	{
		ID:        "sr",
		Name:      "SR Fernsehen",
		StreamURL: "https://sr-hls.akamaized.net/hls/live/2018717/srfernsehen/master.m3u8",
		Website:   "https://www.sr.de",
		Color:     "#0068B4",
	},
	{
		ID:        "swr",
		Name:      "SWR Fernsehen",
		StreamURL: "https://swrbwhls.akamaized.net/hls/live/2018672/swrbwd/master.m3u8",
		Website:   "https://www.swr.de",
		Color:     "#0C2577",
	},
	{
		ID:        "wdr",
		Name:      "WDR Fernsehen",
		StreamURL: "https://mcdn1-wdr.akamaized.net/hls/live/2216599/wdr/master.m3u8",
		Website:   "https://www.wdr.de",
		Color:     "#00519E",
	},
}

// Channels returns the bundled channel registry, ordered for display.
// The returned slice must not be mutated.
func Channels() []*Channel {
	return registry
}

// ChannelByID looks up a channel by its stable identifier.
func ChannelByID(id string) (*Channel, bool) {
	for _, c := range registry {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}
