package icon

// Icon identifies a registered UI symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Play
	Pause
	Buffer
	Live
	Sleep
)

// icons is the registry mapping each symbol to its per-variant renderings.
var icons = map[Icon]variants{
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "+",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "x",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "*",
		kaomoji: "(￣ー￣)ゞ",
		squares: "🟨",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "♪(┌・。・)┌",
		squares: "🟦",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(－ω－) zzZ",
		squares: "⬜",
	},
	Buffer: {
		emoji:   "🌀",
		nerd:    "",
		plain:   "~",
		kaomoji: "(・・;)",
		squares: "🟪",
	},
	Live: {
		emoji:   "🔴",
		nerd:    "",
		plain:   "@",
		kaomoji: "(☆ω☆)",
		squares: "🟧",
	},
	Sleep: {
		emoji:   "🌙",
		nerd:    "",
		plain:   "z",
		kaomoji: "(ᴗ˳ᴗ)",
		squares: "⬛",
	},
}
