// Package icon renders the UI symbols in the user's preferred variant:
// emoji, nerd-font glyphs, plain ASCII, kaomoji or colored squares.
package icon

import (
	"github.com/spf13/viper"

	"github.com/zapp-cli/zapp/key"
)

// Variant identifiers accepted by the icons config key.
const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants lists the accepted variant identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// variants maps a variant identifier to the rendering of one symbol.
type variants map[string]string

// Get renders the symbol in the configured variant. Unknown variants
// render nothing rather than a wrong glyph.
func Get(i Icon) string {
	return icons[i][viper.GetString(key.IconsVariant)]
}
