package theme

import "os"

// EnvIcons selects the icon set; "ascii" avoids Nerd Font glyphs.
const EnvIcons = "JSONVIEW_ICONS"

// Nerd Font icons
const (
	nerdIconSuccess   = "󰄬" // md-check (U+F012C)
	nerdIconError     = "" // cod-error (U+EA87)
	nerdIconWarning   = "" // fa-warning (U+F071)
	nerdIconInfo      = "󰋼" // md-information (U+F02FC)
	nerdIconBullet    = "" // oct-dot_fill (U+F444)
	nerdIconExpanded  = "" // oct-chevron_down (U+F47C)
	nerdIconCollapsed = "" // oct-chevron_right (U+F460)
	nerdIconSearch    = "" // oct-search (U+F422)
	nerdIconFilter    = "󱣬" // md-filter_check (U+F18EC)
	nerdIconTree      = "" // fa-tree (U+F1BB)
)

// ASCII fallback icons
const (
	asciiIconSuccess   = "✓"
	asciiIconError     = "✗"
	asciiIconWarning   = "⚠"
	asciiIconInfo      = "ℹ"
	asciiIconBullet    = "•"
	asciiIconExpanded  = "▾"
	asciiIconCollapsed = "▸"
	asciiIconSearch    = "/"
	asciiIconFilter    = "⊲"
	asciiIconTree      = "[T]"
)

// Public icon variables
var (
	IconSuccess   string
	IconError     string
	IconWarning   string
	IconInfo      string
	IconBullet    string
	IconExpanded  string
	IconCollapsed string
	IconSearch    string
	IconFilter    string
	IconTree      string
)

func init() {
	SetIcons(os.Getenv(EnvIcons) == "ascii")
}

// SetIcons switches between the ASCII and Nerd Font icon sets.
func SetIcons(ascii bool) {
	if ascii {
		IconSuccess = asciiIconSuccess
		IconError = asciiIconError
		IconWarning = asciiIconWarning
		IconInfo = asciiIconInfo
		IconBullet = asciiIconBullet
		IconExpanded = asciiIconExpanded
		IconCollapsed = asciiIconCollapsed
		IconSearch = asciiIconSearch
		IconFilter = asciiIconFilter
		IconTree = asciiIconTree
		return
	}
	IconSuccess = nerdIconSuccess
	IconError = nerdIconError
	IconWarning = nerdIconWarning
	IconInfo = nerdIconInfo
	IconBullet = nerdIconBullet
	IconExpanded = nerdIconExpanded
	IconCollapsed = nerdIconCollapsed
	IconSearch = nerdIconSearch
	IconFilter = nerdIconFilter
	IconTree = nerdIconTree
}
