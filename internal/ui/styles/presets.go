package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default": DefaultPreset,
	"dracula": DraculaPreset,
	"nord":    NordPreset,
}

// DefaultPreset matches the initial values in styles.go.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default portal theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CCCCCC",
		TokenTextSecondary:   "#BBBBBB",
		TokenTextMuted:       "#696969",
		TokenBorderDefault:   "#696969",
		TokenBorderHighlight: "#54A0FF",
		TokenStatusSuccess:   "#73F59F",
		TokenStatusWarning:   "#FECA57",
		TokenStatusError:     "#FF8787",
		TokenOverlayTitle:    "#C9C9C9",
		TokenOverlayBorder:   "#8C8C8C",
		TokenToastSuccess:    "#73F59F",
		TokenToastError:      "#FF8787",
		TokenToastInfo:       "#54A0FF",
		TokenToastWarn:       "#FECA57",
		TokenHeaderBg:        "#1A5276",
		TokenFooterBg:        "#2D3436",
		TokenEmpty:           "#555555",
	},
}

// DraculaPreset is the Dracula palette.
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#F8F8F2",
		TokenTextSecondary:   "#BFBFBF",
		TokenTextMuted:       "#6272A4",
		TokenBorderDefault:   "#6272A4",
		TokenBorderHighlight: "#BD93F9",
		TokenStatusSuccess:   "#50FA7B",
		TokenStatusWarning:   "#F1FA8C",
		TokenStatusError:     "#FF5555",
		TokenOverlayTitle:    "#F8F8F2",
		TokenOverlayBorder:   "#BD93F9",
		TokenToastSuccess:    "#50FA7B",
		TokenToastError:      "#FF5555",
		TokenToastInfo:       "#8BE9FD",
		TokenToastWarn:       "#FFB86C",
		TokenHeaderBg:        "#44475A",
		TokenFooterBg:        "#282A36",
		TokenEmpty:           "#6272A4",
	},
}

// NordPreset is the Nord palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#ECEFF4",
		TokenTextSecondary:   "#D8DEE9",
		TokenTextMuted:       "#4C566A",
		TokenBorderDefault:   "#4C566A",
		TokenBorderHighlight: "#88C0D0",
		TokenStatusSuccess:   "#A3BE8C",
		TokenStatusWarning:   "#EBCB8B",
		TokenStatusError:     "#BF616A",
		TokenOverlayTitle:    "#E5E9F0",
		TokenOverlayBorder:   "#81A1C1",
		TokenToastSuccess:    "#A3BE8C",
		TokenToastError:      "#BF616A",
		TokenToastInfo:       "#5E81AC",
		TokenToastWarn:       "#D08770",
		TokenHeaderBg:        "#3B4252",
		TokenFooterBg:        "#2E3440",
		TokenEmpty:           "#4C566A",
	},
}
