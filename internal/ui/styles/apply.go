package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Mode   string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration: defaults, then the
// preset, then individual overrides. Styles are rebuilt afterwards because
// lipgloss styles capture colors at creation time.
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !slices.Contains(AllTokens(), token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()
	return nil
}

func applyColors(colors map[ColorToken]string) {
	targets := map[ColorToken]*lipgloss.AdaptiveColor{
		TokenTextPrimary:     &TextPrimaryColor,
		TokenTextSecondary:   &TextSecondaryColor,
		TokenTextMuted:       &TextMutedColor,
		TokenBorderDefault:   &BorderDefaultColor,
		TokenBorderHighlight: &BorderHighlightColor,
		TokenStatusSuccess:   &StatusSuccessColor,
		TokenStatusWarning:   &StatusWarningColor,
		TokenStatusError:     &StatusErrorColor,
		TokenOverlayTitle:    &OverlayTitleColor,
		TokenOverlayBorder:   &OverlayBorderColor,
		TokenToastSuccess:    &ToastBorderSuccessColor,
		TokenToastError:      &ToastBorderErrorColor,
		TokenToastInfo:       &ToastBorderInfoColor,
		TokenToastWarn:       &ToastBorderWarnColor,
		TokenHeaderBg:        &HeaderBgColor,
		TokenFooterBg:        &FooterBgColor,
		TokenEmpty:           &EmptyColor,
	}
	for token, hex := range colors {
		if dst, ok := targets[token]; ok {
			*dst = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		}
	}
}

func rebuildStyles() {
	HeaderStyle = lipgloss.NewStyle().
		Foreground(TextPrimaryColor).
		Background(HeaderBgColor).
		Bold(true).
		Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
		Foreground(TextSecondaryColor).
		Background(FooterBgColor).
		Padding(0, 1)

	EmptyStyle = lipgloss.NewStyle().Foreground(EmptyColor).Italic(true)
	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(OverlayBorderColor).
		Padding(1, 2)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		Padding(1, 2)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
