package styles

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func resetTheme(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { _ = ApplyTheme(ThemeConfig{}) })
}

func TestApplyTheme_Preset(t *testing.T) {
	resetTheme(t)

	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "dracula"}))
	require.Equal(t, "#F8F8F2", TextPrimaryColor.Dark)
	require.Equal(t, "#BD93F9", BorderHighlightColor.Dark)
}

func TestApplyTheme_OverridesWinOverPreset(t *testing.T) {
	resetTheme(t)

	require.NoError(t, ApplyTheme(ThemeConfig{
		Preset: "nord",
		Colors: map[string]string{"status.error": "#00FF00", "channel.header.bg": "#123"},
	}))
	require.Equal(t, "#00FF00", StatusErrorColor.Dark)
	require.Equal(t, "#123", HeaderBgColor.Light)
	require.Equal(t, "#ECEFF4", TextPrimaryColor.Dark)
}

func TestApplyTheme_Errors(t *testing.T) {
	resetTheme(t)

	tests := []struct {
		name string
		cfg  ThemeConfig
		want string
	}{
		{"unknown preset", ThemeConfig{Preset: "solarized"}, "unknown theme preset"},
		{"unknown token", ThemeConfig{Colors: map[string]string{"bql.keyword": "#FFF"}}, "unknown color token"},
		{"bad hex", ThemeConfig{Colors: map[string]string{"text.primary": "red"}}, "invalid hex color"},
		{"bad hex digits", ThemeConfig{Colors: map[string]string{"text.primary": "#GGGGGG"}}, "invalid hex color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ApplyTheme(tt.cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPresets_CoverAllTokens(t *testing.T) {
	for name, preset := range Presets {
		for _, token := range AllTokens() {
			_, ok := preset.Colors[token]
			require.True(t, ok, "preset %s missing %s", name, token)
		}
	}
}

func TestRenderPanel(t *testing.T) {
	out := RenderPanel("hello\nworld", "Inspector", 20, 5, false)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 5)
	require.True(t, strings.HasPrefix(lines[0], "╭─ Inspector "))
	require.Contains(t, lines[1], "hello")
	require.Contains(t, lines[2], "world")
	for _, line := range lines {
		require.Equal(t, 20, lipgloss.Width(line), "line %q", line)
	}
}

func TestRenderPanel_TruncatesLongTitle(t *testing.T) {
	out := RenderPanel("", "a very long inspector title", 14, 3, true)
	top := strings.Split(out, "\n")[0]

	require.Equal(t, 14, lipgloss.Width(top))
	require.Contains(t, top, "…")
}
