package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_NoDuplicateKeys(t *testing.T) {
	km := DefaultKeyMap()

	seen := map[string]string{}
	for _, group := range km.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				prev, dup := seen[k]
				require.False(t, dup, "key %q bound to both %q and %q", k, prev, b.Help().Desc)
				seen[k] = b.Help().Desc
			}
		}
	}
}

func TestDefaultKeyMap_AllBindingsHaveHelp(t *testing.T) {
	for _, group := range DefaultKeyMap().FullHelp() {
		for _, b := range group {
			require.NotEmpty(t, b.Help().Key)
			require.NotEmpty(t, b.Help().Desc)
		}
	}
}

func TestDefaultKeyMap_Matches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, km.NextPage},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, km.PrevPage},
		{tea.KeyMsg{Type: tea.KeyEsc}, km.CloseModal},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, km.Help},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'T'}}, km.CycleTheme},
	}
	for _, tt := range tests {
		require.True(t, key.Matches(tt.msg, tt.binding), "%s should match %q", tt.msg, tt.binding.Help().Desc)
	}
}

func TestShortHelp_IsSubsetOfFullHelp(t *testing.T) {
	km := DefaultKeyMap()
	full := map[string]bool{}
	for _, group := range km.FullHelp() {
		for _, b := range group {
			full[b.Help().Desc] = true
		}
	}
	for _, b := range km.ShortHelp() {
		require.True(t, full[b.Help().Desc], "%q missing from full help", b.Help().Desc)
	}
}
