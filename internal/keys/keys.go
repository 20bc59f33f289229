// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the showcase.
type KeyMap struct {
	// Pages
	NextPage key.Binding
	PrevPage key.Binding

	// Portal channels
	Help         key.Binding
	StackModal   key.Binding
	CloseModal   key.Binding
	Toast        key.Binding
	ToastError   key.Binding
	ToggleHeader key.Binding
	ToggleFooter key.Binding

	// Inspector
	ToggleInspector key.Binding
	ScrollUp        key.Binding
	ScrollDown      key.Binding

	// General
	CycleTheme key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextPage: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("tab/l", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("shift+tab/h", "previous page"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "open help"),
		),
		StackModal: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "stack a modal"),
		),
		CloseModal: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close top modal"),
		),
		Toast: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "show toast"),
		),
		ToastError: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "show error toast"),
		),
		ToggleHeader: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "mount/unmount header"),
		),
		ToggleFooter: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "mount/unmount footer"),
		),

		ToggleInspector: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle inspector"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll inspector"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll inspector"),
		),

		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "cycle theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the footer hint line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.Help, k.Toast, k.ToggleInspector, k.Quit}
}

// FullHelp returns keybindings grouped for the help modal.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPage, k.PrevPage},
		{k.Help, k.StackModal, k.CloseModal, k.Toast, k.ToastError, k.ToggleHeader, k.ToggleFooter},
		{k.ToggleInspector, k.ScrollUp, k.ScrollDown},
		{k.CycleTheme, k.Quit},
	}
}
