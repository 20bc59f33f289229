// Package toaster provides notification toasts shown through a portal
// channel and dismissed on a timer.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/portal/internal/ui/overlay"
	"github.com/zjrosen/portal/internal/ui/styles"
)

// Style determines the visual appearance of the toast.
type Style int

const (
	// StyleSuccess shows ✅ with green border.
	StyleSuccess Style = iota
	// StyleError shows ❌ with red border.
	StyleError
	// StyleInfo shows ℹ️ with blue border.
	StyleInfo
	// StyleWarn shows ⚠️ with yellow border.
	StyleWarn
)

// Toast is a single notification. It satisfies portal.Content.
type Toast struct {
	ID      int
	Message string
	Style   Style
}

// New creates a toast.
func New(id int, message string, style Style) *Toast {
	return &Toast{ID: id, Message: message, Style: style}
}

// View renders the toast box.
func (t *Toast) View() string {
	if t == nil || t.Message == "" {
		return ""
	}

	box := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var content string
	switch t.Style {
	case StyleError:
		box = box.BorderForeground(styles.ToastBorderErrorColor)
		content = "❌ " + t.Message
	case StyleInfo:
		box = box.BorderForeground(styles.ToastBorderInfoColor)
		content = "ℹ️ " + t.Message
	case StyleWarn:
		box = box.BorderForeground(styles.ToastBorderWarnColor)
		content = "⚠️ " + t.Message
	default:
		box = box.BorderForeground(styles.ToastBorderSuccessColor)
		content = "✅ " + t.Message
	}

	return box.Render(content)
}

// Overlay renders a rendered toast view at the bottom center of bg.
func Overlay(toast, bg string, width, height int) string {
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, toast, bg)
}

// DismissMsg signals that the toast with ID should be dismissed.
type DismissMsg struct {
	ID int
}

// ScheduleDismiss returns a command that dismisses toast id after d.
func ScheduleDismiss(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return DismissMsg{ID: id}
	})
}
