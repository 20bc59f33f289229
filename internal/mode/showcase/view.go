package showcase

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/portal/internal/ui/overlay"
	"github.com/zjrosen/portal/internal/ui/styles"
	"github.com/zjrosen/portal/internal/ui/toaster"
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1)
	activeTabStyle = tabStyle.Bold(true).Underline(true)
)

// View renders the showcase.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	body := styles.RenderPanel(m.pageBody(), m.pages[m.active].title, m.bodyWidth(), m.bodyHeight(), true)
	if m.showInspector {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.inspector.View())
	}

	view := lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.tabsView(), body, m.footerView())

	if !m.modal.Empty() {
		view = overlay.Place(overlay.Config{
			Width:    m.width,
			Height:   m.height,
			Position: overlay.Center,
		}, m.modal.View(), view)
	}
	if !m.toast.Empty() {
		view = toaster.Overlay(m.toast.View(), view, m.width, m.height)
	}

	if zone.DefaultManager != nil {
		view = zone.Scan(view)
	}
	return view
}

func (m Model) headerView() string {
	if !m.header.Attached() {
		return styles.EmptyStyle.Render("header target unmounted, press 1")
	}
	return m.header.View()
}

func (m Model) footerView() string {
	if !m.footer.Attached() {
		return styles.EmptyStyle.Render("footer target unmounted, press 2")
	}
	return m.footer.View()
}

func (m Model) tabsView() string {
	tabs := make([]string, len(m.pages))
	for i, pg := range m.pages {
		style := tabStyle
		if i == m.active {
			style = activeTabStyle
		}
		tab := style.Render(pg.title)
		if m.cfg.UI.ZoneMarks && zone.DefaultManager != nil {
			tab = zone.Mark(tabZoneID(i), tab)
		}
		tabs[i] = tab
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// pageBody is the active page text followed by the live registry dump.
func (m Model) pageBody() string {
	var b strings.Builder
	b.WriteString(m.pages[m.active].body)
	b.WriteString("\n\n")
	b.WriteString(styles.HintStyle.Render("Registry"))
	b.WriteString("\n")

	dump := strings.TrimRight(m.provider.Snapshot().Dump(), "\n")
	if dump == "" {
		dump = styles.EmptyStyle.Render("empty")
	}
	b.WriteString(dump)
	return b.String()
}

func (m Model) bodyWidth() int {
	if m.showInspector {
		return max(m.width-inspectorWidth, 10)
	}
	return m.width
}

// bodyHeight is what is left after the header, tab row and footer.
func (m Model) bodyHeight() int {
	used := lipgloss.Height(m.headerView()) + 1 + lipgloss.Height(m.footerView())
	return max(m.height-used, 3)
}
