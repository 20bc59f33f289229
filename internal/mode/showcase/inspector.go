package showcase

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/portal/internal/portal"
	"github.com/zjrosen/portal/internal/ui/styles"
)

const maxInspectorLines = 200

// inspector lists registry transitions as they arrive from the store feed.
type inspector struct {
	viewport viewport.Model
	lines    []string
	width    int
	height   int
}

func newInspector() inspector {
	return inspector{viewport: viewport.New(0, 0)}
}

// record appends one transition and scrolls to it.
func (in inspector) record(tr portal.Transition) inspector {
	actions := make([]string, len(tr.Actions))
	for i, a := range tr.Actions {
		actions[i] = a.String()
	}
	line := fmt.Sprintf("#%d %s · %d live", tr.Seq, strings.Join(actions, " "), tr.After.Len())

	in.lines = append(in.lines, line)
	if over := len(in.lines) - maxInspectorLines; over > 0 {
		in.lines = in.lines[over:]
	}
	in.refresh()
	in.viewport.GotoBottom()
	return in
}

func (in inspector) setSize(width, height int) inspector {
	in.width = width
	in.height = height
	in.viewport.Width = max(width-2, 1)
	in.viewport.Height = max(height-2, 1)
	in.refresh()
	return in
}

func (in *inspector) refresh() {
	w := max(in.viewport.Width, 1)
	lines := make([]string, len(in.lines))
	for i, l := range in.lines {
		lines[i] = ansi.Truncate(l, w, "…")
	}
	in.viewport.SetContent(strings.Join(lines, "\n"))
}

func (in inspector) scrollUp() inspector {
	in.viewport.ScrollUp(1)
	return in
}

func (in inspector) scrollDown() inspector {
	in.viewport.ScrollDown(1)
	return in
}

// Len returns the number of recorded transitions still held.
func (in inspector) Len() int {
	return len(in.lines)
}

func (in inspector) View() string {
	content := in.viewport.View()
	if len(in.lines) == 0 {
		content = styles.EmptyStyle.Render("no transitions yet")
	}
	return styles.RenderPanel(content, "Transitions", in.width, in.height, false)
}
