package showcase

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/zjrosen/portal/internal/keys"
)

// page is one tab of the showcase body. While a page is active its title is
// injected into the header channel and, when set, its footer text into the
// footer channel.
type page struct {
	title string
	body  string
	// footer is injected into the footer channel. Empty leaves the footer
	// target on its fallback.
	footer string
	// banner is pushed over the title on the header channel, so leaving the
	// page reverts the header to the title underneath.
	banner string
}

func defaultPages() []page {
	return []page{
		{
			title: "Basics",
			body: "This page injects its title into the header channel.\n\n" +
				"Nothing is injected into the footer, so the footer target shows its fallback: the key hints.\n\n" +
				"Press t to inject a toast. It lives on its own channel and leaves on a timer.",
		},
		{
			title:  "Named channels",
			footer: "footer content injected by the Named channels page",
			body: "Content is routed by channel name. The header and footer targets each\n" +
				"show only entries for their own channel.\n\n" +
				"The footer now shows text injected by this page. Switch pages and it reverts.",
		},
		{
			title: "Dynamic mounting",
			body: "Press 1 or 2 to unmount and remount the header or footer target.\n\n" +
				"Injectors keep their entries while a target is gone. Remounting picks\n" +
				"up the current head of the channel immediately.",
		},
		{
			title:  "Stacking",
			banner: "⚑ banner pushed over the page title",
			body: "Several injectors on one channel form a stack. The newest wins and\n" +
				"detaching it reveals the one underneath.\n\n" +
				"This page pushed a banner over its own title. Press m a few times to stack\n" +
				"modals, then esc to pop them one by one.",
		},
	}
}

// helpMarkdown builds the help modal source from the key map.
func helpMarkdown(km keys.KeyMap) string {
	sections := []string{"Pages", "Channels", "Inspector", "General"}

	var b strings.Builder
	b.WriteString("# Keys\n")
	for i, group := range km.FullHelp() {
		if i < len(sections) {
			fmt.Fprintf(&b, "\n## %s\n\n", sections[i])
		}
		for _, binding := range group {
			writeBinding(&b, binding)
		}
	}
	b.WriteString("\nPress **esc** to close.\n")
	return b.String()
}

func writeBinding(b *strings.Builder, binding key.Binding) {
	h := binding.Help()
	fmt.Fprintf(b, "- `%s` %s\n", h.Key, h.Desc)
}

func stackedModalMarkdown(depth int) string {
	return fmt.Sprintf("## Modal %d\n\nStacked on the modal channel. The one below is still registered and comes back when this closes.\n\nPress **esc** to close, **m** to stack another.", depth)
}
