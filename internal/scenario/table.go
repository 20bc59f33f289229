package scenario

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// truncate cuts s to at most width cells on grapheme boundaries, ending in
// "…" when anything was dropped.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	var b strings.Builder
	col := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		w := uniseg.StringWidth(cluster)
		if col+w > width-1 {
			break
		}
		b.WriteString(cluster)
		col += w
		s, state = rest, newState
	}
	return b.String() + "…"
}

// cell renders the first line of a view, stripped of styling, as a fixed
// width column.
func cell(view string, width int) string {
	line, _, _ := strings.Cut(ansi.Strip(view), "\n")
	line = strings.TrimRight(line, " ")
	return runewidth.FillRight(truncate(line, width), width)
}

// lineDiff renders a line-level diff of two registry dumps with "+ ", "- "
// and "  " prefixes. Identical inputs yield "".
func lineDiff(before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteString("\n")
			}
		}
	}
	return out.String()
}
