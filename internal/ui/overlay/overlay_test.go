package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func grid(w, h int, ch string) string {
	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat(ch, w)
	}
	return strings.Join(rows, "\n")
}

func TestPlace_Center(t *testing.T) {
	out := Place(Config{Width: 10, Height: 5}, "XX\nXX", grid(10, 5, "."))
	lines := strings.Split(out, "\n")

	require.Equal(t, "..........", lines[0])
	require.Equal(t, "....XX....", lines[1])
	require.Equal(t, "....XX....", lines[2])
	require.Equal(t, "..........", lines[3])
}

func TestPlace_Positions(t *testing.T) {
	bg := grid(8, 4, ".")

	tests := []struct {
		name string
		cfg  Config
		row  int
		want string
	}{
		{"top", Config{Width: 8, Height: 4, Position: Top}, 0, "...X...."},
		{"top padded", Config{Width: 8, Height: 4, Position: Top, PadY: 1}, 1, "...X...."},
		{"bottom", Config{Width: 8, Height: 4, Position: Bottom}, 3, "...X...."},
		{"bottom padded", Config{Width: 8, Height: 4, Position: Bottom, PadY: 1}, 2, "...X...."},
		{"top right", Config{Width: 8, Height: 4, Position: TopRight}, 0, ".......X"},
		{"bottom right padded", Config{Width: 8, Height: 4, Position: BottomRight, PadX: 1}, 3, "......X."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := strings.Split(Place(tt.cfg, "X", bg), "\n")
			require.Equal(t, tt.want, lines[tt.row])
		})
	}
}

func TestPlace_EmptyForegroundIsIdentity(t *testing.T) {
	bg := grid(4, 2, "#")
	require.Equal(t, bg, Place(Config{Width: 4, Height: 2}, "", bg))
}

func TestPlace_PadsShortBackground(t *testing.T) {
	out := Place(Config{Width: 6, Height: 3, Position: Bottom}, "ab", "top")
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 3)
	require.Equal(t, "  ab  ", lines[2])
}

func TestPlace_PreservesStyledBackground(t *testing.T) {
	bg := "\x1b[31mredredred\x1b[0m"
	out := Place(Config{Width: 9, Height: 1}, "X", bg)

	require.Equal(t, "redrXdred", ansi.Strip(out))
	require.Equal(t, 9, ansi.StringWidth(out))
}

func TestPlace_OversizedForegroundClampsToOrigin(t *testing.T) {
	out := Place(Config{Width: 3, Height: 1}, "ABCDE", "...")
	require.Equal(t, "ABCDE", out)
}
