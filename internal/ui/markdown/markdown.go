// Package markdown renders markdown for modal content.
package markdown

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/portal/internal/cachemanager"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Key identifies one rendered document at one width and style.
type Key string

// Renderer wraps glamour with an optional render cache.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
	ttl      time.Duration
	cache    *cachemanager.ReadThroughCache[Key, string, string]
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCache memoizes renders in cache for ttl.
func WithCache(cache cachemanager.CacheManager[Key, string], ttl time.Duration) Option {
	return func(r *Renderer) {
		r.ttl = ttl
		r.cache = cachemanager.NewReadThroughCache[Key, string, string](cache, r.render, false)
	}
}

// New creates a markdown renderer with the given width and style.
// style should be "dark", "light" or "notty". Defaults to "dark" if empty.
// WithAutoStyle is avoided because it queries the terminal and the replies
// leak into the input stream.
func New(width int, style string, opts ...Option) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}

	r := &Renderer{renderer: tr, width: width, style: style}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	if r.cache == nil {
		return r.render(context.Background(), markdown)
	}
	return r.cache.Get(context.Background(), r.key(markdown), markdown, r.ttl)
}

func (r *Renderer) render(_ context.Context, markdown string) (string, error) {
	return r.renderer.Render(markdown)
}

func (r *Renderer) key(markdown string) Key {
	h := fnv.New64a()
	_, _ = h.Write([]byte(markdown))
	return Key(fmt.Sprintf("%s:%d:%x", r.style, r.width, h.Sum64()))
}

// Document is portal content that renders markdown lazily on View.
type Document struct {
	Source   string
	Renderer *Renderer
}

// View renders the document, falling back to the raw source on error.
func (d *Document) View() string {
	if d.Renderer == nil {
		return d.Source
	}
	out, err := d.Renderer.Render(d.Source)
	if err != nil {
		return d.Source
	}
	return out
}
