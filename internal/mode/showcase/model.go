// Package showcase is an interactive Bubble Tea program that exercises the
// portal: header and footer targets filled by pages, a stackable modal
// channel, auto-dismissed toasts and a live transition inspector.
package showcase

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/portal/internal/cachemanager"
	"github.com/zjrosen/portal/internal/config"
	"github.com/zjrosen/portal/internal/flags"
	"github.com/zjrosen/portal/internal/keys"
	"github.com/zjrosen/portal/internal/log"
	"github.com/zjrosen/portal/internal/mode"
	"github.com/zjrosen/portal/internal/portal"
	"github.com/zjrosen/portal/internal/ui/markdown"
	"github.com/zjrosen/portal/internal/ui/styles"
	"github.com/zjrosen/portal/internal/ui/toaster"
)

// Channels used by the showcase.
const (
	ChannelHeader portal.Name = "header"
	ChannelFooter portal.Name = "footer"
	ChannelModal  portal.Name = "modal"
	ChannelToast  portal.Name = "toast"
)

// Zone IDs for mouse hit-testing.
const (
	zoneHeader    = "showcase-header"
	zoneFooter    = "showcase-footer"
	zoneToast     = "showcase-toast"
	zoneTabPrefix = "showcase-tab-"
)

const (
	modalWidth     = 56
	inspectorWidth = 44
)

// ConfigReloadedMsg is sent after the config file changed on disk and was
// loaded again.
type ConfigReloadedMsg struct {
	Config config.Config
	Err    error
}

// Model is the showcase state.
type Model struct {
	services mode.Services
	cfg      config.Config
	keys     keys.KeyMap
	help     help.Model

	portal   *portal.Portal
	provider *portal.Provider
	ctx      context.Context

	header *portal.Target
	footer *portal.Target
	modal  *portal.Target
	toast  *portal.Target

	pages  []page
	active int
	title  *portal.Injector
	hints  *portal.Injector
	banner *portal.Injector

	renderer  *markdown.Renderer
	modals    []*portal.Injector
	toasts    map[int]*portal.Injector
	nextToast int

	inspector     inspector
	showInspector bool
	themes        []string
	theme         int

	width    int
	height   int
	quitting bool
}

// New builds the showcase. It fails when a configured channel restriction
// leaves out one of the showcase channels.
func New(services mode.Services) (Model, error) {
	cfg := config.Defaults()
	if services.Config != nil {
		cfg = *services.Config
	}
	if services.Flags == nil {
		services.Flags = flags.New(cfg.Flags)
	}

	names := make([]portal.Name, len(cfg.Channels))
	for i, c := range cfg.Channels {
		names[i] = portal.Name(c)
	}
	p := portal.New(names...)

	var storeOpts []portal.StoreOption
	if services.Tracer != nil {
		storeOpts = append(storeOpts, portal.WithTracer(services.Tracer))
	}
	pr := p.NewProvider(storeOpts...)

	m := Model{
		services:      services,
		cfg:           cfg,
		keys:          keys.DefaultKeyMap(),
		help:          help.New(),
		portal:        p,
		provider:      pr,
		ctx:           pr.Context(context.Background()),
		pages:         defaultPages(),
		toasts:        make(map[int]*portal.Injector),
		inspector:     newInspector(),
		showInspector: cfg.UI.ShowInspector,
		themes:        themeNames(),
	}
	m.theme = max(slices.Index(m.themes, cfg.Theme.Preset), 0)

	if err := m.mount(); err != nil {
		pr.Close()
		return Model{}, err
	}

	renderer, err := newRenderer(cfg, services.Flags)
	if err != nil {
		pr.Close()
		return Model{}, err
	}
	m.renderer = renderer

	m.enterPage(0)
	return m, nil
}

// mount creates and attaches the four targets and the page injectors.
func (m *Model) mount() error {
	var err error
	if m.header, err = m.portal.Target(m.ctx, ChannelHeader, m.targetOpts(zoneHeader,
		portal.WithStyle(styles.HeaderStyle),
		portal.WithFallback(portal.Text("portal showcase")),
	)...); err != nil {
		return fmt.Errorf("header target: %w", err)
	}
	if m.footer, err = m.portal.Target(m.ctx, ChannelFooter, m.targetOpts(zoneFooter,
		portal.WithStyle(styles.FooterStyle),
		portal.WithFallback(portal.Text(m.help.ShortHelpView(m.keys.ShortHelp()))),
	)...); err != nil {
		return fmt.Errorf("footer target: %w", err)
	}
	if m.modal, err = m.portal.Target(m.ctx, ChannelModal, portal.WithStyle(styles.ModalStyle)); err != nil {
		return fmt.Errorf("modal target: %w", err)
	}
	if m.toast, err = m.portal.Target(m.ctx, ChannelToast, m.targetOpts(zoneToast)...); err != nil {
		return fmt.Errorf("toast target: %w", err)
	}
	for _, t := range []*portal.Target{m.header, m.footer, m.modal, m.toast} {
		t.Attach()
	}

	if m.title, err = m.portal.Injector(m.ctx, ChannelHeader, nil); err != nil {
		return fmt.Errorf("title injector: %w", err)
	}
	if m.hints, err = m.portal.Injector(m.ctx, ChannelFooter, nil); err != nil {
		return fmt.Errorf("hints injector: %w", err)
	}
	if m.banner, err = m.portal.Injector(m.ctx, ChannelHeader, nil); err != nil {
		return fmt.Errorf("banner injector: %w", err)
	}
	return nil
}

func (m *Model) targetOpts(zoneID string, opts ...portal.TargetOption) []portal.TargetOption {
	if m.cfg.UI.ZoneMarks {
		opts = append(opts, portal.WithZoneID(zoneID))
	}
	if m.cfg.UI.Wrap > 0 {
		opts = append(opts, portal.WithWrap(m.cfg.UI.Wrap))
	}
	return opts
}

func newRenderer(cfg config.Config, registry *flags.Registry) (*markdown.Renderer, error) {
	var opts []markdown.Option
	if registry.Enabled(flags.FlagRenderCache) {
		cache := cachemanager.NewInMemoryCacheManager[markdown.Key, string](
			"markdown", cfg.Markdown.CacheTTL, cachemanager.DefaultCleanupInterval)
		opts = append(opts, markdown.WithCache(cache, cfg.Markdown.CacheTTL))
	}
	r, err := markdown.New(modalWidth-6, cfg.Markdown.Style, opts...)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}
	return r, nil
}

func themeNames() []string {
	names := make([]string, 0, len(styles.Presets))
	for name := range styles.Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Close tears down the showcase's portal scope.
func (m Model) Close() {
	m.provider.Close()
}

// Provider returns the portal scope the showcase renders from.
func (m Model) Provider() *portal.Provider {
	return m.provider
}

// Init starts listening for registry transitions and config changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.provider.Listen(), m.waitForConfig())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case portal.TransitionMsg:
		m.inspector = m.inspector.record(msg.Transition)
		return m, m.provider.Listen()

	case toaster.DismissMsg:
		m.dismissToast(msg.ID)
		return m, nil

	case ConfigReloadedMsg:
		return m.applyConfig(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.CloseModal):
		m.popModal()

	case key.Matches(msg, m.keys.Help):
		m.pushModal(helpMarkdown(m.keys))

	case key.Matches(msg, m.keys.StackModal):
		m.pushModal(stackedModalMarkdown(len(m.modals) + 1))

	case key.Matches(msg, m.keys.NextPage):
		m.enterPage((m.active + 1) % len(m.pages))

	case key.Matches(msg, m.keys.PrevPage):
		m.enterPage((m.active - 1 + len(m.pages)) % len(m.pages))

	case key.Matches(msg, m.keys.Toast):
		return m.showToast("Injected into the toast channel", toaster.StyleSuccess)

	case key.Matches(msg, m.keys.ToastError):
		return m.showToast("Something went wrong (not really)", toaster.StyleError)

	case key.Matches(msg, m.keys.ToggleHeader):
		toggle(m.header)

	case key.Matches(msg, m.keys.ToggleFooter):
		toggle(m.footer)

	case key.Matches(msg, m.keys.ToggleInspector):
		m.showInspector = !m.showInspector
		m.resize()

	case key.Matches(msg, m.keys.ScrollUp):
		m.inspector = m.inspector.scrollUp()

	case key.Matches(msg, m.keys.ScrollDown):
		m.inspector = m.inspector.scrollDown()

	case key.Matches(msg, m.keys.CycleTheme):
		return m.cycleTheme()
	}
	return m, nil
}

func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft || zone.DefaultManager == nil {
		return m, nil
	}
	for i := range m.pages {
		if zone.Get(tabZoneID(i)).InBounds(msg) {
			m.enterPage(i)
			return m, nil
		}
	}
	if zone.Get(zoneToast).InBounds(msg) {
		if head := m.toast.Active(); head != nil {
			if t, ok := head.Content.(*toaster.Toast); ok {
				m.dismissToast(t.ID)
			}
		}
	}
	return m, nil
}

func tabZoneID(i int) string {
	return zoneTabPrefix + strconv.Itoa(i)
}

// enterPage swaps the page injectors over to page i.
func (m *Model) enterPage(i int) {
	m.active = i
	pg := m.pages[i]

	m.title.SetContent(portal.Text("portal showcase · " + pg.title))
	m.title.Attach()

	if pg.footer == "" {
		m.hints.Detach()
	} else {
		m.hints.SetContent(portal.Text(pg.footer))
		m.hints.Attach()
	}

	if pg.banner == "" {
		m.banner.Detach()
	} else {
		m.banner.SetContent(portal.Text(pg.banner))
		m.banner.Attach()
	}
	log.Debug(log.CatUI, "Entered page", "page", pg.title)
}

func toggle(t *portal.Target) {
	if t.Attached() {
		t.Detach()
		return
	}
	t.Attach()
}

func (m *Model) pushModal(source string) {
	inj, err := m.portal.Injector(m.ctx, ChannelModal, &markdown.Document{Source: source, Renderer: m.renderer})
	if err != nil {
		log.ErrorErr(log.CatUI, "Modal injector failed", err)
		return
	}
	inj.Attach()
	m.modals = append(m.modals, inj)
}

func (m *Model) popModal() {
	if len(m.modals) == 0 {
		return
	}
	last := len(m.modals) - 1
	m.modals[last].Detach()
	m.modals = m.modals[:last]
}

func (m Model) showToast(message string, style toaster.Style) (tea.Model, tea.Cmd) {
	id := m.nextToast
	m.nextToast++

	inj, err := m.portal.Injector(m.ctx, ChannelToast, toaster.New(id, message, style))
	if err != nil {
		log.ErrorErr(log.CatUI, "Toast injector failed", err)
		return m, nil
	}
	inj.Attach()
	m.toasts[id] = inj
	return m, toaster.ScheduleDismiss(id, m.cfg.Toast.Duration)
}

func (m *Model) dismissToast(id int) {
	inj, ok := m.toasts[id]
	if !ok {
		return
	}
	inj.Detach()
	delete(m.toasts, id)
}

func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	m.theme = (m.theme + 1) % len(m.themes)
	name := m.themes[m.theme]
	m.cfg.Theme.Preset = name

	if err := styles.ApplyTheme(themeConfig(m.cfg.Theme)); err != nil {
		return m.showToast(err.Error(), toaster.StyleError)
	}
	m.restyle()

	if m.services.ConfigPath != "" {
		if err := config.SaveThemePreset(m.services.ConfigPath, name); err != nil {
			log.ErrorErr(log.CatConfig, "Saving theme failed", err, "path", m.services.ConfigPath)
			return m.showToast("Theme not saved: "+err.Error(), toaster.StyleError)
		}
	}
	return m.showToast("Theme: "+name, toaster.StyleInfo)
}

func themeConfig(t config.ThemeConfig) styles.ThemeConfig {
	return styles.ThemeConfig{Preset: t.Preset, Mode: t.Mode, Colors: t.Colors}
}

func (m Model) waitForConfig() tea.Cmd {
	changes := m.services.ConfigChanges
	path := m.services.ConfigPath
	if changes == nil || path == "" {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		cfg, err := config.Load(path)
		return ConfigReloadedMsg{Config: cfg, Err: err}
	}
}

func (m Model) applyConfig(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	wait := m.waitForConfig()
	if msg.Err != nil {
		log.ErrorErr(log.CatConfig, "Config reload failed", msg.Err)
		next, cmd := m.showToast("Config reload failed", toaster.StyleError)
		return next, tea.Batch(cmd, wait)
	}

	m.cfg.UI.ShowInspector = msg.Config.UI.ShowInspector
	m.cfg.Toast = msg.Config.Toast
	m.cfg.Theme = msg.Config.Theme
	m.showInspector = msg.Config.UI.ShowInspector
	if i := slices.Index(m.themes, msg.Config.Theme.Preset); i >= 0 {
		m.theme = i
	}
	if err := styles.ApplyTheme(themeConfig(msg.Config.Theme)); err != nil {
		log.ErrorErr(log.CatConfig, "Reloaded theme invalid", err)
	}
	m.restyle()
	m.resize()

	next, cmd := m.showToast("Config reloaded", toaster.StyleInfo)
	return next, tea.Batch(cmd, wait)
}

// restyle pushes the current theme styles into the targets.
func (m *Model) restyle() {
	m.header.SetStyle(styles.HeaderStyle.Width(m.width))
	m.footer.SetStyle(styles.FooterStyle.Width(m.width))
	m.modal.SetStyle(styles.ModalStyle)
}

func (m *Model) resize() {
	m.restyle()
	if m.showInspector {
		m.inspector = m.inspector.setSize(inspectorWidth, max(m.bodyHeight(), 3))
	}
}
