// Package config provides configuration types, defaults and loading for portal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/zjrosen/portal/internal/log"
	"github.com/zjrosen/portal/internal/tracing"
)

// Config holds all configuration options for portal.
type Config struct {
	Debug   bool   `mapstructure:"debug"`
	LogFile string `mapstructure:"log_file"`
	// Channels restricts the showcase portal to these names. Empty means open.
	Channels []string        `mapstructure:"channels"`
	UI       UIConfig        `mapstructure:"ui"`
	Theme    ThemeConfig     `mapstructure:"theme"`
	Markdown MarkdownConfig  `mapstructure:"markdown"`
	Toast    ToastConfig     `mapstructure:"toast"`
	Tracing  tracing.Config  `mapstructure:"tracing"`
	Flags    map[string]bool `mapstructure:"flags"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowInspector bool `mapstructure:"show_inspector"`
	ZoneMarks     bool `mapstructure:"zone_marks"` // Mark targets for mouse hit-testing
	Wrap          int  `mapstructure:"wrap"`       // Word-wrap width for target bodies, 0 disables
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base: "default", "dracula", "nord".
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	Mode string `mapstructure:"mode"`

	// Colors overrides individual color tokens, e.g. "status.error": "#FF0000".
	Colors map[string]string `mapstructure:"colors"`
}

// MarkdownConfig controls modal markdown rendering.
type MarkdownConfig struct {
	Style    string        `mapstructure:"style"` // "dark" (default), "light" or "notty"
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// ToastConfig controls toast notifications.
type ToastConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

const (
	// ConfigDirName is the project-local config directory.
	ConfigDirName = ".portal"
	// ConfigFileName is the config file inside a config directory.
	ConfigFileName = "config.yaml"
	// DefaultLogFile is used when debug logging is on and no file is set.
	DefaultLogFile = "debug.log"
)

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		LogFile: DefaultLogFile,
		UI: UIConfig{
			ShowInspector: true,
			ZoneMarks:     true,
		},
		Markdown: MarkdownConfig{
			Style:    "dark",
			CacheTTL: 10 * time.Minute,
		},
		Toast: ToastConfig{
			Duration: 3 * time.Second,
		},
		Tracing: tracing.DefaultConfig(),
		Flags:   map[string]bool{},
	}
}

// NewViper returns a viper instance for portal config files. The "::" key
// delimiter keeps dotted keys like "text.primary" in theme.colors intact.
func NewViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetEnvPrefix("PORTAL")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("ui::show_inspector", d.UI.ShowInspector)
	v.SetDefault("ui::zone_marks", d.UI.ZoneMarks)
	v.SetDefault("ui::wrap", d.UI.Wrap)
	v.SetDefault("markdown::style", d.Markdown.Style)
	v.SetDefault("markdown::cache_ttl", d.Markdown.CacheTTL)
	v.SetDefault("toast::duration", d.Toast.Duration)
	v.SetDefault("tracing::enabled", d.Tracing.Enabled)
	v.SetDefault("tracing::exporter", d.Tracing.Exporter)
	v.SetDefault("tracing::otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing::sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing::service_name", d.Tracing.ServiceName)
	return v
}

// Load reads path into a validated Config. An empty path yields the defaults.
func Load(path string) (Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	return Decode(v)
}

// Decode unmarshals and validates the config held by v.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Flags == nil {
		cfg.Flags = map[string]bool{}
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolvePath picks the config file to use: explicit, then the project-local
// .portal/config.yaml, then ~/.config/portal/config.yaml. The second return is
// false when nothing exists yet and path is where a default should be written.
func ResolvePath(explicit string) (path string, exists bool) {
	if explicit != "" {
		return explicit, fileExists(explicit)
	}

	local := filepath.Join(ConfigDirName, ConfigFileName)
	if fileExists(local) {
		return local, true
	}

	global := DefaultGlobalPath()
	if global == "" {
		return local, false
	}
	return global, fileExists(global)
}

// DefaultGlobalPath returns ~/.config/portal/config.yaml or empty string if
// the home directory is unavailable.
func DefaultGlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "portal", ConfigFileName)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidateChannels(cfg.Channels); err != nil {
		return err
	}
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	if err := ValidateTheme(cfg.Theme); err != nil {
		return err
	}
	if err := ValidateMarkdown(cfg.Markdown); err != nil {
		return err
	}
	if err := ValidateToast(cfg.Toast); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateChannels rejects blank and duplicate channel names.
func ValidateChannels(channels []string) error {
	seen := make(map[string]bool, len(channels))
	for i, name := range channels {
		if name == "" {
			return fmt.Errorf("channels[%d]: name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("channels[%d]: duplicate channel %q", i, name)
		}
		seen[name] = true
	}
	return nil
}

// ValidateUI checks UI configuration for errors.
func ValidateUI(ui UIConfig) error {
	if ui.Wrap < 0 {
		return fmt.Errorf("ui.wrap must not be negative, got %d", ui.Wrap)
	}
	return nil
}

// ValidateTheme checks the theme mode. Presets and color tokens are checked
// when the theme is applied.
func ValidateTheme(theme ThemeConfig) error {
	switch theme.Mode {
	case "", "light", "dark":
		return nil
	default:
		return fmt.Errorf("theme.mode must be \"light\" or \"dark\", got %q", theme.Mode)
	}
}

// ValidateMarkdown checks markdown configuration for errors.
func ValidateMarkdown(md MarkdownConfig) error {
	switch md.Style {
	case "", "dark", "light", "notty":
	default:
		return fmt.Errorf("markdown.style must be \"dark\", \"light\", or \"notty\", got %q", md.Style)
	}
	if md.CacheTTL < 0 {
		return fmt.Errorf("markdown.cache_ttl must not be negative, got %s", md.CacheTTL)
	}
	return nil
}

// ValidateToast checks toast configuration for errors.
func ValidateToast(toast ToastConfig) error {
	if toast.Duration < 0 {
		return fmt.Errorf("toast.duration must not be negative, got %s", toast.Duration)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	if tc.Exporter != "" {
		switch tc.Exporter {
		case tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tc.Enabled {
		if tc.Exporter == tracing.ExporterFile && tc.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tc.Exporter == tracing.ExporterOTLP && tc.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Portal Configuration

# Write debug logs (also enabled by --debug or PORTAL_DEBUG=1)
debug: false
# log_file: debug.log

# Restrict the showcase to these channel names. Leave empty for an open portal.
# channels: [header, footer, modal, toast]

# UI settings
ui:
  show_inspector: true  # Show the transition inspector pane
  zone_marks: true      # Mark targets for mouse hit-testing
  wrap: 0               # Word-wrap target bodies at this width (0 disables)

# Theme configuration
theme:
  # preset: dracula
  #
  # Available presets:
  #   default  - Default portal theme
  #   dracula  - Dark theme with vibrant colors
  #   nord     - Arctic, north-bluish palette
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   text.primary: "#FFFFFF"
  #   channel.header.bg: "#1A5276"

# Markdown rendering for modal content
markdown:
  style: dark       # dark, light, or notty
  cache_ttl: 10m    # How long rendered documents stay cached

# Toast notifications
toast:
  duration: 3s

# Distributed tracing of registry dispatches
# tracing:
#   enabled: false
#   exporter: file                # none, file, stdout, otlp
#   file_path: ~/.config/portal/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0

# Feature flags
# flags:
#   render-cache: true   # Cache rendered markdown
#   config-watch: true   # Reload this file while the showcase runs
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
