package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/zjrosen/portal/internal/config"
	"github.com/zjrosen/portal/internal/flags"
	"github.com/zjrosen/portal/internal/log"
	"github.com/zjrosen/portal/internal/mode"
	"github.com/zjrosen/portal/internal/mode/showcase"
	"github.com/zjrosen/portal/internal/tracing"
	"github.com/zjrosen/portal/internal/ui/styles"
	"github.com/zjrosen/portal/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version    = "dev"
	cfgFile    string
	debugFlag  bool
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Render content into distant places of a terminal UI",
	Long: `portal demonstrates named channels that carry content from where it is
declared (injectors) to where it is displayed (targets).

Run without arguments for the interactive showcase, or replay a scripted
session with 'portal replay'.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	RunE:              runShowcase,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .portal/config.yaml, then ~/.config/portal/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also PORTAL_DEBUG=1)")
}

// initConfig resolves, creates if needed, and loads the config file.
func initConfig(_ *cobra.Command, _ []string) error {
	path, exists := config.ResolvePath(cfgFile)
	if !exists && cfgFile == "" {
		// First run: write a commented default next to the user's other config
		if err := config.WriteDefaultConfig(path); err == nil {
			exists = true
		}
	}

	loadPath := ""
	if exists {
		loadPath = path
	}
	loaded, err := config.Load(loadPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded
	configPath = path
	return nil
}

// initLogging enables the debug log when asked for by flag, env or config.
func initLogging(prefix string) (func(), error) {
	if !(debugFlag || cfg.Debug || os.Getenv("PORTAL_DEBUG") != "") {
		return func() {}, nil
	}
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = config.DefaultLogFile
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "Portal starting", "debug", true, "logPath", logPath, "config", configPath)
	return cleanup, nil
}

// initTracing builds the tracing provider and returns its shutdown func.
func initTracing() (*tracing.Provider, func(), error) {
	tp, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing tracing: %w", err)
	}
	return tp, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
		}
	}, nil
}

func runShowcase(_ *cobra.Command, _ []string) error {
	cleanupLog, err := initLogging("portal")
	if err != nil {
		return err
	}
	defer cleanupLog()

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.Colors,
	}); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	tp, shutdown, err := initTracing()
	if err != nil {
		return err
	}
	defer shutdown()

	registry := flags.New(cfg.Flags)
	services := mode.Services{
		Config:     &cfg,
		ConfigPath: configPath,
		Flags:      registry,
		Tracer:     tp.Tracer(),
	}

	if registry.Enabled(flags.FlagConfigWatch) {
		w, err := watcher.New(watcher.DefaultConfig(configPath))
		if err == nil {
			changes, startErr := w.Start()
			if startErr == nil {
				services.ConfigChanges = changes
				defer func() { _ = w.Stop() }()
			} else {
				log.ErrorErr(log.CatWatcher, "Config watcher failed to start", startErr)
			}
		}
		// Watcher errors are not fatal, the showcase just won't reload
	}

	model, err := showcase.New(services)
	if err != nil {
		return fmt.Errorf("building showcase: %w", err)
	}
	defer model.Close()

	zone.NewGlobal()
	defer zone.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running showcase: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
