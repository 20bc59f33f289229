// Package mode defines the shared services injected into interactive modes.
package mode

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/portal/internal/config"
	"github.com/zjrosen/portal/internal/flags"
)

// Services contains shared dependencies injected into mode models.
type Services struct {
	Config     *config.Config
	ConfigPath string
	Flags      *flags.Registry

	// Tracer records store dispatch spans. Nil disables tracing.
	Tracer trace.Tracer

	// ConfigChanges fires after the config file changes on disk. Nil when
	// config watching is off.
	ConfigChanges <-chan struct{}
}
