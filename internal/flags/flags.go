// Package flags provides feature flag support for controlled feature rollout.
// Flags are read-only after initialization and unknown flags read as disabled.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/portal/internal/log"
)

const (
	// FlagRenderCache memoizes rendered markdown documents in the showcase.
	FlagRenderCache = "render-cache"

	// FlagConfigWatch reloads the config file while the showcase runs.
	FlagConfigWatch = "config-watch"
)

// Defaults returns the value of every known flag when the config is silent.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagRenderCache: true,
		FlagConfigWatch: false,
	}
}

// Registry holds feature flag state loaded from configuration.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map layered over Defaults.
func New(flags map[string]bool) *Registry {
	merged := Defaults()
	maps.Copy(merged, flags)

	r := &Registry{flags: merged}
	for name := range flags {
		if _, known := Defaults()[name]; !known {
			log.Warn(log.CatConfig, "Unknown feature flag in config", "flag", name)
		}
	}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(merged), "flags", r.All())
	return r
}

// Enabled returns true if the named flag is enabled.
// Returns false for unknown flags and on a nil registry.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name, "result", false)
		return false
	}
	return value
}

// All returns a copy of all flags (for debugging/logging).
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	result := make(map[string]bool, len(r.flags))
	maps.Copy(result, r.flags)
	return result
}

// Names returns the flag names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.All()))
}
