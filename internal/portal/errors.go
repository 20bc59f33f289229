package portal

import "errors"

var (
	// ErrNoProvider is returned when an injector or target is created without
	// a provider of the same portal in its context.
	ErrNoProvider = errors.New("portal: no provider in context")

	// ErrProviderClosed is returned when the provider in context was closed.
	ErrProviderClosed = errors.New("portal: provider closed")

	// ErrNameRequired is returned when a portal with explicit channel names
	// is used without a name.
	ErrNameRequired = errors.New("portal: channel name required")

	// ErrUnknownChannel is returned for a name outside a portal's channel list.
	ErrUnknownChannel = errors.New("portal: unknown channel")
)
