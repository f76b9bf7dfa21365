package lightswitch

import "errors"

// Light switch errors.
var (
	// ErrNotSupported is returned by the catalog for an unknown cluster/command pair.
	ErrNotSupported = errors.New("lightswitch: not supported")

	// ErrInvalidContext is returned when a context is nil, released or
	// carries the wrong command variant.
	ErrInvalidContext = errors.New("lightswitch: invalid context")

	// ErrNoSession is returned when a unicast device has no active secure session.
	ErrNoSession = errors.New("lightswitch: no active session")

	// ErrMissingDependency is returned by NewHandler when a collaborator is nil.
	ErrMissingDependency = errors.New("lightswitch: missing dependency")
)
