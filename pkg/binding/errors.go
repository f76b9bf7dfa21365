package binding

import "errors"

// Binding package errors.
var (
	// ErrTableFull is returned when every slot of the table is occupied.
	ErrTableFull = errors.New("binding: table full")

	// ErrIndexOutOfRange is returned for a table index past the last entry.
	ErrIndexOutOfRange = errors.New("binding: index out of range")

	// ErrInvalidType is returned for an unknown binding type.
	ErrInvalidType = errors.New("binding: invalid binding type")

	// ErrInvalidFabric is returned when a target entry has no valid fabric index.
	ErrInvalidFabric = errors.New("binding: invalid fabric index")

	// ErrInvalidNode is returned when a unicast entry has a non-operational node ID.
	ErrInvalidNode = errors.New("binding: invalid node ID")

	// ErrInvalidGroup is returned when a multicast entry has group ID 0.
	ErrInvalidGroup = errors.New("binding: invalid group ID")

	// ErrNotInitialized is returned when the manager is used before Init.
	ErrNotInitialized = errors.New("binding: manager not initialized")

	// ErrAlreadyInitialized is returned by a second Init.
	ErrAlreadyInitialized = errors.New("binding: manager already initialized")

	// ErrNoHandler is returned when no bound device changed handler is registered.
	ErrNoHandler = errors.New("binding: no bound device changed handler")

	// ErrMissingDependency is returned by Init when a required collaborator is nil.
	ErrMissingDependency = errors.New("binding: missing dependency")
)
