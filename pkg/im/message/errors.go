package message

import "errors"

var (
	// ErrInvalidType is returned when an element has an unexpected TLV type.
	ErrInvalidType = errors.New("message: invalid element type")

	// ErrMissingField is returned when a mandatory IB field is absent.
	ErrMissingField = errors.New("message: missing required field")
)
