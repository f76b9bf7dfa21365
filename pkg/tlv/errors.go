package tlv

import "errors"

var (
	// ErrUnexpectedEOF is returned when the input ends unexpectedly.
	ErrUnexpectedEOF = errors.New("tlv: unexpected end of input")

	// ErrInvalidElementType is returned when an invalid element type is encountered.
	ErrInvalidElementType = errors.New("tlv: invalid element type")

	// ErrInvalidTagControl is returned when an invalid tag control is encountered.
	ErrInvalidTagControl = errors.New("tlv: invalid tag control")

	// ErrUnsupportedTag is returned when writing a tag form the writer does not emit.
	ErrUnsupportedTag = errors.New("tlv: unsupported tag form")

	// ErrTypeMismatch is returned when reading a value as the wrong type.
	ErrTypeMismatch = errors.New("tlv: type mismatch")

	// ErrNotInContainer is returned when closing a container that was never opened.
	ErrNotInContainer = errors.New("tlv: not in container")

	// ErrContainerNotClosed is returned when input ends inside a container.
	ErrContainerNotClosed = errors.New("tlv: container not closed")

	// ErrInvalidUTF8 is returned when a UTF-8 string contains invalid sequences.
	ErrInvalidUTF8 = errors.New("tlv: invalid UTF-8 string")

	// ErrTooDeep is returned when containers nest beyond the decoder limit.
	ErrTooDeep = errors.New("tlv: nesting too deep")
)
