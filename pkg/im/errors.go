package im

import (
	"errors"
	"fmt"

	imsg "github.com/mike-scofield/sdk-nrf/pkg/im/message"
)

// Client errors.
var (
	ErrClientTimeout      = errors.New("im: request timeout")
	ErrClientClosed       = errors.New("im: client closed")
	ErrUnexpectedResponse = errors.New("im: unexpected response type")
	ErrCommandFailed      = errors.New("im: command failed")
	ErrInvalidSession     = errors.New("im: no active secure session")
	ErrNoExchanger        = errors.New("im: no unicast exchange configured")
	ErrNoGroupSender      = errors.New("im: no group sender configured")
	ErrInvalidGroup       = errors.New("im: invalid group id")
	ErrInvalidSourceNode  = errors.New("im: invalid source node id")
)

// StatusError reports a non-success status returned by the target.
type StatusError struct {
	Status        imsg.Status
	ClusterStatus *uint8
}

// Error implements error.
func (e *StatusError) Error() string {
	if e.ClusterStatus != nil {
		return fmt.Sprintf("im: command failed: %s (cluster status 0x%02x)", e.Status, *e.ClusterStatus)
	}
	return fmt.Sprintf("im: command failed: %s", e.Status)
}

// Is lets errors.Is match StatusError against ErrCommandFailed.
func (e *StatusError) Is(target error) bool {
	return target == ErrCommandFailed
}
