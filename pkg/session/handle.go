// Package session describes the secure sessions a binding target is
// reached through.
//
// Session establishment (PASE/CASE), keys and message counters belong to
// the session manager of the surrounding node. The binding layer only
// carries a Handle from the device proxy to the command client, so this
// package keeps the handle and its identity fields.
//
// Spec References:
//   - Section 4.13.3.1: Secure Session Context
package session

import (
	"fmt"

	"github.com/mike-scofield/sdk-nrf/pkg/fabric"
)

// SessionType identifies whether a session was established using PASE or CASE.
type SessionType int

const (
	// SessionTypeUnknown indicates an uninitialized or invalid session type.
	SessionTypeUnknown SessionType = iota

	// SessionTypePASE indicates a Passcode-Authenticated Session Establishment.
	SessionTypePASE

	// SessionTypeCASE indicates a Certificate Authenticated Session Establishment.
	// Operational traffic to bound devices always uses CASE.
	SessionTypeCASE
)

// String returns a human-readable name for the session type.
func (s SessionType) String() string {
	switch s {
	case SessionTypePASE:
		return "PASE"
	case SessionTypeCASE:
		return "CASE"
	default:
		return "Unknown"
	}
}

// Handle references an established secure session with a peer node.
type Handle struct {
	Type           SessionType
	LocalSessionID uint16
	PeerSessionID  uint16
	FabricIndex    fabric.FabricIndex
	PeerNodeID     fabric.NodeID
}

// IsValid returns true if the handle refers to an established session.
// Session ID 0 is reserved for unsecured sessions.
func (h Handle) IsValid() bool {
	return h.Type != SessionTypeUnknown && h.LocalSessionID != 0
}

// String returns a summary of the session handle.
func (h Handle) String() string {
	return fmt.Sprintf("Session{%s local=%d peer=%d fabric=%d node=0x%016X}",
		h.Type, h.LocalSessionID, h.PeerSessionID, h.FabricIndex, uint64(h.PeerNodeID))
}
