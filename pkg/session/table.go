package session

import (
	"errors"
	"sync"

	"github.com/mike-scofield/sdk-nrf/pkg/fabric"
)

// Session ID constants.
const (
	// MinSessionID is the minimum valid secure session ID.
	// Session ID 0 is reserved for unsecured sessions.
	MinSessionID uint16 = 1

	// DefaultMaxSessions is the default maximum number of concurrent sessions.
	DefaultMaxSessions = 16
)

// Session table errors.
var (
	ErrInvalidSessionID   = errors.New("session: invalid session ID")
	ErrSessionNotFound    = errors.New("session: session not found")
	ErrSessionTableFull   = errors.New("session: session table full")
	ErrDuplicateSession   = errors.New("session: duplicate session ID")
	ErrInvalidSessionType = errors.New("session: invalid session type")
)

// Table tracks the handles of established secure sessions so bound
// peers can be resolved to a session.
type Table struct {
	sessions    map[uint16]Handle
	maxSessions int

	mu sync.RWMutex
}

// NewTable creates a new session table.
// maxSessions limits the number of concurrent sessions (0 uses DefaultMaxSessions).
func NewTable(maxSessions int) *Table {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Table{
		sessions:    make(map[uint16]Handle),
		maxSessions: maxSessions,
	}
}

// Add records an established session.
// The handle's LocalSessionID must be unique and non-zero.
func (t *Table) Add(h Handle) error {
	if h.LocalSessionID < MinSessionID {
		return ErrInvalidSessionID
	}
	if h.Type == SessionTypeUnknown {
		return ErrInvalidSessionType
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.sessions[h.LocalSessionID]; exists {
		return ErrDuplicateSession
	}
	if len(t.sessions) >= t.maxSessions {
		return ErrSessionTableFull
	}
	t.sessions[h.LocalSessionID] = h
	return nil
}

// Remove drops a session. No error is returned if it doesn't exist.
func (t *Table) Remove(localSessionID uint16) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, localSessionID)
}

// FindByPeer returns an operational (CASE) session to the peer, preferring
// the one with the highest local ID when several exist.
func (t *Table) FindByPeer(fabricIndex fabric.FabricIndex, nodeID fabric.NodeID) (Handle, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var found Handle
	for _, h := range t.sessions {
		if h.Type != SessionTypeCASE || h.FabricIndex != fabricIndex || h.PeerNodeID != nodeID {
			continue
		}
		if h.LocalSessionID > found.LocalSessionID {
			found = h
		}
	}
	if !found.IsValid() {
		return Handle{}, ErrSessionNotFound
	}
	return found, nil
}

// RemoveFabric drops every session on the fabric.
func (t *Table) RemoveFabric(fabricIndex fabric.FabricIndex) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, h := range t.sessions {
		if h.FabricIndex == fabricIndex {
			delete(t.sessions, id)
		}
	}
}

// Count returns the number of tracked sessions.
func (t *Table) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.sessions)
}
