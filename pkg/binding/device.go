package binding

import (
	"fmt"

	"github.com/mike-scofield/sdk-nrf/pkg/fabric"
	"github.com/mike-scofield/sdk-nrf/pkg/session"
)

// SessionFinder looks up an established session to a peer.
// Implemented by session.Table.
type SessionFinder interface {
	FindByPeer(fabricIndex fabric.FabricIndex, nodeID fabric.NodeID) (session.Handle, error)
}

// SessionResolver resolves bound peers to devices using established sessions.
type SessionResolver struct {
	Sessions SessionFinder
}

// ResolveDevice implements DeviceResolver.
func (r SessionResolver) ResolveDevice(fabricIndex fabric.FabricIndex, nodeID fabric.NodeID) (DeviceProxy, error) {
	h, err := r.Sessions.FindByPeer(fabricIndex, nodeID)
	if err != nil {
		return nil, fmt.Errorf("resolve node 0x%016X on fabric %d: %w", uint64(nodeID), fabricIndex, err)
	}
	return &Device{NodeID: nodeID, Handle: h}, nil
}

// Device is a peer reached through a known session handle.
type Device struct {
	NodeID fabric.NodeID
	Handle session.Handle
}

// PeerNodeID implements DeviceProxy. A nil Device has node ID 0.
func (d *Device) PeerNodeID() fabric.NodeID {
	if d == nil {
		return 0
	}
	return d.NodeID
}

// Session implements DeviceProxy. A nil Device has no valid session.
func (d *Device) Session() session.Handle {
	if d == nil {
		return session.Handle{}
	}
	return d.Handle
}

var _ DeviceResolver = SessionResolver{}
