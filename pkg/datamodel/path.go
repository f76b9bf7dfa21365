// Package datamodel holds the identifier and path types shared by the
// cluster command definitions and the binding layer.
package datamodel

import (
	"fmt"

	"github.com/mike-scofield/sdk-nrf/pkg/im/message"
)

// Type aliases from im/message for convenience.
type (
	// NodeID is a 64-bit node identifier.
	NodeID = message.NodeID

	// EndpointID is a 16-bit endpoint identifier.
	EndpointID = message.EndpointID

	// ClusterID is a 32-bit cluster identifier.
	ClusterID = message.ClusterID

	// CommandID is a 32-bit command identifier.
	CommandID = message.CommandID

	// GroupID is a 16-bit fabric-scoped group identifier.
	GroupID = message.GroupID
)

// ConcreteCommandPath identifies a specific command within a cluster.
// Spec: Section 8.2.1.2
type ConcreteCommandPath struct {
	Endpoint EndpointID
	Cluster  ClusterID
	Command  CommandID
}

// String formats the path as endpoint/cluster/command in hex.
func (p ConcreteCommandPath) String() string {
	return fmt.Sprintf("%d/0x%04x/0x%02x", p.Endpoint, uint32(p.Cluster), uint32(p.Command))
}
