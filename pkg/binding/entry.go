// Package binding models the node's binding table and the manager that
// fans a local cluster change out to every bound target.
//
// Spec References:
//   - Section 9.6: Binding Cluster
//   - Section 9.6.6.1: TargetStruct
package binding

import (
	"fmt"

	"github.com/mike-scofield/sdk-nrf/pkg/datamodel"
	"github.com/mike-scofield/sdk-nrf/pkg/fabric"
)

// Type is the kind of a binding table slot.
type Type uint8

const (
	// TypeUnused marks an empty slot.
	TypeUnused Type = iota
	// TypeUnicast binds a local endpoint to an endpoint on one node.
	TypeUnicast
	// TypeMulticast binds a local endpoint to a group.
	TypeMulticast
	// TypeManyToOne is a concentrator binding. It is never a command target.
	TypeManyToOne
)

// String returns the table dump tag for the type.
func (t Type) String() string {
	switch t {
	case TypeUnused:
		return "UNUSED"
	case TypeUnicast:
		return "UNICAST"
	case TypeMulticast:
		return "GROUP"
	case TypeManyToOne:
		return "MANY TO ONE"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Entry is one binding table slot.
//
// NodeID is meaningful for unicast entries only, GroupID for multicast
// entries only. A nil ClusterID binds every cluster of the local endpoint.
type Entry struct {
	Type        Type
	FabricIndex fabric.FabricIndex
	Local       datamodel.EndpointID
	Remote      datamodel.EndpointID
	NodeID      fabric.NodeID
	GroupID     datamodel.GroupID
	ClusterID   *datamodel.ClusterID
}

// NewUnicast returns a unicast entry.
func NewUnicast(fabricIndex fabric.FabricIndex, local datamodel.EndpointID, nodeID fabric.NodeID, remote datamodel.EndpointID, cluster *datamodel.ClusterID) Entry {
	return Entry{
		Type:        TypeUnicast,
		FabricIndex: fabricIndex,
		Local:       local,
		Remote:      remote,
		NodeID:      nodeID,
		ClusterID:   cluster,
	}
}

// NewMulticast returns a group entry.
func NewMulticast(fabricIndex fabric.FabricIndex, local datamodel.EndpointID, groupID datamodel.GroupID, cluster *datamodel.ClusterID) Entry {
	return Entry{
		Type:        TypeMulticast,
		FabricIndex: fabricIndex,
		Local:       local,
		GroupID:     groupID,
		ClusterID:   cluster,
	}
}

// Validate checks that the entry can be stored.
func (e *Entry) Validate() error {
	switch e.Type {
	case TypeUnicast:
		if !e.FabricIndex.IsValid() {
			return ErrInvalidFabric
		}
		if !e.NodeID.IsOperational() {
			return ErrInvalidNode
		}
	case TypeMulticast:
		if !e.FabricIndex.IsValid() {
			return ErrInvalidFabric
		}
		if e.GroupID == 0 {
			return ErrInvalidGroup
		}
	case TypeUnused, TypeManyToOne:
	default:
		return ErrInvalidType
	}
	return nil
}

// HasCluster reports whether the entry applies to cluster.
func (e *Entry) HasCluster(cluster datamodel.ClusterID) bool {
	return e.ClusterID == nil || *e.ClusterID == cluster
}

// String returns a one-line summary of the entry.
func (e Entry) String() string {
	switch e.Type {
	case TypeUnicast:
		return fmt.Sprintf("Binding{%s fabric=%d local=%d node=0x%016X remote=%d cluster=%s}",
			e.Type, e.FabricIndex, e.Local, uint64(e.NodeID), e.Remote, clusterString(e.ClusterID))
	case TypeMulticast:
		return fmt.Sprintf("Binding{%s fabric=%d local=%d group=0x%04X cluster=%s}",
			e.Type, e.FabricIndex, e.Local, e.GroupID, clusterString(e.ClusterID))
	default:
		return fmt.Sprintf("Binding{%s}", e.Type)
	}
}

func clusterString(c *datamodel.ClusterID) string {
	if c == nil {
		return "any"
	}
	return fmt.Sprintf("0x%04X", uint32(*c))
}
