// Package fabric holds fabric identity types and the fabric table the
// binding layer consults to resolve the local node's operational identity.
//
// A fabric is a security domain defined by a Root CA certificate and a
// 64-bit Fabric ID. Each node can be commissioned into multiple fabrics,
// with each fabric entry tracked by a local 8-bit Fabric Index. Bindings
// are fabric-scoped: every binding entry names the fabric index it belongs
// to, and group sends use the local node ID on that fabric as source.
//
// Commissioning and operational credentials are managed elsewhere; this
// table only stores the identity facts the light switch needs.
//
// Spec References:
//   - Section 2.5.1: Fabric References and Fabric Identifier
//   - Section 7.5.2: Fabric-Index
package fabric

import "fmt"

// FabricIndex is an 8-bit local index identifying a fabric on this node.
// Valid values are 1-254. The value 0 is invalid/unassigned.
// Spec Section 7.5.2
type FabricIndex uint8

// FabricIndex constants.
const (
	FabricIndexInvalid FabricIndex = 0
	FabricIndexMin     FabricIndex = 1
	FabricIndexMax     FabricIndex = 254
)

// IsValid returns true if the fabric index is in the valid range [1, 254].
func (f FabricIndex) IsValid() bool {
	return f >= FabricIndexMin && f <= FabricIndexMax
}

// String returns a string representation of the fabric index.
func (f FabricIndex) String() string {
	if f == FabricIndexInvalid {
		return "FabricIndex(invalid)"
	}
	return fmt.Sprintf("FabricIndex(%d)", f)
}

// FabricID is a 64-bit fabric identifier. The value 0 is reserved.
// Spec Section 2.5.1
type FabricID uint64

// String returns a string representation of the fabric ID.
func (f FabricID) String() string {
	return fmt.Sprintf("FabricID(0x%016X)", uint64(f))
}

// NodeID is a 64-bit node identifier.
// Spec Section 2.5.5.1
type NodeID uint64

// NodeID range constants for operational nodes.
const (
	NodeIDUnspecified    NodeID = 0x0000_0000_0000_0000
	NodeIDMinOperational NodeID = 0x0000_0000_0000_0001
	NodeIDMaxOperational NodeID = 0xFFFF_FFFE_FFFF_FFFD
)

// IsOperational returns true if the node ID is a valid operational node ID.
func (n NodeID) IsOperational() bool {
	return n >= NodeIDMinOperational && n <= NodeIDMaxOperational
}

// String returns a string representation of the node ID.
func (n NodeID) String() string {
	return fmt.Sprintf("NodeID(0x%016X)", uint64(n))
}

// VendorID is a 16-bit vendor identifier.
type VendorID uint16

// VendorIDTestVendor1 is a test vendor ID for development.
const VendorIDTestVendor1 VendorID = 0xFFF1

// Fabric table limits from spec Section 11.18.5.3.
const (
	MinSupportedFabrics     = 5
	MaxSupportedFabrics     = 254
	DefaultSupportedFabrics = 5

	// MaxLabelSize is the maximum fabric label size (32 bytes).
	MaxLabelSize = 32
)
