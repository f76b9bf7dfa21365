package message

// Identifier types used in Interaction Model paths.
type (
	// NodeID is a 64-bit node identifier.
	NodeID uint64

	// EndpointID is a 16-bit endpoint identifier.
	EndpointID uint16

	// ClusterID is a 32-bit cluster identifier.
	ClusterID uint32

	// CommandID is a 32-bit command identifier.
	CommandID uint32

	// GroupID is a 16-bit fabric-scoped group identifier.
	GroupID uint16
)

// Opcode is an Interaction Model protocol opcode.
// Spec: Section 10.2.1
type Opcode uint8

const (
	OpcodeStatusResponse Opcode = 0x01
	OpcodeInvokeRequest  Opcode = 0x08
	OpcodeInvokeResponse Opcode = 0x09
)

// Ptr returns a pointer to v. Handy for optional IB fields.
func Ptr[T any](v T) *T {
	return &v
}
