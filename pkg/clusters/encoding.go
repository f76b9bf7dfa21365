// Package clusters provides the client-side command model shared by the
// cluster subpackages.
//
// A Command knows its cluster and command IDs and how to write its fields
// structure. The command client wraps the encoded fields into a
// CommandDataIB; the receiving side decodes them with DecodeCommand.
//
// # Subpackages
//
//   - clusters/onoff: On/Off Cluster (0x0006) commands
//   - clusters/levelcontrol: Level Control Cluster (0x0008) commands
package clusters

import (
	"bytes"
	"errors"

	"github.com/mike-scofield/sdk-nrf/pkg/datamodel"
	"github.com/mike-scofield/sdk-nrf/pkg/tlv"
)

// TLV encoding/decoding errors.
var (
	ErrInvalidRequest = errors.New("invalid command request")
	ErrMissingField   = errors.New("missing required field")
)

// TLVMarshaler is implemented by types that can marshal to TLV.
type TLVMarshaler interface {
	MarshalTLV(w *tlv.Writer) error
}

// TLVUnmarshaler is implemented by types that can unmarshal from a decoded
// fields structure.
type TLVUnmarshaler interface {
	UnmarshalTLV(e *tlv.Element) error
}

// Command is an outbound cluster command.
// MarshalTLV must write the fields as one anonymous structure.
type Command interface {
	TLVMarshaler
	ClusterID() datamodel.ClusterID
	CommandID() datamodel.CommandID
}

// EncodeCommand encodes the fields structure of cmd.
func EncodeCommand(cmd Command) ([]byte, error) {
	var buf bytes.Buffer
	w := tlv.NewWriter(&buf)
	if err := cmd.MarshalTLV(w); err != nil {
		return nil, err
	}
	if w.ContainerDepth() != 0 {
		return nil, tlv.ErrContainerNotClosed
	}
	return buf.Bytes(), nil
}

// DecodeCommand decodes a fields structure into cmd.
func DecodeCommand(data []byte, cmd TLVUnmarshaler) error {
	elem, err := tlv.Decode(data)
	if err != nil {
		return err
	}
	if elem.Type != tlv.ElementTypeStruct {
		return ErrInvalidRequest
	}
	return cmd.UnmarshalTLV(&elem)
}

// CommandPath returns the concrete path invoking cmd on endpoint.
func CommandPath(endpoint datamodel.EndpointID, cmd Command) datamodel.ConcreteCommandPath {
	return datamodel.ConcreteCommandPath{
		Endpoint: endpoint,
		Cluster:  cmd.ClusterID(),
		Command:  cmd.CommandID(),
	}
}

// MarshalEmpty writes the empty fields structure used by commands
// without fields.
func MarshalEmpty(w *tlv.Writer) error {
	if err := w.StartStructure(tlv.Anonymous()); err != nil {
		return err
	}
	return w.EndContainer()
}
