package message

import (
	"github.com/mike-scofield/sdk-nrf/pkg/tlv"
)

// CommandPathIB identifies a command.
// Spec: Section 10.6.11
// Container type: List
//
// Endpoint is omitted for group-addressed invocations, where the group
// membership of the receiver decides which endpoints execute the command.
type CommandPathIB struct {
	Endpoint *EndpointID // Tag 0
	Cluster  ClusterID   // Tag 1
	Command  CommandID   // Tag 2
}

// Context tags for CommandPathIB.
const (
	cmdPathTagEndpoint = 0
	cmdPathTagCluster  = 1
	cmdPathTagCommand  = 2
)

// EncodeWithTag writes the CommandPathIB with a specific tag.
func (p *CommandPathIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	if err := w.StartList(tag); err != nil {
		return err
	}

	if p.Endpoint != nil {
		if err := w.PutUint(tlv.ContextTag(cmdPathTagEndpoint), uint64(*p.Endpoint)); err != nil {
			return err
		}
	}

	if err := w.PutUint(tlv.ContextTag(cmdPathTagCluster), uint64(p.Cluster)); err != nil {
		return err
	}

	if err := w.PutUint(tlv.ContextTag(cmdPathTagCommand), uint64(p.Command)); err != nil {
		return err
	}

	return w.EndContainer()
}

// DecodeElement fills the CommandPathIB from a decoded list element.
func (p *CommandPathIB) DecodeElement(e *tlv.Element) error {
	if e.Type != tlv.ElementTypeList {
		return ErrInvalidType
	}

	if f, ok := e.Field(cmdPathTagEndpoint); ok {
		v, err := f.Uint()
		if err != nil {
			return err
		}
		p.Endpoint = Ptr(EndpointID(v))
	}

	cluster, ok := e.Field(cmdPathTagCluster)
	if !ok {
		return ErrMissingField
	}
	v, err := cluster.Uint()
	if err != nil {
		return err
	}
	p.Cluster = ClusterID(v)

	command, ok := e.Field(cmdPathTagCommand)
	if !ok {
		return ErrMissingField
	}
	v, err = command.Uint()
	if err != nil {
		return err
	}
	p.Command = CommandID(v)

	return nil
}
