package message

import (
	"github.com/mike-scofield/sdk-nrf/pkg/tlv"
)

// StatusIB carries the outcome of an action.
// Spec: Section 10.6.17
type StatusIB struct {
	Status        Status // Tag 0
	ClusterStatus *uint8 // Tag 1
}

// CommandStatusIB reports the status of one invoked command.
// Spec: Section 10.6.13
type CommandStatusIB struct {
	Path   CommandPathIB // Tag 0
	Status StatusIB      // Tag 1
}

// InvokeResponseIB holds either command response data or a status.
// Spec: Section 10.6.14
type InvokeResponseIB struct {
	Command *CommandDataIB   // Tag 0
	Status  *CommandStatusIB // Tag 1
}

// InvokeResponseMessage answers an InvokeRequestMessage.
// Spec: Section 10.7.10
// Opcode: 0x09
type InvokeResponseMessage struct {
	SuppressResponse bool               // Tag 0
	InvokeResponses  []InvokeResponseIB // Tag 1
}

const (
	statusTagStatus        = 0
	statusTagClusterStatus = 1

	cmdStatusTagPath   = 0
	cmdStatusTagStatus = 1

	invokeRespIBTagCommand = 0
	invokeRespIBTagStatus  = 1

	invokeRespTagSuppressResponse = 0
	invokeRespTagInvokeResponses  = 1
)

// EncodeWithTag writes the StatusIB with a specific tag.
func (s *StatusIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	if err := w.StartStructure(tag); err != nil {
		return err
	}
	if err := w.PutUint(tlv.ContextTag(statusTagStatus), uint64(s.Status)); err != nil {
		return err
	}
	if s.ClusterStatus != nil {
		if err := w.PutUint(tlv.ContextTag(statusTagClusterStatus), uint64(*s.ClusterStatus)); err != nil {
			return err
		}
	}
	return w.EndContainer()
}

// DecodeElement fills the StatusIB from a decoded structure element.
func (s *StatusIB) DecodeElement(e *tlv.Element) error {
	if e.Type != tlv.ElementTypeStruct {
		return ErrInvalidType
	}
	f, ok := e.Field(statusTagStatus)
	if !ok {
		return ErrMissingField
	}
	v, err := f.Uint()
	if err != nil {
		return err
	}
	s.Status = Status(v)

	if f, ok := e.Field(statusTagClusterStatus); ok {
		v, err := f.Uint()
		if err != nil {
			return err
		}
		s.ClusterStatus = Ptr(uint8(v))
	}
	return nil
}

// EncodeWithTag writes the CommandStatusIB with a specific tag.
func (c *CommandStatusIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	if err := w.StartStructure(tag); err != nil {
		return err
	}
	if err := c.Path.EncodeWithTag(w, tlv.ContextTag(cmdStatusTagPath)); err != nil {
		return err
	}
	if err := c.Status.EncodeWithTag(w, tlv.ContextTag(cmdStatusTagStatus)); err != nil {
		return err
	}
	return w.EndContainer()
}

// DecodeElement fills the CommandStatusIB from a decoded structure element.
func (c *CommandStatusIB) DecodeElement(e *tlv.Element) error {
	if e.Type != tlv.ElementTypeStruct {
		return ErrInvalidType
	}
	path, ok := e.Field(cmdStatusTagPath)
	if !ok {
		return ErrMissingField
	}
	if err := c.Path.DecodeElement(path); err != nil {
		return err
	}
	status, ok := e.Field(cmdStatusTagStatus)
	if !ok {
		return ErrMissingField
	}
	return c.Status.DecodeElement(status)
}

// EncodeWithTag writes the InvokeResponseIB with a specific tag.
func (r *InvokeResponseIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	if err := w.StartStructure(tag); err != nil {
		return err
	}
	switch {
	case r.Command != nil:
		if err := r.Command.EncodeWithTag(w, tlv.ContextTag(invokeRespIBTagCommand)); err != nil {
			return err
		}
	case r.Status != nil:
		if err := r.Status.EncodeWithTag(w, tlv.ContextTag(invokeRespIBTagStatus)); err != nil {
			return err
		}
	default:
		return ErrMissingField
	}
	return w.EndContainer()
}

// DecodeElement fills the InvokeResponseIB from a decoded structure element.
func (r *InvokeResponseIB) DecodeElement(e *tlv.Element) error {
	if e.Type != tlv.ElementTypeStruct {
		return ErrInvalidType
	}
	if f, ok := e.Field(invokeRespIBTagCommand); ok {
		r.Command = &CommandDataIB{}
		return r.Command.DecodeElement(f)
	}
	if f, ok := e.Field(invokeRespIBTagStatus); ok {
		r.Status = &CommandStatusIB{}
		return r.Status.DecodeElement(f)
	}
	return ErrMissingField
}

// Encode writes the InvokeResponseMessage to the TLV writer.
func (m *InvokeResponseMessage) Encode(w *tlv.Writer) error {
	if err := w.StartStructure(tlv.Anonymous()); err != nil {
		return err
	}
	if err := w.PutBool(tlv.ContextTag(invokeRespTagSuppressResponse), m.SuppressResponse); err != nil {
		return err
	}
	if err := w.StartArray(tlv.ContextTag(invokeRespTagInvokeResponses)); err != nil {
		return err
	}
	for i := range m.InvokeResponses {
		if err := m.InvokeResponses[i].EncodeWithTag(w, tlv.Anonymous()); err != nil {
			return err
		}
	}
	if err := w.EndContainer(); err != nil {
		return err
	}
	return w.EndContainer()
}

// DecodeElement fills the message from a decoded structure element.
func (m *InvokeResponseMessage) DecodeElement(e *tlv.Element) error {
	if e.Type != tlv.ElementTypeStruct {
		return ErrInvalidType
	}
	if f, ok := e.Field(invokeRespTagSuppressResponse); ok {
		v, err := f.Bool()
		if err != nil {
			return err
		}
		m.SuppressResponse = v
	}
	resps, ok := e.Field(invokeRespTagInvokeResponses)
	if !ok {
		return ErrMissingField
	}
	if resps.Type != tlv.ElementTypeArray {
		return ErrInvalidType
	}
	for i := range resps.Children {
		var ib InvokeResponseIB
		if err := ib.DecodeElement(&resps.Children[i]); err != nil {
			return err
		}
		m.InvokeResponses = append(m.InvokeResponses, ib)
	}
	return nil
}
