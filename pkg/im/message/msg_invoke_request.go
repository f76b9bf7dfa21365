package message

import (
	"github.com/mike-scofield/sdk-nrf/pkg/tlv"
)

// InvokeRequestMessage requests command invocation.
// Spec: Section 10.7.9
// Opcode: 0x08
// Container type: Structure
type InvokeRequestMessage struct {
	SuppressResponse bool            // Tag 0
	TimedRequest     bool            // Tag 1
	InvokeRequests   []CommandDataIB // Tag 2
}

// Context tags for InvokeRequestMessage.
const (
	invokeReqTagSuppressResponse = 0
	invokeReqTagTimedRequest     = 1
	invokeReqTagInvokeRequests   = 2
)

// Encode writes the InvokeRequestMessage to the TLV writer.
func (m *InvokeRequestMessage) Encode(w *tlv.Writer) error {
	if err := w.StartStructure(tlv.Anonymous()); err != nil {
		return err
	}

	if err := w.PutBool(tlv.ContextTag(invokeReqTagSuppressResponse), m.SuppressResponse); err != nil {
		return err
	}

	if err := w.PutBool(tlv.ContextTag(invokeReqTagTimedRequest), m.TimedRequest); err != nil {
		return err
	}

	if err := w.StartArray(tlv.ContextTag(invokeReqTagInvokeRequests)); err != nil {
		return err
	}
	for i := range m.InvokeRequests {
		if err := m.InvokeRequests[i].EncodeWithTag(w, tlv.Anonymous()); err != nil {
			return err
		}
	}
	if err := w.EndContainer(); err != nil {
		return err
	}

	return w.EndContainer()
}

// DecodeElement fills the message from a decoded structure element.
func (m *InvokeRequestMessage) DecodeElement(e *tlv.Element) error {
	if e.Type != tlv.ElementTypeStruct {
		return ErrInvalidType
	}

	if f, ok := e.Field(invokeReqTagSuppressResponse); ok {
		v, err := f.Bool()
		if err != nil {
			return err
		}
		m.SuppressResponse = v
	}

	if f, ok := e.Field(invokeReqTagTimedRequest); ok {
		v, err := f.Bool()
		if err != nil {
			return err
		}
		m.TimedRequest = v
	}

	reqs, ok := e.Field(invokeReqTagInvokeRequests)
	if !ok {
		return ErrMissingField
	}
	if reqs.Type != tlv.ElementTypeArray {
		return ErrInvalidType
	}
	for i := range reqs.Children {
		var cmd CommandDataIB
		if err := cmd.DecodeElement(&reqs.Children[i]); err != nil {
			return err
		}
		m.InvokeRequests = append(m.InvokeRequests, cmd)
	}
	return nil
}
