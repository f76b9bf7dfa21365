package message

import (
	"github.com/mike-scofield/sdk-nrf/pkg/tlv"
)

// CommandDataIB contains command invocation data.
// Spec: Section 10.6.12
// Container type: Structure
type CommandDataIB struct {
	Path   CommandPathIB // Tag 0
	Fields []byte        // Tag 1, encoded fields structure
}

// Context tags for CommandDataIB.
const (
	cmdDataTagPath   = 0
	cmdDataTagFields = 1
)

// EncodeWithTag writes the CommandDataIB with a specific tag.
func (c *CommandDataIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	if err := w.StartStructure(tag); err != nil {
		return err
	}

	if err := c.Path.EncodeWithTag(w, tlv.ContextTag(cmdDataTagPath)); err != nil {
		return err
	}

	// Commands without fields still carry an empty structure.
	fields := c.Fields
	if len(fields) == 0 {
		fields = []byte{byte(tlv.ElementTypeStruct), byte(tlv.ElementTypeEnd)}
	}
	if err := w.PutRaw(tlv.ContextTag(cmdDataTagFields), fields); err != nil {
		return err
	}

	return w.EndContainer()
}

// DecodeElement fills the CommandDataIB from a decoded structure element.
func (c *CommandDataIB) DecodeElement(e *tlv.Element) error {
	if e.Type != tlv.ElementTypeStruct {
		return ErrInvalidType
	}

	path, ok := e.Field(cmdDataTagPath)
	if !ok {
		return ErrMissingField
	}
	if err := c.Path.DecodeElement(path); err != nil {
		return err
	}

	if fields, ok := e.Field(cmdDataTagFields); ok {
		c.Fields = fields.Raw
	}
	return nil
}
