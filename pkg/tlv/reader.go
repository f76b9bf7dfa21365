package tlv

import "encoding/binary"

// Element is one decoded TLV element. Containers carry their members in
// Children; scalars keep their value bytes.
type Element struct {
	Tag      Tag
	Type     ElementType
	Children []Element

	// Raw is the complete encoding of this element, control octet included.
	Raw []byte

	value []byte
}

// Decode decodes the first complete element in data.
func Decode(data []byte) (Element, error) {
	elem, _, err := decodeElement(data, 0)
	return elem, err
}

// maxDepth bounds container nesting so hostile input cannot exhaust the stack.
const maxDepth = 32

func decodeElement(data []byte, depth int) (Element, int, error) {
	if depth > maxDepth {
		return Element{}, 0, ErrTooDeep
	}
	if len(data) == 0 {
		return Element{}, 0, ErrUnexpectedEOF
	}
	elemType, ctrl := ParseControlOctet(data[0])
	if elemType > ElementTypeEnd {
		return Element{}, 0, ErrInvalidElementType
	}
	tag, err := decodeTag(ctrl, data[1:])
	if err != nil {
		return Element{}, 0, err
	}
	pos := 1 + ctrl.Size()
	elem := Element{Tag: tag, Type: elemType}

	switch {
	case elemType == ElementTypeEnd:
		elem.Raw = data[:pos]
		return elem, pos, nil

	case elemType.IsContainer():
		for {
			if pos >= len(data) {
				return Element{}, 0, ErrContainerNotClosed
			}
			child, n, err := decodeElement(data[pos:], depth+1)
			if err != nil {
				return Element{}, 0, err
			}
			pos += n
			if child.Type == ElementTypeEnd {
				break
			}
			elem.Children = append(elem.Children, child)
		}

	case elemType.IsUTF8String() || elemType.IsBytes():
		width := elemType.lengthFieldSize()
		if len(data) < pos+width {
			return Element{}, 0, ErrUnexpectedEOF
		}
		length := readUint(data[pos : pos+width])
		pos += width
		if length > uint64(len(data)-pos) {
			return Element{}, 0, ErrUnexpectedEOF
		}
		elem.value = data[pos : pos+int(length)]
		pos += int(length)

	default:
		size := elemType.valueSize()
		if len(data) < pos+size {
			return Element{}, 0, ErrUnexpectedEOF
		}
		elem.value = data[pos : pos+size]
		pos += size
	}

	elem.Raw = data[:pos]
	return elem, pos, nil
}

func readUint(b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	case 8:
		return binary.LittleEndian.Uint64(b)
	default:
		return 0
	}
}

// Field returns the member of a container with the given context tag.
func (e *Element) Field(tagNum uint8) (*Element, bool) {
	for i := range e.Children {
		c := &e.Children[i]
		if c.Tag.IsContext() && c.Tag.TagNumber() == uint32(tagNum) {
			return c, true
		}
	}
	return nil, false
}

// Uint returns the value of an unsigned integer element.
func (e *Element) Uint() (uint64, error) {
	if !e.Type.IsUnsignedInt() {
		return 0, ErrTypeMismatch
	}
	return readUint(e.value), nil
}

// Int returns the value of a signed integer element.
func (e *Element) Int() (int64, error) {
	if !e.Type.IsSignedInt() {
		return 0, ErrTypeMismatch
	}
	switch len(e.value) {
	case 1:
		return int64(int8(e.value[0])), nil
	case 2:
		return int64(int16(binary.LittleEndian.Uint16(e.value))), nil
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(e.value))), nil
	default:
		return int64(binary.LittleEndian.Uint64(e.value)), nil
	}
}

// Bool returns the value of a boolean element.
func (e *Element) Bool() (bool, error) {
	if !e.Type.IsBool() {
		return false, ErrTypeMismatch
	}
	return e.Type == ElementTypeTrue, nil
}

// Text returns the value of a UTF-8 string element.
func (e *Element) Text() (string, error) {
	if !e.Type.IsUTF8String() {
		return "", ErrTypeMismatch
	}
	return string(e.value), nil
}

// Bytes returns the value of an octet string element.
func (e *Element) Bytes() ([]byte, error) {
	if !e.Type.IsBytes() {
		return nil, ErrTypeMismatch
	}
	return e.value, nil
}

// IsNull returns true if the element is a null.
func (e *Element) IsNull() bool {
	return e.Type == ElementTypeNull
}
