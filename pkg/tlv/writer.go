package tlv

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// Writer encodes TLV elements to an io.Writer.
type Writer struct {
	w              io.Writer
	containerStack []ElementType
}

// NewWriter creates a new TLV Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) writeHeader(elemType ElementType, tag Tag, value []byte) error {
	buf := make([]byte, 0, 2+len(value))
	buf = append(buf, BuildControlOctet(elemType, tag.Control()))
	buf, err := tag.encode(buf)
	if err != nil {
		return err
	}
	buf = append(buf, value...)
	_, err = w.w.Write(buf)
	return err
}

// PutUint writes an unsigned integer using the minimum width.
func (w *Writer) PutUint(tag Tag, v uint64) error {
	var buf [8]byte
	switch {
	case v <= math.MaxUint8:
		return w.writeHeader(ElementTypeUInt8, tag, []byte{byte(v)})
	case v <= math.MaxUint16:
		binary.LittleEndian.PutUint16(buf[:], uint16(v))
		return w.writeHeader(ElementTypeUInt16, tag, buf[:2])
	case v <= math.MaxUint32:
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		return w.writeHeader(ElementTypeUInt32, tag, buf[:4])
	default:
		binary.LittleEndian.PutUint64(buf[:], v)
		return w.writeHeader(ElementTypeUInt64, tag, buf[:8])
	}
}

// PutInt writes a signed integer using the minimum width.
func (w *Writer) PutInt(tag Tag, v int64) error {
	var buf [8]byte
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return w.writeHeader(ElementTypeInt8, tag, []byte{byte(v)})
	case v >= math.MinInt16 && v <= math.MaxInt16:
		binary.LittleEndian.PutUint16(buf[:], uint16(v))
		return w.writeHeader(ElementTypeInt16, tag, buf[:2])
	case v >= math.MinInt32 && v <= math.MaxInt32:
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		return w.writeHeader(ElementTypeInt32, tag, buf[:4])
	default:
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		return w.writeHeader(ElementTypeInt64, tag, buf[:8])
	}
}

// PutBool writes a boolean.
func (w *Writer) PutBool(tag Tag, v bool) error {
	if v {
		return w.writeHeader(ElementTypeTrue, tag, nil)
	}
	return w.writeHeader(ElementTypeFalse, tag, nil)
}

// PutNull writes a null value.
func (w *Writer) PutNull(tag Tag) error {
	return w.writeHeader(ElementTypeNull, tag, nil)
}

// PutString writes a UTF-8 string.
func (w *Writer) PutString(tag Tag, v string) error {
	if !utf8.ValidString(v) {
		return ErrInvalidUTF8
	}
	return w.putString(ElementTypeUTF8_1, tag, []byte(v))
}

// PutBytes writes an octet string.
func (w *Writer) PutBytes(tag Tag, v []byte) error {
	return w.putString(ElementTypeBytes1, tag, v)
}

func (w *Writer) putString(base ElementType, tag Tag, data []byte) error {
	n := uint64(len(data))
	var lenBuf [8]byte
	var width int
	var elemType ElementType
	switch {
	case n <= math.MaxUint8:
		elemType, width = base, 1
		lenBuf[0] = byte(n)
	case n <= math.MaxUint16:
		elemType, width = base+1, 2
		binary.LittleEndian.PutUint16(lenBuf[:], uint16(n))
	default:
		elemType, width = base+2, 4
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(n))
	}
	value := make([]byte, 0, width+len(data))
	value = append(value, lenBuf[:width]...)
	value = append(value, data...)
	return w.writeHeader(elemType, tag, value)
}

// PutRaw writes a pre-encoded element, replacing its tag with tag.
// This is how an anonymous command fields structure is embedded as a
// context-tagged member of an IB.
func (w *Writer) PutRaw(tag Tag, rawTLV []byte) error {
	if len(rawTLV) == 0 {
		return nil
	}
	elemType, origCtrl := ParseControlOctet(rawTLV[0])
	skip := 1 + origCtrl.Size()
	if skip > len(rawTLV) {
		return ErrUnexpectedEOF
	}
	return w.writeHeader(elemType, tag, rawTLV[skip:])
}

// StartStructure opens a structure container.
func (w *Writer) StartStructure(tag Tag) error {
	return w.startContainer(ElementTypeStruct, tag)
}

// StartArray opens an array container.
func (w *Writer) StartArray(tag Tag) error {
	return w.startContainer(ElementTypeArray, tag)
}

// StartList opens a list container.
func (w *Writer) StartList(tag Tag) error {
	return w.startContainer(ElementTypeList, tag)
}

func (w *Writer) startContainer(elemType ElementType, tag Tag) error {
	if err := w.writeHeader(elemType, tag, nil); err != nil {
		return err
	}
	w.containerStack = append(w.containerStack, elemType)
	return nil
}

// EndContainer closes the innermost open container.
func (w *Writer) EndContainer() error {
	if len(w.containerStack) == 0 {
		return ErrNotInContainer
	}
	w.containerStack = w.containerStack[:len(w.containerStack)-1]
	_, err := w.w.Write([]byte{byte(ElementTypeEnd)})
	return err
}

// ContainerDepth returns the current container nesting depth.
func (w *Writer) ContainerDepth() int {
	return len(w.containerStack)
}
