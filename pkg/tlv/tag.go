package tlv

import (
	"encoding/binary"
	"fmt"
)

// TagControl is the tag form encoded in the upper 3 bits of the
// control octet (Spec A.7.2).
type TagControl int

const (
	TagControlAnonymous        TagControl = 0
	TagControlContext          TagControl = 1
	TagControlCommonProfile2   TagControl = 2
	TagControlCommonProfile4   TagControl = 3
	TagControlImplicitProfile2 TagControl = 4
	TagControlImplicitProfile4 TagControl = 5
	TagControlFullyQualified6  TagControl = 6
	TagControlFullyQualified8  TagControl = 7
)

// Size returns the size in bytes of the tag field for this control type.
func (tc TagControl) Size() int {
	switch tc {
	case TagControlContext:
		return 1
	case TagControlCommonProfile2, TagControlImplicitProfile2:
		return 2
	case TagControlCommonProfile4, TagControlImplicitProfile4:
		return 4
	case TagControlFullyQualified6:
		return 6
	case TagControlFullyQualified8:
		return 8
	default:
		return 0
	}
}

// Tag is a TLV tag. The writer emits anonymous and context tags only;
// the decoder accepts every form so that foreign elements can be skipped.
type Tag struct {
	control   TagControl
	vendorID  uint16
	profile   uint16
	tagNumber uint32
}

// Anonymous returns the anonymous tag.
func Anonymous() Tag {
	return Tag{control: TagControlAnonymous}
}

// ContextTag returns a context-specific tag (0-255).
func ContextTag(tagNum uint8) Tag {
	return Tag{control: TagControlContext, tagNumber: uint32(tagNum)}
}

// Control returns the tag control form.
func (t Tag) Control() TagControl {
	return t.control
}

// IsAnonymous returns true if this is an anonymous tag.
func (t Tag) IsAnonymous() bool {
	return t.control == TagControlAnonymous
}

// IsContext returns true if this is a context-specific tag.
func (t Tag) IsContext() bool {
	return t.control == TagControlContext
}

// TagNumber returns the tag number.
func (t Tag) TagNumber() uint32 {
	return t.tagNumber
}

// String returns a short debug representation of the tag.
func (t Tag) String() string {
	switch t.control {
	case TagControlAnonymous:
		return "anon"
	case TagControlContext:
		return fmt.Sprintf("ctx(%d)", t.tagNumber)
	default:
		return fmt.Sprintf("profile(%04x:%04x:%d)", t.vendorID, t.profile, t.tagNumber)
	}
}

// encode appends the tag field (without control octet) to dst.
func (t Tag) encode(dst []byte) ([]byte, error) {
	switch t.control {
	case TagControlAnonymous:
		return dst, nil
	case TagControlContext:
		return append(dst, byte(t.tagNumber)), nil
	default:
		return dst, ErrUnsupportedTag
	}
}

// decodeTag reads a tag field of the given form from data.
func decodeTag(ctrl TagControl, data []byte) (Tag, error) {
	if len(data) < ctrl.Size() {
		return Tag{}, ErrUnexpectedEOF
	}
	t := Tag{control: ctrl}
	switch ctrl {
	case TagControlAnonymous:
	case TagControlContext:
		t.tagNumber = uint32(data[0])
	case TagControlCommonProfile2, TagControlImplicitProfile2:
		t.tagNumber = uint32(binary.LittleEndian.Uint16(data))
	case TagControlCommonProfile4, TagControlImplicitProfile4:
		t.tagNumber = binary.LittleEndian.Uint32(data)
	case TagControlFullyQualified6:
		t.vendorID = binary.LittleEndian.Uint16(data)
		t.profile = binary.LittleEndian.Uint16(data[2:])
		t.tagNumber = uint32(binary.LittleEndian.Uint16(data[4:]))
	case TagControlFullyQualified8:
		t.vendorID = binary.LittleEndian.Uint16(data)
		t.profile = binary.LittleEndian.Uint16(data[2:])
		t.tagNumber = binary.LittleEndian.Uint32(data[4:])
	default:
		return Tag{}, ErrInvalidTagControl
	}
	return t, nil
}
