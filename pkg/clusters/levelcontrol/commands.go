// Package levelcontrol defines the client commands of the Level Control
// Cluster (0x0008) a dimmer switch sends to bound lights.
package levelcontrol

import (
	"github.com/mike-scofield/sdk-nrf/pkg/clusters"
	"github.com/mike-scofield/sdk-nrf/pkg/datamodel"
	"github.com/mike-scofield/sdk-nrf/pkg/tlv"
)

// Cluster constants.
const (
	ClusterID       datamodel.ClusterID = 0x0008
	ClusterRevision uint16              = 5
)

// Command IDs.
const (
	CmdMoveToLevel          datamodel.CommandID = 0x00
	CmdMove                 datamodel.CommandID = 0x01
	CmdStep                 datamodel.CommandID = 0x02
	CmdStop                 datamodel.CommandID = 0x03
	CmdMoveToLevelWithOnOff datamodel.CommandID = 0x04
)

// Level limits. 255 is reserved as the null value of CurrentLevel.
const (
	MinLevel uint8 = 0
	MaxLevel uint8 = 254
)

// CommandName returns the name of a Level Control command ID.
func CommandName(id datamodel.CommandID) string {
	switch id {
	case CmdMoveToLevel:
		return "MoveToLevel"
	case CmdMove:
		return "Move"
	case CmdStep:
		return "Step"
	case CmdStop:
		return "Stop"
	case CmdMoveToLevelWithOnOff:
		return "MoveToLevelWithOnOff"
	default:
		return "Unknown"
	}
}

// Fields tags for MoveToLevel.
const (
	moveToLevelTagLevel           = 0
	moveToLevelTagTransitionTime  = 1
	moveToLevelTagOptionsMask     = 2
	moveToLevelTagOptionsOverride = 3
)

// MoveToLevel moves the target to Level over TransitionTime tenths of a
// second. A nil TransitionTime lets the target use its configured default.
type MoveToLevel struct {
	Level           uint8
	TransitionTime  *uint16 // nullable
	OptionsMask     uint8
	OptionsOverride uint8
}

// ClusterID implements clusters.Command.
func (MoveToLevel) ClusterID() datamodel.ClusterID { return ClusterID }

// CommandID implements clusters.Command.
func (MoveToLevel) CommandID() datamodel.CommandID { return CmdMoveToLevel }

// MarshalTLV implements clusters.TLVMarshaler.
func (c MoveToLevel) MarshalTLV(w *tlv.Writer) error {
	if err := w.StartStructure(tlv.Anonymous()); err != nil {
		return err
	}
	if err := w.PutUint(tlv.ContextTag(moveToLevelTagLevel), uint64(c.Level)); err != nil {
		return err
	}
	if c.TransitionTime == nil {
		if err := w.PutNull(tlv.ContextTag(moveToLevelTagTransitionTime)); err != nil {
			return err
		}
	} else if err := w.PutUint(tlv.ContextTag(moveToLevelTagTransitionTime), uint64(*c.TransitionTime)); err != nil {
		return err
	}
	if err := w.PutUint(tlv.ContextTag(moveToLevelTagOptionsMask), uint64(c.OptionsMask)); err != nil {
		return err
	}
	if err := w.PutUint(tlv.ContextTag(moveToLevelTagOptionsOverride), uint64(c.OptionsOverride)); err != nil {
		return err
	}
	return w.EndContainer()
}

// UnmarshalTLV implements clusters.TLVUnmarshaler.
func (c *MoveToLevel) UnmarshalTLV(e *tlv.Element) error {
	level, ok := e.Field(moveToLevelTagLevel)
	if !ok {
		return clusters.ErrMissingField
	}
	v, err := level.Uint()
	if err != nil || v > uint64(^uint8(0)) {
		return clusters.ErrInvalidRequest
	}
	c.Level = uint8(v)

	c.TransitionTime = nil
	if f, ok := e.Field(moveToLevelTagTransitionTime); ok && !f.IsNull() {
		v, err := f.Uint()
		if err != nil || v > uint64(^uint16(0)) {
			return clusters.ErrInvalidRequest
		}
		tt := uint16(v)
		c.TransitionTime = &tt
	}

	if f, ok := e.Field(moveToLevelTagOptionsMask); ok {
		v, err := f.Uint()
		if err != nil {
			return clusters.ErrInvalidRequest
		}
		c.OptionsMask = uint8(v)
	}
	if f, ok := e.Field(moveToLevelTagOptionsOverride); ok {
		v, err := f.Uint()
		if err != nil {
			return clusters.ErrInvalidRequest
		}
		c.OptionsOverride = uint8(v)
	}
	return nil
}

// MoveToLevelWithOnOff is MoveToLevel that also drives the OnOff
// attribute of the target: level 0 turns it off, any other level on.
type MoveToLevelWithOnOff struct {
	MoveToLevel
}

// CommandID implements clusters.Command.
func (MoveToLevelWithOnOff) CommandID() datamodel.CommandID { return CmdMoveToLevelWithOnOff }

var (
	_ clusters.Command = MoveToLevel{}
	_ clusters.Command = MoveToLevelWithOnOff{}
)
