// Package onoff defines the client commands of the On/Off Cluster (0x0006).
//
// The On/Off cluster provides commands and attributes to control
// an on/off state, such as a light or power outlet. A light switch is a
// client of this cluster: it sends Off, On and Toggle to bound lights.
//
// C++ Reference: src/app/clusters/on-off-server/codegen/on-off-server.cpp
package onoff

import (
	"github.com/mike-scofield/sdk-nrf/pkg/clusters"
	"github.com/mike-scofield/sdk-nrf/pkg/datamodel"
	"github.com/mike-scofield/sdk-nrf/pkg/tlv"
)

// Cluster constants.
const (
	ClusterID       datamodel.ClusterID = 0x0006
	ClusterRevision uint16              = 6
)

// Command IDs.
const (
	CmdOff                     datamodel.CommandID = 0x00
	CmdOn                      datamodel.CommandID = 0x01
	CmdToggle                  datamodel.CommandID = 0x02
	CmdOffWithEffect           datamodel.CommandID = 0x40
	CmdOnWithRecallGlobalScene datamodel.CommandID = 0x41
	CmdOnWithTimedOff          datamodel.CommandID = 0x42
)

// CommandName returns the name of an On/Off command ID.
func CommandName(id datamodel.CommandID) string {
	switch id {
	case CmdOff:
		return "Off"
	case CmdOn:
		return "On"
	case CmdToggle:
		return "Toggle"
	case CmdOffWithEffect:
		return "OffWithEffect"
	case CmdOnWithRecallGlobalScene:
		return "OnWithRecallGlobalScene"
	case CmdOnWithTimedOff:
		return "OnWithTimedOff"
	default:
		return "Unknown"
	}
}

// Off turns the target off. It has no fields.
type Off struct{}

// ClusterID implements clusters.Command.
func (Off) ClusterID() datamodel.ClusterID { return ClusterID }

// CommandID implements clusters.Command.
func (Off) CommandID() datamodel.CommandID { return CmdOff }

// MarshalTLV implements clusters.TLVMarshaler.
func (Off) MarshalTLV(w *tlv.Writer) error { return clusters.MarshalEmpty(w) }

// On turns the target on. It has no fields.
type On struct{}

// ClusterID implements clusters.Command.
func (On) ClusterID() datamodel.ClusterID { return ClusterID }

// CommandID implements clusters.Command.
func (On) CommandID() datamodel.CommandID { return CmdOn }

// MarshalTLV implements clusters.TLVMarshaler.
func (On) MarshalTLV(w *tlv.Writer) error { return clusters.MarshalEmpty(w) }

// Toggle inverts the target state. It has no fields.
type Toggle struct{}

// ClusterID implements clusters.Command.
func (Toggle) ClusterID() datamodel.ClusterID { return ClusterID }

// CommandID implements clusters.Command.
func (Toggle) CommandID() datamodel.CommandID { return CmdToggle }

// MarshalTLV implements clusters.TLVMarshaler.
func (Toggle) MarshalTLV(w *tlv.Writer) error { return clusters.MarshalEmpty(w) }

var (
	_ clusters.Command = Off{}
	_ clusters.Command = On{}
	_ clusters.Command = Toggle{}
)
