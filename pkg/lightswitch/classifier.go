package lightswitch

import (
	"fmt"

	"github.com/mike-scofield/sdk-nrf/pkg/binding"
	"github.com/mike-scofield/sdk-nrf/pkg/datamodel"
	"github.com/mike-scofield/sdk-nrf/pkg/fabric"
)

// FabricLookup resolves a fabric index to the local node's identity.
// Implemented by fabric.Table.
type FabricLookup interface {
	FindByIndex(index fabric.FabricIndex) (*fabric.Info, bool)
}

// Target is where a change is delivered.
// One of TargetGroup, TargetUnicast or TargetSkip.
type Target interface {
	isTarget()
}

// TargetGroup delivers to a group on a fabric.
type TargetGroup struct {
	FabricIndex  fabric.FabricIndex
	GroupID      datamodel.GroupID
	SourceNodeID fabric.NodeID
}

// TargetUnicast delivers to one connected device.
type TargetUnicast struct {
	Device binding.DeviceProxy
}

// TargetSkip means the entry does not apply to the change.
type TargetSkip struct{}

func (TargetGroup) isTarget()   {}
func (TargetUnicast) isTarget() {}
func (TargetSkip) isTarget()    {}

// Classifier decides the delivery target for a binding entry.
type Classifier struct {
	Fabrics FabricLookup
}

// Classify pairs a binding entry with a change.
//
// Group changes match multicast entries and device changes match unicast
// entries with a device. Every other combination, including unused and
// many-to-one entries, is TargetSkip with no error.
func (c Classifier) Classify(entry binding.Entry, device binding.DeviceProxy, ctx *ChangeContext) (Target, error) {
	if ctx == nil {
		return TargetSkip{}, ErrInvalidContext
	}

	switch {
	case entry.Type == binding.TypeMulticast && ctx.IsGroup:
		info, ok := c.Fabrics.FindByIndex(entry.FabricIndex)
		if !ok {
			return TargetSkip{}, fmt.Errorf("fabric %d: %w", entry.FabricIndex, fabric.ErrFabricNotFound)
		}
		return TargetGroup{
			FabricIndex:  entry.FabricIndex,
			GroupID:      entry.GroupID,
			SourceNodeID: info.NodeID,
		}, nil

	case entry.Type == binding.TypeUnicast && !ctx.IsGroup && hasDevice(device):
		return TargetUnicast{Device: device}, nil

	default:
		return TargetSkip{}, nil
	}
}

// hasDevice reports whether device can be called. A nil *binding.Device
// held in the interface counts as no device.
func hasDevice(device binding.DeviceProxy) bool {
	if d, ok := device.(*binding.Device); ok {
		return d != nil
	}
	return device != nil
}
