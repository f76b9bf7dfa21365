package lightswitch

import (
	"fmt"
	"sync/atomic"

	"github.com/mike-scofield/sdk-nrf/pkg/clusters/levelcontrol"
	"github.com/mike-scofield/sdk-nrf/pkg/clusters/onoff"
	"github.com/mike-scofield/sdk-nrf/pkg/datamodel"
)

// CommandData is the cluster-specific part of a ChangeContext.
// Implemented by OnOff and LevelControl.
type CommandData interface {
	ClusterID() datamodel.ClusterID
	CommandID() datamodel.CommandID
}

// OnOff carries an On/Off cluster command.
type OnOff struct {
	Command datamodel.CommandID
}

// ClusterID implements CommandData.
func (OnOff) ClusterID() datamodel.ClusterID { return onoff.ClusterID }

// CommandID implements CommandData.
func (d OnOff) CommandID() datamodel.CommandID { return d.Command }

// LevelControl carries a Level Control cluster command and its target level.
type LevelControl struct {
	Command datamodel.CommandID
	Level   uint8
}

// ClusterID implements CommandData.
func (LevelControl) ClusterID() datamodel.ClusterID { return levelcontrol.ClusterID }

// CommandID implements CommandData.
func (d LevelControl) CommandID() datamodel.CommandID { return d.Command }

// ChangeContext describes one local switch action to propagate to bound
// targets. It has a single owner; SwitchWorker releases it when done.
type ChangeContext struct {
	EndpointID datamodel.EndpointID
	IsGroup    bool
	Command    CommandData

	released atomic.Bool
}

// NewOnOffContext returns a context for an On/Off command from endpoint.
func NewOnOffContext(endpoint datamodel.EndpointID, command datamodel.CommandID, isGroup bool) *ChangeContext {
	return &ChangeContext{
		EndpointID: endpoint,
		IsGroup:    isGroup,
		Command:    OnOff{Command: command},
	}
}

// NewLevelContext returns a context for MoveToLevel to level from endpoint.
func NewLevelContext(endpoint datamodel.EndpointID, level uint8, isGroup bool) *ChangeContext {
	return &ChangeContext{
		EndpointID: endpoint,
		IsGroup:    isGroup,
		Command:    LevelControl{Command: levelcontrol.CmdMoveToLevel, Level: level},
	}
}

// ClusterID returns the cluster of the carried command, or 0 if none.
func (c *ChangeContext) ClusterID() datamodel.ClusterID {
	if c.Command == nil {
		return 0
	}
	return c.Command.ClusterID()
}

// CommandID returns the carried command ID, or 0 if none.
func (c *ChangeContext) CommandID() datamodel.CommandID {
	if c.Command == nil {
		return 0
	}
	return c.Command.CommandID()
}

// Release ends the context's lifetime. Released contexts are rejected by
// every entry point.
func (c *ChangeContext) Release() {
	c.released.Store(true)
}

// Released reports whether Release has been called.
func (c *ChangeContext) Released() bool {
	return c.released.Load()
}

// GroupOnly implements binding.GroupScoped.
func (c *ChangeContext) GroupOnly() bool {
	return c != nil && c.IsGroup
}

// valid reports whether ctx can be dispatched.
func (c *ChangeContext) valid() bool {
	return c != nil && !c.Released() && c.Command != nil
}

// String returns a summary of the context.
func (c *ChangeContext) String() string {
	target := "unicast"
	if c.IsGroup {
		target = "group"
	}
	return fmt.Sprintf("ChangeContext{endpoint=%d cluster=0x%04X command=0x%02X %s}",
		c.EndpointID, uint32(c.ClusterID()), uint32(c.CommandID()), target)
}
