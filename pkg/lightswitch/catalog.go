package lightswitch

import (
	"fmt"
	"sync"

	"github.com/mike-scofield/sdk-nrf/pkg/clusters"
	"github.com/mike-scofield/sdk-nrf/pkg/clusters/levelcontrol"
	"github.com/mike-scofield/sdk-nrf/pkg/clusters/onoff"
	"github.com/mike-scofield/sdk-nrf/pkg/datamodel"
)

// Builder constructs an outbound command from a change context.
type Builder func(ctx *ChangeContext) (clusters.Command, error)

type route struct {
	cluster datamodel.ClusterID
	command datamodel.CommandID
}

// Catalog maps (cluster, command) pairs to command builders.
type Catalog struct {
	mu     sync.RWMutex
	routes map[route]Builder
}

// NewCatalog returns a catalog with the On/Off and Level Control routes.
func NewCatalog() *Catalog {
	c := &Catalog{routes: make(map[route]Builder)}

	c.Register(onoff.ClusterID, onoff.CmdToggle, onOffBuilder(onoff.Toggle{}))
	c.Register(onoff.ClusterID, onoff.CmdOn, onOffBuilder(onoff.On{}))
	c.Register(onoff.ClusterID, onoff.CmdOff, onOffBuilder(onoff.Off{}))
	c.Register(levelcontrol.ClusterID, levelcontrol.CmdMoveToLevel, buildMoveToLevel)
	c.Register(levelcontrol.ClusterID, levelcontrol.CmdMoveToLevelWithOnOff, buildMoveToLevelWithOnOff)

	return c
}

// Register adds or replaces the builder for a pair.
func (c *Catalog) Register(cluster datamodel.ClusterID, command datamodel.CommandID, b Builder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routes[route{cluster, command}] = b
}

// Lookup builds the command for a pair.
// Unknown pairs return an error wrapping ErrNotSupported.
func (c *Catalog) Lookup(cluster datamodel.ClusterID, command datamodel.CommandID, ctx *ChangeContext) (clusters.Command, error) {
	c.mu.RLock()
	b, ok := c.routes[route{cluster, command}]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: cluster 0x%04X command 0x%02X", ErrNotSupported, uint32(cluster), uint32(command))
	}
	if ctx == nil {
		return nil, ErrInvalidContext
	}
	return b(ctx)
}

func onOffBuilder(cmd clusters.Command) Builder {
	return func(ctx *ChangeContext) (clusters.Command, error) {
		if _, ok := ctx.Command.(OnOff); !ok {
			return nil, fmt.Errorf("%w: expected OnOff data, got %T", ErrInvalidContext, ctx.Command)
		}
		return cmd, nil
	}
}

func levelData(ctx *ChangeContext) (LevelControl, error) {
	d, ok := ctx.Command.(LevelControl)
	if !ok {
		return LevelControl{}, fmt.Errorf("%w: expected LevelControl data, got %T", ErrInvalidContext, ctx.Command)
	}
	return d, nil
}

func buildMoveToLevel(ctx *ChangeContext) (clusters.Command, error) {
	d, err := levelData(ctx)
	if err != nil {
		return nil, err
	}
	return levelcontrol.MoveToLevel{Level: d.Level}, nil
}

func buildMoveToLevelWithOnOff(ctx *ChangeContext) (clusters.Command, error) {
	d, err := levelData(ctx)
	if err != nil {
		return nil, err
	}
	return levelcontrol.MoveToLevelWithOnOff{MoveToLevel: levelcontrol.MoveToLevel{Level: d.Level}}, nil
}
