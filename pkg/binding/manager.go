package binding

import (
	"fmt"
	"sync"

	"github.com/mike-scofield/sdk-nrf/pkg/datamodel"
	"github.com/mike-scofield/sdk-nrf/pkg/fabric"
	"github.com/mike-scofield/sdk-nrf/pkg/session"
	"github.com/pion/logging"
)

// DeviceProxy is a connected unicast peer.
type DeviceProxy interface {
	PeerNodeID() fabric.NodeID
	Session() session.Handle
}

// DeviceResolver finds a connected proxy for a bound peer.
// A nil error comes with a non-nil proxy.
type DeviceResolver interface {
	ResolveDevice(fabricIndex fabric.FabricIndex, nodeID fabric.NodeID) (DeviceProxy, error)
}

// EntrySource is the read side of a binding table.
type EntrySource interface {
	Entries() []Entry
}

// FabricLookup resolves a fabric index. Entries of unknown fabrics are skipped.
type FabricLookup interface {
	FindByIndex(index fabric.FabricIndex) (*fabric.Info, bool)
}

// BoundDeviceChangedFunc is called once per target affected by a change.
// device is nil for multicast entries.
type BoundDeviceChangedFunc[C any] func(entry Entry, device DeviceProxy, ctx C)

// GroupScoped is implemented by change contexts that may target group
// bindings only. Unicast entries are skipped for them without resolving
// a device.
type GroupScoped interface {
	GroupOnly() bool
}

// InitParams are the collaborators a Manager needs to deliver changes.
type InitParams struct {
	// Table holds the bindings. Required.
	Table EntrySource

	// Resolver connects unicast peers. Required.
	Resolver DeviceResolver

	// Fabrics filters entries of removed fabrics.
	// Optional - if nil, every entry is considered.
	Fabrics FabricLookup
}

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Manager delivers local cluster changes to bound targets.
// C is the application's change context passed through to the handler.
type Manager[C any] struct {
	log logging.LeveledLogger

	mu          sync.RWMutex
	params      InitParams
	initialized bool
	handler     BoundDeviceChangedFunc[C]
}

// NewManager creates an uninitialized Manager.
func NewManager[C any](config ManagerConfig) *Manager[C] {
	m := &Manager[C]{}
	if config.LoggerFactory != nil {
		m.log = config.LoggerFactory.NewLogger("binding")
	}
	return m
}

// Init binds the manager to its collaborators.
func (m *Manager[C]) Init(params InitParams) error {
	if params.Table == nil {
		return fmt.Errorf("%w: binding table", ErrMissingDependency)
	}
	if params.Resolver == nil {
		return fmt.Errorf("%w: device resolver", ErrMissingDependency)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return ErrAlreadyInitialized
	}
	m.params = params
	m.initialized = true
	return nil
}

// RegisterBoundDeviceChangedHandler sets the handler called for each
// affected target. It replaces any previous handler.
func (m *Manager[C]) RegisterBoundDeviceChangedHandler(fn BoundDeviceChangedFunc[C]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = fn
}

// NotifyBoundClusterChanged calls the handler for every binding on endpoint
// that covers cluster, in table order.
//
// Unicast peers that cannot be resolved are logged and skipped. Unused and
// many-to-one slots are never delivered. When ctx is a GroupScoped context
// reporting GroupOnly, unicast entries are skipped as well.
func (m *Manager[C]) NotifyBoundClusterChanged(endpoint datamodel.EndpointID, cluster datamodel.ClusterID, ctx C) error {
	m.mu.RLock()
	initialized := m.initialized
	params := m.params
	handler := m.handler
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if handler == nil {
		return ErrNoHandler
	}
	groupOnly := false
	if g, ok := any(ctx).(GroupScoped); ok {
		groupOnly = g.GroupOnly()
	}

	for _, e := range params.Table.Entries() {
		if e.Local != endpoint || !e.HasCluster(cluster) {
			continue
		}
		if params.Fabrics != nil {
			if _, ok := params.Fabrics.FindByIndex(e.FabricIndex); !ok {
				if m.log != nil {
					m.log.Debugf("skipping %s: fabric not present", e)
				}
				continue
			}
		}

		switch e.Type {
		case TypeMulticast:
			handler(e, nil, ctx)
		case TypeUnicast:
			if groupOnly {
				continue
			}
			device, err := params.Resolver.ResolveDevice(e.FabricIndex, e.NodeID)
			if err != nil {
				if m.log != nil {
					m.log.Warnf("cannot reach %s: %v", e, err)
				}
				continue
			}
			handler(e, device, ctx)
		}
	}
	return nil
}
