package lightswitch

import (
	"errors"
	"fmt"

	"github.com/mike-scofield/sdk-nrf/pkg/binding"
	"github.com/mike-scofield/sdk-nrf/pkg/clusters/levelcontrol"
	"github.com/mike-scofield/sdk-nrf/pkg/clusters/onoff"
	"github.com/mike-scofield/sdk-nrf/pkg/datamodel"
	"github.com/pion/logging"
)

// BindingManager fans a local change out to bound targets.
// Implemented by binding.Manager[*ChangeContext].
type BindingManager interface {
	Init(params binding.InitParams) error
	RegisterBoundDeviceChangedHandler(fn binding.BoundDeviceChangedFunc[*ChangeContext])
	NotifyBoundClusterChanged(endpoint datamodel.EndpointID, cluster datamodel.ClusterID, ctx *ChangeContext) error
}

// Queue runs work on the application's single worker.
// Implemented by platform.WorkQueue.
type Queue interface {
	ScheduleWork(fn func()) error
}

// Config configures a Handler.
type Config struct {
	// Manager delivers changes to bound targets. Required.
	Manager BindingManager

	// Table is the binding table. Required.
	Table binding.EntrySource

	// Resolver connects unicast peers for the manager. Required.
	Resolver binding.DeviceResolver

	// Fabrics resolves the local node ID of group sends. Required.
	Fabrics FabricLookup

	// Invoker sends commands. Required.
	Invoker Invoker

	// Queue runs every entry point. Required.
	Queue Queue

	// Catalog builds commands. Defaults to NewCatalog() if nil.
	Catalog *Catalog

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Validate checks that every required collaborator is set.
func (c *Config) Validate() error {
	switch {
	case c.Manager == nil:
		return fmt.Errorf("%w: binding manager", ErrMissingDependency)
	case c.Table == nil:
		return fmt.Errorf("%w: binding table", ErrMissingDependency)
	case c.Resolver == nil:
		return fmt.Errorf("%w: device resolver", ErrMissingDependency)
	case c.Fabrics == nil:
		return fmt.Errorf("%w: fabric table", ErrMissingDependency)
	case c.Invoker == nil:
		return fmt.Errorf("%w: invoker", ErrMissingDependency)
	case c.Queue == nil:
		return fmt.Errorf("%w: work queue", ErrMissingDependency)
	}
	return nil
}

// Handler is the light switch binding handler. It reacts to local switch
// actions by commanding every bound light.
type Handler struct {
	config     Config
	classifier Classifier
	dispatcher *Dispatcher
	inspector  *Inspector
	log        logging.LeveledLogger
}

// NewHandler creates a Handler. Call Init before posting changes.
func NewHandler(config Config) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	dispatcher, err := NewDispatcher(DispatcherConfig{
		Catalog:       config.Catalog,
		Invoker:       config.Invoker,
		LoggerFactory: config.LoggerFactory,
	})
	if err != nil {
		return nil, err
	}

	return &Handler{
		config:     config,
		classifier: Classifier{Fabrics: config.Fabrics},
		dispatcher: dispatcher,
		inspector:  NewInspector(config.Table, config.LoggerFactory),
		log:        newLogger(config.LoggerFactory, "lightswitch"),
	}, nil
}

// Inspector returns the handler's binding table inspector.
func (h *Handler) Inspector() *Inspector {
	return h.inspector
}

// Init schedules manager initialization on the work queue.
func (h *Handler) Init() error {
	return h.config.Queue.ScheduleWork(h.initInternal)
}

func (h *Handler) initInternal() {
	h.log.Info("Initialize binding Handler")

	err := h.config.Manager.Init(binding.InitParams{
		Table:    h.config.Table,
		Resolver: h.config.Resolver,
		Fabrics:  h.config.Fabrics,
	})
	if err != nil {
		h.log.Errorf("binding handler init failed: %v", err)
	}

	h.config.Manager.RegisterBoundDeviceChangedHandler(h.OnBindingChanged)
	h.inspector.PrintTable()
}

// Post hands ctx to SwitchWorker on the work queue. On error the context
// is released and nothing is sent.
func (h *Handler) Post(ctx *ChangeContext) error {
	if err := h.config.Queue.ScheduleWork(func() { h.SwitchWorker(ctx) }); err != nil {
		if ctx != nil {
			ctx.Release()
		}
		return err
	}
	return nil
}

// SwitchWorker notifies every target bound to the context's endpoint and
// cluster, then releases ctx.
func (h *Handler) SwitchWorker(ctx *ChangeContext) {
	if ctx == nil {
		h.log.Error("Invalid Switch data")
		return
	}
	defer ctx.Release()

	if !ctx.valid() {
		h.log.Error("Invalid Switch data")
		return
	}

	h.log.Infof("Notify Bounded Cluster | endpoint: %d cluster: %d", ctx.EndpointID, uint32(ctx.ClusterID()))
	if err := h.config.Manager.NotifyBoundClusterChanged(ctx.EndpointID, ctx.ClusterID(), ctx); err != nil {
		h.log.Errorf("Notify Bounded Cluster failed: %v", err)
	}
}

// OnBindingChanged is called by the binding manager for each target bound
// to a changed cluster.
func (h *Handler) OnBindingChanged(entry binding.Entry, device binding.DeviceProxy, ctx *ChangeContext) {
	if !ctx.valid() {
		h.log.Error("Invalid context for Light switch handler")
		return
	}

	target, err := h.classifier.Classify(entry, device, ctx)
	if err != nil {
		if errors.Is(err, ErrInvalidContext) {
			h.log.Error("Invalid context for Light switch handler")
		} else {
			h.log.Errorf("Cannot resolve binding target %s: %v", entry, err)
		}
		return
	}

	var unsupported string
	switch target.(type) {
	case TargetGroup:
		unsupported = "Invalid binding group command data"
	case TargetUnicast:
		unsupported = "Invalid binding unicast command data"
	default:
		return
	}

	switch ctx.ClusterID() {
	case onoff.ClusterID, levelcontrol.ClusterID:
		h.dispatcher.Dispatch(entry, target, ctx)
	default:
		h.log.Error(unsupported)
	}
}
