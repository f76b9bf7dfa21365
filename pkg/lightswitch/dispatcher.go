package lightswitch

import (
	"errors"
	"fmt"

	"github.com/mike-scofield/sdk-nrf/pkg/binding"
	"github.com/mike-scofield/sdk-nrf/pkg/clusters"
	"github.com/mike-scofield/sdk-nrf/pkg/datamodel"
	"github.com/mike-scofield/sdk-nrf/pkg/fabric"
	"github.com/mike-scofield/sdk-nrf/pkg/im"
	imsg "github.com/mike-scofield/sdk-nrf/pkg/im/message"
	"github.com/mike-scofield/sdk-nrf/pkg/session"
	"github.com/pion/logging"
)

// Invoker sends commands to bound targets. Implemented by im.Client.
type Invoker interface {
	InvokeCommand(sess session.Handle, endpoint datamodel.EndpointID, cmd clusters.Command, onSuccess im.SuccessFunc, onFailure im.FailureFunc) error
	InvokeGroupCommand(fabricIndex fabric.FabricIndex, groupID datamodel.GroupID, sourceNodeID fabric.NodeID, cmd clusters.Command) error
}

// Outcome is the result of one dispatch.
type Outcome int

const (
	// OutcomeSent means a unicast request was started.
	OutcomeSent Outcome = iota
	// OutcomeQueued means a group message was queued.
	OutcomeQueued
	// OutcomeSkipped means the target did not apply.
	OutcomeSkipped
	// OutcomeNotSupported means the catalog has no route for the command.
	OutcomeNotSupported
	// OutcomeFailed means the request could not be issued.
	OutcomeFailed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "Sent"
	case OutcomeQueued:
		return "Queued"
	case OutcomeSkipped:
		return "Skipped"
	case OutcomeNotSupported:
		return "NotSupported"
	case OutcomeFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result reports what a dispatch did. Err is set for OutcomeFailed and
// OutcomeNotSupported.
type Result struct {
	Outcome Outcome
	Err     error
}

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	// Catalog builds outbound commands. Defaults to NewCatalog() if nil.
	Catalog *Catalog

	// Invoker sends commands. Required.
	Invoker Invoker

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Dispatcher turns a classified change into at most one outbound request.
type Dispatcher struct {
	catalog *Catalog
	invoker Invoker
	log     logging.LeveledLogger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(config DispatcherConfig) (*Dispatcher, error) {
	if config.Invoker == nil {
		return nil, fmt.Errorf("%w: invoker", ErrMissingDependency)
	}
	catalog := config.Catalog
	if catalog == nil {
		catalog = NewCatalog()
	}
	return &Dispatcher{
		catalog: catalog,
		invoker: config.Invoker,
		log:     newLogger(config.LoggerFactory, "lightswitch"),
	}, nil
}

// Dispatch issues the command carried by ctx to target.
//
// Failures are logged and reported in the Result; nothing is retried.
// Unicast completions are logged when the target answers.
func (d *Dispatcher) Dispatch(entry binding.Entry, target Target, ctx *ChangeContext) Result {
	if !ctx.valid() {
		return Result{Outcome: OutcomeFailed, Err: ErrInvalidContext}
	}

	switch target.(type) {
	case TargetUnicast, TargetGroup:
	default:
		return Result{Outcome: OutcomeSkipped}
	}

	cmd, err := d.catalog.Lookup(ctx.ClusterID(), ctx.CommandID(), ctx)
	if err != nil {
		if errors.Is(err, ErrNotSupported) {
			d.log.Debug("Invalid binding command data - commandId is not supported")
			return Result{Outcome: OutcomeNotSupported, Err: err}
		}
		d.log.Errorf("Invalid binding command data: %v", err)
		return Result{Outcome: OutcomeFailed, Err: err}
	}

	switch t := target.(type) {
	case TargetUnicast:
		return d.unicast(entry, t, cmd)
	case TargetGroup:
		return d.group(t, cmd)
	}
	return Result{Outcome: OutcomeSkipped}
}

func (d *Dispatcher) unicast(entry binding.Entry, t TargetUnicast, cmd clusters.Command) Result {
	if !hasDevice(t.Device) {
		d.log.Errorf("Invoke Unicast Command Request ERROR: %v", ErrNoSession)
		return Result{Outcome: OutcomeFailed, Err: ErrNoSession}
	}
	sess := t.Device.Session()
	if !sess.IsValid() {
		err := fmt.Errorf("%w: node 0x%016X", ErrNoSession, uint64(t.Device.PeerNodeID()))
		d.log.Errorf("Invoke Unicast Command Request ERROR: %v", err)
		return Result{Outcome: OutcomeFailed, Err: err}
	}

	onSuccess := func(_ datamodel.ConcreteCommandPath, _ imsg.Status, _ []byte) {
		d.log.Debug("Binding command applied successfully!")
	}
	onFailure := func(err error) {
		d.log.Infof("Binding command was not applied! Reason: %v", err)
	}

	if err := d.invoker.InvokeCommand(sess, entry.Remote, cmd, onSuccess, onFailure); err != nil {
		d.log.Errorf("Invoke Unicast Command Request ERROR: %v", err)
		return Result{Outcome: OutcomeFailed, Err: err}
	}
	return Result{Outcome: OutcomeSent}
}

func (d *Dispatcher) group(t TargetGroup, cmd clusters.Command) Result {
	if err := d.invoker.InvokeGroupCommand(t.FabricIndex, t.GroupID, t.SourceNodeID, cmd); err != nil {
		d.log.Errorf("Invoke Group Command Request ERROR: %v", err)
		return Result{Outcome: OutcomeFailed, Err: err}
	}
	return Result{Outcome: OutcomeQueued}
}
