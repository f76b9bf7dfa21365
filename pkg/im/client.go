// Package im implements the client side of Interaction Model command
// invocation used by bindings: unicast invokes over a secure session with
// asynchronous completion, and group invokes without a response.
//
// The exchange layer, message framing and encryption are provided by the
// node's messaging stack through the Exchanger and GroupSender interfaces.
//
// Spec Reference: Chapter 8 "Interaction Model Specification"
// C++ Reference: src/app/CommandSender.cpp, src/controller/InvokeInteraction.h
package im

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mike-scofield/sdk-nrf/pkg/clusters"
	"github.com/mike-scofield/sdk-nrf/pkg/datamodel"
	"github.com/mike-scofield/sdk-nrf/pkg/fabric"
	imsg "github.com/mike-scofield/sdk-nrf/pkg/im/message"
	"github.com/mike-scofield/sdk-nrf/pkg/session"
	"github.com/mike-scofield/sdk-nrf/pkg/tlv"
	"github.com/pion/logging"
)

// ProtocolID is the Interaction Model protocol ID.
// Spec: Section 10.2.1
const ProtocolID uint16 = 0x0001

// DefaultRequestTimeout is the default timeout for unicast requests.
const DefaultRequestTimeout = 30 * time.Second

// Exchanger carries one unicast request over a secure session and returns
// the peer's response.
type Exchanger interface {
	Request(ctx context.Context, sess session.Handle, opcode imsg.Opcode, payload []byte) (imsg.Opcode, []byte, error)
}

// GroupSender queues one group-addressed message. Delivery to group
// members is not confirmed.
type GroupSender interface {
	SendGroup(fabricIndex fabric.FabricIndex, groupID datamodel.GroupID, sourceNodeID fabric.NodeID, opcode imsg.Opcode, payload []byte) error
}

// Scheduler runs completion callbacks on the application's work queue.
type Scheduler interface {
	ScheduleWork(fn func()) error
}

// SuccessFunc is called when the target accepted the command.
// response holds the encoded response fields for commands that return data.
type SuccessFunc func(path datamodel.ConcreteCommandPath, status imsg.Status, response []byte)

// FailureFunc is called when the command could not be applied.
type FailureFunc func(err error)

// ClientConfig configures the Client.
type ClientConfig struct {
	// Exchanger carries unicast requests. Required for InvokeCommand.
	Exchanger Exchanger

	// GroupSender queues group messages. Required for InvokeGroupCommand.
	GroupSender GroupSender

	// Scheduler receives completion callbacks.
	// Optional - if nil, callbacks run on the client's request goroutine.
	Scheduler Scheduler

	// Timeout for unicast requests. Defaults to DefaultRequestTimeout if zero.
	Timeout time.Duration

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Client issues cluster commands to bound targets.
//
// Usage:
//
//	client := im.NewClient(im.ClientConfig{Exchanger: x, GroupSender: g})
//	err := client.InvokeCommand(sess, endpoint, onoff.Toggle{}, onSuccess, onFailure)
type Client struct {
	exchanger   Exchanger
	groupSender GroupSender
	scheduler   Scheduler
	timeout     time.Duration

	log logging.LeveledLogger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewClient creates a new IM client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultRequestTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		exchanger:   config.Exchanger,
		groupSender: config.GroupSender,
		scheduler:   config.Scheduler,
		timeout:     timeout,
		ctx:         ctx,
		cancel:      cancel,
	}

	if config.LoggerFactory != nil {
		c.log = config.LoggerFactory.NewLogger("im")
	}

	return c
}

// InvokeCommand sends cmd to endpoint on the peer of sess.
//
// The request is started and InvokeCommand returns; an error return means
// nothing was sent and no callback will fire. Otherwise exactly one of
// onSuccess or onFailure is called, exactly once, after InvokeCommand
// has returned.
func (c *Client) InvokeCommand(
	sess session.Handle,
	endpoint datamodel.EndpointID,
	cmd clusters.Command,
	onSuccess SuccessFunc,
	onFailure FailureFunc,
) error {
	if c.exchanger == nil {
		return ErrNoExchanger
	}
	if !sess.IsValid() {
		return ErrInvalidSession
	}

	path := clusters.CommandPath(endpoint, cmd)
	payload, err := encodeInvokeRequest(imsg.Ptr(endpoint), cmd, false)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClientClosed
	}
	c.wg.Add(1)
	c.mu.Unlock()

	if c.log != nil {
		c.log.Debugf("invoke %s via %s", path, sess)
	}

	ready := make(chan struct{})
	defer close(ready)

	go func() {
		defer c.wg.Done()
		<-ready

		status, response, err := c.request(sess, path, payload)

		var once sync.Once
		c.deliver(func() {
			once.Do(func() {
				if err != nil {
					if onFailure != nil {
						onFailure(err)
					}
					return
				}
				if onSuccess != nil {
					onSuccess(path, status, response)
				}
			})
		})
	}()

	return nil
}

// request performs the exchange and interprets the InvokeResponse.
func (c *Client) request(sess session.Handle, path datamodel.ConcreteCommandPath, payload []byte) (imsg.Status, []byte, error) {
	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()

	opcode, resp, err := c.exchanger.Request(ctx, sess, imsg.OpcodeInvokeRequest, payload)
	if err != nil {
		switch {
		case errors.Is(c.ctx.Err(), context.Canceled):
			return 0, nil, ErrClientClosed
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return 0, nil, ErrClientTimeout
		default:
			return 0, nil, err
		}
	}

	switch opcode {
	case imsg.OpcodeInvokeResponse:
		return decodeInvokeResponse(path, resp)
	case imsg.OpcodeStatusResponse:
		status, err := decodeStatusResponse(resp)
		if err != nil {
			return 0, nil, err
		}
		return 0, nil, &StatusError{Status: status}
	default:
		return 0, nil, ErrUnexpectedResponse
	}
}

// deliver hands a completion to the scheduler, falling back to running it
// inline when the queue no longer accepts work.
func (c *Client) deliver(fn func()) {
	if c.scheduler == nil {
		fn()
		return
	}
	if err := c.scheduler.ScheduleWork(fn); err != nil {
		if c.log != nil {
			c.log.Warnf("completion not scheduled: %v", err)
		}
		fn()
	}
}

// InvokeGroupCommand sends cmd to every member of groupID on the fabric.
//
// Group invokes suppress responses, so the only feedback is the immediate
// error of queuing the message.
func (c *Client) InvokeGroupCommand(
	fabricIndex fabric.FabricIndex,
	groupID datamodel.GroupID,
	sourceNodeID fabric.NodeID,
	cmd clusters.Command,
) error {
	if c.groupSender == nil {
		return ErrNoGroupSender
	}
	if groupID == 0 {
		return ErrInvalidGroup
	}
	if !sourceNodeID.IsOperational() {
		return ErrInvalidSourceNode
	}

	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClientClosed
	}

	payload, err := encodeInvokeRequest(nil, cmd, true)
	if err != nil {
		return err
	}

	if c.log != nil {
		c.log.Debugf("group invoke cluster=0x%04x command=0x%02x fabric=%d group=0x%04x",
			uint32(cmd.ClusterID()), uint32(cmd.CommandID()), fabricIndex, groupID)
	}

	return c.groupSender.SendGroup(fabricIndex, groupID, sourceNodeID, imsg.OpcodeInvokeRequest, payload)
}

// Close stops accepting requests, cancels in-flight ones and waits for
// their callbacks to be handed off.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
	return nil
}

// encodeInvokeRequest builds a single-command InvokeRequestMessage.
// A nil endpoint produces a group path.
func encodeInvokeRequest(endpoint *datamodel.EndpointID, cmd clusters.Command, suppressResponse bool) ([]byte, error) {
	fields, err := clusters.EncodeCommand(cmd)
	if err != nil {
		return nil, err
	}

	req := &imsg.InvokeRequestMessage{
		SuppressResponse: suppressResponse,
		InvokeRequests: []imsg.CommandDataIB{{
			Path: imsg.CommandPathIB{
				Endpoint: endpoint,
				Cluster:  cmd.ClusterID(),
				Command:  cmd.CommandID(),
			},
			Fields: fields,
		}},
	}

	var buf bytes.Buffer
	if err := req.Encode(tlv.NewWriter(&buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeInvokeResponse extracts the outcome for path from an InvokeResponseMessage.
func decodeInvokeResponse(path datamodel.ConcreteCommandPath, data []byte) (imsg.Status, []byte, error) {
	elem, err := tlv.Decode(data)
	if err != nil {
		return 0, nil, err
	}
	var resp imsg.InvokeResponseMessage
	if err := resp.DecodeElement(&elem); err != nil {
		return 0, nil, err
	}

	for _, ib := range resp.InvokeResponses {
		switch {
		case ib.Command != nil && ib.Command.Path.Cluster == path.Cluster:
			return imsg.StatusSuccess, ib.Command.Fields, nil
		case ib.Status != nil && matchesStatusPath(ib.Status.Path, path):
			st := ib.Status.Status
			if !st.Status.IsSuccess() {
				return 0, nil, &StatusError{Status: st.Status, ClusterStatus: st.ClusterStatus}
			}
			return st.Status, nil, nil
		}
	}
	return 0, nil, ErrUnexpectedResponse
}

// matchesStatusPath compares cluster and command of a status IB, which
// echoes the request path. Data responses carry the response command ID
// instead, so those are matched on the cluster alone.
func matchesStatusPath(p imsg.CommandPathIB, path datamodel.ConcreteCommandPath) bool {
	return p.Cluster == path.Cluster && p.Command == path.Command
}

// decodeStatusResponse reads the status of a StatusResponseMessage.
// Spec: Section 10.7.1
func decodeStatusResponse(data []byte) (imsg.Status, error) {
	elem, err := tlv.Decode(data)
	if err != nil {
		return 0, err
	}
	f, ok := elem.Field(0)
	if !ok {
		return 0, imsg.ErrMissingField
	}
	v, err := f.Uint()
	if err != nil {
		return 0, err
	}
	return imsg.Status(v), nil
}
