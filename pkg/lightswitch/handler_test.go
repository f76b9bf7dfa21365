package lightswitch

import (
	"testing"
	"time"

	"github.com/mike-scofield/sdk-nrf/pkg/binding"
	"github.com/mike-scofield/sdk-nrf/pkg/clusters/levelcontrol"
	"github.com/mike-scofield/sdk-nrf/pkg/clusters/onoff"
	"github.com/mike-scofield/sdk-nrf/pkg/datamodel"
	"github.com/mike-scofield/sdk-nrf/pkg/fabric"
	"github.com/mike-scofield/sdk-nrf/pkg/platform"
	"github.com/mike-scofield/sdk-nrf/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// colorData is a command of a cluster the handler does not drive.
type colorData struct{}

func (colorData) ClusterID() datamodel.ClusterID { return 0x0300 }
func (colorData) CommandID() datamodel.CommandID { return 0x07 }

func standardEntries() []binding.Entry {
	return []binding.Entry{
		binding.NewUnicast(1, switchEndpoint, lightNodeID, 3, clusterPtr(onoff.ClusterID)),
		binding.NewUnicast(1, switchEndpoint, lightNodeID, 4, clusterPtr(levelcontrol.ClusterID)),
		binding.NewMulticast(1, switchEndpoint, 7, nil),
		{Type: binding.TypeUnused},
		{Type: binding.TypeManyToOne, FabricIndex: 1, Local: switchEndpoint},
	}
}

func TestNewHandler_Validate(t *testing.T) {
	_, err := NewHandler(Config{})
	assert.ErrorIs(t, err, ErrMissingDependency)

	_, err = NewHandler(Config{
		Manager: binding.NewManager[*ChangeContext](binding.ManagerConfig{}),
		Table:   binding.NewTable(binding.TableConfig{}),
	})
	assert.ErrorIs(t, err, ErrMissingDependency)
}

func TestHandler_Init(t *testing.T) {
	f := newFixture(t, standardEntries()...)

	assert.True(t, f.logs.has("INFO", "Initialize binding Handler"), f.logs.String())
	assert.True(t, f.logs.has("INFO", "Binding Table size: [5]:"), f.logs.String())
	assert.True(t, f.logs.has("INFO", "[4] MANY TO ONE"), f.logs.String())

	// A second init fails in the manager and is only logged.
	require.NoError(t, f.handler.Init())
	assert.True(t, f.logs.has("ERROR", "binding handler init failed"), f.logs.String())
}

func TestHandler_UnicastToggle(t *testing.T) {
	f := newFixture(t, standardEntries()...)
	f.invoker.On("InvokeCommand",
		mock.MatchedBy(func(s session.Handle) bool { return s.PeerNodeID == lightNodeID }),
		datamodel.EndpointID(3), onoff.Toggle{}, mock.Anything, mock.Anything).
		Return(nil).Once()

	require.NoError(t, f.handler.Post(NewOnOffContext(switchEndpoint, onoff.CmdToggle, false)))

	f.invoker.AssertExpectations(t)
	f.invoker.AssertNumberOfCalls(t, "InvokeCommand", 1)
	f.invoker.AssertNotCalled(t, "InvokeGroupCommand", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.True(t, f.logs.has("INFO", "Notify Bounded Cluster | endpoint: 1 cluster: 6"), f.logs.String())
}

func TestHandler_GroupOn(t *testing.T) {
	f := newFixture(t, standardEntries()...)
	f.invoker.On("InvokeGroupCommand", fabric.FabricIndex(1), datamodel.GroupID(7), localNodeID, onoff.On{}).
		Return(nil).Once()

	require.NoError(t, f.handler.Post(NewOnOffContext(switchEndpoint, onoff.CmdOn, true)))

	f.invoker.AssertExpectations(t)
	f.invoker.AssertNumberOfCalls(t, "InvokeGroupCommand", 1)
	f.invoker.AssertNotCalled(t, "InvokeCommand", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_GroupSkipsUnreachablePeer(t *testing.T) {
	f := newFixture(t,
		binding.NewUnicast(1, switchEndpoint, 99, 3, clusterPtr(onoff.ClusterID)),
		binding.NewMulticast(1, switchEndpoint, 7, clusterPtr(onoff.ClusterID)),
	)
	f.invoker.On("InvokeGroupCommand", fabric.FabricIndex(1), datamodel.GroupID(7), localNodeID, onoff.Off{}).
		Return(nil).Once()

	require.NoError(t, f.handler.Post(NewOnOffContext(switchEndpoint, onoff.CmdOff, true)))

	f.invoker.AssertExpectations(t)
	assert.False(t, f.logs.has("WARNING", "cannot reach"), f.logs.String())
}

func TestHandler_Level(t *testing.T) {
	f := newFixture(t, standardEntries()...)
	f.invoker.On("InvokeCommand", mock.Anything, datamodel.EndpointID(4), levelcontrol.MoveToLevel{Level: 99}, mock.Anything, mock.Anything).
		Return(nil).Once()
	f.invoker.On("InvokeGroupCommand", fabric.FabricIndex(1), datamodel.GroupID(7), localNodeID, levelcontrol.MoveToLevel{Level: 99}).
		Return(nil).Once()

	require.NoError(t, f.handler.Post(NewLevelContext(switchEndpoint, 99, false)))
	require.NoError(t, f.handler.Post(NewLevelContext(switchEndpoint, 99, true)))

	f.invoker.AssertExpectations(t)
}

func TestHandler_NoMatchingBinding(t *testing.T) {
	f := newFixture(t, standardEntries()...)

	// Endpoint 2 has no bindings.
	ctx := NewOnOffContext(2, onoff.CmdToggle, false)
	require.NoError(t, f.handler.Post(ctx))

	f.invoker.assertNoInvokes(t)
	assert.True(t, ctx.Released())
}

func TestHandler_OnBindingChanged_InvalidContext(t *testing.T) {
	f := newFixture(t)
	entry := binding.NewUnicast(1, switchEndpoint, lightNodeID, 3, nil)

	f.handler.OnBindingChanged(entry, lightDevice(), nil)
	assert.True(t, f.logs.has("ERROR", "Invalid context for Light switch handler"), f.logs.String())

	released := NewOnOffContext(switchEndpoint, onoff.CmdOn, false)
	released.Release()
	f.handler.OnBindingChanged(entry, lightDevice(), released)

	f.invoker.assertNoInvokes(t)
}

func TestHandler_OnBindingChanged_TypeMismatchIsSilent(t *testing.T) {
	f := newFixture(t)
	before := f.logs.String()

	f.handler.OnBindingChanged(binding.NewMulticast(1, switchEndpoint, 7, nil), nil, NewOnOffContext(switchEndpoint, onoff.CmdOn, false))
	f.handler.OnBindingChanged(binding.NewUnicast(1, switchEndpoint, lightNodeID, 3, nil), lightDevice(), NewOnOffContext(switchEndpoint, onoff.CmdOn, true))
	f.handler.OnBindingChanged(binding.Entry{Type: binding.TypeUnused}, lightDevice(), NewOnOffContext(switchEndpoint, onoff.CmdOn, false))
	f.handler.OnBindingChanged(binding.Entry{Type: binding.TypeManyToOne}, nil, NewOnOffContext(switchEndpoint, onoff.CmdOn, true))

	f.invoker.assertNoInvokes(t)
	assert.Equal(t, before, f.logs.String(), "mismatched targets are skipped without logging")
}

func TestHandler_OnBindingChanged_UnsupportedCluster(t *testing.T) {
	f := newFixture(t)

	unicast := &ChangeContext{EndpointID: switchEndpoint, Command: colorData{}}
	f.handler.OnBindingChanged(binding.NewUnicast(1, switchEndpoint, lightNodeID, 3, nil), lightDevice(), unicast)
	assert.True(t, f.logs.has("ERROR", "Invalid binding unicast command data"), f.logs.String())

	group := &ChangeContext{EndpointID: switchEndpoint, IsGroup: true, Command: colorData{}}
	f.handler.OnBindingChanged(binding.NewMulticast(1, switchEndpoint, 7, nil), nil, group)
	assert.True(t, f.logs.has("ERROR", "Invalid binding group command data"), f.logs.String())

	f.invoker.assertNoInvokes(t)
}

func TestHandler_OnBindingChanged_UnknownFabric(t *testing.T) {
	f := newFixture(t)

	f.handler.OnBindingChanged(binding.NewMulticast(3, switchEndpoint, 7, nil), nil, NewOnOffContext(switchEndpoint, onoff.CmdOn, true))

	assert.True(t, f.logs.has("ERROR", "Cannot resolve binding target"), f.logs.String())
	f.invoker.assertNoInvokes(t)
}

func TestHandler_OnBindingChanged_UnknownCommand(t *testing.T) {
	f := newFixture(t)

	f.handler.OnBindingChanged(binding.NewUnicast(1, switchEndpoint, lightNodeID, 3, nil), lightDevice(),
		NewOnOffContext(switchEndpoint, 0x40, false))

	f.invoker.assertNoInvokes(t)
	assert.True(t, f.logs.has("DEBUG", "commandId is not supported"), f.logs.String())
}

func TestHandler_SwitchWorker(t *testing.T) {
	f := newFixture(t, standardEntries()...)

	f.handler.SwitchWorker(nil)
	assert.True(t, f.logs.has("ERROR", "Invalid Switch data"), f.logs.String())

	f.invoker.On("InvokeCommand", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errLinkDown)
	ctx := NewOnOffContext(switchEndpoint, onoff.CmdOff, false)
	f.handler.SwitchWorker(ctx)
	assert.True(t, ctx.Released(), "context is released after a failed send")

	// A released context is not delivered again.
	f.handler.SwitchWorker(ctx)
	f.invoker.AssertNumberOfCalls(t, "InvokeCommand", 1)
}

func TestHandler_PostRejected(t *testing.T) {
	h, err := NewHandler(Config{
		Manager:  binding.NewManager[*ChangeContext](binding.ManagerConfig{}),
		Table:    binding.NewTable(binding.TableConfig{}),
		Resolver: binding.SessionResolver{Sessions: session.NewTable(0)},
		Fabrics:  newFabricTable(t),
		Invoker:  &mockInvoker{},
		Queue:    rejectQueue{err: platform.ErrQueueFull},
	})
	require.NoError(t, err)

	ctx := NewOnOffContext(switchEndpoint, onoff.CmdOn, false)
	assert.ErrorIs(t, h.Post(ctx), platform.ErrQueueFull)
	assert.True(t, ctx.Released())
	assert.ErrorIs(t, h.Init(), platform.ErrQueueFull)
}

func TestHandler_WorkQueue(t *testing.T) {
	table := binding.NewTable(binding.TableConfig{})
	_, err := table.Add(binding.NewMulticast(1, switchEndpoint, 7, nil))
	require.NoError(t, err)

	queue := platform.NewWorkQueue(platform.WorkQueueConfig{})
	require.NoError(t, queue.Start())
	defer queue.Stop()

	sent := make(chan struct{}, 1)
	invoker := &mockInvoker{}
	invoker.On("InvokeGroupCommand", fabric.FabricIndex(1), datamodel.GroupID(7), localNodeID, onoff.Toggle{}).
		Run(func(mock.Arguments) { sent <- struct{}{} }).
		Return(nil).Once()

	h, err := NewHandler(Config{
		Manager:  binding.NewManager[*ChangeContext](binding.ManagerConfig{}),
		Table:    table,
		Resolver: binding.SessionResolver{Sessions: session.NewTable(0)},
		Fabrics:  newFabricTable(t),
		Invoker:  invoker,
		Queue:    queue,
	})
	require.NoError(t, err)
	require.NoError(t, h.Init())
	require.NoError(t, h.Post(NewOnOffContext(switchEndpoint, onoff.CmdToggle, true)))

	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("group command not sent")
	}
	invoker.AssertExpectations(t)
}
