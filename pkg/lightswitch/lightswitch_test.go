package lightswitch

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/mike-scofield/sdk-nrf/pkg/binding"
	"github.com/mike-scofield/sdk-nrf/pkg/clusters"
	"github.com/mike-scofield/sdk-nrf/pkg/datamodel"
	"github.com/mike-scofield/sdk-nrf/pkg/fabric"
	"github.com/mike-scofield/sdk-nrf/pkg/im"
	"github.com/mike-scofield/sdk-nrf/pkg/session"
	"github.com/pion/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	switchEndpoint datamodel.EndpointID = 1
	localNodeID    fabric.NodeID        = 0x1111
	lightNodeID    fabric.NodeID        = 42
)

type mockInvoker struct {
	mock.Mock
}

func (m *mockInvoker) InvokeCommand(sess session.Handle, endpoint datamodel.EndpointID, cmd clusters.Command, onSuccess im.SuccessFunc, onFailure im.FailureFunc) error {
	return m.Called(sess, endpoint, cmd, onSuccess, onFailure).Error(0)
}

func (m *mockInvoker) InvokeGroupCommand(fabricIndex fabric.FabricIndex, groupID datamodel.GroupID, sourceNodeID fabric.NodeID, cmd clusters.Command) error {
	return m.Called(fabricIndex, groupID, sourceNodeID, cmd).Error(0)
}

func (m *mockInvoker) assertNoInvokes(t *testing.T) {
	t.Helper()
	m.AssertNotCalled(t, "InvokeCommand", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.AssertNotCalled(t, "InvokeGroupCommand", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// logBuffer collects log output from any goroutine.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// has reports whether a line logged at level contains msg.
func (b *logBuffer) has(level, msg string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, line := range strings.Split(b.buf.String(), "\n") {
		if strings.Contains(line, " "+level+": ") && strings.Contains(line, msg) {
			return true
		}
	}
	return false
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger() (logging.LoggerFactory, *logBuffer) {
	buf := &logBuffer{}
	factory := logging.NewDefaultLoggerFactory()
	factory.Writer = buf
	factory.DefaultLogLevel = logging.LogLevelTrace
	factory.ScopeLevels = map[string]logging.LogLevel{}
	return factory, buf
}

// inlineQueue runs work immediately on the caller's goroutine.
type inlineQueue struct{}

func (inlineQueue) ScheduleWork(fn func()) error {
	fn()
	return nil
}

type rejectQueue struct{ err error }

func (q rejectQueue) ScheduleWork(func()) error { return q.err }

func validSession() session.Handle {
	return session.Handle{
		Type:           session.SessionTypeCASE,
		LocalSessionID: 7,
		PeerSessionID:  8,
		FabricIndex:    1,
		PeerNodeID:     lightNodeID,
	}
}

func lightDevice() *binding.Device {
	return &binding.Device{NodeID: lightNodeID, Handle: validSession()}
}

func clusterPtr(c datamodel.ClusterID) *datamodel.ClusterID { return &c }

type fixture struct {
	handler *Handler
	invoker *mockInvoker
	table   *binding.Table
	fabrics *fabric.Table
	manager *binding.Manager[*ChangeContext]
	logs    *logBuffer
}

func newFabricTable(t *testing.T) *fabric.Table {
	t.Helper()
	fabrics := fabric.NewTable(fabric.DefaultTableConfig())
	require.NoError(t, fabrics.Add(&fabric.Info{
		FabricIndex: 1,
		FabricID:    0xFAB1,
		NodeID:      localNodeID,
		VendorID:    fabric.VendorIDTestVendor1,
	}))
	return fabrics
}

// newFixture builds an initialized handler over entries with an inline queue.
func newFixture(t *testing.T, entries ...binding.Entry) *fixture {
	t.Helper()

	table := binding.NewTable(binding.TableConfig{})
	for _, e := range entries {
		_, err := table.Add(e)
		require.NoError(t, err)
	}

	sessions := session.NewTable(0)
	require.NoError(t, sessions.Add(validSession()))

	fabrics := newFabricTable(t)
	factory, logs := newTestLogger()
	invoker := &mockInvoker{}
	manager := binding.NewManager[*ChangeContext](binding.ManagerConfig{LoggerFactory: factory})

	h, err := NewHandler(Config{
		Manager:       manager,
		Table:         table,
		Resolver:      binding.SessionResolver{Sessions: sessions},
		Fabrics:       fabrics,
		Invoker:       invoker,
		Queue:         inlineQueue{},
		LoggerFactory: factory,
	})
	require.NoError(t, err)
	require.NoError(t, h.Init())

	return &fixture{
		handler: h,
		invoker: invoker,
		table:   table,
		fabrics: fabrics,
		manager: manager,
		logs:    logs,
	}
}

var errLinkDown = errors.New("link down")
