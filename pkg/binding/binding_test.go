package binding

import (
	"errors"
	"testing"

	"github.com/mike-scofield/sdk-nrf/pkg/datamodel"
	"github.com/mike-scofield/sdk-nrf/pkg/fabric"
	"github.com/mike-scofield/sdk-nrf/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	clusterOnOff        datamodel.ClusterID = 0x0006
	clusterLevelControl datamodel.ClusterID = 0x0008
)

func clusterPtr(c datamodel.ClusterID) *datamodel.ClusterID { return &c }

func TestEntry_Validate(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  error
	}{
		{"unicast", NewUnicast(1, 2, 42, 3, nil), nil},
		{"unicast no fabric", NewUnicast(0, 2, 42, 3, nil), ErrInvalidFabric},
		{"unicast no node", NewUnicast(1, 2, 0, 3, nil), ErrInvalidNode},
		{"multicast", NewMulticast(1, 2, 7, nil), nil},
		{"multicast group zero", NewMulticast(1, 2, 0, nil), ErrInvalidGroup},
		{"unused", Entry{Type: TypeUnused}, nil},
		{"many to one", Entry{Type: TypeManyToOne}, nil},
		{"bad type", Entry{Type: 9}, ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.entry.Validate(), tt.want)
		})
	}
}

func TestEntry_HasCluster(t *testing.T) {
	all := NewUnicast(1, 2, 42, 3, nil)
	assert.True(t, all.HasCluster(clusterOnOff))
	assert.True(t, all.HasCluster(clusterLevelControl))

	onoff := NewUnicast(1, 2, 42, 3, clusterPtr(clusterOnOff))
	assert.True(t, onoff.HasCluster(clusterOnOff))
	assert.False(t, onoff.HasCluster(clusterLevelControl))
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "UNICAST", TypeUnicast.String())
	assert.Equal(t, "GROUP", TypeMulticast.String())
	assert.Equal(t, "UNUSED", TypeUnused.String())
	assert.Equal(t, "MANY TO ONE", TypeManyToOne.String())
	assert.Equal(t, "Type(9)", Type(9).String())
}

func TestTable(t *testing.T) {
	table := NewTable(TableConfig{Capacity: 2})
	assert.Equal(t, 2, table.Capacity())

	idx, err := table.Add(NewUnicast(1, 2, 42, 3, clusterPtr(clusterOnOff)))
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	_, err = table.Add(NewMulticast(1, 2, 0, nil))
	assert.ErrorIs(t, err, ErrInvalidGroup)

	idx, err = table.Add(NewMulticast(2, 2, 7, nil))
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = table.Add(NewMulticast(1, 2, 8, nil))
	assert.ErrorIs(t, err, ErrTableFull)
	assert.Equal(t, 2, table.Size())

	// Returned entries are copies.
	e, ok := table.Get(0)
	require.True(t, ok)
	*e.ClusterID = clusterLevelControl
	again, _ := table.Get(0)
	assert.Equal(t, clusterOnOff, *again.ClusterID)

	_, ok = table.Get(5)
	assert.False(t, ok)

	var seen []Type
	table.ForEach(func(_ int, e Entry) bool {
		seen = append(seen, e.Type)
		return true
	})
	assert.Equal(t, []Type{TypeUnicast, TypeMulticast}, seen)

	assert.Equal(t, 1, table.RemoveFabric(2))
	assert.ErrorIs(t, table.Remove(3), ErrIndexOutOfRange)
	require.NoError(t, table.Remove(0))
	assert.Equal(t, 0, table.Size())
	assert.Equal(t, DefaultTableCapacity, NewTable(TableConfig{}).Capacity())
}

type delivery struct {
	entry  Entry
	device DeviceProxy
	ctx    string
}

type staticResolver map[fabric.NodeID]DeviceProxy

func (r staticResolver) ResolveDevice(_ fabric.FabricIndex, nodeID fabric.NodeID) (DeviceProxy, error) {
	d, ok := r[nodeID]
	if !ok {
		return nil, errors.New("unreachable")
	}
	return d, nil
}

func newTestManager(t *testing.T, entries ...Entry) (*Manager[string], *[]delivery) {
	t.Helper()
	table := NewTable(TableConfig{})
	for _, e := range entries {
		_, err := table.Add(e)
		require.NoError(t, err)
	}

	resolver := staticResolver{
		42: &Device{NodeID: 42, Handle: session.Handle{Type: session.SessionTypeCASE, LocalSessionID: 1}},
	}

	m := NewManager[string](ManagerConfig{})
	require.NoError(t, m.Init(InitParams{Table: table, Resolver: resolver}))

	var got []delivery
	m.RegisterBoundDeviceChangedHandler(func(e Entry, d DeviceProxy, ctx string) {
		got = append(got, delivery{entry: e, device: d, ctx: ctx})
	})
	return m, &got
}

func TestManager_NotifyBoundClusterChanged(t *testing.T) {
	m, got := newTestManager(t,
		NewUnicast(1, 1, 42, 3, clusterPtr(clusterOnOff)),
		NewUnicast(1, 1, 42, 4, clusterPtr(clusterLevelControl)),
		NewMulticast(1, 1, 7, nil),
		NewUnicast(1, 2, 42, 5, nil),
		NewUnicast(1, 1, 99, 6, nil),
		Entry{Type: TypeManyToOne, Local: 1},
	)

	require.NoError(t, m.NotifyBoundClusterChanged(1, clusterOnOff, "ctx"))

	require.Len(t, *got, 2)
	first := (*got)[0]
	assert.Equal(t, TypeUnicast, first.entry.Type)
	assert.Equal(t, datamodel.EndpointID(3), first.entry.Remote)
	require.NotNil(t, first.device)
	assert.Equal(t, fabric.NodeID(42), first.device.PeerNodeID())
	assert.Equal(t, "ctx", first.ctx)

	second := (*got)[1]
	assert.Equal(t, TypeMulticast, second.entry.Type)
	assert.Nil(t, second.device)
}

type groupChange bool

func (g groupChange) GroupOnly() bool { return bool(g) }

type countingResolver struct {
	calls int
}

func (r *countingResolver) ResolveDevice(fabric.FabricIndex, fabric.NodeID) (DeviceProxy, error) {
	r.calls++
	return nil, errors.New("unreachable")
}

func TestManager_GroupOnlySkipsUnicast(t *testing.T) {
	table := NewTable(TableConfig{})
	for _, e := range []Entry{
		NewUnicast(1, 1, 99, 3, nil),
		NewMulticast(1, 1, 7, nil),
	} {
		_, err := table.Add(e)
		require.NoError(t, err)
	}

	resolver := &countingResolver{}
	m := NewManager[groupChange](ManagerConfig{})
	require.NoError(t, m.Init(InitParams{Table: table, Resolver: resolver}))

	var types []Type
	m.RegisterBoundDeviceChangedHandler(func(e Entry, _ DeviceProxy, _ groupChange) {
		types = append(types, e.Type)
	})

	require.NoError(t, m.NotifyBoundClusterChanged(1, clusterOnOff, groupChange(true)))
	assert.Equal(t, []Type{TypeMulticast}, types)
	assert.Zero(t, resolver.calls, "group-only changes never resolve unicast peers")

	types = nil
	require.NoError(t, m.NotifyBoundClusterChanged(1, clusterOnOff, groupChange(false)))
	assert.Equal(t, []Type{TypeMulticast}, types)
	assert.Equal(t, 1, resolver.calls)
}

func TestManager_Errors(t *testing.T) {
	m := NewManager[int](ManagerConfig{})
	assert.ErrorIs(t, m.NotifyBoundClusterChanged(1, clusterOnOff, 0), ErrNotInitialized)

	assert.ErrorIs(t, m.Init(InitParams{}), ErrMissingDependency)
	assert.ErrorIs(t, m.Init(InitParams{Table: NewTable(TableConfig{})}), ErrMissingDependency)

	params := InitParams{Table: NewTable(TableConfig{}), Resolver: staticResolver{}}
	require.NoError(t, m.Init(params))
	assert.ErrorIs(t, m.Init(params), ErrAlreadyInitialized)
	assert.ErrorIs(t, m.NotifyBoundClusterChanged(1, clusterOnOff, 0), ErrNoHandler)
}

func TestManager_SkipsRemovedFabric(t *testing.T) {
	table := NewTable(TableConfig{})
	_, err := table.Add(NewMulticast(1, 1, 7, nil))
	require.NoError(t, err)
	_, err = table.Add(NewMulticast(2, 1, 8, nil))
	require.NoError(t, err)

	fabrics := fabric.NewTable(fabric.DefaultTableConfig())
	require.NoError(t, fabrics.Add(&fabric.Info{FabricIndex: 2, FabricID: 1, NodeID: 0x10, VendorID: fabric.VendorIDTestVendor1}))

	m := NewManager[struct{}](ManagerConfig{})
	require.NoError(t, m.Init(InitParams{Table: table, Resolver: staticResolver{}, Fabrics: fabrics}))

	var groups []datamodel.GroupID
	m.RegisterBoundDeviceChangedHandler(func(e Entry, _ DeviceProxy, _ struct{}) {
		groups = append(groups, e.GroupID)
	})
	require.NoError(t, m.NotifyBoundClusterChanged(1, clusterOnOff, struct{}{}))
	assert.Equal(t, []datamodel.GroupID{8}, groups)
}

func TestSessionResolver(t *testing.T) {
	sessions := session.NewTable(0)
	require.NoError(t, sessions.Add(session.Handle{
		Type:           session.SessionTypeCASE,
		LocalSessionID: 3,
		FabricIndex:    1,
		PeerNodeID:     42,
	}))

	r := SessionResolver{Sessions: sessions}
	d, err := r.ResolveDevice(1, 42)
	require.NoError(t, err)
	assert.Equal(t, fabric.NodeID(42), d.PeerNodeID())
	assert.Equal(t, uint16(3), d.Session().LocalSessionID)

	_, err = r.ResolveDevice(1, 43)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestDevice_Nil(t *testing.T) {
	var d *Device
	var proxy DeviceProxy = d

	assert.Equal(t, fabric.NodeID(0), proxy.PeerNodeID())
	assert.False(t, proxy.Session().IsValid())
}
