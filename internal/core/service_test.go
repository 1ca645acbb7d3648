package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fibernet/pkg/domain"
)

func TestFiberAssignmentLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	box := mustAddBox(t, svc, "CX-001")
	assert.Empty(t, box.InputCables)
	assert.Empty(t, box.OutputCables)

	cable, _, err := svc.AddCableToBox(ctx, box.ID, Cable{Side: domain.SideInput, FiberCount: 24, Identification: "CB-IN-01"})
	require.NoError(t, err)
	require.Len(t, cable.Fibers, 24)
	assert.Equal(t, 2, cable.Fibers[23].GroupNumber)
	assert.Equal(t, 1, cable.OrderOnSide)

	c1 := mustAddClient(t, svc, "Padaria Central")
	fifth := cable.Fibers[4]
	updated, _, err := svc.UpdateFiberInBox(ctx, box.ID, cable.ID, fifth.ID, FiberPatch{ClientID: domain.Ref(c1.ID)})
	require.NoError(t, err)
	require.NotNil(t, updated.ClientID)
	assert.Equal(t, c1.ID, *updated.ClientID)
	assert.Equal(t, "Cinza", updated.Color)

	found, err := svc.FindFibersByClient(ctx, c1.ID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, fifth.ID, found[0].ID)
	assert.Equal(t, domain.BoxRef{ID: box.ID, Code: "CX-001"}, found[0].Box)
	assert.Equal(t, domain.CableRef{ID: cable.ID, Identification: "CB-IN-01", Side: domain.SideInput}, found[0].Cable)

	_, err = svc.DeleteClient(ctx, c1.ID)
	require.NoError(t, err)

	_, ok, err := svc.GetClient(ctx, c1.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, ok, err := svc.GetBox(ctx, box.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, got.InputCables[0].Fibers[4].ClientID)

	found, err = svc.FindFibersByClient(ctx, c1.ID)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindByClientAnnotatesOwners(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	x := mustAddClient(t, svc, "X")
	y := mustAddClient(t, svc, "Y")

	b1 := mustAddBox(t, svc, "CX-A")
	b2 := mustAddBox(t, svc, "CX-B")
	in, _, err := svc.AddCableToBox(ctx, b1.ID, Cable{Side: domain.SideInput, FiberCount: 12, Identification: "A-IN"})
	require.NoError(t, err)
	out, _, err := svc.AddCableToBox(ctx, b2.ID, Cable{Side: domain.SideOutput, FiberCount: 36, Identification: "B-OUT"})
	require.NoError(t, err)

	assign := func(boxID string, cable Cable, idx int, client string) {
		_, _, err := svc.UpdateFiberInBox(ctx, boxID, cable.ID, cable.Fibers[idx].ID, FiberPatch{ClientID: domain.Ref(client)})
		require.NoError(t, err)
	}
	assign(b1.ID, in, 0, x.ID)
	assign(b2.ID, out, 30, x.ID)
	assign(b2.ID, out, 31, y.ID)

	fibers, err := svc.FindFibersByClient(ctx, x.ID)
	require.NoError(t, err)
	require.Len(t, fibers, 2)
	assert.Equal(t, "CX-A", fibers[0].Box.Code)
	assert.Equal(t, domain.SideInput, fibers[0].Cable.Side)
	assert.Equal(t, "CX-B", fibers[1].Box.Code)
	assert.Equal(t, "B-OUT", fibers[1].Cable.Identification)
	assert.Equal(t, domain.SideOutput, fibers[1].Cable.Side)
	assert.Equal(t, 3, fibers[1].GroupNumber)
	assert.Equal(t, 7, fibers[1].PositionInSet)

	sw := mustAddSwitch(t, svc, "SW-CORE", 8)
	_, _, err = svc.UpdatePort(ctx, sw.ID, sw.Ports[2].ID, PortPatch{ClientID: domain.Ref(y.ID), VLAN: ptr("100"), ClientIP: ptr("10.1.0.3")})
	require.NoError(t, err)
	ports, err := svc.FindPortsByClient(ctx, y.ID)
	require.NoError(t, err)
	require.Len(t, ports, 1)
	assert.Equal(t, 3, ports[0].Number)
	assert.Equal(t, "100", ports[0].VLAN)
	assert.Equal(t, domain.SwitchRef{ID: sw.ID, Name: "SW-CORE"}, ports[0].Switch)

	none, err := svc.FindPortsByClient(ctx, x.ID)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestDeleteClientClearsPorts(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	c := mustAddClient(t, svc, "Mercado")
	sw := mustAddSwitch(t, svc, "SW-1", 12)
	for _, i := range []int{0, 5, 11} {
		_, _, err := svc.UpdatePort(ctx, sw.ID, sw.Ports[i].ID, PortPatch{ClientID: domain.Ref(c.ID)})
		require.NoError(t, err)
	}
	_, err := svc.DeleteClient(ctx, c.ID)
	require.NoError(t, err)

	got, _, err := svc.GetSwitch(ctx, sw.ID)
	require.NoError(t, err)
	for _, p := range got.Ports {
		assert.Nil(t, p.ClientID, "port %d", p.Number)
	}
}

func TestUpdateSwitchKeepsPortCount(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	sw := mustAddSwitch(t, svc, "SW-EDGE", 24)
	updated, _, err := svc.UpdateSwitch(ctx, sw.ID, SwitchPatch{Name: ptr("SW-EDGE-2"), TotalPorts: ptr(48)})
	require.NoError(t, err)
	assert.Equal(t, "SW-EDGE-2", updated.Name)
	assert.Equal(t, 24, updated.TotalPorts)
	assert.Len(t, updated.Ports, 24)
}

func TestWritesToMissingRecordsFail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	box := mustAddBox(t, svc, "CX-1")
	cable, _, err := svc.AddCableToBox(ctx, box.ID, Cable{Side: domain.SideOutput, FiberCount: 12})
	require.NoError(t, err)

	_, _, err = svc.UpdateClient(ctx, "ghost", ClientPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	_, _, err = svc.UpdateFiberInBox(ctx, "ghost", cable.ID, cable.Fibers[0].ID, FiberPatch{Notes: ptr("n")})
	entity, _ := domain.EntityOf(err)
	assert.Equal(t, domain.EntityBox, entity)

	_, _, err = svc.UpdateFiberInBox(ctx, box.ID, "other-cable", cable.Fibers[0].ID, FiberPatch{Notes: ptr("n")})
	entity, _ = domain.EntityOf(err)
	assert.Equal(t, domain.EntityFiber, entity)

	_, _, err = svc.UpdateFiberInBox(ctx, box.ID, cable.ID, cable.Fibers[0].ID, FiberPatch{ClientID: domain.Ref("ghost")})
	entity, _ = domain.EntityOf(err)
	assert.Equal(t, domain.EntityClient, entity)

	got, _, err := svc.GetBox(ctx, box.ID)
	require.NoError(t, err)
	assert.Nil(t, got.OutputCables[0].Fibers[0].ClientID, "failed write must leave state unchanged")

	_, _, err = svc.AddCableToBox(ctx, box.ID, Cable{Side: domain.SideOutput, FiberCount: 13})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestReadsOfMissingRecordsAreNotErrors(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, ok, err := svc.GetBox(ctx, "nope")
	assert.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = svc.GetSwitch(ctx, "nope")
	assert.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = svc.GetCircuitByClient(ctx, "nope")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestLatencyHonorsContext(t *testing.T) {
	svc := newTestService(t, WithLatency(Latency{Read: time.Hour, ClientRead: time.Hour, Write: time.Hour}))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := svc.ListClients(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	_, _, err = svc.AddClient(ctx, Client{Name: "late"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	cancelled, stop := context.WithCancel(context.Background())
	stop()
	_, _, err = svc.GetBox(cancelled, "any")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLatencyDelaysOperations(t *testing.T) {
	svc := newTestService(t, WithLatency(Latency{ClientRead: 30 * time.Millisecond}))
	start := time.Now()
	_, err := svc.ListClients(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestMetricsObserveOperations(t *testing.T) {
	ctx := context.Background()
	rec := &recordingMetrics{}
	svc := newTestService(t, WithMetrics(rec))
	mustAddClient(t, svc, "A")
	assert.Equal(t, recordedOp{op: "add_client", success: true}, rec.last())

	_, err := svc.DeleteClient(ctx, "ghost")
	require.Error(t, err)
	assert.Equal(t, recordedOp{op: "delete_client", success: false}, rec.last())
}

func ptr[T any](v T) *T { return &v }
