package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fibernet/pkg/domain"
)

func TestOverviewCountsAndMarkers(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	c := mustAddClient(t, svc, "Academia")
	box := mustAddBox(t, svc, "CX-100")
	cable, _, err := svc.AddCableToBox(ctx, box.ID, Cable{Side: domain.SideOutput, FiberCount: 12})
	require.NoError(t, err)
	_, _, err = svc.UpdateFiberInBox(ctx, box.ID, cable.ID, cable.Fibers[0].ID, FiberPatch{ClientID: domain.Ref(c.ID)})
	require.NoError(t, err)
	sw := mustAddSwitch(t, svc, "SW-A", 16)
	_, _, err = svc.UpdatePort(ctx, sw.ID, sw.Ports[0].ID, PortPatch{ClientID: domain.Ref(c.ID)})
	require.NoError(t, err)
	_, _, err = svc.OpenTicket(ctx, Ticket{ClientID: c.ID, Title: "Lentidao"})
	require.NoError(t, err)

	o, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{
		Clients:        1,
		Boxes:          1,
		Cables:         1,
		Fibers:         12,
		AssignedFibers: 1,
		Switches:       1,
		Ports:          16,
		AssignedPorts:  1,
		OpenTickets:    1,
	}, o.Counts)
	require.Len(t, o.Markers, 3)
	assert.Equal(t, domain.EntitySwitch, o.Markers[0].Kind)
	assert.Equal(t, "CX-100", o.Markers[1].Label)
	assert.Equal(t, c.ID, o.Markers[2].ID)
}

func TestSnapshotCapturesEveryBucket(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	c := mustAddClient(t, svc, "Bar")
	mustAddBox(t, svc, "CX-1")
	mustAddSwitch(t, svc, "SW-1", 8)
	_, _, err := svc.AddTechnician(ctx, Technician{Name: "Ana"})
	require.NoError(t, err)
	_, _, err = svc.OpenTicket(ctx, Ticket{ClientID: c.ID})
	require.NoError(t, err)
	_, _, err = svc.AddCircuit(ctx, Circuit{ClientID: c.ID})
	require.NoError(t, err)

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Clients, 1)
	assert.Len(t, snap.Boxes, 1)
	assert.Len(t, snap.Switches, 1)
	assert.Len(t, snap.Technicians, 1)
	assert.Len(t, snap.Tickets, 1)
	assert.Len(t, snap.Circuits, 1)
}
