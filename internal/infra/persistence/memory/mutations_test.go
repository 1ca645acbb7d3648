package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"fibernet/pkg/domain"
)

func TestAddCableAssignsSideAndOrder(t *testing.T) {
	store := newTestStore()
	var box Box
	mustRun(t, store, func(tx Transaction) error {
		var err error
		box, err = tx.CreateBox(Box{Code: "CX-001"})
		return err
	})
	if box.InputCables == nil || box.OutputCables == nil {
		t.Fatalf("expected empty cable lists, got %+v", box)
	}
	mustRun(t, store, func(tx Transaction) error {
		for i := 0; i < 2; i++ {
			if _, err := tx.AddCable(box.ID, Cable{Side: domain.SideOutput, FiberCount: 12}); err != nil {
				return err
			}
		}
		c, err := tx.AddCable(box.ID, Cable{Side: domain.SideInput, FiberCount: 24, OrderOnSide: 7})
		if err != nil {
			return err
		}
		if c.OrderOnSide != 7 || c.BoxID != box.ID || len(c.Fibers) != 24 {
			t.Fatalf("unexpected input cable %+v", c)
		}
		return nil
	})
	_ = store.View(context.Background(), func(v TransactionView) error {
		b, _ := v.FindBox(box.ID)
		if len(b.InputCables) != 1 || len(b.OutputCables) != 2 {
			t.Fatalf("unexpected cable distribution: in=%d out=%d", len(b.InputCables), len(b.OutputCables))
		}
		if b.OutputCables[0].OrderOnSide != 1 || b.OutputCables[1].OrderOnSide != 2 {
			t.Fatalf("expected default ordering on side")
		}
		return nil
	})
}

func TestAddCableValidation(t *testing.T) {
	store := newTestStore()
	var boxID string
	mustRun(t, store, func(tx Transaction) error {
		b, err := tx.CreateBox(Box{Code: "CX"})
		boxID = b.ID
		return err
	})
	for _, cable := range []Cable{
		{Side: domain.SideInput, FiberCount: 13},
		{Side: "meio", FiberCount: 12},
	} {
		_, err := store.RunInTransaction(context.Background(), func(tx Transaction) error {
			_, err := tx.AddCable(boxID, cable)
			return err
		})
		if !errors.Is(err, domain.ErrInvalid) {
			t.Fatalf("expected validation error for %+v, got %v", cable, err)
		}
	}
}

func TestUpdateFiberKeepsLayout(t *testing.T) {
	store := newTestStore()
	var box Box
	mustRun(t, store, func(tx Transaction) error {
		var err error
		box, err = tx.CreateBox(Box{Code: "CX", InputCables: []Cable{{FiberCount: 12}}})
		return err
	})
	cable := box.InputCables[0]
	target := cable.Fibers[3]
	mustRun(t, store, func(tx Transaction) error {
		f, err := tx.UpdateFiber(box.ID, cable.ID, target.ID, func(f *Fiber) error {
			f.ClientID = domain.Ref("c1")
			f.Color = "Dourado"
			f.GroupNumber = 9
			return nil
		})
		if err != nil {
			return err
		}
		if f.Color != target.Color || f.GroupNumber != 1 || domain.Deref(f.ClientID) != "c1" {
			t.Fatalf("unexpected fiber %+v", f)
		}
		return nil
	})
}

func TestUpdateFiberWithForeignCableIsNotFound(t *testing.T) {
	store := newTestStore()
	var a, b Box
	mustRun(t, store, func(tx Transaction) error {
		var err error
		if a, err = tx.CreateBox(Box{Code: "A", InputCables: []Cable{{FiberCount: 12}}}); err != nil {
			return err
		}
		b, err = tx.CreateBox(Box{Code: "B", InputCables: []Cable{{FiberCount: 12}}})
		return err
	})
	fiber := b.InputCables[0].Fibers[0]
	_, err := store.RunInTransaction(context.Background(), func(tx Transaction) error {
		_, err := tx.UpdateFiber(a.ID, b.InputCables[0].ID, fiber.ID, func(f *Fiber) error {
			f.ClientID = domain.Ref("c1")
			return nil
		})
		return err
	})
	entity, ok := domain.EntityOf(err)
	if !ok || entity != domain.EntityFiber {
		t.Fatalf("expected fiber not found, got %v", err)
	}
}

func TestDeleteClientClearsReferences(t *testing.T) {
	store := newTestStore()
	var box Box
	var sw Switch
	mustRun(t, store, func(tx Transaction) error {
		for _, id := range []string{"c1", "c2"} {
			if _, err := tx.CreateClient(Client{ID: id}); err != nil {
				return err
			}
		}
		var err error
		if box, err = tx.CreateBox(Box{Code: "CX", OutputCables: []Cable{{FiberCount: 24}}}); err != nil {
			return err
		}
		sw, err = tx.CreateSwitch(Switch{Name: "SW", TotalPorts: 8})
		return err
	})
	cable := box.OutputCables[0]
	mustRun(t, store, func(tx Transaction) error {
		for i, client := range []string{"c1", "c1", "c2"} {
			if _, err := tx.UpdateFiber(box.ID, cable.ID, cable.Fibers[i*10].ID, func(f *Fiber) error {
				f.ClientID = domain.Ref(client)
				return nil
			}); err != nil {
				return err
			}
		}
		_, err := tx.UpdatePort(sw.ID, sw.Ports[2].ID, func(p *Port) error {
			p.ClientID = domain.Ref("c1")
			return nil
		})
		return err
	})
	mustRun(t, store, func(tx Transaction) error { return tx.DeleteClient("c1") })

	_ = store.View(context.Background(), func(v TransactionView) error {
		if _, ok := v.FindClient("c1"); ok {
			t.Fatalf("client not removed")
		}
		assigned := 0
		for _, b := range v.ListBoxes() {
			for _, c := range b.Cables() {
				for _, f := range c.Fibers {
					if domain.Deref(f.ClientID) == "c1" {
						t.Fatalf("fiber %s still references deleted client", f.ID)
					}
					if f.ClientID != nil {
						assigned++
					}
				}
			}
		}
		if assigned != 1 {
			t.Fatalf("expected other client's fiber kept, got %d assigned", assigned)
		}
		for _, s := range v.ListSwitches() {
			for _, p := range s.Ports {
				if p.ClientID != nil {
					t.Fatalf("port %d still assigned", p.Number)
				}
			}
		}
		return nil
	})
}

func TestUpdateSwitchKeepsPorts(t *testing.T) {
	store := newTestStore()
	var sw Switch
	mustRun(t, store, func(tx Transaction) error {
		var err error
		sw, err = tx.CreateSwitch(Switch{Name: "SW-01", TotalPorts: 24})
		return err
	})
	mustRun(t, store, func(tx Transaction) error {
		updated, err := tx.UpdateSwitch(sw.ID, func(s *Switch) error {
			s.TotalPorts = 48
			s.Ports = nil
			s.Model = "Juniper EX2300"
			return nil
		})
		if err != nil {
			return err
		}
		if updated.TotalPorts != 24 || len(updated.Ports) != 24 || updated.Model != "Juniper EX2300" {
			t.Fatalf("unexpected switch %+v", updated)
		}
		return nil
	})
	_, err := store.RunInTransaction(context.Background(), func(tx Transaction) error {
		_, err := tx.CreateSwitch(Switch{Name: "bad", TotalPorts: 10})
		return err
	})
	if !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected invalid port count, got %v", err)
	}
}

func TestUpdatePortRefreshesSwitch(t *testing.T) {
	now := fixedClock()()
	tick := now
	store := NewStore(nil, WithClock(func() time.Time { return tick }))
	var sw Switch
	mustRun(t, store, func(tx Transaction) error {
		var err error
		sw, err = tx.CreateSwitch(Switch{Name: "SW", TotalPorts: 8})
		return err
	})
	tick = now.Add(time.Hour)
	mustRun(t, store, func(tx Transaction) error {
		p, err := tx.UpdatePort(sw.ID, sw.Ports[0].ID, func(p *Port) error {
			p.VLAN = "150"
			p.Number = 99
			return nil
		})
		if err != nil {
			return err
		}
		if p.Number != 1 || p.VLAN != "150" {
			t.Fatalf("unexpected port %+v", p)
		}
		return nil
	})
	_ = store.View(context.Background(), func(v TransactionView) error {
		s, _ := v.FindSwitch(sw.ID)
		if !s.UpdatedAt.Equal(tick) || !s.CreatedAt.Equal(now) {
			t.Fatalf("unexpected timestamps %v %v", s.CreatedAt, s.UpdatedAt)
		}
		return nil
	})
}

func TestCircuitElements(t *testing.T) {
	store := newTestStore()
	mustRun(t, store, func(tx Transaction) error {
		if _, err := tx.CreateClient(Client{ID: "c1"}); err != nil {
			return err
		}
		c, err := tx.CreateCircuit(Circuit{ClientID: "c1", Elements: []CircuitElement{
			{Type: domain.ElementSwitch, ElementID: "sw"},
			{Type: domain.ElementClient, ElementID: "c1", Order: 5},
		}})
		if err != nil {
			return err
		}
		if c.Elements[0].ID == "" || c.Elements[0].Order != 1 || c.Elements[1].Order != 5 {
			t.Fatalf("unexpected elements %+v", c.Elements)
		}
		_, err = tx.UpdateCircuit(c.ID, func(c *Circuit) error {
			c.Elements = append(c.Elements, CircuitElement{Type: "rack"})
			return nil
		})
		if !errors.Is(err, domain.ErrInvalid) {
			t.Fatalf("expected invalid element type, got %v", err)
		}
		return nil
	})
}

func TestTicketStatusStamps(t *testing.T) {
	base := fixedClock()()
	tick := base
	store := NewStore(nil, WithClock(func() time.Time { return tick }))
	var ticket Ticket
	mustRun(t, store, func(tx Transaction) error {
		if _, err := tx.CreateClient(Client{ID: "c1"}); err != nil {
			return err
		}
		if _, err := tx.CreateTechnician(Technician{ID: "t1", Name: "Joao"}); err != nil {
			return err
		}
		var err error
		ticket, err = tx.CreateTicket(Ticket{ClientID: "c1", TechnicianID: "t1", Title: "Sem sinal"})
		return err
	})
	if ticket.Status != domain.TicketOpen || ticket.Priority != domain.PriorityNormal || !ticket.OpenedAt.Equal(base) {
		t.Fatalf("unexpected defaults %+v", ticket)
	}
	setStatus := func(status domain.TicketStatus) Ticket {
		var out Ticket
		mustRun(t, store, func(tx Transaction) error {
			var err error
			out, err = tx.UpdateTicket(ticket.ID, func(tk *Ticket) error {
				tk.Status = status
				return nil
			})
			return err
		})
		return out
	}
	tick = base.Add(time.Hour)
	running := setStatus(domain.TicketInProgress)
	if running.StartedAt == nil || !running.StartedAt.Equal(tick) {
		t.Fatalf("expected execution start stamp, got %+v", running)
	}
	tick = base.Add(2 * time.Hour)
	closed := setStatus(domain.TicketClosed)
	if closed.ClosedAt == nil || !closed.ClosedAt.Equal(tick) || !closed.StartedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("unexpected closed stamps %+v", closed)
	}
	tick = base.Add(3 * time.Hour)
	reopened := setStatus(domain.TicketInProgress)
	if reopened.ClosedAt != nil || !reopened.StartedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("reopen must clear close stamp and keep start, got %+v", reopened)
	}

	_, err := store.RunInTransaction(context.Background(), func(tx Transaction) error {
		_, err := tx.UpdateTicket(ticket.ID, func(tk *Ticket) error {
			tk.Priority = "urgente"
			return nil
		})
		return err
	})
	if !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected invalid priority, got %v", err)
	}
	_, err = store.RunInTransaction(context.Background(), func(tx Transaction) error {
		_, err := tx.CreateTicket(Ticket{ClientID: "c1", TechnicianID: "ghost"})
		return err
	})
	if entity, _ := domain.EntityOf(err); entity != domain.EntityTechnician {
		t.Fatalf("expected technician not found, got %v", err)
	}
}

func TestMigrateSnapshotNormalizes(t *testing.T) {
	snapshot := Snapshot{
		Clients: []Client{{ID: "c1"}},
		Boxes: []Box{{
			ID: "b1",
			InputCables: []Cable{{ID: "cb1", Fibers: []Fiber{
				{ID: "f1", ClientID: domain.Ref("c1")},
				{ID: "f2", ClientID: domain.Ref("gone")},
			}}},
		}},
		Switches: []Switch{{ID: "s1", Ports: []Port{{ID: "p1", ClientID: domain.Ref("gone")}}}},
		Tickets:  []Ticket{{ID: "t1"}},
	}
	migrated := migrateSnapshot(snapshot)
	fibers := migrated.Boxes[0].InputCables[0].Fibers
	if domain.Deref(fibers[0].ClientID) != "c1" || fibers[1].ClientID != nil {
		t.Fatalf("unexpected fiber references %+v", fibers)
	}
	if fibers[0].CableID != "cb1" || migrated.Boxes[0].InputCables[0].BoxID != "b1" || migrated.Boxes[0].InputCables[0].Side != domain.SideInput {
		t.Fatalf("expected owner ids to be filled")
	}
	if migrated.Switches[0].Ports[0].ClientID != nil || migrated.Switches[0].Ports[0].SwitchID != "s1" {
		t.Fatalf("unexpected port %+v", migrated.Switches[0].Ports[0])
	}
	if migrated.Circuits == nil || migrated.Technicians == nil || migrated.Boxes[0].OutputCables == nil {
		t.Fatalf("expected nil collections normalized")
	}
	if migrated.Tickets[0].Status != domain.TicketOpen || migrated.Tickets[0].Priority != domain.PriorityNormal {
		t.Fatalf("expected ticket defaults")
	}
	if domain.Deref(snapshot.Boxes[0].InputCables[0].Fibers[1].ClientID) != "gone" {
		t.Fatalf("migration must not modify its input")
	}
}
