package core

import (
	"context"

	"fibernet/internal/infra/persistence/memory"
)

// Snapshot captures the committed inventory in its bucket form. It does not
// wait any simulated latency.
func (s *Service) Snapshot(ctx context.Context) (memory.Snapshot, error) {
	var snap memory.Snapshot
	err := s.store.View(ctx, func(v TransactionView) error {
		snap = memory.Snapshot{
			Clients:     v.ListClients(),
			Boxes:       v.ListBoxes(),
			Switches:    v.ListSwitches(),
			Circuits:    v.ListCircuits(),
			Technicians: v.ListTechnicians(),
			Tickets:     v.ListTickets(),
		}
		return nil
	})
	return snap, err
}
