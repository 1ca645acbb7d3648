package core

import (
	"context"

	"go.uber.org/zap"
)

// ListTechnicians returns every technician.
func (s *Service) ListTechnicians(ctx context.Context) ([]Technician, error) {
	var out []Technician
	err := s.read(ctx, "list_technicians", s.latency.Read, func(v TransactionView) error {
		out = v.ListTechnicians()
		return nil
	})
	return out, err
}

// GetTechnician looks a technician up by id.
func (s *Service) GetTechnician(ctx context.Context, id string) (Technician, bool, error) {
	var (
		out Technician
		ok  bool
	)
	err := s.read(ctx, "get_technician", s.latency.Read, func(v TransactionView) error {
		out, ok = v.FindTechnician(id)
		return nil
	})
	return out, ok, err
}

// AddTechnician persists a new technician.
func (s *Service) AddTechnician(ctx context.Context, t Technician) (Technician, Result, error) {
	var created Technician
	res, err := s.write(ctx, "add_technician", s.latency.Write, func(tx Transaction) error {
		var err error
		created, err = tx.CreateTechnician(t)
		return err
	})
	return created, res, err
}

// UpdateTechnician merges patch into the technician.
func (s *Service) UpdateTechnician(ctx context.Context, id string, patch TechnicianPatch) (Technician, Result, error) {
	var updated Technician
	res, err := s.write(ctx, "update_technician", s.latency.Write, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateTechnician(id, func(t *Technician) error {
			patch.Apply(t)
			return nil
		})
		return err
	}, zap.String("technician_id", id))
	return updated, res, err
}

// DeleteTechnician removes a technician. The technician_assignment rule
// blocks the delete while an unclosed ticket references them.
func (s *Service) DeleteTechnician(ctx context.Context, id string) (Result, error) {
	return s.write(ctx, "delete_technician", s.latency.Write, func(tx Transaction) error {
		return tx.DeleteTechnician(id)
	}, zap.String("technician_id", id))
}

// ListTickets returns every ticket.
func (s *Service) ListTickets(ctx context.Context) ([]Ticket, error) {
	var out []Ticket
	err := s.read(ctx, "list_tickets", s.latency.Read, func(v TransactionView) error {
		out = v.ListTickets()
		return nil
	})
	return out, err
}

// ListTicketsByClient returns the tickets opened for a client.
func (s *Service) ListTicketsByClient(ctx context.Context, clientID string) ([]Ticket, error) {
	out := []Ticket{}
	err := s.read(ctx, "list_tickets_by_client", s.latency.Lookup, func(v TransactionView) error {
		for _, t := range v.ListTickets() {
			if t.ClientID == clientID {
				out = append(out, t)
			}
		}
		return nil
	})
	return out, err
}

// GetTicket looks a ticket up by id.
func (s *Service) GetTicket(ctx context.Context, id string) (Ticket, bool, error) {
	var (
		out Ticket
		ok  bool
	)
	err := s.read(ctx, "get_ticket", s.latency.Read, func(v TransactionView) error {
		out, ok = v.FindTicket(id)
		return nil
	})
	return out, ok, err
}

// OpenTicket persists a new ticket. Status defaults to aberto and priority to
// normal.
func (s *Service) OpenTicket(ctx context.Context, t Ticket) (Ticket, Result, error) {
	var created Ticket
	res, err := s.write(ctx, "open_ticket", s.latency.Write, func(tx Transaction) error {
		var err error
		created, err = tx.CreateTicket(t)
		return err
	}, zap.String("client_id", t.ClientID))
	return created, res, err
}

// UpdateTicket merges patch into the ticket; status changes stamp the
// execution and closing times.
func (s *Service) UpdateTicket(ctx context.Context, id string, patch TicketPatch) (Ticket, Result, error) {
	var updated Ticket
	res, err := s.write(ctx, "update_ticket", s.latency.Write, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateTicket(id, func(t *Ticket) error {
			patch.Apply(t)
			return nil
		})
		return err
	}, zap.String("ticket_id", id))
	return updated, res, err
}

// DeleteTicket removes a ticket.
func (s *Service) DeleteTicket(ctx context.Context, id string) (Result, error) {
	return s.write(ctx, "delete_ticket", s.latency.Write, func(tx Transaction) error {
		return tx.DeleteTicket(id)
	}, zap.String("ticket_id", id))
}
