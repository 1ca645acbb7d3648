package core

import (
	"context"

	"go.uber.org/zap"
)

// ListClients returns every client in insertion order.
func (s *Service) ListClients(ctx context.Context) ([]Client, error) {
	var out []Client
	err := s.read(ctx, "list_clients", s.latency.ClientRead, func(v TransactionView) error {
		out = v.ListClients()
		return nil
	})
	return out, err
}

// GetClient looks a client up by id. A missing client is reported through
// the boolean, not as an error.
func (s *Service) GetClient(ctx context.Context, id string) (Client, bool, error) {
	var (
		out Client
		ok  bool
	)
	err := s.read(ctx, "get_client", s.latency.ClientRead, func(v TransactionView) error {
		out, ok = v.FindClient(id)
		return nil
	})
	return out, ok, err
}

// AddClient persists a new client.
func (s *Service) AddClient(ctx context.Context, client Client) (Client, Result, error) {
	var created Client
	res, err := s.write(ctx, "add_client", s.latency.Write, func(tx Transaction) error {
		var err error
		created, err = tx.CreateClient(client)
		return err
	})
	return created, res, err
}

// UpdateClient merges patch into the client.
func (s *Service) UpdateClient(ctx context.Context, id string, patch ClientPatch) (Client, Result, error) {
	var updated Client
	res, err := s.write(ctx, "update_client", s.latency.Write, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateClient(id, func(c *Client) error {
			patch.Apply(c)
			return nil
		})
		return err
	}, zap.String("client_id", id))
	return updated, res, err
}

// DeleteClient unassigns the client from every fiber and port, then removes it.
func (s *Service) DeleteClient(ctx context.Context, id string) (Result, error) {
	return s.write(ctx, "delete_client", s.latency.Write, func(tx Transaction) error {
		return tx.DeleteClient(id)
	}, zap.String("client_id", id))
}

// FindFibersByClient returns every fiber assigned to the client, annotated
// with its box and cable.
func (s *Service) FindFibersByClient(ctx context.Context, clientID string) ([]ConnectedFiber, error) {
	var out []ConnectedFiber
	err := s.read(ctx, "find_fibers_by_client", s.latency.Lookup, func(v TransactionView) error {
		out = connectedFibers(v.ListBoxes(), clientID)
		return nil
	})
	return out, err
}

// FindPortsByClient returns every switch port assigned to the client,
// annotated with its switch.
func (s *Service) FindPortsByClient(ctx context.Context, clientID string) ([]ConnectedPort, error) {
	var out []ConnectedPort
	err := s.read(ctx, "find_ports_by_client", s.latency.Lookup, func(v TransactionView) error {
		out = connectedPorts(v.ListSwitches(), clientID)
		return nil
	})
	return out, err
}
