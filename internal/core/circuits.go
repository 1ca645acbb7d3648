package core

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"fibernet/pkg/domain"
)

// PathElement is a circuit element resolved against the inventory.
type PathElement struct {
	Type      domain.ElementType `json:"tipo_elemento"`
	ElementID string             `json:"elemento_id"`
	Order     int                `json:"ordem"`
	Label     string             `json:"nome"`
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
}

// CircuitPath is a circuit together with its resolved, ordered path.
type CircuitPath struct {
	Circuit Circuit       `json:"circuito"`
	Path    []PathElement `json:"caminho"`
}

// ListCircuits returns every circuit.
func (s *Service) ListCircuits(ctx context.Context) ([]Circuit, error) {
	var out []Circuit
	err := s.read(ctx, "list_circuits", s.latency.Read, func(v TransactionView) error {
		out = v.ListCircuits()
		return nil
	})
	return out, err
}

// GetCircuit looks a circuit up by id.
func (s *Service) GetCircuit(ctx context.Context, id string) (Circuit, bool, error) {
	var (
		out Circuit
		ok  bool
	)
	err := s.read(ctx, "get_circuit", s.latency.Read, func(v TransactionView) error {
		out, ok = v.FindCircuit(id)
		return nil
	})
	return out, ok, err
}

// GetCircuitByClient returns the first circuit that belongs to the client.
func (s *Service) GetCircuitByClient(ctx context.Context, clientID string) (Circuit, bool, error) {
	var (
		out Circuit
		ok  bool
	)
	err := s.read(ctx, "get_circuit_by_client", s.latency.Lookup, func(v TransactionView) error {
		for _, c := range v.ListCircuits() {
			if c.ClientID == clientID {
				out, ok = c, true
				break
			}
		}
		return nil
	})
	return out, ok, err
}

// AddCircuit persists a new circuit for an existing client.
func (s *Service) AddCircuit(ctx context.Context, circuit Circuit) (Circuit, Result, error) {
	var created Circuit
	res, err := s.write(ctx, "add_circuit", s.latency.Write, func(tx Transaction) error {
		var err error
		created, err = tx.CreateCircuit(circuit)
		return err
	})
	return created, res, err
}

// UpdateCircuit merges patch into the circuit. Supplied elements replace
// the whole path.
func (s *Service) UpdateCircuit(ctx context.Context, id string, patch CircuitPatch) (Circuit, Result, error) {
	var updated Circuit
	res, err := s.write(ctx, "update_circuit", s.latency.Write, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateCircuit(id, func(c *Circuit) error {
			patch.Apply(c)
			return nil
		})
		return err
	}, zap.String("circuit_id", id))
	return updated, res, err
}

// DeleteCircuit removes a circuit.
func (s *Service) DeleteCircuit(ctx context.Context, id string) (Result, error) {
	return s.write(ctx, "delete_circuit", s.latency.Write, func(tx Transaction) error {
		return tx.DeleteCircuit(id)
	}, zap.String("circuit_id", id))
}

// ResolveCircuit resolves the circuit's elements to the records they name.
// Elements whose record no longer exists are dropped.
func (s *Service) ResolveCircuit(ctx context.Context, id string) (CircuitPath, bool, error) {
	var (
		out CircuitPath
		ok  bool
	)
	err := s.read(ctx, "resolve_circuit", s.latency.Lookup, func(v TransactionView) error {
		var c Circuit
		if c, ok = v.FindCircuit(id); ok {
			out = CircuitPath{Circuit: c, Path: ResolvePath(v, c.Elements)}
		}
		return nil
	})
	return out, ok, err
}

// ResolvePath dispatches each element on its type, drops unresolvable ones
// and orders the rest by their declared order. Cycles are not detected.
func ResolvePath(v TransactionView, elements []CircuitElement) []PathElement {
	path := make([]PathElement, 0, len(elements))
	for _, el := range elements {
		pe := PathElement{Type: el.Type, ElementID: el.ElementID, Order: el.Order}
		switch el.Type {
		case domain.ElementSwitch:
			sw, ok := v.FindSwitch(el.ElementID)
			if !ok {
				continue
			}
			pe.Label, pe.Latitude, pe.Longitude = sw.Name, sw.Latitude, sw.Longitude
		case domain.ElementBox:
			box, ok := v.FindBox(el.ElementID)
			if !ok {
				continue
			}
			pe.Label, pe.Latitude, pe.Longitude = box.Code, box.Latitude, box.Longitude
		case domain.ElementClient:
			client, ok := v.FindClient(el.ElementID)
			if !ok {
				continue
			}
			pe.Label, pe.Latitude, pe.Longitude = client.Name, client.Latitude, client.Longitude
		default:
			continue
		}
		path = append(path, pe)
	}
	sort.SliceStable(path, func(i, j int) bool { return path[i].Order < path[j].Order })
	return path
}
