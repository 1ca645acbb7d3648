package core

import (
	"context"

	"go.uber.org/zap"

	"fibernet/pkg/domain"
)

// ListSwitches returns every switch with its ports.
func (s *Service) ListSwitches(ctx context.Context) ([]Switch, error) {
	var out []Switch
	err := s.read(ctx, "list_switches", s.latency.Read, func(v TransactionView) error {
		out = v.ListSwitches()
		return nil
	})
	return out, err
}

// GetSwitch looks a switch up by id.
func (s *Service) GetSwitch(ctx context.Context, id string) (Switch, bool, error) {
	var (
		out Switch
		ok  bool
	)
	err := s.read(ctx, "get_switch", s.latency.Read, func(v TransactionView) error {
		out, ok = v.FindSwitch(id)
		return nil
	})
	return out, ok, err
}

// AddSwitch persists a new switch and generates total_portas ports.
func (s *Service) AddSwitch(ctx context.Context, sw Switch) (Switch, Result, error) {
	var created Switch
	res, err := s.write(ctx, "add_switch", s.latency.Write, func(tx Transaction) error {
		var err error
		created, err = tx.CreateSwitch(sw)
		return err
	})
	return created, res, err
}

// UpdateSwitch merges patch into the switch. The port count never changes.
func (s *Service) UpdateSwitch(ctx context.Context, id string, patch SwitchPatch) (Switch, Result, error) {
	var updated Switch
	res, err := s.write(ctx, "update_switch", s.latency.Write, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateSwitch(id, func(sw *Switch) error {
			patch.Apply(sw)
			return nil
		})
		return err
	}, zap.String("switch_id", id))
	return updated, res, err
}

// DeleteSwitch removes a switch and its ports.
func (s *Service) DeleteSwitch(ctx context.Context, id string) (Result, error) {
	return s.write(ctx, "delete_switch", s.latency.Write, func(tx Transaction) error {
		return tx.DeleteSwitch(id)
	}, zap.String("switch_id", id))
}

// UpdatePort merges patch into one port of a switch.
func (s *Service) UpdatePort(ctx context.Context, switchID, portID string, patch PortPatch) (Port, Result, error) {
	var updated Port
	res, err := s.write(ctx, "update_port", s.latency.FiberUpdate, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdatePort(switchID, portID, func(p *Port) error {
			patch.Apply(p)
			return nil
		})
		if err != nil {
			return err
		}
		if updated.ClientID != nil && patch.ClientID != nil {
			return requireClient(tx, *updated.ClientID)
		}
		return nil
	}, zap.String("switch_id", switchID), zap.String("port_id", portID))
	return updated, res, err
}

func requireClient(v TransactionView, id string) error {
	if _, ok := v.FindClient(id); !ok {
		return domain.NotFound(domain.EntityClient, id)
	}
	return nil
}
