package core

import (
	"context"

	"go.uber.org/zap"
)

// ListBoxes returns every box with its cables and fibers.
func (s *Service) ListBoxes(ctx context.Context) ([]Box, error) {
	var out []Box
	err := s.read(ctx, "list_boxes", s.latency.Read, func(v TransactionView) error {
		out = v.ListBoxes()
		return nil
	})
	return out, err
}

// GetBox looks a box up by id.
func (s *Service) GetBox(ctx context.Context, id string) (Box, bool, error) {
	var (
		out Box
		ok  bool
	)
	err := s.read(ctx, "get_box", s.latency.Read, func(v TransactionView) error {
		out, ok = v.FindBox(id)
		return nil
	})
	return out, ok, err
}

// AddBox persists a new box. Cables supplied with it have their fibers
// generated from the declared count.
func (s *Service) AddBox(ctx context.Context, box Box) (Box, Result, error) {
	var created Box
	res, err := s.write(ctx, "add_box", s.latency.Write, func(tx Transaction) error {
		var err error
		created, err = tx.CreateBox(box)
		return err
	})
	return created, res, err
}

// UpdateBox merges patch into the box's own fields; cables are untouched.
func (s *Service) UpdateBox(ctx context.Context, id string, patch BoxPatch) (Box, Result, error) {
	var updated Box
	res, err := s.write(ctx, "update_box", s.latency.Write, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateBox(id, func(b *Box) error {
			patch.Apply(b)
			return nil
		})
		return err
	}, zap.String("box_id", id))
	return updated, res, err
}

// DeleteBox removes a box. Circuit elements referencing it are kept and
// dropped at resolution time.
func (s *Service) DeleteBox(ctx context.Context, id string) (Result, error) {
	return s.write(ctx, "delete_box", s.latency.Write, func(tx Transaction) error {
		return tx.DeleteBox(id)
	}, zap.String("box_id", id))
}

// AddCableToBox appends a cable with generated fibers to the side named by
// cable.Side.
func (s *Service) AddCableToBox(ctx context.Context, boxID string, cable Cable) (Cable, Result, error) {
	var created Cable
	res, err := s.write(ctx, "add_cable", s.latency.Write, func(tx Transaction) error {
		var err error
		created, err = tx.AddCable(boxID, cable)
		return err
	}, zap.String("box_id", boxID))
	return created, res, err
}

// UpdateFiberInBox merges patch into one fiber. It fails when the box is
// missing or the fiber is not on the named cable of that box.
func (s *Service) UpdateFiberInBox(ctx context.Context, boxID, cableID, fiberID string, patch FiberPatch) (Fiber, Result, error) {
	var updated Fiber
	res, err := s.write(ctx, "update_fiber", s.latency.FiberUpdate, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateFiber(boxID, cableID, fiberID, func(f *Fiber) error {
			patch.Apply(f)
			return nil
		})
		if err != nil {
			return err
		}
		if updated.ClientID != nil && patch.ClientID != nil {
			return requireClient(tx, *updated.ClientID)
		}
		return nil
	}, zap.String("box_id", boxID), zap.String("cable_id", cableID), zap.String("fiber_id", fiberID))
	return updated, res, err
}
