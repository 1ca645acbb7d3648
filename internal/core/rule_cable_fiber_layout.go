package core

import (
	"context"
	"fmt"

	"fibernet/pkg/domain"
)

// NewCableFiberLayoutRule returns the rule enforcing that every cable carries
// exactly its declared strands laid out as the generator produces them.
func NewCableFiberLayoutRule() domain.Rule {
	return cableFiberLayoutRule{}
}

type cableFiberLayoutRule struct{}

func (cableFiberLayoutRule) Name() string { return "cable_fiber_layout" }

func (r cableFiberLayoutRule) Evaluate(_ context.Context, view domain.TransactionView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, box := range view.ListBoxes() {
		if !touchesBox(changes, box) {
			continue
		}
		for _, cable := range box.Cables() {
			if msg := cableLayoutProblem(cable); msg != "" {
				res.Violations = append(res.Violations, domain.Violation{
					Rule:     r.Name(),
					Severity: domain.SeverityBlock,
					Message:  fmt.Sprintf("cable %s (%s) in box %s: %s", cable.Identification, cable.ID, box.Code, msg),
					Entity:   domain.EntityCable,
					EntityID: cable.ID,
				})
			}
		}
	}
	return res, nil
}

func cableLayoutProblem(c domain.Cable) string {
	if len(c.Fibers) != c.FiberCount {
		return fmt.Sprintf("has %d fibers, declared %d", len(c.Fibers), c.FiberCount)
	}
	for i, f := range c.Fibers {
		if !domain.FiberSlotAt(i).Matches(f) {
			return fmt.Sprintf("fiber %d is out of layout (group %d position %d)", i+1, f.GroupNumber, f.PositionInSet)
		}
	}
	return ""
}

// touchesBox reports whether the transaction changed the box or one of its
// cables or fibers. A transaction without changes touches everything.
func touchesBox(changes []domain.Change, box domain.Box) bool {
	if len(changes) == 0 {
		return true
	}
	for _, ch := range changes {
		switch ch.Entity {
		case domain.EntityBox:
			if b, ok := ch.After.(domain.Box); ok && b.ID == box.ID {
				return true
			}
		case domain.EntityCable:
			if c, ok := ch.After.(domain.Cable); ok && c.BoxID == box.ID {
				return true
			}
		case domain.EntityFiber:
			if f, ok := ch.After.(domain.Fiber); ok {
				for _, c := range box.Cables() {
					if c.ID == f.CableID {
						return true
					}
				}
			}
		}
	}
	return false
}
