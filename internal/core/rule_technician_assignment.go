package core

import (
	"context"
	"fmt"

	"fibernet/pkg/domain"
)

// NewTechnicianAssignmentRule returns the rule blocking the removal of a
// technician still assigned to a ticket that is not closed.
func NewTechnicianAssignmentRule() domain.Rule {
	return technicianAssignmentRule{}
}

type technicianAssignmentRule struct{}

func (technicianAssignmentRule) Name() string { return "technician_assignment" }

func (r technicianAssignmentRule) Evaluate(_ context.Context, view domain.TransactionView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, ch := range changes {
		if ch.Entity != domain.EntityTechnician || ch.Action != domain.ActionDelete {
			continue
		}
		tech, ok := ch.Before.(domain.Technician)
		if !ok {
			continue
		}
		open := 0
		for _, t := range view.ListTickets() {
			if t.TechnicianID == tech.ID && t.Status != domain.TicketClosed {
				open++
			}
		}
		if open > 0 {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     r.Name(),
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("technician %s (%s) has %d unclosed tickets", tech.Name, tech.ID, open),
				Entity:   domain.EntityTechnician,
				EntityID: tech.ID,
			})
		}
	}
	return res, nil
}
