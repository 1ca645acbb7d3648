package core

import (
	"context"
	"fmt"

	"fibernet/pkg/domain"
)

// NewClientReferenceRule returns a warning rule reporting fibers and ports
// assigned to clients that do not exist.
func NewClientReferenceRule() domain.Rule {
	return clientReferenceRule{}
}

type clientReferenceRule struct{}

func (clientReferenceRule) Name() string { return "client_reference" }

func (r clientReferenceRule) Evaluate(_ context.Context, view domain.TransactionView, _ []domain.Change) (domain.Result, error) {
	known := make(map[string]struct{})
	for _, c := range view.ListClients() {
		known[c.ID] = struct{}{}
	}
	dangling := func(id *string) bool {
		if id == nil {
			return false
		}
		_, ok := known[*id]
		return !ok
	}

	res := domain.Result{}
	for _, box := range view.ListBoxes() {
		for _, cable := range box.Cables() {
			for _, f := range cable.Fibers {
				if dangling(f.ClientID) {
					res.Violations = append(res.Violations, domain.Violation{
						Rule:     r.Name(),
						Severity: domain.SeverityWarn,
						Message:  fmt.Sprintf("fiber %s in box %s references unknown client %s", f.ID, box.Code, *f.ClientID),
						Entity:   domain.EntityFiber,
						EntityID: f.ID,
					})
				}
			}
		}
	}
	for _, sw := range view.ListSwitches() {
		for _, p := range sw.Ports {
			if dangling(p.ClientID) {
				res.Violations = append(res.Violations, domain.Violation{
					Rule:     r.Name(),
					Severity: domain.SeverityWarn,
					Message:  fmt.Sprintf("port %d of switch %s references unknown client %s", p.Number, sw.Name, *p.ClientID),
					Entity:   domain.EntityPort,
					EntityID: p.ID,
				})
			}
		}
	}
	return res, nil
}
