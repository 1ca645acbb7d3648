package core

import (
	"context"
	"fmt"

	"fibernet/pkg/domain"
)

// NewSwitchPortLayoutRule returns the rule enforcing that every switch owns
// exactly total_portas ports numbered 1..n.
func NewSwitchPortLayoutRule() domain.Rule {
	return switchPortLayoutRule{}
}

type switchPortLayoutRule struct{}

func (switchPortLayoutRule) Name() string { return "switch_port_layout" }

func (r switchPortLayoutRule) Evaluate(_ context.Context, view domain.TransactionView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, sw := range view.ListSwitches() {
		if !touchesSwitch(changes, sw.ID) {
			continue
		}
		msg := ""
		if len(sw.Ports) != sw.TotalPorts {
			msg = fmt.Sprintf("has %d ports, declared %d", len(sw.Ports), sw.TotalPorts)
		} else {
			for i, p := range sw.Ports {
				if p.Number != i+1 {
					msg = fmt.Sprintf("port at position %d is numbered %d", i+1, p.Number)
					break
				}
			}
		}
		if msg == "" {
			continue
		}
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     r.Name(),
			Severity: domain.SeverityBlock,
			Message:  fmt.Sprintf("switch %s (%s) %s", sw.Name, sw.ID, msg),
			Entity:   domain.EntitySwitch,
			EntityID: sw.ID,
		})
	}
	return res, nil
}

// touchesSwitch reports whether the transaction changed the switch or one of
// its ports. A transaction without changes touches everything.
func touchesSwitch(changes []domain.Change, id string) bool {
	if len(changes) == 0 {
		return true
	}
	for _, ch := range changes {
		switch ch.Entity {
		case domain.EntitySwitch:
			if sw, ok := ch.After.(domain.Switch); ok && sw.ID == id {
				return true
			}
		case domain.EntityPort:
			if p, ok := ch.After.(domain.Port); ok && p.SwitchID == id {
				return true
			}
		}
	}
	return false
}
