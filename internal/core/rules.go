package core

import "fibernet/pkg/domain"

// NewRulesEngine constructs an empty engine.
func NewRulesEngine() *RulesEngine {
	return domain.NewRulesEngine()
}

// NewDefaultRulesEngine builds a rules engine with the built-in integrity
// rules.
func NewDefaultRulesEngine() *RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(NewCableFiberLayoutRule())
	engine.Register(NewSwitchPortLayoutRule())
	engine.Register(NewClientReferenceRule())
	engine.Register(NewTechnicianAssignmentRule())
	return engine
}
