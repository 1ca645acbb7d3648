package core

import "fibernet/pkg/domain"

type (
	Client         = domain.Client
	Contact        = domain.Contact
	Box            = domain.Box
	Cable          = domain.Cable
	Fiber          = domain.Fiber
	Switch         = domain.Switch
	Port           = domain.Port
	Circuit        = domain.Circuit
	CircuitElement = domain.CircuitElement
	Technician     = domain.Technician
	Ticket         = domain.Ticket
	ConnectedFiber = domain.ConnectedFiber
	ConnectedPort  = domain.ConnectedPort

	ClientPatch     = domain.ClientPatch
	BoxPatch        = domain.BoxPatch
	SwitchPatch     = domain.SwitchPatch
	FiberPatch      = domain.FiberPatch
	PortPatch       = domain.PortPatch
	CircuitPatch    = domain.CircuitPatch
	TechnicianPatch = domain.TechnicianPatch
	TicketPatch     = domain.TicketPatch

	Result          = domain.Result
	Violation       = domain.Violation
	Rule            = domain.Rule
	RulesEngine     = domain.RulesEngine
	Change          = domain.Change
	Transaction     = domain.Transaction
	TransactionView = domain.TransactionView
	PersistentStore = domain.PersistentStore
)
