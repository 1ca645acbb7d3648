package domain

import "context"

// TransactionView provides read-only access to a consistent state snapshot.
// Records are returned as copies; mutating them does not affect the store.
type TransactionView interface {
	ListClients() []Client
	FindClient(id string) (Client, bool)
	ListBoxes() []Box
	FindBox(id string) (Box, bool)
	ListSwitches() []Switch
	FindSwitch(id string) (Switch, bool)
	ListCircuits() []Circuit
	FindCircuit(id string) (Circuit, bool)
	ListTechnicians() []Technician
	FindTechnician(id string) (Technician, bool)
	ListTickets() []Ticket
	FindTicket(id string) (Ticket, bool)
}

// Transaction exposes the mutations a persistence implementation must support
// within an atomic scope. Writes targeting a missing id return ErrNotFound.
type Transaction interface {
	TransactionView
	Snapshot() TransactionView

	CreateClient(Client) (Client, error)
	UpdateClient(id string, mutator func(*Client) error) (Client, error)
	// DeleteClient clears every fiber and port reference to the client before
	// removing it.
	DeleteClient(id string) error

	CreateBox(Box) (Box, error)
	UpdateBox(id string, mutator func(*Box) error) (Box, error)
	DeleteBox(id string) error
	AddCable(boxID string, cable Cable) (Cable, error)
	UpdateFiber(boxID, cableID, fiberID string, mutator func(*Fiber) error) (Fiber, error)

	CreateSwitch(Switch) (Switch, error)
	UpdateSwitch(id string, mutator func(*Switch) error) (Switch, error)
	DeleteSwitch(id string) error
	UpdatePort(switchID, portID string, mutator func(*Port) error) (Port, error)

	CreateCircuit(Circuit) (Circuit, error)
	UpdateCircuit(id string, mutator func(*Circuit) error) (Circuit, error)
	DeleteCircuit(id string) error

	CreateTechnician(Technician) (Technician, error)
	UpdateTechnician(id string, mutator func(*Technician) error) (Technician, error)
	DeleteTechnician(id string) error

	CreateTicket(Ticket) (Ticket, error)
	UpdateTicket(id string, mutator func(*Ticket) error) (Ticket, error)
	DeleteTicket(id string) error
}

// PersistentStore is the abstraction shared by the in-memory store and its
// durable wrappers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	RulesEngine() *RulesEngine
}
