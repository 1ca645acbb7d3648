// Package memory provides the copy-on-write transactional store that holds the
// fiber network inventory. Durable stores wrap it and snapshot its state after
// every commit.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fibernet/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Client aliases domain.Client.
	Client = domain.Client
	// Box aliases domain.Box.
	Box = domain.Box
	// Cable aliases domain.Cable.
	Cable = domain.Cable
	// Fiber aliases domain.Fiber.
	Fiber = domain.Fiber
	// Switch aliases domain.Switch.
	Switch = domain.Switch
	// Port aliases domain.Port.
	Port = domain.Port
	// Circuit aliases domain.Circuit.
	Circuit = domain.Circuit
	// CircuitElement aliases domain.CircuitElement.
	CircuitElement = domain.CircuitElement
	// Technician aliases domain.Technician.
	Technician = domain.Technician
	// Ticket aliases domain.Ticket.
	Ticket = domain.Ticket
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
)

// memoryState holds one ordered collection per record type. Committed state is
// never mutated in place: a transaction replaces whole collections and copies
// any record it changes.
type memoryState struct {
	clients     []Client
	boxes       []Box
	switches    []Switch
	circuits    []Circuit
	technicians []Technician
	tickets     []Ticket
}

// Snapshot is the serialisable representation of the store state. Each field
// is persisted as one bucket by the durable stores.
type Snapshot struct {
	Clients     []Client     `json:"clientes"`
	Boxes       []Box        `json:"caixas"`
	Switches    []Switch     `json:"switches"`
	Circuits    []Circuit    `json:"circuitos"`
	Technicians []Technician `json:"tecnicos"`
	Tickets     []Ticket     `json:"chamados"`
}

func newMemoryState() memoryState {
	return memoryState{
		clients:     []Client{},
		boxes:       []Box{},
		switches:    []Switch{},
		circuits:    []Circuit{},
		technicians: []Technician{},
		tickets:     []Ticket{},
	}
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	return Snapshot{
		Clients:     cloneAll(state.clients, cloneClient),
		Boxes:       cloneAll(state.boxes, cloneBox),
		Switches:    cloneAll(state.switches, cloneSwitch),
		Circuits:    cloneAll(state.circuits, cloneCircuit),
		Technicians: cloneAll(state.technicians, cloneTechnician),
		Tickets:     cloneAll(state.tickets, cloneTicket),
	}
}

// memoryStateFromSnapshot adopts the snapshot collections; callers hand over
// an already cloned snapshot.
func memoryStateFromSnapshot(s Snapshot) memoryState {
	return memoryState{
		clients:     s.Clients,
		boxes:       s.Boxes,
		switches:    s.Switches,
		circuits:    s.Circuits,
		technicians: s.Technicians,
		tickets:     s.Tickets,
	}
}

// migrateSnapshot returns a normalized deep copy of snapshot: nil collections
// become empty, cables and switches saved without children get their
// generated fibers and ports, child records carry their owner ids, and fiber
// or port client references to unknown clients are dropped.
func migrateSnapshot(snapshot Snapshot) Snapshot {
	s := snapshotFromMemoryState(memoryStateFromSnapshot(snapshot))
	known := make(map[string]struct{}, len(s.Clients))
	for _, c := range s.Clients {
		known[c.ID] = struct{}{}
	}
	keep := func(ref *string) *string {
		if ref == nil {
			return nil
		}
		if _, ok := known[*ref]; !ok {
			return nil
		}
		return ref
	}
	for bi := range s.Boxes {
		box := &s.Boxes[bi]
		for side, cables := range map[domain.Side][]Cable{domain.SideInput: box.InputCables, domain.SideOutput: box.OutputCables} {
			for ci := range cables {
				if len(cables[ci].Fibers) == 0 && domain.ValidFiberCount(cables[ci].FiberCount) {
					cables[ci].Fibers = domain.GenerateFibers(cables[ci].ID, cables[ci].FiberCount, domain.NewID)
				}
				cables[ci].BoxID = box.ID
				cables[ci].Side = side
				for fi := range cables[ci].Fibers {
					cables[ci].Fibers[fi].CableID = cables[ci].ID
					cables[ci].Fibers[fi].ClientID = keep(cables[ci].Fibers[fi].ClientID)
				}
			}
		}
	}
	for si := range s.Switches {
		sw := &s.Switches[si]
		if len(sw.Ports) == 0 && domain.ValidPortCount(sw.TotalPorts) {
			sw.Ports = domain.GeneratePorts(sw.ID, sw.TotalPorts, domain.NewID)
		}
		for pi := range sw.Ports {
			sw.Ports[pi].SwitchID = sw.ID
			sw.Ports[pi].ClientID = keep(sw.Ports[pi].ClientID)
		}
	}
	for ti := range s.Tickets {
		if s.Tickets[ti].Status == "" {
			s.Tickets[ti].Status = domain.TicketOpen
		}
		if s.Tickets[ti].Priority == "" {
			s.Tickets[ti].Priority = domain.PriorityNormal
		}
	}
	return s
}

func cloneAll[T any](in []T, clone func(T) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

func cloneClient(c Client) Client { return c }

func cloneFiber(f Fiber) Fiber {
	if f.ClientID != nil {
		id := *f.ClientID
		f.ClientID = &id
	}
	return f
}

func cloneCable(c Cable) Cable {
	c.Fibers = cloneAll(c.Fibers, cloneFiber)
	return c
}

func cloneBox(b Box) Box {
	b.InputCables = cloneAll(b.InputCables, cloneCable)
	b.OutputCables = cloneAll(b.OutputCables, cloneCable)
	return b
}

func clonePort(p Port) Port {
	if p.ClientID != nil {
		id := *p.ClientID
		p.ClientID = &id
	}
	return p
}

func cloneSwitch(s Switch) Switch {
	s.Ports = cloneAll(s.Ports, clonePort)
	return s
}

func cloneCircuit(c Circuit) Circuit {
	c.Elements = append([]CircuitElement{}, c.Elements...)
	return c
}

func cloneTechnician(t Technician) Technician { return t }

func cloneTicket(t Ticket) Ticket {
	if t.StartedAt != nil {
		ts := *t.StartedAt
		t.StartedAt = &ts
	}
	if t.ClosedAt != nil {
		ts := *t.ClosedAt
		t.ClosedAt = &ts
	}
	return t
}

func indexOf[T any](items []T, id string, key func(*T) string) int {
	for i := range items {
		if key(&items[i]) == id {
			return i
		}
	}
	return -1
}

// replaced returns a copy of items with the element at i swapped for v.
func replaced[T any](items []T, i int, v T) []T {
	out := make([]T, len(items))
	copy(out, items)
	out[i] = v
	return out
}

// appended returns a copy of items with v added at the end.
func appended[T any](items []T, v T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, v)
}

// removed returns a copy of items without the element at i.
func removed[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func clientKey(c *Client) string         { return c.ID }
func boxKey(b *Box) string               { return b.ID }
func cableKey(c *Cable) string           { return c.ID }
func fiberKey(f *Fiber) string           { return f.ID }
func switchKey(s *Switch) string         { return s.ID }
func portKey(p *Port) string             { return p.ID }
func circuitKey(c *Circuit) string       { return c.ID }
func technicianKey(t *Technician) string { return t.ID }
func ticketKey(t *Ticket) string         { return t.ID }

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.nowFn = now
		}
	}
}

// WithIDFunc overrides the generator used for new record identifiers.
func WithIDFunc(fn domain.IDFunc) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Store provides an in-memory transactional store for the inventory.
type Store struct {
	mu      sync.RWMutex // guards state
	writeMu sync.Mutex   // serializes transactions
	state   memoryState
	engine  *RulesEngine
	nowFn   func() time.Time
	newID   domain.IDFunc
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine, opts ...Option) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	s := &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
		newID:  domain.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()
	return snapshotFromMemoryState(state)
}

// ImportState replaces the store state with a normalized copy of snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	next := memoryStateFromSnapshot(migrateSnapshot(snapshot))
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
}

// RulesEngine exposes the engine evaluated before every commit.
func (s *Store) RulesEngine() *RulesEngine {
	return s.engine
}

// NowFunc returns the time provider used by the in-memory store.
func (s *Store) NowFunc() func() time.Time {
	return s.nowFn
}

// RunInTransaction executes fn against a private copy of the store state and
// commits it when fn succeeds and no rule blocks. Transactions are serialized;
// readers keep seeing the previous state until the commit swaps it.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	base := s.state
	s.mu.RUnlock()

	tx := &transaction{store: s, state: base, now: s.nowFn()}
	tx.transactionView = transactionView{state: &tx.state}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		res, err := s.engine.Evaluate(ctx, tx.transactionView, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.mu.Lock()
	s.state = tx.state
	s.mu.Unlock()
	return result, nil
}

// View executes fn against the committed state as of the call.
func (s *Store) View(ctx context.Context, fn func(TransactionView) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()
	return fn(transactionView{state: &state})
}

// transactionView exposes a read-only view of a state. Every record it
// returns is a deep copy.
type transactionView struct {
	state *memoryState
}

// ListClients returns all clients in insertion order.
func (v transactionView) ListClients() []Client {
	return cloneAll(v.state.clients, cloneClient)
}

// FindClient retrieves a client by id.
func (v transactionView) FindClient(id string) (Client, bool) {
	i := indexOf(v.state.clients, id, clientKey)
	if i < 0 {
		return Client{}, false
	}
	return v.state.clients[i], true
}

// ListBoxes returns all boxes in insertion order.
func (v transactionView) ListBoxes() []Box {
	return cloneAll(v.state.boxes, cloneBox)
}

// FindBox retrieves a box with its cables and fibers.
func (v transactionView) FindBox(id string) (Box, bool) {
	i := indexOf(v.state.boxes, id, boxKey)
	if i < 0 {
		return Box{}, false
	}
	return cloneBox(v.state.boxes[i]), true
}

// ListSwitches returns all switches in insertion order.
func (v transactionView) ListSwitches() []Switch {
	return cloneAll(v.state.switches, cloneSwitch)
}

// FindSwitch retrieves a switch with its ports.
func (v transactionView) FindSwitch(id string) (Switch, bool) {
	i := indexOf(v.state.switches, id, switchKey)
	if i < 0 {
		return Switch{}, false
	}
	return cloneSwitch(v.state.switches[i]), true
}

// ListCircuits returns all circuits in insertion order.
func (v transactionView) ListCircuits() []Circuit {
	return cloneAll(v.state.circuits, cloneCircuit)
}

// FindCircuit retrieves a circuit by id.
func (v transactionView) FindCircuit(id string) (Circuit, bool) {
	i := indexOf(v.state.circuits, id, circuitKey)
	if i < 0 {
		return Circuit{}, false
	}
	return cloneCircuit(v.state.circuits[i]), true
}

// ListTechnicians returns all technicians in insertion order.
func (v transactionView) ListTechnicians() []Technician {
	return cloneAll(v.state.technicians, cloneTechnician)
}

// FindTechnician retrieves a technician by id.
func (v transactionView) FindTechnician(id string) (Technician, bool) {
	i := indexOf(v.state.technicians, id, technicianKey)
	if i < 0 {
		return Technician{}, false
	}
	return v.state.technicians[i], true
}

// ListTickets returns all tickets in insertion order.
func (v transactionView) ListTickets() []Ticket {
	return cloneAll(v.state.tickets, cloneTicket)
}

// FindTicket retrieves a ticket by id.
func (v transactionView) FindTicket(id string) (Ticket, bool) {
	i := indexOf(v.state.tickets, id, ticketKey)
	if i < 0 {
		return Ticket{}, false
	}
	return cloneTicket(v.state.tickets[i]), true
}

// transaction is a mutation set applied to a private copy of the store state.
type transaction struct {
	transactionView
	store   *Store
	state   memoryState
	changes []Change
	now     time.Time
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return tx.transactionView
}

func alreadyExists(entity domain.EntityType, id string) error {
	return fmt.Errorf("%s %q: %w", entity, id, domain.ErrAlreadyExists)
}
