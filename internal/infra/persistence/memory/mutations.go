package memory

import (
	"time"

	"fibernet/pkg/domain"
)

// CreateClient stores a new client.
func (tx *transaction) CreateClient(c Client) (Client, error) {
	if c.ID == "" {
		c.ID = tx.store.newID()
	}
	if indexOf(tx.state.clients, c.ID, clientKey) >= 0 {
		return Client{}, alreadyExists(domain.EntityClient, c.ID)
	}
	c.CreatedAt = tx.now
	c.UpdatedAt = tx.now
	tx.state.clients = appended(tx.state.clients, c)
	tx.recordChange(Change{Entity: domain.EntityClient, Action: domain.ActionCreate, After: c})
	return c, nil
}

// UpdateClient mutates a client using the provided mutator function.
func (tx *transaction) UpdateClient(id string, mutator func(*Client) error) (Client, error) {
	i := indexOf(tx.state.clients, id, clientKey)
	if i < 0 {
		return Client{}, domain.NotFound(domain.EntityClient, id)
	}
	before := tx.state.clients[i]
	current := before
	if err := mutator(&current); err != nil {
		return Client{}, err
	}
	current.ID = id
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.clients = replaced(tx.state.clients, i, current)
	tx.recordChange(Change{Entity: domain.EntityClient, Action: domain.ActionUpdate, Before: before, After: current})
	return current, nil
}

// DeleteClient unassigns every fiber and port that references the client,
// then removes it.
func (tx *transaction) DeleteClient(id string) error {
	i := indexOf(tx.state.clients, id, clientKey)
	if i < 0 {
		return domain.NotFound(domain.EntityClient, id)
	}
	before := tx.state.clients[i]

	boxes := make([]Box, len(tx.state.boxes))
	for bi, b := range tx.state.boxes {
		next, changed := unassignBox(b, id)
		if changed {
			tx.recordChange(Change{Entity: domain.EntityBox, Action: domain.ActionUpdate, Before: cloneBox(b), After: cloneBox(next)})
		}
		boxes[bi] = next
	}
	switches := make([]Switch, len(tx.state.switches))
	for si, sw := range tx.state.switches {
		next, changed := unassignSwitch(sw, id)
		if changed {
			tx.recordChange(Change{Entity: domain.EntitySwitch, Action: domain.ActionUpdate, Before: cloneSwitch(sw), After: cloneSwitch(next)})
		}
		switches[si] = next
	}
	tx.state.boxes = boxes
	tx.state.switches = switches
	tx.state.clients = removed(tx.state.clients, i)
	tx.recordChange(Change{Entity: domain.EntityClient, Action: domain.ActionDelete, Before: before})
	return nil
}

func unassignBox(b Box, clientID string) (Box, bool) {
	referenced := false
	for _, c := range b.Cables() {
		for _, f := range c.Fibers {
			if domain.Deref(f.ClientID) == clientID {
				referenced = true
			}
		}
	}
	if !referenced {
		return b, false
	}
	out := cloneBox(b)
	for _, cables := range [][]Cable{out.InputCables, out.OutputCables} {
		for ci := range cables {
			for fi := range cables[ci].Fibers {
				if domain.Deref(cables[ci].Fibers[fi].ClientID) == clientID {
					cables[ci].Fibers[fi].ClientID = nil
				}
			}
		}
	}
	return out, true
}

func unassignSwitch(sw Switch, clientID string) (Switch, bool) {
	referenced := false
	for _, p := range sw.Ports {
		if domain.Deref(p.ClientID) == clientID {
			referenced = true
		}
	}
	if !referenced {
		return sw, false
	}
	out := cloneSwitch(sw)
	for pi := range out.Ports {
		if domain.Deref(out.Ports[pi].ClientID) == clientID {
			out.Ports[pi].ClientID = nil
		}
	}
	return out, true
}

// CreateBox stores a new box. Supplied cables are attached to the side list
// they arrive in and expanded into fibers when none are given.
func (tx *transaction) CreateBox(b Box) (Box, error) {
	if b.ID == "" {
		b.ID = tx.store.newID()
	}
	if indexOf(tx.state.boxes, b.ID, boxKey) >= 0 {
		return Box{}, alreadyExists(domain.EntityBox, b.ID)
	}
	input, err := tx.buildCables(b.ID, domain.SideInput, b.InputCables)
	if err != nil {
		return Box{}, err
	}
	output, err := tx.buildCables(b.ID, domain.SideOutput, b.OutputCables)
	if err != nil {
		return Box{}, err
	}
	b.InputCables = input
	b.OutputCables = output
	b.CreatedAt = tx.now
	b.UpdatedAt = tx.now
	tx.state.boxes = appended(tx.state.boxes, b)
	tx.recordChange(Change{Entity: domain.EntityBox, Action: domain.ActionCreate, After: cloneBox(b)})
	return cloneBox(b), nil
}

// UpdateBox mutates a box's own fields. Cables are owned by the store and
// survive any change the mutator makes to them.
func (tx *transaction) UpdateBox(id string, mutator func(*Box) error) (Box, error) {
	i := indexOf(tx.state.boxes, id, boxKey)
	if i < 0 {
		return Box{}, domain.NotFound(domain.EntityBox, id)
	}
	before := tx.state.boxes[i]
	current := cloneBox(before)
	if err := mutator(&current); err != nil {
		return Box{}, err
	}
	current.ID = id
	current.InputCables = before.InputCables
	current.OutputCables = before.OutputCables
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.boxes = replaced(tx.state.boxes, i, current)
	tx.recordChange(Change{Entity: domain.EntityBox, Action: domain.ActionUpdate, Before: cloneBox(before), After: cloneBox(current)})
	return cloneBox(current), nil
}

// DeleteBox removes a box with its cables. Circuit elements pointing at it
// are left in place.
func (tx *transaction) DeleteBox(id string) error {
	i := indexOf(tx.state.boxes, id, boxKey)
	if i < 0 {
		return domain.NotFound(domain.EntityBox, id)
	}
	before := tx.state.boxes[i]
	tx.state.boxes = removed(tx.state.boxes, i)
	tx.recordChange(Change{Entity: domain.EntityBox, Action: domain.ActionDelete, Before: cloneBox(before)})
	return nil
}

// AddCable attaches a new cable to the input or output side of a box.
func (tx *transaction) AddCable(boxID string, cable Cable) (Cable, error) {
	i := indexOf(tx.state.boxes, boxID, boxKey)
	if i < 0 {
		return Cable{}, domain.NotFound(domain.EntityBox, boxID)
	}
	box := cloneBox(tx.state.boxes[i])
	if cable.ID != "" && findCable(&box, cable.ID) != nil {
		return Cable{}, alreadyExists(domain.EntityCable, cable.ID)
	}
	onSide := 0
	switch cable.Side {
	case domain.SideInput:
		onSide = len(box.InputCables)
	case domain.SideOutput:
		onSide = len(box.OutputCables)
	}
	built, err := tx.buildCable(box.ID, cable.Side, cable, onSide)
	if err != nil {
		return Cable{}, err
	}
	if built.Side == domain.SideInput {
		box.InputCables = append(box.InputCables, built)
	} else {
		box.OutputCables = append(box.OutputCables, built)
	}
	tx.state.boxes = replaced(tx.state.boxes, i, box)
	tx.recordChange(Change{Entity: domain.EntityCable, Action: domain.ActionCreate, After: cloneCable(built)})
	return cloneCable(built), nil
}

// UpdateFiber mutates one fiber of a box cable. The strand layout and its
// owning cable are fixed; a cable id that does not belong to the box reports
// the fiber as not found.
func (tx *transaction) UpdateFiber(boxID, cableID, fiberID string, mutator func(*Fiber) error) (Fiber, error) {
	i := indexOf(tx.state.boxes, boxID, boxKey)
	if i < 0 {
		return Fiber{}, domain.NotFound(domain.EntityBox, boxID)
	}
	box := cloneBox(tx.state.boxes[i])
	cable := findCable(&box, cableID)
	if cable == nil {
		return Fiber{}, domain.NotFound(domain.EntityFiber, fiberID)
	}
	fi := indexOf(cable.Fibers, fiberID, fiberKey)
	if fi < 0 {
		return Fiber{}, domain.NotFound(domain.EntityFiber, fiberID)
	}
	before := cloneFiber(cable.Fibers[fi])
	current := cloneFiber(before)
	if err := mutator(&current); err != nil {
		return Fiber{}, err
	}
	current.ID = before.ID
	current.CableID = before.CableID
	current.GroupNumber = before.GroupNumber
	current.GroupColor = before.GroupColor
	current.PositionInSet = before.PositionInSet
	current.Color = before.Color
	cable.Fibers[fi] = current
	tx.state.boxes = replaced(tx.state.boxes, i, box)
	tx.recordChange(Change{Entity: domain.EntityFiber, Action: domain.ActionUpdate, Before: before, After: cloneFiber(current)})
	return cloneFiber(current), nil
}

func findCable(b *Box, id string) *Cable {
	if i := indexOf(b.InputCables, id, cableKey); i >= 0 {
		return &b.InputCables[i]
	}
	if i := indexOf(b.OutputCables, id, cableKey); i >= 0 {
		return &b.OutputCables[i]
	}
	return nil
}

func (tx *transaction) buildCables(boxID string, side domain.Side, cables []Cable) ([]Cable, error) {
	out := make([]Cable, 0, len(cables))
	for i, c := range cables {
		built, err := tx.buildCable(boxID, side, c, i)
		if err != nil {
			return nil, err
		}
		out = append(out, built)
	}
	return out, nil
}

// buildCable validates a cable and fills its generated fields. onSide is the
// number of cables already attached to the target side.
func (tx *transaction) buildCable(boxID string, side domain.Side, c Cable, onSide int) (Cable, error) {
	if !side.Valid() {
		return Cable{}, domain.Invalid(domain.EntityCable, "lado", "unknown side %q", side)
	}
	if !domain.ValidFiberCount(c.FiberCount) {
		return Cable{}, domain.Invalid(domain.EntityCable, "quantidade_fibras", "unsupported fiber count %d", c.FiberCount)
	}
	if c.ID == "" {
		c.ID = tx.store.newID()
	}
	c.BoxID = boxID
	c.Side = side
	if c.OrderOnSide <= 0 {
		c.OrderOnSide = onSide + 1
	}
	if len(c.Fibers) == 0 {
		c.Fibers = domain.GenerateFibers(c.ID, c.FiberCount, tx.store.newID)
		return c, nil
	}
	c.Fibers = cloneAll(c.Fibers, cloneFiber)
	for fi := range c.Fibers {
		c.Fibers[fi].CableID = c.ID
	}
	return c, nil
}

// CreateSwitch stores a new switch and generates its ports.
func (tx *transaction) CreateSwitch(s Switch) (Switch, error) {
	if !domain.ValidPortCount(s.TotalPorts) {
		return Switch{}, domain.Invalid(domain.EntitySwitch, "total_portas", "unsupported port count %d", s.TotalPorts)
	}
	if s.ID == "" {
		s.ID = tx.store.newID()
	}
	if indexOf(tx.state.switches, s.ID, switchKey) >= 0 {
		return Switch{}, alreadyExists(domain.EntitySwitch, s.ID)
	}
	if len(s.Ports) == 0 {
		s.Ports = domain.GeneratePorts(s.ID, s.TotalPorts, tx.store.newID)
	} else {
		s.Ports = cloneAll(s.Ports, clonePort)
		for pi := range s.Ports {
			s.Ports[pi].SwitchID = s.ID
		}
	}
	s.CreatedAt = tx.now
	s.UpdatedAt = tx.now
	tx.state.switches = appended(tx.state.switches, s)
	tx.recordChange(Change{Entity: domain.EntitySwitch, Action: domain.ActionCreate, After: cloneSwitch(s)})
	return cloneSwitch(s), nil
}

// UpdateSwitch mutates a switch's own fields. The port count and the ports
// themselves are fixed at creation.
func (tx *transaction) UpdateSwitch(id string, mutator func(*Switch) error) (Switch, error) {
	i := indexOf(tx.state.switches, id, switchKey)
	if i < 0 {
		return Switch{}, domain.NotFound(domain.EntitySwitch, id)
	}
	before := tx.state.switches[i]
	current := cloneSwitch(before)
	if err := mutator(&current); err != nil {
		return Switch{}, err
	}
	current.ID = id
	current.TotalPorts = before.TotalPorts
	current.Ports = before.Ports
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.switches = replaced(tx.state.switches, i, current)
	tx.recordChange(Change{Entity: domain.EntitySwitch, Action: domain.ActionUpdate, Before: cloneSwitch(before), After: cloneSwitch(current)})
	return cloneSwitch(current), nil
}

// DeleteSwitch removes a switch with its ports.
func (tx *transaction) DeleteSwitch(id string) error {
	i := indexOf(tx.state.switches, id, switchKey)
	if i < 0 {
		return domain.NotFound(domain.EntitySwitch, id)
	}
	before := tx.state.switches[i]
	tx.state.switches = removed(tx.state.switches, i)
	tx.recordChange(Change{Entity: domain.EntitySwitch, Action: domain.ActionDelete, Before: cloneSwitch(before)})
	return nil
}

// UpdatePort mutates one port of a switch and refreshes the switch's update
// timestamp.
func (tx *transaction) UpdatePort(switchID, portID string, mutator func(*Port) error) (Port, error) {
	i := indexOf(tx.state.switches, switchID, switchKey)
	if i < 0 {
		return Port{}, domain.NotFound(domain.EntitySwitch, switchID)
	}
	sw := cloneSwitch(tx.state.switches[i])
	pi := indexOf(sw.Ports, portID, portKey)
	if pi < 0 {
		return Port{}, domain.NotFound(domain.EntityPort, portID)
	}
	before := clonePort(sw.Ports[pi])
	current := clonePort(before)
	if err := mutator(&current); err != nil {
		return Port{}, err
	}
	current.ID = before.ID
	current.SwitchID = before.SwitchID
	current.Number = before.Number
	sw.Ports[pi] = current
	sw.UpdatedAt = tx.now
	tx.state.switches = replaced(tx.state.switches, i, sw)
	tx.recordChange(Change{Entity: domain.EntityPort, Action: domain.ActionUpdate, Before: before, After: clonePort(current)})
	return clonePort(current), nil
}

// CreateCircuit stores a new circuit for an existing client.
func (tx *transaction) CreateCircuit(c Circuit) (Circuit, error) {
	if indexOf(tx.state.clients, c.ClientID, clientKey) < 0 {
		return Circuit{}, domain.NotFound(domain.EntityClient, c.ClientID)
	}
	if c.ID == "" {
		c.ID = tx.store.newID()
	}
	if indexOf(tx.state.circuits, c.ID, circuitKey) >= 0 {
		return Circuit{}, alreadyExists(domain.EntityCircuit, c.ID)
	}
	elements, err := tx.normalizeElements(c.Elements)
	if err != nil {
		return Circuit{}, err
	}
	c.Elements = elements
	tx.state.circuits = appended(tx.state.circuits, c)
	tx.recordChange(Change{Entity: domain.EntityCircuit, Action: domain.ActionCreate, After: cloneCircuit(c)})
	return cloneCircuit(c), nil
}

// UpdateCircuit mutates a circuit using the provided mutator function.
func (tx *transaction) UpdateCircuit(id string, mutator func(*Circuit) error) (Circuit, error) {
	i := indexOf(tx.state.circuits, id, circuitKey)
	if i < 0 {
		return Circuit{}, domain.NotFound(domain.EntityCircuit, id)
	}
	before := tx.state.circuits[i]
	current := cloneCircuit(before)
	if err := mutator(&current); err != nil {
		return Circuit{}, err
	}
	current.ID = id
	if current.ClientID != before.ClientID && indexOf(tx.state.clients, current.ClientID, clientKey) < 0 {
		return Circuit{}, domain.NotFound(domain.EntityClient, current.ClientID)
	}
	elements, err := tx.normalizeElements(current.Elements)
	if err != nil {
		return Circuit{}, err
	}
	current.Elements = elements
	tx.state.circuits = replaced(tx.state.circuits, i, current)
	tx.recordChange(Change{Entity: domain.EntityCircuit, Action: domain.ActionUpdate, Before: cloneCircuit(before), After: cloneCircuit(current)})
	return cloneCircuit(current), nil
}

// DeleteCircuit removes a circuit.
func (tx *transaction) DeleteCircuit(id string) error {
	i := indexOf(tx.state.circuits, id, circuitKey)
	if i < 0 {
		return domain.NotFound(domain.EntityCircuit, id)
	}
	before := tx.state.circuits[i]
	tx.state.circuits = removed(tx.state.circuits, i)
	tx.recordChange(Change{Entity: domain.EntityCircuit, Action: domain.ActionDelete, Before: cloneCircuit(before)})
	return nil
}

func (tx *transaction) normalizeElements(elements []CircuitElement) ([]CircuitElement, error) {
	out := make([]CircuitElement, len(elements))
	for i, e := range elements {
		if !e.Type.Valid() {
			return nil, domain.Invalid(domain.EntityCircuit, "tipo_elemento", "unknown element type %q", e.Type)
		}
		if e.ID == "" {
			e.ID = tx.store.newID()
		}
		if e.Order == 0 {
			e.Order = i + 1
		}
		out[i] = e
	}
	return out, nil
}

// CreateTechnician stores a new technician.
func (tx *transaction) CreateTechnician(t Technician) (Technician, error) {
	if t.ID == "" {
		t.ID = tx.store.newID()
	}
	if indexOf(tx.state.technicians, t.ID, technicianKey) >= 0 {
		return Technician{}, alreadyExists(domain.EntityTechnician, t.ID)
	}
	tx.state.technicians = appended(tx.state.technicians, t)
	tx.recordChange(Change{Entity: domain.EntityTechnician, Action: domain.ActionCreate, After: t})
	return t, nil
}

// UpdateTechnician mutates a technician using the provided mutator function.
func (tx *transaction) UpdateTechnician(id string, mutator func(*Technician) error) (Technician, error) {
	i := indexOf(tx.state.technicians, id, technicianKey)
	if i < 0 {
		return Technician{}, domain.NotFound(domain.EntityTechnician, id)
	}
	before := tx.state.technicians[i]
	current := before
	if err := mutator(&current); err != nil {
		return Technician{}, err
	}
	current.ID = id
	tx.state.technicians = replaced(tx.state.technicians, i, current)
	tx.recordChange(Change{Entity: domain.EntityTechnician, Action: domain.ActionUpdate, Before: before, After: current})
	return current, nil
}

// DeleteTechnician removes a technician.
func (tx *transaction) DeleteTechnician(id string) error {
	i := indexOf(tx.state.technicians, id, technicianKey)
	if i < 0 {
		return domain.NotFound(domain.EntityTechnician, id)
	}
	before := tx.state.technicians[i]
	tx.state.technicians = removed(tx.state.technicians, i)
	tx.recordChange(Change{Entity: domain.EntityTechnician, Action: domain.ActionDelete, Before: before})
	return nil
}

// CreateTicket opens a ticket for an existing client. An empty technician id
// leaves the ticket unassigned.
func (tx *transaction) CreateTicket(t Ticket) (Ticket, error) {
	if indexOf(tx.state.clients, t.ClientID, clientKey) < 0 {
		return Ticket{}, domain.NotFound(domain.EntityClient, t.ClientID)
	}
	if t.TechnicianID != "" && indexOf(tx.state.technicians, t.TechnicianID, technicianKey) < 0 {
		return Ticket{}, domain.NotFound(domain.EntityTechnician, t.TechnicianID)
	}
	if t.ID == "" {
		t.ID = tx.store.newID()
	}
	if indexOf(tx.state.tickets, t.ID, ticketKey) >= 0 {
		return Ticket{}, alreadyExists(domain.EntityTicket, t.ID)
	}
	if t.Status == "" {
		t.Status = domain.TicketOpen
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityNormal
	}
	if err := validateTicket(t); err != nil {
		return Ticket{}, err
	}
	if t.OpenedAt.IsZero() {
		t.OpenedAt = tx.now
	}
	t.StartedAt = nil
	t.ClosedAt = nil
	stampStatus(&t, domain.TicketOpen, tx.now)
	tx.state.tickets = appended(tx.state.tickets, t)
	tx.recordChange(Change{Entity: domain.EntityTicket, Action: domain.ActionCreate, After: cloneTicket(t)})
	return cloneTicket(t), nil
}

// UpdateTicket mutates a ticket. Status timestamps follow the status
// transition; the client and opening time are fixed.
func (tx *transaction) UpdateTicket(id string, mutator func(*Ticket) error) (Ticket, error) {
	i := indexOf(tx.state.tickets, id, ticketKey)
	if i < 0 {
		return Ticket{}, domain.NotFound(domain.EntityTicket, id)
	}
	before := tx.state.tickets[i]
	current := cloneTicket(before)
	if err := mutator(&current); err != nil {
		return Ticket{}, err
	}
	current.ID = id
	current.ClientID = before.ClientID
	current.OpenedAt = before.OpenedAt
	current.StartedAt = before.StartedAt
	current.ClosedAt = before.ClosedAt
	if err := validateTicket(current); err != nil {
		return Ticket{}, err
	}
	if current.TechnicianID != before.TechnicianID && current.TechnicianID != "" &&
		indexOf(tx.state.technicians, current.TechnicianID, technicianKey) < 0 {
		return Ticket{}, domain.NotFound(domain.EntityTechnician, current.TechnicianID)
	}
	stampStatus(&current, before.Status, tx.now)
	current = cloneTicket(current)
	tx.state.tickets = replaced(tx.state.tickets, i, current)
	tx.recordChange(Change{Entity: domain.EntityTicket, Action: domain.ActionUpdate, Before: cloneTicket(before), After: cloneTicket(current)})
	return cloneTicket(current), nil
}

// DeleteTicket removes a ticket.
func (tx *transaction) DeleteTicket(id string) error {
	i := indexOf(tx.state.tickets, id, ticketKey)
	if i < 0 {
		return domain.NotFound(domain.EntityTicket, id)
	}
	before := tx.state.tickets[i]
	tx.state.tickets = removed(tx.state.tickets, i)
	tx.recordChange(Change{Entity: domain.EntityTicket, Action: domain.ActionDelete, Before: cloneTicket(before)})
	return nil
}

func validateTicket(t Ticket) error {
	if !t.Status.Valid() {
		return domain.Invalid(domain.EntityTicket, "status", "unknown status %q", t.Status)
	}
	if !t.Priority.Valid() {
		return domain.Invalid(domain.EntityTicket, "prioridade", "unknown priority %q", t.Priority)
	}
	return nil
}

// stampStatus records execution start on the first move into execution and
// the closing time on every move to closed. Leaving closed clears it.
func stampStatus(t *Ticket, previous domain.TicketStatus, now time.Time) {
	if t.Status == previous {
		return
	}
	switch t.Status {
	case domain.TicketInProgress:
		if t.StartedAt == nil {
			ts := now
			t.StartedAt = &ts
		}
		t.ClosedAt = nil
	case domain.TicketClosed:
		ts := now
		t.ClosedAt = &ts
	default:
		t.ClosedAt = nil
	}
}
