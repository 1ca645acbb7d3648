// Package domain defines the persistent records of the fiber network inventory,
// the layout generators for cables and switches, and the rule evaluation
// primitives used by fibernet stores.
package domain

import "time"

// EntityType identifies the type of record stored in the inventory.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	EntityClient     EntityType = "cliente"
	EntityBox        EntityType = "caixa"
	EntityCable      EntityType = "cabo"
	EntityFiber      EntityType = "fibra"
	EntitySwitch     EntityType = "switch"
	EntityPort       EntityType = "porta"
	EntityCircuit    EntityType = "circuito"
	EntityTechnician EntityType = "tecnico"
	EntityTicket     EntityType = "chamado"
)

// Side is the face of a box a cable is attached to.
type Side string

// Cable sides.
const (
	SideInput  Side = "entrada"
	SideOutput Side = "saida"
)

// Valid reports whether s is a known cable side.
func (s Side) Valid() bool {
	return s == SideInput || s == SideOutput
}

// ElementType tags the record a circuit element points at.
type ElementType string

// Circuit element types.
const (
	ElementSwitch ElementType = "switch"
	ElementBox    ElementType = "caixa"
	ElementClient ElementType = "cliente"
)

// Valid reports whether t is a known circuit element type.
func (t ElementType) Valid() bool {
	switch t {
	case ElementSwitch, ElementBox, ElementClient:
		return true
	}
	return false
}

// TicketStatus enumerates service ticket workflow states.
type TicketStatus string

// Ticket statuses.
const (
	TicketOpen       TicketStatus = "aberto"
	TicketInProgress TicketStatus = "em execução"
	TicketPending    TicketStatus = "pendente"
	TicketClosed     TicketStatus = "fechado"
)

// Valid reports whether s is a known ticket status.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketPending, TicketClosed:
		return true
	}
	return false
}

// TicketPriority ranks service tickets.
type TicketPriority string

// Ticket priorities.
const (
	PriorityLow    TicketPriority = "baixa"
	PriorityNormal TicketPriority = "normal"
	PriorityHigh   TicketPriority = "alta"
)

// Valid reports whether p is a known ticket priority.
func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// Contact holds the ways of reaching a client.
type Contact struct {
	Phone string `json:"telefone"`
	Email string `json:"email"`
}

// Client is a customer premises terminated on the network.
type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"nome"`
	CompanyName string    `json:"razao_social,omitempty"`
	Document    string    `json:"documento,omitempty"`
	Contact     Contact   `json:"contato"`
	Address     string    `json:"endereco"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Notes       string    `json:"observacoes,omitempty"`
	Photo       string    `json:"foto,omitempty"`
	CreatedAt   time.Time `json:"data_criacao"`
	UpdatedAt   time.Time `json:"data_atualizacao"`
}

// Box is a splice/junction box housing input and output cables.
type Box struct {
	ID           string    `json:"id"`
	Code         string    `json:"codigo"`
	Description  string    `json:"descricao"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Address      string    `json:"endereco,omitempty"`
	Photo        string    `json:"foto,omitempty"`
	CreatedAt    time.Time `json:"data_criacao"`
	UpdatedAt    time.Time `json:"data_atualizacao"`
	InputCables  []Cable   `json:"cabos_entrada"`
	OutputCables []Cable   `json:"cabos_saida"`
}

// Cables returns the input cables followed by the output cables.
func (b Box) Cables() []Cable {
	out := make([]Cable, 0, len(b.InputCables)+len(b.OutputCables))
	out = append(out, b.InputCables...)
	return append(out, b.OutputCables...)
}

// Cable is a physical cable with a fixed strand count attached to one side of a box.
type Cable struct {
	ID             string  `json:"id"`
	BoxID          string  `json:"caixa_id"`
	Side           Side    `json:"lado"`
	OrderOnSide    int     `json:"ordem_no_lado"`
	FiberCount     int     `json:"quantidade_fibras"`
	Identification string  `json:"identificacao"`
	Notes          string  `json:"observacoes,omitempty"`
	Fibers         []Fiber `json:"fibras"`
}

// Fiber is one strand within a cable, optionally terminated to a client.
type Fiber struct {
	ID            string  `json:"id"`
	CableID       string  `json:"cabo_id"`
	GroupNumber   int     `json:"numero_conjunto"`
	GroupColor    string  `json:"cor_conjunto"`
	PositionInSet int     `json:"numero_fibra_no_conjunto"`
	Color         string  `json:"cor_fibra"`
	ClientID      *string `json:"cliente_id,omitempty"`
	Notes         string  `json:"observacoes,omitempty"`
}

// Switch is a network switch with a fixed number of physical ports.
type Switch struct {
	ID           string    `json:"id"`
	Name         string    `json:"nome"`
	Model        string    `json:"modelo"`
	ManagementIP string    `json:"ip_gestao"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Photo        string    `json:"foto,omitempty"`
	TotalPorts   int       `json:"total_portas"`
	CreatedAt    time.Time `json:"data_criacao"`
	UpdatedAt    time.Time `json:"data_atualizacao"`
	Ports        []Port    `json:"portas"`
}

// Port is one physical port of a switch.
type Port struct {
	ID       string  `json:"id"`
	SwitchID string  `json:"switch_id"`
	Number   int     `json:"numero_porta"`
	VLAN     string  `json:"vlan,omitempty"`
	ClientIP string  `json:"ip_cliente,omitempty"`
	ClientID *string `json:"cliente_id,omitempty"`
	Notes    string  `json:"observacoes,omitempty"`
}

// CircuitElement is one hop of a circuit path.
type CircuitElement struct {
	ID        string      `json:"id"`
	Type      ElementType `json:"tipo_elemento"`
	ElementID string      `json:"elemento_id"`
	Order     int         `json:"ordem"`
}

// Circuit is the ordered path from the network edge to a client's premises.
type Circuit struct {
	ID          string           `json:"id"`
	ClientID    string           `json:"cliente_id"`
	Description string           `json:"descricao"`
	Elements    []CircuitElement `json:"elementos"`
}

// Technician is a field technician that services tickets.
type Technician struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Phone string `json:"telefone"`
	Email string `json:"email"`
	Notes string `json:"observacoes,omitempty"`
}

// Ticket is a service request opened for a client.
type Ticket struct {
	ID           string         `json:"id"`
	ClientID     string         `json:"cliente_id"`
	TechnicianID string         `json:"tecnico_id"`
	Title        string         `json:"titulo"`
	Description  string         `json:"descricao"`
	Status       TicketStatus   `json:"status"`
	Priority     TicketPriority `json:"prioridade"`
	OpenedAt     time.Time      `json:"data_abertura"`
	StartedAt    *time.Time     `json:"data_inicio_execucao,omitempty"`
	ClosedAt     *time.Time     `json:"data_fechamento,omitempty"`
	Materials    string         `json:"materiais_utilizados,omitempty"`
	Notes        string         `json:"observacoes,omitempty"`
	PhotoBefore  string         `json:"foto_antes,omitempty"`
	PhotoAfter   string         `json:"foto_depois,omitempty"`
}

// ConnectedFiber is a fiber annotated with the box and cable that own it.
type ConnectedFiber struct {
	Fiber
	Box   BoxRef   `json:"caixa"`
	Cable CableRef `json:"cabo"`
}

// BoxRef identifies a box for display.
type BoxRef struct {
	ID   string `json:"id"`
	Code string `json:"codigo"`
}

// CableRef identifies a cable for display.
type CableRef struct {
	ID             string `json:"id"`
	Identification string `json:"identificacao"`
	Side           Side   `json:"lado"`
}

// ConnectedPort is a port annotated with the switch that owns it.
type ConnectedPort struct {
	Port
	Switch SwitchRef `json:"switch"`
}

// SwitchRef identifies a switch for display.
type SwitchRef struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported CRUD operations.
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)
