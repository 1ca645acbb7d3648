package api

import "fibernet/pkg/domain"

// Request bodies carry the required-field validation of the API. Stored
// records only enforce enumerations.

type clientRequest struct {
	Name        string         `json:"nome" binding:"required"`
	CompanyName string         `json:"razao_social"`
	Document    string         `json:"documento"`
	Contact     domain.Contact `json:"contato"`
	Address     string         `json:"endereco" binding:"required"`
	Latitude    *float64       `json:"latitude" binding:"required,latitude"`
	Longitude   *float64       `json:"longitude" binding:"required,longitude"`
	Notes       string         `json:"observacoes"`
	Photo       string         `json:"foto"`
}

func (r clientRequest) client() domain.Client {
	return domain.Client{
		Name:        r.Name,
		CompanyName: r.CompanyName,
		Document:    r.Document,
		Contact:     r.Contact,
		Address:     r.Address,
		Latitude:    *r.Latitude,
		Longitude:   *r.Longitude,
		Notes:       r.Notes,
		Photo:       r.Photo,
	}
}

type cableRequest struct {
	FiberCount     int    `json:"quantidade_fibras" binding:"required,oneof=12 24 36 48 60 72 96 120 144"`
	Identification string `json:"identificacao"`
	Notes          string `json:"observacoes"`
}

func (r cableRequest) cable(side domain.Side) domain.Cable {
	return domain.Cable{Side: side, FiberCount: r.FiberCount, Identification: r.Identification, Notes: r.Notes}
}

type addCableRequest struct {
	cableRequest
	Side domain.Side `json:"lado" binding:"required,oneof=entrada saida"`
}

type boxRequest struct {
	Code         string         `json:"codigo" binding:"required"`
	Description  string         `json:"descricao"`
	Latitude     *float64       `json:"latitude" binding:"required,latitude"`
	Longitude    *float64       `json:"longitude" binding:"required,longitude"`
	Address      string         `json:"endereco"`
	Photo        string         `json:"foto"`
	InputCables  []cableRequest `json:"cabos_entrada" binding:"dive"`
	OutputCables []cableRequest `json:"cabos_saida" binding:"dive"`
}

func (r boxRequest) box() domain.Box {
	b := domain.Box{
		Code:        r.Code,
		Description: r.Description,
		Latitude:    *r.Latitude,
		Longitude:   *r.Longitude,
		Address:     r.Address,
		Photo:       r.Photo,
	}
	for _, c := range r.InputCables {
		b.InputCables = append(b.InputCables, c.cable(domain.SideInput))
	}
	for _, c := range r.OutputCables {
		b.OutputCables = append(b.OutputCables, c.cable(domain.SideOutput))
	}
	return b
}

type switchRequest struct {
	Name         string   `json:"nome" binding:"required"`
	Model        string   `json:"modelo"`
	ManagementIP string   `json:"ip_gestao" binding:"omitempty,ip"`
	Latitude     *float64 `json:"latitude" binding:"required,latitude"`
	Longitude    *float64 `json:"longitude" binding:"required,longitude"`
	Photo        string   `json:"foto"`
	TotalPorts   int      `json:"total_portas" binding:"required,oneof=8 12 16 24 48"`
}

func (r switchRequest) sw() domain.Switch {
	return domain.Switch{
		Name:         r.Name,
		Model:        r.Model,
		ManagementIP: r.ManagementIP,
		Latitude:     *r.Latitude,
		Longitude:    *r.Longitude,
		Photo:        r.Photo,
		TotalPorts:   r.TotalPorts,
	}
}

type elementRequest struct {
	Type      domain.ElementType `json:"tipo_elemento" binding:"required,oneof=switch caixa cliente"`
	ElementID string             `json:"elemento_id" binding:"required"`
	Order     int                `json:"ordem" binding:"gte=0"`
}

type circuitRequest struct {
	ClientID    string           `json:"cliente_id" binding:"required"`
	Description string           `json:"descricao"`
	Elements    []elementRequest `json:"elementos" binding:"dive"`
}

func elements(in []elementRequest) []domain.CircuitElement {
	out := make([]domain.CircuitElement, 0, len(in))
	for _, e := range in {
		out = append(out, domain.CircuitElement{Type: e.Type, ElementID: e.ElementID, Order: e.Order})
	}
	return out
}

func (r circuitRequest) circuit() domain.Circuit {
	return domain.Circuit{ClientID: r.ClientID, Description: r.Description, Elements: elements(r.Elements)}
}

type circuitPatchRequest struct {
	ClientID    *string           `json:"cliente_id"`
	Description *string           `json:"descricao"`
	Elements    *[]elementRequest `json:"elementos" binding:"omitempty,dive"`
}

func (r circuitPatchRequest) patch() domain.CircuitPatch {
	p := domain.CircuitPatch{ClientID: r.ClientID, Description: r.Description}
	if r.Elements != nil {
		els := elements(*r.Elements)
		p.Elements = &els
	}
	return p
}

type technicianRequest struct {
	Name  string `json:"nome" binding:"required"`
	Phone string `json:"telefone"`
	Email string `json:"email" binding:"omitempty,email"`
	Notes string `json:"observacoes"`
}

func (r technicianRequest) technician() domain.Technician {
	return domain.Technician{Name: r.Name, Phone: r.Phone, Email: r.Email, Notes: r.Notes}
}

type ticketRequest struct {
	ClientID     string                `json:"cliente_id" binding:"required"`
	TechnicianID string                `json:"tecnico_id"`
	Title        string                `json:"titulo" binding:"required"`
	Description  string                `json:"descricao"`
	Status       domain.TicketStatus   `json:"status"`
	Priority     domain.TicketPriority `json:"prioridade" binding:"omitempty,oneof=baixa normal alta"`
	Materials    string                `json:"materiais_utilizados"`
	Notes        string                `json:"observacoes"`
}

func (r ticketRequest) ticket() domain.Ticket {
	return domain.Ticket{
		ClientID:     r.ClientID,
		TechnicianID: r.TechnicianID,
		Title:        r.Title,
		Description:  r.Description,
		Status:       r.Status,
		Priority:     r.Priority,
		Materials:    r.Materials,
		Notes:        r.Notes,
	}
}

type exportRequest struct {
	RequestedBy string `json:"requested_by"`
}
