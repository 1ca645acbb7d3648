package domain

// Patches carry the fields supplied by a partial update. A nil field was not
// supplied and keeps its stored value. Applying a patch is a shallow merge:
// nested collections (cables, fibers, ports) are never touched.

// ClientPatch is a partial update of a Client.
type ClientPatch struct {
	Name        *string  `json:"nome,omitempty"`
	CompanyName *string  `json:"razao_social,omitempty"`
	Document    *string  `json:"documento,omitempty"`
	Contact     *Contact `json:"contato,omitempty"`
	Address     *string  `json:"endereco,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Notes       *string  `json:"observacoes,omitempty"`
	Photo       *string  `json:"foto,omitempty"`
}

// Apply merges the supplied fields into c.
func (p ClientPatch) Apply(c *Client) {
	set(&c.Name, p.Name)
	set(&c.CompanyName, p.CompanyName)
	set(&c.Document, p.Document)
	set(&c.Contact, p.Contact)
	set(&c.Address, p.Address)
	set(&c.Latitude, p.Latitude)
	set(&c.Longitude, p.Longitude)
	set(&c.Notes, p.Notes)
	set(&c.Photo, p.Photo)
}

// BoxPatch is a partial update of a Box's own fields.
type BoxPatch struct {
	Code        *string  `json:"codigo,omitempty"`
	Description *string  `json:"descricao,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Address     *string  `json:"endereco,omitempty"`
	Photo       *string  `json:"foto,omitempty"`
}

// Apply merges the supplied fields into b.
func (p BoxPatch) Apply(b *Box) {
	set(&b.Code, p.Code)
	set(&b.Description, p.Description)
	set(&b.Latitude, p.Latitude)
	set(&b.Longitude, p.Longitude)
	set(&b.Address, p.Address)
	set(&b.Photo, p.Photo)
}

// SwitchPatch is a partial update of a Switch's own fields. TotalPorts is
// accepted so callers may echo a full record back, but the port count of an
// existing switch never changes.
type SwitchPatch struct {
	Name         *string  `json:"nome,omitempty"`
	Model        *string  `json:"modelo,omitempty"`
	ManagementIP *string  `json:"ip_gestao,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Photo        *string  `json:"foto,omitempty"`
	TotalPorts   *int     `json:"total_portas,omitempty"`
}

// Apply merges the supplied fields into s.
func (p SwitchPatch) Apply(s *Switch) {
	set(&s.Name, p.Name)
	set(&s.Model, p.Model)
	set(&s.ManagementIP, p.ManagementIP)
	set(&s.Latitude, p.Latitude)
	set(&s.Longitude, p.Longitude)
	set(&s.Photo, p.Photo)
}

// FiberPatch is a partial update of a Fiber. An empty ClientID unassigns the
// strand.
type FiberPatch struct {
	ClientID *string `json:"cliente_id,omitempty"`
	Notes    *string `json:"observacoes,omitempty"`
}

// Apply merges the supplied fields into f.
func (p FiberPatch) Apply(f *Fiber) {
	setRef(&f.ClientID, p.ClientID)
	set(&f.Notes, p.Notes)
}

// PortPatch is a partial update of a Port. An empty ClientID unassigns the port.
type PortPatch struct {
	VLAN     *string `json:"vlan,omitempty"`
	ClientIP *string `json:"ip_cliente,omitempty"`
	ClientID *string `json:"cliente_id,omitempty"`
	Notes    *string `json:"observacoes,omitempty"`
}

// Apply merges the supplied fields into p.
func (p PortPatch) Apply(port *Port) {
	set(&port.VLAN, p.VLAN)
	set(&port.ClientIP, p.ClientIP)
	setRef(&port.ClientID, p.ClientID)
	set(&port.Notes, p.Notes)
}

// CircuitPatch is a partial update of a Circuit. Elements, when supplied,
// replace the whole path.
type CircuitPatch struct {
	ClientID    *string           `json:"cliente_id,omitempty"`
	Description *string           `json:"descricao,omitempty"`
	Elements    *[]CircuitElement `json:"elementos,omitempty"`
}

// Apply merges the supplied fields into c.
func (p CircuitPatch) Apply(c *Circuit) {
	set(&c.ClientID, p.ClientID)
	set(&c.Description, p.Description)
	if p.Elements != nil {
		c.Elements = append([]CircuitElement(nil), (*p.Elements)...)
	}
}

// TechnicianPatch is a partial update of a Technician.
type TechnicianPatch struct {
	Name  *string `json:"nome,omitempty"`
	Phone *string `json:"telefone,omitempty"`
	Email *string `json:"email,omitempty"`
	Notes *string `json:"observacoes,omitempty"`
}

// Apply merges the supplied fields into t.
func (p TechnicianPatch) Apply(t *Technician) {
	set(&t.Name, p.Name)
	set(&t.Phone, p.Phone)
	set(&t.Email, p.Email)
	set(&t.Notes, p.Notes)
}

// TicketPatch is a partial update of a Ticket. Status timestamps are
// maintained by the store, not by the patch.
type TicketPatch struct {
	TechnicianID *string         `json:"tecnico_id,omitempty"`
	Title        *string         `json:"titulo,omitempty"`
	Description  *string         `json:"descricao,omitempty"`
	Status       *TicketStatus   `json:"status,omitempty"`
	Priority     *TicketPriority `json:"prioridade,omitempty"`
	Materials    *string         `json:"materiais_utilizados,omitempty"`
	Notes        *string         `json:"observacoes,omitempty"`
	PhotoBefore  *string         `json:"foto_antes,omitempty"`
	PhotoAfter   *string         `json:"foto_depois,omitempty"`
}

// Apply merges the supplied fields into t.
func (p TicketPatch) Apply(t *Ticket) {
	set(&t.TechnicianID, p.TechnicianID)
	set(&t.Title, p.Title)
	set(&t.Description, p.Description)
	set(&t.Status, p.Status)
	set(&t.Priority, p.Priority)
	set(&t.Materials, p.Materials)
	set(&t.Notes, p.Notes)
	set(&t.PhotoBefore, p.PhotoBefore)
	set(&t.PhotoAfter, p.PhotoAfter)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setRef(dst **string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		*dst = nil
		return
	}
	id := *v
	*dst = &id
}

// Ref returns a pointer to a copy of s, or nil when s is empty.
func Ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
