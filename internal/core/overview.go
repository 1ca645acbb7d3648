package core

import (
	"context"

	"fibernet/pkg/domain"
)

// Counts summarizes the inventory.
type Counts struct {
	Clients        int `json:"clientes"`
	Boxes          int `json:"caixas"`
	Cables         int `json:"cabos"`
	Fibers         int `json:"fibras"`
	AssignedFibers int `json:"fibras_atribuidas"`
	Switches       int `json:"switches"`
	Ports          int `json:"portas"`
	AssignedPorts  int `json:"portas_atribuidas"`
	Circuits       int `json:"circuitos"`
	OpenTickets    int `json:"chamados_abertos"`
}

// Marker is a point drawn on the network map.
type Marker struct {
	Kind      domain.EntityType `json:"tipo"`
	ID        string            `json:"id"`
	Label     string            `json:"nome"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
}

// Overview is the dashboard summary: inventory counts and map markers for
// switches, boxes and clients.
type Overview struct {
	Counts  Counts   `json:"totais"`
	Markers []Marker `json:"marcadores"`
}

// Overview computes the dashboard summary from one consistent snapshot.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	var out Overview
	err := s.read(ctx, "overview", s.latency.Read, func(v TransactionView) error {
		out = buildOverview(v)
		return nil
	})
	return out, err
}

func buildOverview(v TransactionView) Overview {
	var o Overview
	o.Markers = []Marker{}
	switches := v.ListSwitches()
	boxes := v.ListBoxes()
	clients := v.ListClients()

	o.Counts.Switches = len(switches)
	for _, sw := range switches {
		o.Counts.Ports += len(sw.Ports)
		for _, p := range sw.Ports {
			if p.ClientID != nil {
				o.Counts.AssignedPorts++
			}
		}
		o.Markers = append(o.Markers, Marker{Kind: domain.EntitySwitch, ID: sw.ID, Label: sw.Name, Latitude: sw.Latitude, Longitude: sw.Longitude})
	}
	o.Counts.Boxes = len(boxes)
	for _, b := range boxes {
		for _, c := range b.Cables() {
			o.Counts.Cables++
			o.Counts.Fibers += len(c.Fibers)
			for _, f := range c.Fibers {
				if f.ClientID != nil {
					o.Counts.AssignedFibers++
				}
			}
		}
		o.Markers = append(o.Markers, Marker{Kind: domain.EntityBox, ID: b.ID, Label: b.Code, Latitude: b.Latitude, Longitude: b.Longitude})
	}
	o.Counts.Clients = len(clients)
	for _, c := range clients {
		o.Markers = append(o.Markers, Marker{Kind: domain.EntityClient, ID: c.ID, Label: c.Name, Latitude: c.Latitude, Longitude: c.Longitude})
	}
	o.Counts.Circuits = len(v.ListCircuits())
	for _, t := range v.ListTickets() {
		if t.Status != domain.TicketClosed {
			o.Counts.OpenTickets++
		}
	}
	return o
}
