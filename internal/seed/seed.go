// Package seed populates an inventory with a reproducible demo network.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"fibernet/internal/core"
	"fibernet/pkg/domain"
)

// Options size the generated network.
type Options struct {
	Seed     uint64
	Clients  int
	Boxes    int
	Switches int
}

// DefaultOptions mirrors the demo data set shipped with the web client.
func DefaultOptions() Options {
	return Options{Seed: 1, Clients: 25, Boxes: 8, Switches: 3}
}

// Summary counts the records written by Run.
type Summary struct {
	Clients        int
	Boxes          int
	Switches       int
	Circuits       int
	AssignedFibers int
	AssignedPorts  int
}

var (
	companyPrefixes = []string{"Comercial", "Distribuidora", "Padaria", "Clínica", "Escritório", "Mercado", "Oficina", "Colégio"}
	companyNames    = []string{"Aurora", "Boa Vista", "Carioca", "Guanabara", "Laranjeiras", "Flamengo", "Botafogo", "Tijuca", "Lapa", "Urca"}
	streets         = []string{"Rua do Catete", "Rua das Laranjeiras", "Avenida Atlântica", "Rua Voluntários da Pátria", "Rua São Clemente", "Avenida Rio Branco", "Rua da Assembleia", "Rua Conde de Bonfim"}
	cities          = []string{"Centro", "Tijuca", "Botafogo", "Méier", "Barra", "Lapa"}
	switchModels    = []string{"Cisco Catalyst 2960", "Juniper EX2300", "HPE Aruba 2530"}
)

type generator struct {
	rng *rand.Rand
	log *zap.Logger
}

// Run writes the demo network through svc. The same seed always produces the
// same names, sizes and assignments; ids come from the store.
func Run(ctx context.Context, svc *core.Service, opts Options, log *zap.Logger) (Summary, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &generator{rng: rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)), log: log}
	var sum Summary

	clients := make([]core.Client, 0, opts.Clients)
	for i := 0; i < opts.Clients; i++ {
		c, _, err := svc.AddClient(ctx, g.client())
		if err != nil {
			return sum, fmt.Errorf("add client %d: %w", i, err)
		}
		clients = append(clients, c)
		sum.Clients++
	}

	boxes := make([]core.Box, 0, opts.Boxes)
	for i := 0; i < opts.Boxes; i++ {
		b, _, err := svc.AddBox(ctx, g.box(i))
		if err != nil {
			return sum, fmt.Errorf("add box %d: %w", i, err)
		}
		boxes = append(boxes, b)
		sum.Boxes++
		if len(clients) == 0 || len(b.InputCables) == 0 {
			continue
		}
		cable := b.InputCables[0]
		fiber := cable.Fibers[g.rng.IntN(len(cable.Fibers))]
		client := clients[g.rng.IntN(len(clients))]
		notes := "Conexão principal " + client.Name
		if _, _, err := svc.UpdateFiberInBox(ctx, b.ID, cable.ID, fiber.ID, core.FiberPatch{ClientID: &client.ID, Notes: &notes}); err != nil {
			return sum, fmt.Errorf("assign fiber in box %s: %w", b.Code, err)
		}
		sum.AssignedFibers++
	}

	switches := make([]core.Switch, 0, opts.Switches)
	for i := 0; i < opts.Switches; i++ {
		sw, _, err := svc.AddSwitch(ctx, g.switchAt(i))
		if err != nil {
			return sum, fmt.Errorf("add switch %d: %w", i, err)
		}
		switches = append(switches, sw)
		sum.Switches++
		if len(clients) == 0 {
			continue
		}
		port := sw.Ports[g.rng.IntN(len(sw.Ports))]
		client := clients[g.rng.IntN(len(clients))]
		patch := core.PortPatch{
			ClientID: &client.ID,
			VLAN:     ptr(fmt.Sprintf("%d", 100+g.rng.IntN(101))),
			ClientIP: ptr(g.ipv4()),
			Notes:    ptr("Cliente " + client.Name),
		}
		if _, _, err := svc.UpdatePort(ctx, sw.ID, port.ID, patch); err != nil {
			return sum, fmt.Errorf("assign port on %s: %w", sw.Name, err)
		}
		sum.AssignedPorts++
	}

	if len(clients) > 0 && len(switches) > 0 && len(boxes) > 1 {
		client := clients[0]
		circuit := core.Circuit{
			ClientID:    client.ID,
			Description: "Circuito para " + client.Name,
			Elements: []core.CircuitElement{
				{Type: domain.ElementSwitch, ElementID: switches[0].ID, Order: 1},
				{Type: domain.ElementBox, ElementID: boxes[0].ID, Order: 2},
				{Type: domain.ElementBox, ElementID: boxes[1].ID, Order: 3},
				{Type: domain.ElementClient, ElementID: client.ID, Order: 4},
			},
		}
		if _, _, err := svc.AddCircuit(ctx, circuit); err != nil {
			return sum, fmt.Errorf("add circuit: %w", err)
		}
		sum.Circuits++
	}

	log.Info("demo network seeded",
		zap.Int("clients", sum.Clients),
		zap.Int("boxes", sum.Boxes),
		zap.Int("switches", sum.Switches),
		zap.Int("circuits", sum.Circuits),
	)
	return sum, nil
}

func (g *generator) client() core.Client {
	name := pick(g.rng, companyPrefixes) + " " + pick(g.rng, companyNames)
	return core.Client{
		Name:      name,
		Address:   g.address(),
		Latitude:  g.between(-22.92, -22.90),
		Longitude: g.between(-43.22, -43.17),
		Contact: core.Contact{
			Email: fmt.Sprintf("contato%d@example.com.br", g.rng.IntN(10000)),
			Phone: fmt.Sprintf("(21) 9%04d-%04d", g.rng.IntN(10000), g.rng.IntN(10000)),
		},
	}
}

func (g *generator) box(i int) core.Box {
	in := pick(g.rng, domain.CableFiberCounts)
	out := pick(g.rng, domain.CableFiberCounts)
	return core.Box{
		Code:        fmt.Sprintf("CX-%03d", i),
		Description: "Caixa de Emenda " + pick(g.rng, streets),
		Latitude:    g.between(-22.92, -22.90),
		Longitude:   g.between(-43.22, -43.17),
		Address:     g.address(),
		Photo:       fmt.Sprintf("https://picsum.photos/seed/%d/800/400", i),
		InputCables: []core.Cable{{
			Side:           domain.SideInput,
			FiberCount:     in,
			Identification: fmt.Sprintf("Cabo Principal %dFO", in),
		}},
		OutputCables: []core.Cable{{
			Side:           domain.SideOutput,
			FiberCount:     out,
			Identification: "Derivação " + pick(g.rng, streets),
		}},
	}
}

func (g *generator) switchAt(i int) core.Switch {
	return core.Switch{
		Name:         fmt.Sprintf("SW-%02d %s", i, pick(g.rng, cities)),
		Model:        pick(g.rng, switchModels),
		ManagementIP: g.ipv4(),
		Latitude:     g.between(-22.92, -22.90),
		Longitude:    g.between(-43.22, -43.17),
		Photo:        fmt.Sprintf("https://picsum.photos/seed/sw%d/800/400", i),
		TotalPorts:   pick(g.rng, domain.SwitchPortCounts),
	}
}

func (g *generator) address() string {
	return fmt.Sprintf("%s, %d", pick(g.rng, streets), 1+g.rng.IntN(2000))
}

func (g *generator) ipv4() string {
	return fmt.Sprintf("10.%d.%d.%d", g.rng.IntN(256), g.rng.IntN(256), 1+g.rng.IntN(254))
}

func (g *generator) between(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func pick[T any](rng *rand.Rand, values []T) T {
	return values[rng.IntN(len(values))]
}

func ptr[T any](v T) *T { return &v }
