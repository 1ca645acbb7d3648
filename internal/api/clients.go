package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fibernet/pkg/domain"
)

// ListClients handles GET /clientes.
func (s *Server) ListClients(c *gin.Context) {
	clients, err := s.svc.ListClients(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClient handles GET /clientes/:id.
func (s *Server) GetClient(c *gin.Context) {
	id := c.Param("id")
	client, ok, err := s.svc.GetClient(c.Request.Context(), id)
	found(c, client, ok, err, domain.EntityClient, id)
}

// CreateClient handles POST /clientes.
func (s *Server) CreateClient(c *gin.Context) {
	var req clientRequest
	if !bind(c, &req) {
		return
	}
	created, _, err := s.svc.AddClient(c.Request.Context(), req.client())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateClient handles PATCH /clientes/:id.
func (s *Server) UpdateClient(c *gin.Context) {
	var patch domain.ClientPatch
	if !bind(c, &patch) {
		return
	}
	updated, _, err := s.svc.UpdateClient(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteClient handles DELETE /clientes/:id. Fibers and ports assigned to
// the client are released.
func (s *Server) DeleteClient(c *gin.Context) {
	if _, err := s.svc.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListClientFibers handles GET /clientes/:id/fibras.
func (s *Server) ListClientFibers(c *gin.Context) {
	fibers, err := s.svc.FindFibersByClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fibers)
}

// ListClientPorts handles GET /clientes/:id/portas.
func (s *Server) ListClientPorts(c *gin.Context) {
	ports, err := s.svc.FindPortsByClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ports)
}

// GetClientCircuit handles GET /clientes/:id/circuito.
func (s *Server) GetClientCircuit(c *gin.Context) {
	id := c.Param("id")
	circuit, ok, err := s.svc.GetCircuitByClient(c.Request.Context(), id)
	found(c, circuit, ok, err, domain.EntityCircuit, id)
}

// ListClientTickets handles GET /clientes/:id/chamados.
func (s *Server) ListClientTickets(c *gin.Context) {
	tickets, err := s.svc.ListTicketsByClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}
