package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fibernet/pkg/domain"
)

// ListTechnicians handles GET /tecnicos.
func (s *Server) ListTechnicians(c *gin.Context) {
	techs, err := s.svc.ListTechnicians(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, techs)
}

// GetTechnician handles GET /tecnicos/:id.
func (s *Server) GetTechnician(c *gin.Context) {
	id := c.Param("id")
	tech, ok, err := s.svc.GetTechnician(c.Request.Context(), id)
	found(c, tech, ok, err, domain.EntityTechnician, id)
}

// CreateTechnician handles POST /tecnicos.
func (s *Server) CreateTechnician(c *gin.Context) {
	var req technicianRequest
	if !bind(c, &req) {
		return
	}
	created, _, err := s.svc.AddTechnician(c.Request.Context(), req.technician())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateTechnician handles PATCH /tecnicos/:id.
func (s *Server) UpdateTechnician(c *gin.Context) {
	var patch domain.TechnicianPatch
	if !bind(c, &patch) {
		return
	}
	updated, _, err := s.svc.UpdateTechnician(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTechnician handles DELETE /tecnicos/:id.
func (s *Server) DeleteTechnician(c *gin.Context) {
	if _, err := s.svc.DeleteTechnician(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTickets handles GET /chamados.
func (s *Server) ListTickets(c *gin.Context) {
	tickets, err := s.svc.ListTickets(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// GetTicket handles GET /chamados/:id.
func (s *Server) GetTicket(c *gin.Context) {
	id := c.Param("id")
	ticket, ok, err := s.svc.GetTicket(c.Request.Context(), id)
	found(c, ticket, ok, err, domain.EntityTicket, id)
}

// CreateTicket handles POST /chamados.
func (s *Server) CreateTicket(c *gin.Context) {
	var req ticketRequest
	if !bind(c, &req) {
		return
	}
	created, _, err := s.svc.OpenTicket(c.Request.Context(), req.ticket())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateTicket handles PATCH /chamados/:id.
func (s *Server) UpdateTicket(c *gin.Context) {
	var patch domain.TicketPatch
	if !bind(c, &patch) {
		return
	}
	updated, _, err := s.svc.UpdateTicket(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTicket handles DELETE /chamados/:id.
func (s *Server) DeleteTicket(c *gin.Context) {
	if _, err := s.svc.DeleteTicket(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
