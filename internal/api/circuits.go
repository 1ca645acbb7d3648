package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fibernet/pkg/domain"
)

// ListCircuits handles GET /circuitos.
func (s *Server) ListCircuits(c *gin.Context) {
	circuits, err := s.svc.ListCircuits(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, circuits)
}

// GetCircuit handles GET /circuitos/:id.
func (s *Server) GetCircuit(c *gin.Context) {
	id := c.Param("id")
	circuit, ok, err := s.svc.GetCircuit(c.Request.Context(), id)
	found(c, circuit, ok, err, domain.EntityCircuit, id)
}

// GetCircuitPath handles GET /circuitos/:id/caminho.
func (s *Server) GetCircuitPath(c *gin.Context) {
	id := c.Param("id")
	path, ok, err := s.svc.ResolveCircuit(c.Request.Context(), id)
	found(c, path, ok, err, domain.EntityCircuit, id)
}

// CreateCircuit handles POST /circuitos.
func (s *Server) CreateCircuit(c *gin.Context) {
	var req circuitRequest
	if !bind(c, &req) {
		return
	}
	created, _, err := s.svc.AddCircuit(c.Request.Context(), req.circuit())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateCircuit handles PATCH /circuitos/:id.
func (s *Server) UpdateCircuit(c *gin.Context) {
	var req circuitPatchRequest
	if !bind(c, &req) {
		return
	}
	updated, _, err := s.svc.UpdateCircuit(c.Request.Context(), c.Param("id"), req.patch())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteCircuit handles DELETE /circuitos/:id.
func (s *Server) DeleteCircuit(c *gin.Context) {
	if _, err := s.svc.DeleteCircuit(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
