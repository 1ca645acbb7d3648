package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fibernet/pkg/domain"
)

// ListSwitches handles GET /switches.
func (s *Server) ListSwitches(c *gin.Context) {
	switches, err := s.svc.ListSwitches(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, switches)
}

// GetSwitch handles GET /switches/:id.
func (s *Server) GetSwitch(c *gin.Context) {
	id := c.Param("id")
	sw, ok, err := s.svc.GetSwitch(c.Request.Context(), id)
	found(c, sw, ok, err, domain.EntitySwitch, id)
}

// CreateSwitch handles POST /switches.
func (s *Server) CreateSwitch(c *gin.Context) {
	var req switchRequest
	if !bind(c, &req) {
		return
	}
	created, _, err := s.svc.AddSwitch(c.Request.Context(), req.sw())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateSwitch handles PATCH /switches/:id. total_portas is accepted and
// ignored.
func (s *Server) UpdateSwitch(c *gin.Context) {
	var patch domain.SwitchPatch
	if !bind(c, &patch) {
		return
	}
	updated, _, err := s.svc.UpdateSwitch(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteSwitch handles DELETE /switches/:id.
func (s *Server) DeleteSwitch(c *gin.Context) {
	if _, err := s.svc.DeleteSwitch(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdatePort handles PATCH /switches/:id/portas/:portaId.
func (s *Server) UpdatePort(c *gin.Context) {
	var patch domain.PortPatch
	if !bind(c, &patch) {
		return
	}
	updated, _, err := s.svc.UpdatePort(c.Request.Context(), c.Param("id"), c.Param("portaId"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
