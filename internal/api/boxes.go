package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fibernet/pkg/domain"
)

// ListBoxes handles GET /caixas.
func (s *Server) ListBoxes(c *gin.Context) {
	boxes, err := s.svc.ListBoxes(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, boxes)
}

// GetBox handles GET /caixas/:id.
func (s *Server) GetBox(c *gin.Context) {
	id := c.Param("id")
	box, ok, err := s.svc.GetBox(c.Request.Context(), id)
	found(c, box, ok, err, domain.EntityBox, id)
}

// CreateBox handles POST /caixas.
func (s *Server) CreateBox(c *gin.Context) {
	var req boxRequest
	if !bind(c, &req) {
		return
	}
	created, _, err := s.svc.AddBox(c.Request.Context(), req.box())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateBox handles PATCH /caixas/:id.
func (s *Server) UpdateBox(c *gin.Context) {
	var patch domain.BoxPatch
	if !bind(c, &patch) {
		return
	}
	updated, _, err := s.svc.UpdateBox(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteBox handles DELETE /caixas/:id.
func (s *Server) DeleteBox(c *gin.Context) {
	if _, err := s.svc.DeleteBox(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddCable handles POST /caixas/:id/cabos.
func (s *Server) AddCable(c *gin.Context) {
	var req addCableRequest
	if !bind(c, &req) {
		return
	}
	created, _, err := s.svc.AddCableToBox(c.Request.Context(), c.Param("id"), req.cable(req.Side))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateFiber handles PATCH /caixas/:id/cabos/:caboId/fibras/:fibraId.
func (s *Server) UpdateFiber(c *gin.Context) {
	var patch domain.FiberPatch
	if !bind(c, &patch) {
		return
	}
	updated, _, err := s.svc.UpdateFiberInBox(c.Request.Context(), c.Param("id"), c.Param("caboId"), c.Param("fibraId"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
