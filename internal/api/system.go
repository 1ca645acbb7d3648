package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fibernet/internal/pkg/errors"
)

// Overview handles GET /overview.
func (s *Server) Overview(c *gin.Context) {
	overview, err := s.svc.Overview(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (s *Server) exportsEnabled(c *gin.Context) bool {
	if s.exporter == nil {
		_ = c.Error(apperrors.New(apperrors.CodeUnsupported, "exports are disabled", http.StatusNotImplemented))
		return false
	}
	return true
}

// ListExports handles GET /exports.
func (s *Server) ListExports(c *gin.Context) {
	if !s.exportsEnabled(c) {
		return
	}
	c.JSON(http.StatusOK, s.exporter.List())
}

// CreateExport handles POST /exports. The body is optional.
func (s *Server) CreateExport(c *gin.Context) {
	if !s.exportsEnabled(c) {
		return
	}
	var req exportRequest
	if c.Request.ContentLength > 0 && !bind(c, &req) {
		return
	}
	rec, err := s.exporter.Enqueue(c.Request.Context(), req.RequestedBy)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, rec)
}

// GetExport handles GET /exports/:id.
func (s *Server) GetExport(c *gin.Context) {
	if !s.exportsEnabled(c) {
		return
	}
	id := c.Param("id")
	rec, ok := s.exporter.Get(id)
	if !ok {
		_ = c.Error(apperrors.NotFound(apperrors.CodeExportNotFound, "export "+id+" not found"))
		return
	}
	c.JSON(http.StatusOK, rec)
}
