package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fibernet/internal/core"
	"fibernet/internal/export"
	apperrors "fibernet/internal/pkg/errors"
	"fibernet/pkg/domain"
)

// Server holds the handler dependencies.
type Server struct {
	svc      *core.Service
	exporter *export.Exporter
}

// fail hands err to the error middleware.
func fail(c *gin.Context, err error) {
	_ = c.Error(apperrors.FromDomain(err))
}

func notFound(c *gin.Context, entity domain.EntityType, id string) {
	_ = c.Error(apperrors.NotFound(apperrors.NotFoundCode(entity), fmt.Sprintf("%s %q not found", entity, id)))
}

// bind decodes the JSON body into dst and validates its binding tags.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeValidationFailed, err.Error(), http.StatusBadRequest))
		return false
	}
	return true
}

// found writes v, or a not-found error when ok is false.
func found(c *gin.Context, v any, ok bool, err error, entity domain.EntityType, id string) {
	switch {
	case err != nil:
		fail(c, err)
	case !ok:
		notFound(c, entity, id)
	default:
		c.JSON(http.StatusOK, v)
	}
}

// Health handles GET /healthz.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
