package api

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fibernet/internal/blob"
	"fibernet/internal/core"
	apperrors "fibernet/internal/pkg/errors"
	"fibernet/pkg/domain"
)

// MaxPhotoBytes bounds photo uploads.
const MaxPhotoBytes = 10 << 20

type photoResponse struct {
	Key string `json:"foto"`
	URL string `json:"url"`
}

// photoUpload handles PUT /<kind>/:id/foto. The photo is either the raw
// request body or the "foto" field of a multipart form.
func (s *Server) photoUpload(kind domain.EntityType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxPhotoBytes)

		body := c.Request.Body
		contentType := c.ContentType()
		if strings.HasPrefix(contentType, "multipart/") {
			fh, err := c.FormFile("foto")
			if err != nil {
				if bodyTooLarge(err) {
					photoError(c, err)
					return
				}
				_ = c.Error(apperrors.Wrap(err, apperrors.CodeValidationFailed, "multipart field foto is required", http.StatusBadRequest))
				return
			}
			f, err := fh.Open()
			if err != nil {
				fail(c, err)
				return
			}
			defer f.Close()
			body = f
			contentType = fh.Header.Get("Content-Type")
		}
		if mt, _, err := mime.ParseMediaType(contentType); err != nil || !strings.HasPrefix(mt, "image/") {
			_ = c.Error(apperrors.BadRequest(apperrors.CodeValidationFailed, "photo content type must be image/*"))
			return
		}

		key, _, err := s.svc.AttachPhoto(c.Request.Context(), kind, id, body, contentType)
		if err != nil {
			photoError(c, err)
			return
		}
		url, _, err := s.svc.PhotoURL(c.Request.Context(), kind, id)
		if err != nil {
			photoError(c, err)
			return
		}
		c.JSON(http.StatusOK, photoResponse{Key: key, URL: url})
	}
}

// ServePhoto handles GET /fotos/*key for backends without presigned URLs.
func (s *Server) ServePhoto(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	info, rc, err := s.svc.OpenPhoto(c.Request.Context(), key)
	if err != nil {
		photoError(c, err)
		return
	}
	defer rc.Close()
	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, info.Size, contentType, rc, map[string]string{
		"Cache-Control": "private, max-age=3600",
	})
}

func photoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrNoBlobStore):
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeUnsupported, err.Error(), http.StatusNotImplemented))
	case errors.Is(err, blob.ErrInvalidKey):
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeValidationFailed, "invalid photo key", http.StatusBadRequest))
	case errors.Is(err, blob.ErrTooLarge), bodyTooLarge(err):
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeValidationFailed, "photo too large", http.StatusRequestEntityTooLarge))
	case errors.Is(err, blob.ErrNotFound):
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeNotFound, "photo not found", http.StatusNotFound))
	default:
		fail(c, err)
	}
}

func bodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
