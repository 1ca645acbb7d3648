package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fibernet/internal/blob"
	"fibernet/pkg/domain"
)

// ErrNoBlobStore is returned by photo operations when no blob store is configured.
var ErrNoBlobStore = errors.New("photo storage not configured")

// PhotoURLExpiry bounds the lifetime of presigned photo URLs.
const PhotoURLExpiry = 15 * time.Minute

// PhotoKey builds the object key of a new photo of the record.
func PhotoKey(kind domain.EntityType, id string) string {
	return path.Join(string(kind), id, uuid.NewString())
}

func photoTarget(kind domain.EntityType) error {
	switch kind {
	case domain.EntityClient, domain.EntityBox, domain.EntitySwitch:
		return nil
	}
	return domain.Invalid(kind, "foto", "photos are not supported for %q", kind)
}

// AttachPhoto uploads r to the blob store and records its key in the
// record's foto field. The previous photo object, if it was stored by this
// service, is removed once the record points at the new one.
func (s *Service) AttachPhoto(ctx context.Context, kind domain.EntityType, id string, r io.Reader, contentType string) (string, Result, error) {
	if err := photoTarget(kind); err != nil {
		return "", Result{}, err
	}
	if s.blobs == nil {
		return "", Result{}, ErrNoBlobStore
	}
	if _, err := s.photoOf(ctx, kind, id); err != nil {
		return "", Result{}, err
	}
	key := PhotoKey(kind, id)
	if _, err := s.blobs.Put(ctx, key, r, blob.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"entity": string(kind), "entity_id": id},
	}); err != nil {
		s.log.Error("photo upload failed", zap.String("entity", string(kind)), zap.String("entity_id", id), zap.Error(err))
		return "", Result{}, fmt.Errorf("upload photo: %w", err)
	}

	var previous string
	res, err := s.write(ctx, "attach_photo", s.latency.Write, func(tx Transaction) error {
		var err error
		switch kind {
		case domain.EntityClient:
			_, err = tx.UpdateClient(id, func(c *Client) error {
				previous, c.Photo = c.Photo, key
				return nil
			})
		case domain.EntityBox:
			_, err = tx.UpdateBox(id, func(b *Box) error {
				previous, b.Photo = b.Photo, key
				return nil
			})
		case domain.EntitySwitch:
			_, err = tx.UpdateSwitch(id, func(sw *Switch) error {
				previous, sw.Photo = sw.Photo, key
				return nil
			})
		}
		return err
	}, zap.String("entity", string(kind)), zap.String("entity_id", id))
	if err != nil {
		_, _ = s.blobs.Delete(context.WithoutCancel(ctx), key)
		return "", res, err
	}
	if ownedPhoto(kind, id, previous) {
		if _, err := s.blobs.Delete(ctx, previous); err != nil {
			s.log.Warn("previous photo not removed", zap.String("key", previous), zap.Error(err))
		}
	}
	return key, res, nil
}

// PhotoURL returns a URL for the record's photo. External URLs are returned
// as stored; blob keys are presigned when the backend supports it and
// returned as keys otherwise. ok is false when the record or its photo is
// missing.
func (s *Service) PhotoURL(ctx context.Context, kind domain.EntityType, id string) (string, bool, error) {
	if err := photoTarget(kind); err != nil {
		return "", false, err
	}
	photo, err := s.photoOf(ctx, kind, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if photo == "" {
		return "", false, nil
	}
	if strings.HasPrefix(photo, "http://") || strings.HasPrefix(photo, "https://") || s.blobs == nil {
		return photo, true, nil
	}
	url, err := s.blobs.PresignURL(ctx, photo, blob.SignedURLOptions{Expiry: PhotoURLExpiry})
	if errors.Is(err, blob.ErrUnsupported) {
		return photo, true, nil
	}
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}

// OpenPhoto streams a stored photo object. The caller closes the reader.
func (s *Service) OpenPhoto(ctx context.Context, key string) (blob.Info, io.ReadCloser, error) {
	if s.blobs == nil {
		return blob.Info{}, nil, ErrNoBlobStore
	}
	return s.blobs.Get(ctx, key)
}

func (s *Service) photoOf(ctx context.Context, kind domain.EntityType, id string) (string, error) {
	var (
		photo string
		found bool
	)
	err := s.store.View(ctx, func(v TransactionView) error {
		switch kind {
		case domain.EntityClient:
			c, ok := v.FindClient(id)
			photo, found = c.Photo, ok
		case domain.EntityBox:
			b, ok := v.FindBox(id)
			photo, found = b.Photo, ok
		case domain.EntitySwitch:
			sw, ok := v.FindSwitch(id)
			photo, found = sw.Photo, ok
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if !found {
		return "", domain.NotFound(kind, id)
	}
	return photo, nil
}

func ownedPhoto(kind domain.EntityType, id, key string) bool {
	return key != "" && strings.HasPrefix(key, string(kind)+"/"+id+"/")
}
