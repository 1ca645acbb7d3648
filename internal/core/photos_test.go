package core

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fibernet/internal/blob"
	"fibernet/pkg/domain"
)

func TestAttachPhotoReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory()
	svc := newTestService(t, WithBlobStore(blobs))
	box := mustAddBox(t, svc, "CX-FOTO")

	first, _, err := svc.AttachPhoto(ctx, domain.EntityBox, box.ID, strings.NewReader("jpeg-1"), "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first, "caixa/"+box.ID+"/"))

	got, _, err := svc.GetBox(ctx, box.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got.Photo)

	second, _, err := svc.AttachPhoto(ctx, domain.EntityBox, box.ID, strings.NewReader("jpeg-2"), "image/jpeg")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, err = blobs.Head(ctx, first)
	assert.ErrorIs(t, err, blob.ErrNotFound)

	info, rc, err := svc.OpenPhoto(ctx, second)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-2", string(body))
	assert.Equal(t, "image/jpeg", info.ContentType)

	url, ok, err := svc.PhotoURL(ctx, domain.EntityBox, box.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second, url, "memory backend cannot presign, key is returned")
}

func TestPhotoURLPassesExternalLinks(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	c := mustAddClient(t, svc, "Cafe")
	_, _, err := svc.UpdateClient(ctx, c.ID, ClientPatch{Photo: ptr("https://cdn.example.com/a.jpg")})
	require.NoError(t, err)

	url, ok, err := svc.PhotoURL(ctx, domain.EntityClient, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/a.jpg", url)

	_, ok, err = svc.PhotoURL(ctx, domain.EntityClient, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)

	sw := mustAddSwitch(t, svc, "SW", 8)
	_, ok, err = svc.PhotoURL(ctx, domain.EntitySwitch, sw.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAttachPhotoErrors(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, _, err := svc.AttachPhoto(ctx, domain.EntityTicket, "x", strings.NewReader(""), "")
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, _, err = svc.AttachPhoto(ctx, domain.EntityClient, "ghost", strings.NewReader("x"), "image/png")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	bare := newTestService(t, WithBlobStore(nil))
	c := mustAddClient(t, bare, "Sem blob")
	_, _, err = bare.AttachPhoto(ctx, domain.EntityClient, c.ID, strings.NewReader("x"), "image/png")
	assert.ErrorIs(t, err, ErrNoBlobStore)
}
