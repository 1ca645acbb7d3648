package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundMatching(t *testing.T) {
	err := fmt.Errorf("update: %w", NotFound(EntityBox, "cx-1"))
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound match")
	}
	if errors.Is(err, ErrInvalid) {
		t.Fatalf("not found must not match ErrInvalid")
	}
	entity, ok := EntityOf(err)
	if !ok || entity != EntityBox {
		t.Fatalf("expected box entity, got %q %v", entity, ok)
	}
	if got := NotFound(EntityFiber, "f1").Error(); got != `fibra "f1" not found` {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestValidationError(t *testing.T) {
	err := Invalid(EntityCable, "quantidade_fibras", "unsupported count %d", 13)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid match")
	}
	if err.Error() != "cabo.quantidade_fibras: unsupported count 13" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if _, ok := EntityOf(err); ok {
		t.Fatalf("validation errors carry no not-found entity")
	}
}
