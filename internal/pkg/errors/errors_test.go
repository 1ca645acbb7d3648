package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"fibernet/pkg/domain"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without wrapped error",
			err:  NotFound(CodeBoxNotFound, "box not found"),
			want: "BOX_NOT_FOUND: box not found",
		},
		{
			name: "with wrapped error",
			err:  Wrap(fmt.Errorf("disk full"), CodeInternal, "persist failed", http.StatusInternalServerError),
			want: "INTERNAL_ERROR: persist failed: disk full",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAppError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", Conflict(CodeConflict, "dup"))
	got, ok := IsAppError(wrapped)
	if !ok || got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected conflict app error, got %v %v", got, ok)
	}
	if _, ok := IsAppError(errors.New("plain")); ok {
		t.Fatalf("plain error must not be an AppError")
	}
}

func TestFromDomain(t *testing.T) {
	blocked := domain.RuleViolationError{Result: domain.Result{Violations: []domain.Violation{{
		Rule: "technician_assignment", Severity: domain.SeverityBlock, Message: "open tickets",
	}}}}
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"fiber not found", fmt.Errorf("update: %w", domain.NotFound(domain.EntityFiber, "f1")), CodeFiberNotFound, http.StatusNotFound},
		{"ticket not found", domain.NotFound(domain.EntityTicket, "t1"), CodeTicketNotFound, http.StatusNotFound},
		{"unknown entity", domain.NotFound("bobina", "b1"), CodeNotFound, http.StatusNotFound},
		{"validation", domain.Invalid(domain.EntityCable, "total_fibras", "unsupported count %d", 13), CodeInvalidRequestField, http.StatusBadRequest},
		{"duplicate", fmt.Errorf("cliente %q: %w", "c1", domain.ErrAlreadyExists), CodeConflict, http.StatusConflict},
		{"rules", blocked, CodeIntegrityViolation, http.StatusConflict},
		{"passthrough", BadRequest(CodeValidationFailed, "bad body"), CodeValidationFailed, http.StatusBadRequest},
		{"other", errors.New("boom"), CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDomain(tt.err)
			if got.Code != tt.wantCode || got.HTTPStatus != tt.wantStatus {
				t.Fatalf("FromDomain(%v) = %s/%d, want %s/%d", tt.err, got.Code, got.HTTPStatus, tt.wantCode, tt.wantStatus)
			}
		})
	}
	if FromDomain(nil) != nil {
		t.Fatalf("nil error must map to nil")
	}
	if got := FromDomain(blocked); len(got.Violations) != 1 {
		t.Fatalf("expected violations to be carried, got %+v", got.Violations)
	}
}
