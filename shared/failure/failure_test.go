package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"campus/shared/failure"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"conflict", failure.Conflict("taken"), http.StatusConflict},
		{"unauthorized", failure.Unauthorized("no"), http.StatusUnauthorized},
		{"bad request", failure.BadRequestFromString("bad"), http.StatusBadRequest},
		{"not found", failure.NotFound("thing"), http.StatusNotFound},
		{"unavailable", failure.Unavailable(errors.New("down")), http.StatusServiceUnavailable},
		{"plain error", errors.New("anything"), http.StatusInternalServerError},
		{"not authenticated", failure.NotAuthenticatedError, http.StatusUnauthorized},
		{"selection incomplete", failure.SelectionIncompleteError, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := failure.GetCode(tt.err); code != tt.expected {
				t.Errorf("expected code %d, got %d", tt.expected, code)
			}
		})
	}
}

func TestGetCode_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", failure.Conflict("taken")))

	if !failure.IsConflict(wrapped) {
		t.Error("expected wrapped conflict to be recognised")
	}
}

func TestIsNotAuthenticated(t *testing.T) {
	if !failure.IsNotAuthenticated(failure.NotAuthenticatedError) {
		t.Error("expected NotAuthenticatedError to be recognised")
	}

	if failure.IsNotAuthenticated(failure.Conflict("taken")) {
		t.Error("conflict is not an authentication failure")
	}
}

func TestBadRequest_NilError(t *testing.T) {
	if err := failure.BadRequest(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	if err := failure.InternalError(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}
