package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("validation failed", ValidationDetail{
		Field:   "status",
		Message: "status must be one of the known values",
	})

	if err.Error() != "validation failed" {
		t.Errorf("expected message 'validation failed', got %q", err.Error())
	}

	ve, ok := IsValidationError(err)
	if !ok {
		t.Fatal("expected IsValidationError to match")
	}
	if len(ve.Details) != 1 || ve.Details[0].Field != "status" {
		t.Errorf("unexpected details: %+v", ve.Details)
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("order not found")

	if _, ok := IsNotFoundError(err); !ok {
		t.Error("expected IsNotFoundError to match")
	}
	if _, ok := IsConflictError(err); ok {
		t.Error("NotFoundError must not match as ConflictError")
	}
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("no next status")

	if _, ok := IsConflictError(err); !ok {
		t.Error("expected IsConflictError to match")
	}
}

func TestUnauthorizedError(t *testing.T) {
	err := NewUnauthorizedError("please log in")

	if _, ok := IsUnauthorizedError(err); !ok {
		t.Error("expected IsUnauthorizedError to match")
	}
	if err.Error() != "please log in" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewInternalError("querying orders", cause)

	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Error() != "querying orders: connection refused" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
