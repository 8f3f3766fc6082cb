package failure_test

import (
	"conference/shared/failure"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "ticket_type is required",
	}

	if f.Error() != "ticket_type is required" {
		t.Errorf("expected error message to be 'ticket_type is required', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "InvalidPageParam",
			failure: failure.InvalidPageParam,
			code:    http.StatusBadRequest,
			message: "invalid page parameter",
		},
		{
			name:    "ForbiddenError",
			failure: failure.ForbiddenError,
			code:    http.StatusForbidden,
			message: "You don't have the required permissions",
		},
		{
			name:    "StorageUnavailable",
			failure: failure.StorageUnavailable,
			code:    http.StatusServiceUnavailable,
			message: "storage unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}
			if tt.failure.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.failure.Message)
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	if result := failure.BadRequest(nil); result != nil {
		t.Errorf("expected nil, got %v", result)
	}

	result := failure.BadRequest(errors.New("additional persons incomplete"))

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}

	if f.Code != http.StatusBadRequest || f.Message != "additional persons incomplete" {
		t.Errorf("unexpected failure %+v", f)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "BadRequestFromString", err: failure.BadRequestFromString("invalid ticket type"), code: http.StatusBadRequest, message: "invalid ticket type"},
		{name: "Unauthorized", err: failure.Unauthorized("Invalid username or password."), code: http.StatusUnauthorized, message: "Invalid username or password."},
		{name: "InternalError", err: failure.InternalError(errors.New("database connection failed")), code: http.StatusInternalServerError, message: "database connection failed"},
		{name: "NotFound", err: failure.NotFound("booking not found"), code: http.StatusNotFound, message: "booking not found"},
		{name: "Conflict", err: failure.Conflict("This email has already been registered."), code: http.StatusConflict, message: "This email has already been registered."},
		{name: "Gone", err: failure.Gone("Booking expired."), code: http.StatusGone, message: "Booking expired."},
		{name: "TooLarge", err: failure.TooLarge("file too large"), code: http.StatusRequestEntityTooLarge, message: "file too large"},
		{name: "Forbidden", err: failure.Forbidden("Access denied"), code: http.StatusForbidden, message: "Access denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected result to be *failure.Failure, got %T", tt.err)
			}

			if f.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, f.Code)
			}

			if f.Message != tt.message {
				t.Errorf("expected message to be '%s', got %s", tt.message, f.Message)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("failed to reserve: %w", failure.Conflict("capacity")),
			expected: http.StatusConflict,
		},
		{
			name:     "storage unavailable joined with driver error",
			input:    fmt.Errorf("failed to get data (booking): %w: %w", failure.StorageUnavailable, errors.New("dial tcp: connection refused")),
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}
