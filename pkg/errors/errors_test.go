package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	tests := []struct {
		name          string
		field         string
		message       string
		value         interface{}
		expectedError string
	}{
		{
			name:          "with field",
			field:         "key",
			message:       "key must be a non-empty string",
			value:         "",
			expectedError: "validation error: key: key must be a non-empty string",
		},
		{
			name:          "without field",
			field:         "",
			message:       "invalid input",
			value:         nil,
			expectedError: "validation error: invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message, tt.value)
			if err.Error() != tt.expectedError {
				t.Errorf("Expected error %q, got %q", tt.expectedError, err.Error())
			}
			if err.Code() != CodeValidation {
				t.Errorf("Expected code %q, got %q", CodeValidation, err.Code())
			}
			if err.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, err.Field)
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Expected validation error to match ErrInvalidInput")
			}
		})
	}
}

func TestBackendInitError(t *testing.T) {
	cause := errors.New("unable to open database file")
	err := NewBackendInitError("sqlite", cause)

	if err.Backend != "sqlite" {
		t.Errorf("Expected backend 'sqlite', got %q", err.Backend)
	}
	if err.Code() != CodeBackendInit {
		t.Errorf("Expected code %q, got %q", CodeBackendInit, err.Code())
	}
	if err.Unwrap() != cause {
		t.Errorf("Expected cause to be preserved")
	}
	if !strings.Contains(err.Error(), "sqlite backend initialization failed") {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestCredentialError(t *testing.T) {
	tests := []struct {
		stage       string
		expectedMsg string
	}{
		{"keypair generation", "credential keypair generation failed"},
		{"payload construction", "credential payload construction failed"},
		{"signature", "credential signature failed"},
	}

	for _, tt := range tests {
		t.Run(tt.stage, func(t *testing.T) {
			cause := errors.New("user rejected request")
			err := NewCredentialError(tt.stage, cause)
			if err.Stage != tt.stage {
				t.Errorf("Expected stage %q, got %q", tt.stage, err.Stage)
			}
			if err.Message() != tt.expectedMsg {
				t.Errorf("Expected message %q, got %q", tt.expectedMsg, err.Message())
			}
			if !errors.Is(err, cause) {
				t.Errorf("Expected cause to be preserved in chain")
			}
		})
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name          string
		resource      string
		id            string
		expectedError string
	}{
		{
			name:          "with ID",
			resource:      "credential",
			id:            "abc",
			expectedError: "credential with ID 'abc' not found",
		},
		{
			name:          "without ID",
			resource:      "credential",
			id:            "",
			expectedError: "credential not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFoundError(tt.resource, tt.id)
			if err.Error() != tt.expectedError {
				t.Errorf("Expected error %q, got %q", tt.expectedError, err.Error())
			}
			if err.Code() != CodeNotFound {
				t.Errorf("Expected code %q, got %q", CodeNotFound, err.Code())
			}
		})
	}
}

func TestInternalError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewInternalError("failed to persist credential", cause)

		if err.Message() != "failed to persist credential" {
			t.Errorf("Expected message 'failed to persist credential', got %q", err.Message())
		}
		if err.Unwrap() != cause {
			t.Errorf("Expected cause to be preserved")
		}
		if !strings.Contains(err.Error(), "disk full") {
			t.Errorf("Expected error to contain cause: %q", err.Error())
		}
	})

	t.Run("with operation", func(t *testing.T) {
		err := NewInternalError("operation failed", nil).WithOperation("setItem")
		if err.Operation != "setItem" {
			t.Errorf("Expected operation 'setItem', got %q", err.Operation)
		}
	})
}

func TestTimeoutError(t *testing.T) {
	err := NewTimeoutError("receipt polling", "30s")

	if err.Operation != "receipt polling" {
		t.Errorf("Expected operation 'receipt polling', got %q", err.Operation)
	}
	if err.Duration != "30s" {
		t.Errorf("Expected duration '30s', got %q", err.Duration)
	}
	if !strings.Contains(err.Message(), "timeout") {
		t.Errorf("Expected message to contain 'timeout': %q", err.Message())
	}
}

func TestWrap(t *testing.T) {
	t.Run("wrap standard error", func(t *testing.T) {
		original := errors.New("original error")
		wrapped := Wrap(original, "additional context")

		if !strings.Contains(wrapped.Error(), "additional context") {
			t.Errorf("Expected wrapped error to contain context: %q", wrapped.Error())
		}
		if !errors.Is(wrapped, original) {
			t.Errorf("Expected wrapped error to preserve original error")
		}
	})

	t.Run("wrap custom error preserves code", func(t *testing.T) {
		original := NewBackendInitError("file", errors.New("permission denied"))
		wrapped := Wrap(original, "failed to open storage")

		var custom Error
		if !errors.As(wrapped, &custom) || custom.Code() != CodeBackendInit {
			t.Errorf("Expected wrapped error to preserve code %q", CodeBackendInit)
		}
		if errors.Unwrap(wrapped) != original {
			t.Errorf("Expected wrapped error to preserve original error")
		}
	})

	t.Run("wrap nil error", func(t *testing.T) {
		wrapped := Wrap(nil, "context")
		if wrapped != nil {
			t.Errorf("Expected Wrap(nil) to return nil, got %v", wrapped)
		}
	})
}

func TestWrapf(t *testing.T) {
	original := errors.New("connection failed")
	wrapped := Wrapf(original, "failed to reach gateway %s:%d", "localhost", 8545)

	expected := "failed to reach gateway localhost:8545"
	if !strings.Contains(wrapped.Error(), expected) {
		t.Errorf("Expected wrapped error to contain %q, got %q", expected, wrapped.Error())
	}
}

func TestErrorChaining(t *testing.T) {
	root := errors.New("root cause")
	level1 := Wrap(root, "level 1")
	level2 := Wrap(level1, "level 2")

	if !errors.Is(level2, root) {
		t.Errorf("Expected error chain to preserve root cause")
	}
	if errors.Unwrap(level2) != level1 {
		t.Errorf("Expected first unwrap to return level1")
	}
}

func TestStackTrace(t *testing.T) {
	err := NewInternalError("test error", nil)

	if len(err.Stack()) == 0 {
		t.Errorf("Expected stack trace to be captured")
	}

	trace := err.StackTrace()
	if trace == "" {
		t.Errorf("Expected stack trace string to be non-empty")
	}
	if !strings.Contains(trace, "TestStackTrace") {
		t.Errorf("Expected stack trace to contain test function name: %s", trace)
	}
}

func TestNew(t *testing.T) {
	err := New("test error")

	if err.Error() != "test error" {
		t.Errorf("Expected error message 'test error', got %q", err.Error())
	}

	var customErr Error
	if !errors.As(err, &customErr) {
		t.Errorf("Expected New() to return an Error interface")
	}
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrTimeout", ErrTimeout},
		{"ErrBackendUnavailable", ErrBackendUnavailable},
		{"ErrInternal", ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("wrapped: %w", tt.err)
			if !errors.Is(wrapped, tt.err) {
				t.Errorf("Expected errors.Is to work with sentinel error")
			}
		})
	}
}
