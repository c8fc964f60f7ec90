package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidArgument, "test message: %s", "value")

	if err.Code != ErrCodeInvalidArgument {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidArgument)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_ARGUMENT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidConfig, cause, "failed to decode")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "INVALID_CONFIG: failed to decode: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidArgument, "test"),
			code:     ErrCodeInvalidArgument,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidArgument, "test"),
			code:     ErrCodePlacementExhausted,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodePlacementExhausted, New(ErrCodeInvalidArgument, "inner"), "outer"),
			code:     ErrCodePlacementExhausted,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmtWrap(New(ErrCodePlacementExhausted, "inner")),
			code:     ErrCodePlacementExhausted,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidArgument,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidArgument,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodePlacementExhausted, "test"),
			expected: ErrCodePlacementExhausted,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidArgument, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsInvalidInput(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeInvalidArgument, "x"), true},
		{New(ErrCodeInvalidColor, "x"), true},
		{New(ErrCodeInvalidLayout, "x"), true},
		{New(ErrCodePlacementExhausted, "x"), false},
		{New(ErrCodeInternal, "x"), false},
		{errors.New("plain"), false},
	}

	for _, tt := range tests {
		if got := IsInvalidInput(tt.err); got != tt.want {
			t.Errorf("IsInvalidInput(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

type wrapped struct{ err error }

func (w wrapped) Error() string { return "wrapped: " + w.err.Error() }
func (w wrapped) Unwrap() error { return w.err }

func fmtWrap(err error) error { return wrapped{err} }
