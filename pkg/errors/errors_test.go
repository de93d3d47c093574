package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidRegion, "min.x %d > max.x %d", 5, 1)

	if err.Code != ErrCodeInvalidRegion {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidRegion)
	}

	if err.Message != "min.x 5 > max.x 1" {
		t.Errorf("Message = %v, want %v", err.Message, "min.x 5 > max.x 1")
	}

	expected := "INVALID_REGION: min.x 5 > max.x 1"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("toml: line 3: expected '='")
	err := Wrap(ErrCodeInvalidScene, cause, "decode scene")

	if err.Code != ErrCodeInvalidScene {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidScene)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
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
			err:      New(ErrCodeInvalidStyle, "test"),
			code:     ErrCodeInvalidStyle,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidStyle, "test"),
			code:     ErrCodeInvalidRegion,
			expected: false,
		},
		{
			name:     "outermost code wins",
			err:      Wrap(ErrCodeInvalidScene, New(ErrCodeInvalidRegion, "inner"), "outer"),
			code:     ErrCodeInvalidScene,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
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
		{"Error type", New(ErrCodeFileNotFound, "test"), ErrCodeFileNotFound},
		{"field error", Field("requests[0].style", "unknown style %q", "castle"), ErrCodeInvalidScene},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
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
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFieldError(t *testing.T) {
	err := Field("requests[2].region", "min.y %d > max.y %d", 10, 4)

	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatal("errors.As(*FieldError) = false, want true")
	}
	if fe.Field != "requests[2].region" {
		t.Errorf("Field = %q, want %q", fe.Field, "requests[2].region")
	}
	if fe.Code() != ErrCodeInvalidScene {
		t.Errorf("Code() = %v, want %v", fe.Code(), ErrCodeInvalidScene)
	}

	want := "INVALID_SCENE: invalid scene: requests[2].region: min.y 10 > max.y 4"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	if got := (&FieldError{Reason: "empty"}).Error(); got != "empty" {
		t.Errorf("Error() without field = %q, want %q", got, "empty")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("plain"), ExitFailure},
		{New(ErrCodeInvalidRegion, "min > max"), ExitInvalid},
		{Field("request[0].style", "unknown"), ExitInvalid},
		{fmt.Errorf("load: %w", New(ErrCodeSceneNotFound, "spawn.toml")), ExitInvalid},
		{New(ErrCodeCacheUnavailable, "redis get failed"), ExitUnavailable},
		{New(ErrCodeInternal, "boom"), ExitFailure},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
