package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidPattern, "test message: %s", "value")

	if err.Code != ErrCodeInvalidPattern {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidPattern)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_PATTERN: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeNetwork, cause, "planner request failed")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
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
			err:      New(ErrCodeLayoutCapacity, "7 items exceed 2x3 grid"),
			code:     ErrCodeLayoutCapacity,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeLayoutCapacity, "test"),
			code:     ErrCodeSafeArea,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeNetwork,
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
	if code := GetCode(New(ErrCodeCustomOutOfBounds, "test")); code != ErrCodeCustomOutOfBounds {
		t.Errorf("GetCode() = %v, want %v", code, ErrCodeCustomOutOfBounds)
	}
	if code := GetCode(errors.New("plain")); code != "" {
		t.Errorf("GetCode() = %v, want empty", code)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeSafeArea, "no usable rectangle on layout 2")
	if msg := UserMessage(err); msg != "no usable rectangle on layout 2" {
		t.Errorf("UserMessage() = %q", msg)
	}

	plain := errors.New("plain error")
	if msg := UserMessage(plain); msg != "plain error" {
		t.Errorf("UserMessage() = %q", msg)
	}
}

func TestValidateCanvas(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantErr       bool
	}{
		{"widescreen", 13.333, 7.5, false},
		{"classic", 10, 7.5, false},
		{"zero width", 0, 7.5, true},
		{"negative height", 10, -1, true},
		{"EMU-scale value", 914400, 7.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCanvas(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCanvas(%g, %g) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCanvas) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidCanvas)
			}
		})
	}
}

func TestValidateTemplatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple", "brand.json", false},
		{"nested", "templates/acme/brand.json", false},
		{"empty", "", true},
		{"traversal", "../../etc/passwd", true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTemplatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTemplatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
