package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidPath, "bad path: %s", "value")

	if err.Code != ErrCodeInvalidPath {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidPath)
	}

	if err.Message != "bad path: value" {
		t.Errorf("Message = %v, want %v", err.Message, "bad path: value")
	}

	expected := "INVALID_PATH: bad path: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeMetadataContract, cause, "no METADATA")

	if err.Code != ErrCodeMetadataContract {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMetadataContract)
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

	expected := "METADATA_CONTRACT: no METADATA: underlying error"
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
			err:      New(ErrCodeHookFailed, "test"),
			code:     ErrCodeHookFailed,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeHookFailed, "test"),
			code:     ErrCodeMetadataContract,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeHookFailed, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeHookFailed,
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
		{"Error type", New(ErrCodeInvalidDeclaration, "test"), ErrCodeInvalidDeclaration},
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
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "Error with cause",
			err:      Wrap(ErrCodeFileNotFound, errors.New("no such file"), "project directory not found"),
			expected: "project directory not found: no such file",
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

func TestHookError(t *testing.T) {
	t.Run("with stderr", func(t *testing.T) {
		err := &HookError{Hook: "prepare_metadata_for_build_wheel", ExitCode: 1, Stderr: "boom"}
		expected := "hook prepare_metadata_for_build_wheel exited with status 1: boom"
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
	})

	t.Run("without stderr", func(t *testing.T) {
		err := &HookError{Hook: "prepare_metadata_for_build_wheel", ExitCode: 2}
		expected := "hook prepare_metadata_for_build_wheel exited with status 2"
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
	})

	t.Run("never ran", func(t *testing.T) {
		err := &HookError{Hook: "prepare_metadata_for_build_wheel", ExitCode: -1}
		expected := "hook prepare_metadata_for_build_wheel did not run"
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
	})

	t.Run("code method", func(t *testing.T) {
		err := &HookError{}
		if err.Code() != ErrCodeHookFailed {
			t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeHookFailed)
		}
	})
}

func TestIs_TypedErrorCode(t *testing.T) {
	err := fmt.Errorf("extract: %w", &HookError{Hook: "prepare_metadata_for_build_wheel", ExitCode: 1})

	if !Is(err, ErrCodeHookFailed) {
		t.Error("Is(wrapped HookError, HOOK_FAILED) = false, want true")
	}
	if got := GetCode(err); got != ErrCodeHookFailed {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeHookFailed)
	}
	if Is(errors.New("plain"), "") {
		t.Error("Is(plain, \"\") = true, want false")
	}
}
