package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapAndIsCode(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(base, CodeParseError, "parse row")

	if !IsCode(err, CodeParseError) {
		t.Error("Expected PARSE_ERROR code")
	}
	if IsCode(err, CodeNotFound) {
		t.Error("Did not expect NOT_FOUND code")
	}
	if !errors.Is(err, base) {
		t.Error("Expected wrapped error to unwrap to base")
	}
}

func TestAddContext(t *testing.T) {
	err := New(CodeValidationError, "bad mode")
	err = AddContext(err, CtxMode, "treatment")

	if !strings.Contains(err.Error(), "treatment") {
		t.Errorf("Expected context in message, got %q", err.Error())
	}
	if !IsCode(err, CodeValidationError) {
		t.Error("Context must not change the code")
	}
}

func TestAddContext_PlainError(t *testing.T) {
	err := AddContext(errors.New("boom"), CtxPath, "/tmp/x")

	if !IsCode(err, CodeInternal) {
		t.Error("Plain errors wrap as INTERNAL_ERROR")
	}
	if !strings.Contains(err.Error(), "/tmp/x") {
		t.Errorf("Expected context in message, got %q", err.Error())
	}
}
