package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
}

func TestAppError_UnknownLabel_Details(t *testing.T) {
	err := UnknownLabel("zz", 4)
	if err.Code != ErrCodeUnknownLabel {
		t.Errorf("expected UNKNOWN_LABEL, got %s", err.Code)
	}
	if err.Details["label"] != "zz" {
		t.Errorf("expected label=zz, got %v", err.Details["label"])
	}
	if err.Details["declared"] != 4 {
		t.Errorf("expected declared=4, got %v", err.Details["declared"])
	}
	if !strings.Contains(err.Error(), "zz") {
		t.Errorf("expected message to mention the label, got %q", err.Error())
	}
}

func TestAppError_NotFound_EmptyID(t *testing.T) {
	err := NotFound("capability", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
}

func TestAppError_InvalidInput_Field(t *testing.T) {
	err := InvalidInput("steps", "must not be empty")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code)
	}
	if err.Details["field"] != "steps" {
		t.Errorf("expected field=steps, got %v", err.Details["field"])
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Internal(nil).WithCause(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := New(ErrCodeInternal, "x").WithDetail("k", "v")
	if err.Details["k"] != "v" {
		t.Errorf("expected k=v, got %v", err.Details)
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
	}{
		{"unknown label", UnknownLabel(1, 2), ErrCodeUnknownLabel},
		{"duplicate label", DuplicateLabel("a", 1), ErrCodeDuplicateLabel},
		{"frozen", Frozen("f"), ErrCodeFrozen},
		{"invalid handle", InvalidHandle(-1), ErrCodeInvalidHandle},
		{"classifier child", ClassifierChild(2), ErrCodeClassifierChild},
		{"validation", Validation("bad"), ErrCodeInvalidInput},
		{"not found", NotFound("pipeline", "p"), ErrCodeNotFound},
		{"internal", Internal(nil), ErrCodeInternal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected %s, got %s", tc.code, tc.err.Code)
			}
		})
	}
}

func TestIsConstructionCode_Table(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want bool
	}{
		{ErrCodeDuplicateLabel, true},
		{ErrCodeFrozen, true},
		{ErrCodeInvalidHandle, true},
		{ErrCodeClassifierChild, true},
		{ErrCodeUnknownLabel, false},
		{ErrCodeNotFound, false},
	}
	for _, tc := range tests {
		if got := IsConstructionCode(tc.code); got != tc.want {
			t.Errorf("IsConstructionCode(%s) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("dispatch: %w", UnknownLabel("x", 1))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to unwrap")
	}
	if appErr.Code != ErrCodeUnknownLabel {
		t.Errorf("expected UNKNOWN_LABEL, got %s", appErr.Code)
	}
	if !HasCode(wrapped, ErrCodeUnknownLabel) {
		t.Error("expected HasCode true")
	}
	if HasCode(stderrors.New("plain"), ErrCodeUnknownLabel) {
		t.Error("expected HasCode false for plain error")
	}
}

func TestFromRecovered(t *testing.T) {
	if FromRecovered(nil) != nil {
		t.Error("expected nil for nil")
	}

	orig := Frozen("f")
	if got := FromRecovered(orig); got != orig {
		t.Errorf("expected AppError passthrough, got %v", got)
	}

	plain := stderrors.New("boom")
	got := FromRecovered(plain)
	if !HasCode(got, ErrCodeInternal) || !stderrors.Is(got, plain) {
		t.Errorf("expected Internal wrapping boom, got %v", got)
	}

	got = FromRecovered("text panic")
	if !HasCode(got, ErrCodeInternal) || !strings.Contains(got.Error(), "text panic") {
		t.Errorf("expected Internal with text, got %v", got)
	}
}

func TestAppError_ImplementsErrorInterface(t *testing.T) {
	var _ error = (*AppError)(nil)
}
