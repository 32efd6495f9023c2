package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidRepo, "not a git repository: %s", "/tmp/x")
	if !strings.Contains(err.Error(), "INVALID_REPO") {
		t.Errorf("Error() = %q, want code prefix", err.Error())
	}
	if !strings.Contains(err.Error(), "/tmp/x") {
		t.Errorf("Error() = %q, want formatted message", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("exit status 128")
	err := Wrap(ErrCodeGit, cause, "load snapshot")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if !strings.Contains(err.Error(), "exit status 128") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeNotFound, "missing")
	if !Is(err, ErrCodeNotFound) {
		t.Error("Is(err, NOT_FOUND) = false, want true")
	}
	if Is(err, ErrCodeGit) {
		t.Error("Is(err, GIT_ERROR) = true, want false")
	}
	if Is(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("Is(plain error) = true, want false")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeTimeout, "slow")); got != ErrCodeTimeout {
		t.Errorf("GetCode() = %q, want TIMEOUT", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unknown output format")
	if got := UserMessage(err); got != "unknown output format" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidRepo, http.StatusBadRequest},
		{ErrCodeSnapshotNotFound, http.StatusNotFound},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		{ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(New(tt.code, "x")); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
	if got := HTTPStatus(stderrors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("HTTPStatus(plain) = %d, want 500", got)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{"term", "json", "svg", "dot", "gv"} {
		if err := ValidateFormat(format); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want nil", format, err)
		}
	}
	if err := ValidateFormat("pdf"); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(pdf) = %v, want INVALID_FORMAT", err)
	}
	if err := ValidateFormat(""); err == nil {
		t.Error("ValidateFormat(empty) = nil, want error")
	}
}

func TestValidateRepoPath(t *testing.T) {
	if err := ValidateRepoPath("/home/user/project"); err != nil {
		t.Errorf("ValidateRepoPath(valid) = %v", err)
	}
	if err := ValidateRepoPath(""); err == nil {
		t.Error("ValidateRepoPath(empty) = nil, want error")
	}
	if err := ValidateRepoPath("bad\x00path"); err == nil {
		t.Error("ValidateRepoPath(null byte) = nil, want error")
	}
}

func TestValidateRowRange(t *testing.T) {
	if err := ValidateRowRange(0, 50); err != nil {
		t.Errorf("ValidateRowRange(0, 50) = %v", err)
	}
	if err := ValidateRowRange(-1, 5); !Is(err, ErrCodeInvalidRange) {
		t.Errorf("ValidateRowRange(-1, 5) = %v, want INVALID_RANGE", err)
	}
	if err := ValidateRowRange(10, 5); !Is(err, ErrCodeInvalidRange) {
		t.Errorf("ValidateRowRange(10, 5) = %v, want INVALID_RANGE", err)
	}
}
