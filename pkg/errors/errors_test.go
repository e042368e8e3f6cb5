package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeStateConflict, status: http.StatusUnprocessableEntity, publicMsg: "state transition disallowed", detailsOK: true},
		{code: CodeRejected, status: http.StatusBadGateway, publicMsg: "request rejected", retryable: true, detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "foo"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestRejectedKeepsBodyVerbatim(t *testing.T) {
	err := Rejected(http.StatusBadRequest, "  empty items\n")
	if err.Code() != CodeRejected {
		t.Fatalf("unexpected code %s", err.Code())
	}
	if got := UserMessage(err); got != "empty items" {
		t.Fatalf("unexpected user message %q", got)
	}
	if got := StatusOf(fmt.Errorf("outer: %w", err)); got != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", got)
	}

	blank := Rejected(http.StatusServiceUnavailable, "")
	if blank.Message() != http.StatusText(http.StatusServiceUnavailable) {
		t.Fatalf("expected status text fallback, got %q", blank.Message())
	}
}

func TestUserMessage(t *testing.T) {
	if UserMessage(nil) != "" {
		t.Fatalf("nil error should have no message")
	}
	if got := UserMessage(stdErrors.New("plain")); got != "plain" {
		t.Fatalf("unexpected message %q", got)
	}
	dep := Wrap(CodeDependency, stdErrors.New("connection refused"), "post batch order")
	if got := UserMessage(dep); got != "connection refused" {
		t.Fatalf("expected transport cause, got %q", got)
	}
	if got := UserMessage(New(CodeValidation, "phone is required")); got != "phone is required" {
		t.Fatalf("unexpected validation message %q", got)
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeNotFound, "no entry")
	if got := As(err); got == nil || got.Code() != CodeNotFound {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
	if !IsCode(fmt.Errorf("wrap: %w", err), CodeNotFound) {
		t.Fatalf("IsCode should see through wrapping")
	}
}

func TestDumpChain(t *testing.T) {
	err := fmt.Errorf("outer: %w", Rejected(http.StatusConflict, "taken"))
	d := Dump(err)
	if d.Code != CodeRejected || d.Status != http.StatusConflict {
		t.Fatalf("unexpected dump %+v", d)
	}
	if len(d.Chain) != 2 {
		t.Fatalf("expected two chain entries, got %v", d.Chain)
	}
}
