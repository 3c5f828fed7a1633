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
	}{
		{CodeValidation, http.StatusBadRequest, "validation failed", false},
		{CodeUnauthorized, http.StatusUnauthorized, "authentication required", false},
		{CodeNotFound, http.StatusNotFound, "resource not found", false},
		{CodeConflict, http.StatusConflict, "conflict detected", false},
		{CodeInternal, http.StatusInternalServerError, "internal server error", true},
		{CodeDependency, http.StatusServiceUnavailable, "dependency unavailable", true},
	}

	for _, tc := range tests {
		meta := MetadataFor(tc.code)
		if meta.HTTPStatus != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.code, tc.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tc.publicMsg {
			t.Fatalf("%s: expected public message %q, got %q", tc.code, tc.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tc.retryable {
			t.Fatalf("%s: unexpected retryable flag", tc.code)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("db exploded")
	err := Wrap(CodeInternal, cause, "saving book")

	if !stdErrors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive errors.Is")
	}
	if err.Error() != "INTERNAL_ERROR: saving book" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	typed := New(CodeNotFound, "book not found")
	wrapped := fmt.Errorf("handler: %w", typed)

	found := As(wrapped)
	if found == nil {
		t.Fatalf("expected typed error to be found")
	}
	if found.Code() != CodeNotFound {
		t.Fatalf("unexpected code %s", found.Code())
	}
}

func TestDumpCollectsChain(t *testing.T) {
	cause := stdErrors.New("root")
	err := Wrap(CodeValidation, cause, "bad genre")

	d := Dump(err)
	if d.Code != CodeValidation {
		t.Fatalf("unexpected code %s", d.Code)
	}
	if len(d.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(d.Chain))
	}
}
