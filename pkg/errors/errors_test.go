package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code      Code
		status    int
		retryable bool
	}{
		{CodeInvalidQuery, http.StatusBadRequest, false},
		{CodeNotRecognized, http.StatusUnprocessableEntity, false},
		{CodeMalformedResponse, http.StatusBadGateway, false},
		{CodeDependency, http.StatusServiceUnavailable, true},
		{CodeConflict, http.StatusConflict, false},
	}

	for _, tc := range cases {
		meta := MetadataFor(tc.code)
		if meta.HTTPStatus != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.code, tc.status, meta.HTTPStatus)
		}
		if meta.Retryable != tc.retryable {
			t.Fatalf("%s: expected retryable=%v", tc.code, tc.retryable)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: connection refused")
	err := Wrap(CodeDependency, cause, "identify product")

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive errors.Is")
	}
	if !Is(err, CodeDependency) {
		t.Fatalf("expected dependency code, got %v", err)
	}
	if Is(err, CodeNotRecognized) {
		t.Fatal("code match should be exact")
	}
}

func TestAsThroughFmtWrap(t *testing.T) {
	t.Parallel()

	inner := New(CodeNotRecognized, "no product match")
	outer := fmt.Errorf("resolve: %w", inner)

	typed := As(outer)
	if typed == nil || typed.Code() != CodeNotRecognized {
		t.Fatalf("expected typed error through wrap, got %v", typed)
	}
}

func TestDumpCollectsChain(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeMalformedResponse, errors.New("price is negative"), "validate payload")
	dump := Dump(err)

	if dump.Code != CodeMalformedResponse {
		t.Fatalf("unexpected code %q", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected full chain, got %v", dump.Chain)
	}
}
