package enums

import (
	"testing"

	pkgerrors "github.com/yusufhadi/smartpos-backend/pkg/errors"
)

func TestResolutionFailureRoundTrip(t *testing.T) {
	t.Parallel()

	kinds := []ResolutionFailure{
		ResolutionFailureInvalidQuery,
		ResolutionFailureServiceUnavailable,
		ResolutionFailureMalformedResponse,
		ResolutionFailureNotRecognized,
	}

	for _, kind := range kinds {
		if !kind.Valid() {
			t.Fatalf("%s should be valid", kind)
		}
		back, ok := FailureFromCode(kind.ErrorCode())
		if !ok || back != kind {
			t.Fatalf("%s did not round-trip through its error code, got %q", kind, back)
		}
	}

	if _, ok := FailureFromCode(pkgerrors.CodeInternal); ok {
		t.Fatal("internal errors are not a resolution failure kind")
	}
}

func TestOnlyServiceUnavailableIsRetryable(t *testing.T) {
	t.Parallel()

	if !ResolutionFailureServiceUnavailable.Retryable() {
		t.Fatal("transport failures should be retryable")
	}
	for _, kind := range []ResolutionFailure{
		ResolutionFailureInvalidQuery,
		ResolutionFailureMalformedResponse,
		ResolutionFailureNotRecognized,
	} {
		if kind.Retryable() {
			t.Fatalf("%s should not be retryable", kind)
		}
	}
}

func TestLanguageDirection(t *testing.T) {
	t.Parallel()

	if LanguageEnglish.Direction() != DirectionLTR {
		t.Fatal("english should render left-to-right")
	}
	if LanguageUrdu.Direction() != DirectionRTL {
		t.Fatal("urdu should render right-to-left")
	}
	if Language("xx").Valid() {
		t.Fatal("unknown language should be invalid")
	}
}
