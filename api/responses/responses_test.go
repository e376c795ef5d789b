package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/yusufhadi/smartpos-backend/pkg/errors"
	"github.com/yusufhadi/smartpos-backend/pkg/types"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.ErrorEnvelope {
	t.Helper()
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return envelope
}

func TestWriteSuccessEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"hello": "world"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Data["hello"] != "world" {
		t.Fatalf("unexpected payload %+v", envelope)
	}
}

func TestWriteErrorCodedMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		err       error
		status    int
		code      string
		retryable bool
	}{
		{
			name:   "invalid query",
			err:    pkgerrors.New(pkgerrors.CodeInvalidQuery, "text or image required"),
			status: http.StatusBadRequest,
			code:   string(pkgerrors.CodeInvalidQuery),
		},
		{
			name:   "not recognized",
			err:    pkgerrors.New(pkgerrors.CodeNotRecognized, "no product match"),
			status: http.StatusUnprocessableEntity,
			code:   string(pkgerrors.CodeNotRecognized),
		},
		{
			name:      "dependency failure is retryable",
			err:       pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("timeout"), "recognition call failed"),
			status:    http.StatusServiceUnavailable,
			code:      string(pkgerrors.CodeDependency),
			retryable: true,
		},
		{
			name:   "malformed upstream payload",
			err:    pkgerrors.New(pkgerrors.CodeMalformedResponse, "price missing"),
			status: http.StatusBadGateway,
			code:   string(pkgerrors.CodeMalformedResponse),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(context.Background(), nil, rec, tc.err)

			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, rec.Code)
			}
			envelope := decodeError(t, rec)
			if envelope.Error.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, envelope.Error.Code)
			}
			if envelope.Error.Retryable != tc.retryable {
				t.Fatalf("expected retryable=%v, got %v", tc.retryable, envelope.Error.Retryable)
			}
		})
	}
}

func TestWriteErrorUncodedBecomesInternal(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, errors.New("boom"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	envelope := decodeError(t, rec)
	if envelope.Error.Code != string(pkgerrors.CodeInternal) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
	if envelope.Error.Message != "internal server error" {
		t.Fatalf("internal errors must not leak causes, got %q", envelope.Error.Message)
	}
}

func TestWriteErrorDetailsOnlyWhenAllowed(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "bad request").
		WithDetails(map[string]any{"field": "text"})
	WriteError(context.Background(), nil, rec, err)

	envelope := decodeError(t, rec)
	details, ok := envelope.Error.Details.(map[string]any)
	if !ok || details["field"] != "text" {
		t.Fatalf("expected validation details, got %+v", envelope.Error.Details)
	}

	rec = httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeInternal, "secret").WithDetails("secret"))
	envelope = decodeError(t, rec)
	if envelope.Error.Details != nil {
		t.Fatalf("internal errors must not expose details, got %+v", envelope.Error.Details)
	}
}
