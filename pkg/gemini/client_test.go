package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	genai "google.golang.org/genai"
)

type stubModels struct {
	resp     *genai.GenerateContentResponse
	err      error
	captured struct {
		model    string
		contents []*genai.Content
		cfg      *genai.GenerateContentConfig
	}
}

func (s *stubModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.captured.model = model
	s.captured.contents = contents
	s.captured.cfg = cfg
	return s.resp, s.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func newStubClient(t *testing.T, stub *stubModels) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), "test-key", "Carrefour UAE", "AED", WithModels(stub), WithModel("test-model"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(context.Background(), "  ", "Carrefour UAE", "AED"); err == nil {
		t.Fatal("expected error for blank api key")
	}
}

func TestIdentifyProductRequestShape(t *testing.T) {
	t.Parallel()

	stub := &stubModels{resp: textResponse(`{"name":"Nescafé Gold","price":45,"currency":"AED","category":"Beverages"}`)}
	client := newStubClient(t, stub)

	raw, err := client.IdentifyProduct(context.Background(), "Nescafé Gold", []byte{0xff, 0xd8}, "image/jpeg")
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if !strings.Contains(string(raw), "Nescafé Gold") {
		t.Fatalf("unexpected payload %s", raw)
	}

	if stub.captured.model != "test-model" {
		t.Fatalf("unexpected model %q", stub.captured.model)
	}

	parts := stub.captured.contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("expected image + text parts, got %d", len(parts))
	}
	if parts[0].InlineData == nil || parts[0].InlineData.MIMEType != "image/jpeg" {
		t.Fatalf("image should lead the parts as primary evidence, got %+v", parts[0])
	}
	if !strings.Contains(parts[1].Text, "Carrefour UAE") || !strings.Contains(parts[1].Text, `"AED"`) {
		t.Fatalf("instruction missing retailer or currency: %s", parts[1].Text)
	}

	cfg := stub.captured.cfg
	if cfg.ResponseMIMEType != "application/json" {
		t.Fatalf("expected JSON response mime, got %q", cfg.ResponseMIMEType)
	}
	if cfg.ResponseSchema == nil || len(cfg.ResponseSchema.Required) != 2 {
		t.Fatalf("expected name/price required in schema, got %+v", cfg.ResponseSchema)
	}
	if len(cfg.Tools) != 1 || cfg.Tools[0].GoogleSearch == nil {
		t.Fatal("google search grounding should be enabled")
	}
}

func TestIdentifyProductTextOnlyOmitsImagePart(t *testing.T) {
	t.Parallel()

	stub := &stubModels{resp: textResponse(`{"name":"Arabic Bread","price":3.5}`)}
	client := newStubClient(t, stub)

	if _, err := client.IdentifyProduct(context.Background(), "Arabic Bread", nil, ""); err != nil {
		t.Fatalf("identify: %v", err)
	}
	parts := stub.captured.contents[0].Parts
	if len(parts) != 1 || parts[0].InlineData != nil {
		t.Fatalf("expected a single text part, got %+v", parts)
	}
	if !strings.Contains(parts[0].Text, "Arabic Bread") {
		t.Fatalf("operator text should be appended to the instruction: %s", parts[0].Text)
	}
}

func TestIdentifyProductEmptyCandidates(t *testing.T) {
	t.Parallel()

	stub := &stubModels{resp: &genai.GenerateContentResponse{}}
	client := newStubClient(t, stub)

	_, err := client.IdentifyProduct(context.Background(), "mystery item", nil, "")
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
}

func TestIdentifyProductNullPayload(t *testing.T) {
	t.Parallel()

	stub := &stubModels{resp: textResponse("null")}
	client := newStubClient(t, stub)

	_, err := client.IdentifyProduct(context.Background(), "mystery item", nil, "")
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
}

func TestIdentifyProductTransportError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	stub := &stubModels{err: boom}
	client := newStubClient(t, stub)

	_, err := client.IdentifyProduct(context.Background(), "milk", nil, "")
	if !errors.Is(err, boom) {
		t.Fatalf("expected transport error to surface, got %v", err)
	}
}
