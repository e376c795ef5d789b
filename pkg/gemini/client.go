package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

var (
	errAPIKeyRequired = errors.New("gemini api key is required")

	// ErrEmptyResult signals that the model returned no usable candidate at
	// all. Callers treat this as "product not recognized" rather than a
	// transport failure.
	ErrEmptyResult = errors.New("gemini returned an empty result")
)

// productSchema constrains the model to the structured payload the resolver
// expects. name and price are required; category and currency are advisory.
var productSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":     {Type: genai.TypeString},
		"price":    {Type: genai.TypeNumber},
		"currency": {Type: genai.TypeString},
		"category": {Type: genai.TypeString},
	},
	Required: []string{"name", "price"},
}

// Client wraps the Gemini API for product identification and pricing.
type Client struct {
	cli      models
	model    string
	retailer string
	currency string
}

type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type genaiModels struct {
	cli *genai.Client
}

func (g genaiModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.cli.Models.GenerateContent(ctx, model, contents, cfg)
}

// Option configures optional client behavior.
type Option func(*Client)

// WithModel overrides the default generation model.
func WithModel(model string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(model)
		if trimmed != "" {
			c.model = trimmed
		}
	}
}

// WithModels overrides the generation backend. Tests inject a stub here.
func WithModels(m models) Option {
	return func(c *Client) {
		if m != nil {
			c.cli = m
		}
	}
}

// NewClient builds the Gemini client given an API key. retailer names the
// store whose shelf prices the model should ground against; currency is the
// fixed receipt currency the model is told to quote in.
func NewClient(ctx context.Context, apiKey, retailer, currency string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		model:    defaultModel,
		retailer: strings.TrimSpace(retailer),
		currency: strings.TrimSpace(currency),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.cli == nil {
		cli, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  trimmedKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create genai client: %w", err)
		}
		client.cli = genaiModels{cli: cli}
	}

	return client, nil
}

// IdentifyProduct asks the model to identify the product in the given inputs
// and quote its typical shelf price. The image, when present, leads the
// content parts as primary evidence; the operator's text is supplementary.
// The raw JSON payload is returned unvalidated; schema enforcement lives in
// the resolver.
func (c *Client) IdentifyProduct(ctx context.Context, text string, image []byte, imageMIME string) (json.RawMessage, error) {
	if c == nil || c.cli == nil {
		return nil, errors.New("gemini client not configured")
	}

	parts := make([]*genai.Part, 0, 2)
	if len(image) > 0 {
		mime := imageMIME
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{Data: image, MIMEType: mime}})
	}
	parts = append(parts, &genai.Part{Text: c.instruction(text)})

	resp, err := c.cli.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: parts}},
		&genai.GenerateContentConfig{
			Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
			ResponseMIMEType: "application/json",
			ResponseSchema:   productSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResult
	}

	txt := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	if txt == "" || txt == "null" {
		return nil, ErrEmptyResult
	}
	return json.RawMessage(txt), nil
}

func (c *Client) instruction(text string) string {
	retailer := c.retailer
	if retailer == "" {
		retailer = "a large supermarket"
	}
	currency := c.currency
	if currency == "" {
		currency = "AED"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Act as a %s point-of-sale assistant. Identify this product and find its current typical retail price at %s. ", retailer, retailer)
	fmt.Fprintf(&b, "Return a JSON object with: { \"name\": \"string\", \"price\": number, \"currency\": %q, \"category\": \"string\" }.", currency)
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		b.WriteString(" ")
		b.WriteString(trimmed)
	}
	return b.String()
}
