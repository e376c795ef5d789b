package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/yusufhadi/smartpos-backend/pkg/errors"
	"github.com/yusufhadi/smartpos-backend/pkg/gemini"
	"github.com/yusufhadi/smartpos-backend/pkg/logger"
)

// Query is the operator's input: free text, a product image, or both.
type Query struct {
	Text      string
	Image     []byte
	ImageMIME string
}

// Empty reports whether the query carries no evidence at all.
func (q Query) Empty() bool {
	return strings.TrimSpace(q.Text) == "" && len(q.Image) == 0
}

// Recognizer is the outbound surface of the external recognition service.
// pkg/gemini implements it; tests stub it.
type Recognizer interface {
	IdentifyProduct(ctx context.Context, text string, image []byte, imageMIME string) (json.RawMessage, error)
}

// Resolver turns an operator query into a validated, priced product. It is
// stateless between calls and never retries internally; retry policy belongs
// to the operator.
type Resolver interface {
	Resolve(ctx context.Context, query Query) (*ResolvedProduct, error)
}

type service struct {
	recognizer Recognizer
	currency   string
	logg       *logger.Logger
}

// NewService builds a resolver over the given recognition client. currency is
// the fixed receipt currency; mismatched quotes are logged and ignored.
func NewService(recognizer Recognizer, currency string, logg *logger.Logger) (Resolver, error) {
	if recognizer == nil {
		return nil, fmt.Errorf("recognizer required")
	}
	return &service{
		recognizer: recognizer,
		currency:   strings.TrimSpace(currency),
		logg:       logg,
	}, nil
}

func (s *service) Resolve(ctx context.Context, query Query) (*ResolvedProduct, error) {
	if query.Empty() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidQuery, "a text query or product image is required")
	}

	raw, err := s.recognizer.IdentifyProduct(ctx, query.Text, query.Image, query.ImageMIME)
	if err != nil {
		if errors.Is(err, gemini.ErrEmptyResult) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotRecognized, err, "no matching product found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recognition service unreachable")
	}

	return s.validate(ctx, raw)
}

// validate enforces the response schema: required non-empty name, required
// non-negative numeric price. Anything short of that is a resolution failure,
// never a degraded success.
func (s *service) validate(ctx context.Context, raw json.RawMessage) (*ResolvedProduct, error) {
	var payload struct {
		Name     *string      `json:"name"`
		Price    *json.Number `json:"price"`
		Currency string       `json:"currency"`
		Category string       `json:"category"`
	}

	decoder := json.NewDecoder(strings.NewReader(string(raw)))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeMalformedResponse, err, "payload is not valid JSON")
	}

	if payload.Name == nil && payload.Price == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotRecognized, "no matching product found")
	}
	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeMalformedResponse, "payload is missing a product name")
	}
	if payload.Price == nil {
		return nil, pkgerrors.New(pkgerrors.CodeMalformedResponse, "payload is missing a price")
	}

	price, err := decimal.NewFromString(payload.Price.String())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeMalformedResponse, err, "price is not numeric")
	}
	if price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeMalformedResponse, "price is negative")
	}

	if cur := strings.TrimSpace(payload.Currency); cur != "" && s.currency != "" && !strings.EqualFold(cur, s.currency) {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"quoted_currency": cur,
				"fixed_currency":  s.currency,
			}), "resolver.currency_mismatch_ignored")
		}
	}

	return &ResolvedProduct{
		Name:     strings.TrimSpace(*payload.Name),
		Price:    price,
		Category: strings.TrimSpace(payload.Category),
	}, nil
}
