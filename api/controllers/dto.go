package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yusufhadi/smartpos-backend/internal/cart"
	"github.com/yusufhadi/smartpos-backend/internal/locale"
	"github.com/yusufhadi/smartpos-backend/internal/terminal"
	"github.com/yusufhadi/smartpos-backend/internal/workflow"
	"github.com/yusufhadi/smartpos-backend/pkg/enums"
	pkgerrors "github.com/yusufhadi/smartpos-backend/pkg/errors"
)

type lineItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Quantity  int       `json:"quantity"`
	Category  string    `json:"category,omitempty"`
	LineTotal string    `json:"line_total"`
	AddedAt   time.Time `json:"added_at"`
}

type receiptResponse struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type sessionResponse struct {
	SessionID   uuid.UUID           `json:"session_id"`
	State       enums.WorkflowState `json:"state"`
	PendingText string              `json:"pending_text,omitempty"`
	LastFailure *workflow.Failure   `json:"last_failure,omitempty"`
	Items       []lineItemResponse  `json:"items"`
	ItemCount   int                 `json:"item_count"`
	Receipt     receiptResponse     `json:"receipt"`
	Locale      locale.Bundle       `json:"locale"`
}

func newSessionResponse(snap terminal.Snapshot, lang enums.Language) sessionResponse {
	items := make([]lineItemResponse, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, newLineItemResponse(item))
	}
	return sessionResponse{
		SessionID:   snap.SessionID,
		State:       snap.State,
		PendingText: snap.PendingText,
		LastFailure: snap.LastFailure,
		Items:       items,
		ItemCount:   snap.ItemCount,
		Receipt: receiptResponse{
			Subtotal: snap.Receipt.Subtotal,
			Tax:      snap.Receipt.Tax,
			Total:    snap.Receipt.Total,
			Currency: snap.Currency,
		},
		Locale: locale.For(lang),
	}
}

func newLineItemResponse(item cart.LineItem) lineItemResponse {
	return lineItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Price:     item.Price.StringFixed(2),
		Quantity:  item.Quantity,
		Category:  item.Category,
		LineTotal: item.Price.Mul(quantityDecimal(item.Quantity)).StringFixed(2),
		AddedAt:   item.AddedAt,
	}
}

func quantityDecimal(qty int) decimal.Decimal {
	return decimal.NewFromInt(int64(qty))
}

func sessionFromRequest(r *http.Request, registry *terminal.Registry) (*terminal.Session, error) {
	raw := chi.URLParam(r, "sessionId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid session id")
	}
	return registry.Get(id)
}
