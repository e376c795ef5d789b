package controllers

import (
	"net/http"

	"github.com/yusufhadi/smartpos-backend/api/responses"
	"github.com/yusufhadi/smartpos-backend/api/validators"
	"github.com/yusufhadi/smartpos-backend/internal/terminal"
	pkgerrors "github.com/yusufhadi/smartpos-backend/pkg/errors"
	"github.com/yusufhadi/smartpos-backend/pkg/logger"
)

// Checkout finalizes the bill and empties the cart. Payment capture is outside
// this service; the caller gets the settled totals to hand off.
func Checkout(registry *terminal.Registry, currency string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang, err := validators.ParseLanguage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := sessionFromRequest(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if session.Snapshot().ItemCount == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConflict, "cannot checkout an empty cart"))
			return
		}

		final := session.Checkout()

		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"session_id": session.ID.String(),
				"total":      final.Total,
			})
			logg.Info(ctx, "checkout.completed")
		}

		responses.WriteSuccess(w, map[string]any{
			"receipt": receiptResponse{
				Subtotal: final.Subtotal,
				Tax:      final.Tax,
				Total:    final.Total,
				Currency: currency,
			},
			"session": newSessionResponse(session.Snapshot(), lang),
		})
	}
}
