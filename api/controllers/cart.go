package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yusufhadi/smartpos-backend/api/responses"
	"github.com/yusufhadi/smartpos-backend/api/validators"
	"github.com/yusufhadi/smartpos-backend/internal/terminal"
	pkgerrors "github.com/yusufhadi/smartpos-backend/pkg/errors"
	"github.com/yusufhadi/smartpos-backend/pkg/logger"
)

// CartSnapshot returns the live cart, totals, and workflow status for one
// session, localized for the requested display language.
func CartSnapshot(registry *terminal.Registry, logg *logger.Logger) http.HandlerFunc {
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

		responses.WriteSuccess(w, newSessionResponse(session.Snapshot(), lang))
	}
}

// CartRemoveItem deletes one line item. Removing an id that is already gone
// succeeds with removed=false so retries stay safe.
func CartRemoveItem(registry *terminal.Registry, logg *logger.Logger) http.HandlerFunc {
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

		itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		removed := session.RemoveItem(itemID)

		if logg != nil {
			ctx := logg.WithItemID(r.Context(), itemID.String())
			if removed {
				logg.Info(ctx, "cart.item_removed")
			} else {
				logg.Debug(ctx, "cart.item_remove_noop")
			}
		}

		responses.WriteSuccess(w, map[string]any{
			"removed": removed,
			"session": newSessionResponse(session.Snapshot(), lang),
		})
	}
}
