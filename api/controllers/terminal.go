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

// SessionOpen starts a fresh terminal session with an empty cart.
func SessionOpen(registry *terminal.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang, err := validators.ParseLanguage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := registry.Open()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open session"))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newSessionResponse(session.Snapshot(), lang))
	}
}

// SessionClose tears down a session, cancelling any in-flight resolution.
func SessionClose(registry *terminal.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "sessionId")
		id, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid session id"))
			return
		}

		if !registry.Close(id) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "terminal session not found"))
			return
		}

		responses.WriteSuccess(w, map[string]any{"closed": true})
	}
}
