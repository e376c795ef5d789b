package controllers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/yusufhadi/smartpos-backend/api/responses"
	"github.com/yusufhadi/smartpos-backend/api/validators"
	"github.com/yusufhadi/smartpos-backend/internal/resolver"
	"github.com/yusufhadi/smartpos-backend/internal/terminal"
	"github.com/yusufhadi/smartpos-backend/internal/workflow"
	pkgerrors "github.com/yusufhadi/smartpos-backend/pkg/errors"
	"github.com/yusufhadi/smartpos-backend/pkg/logger"
)

type resolveRequest struct {
	Text      string `json:"text" validate:"max=512"`
	Image     string `json:"image" validate:"omitempty,base64"`
	ImageMIME string `json:"image_mime" validate:"omitempty,oneof=image/jpeg image/png image/webp"`
}

type resolveResponse struct {
	Accepted bool   `json:"accepted"`
	State    string `json:"state"`
	Reason   string `json:"reason,omitempty"`
}

// ResolveSubmit kicks off product resolution for a session. The call returns
// immediately; the result lands in the cart (or in last_failure) and is picked
// up by the next snapshot poll. A session already resolving refuses the new
// query instead of queueing it.
func ResolveSubmit(registry *terminal.Registry, maxImageBytes int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload resolveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := resolver.Query{Text: validators.SanitizeQuery(payload.Text)}
		if payload.Image != "" {
			image, err := base64.StdEncoding.DecodeString(payload.Image)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "image must be base64 encoded"))
				return
			}
			if maxImageBytes > 0 && len(image) > maxImageBytes {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "image too large").
					WithDetails(map[string]any{"max_bytes": maxImageBytes}))
				return
			}
			query.Image = image
			query.ImageMIME = payload.ImageMIME
			if query.ImageMIME == "" {
				query.ImageMIME = "image/jpeg"
			}
		}

		if err := session.Submit(query); err != nil {
			if errors.Is(err, workflow.ErrAlreadyInProgress) {
				responses.WriteSuccessStatus(w, http.StatusAccepted, resolveResponse{
					Accepted: false,
					State:    string(session.Snapshot().State),
					Reason:   "resolution_in_progress",
				})
				return
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, resolveResponse{
			Accepted: true,
			State:    string(session.Snapshot().State),
		})
	}
}
