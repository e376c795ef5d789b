package validators

import (
	"net/http"
	"strings"

	"github.com/yusufhadi/smartpos-backend/pkg/enums"
	pkgerrors "github.com/yusufhadi/smartpos-backend/pkg/errors"
)

// ParseLanguage reads the optional lang query parameter. An absent parameter
// falls back to English; an unknown one is a validation error.
func ParseLanguage(r *http.Request) (enums.Language, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("lang"))
	if raw == "" {
		return enums.LanguageEnglish, nil
	}
	lang := enums.Language(strings.ToLower(raw))
	if !lang.Valid() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported display language").
			WithDetails(map[string]any{"field": "lang", "value": raw})
	}
	return lang, nil
}
