package middleware

import (
	"net/http"

	"github.com/marcheplus/marcheplus-backend/pkg/i18n"
)

// Locale resolves Accept-Language and stores the translator on the context.
func Locale(tr *i18n.Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tr == nil {
				next.ServeHTTP(w, r)
				return
			}
			tag := tr.Resolve(r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", tag.String())
			next.ServeHTTP(w, r.WithContext(tr.WithLocale(r.Context(), tag)))
		})
	}
}
