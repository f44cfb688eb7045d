package controllers

import (
	"net/http"

	"github.com/marcheplus/marcheplus-backend/api/middleware"
	pkgauth "github.com/marcheplus/marcheplus-backend/pkg/auth"
)

// principal returns the caller, or the zero Principal for anonymous requests.
func principal(r *http.Request) pkgauth.Principal {
	p, _ := middleware.PrincipalFromContext(r.Context())
	return p
}
