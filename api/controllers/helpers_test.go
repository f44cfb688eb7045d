package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/marcheplus/marcheplus-backend/api/middleware"
	pkgauth "github.com/marcheplus/marcheplus-backend/pkg/auth"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
	"github.com/marcheplus/marcheplus-backend/pkg/i18n"
	"github.com/marcheplus/marcheplus-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

type requestOption func(*http.Request) *http.Request

func asUser(role enums.Role, id uuid.UUID) requestOption {
	return func(r *http.Request) *http.Request {
		return r.WithContext(middleware.WithPrincipal(r.Context(), pkgauth.Principal{UserID: id, Role: role, Name: "Awa"}))
	}
}

func withParam(key, value string) requestOption {
	return func(r *http.Request) *http.Request {
		routeCtx := chi.RouteContext(r.Context())
		if routeCtx == nil {
			routeCtx = chi.NewRouteContext()
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
		}
		routeCtx.URLParams.Add(key, value)
		return r
	}
}

func inFrench() requestOption {
	return func(r *http.Request) *http.Request {
		tr := i18n.New("fr")
		return r.WithContext(tr.WithLocale(r.Context(), tr.Default()))
	}
}

func serve(t *testing.T, h http.HandlerFunc, method, target, body string, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		req = opt(req)
	}
	resp := httptest.NewRecorder()
	h(resp, req)
	return resp
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", resp.Body.String(), err)
	}
	return env
}

func containsMessage(t *testing.T, body []byte, want string) bool {
	t.Helper()
	var env struct {
		Data struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env.Data.Message == want
}
