package middleware

import (
	"context"

	"github.com/google/uuid"

	pkgauth "github.com/marcheplus/marcheplus-backend/pkg/auth"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxRole      contextKey = "actor_role"
	ctxUserName  contextKey = "user_name"
	ctxAccessID  contextKey = "access_id"
	ctxRequestID contextKey = "request_id"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// AccessIDFromContext returns the jti of the bearer token.
func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

// PrincipalFromContext returns the caller when Auth ran and seeded valid claims.
func PrincipalFromContext(ctx context.Context) (pkgauth.Principal, bool) {
	id, err := uuid.Parse(UserIDFromContext(ctx))
	if err != nil {
		return pkgauth.Principal{}, false
	}
	role, err := enums.ParseRole(RoleFromContext(ctx))
	if err != nil {
		return pkgauth.Principal{}, false
	}
	name, _ := ctx.Value(ctxUserName).(string)
	return pkgauth.Principal{UserID: id, Role: role, Name: name}, true
}

// WithPrincipal injects the caller into the context; used by Auth and by tests.
func WithPrincipal(ctx context.Context, p pkgauth.Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, p.UserID.String())
	ctx = context.WithValue(ctx, ctxRole, string(p.Role))
	return context.WithValue(ctx, ctxUserName, p.Name)
}
