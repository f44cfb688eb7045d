package auth

import (
	"github.com/google/uuid"

	"github.com/marcheplus/marcheplus-backend/pkg/enums"
)

// Principal is the authenticated caller as seen by services.
type Principal struct {
	UserID uuid.UUID
	Role   enums.Role
	Name   string
}

// Authenticated reports whether the principal carries a user and a known role.
func (p Principal) Authenticated() bool {
	return p.UserID != uuid.Nil && p.Role.IsValid()
}
