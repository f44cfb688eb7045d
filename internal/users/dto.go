package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Email        *string    `json:"email,omitempty"`
	Role         enums.Role `json:"role"`
	BusinessName *string    `json:"business_name,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Verified     bool       `json:"verified"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Name         string
	Phone        string
	Email        *string
	PasswordHash string
	Role         enums.Role
	BusinessName *string
	Location     *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:           u.ID,
		Name:         u.Name,
		Phone:        u.Phone,
		Email:        u.Email,
		Role:         u.Role,
		BusinessName: u.BusinessName,
		Location:     u.Location,
		Verified:     u.Verified,
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
	}
}

// ToModel builds the row to insert. Suppliers start unverified until an admin reviews them.
func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         c.Role,
		BusinessName: c.BusinessName,
		Location:     c.Location,
		Verified:     c.Role != enums.RoleSupplier,
	}
}
