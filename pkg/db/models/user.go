package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcheplus/marcheplus-backend/pkg/enums"
)

// User is a merchant, supplier or admin account identified by phone.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string     `gorm:"column:name;not null"`
	Phone        string     `gorm:"column:phone;not null;uniqueIndex"`
	Email        *string    `gorm:"column:email"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         enums.Role `gorm:"column:role;type:user_role;not null"`
	BusinessName *string    `gorm:"column:business_name"`
	Location     *string    `gorm:"column:location"`
	Verified     bool       `gorm:"column:verified;not null;default:false"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
