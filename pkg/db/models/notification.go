package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcheplus/marcheplus-backend/pkg/enums"
)

// Notification stores an in-app message addressed to a single user.
type Notification struct {
	ID        uuid.UUID              `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID              `json:"user_id" gorm:"column:user_id;type:uuid;not null"`
	Type      enums.NotificationType `json:"type" gorm:"column:type;type:notification_type;not null;default:'info'"`
	Title     string                 `json:"title" gorm:"column:title;not null"`
	Message   string                 `json:"message" gorm:"column:message;not null"`
	Read      bool                   `json:"read" gorm:"column:read;not null;default:false"`
	CreatedAt time.Time              `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}
