package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a supplier listing. Unit is free-form text ("kg", "sac 50kg", ...).
type Product struct {
	ID          uuid.UUID       `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SupplierID  uuid.UUID       `json:"supplier_id" gorm:"column:supplier_id;type:uuid;not null"`
	CategoryID  uuid.UUID       `json:"category_id" gorm:"column:category_id;type:uuid;not null"`
	Name        string          `json:"name" gorm:"column:name;not null"`
	Description string          `json:"description" gorm:"column:description;not null;default:''"`
	Price       decimal.Decimal `json:"price" gorm:"column:price;type:numeric(14,2);not null"`
	Unit        string          `json:"unit" gorm:"column:unit;not null;default:'kg'"`
	Image       *string         `json:"image,omitempty" gorm:"column:image"`
	Available   bool            `json:"available" gorm:"column:available;not null;default:true"`
	CreatedAt   time.Time       `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}
