package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductView is a product joined with its category and supplier display fields.
type ProductView struct {
	ID                   uuid.UUID       `json:"id" gorm:"column:id"`
	SupplierID           uuid.UUID       `json:"supplier_id" gorm:"column:supplier_id"`
	CategoryID           uuid.UUID       `json:"category_id" gorm:"column:category_id"`
	Name                 string          `json:"name" gorm:"column:name"`
	Description          string          `json:"description" gorm:"column:description"`
	Price                decimal.Decimal `json:"price" gorm:"column:price"`
	Unit                 string          `json:"unit" gorm:"column:unit"`
	Image                *string         `json:"image,omitempty" gorm:"column:image"`
	Available            bool            `json:"available" gorm:"column:available"`
	CreatedAt            time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt            time.Time       `json:"updated_at" gorm:"column:updated_at"`
	CategoryName         string          `json:"category_name" gorm:"column:category_name"`
	CategoryIcon         string          `json:"category_icon" gorm:"column:category_icon"`
	SupplierName         string          `json:"supplier_name" gorm:"column:supplier_name"`
	SupplierBusinessName *string         `json:"supplier_business_name,omitempty" gorm:"column:supplier_business_name"`
	SupplierLocation     *string         `json:"supplier_location,omitempty" gorm:"column:supplier_location"`
	SupplierPhone        string          `json:"supplier_phone" gorm:"column:supplier_phone"`
}

// ProductList is one page of the browse plus the unpaginated match count.
type ProductList struct {
	Products []ProductView `json:"products"`
	Total    int64         `json:"total"`
}

// ListFilters narrows the public product browse.
type ListFilters struct {
	CategoryID *uuid.UUID
	SupplierID *uuid.UUID
	Search     string
}

// CreateProductInput carries a supplier's new listing.
type CreateProductInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Unit        string
	Image       *string
}
