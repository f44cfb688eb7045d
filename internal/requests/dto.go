package requests

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marcheplus/marcheplus-backend/pkg/enums"
)

// AdminListLimit bounds the global listing returned to admins.
const AdminListLimit = 100

// RequestRecord is a purchase request enriched with product and party
// display fields for listings.
type RequestRecord struct {
	ID                   uuid.UUID           `json:"id" gorm:"column:id"`
	MerchantID           uuid.UUID           `json:"merchant_id" gorm:"column:merchant_id"`
	ProductID            uuid.UUID           `json:"product_id" gorm:"column:product_id"`
	SupplierID           uuid.UUID           `json:"supplier_id" gorm:"column:supplier_id"`
	Quantity             decimal.Decimal     `json:"quantity" gorm:"column:quantity"`
	Unit                 string              `json:"unit" gorm:"column:unit"`
	Message              *string             `json:"message,omitempty" gorm:"column:message"`
	Status               enums.RequestStatus `json:"status" gorm:"column:status"`
	CreatedAt            time.Time           `json:"created_at" gorm:"column:created_at"`
	UpdatedAt            time.Time           `json:"updated_at" gorm:"column:updated_at"`
	ProductName          string              `json:"product_name" gorm:"column:product_name"`
	ProductPrice         decimal.Decimal     `json:"product_price" gorm:"column:product_price"`
	ProductUnit          string              `json:"product_unit" gorm:"column:product_unit"`
	MerchantName         string              `json:"merchant_name" gorm:"column:merchant_name"`
	MerchantBusinessName *string             `json:"merchant_business_name,omitempty" gorm:"column:merchant_business_name"`
	MerchantLocation     *string             `json:"merchant_location,omitempty" gorm:"column:merchant_location"`
	MerchantPhone        string              `json:"merchant_phone" gorm:"column:merchant_phone"`
	SupplierName         string              `json:"supplier_name" gorm:"column:supplier_name"`
	SupplierBusinessName *string             `json:"supplier_business_name,omitempty" gorm:"column:supplier_business_name"`
	SupplierPhone        string              `json:"supplier_phone" gorm:"column:supplier_phone"`
}

// CreateRequestInput carries a merchant's purchase request. A nil quantity means one unit.
type CreateRequestInput struct {
	ProductID uuid.UUID
	Quantity  *decimal.Decimal
	Message   *string
}
