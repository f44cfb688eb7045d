package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marcheplus/marcheplus-backend/pkg/enums"
)

// PurchaseRequest is a merchant's request to buy a quantity of a product.
// SupplierID and Unit are copied from the product at creation and never
// recomputed.
type PurchaseRequest struct {
	ID         uuid.UUID           `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MerchantID uuid.UUID           `json:"merchant_id" gorm:"column:merchant_id;type:uuid;not null"`
	ProductID  uuid.UUID           `json:"product_id" gorm:"column:product_id;type:uuid;not null"`
	SupplierID uuid.UUID           `json:"supplier_id" gorm:"column:supplier_id;type:uuid;not null"`
	Quantity   decimal.Decimal     `json:"quantity" gorm:"column:quantity;type:numeric(14,3);not null"`
	Unit       string              `json:"unit" gorm:"column:unit;not null"`
	Message    *string             `json:"message,omitempty" gorm:"column:message"`
	Status     enums.RequestStatus `json:"status" gorm:"column:status;type:request_status;not null;default:'pending'"`
	CreatedAt  time.Time           `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time           `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}
