package favorites

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FavoriteItem is a favorited product with its category and supplier labels.
type FavoriteItem struct {
	FavoriteID           uuid.UUID       `json:"favorite_id" gorm:"column:favorite_id"`
	FavoritedAt          time.Time       `json:"favorited_at" gorm:"column:favorited_at"`
	ProductID            uuid.UUID       `json:"id" gorm:"column:product_id"`
	Name                 string          `json:"name" gorm:"column:name"`
	Price                decimal.Decimal `json:"price" gorm:"column:price"`
	Unit                 string          `json:"unit" gorm:"column:unit"`
	Image                *string         `json:"image,omitempty" gorm:"column:image"`
	Available            bool            `json:"available" gorm:"column:available"`
	CategoryName         string          `json:"category_name" gorm:"column:category_name"`
	CategoryIcon         string          `json:"category_icon" gorm:"column:category_icon"`
	SupplierName         string          `json:"supplier_name" gorm:"column:supplier_name"`
	SupplierBusinessName *string         `json:"supplier_business_name,omitempty" gorm:"column:supplier_business_name"`
}

// AddResult reports the favorite row and whether this call created it.
type AddResult struct {
	ID      uuid.UUID `json:"id"`
	Created bool      `json:"-"`
}
