package market

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	product "github.com/marcheplus/marcheplus-backend/internal/products"
)

const (
	// AlternativesLimit is how many cheaper-or-equal competitors a detail page shows.
	AlternativesLimit = 5
	// SupplierProductsLimit is how many other listings from the same supplier are shown.
	SupplierProductsLimit = 4
	// SummariesLimit caps the editorial summaries feed.
	SummariesLimit = 10
)

// MarketStat aggregates available products of one category.
type MarketStat struct {
	CategoryID     uuid.UUID       `json:"category_id"`
	CategoryName   string          `json:"category_name"`
	CategoryIcon   string          `json:"category_icon"`
	AudioLabelFR   *string         `json:"audio_label_fr,omitempty"`
	TotalProducts  int64           `json:"total_products"`
	TotalSuppliers int64           `json:"total_suppliers"`
	MinPrice       decimal.Decimal `json:"min_price"`
	MaxPrice       decimal.Decimal `json:"max_price"`
	AvgPrice       decimal.Decimal `json:"avg_price"`
	Unit           string          `json:"unit"`
	Units          []string        `json:"units"`
}

// Alternative is a competing listing with its supplier's display fields.
type Alternative struct {
	ID                   uuid.UUID       `json:"id" gorm:"column:id"`
	Name                 string          `json:"name" gorm:"column:name"`
	Price                decimal.Decimal `json:"price" gorm:"column:price"`
	Unit                 string          `json:"unit" gorm:"column:unit"`
	Image                *string         `json:"image,omitempty" gorm:"column:image"`
	SupplierID           uuid.UUID       `json:"supplier_id" gorm:"column:supplier_id"`
	SupplierName         string          `json:"supplier_name" gorm:"column:supplier_name"`
	SupplierBusinessName *string         `json:"supplier_business_name,omitempty" gorm:"column:supplier_business_name"`
	SupplierLocation     *string         `json:"supplier_location,omitempty" gorm:"column:supplier_location"`
}

// ProductDetail bundles a product with same-supplier listings and cheaper alternatives.
type ProductDetail struct {
	Product          product.ProductView `json:"product"`
	SupplierProducts []Alternative       `json:"supplier_products"`
	Alternatives     []Alternative       `json:"alternatives"`
}

// Summary is an editorial market note.
type Summary struct {
	ID           uuid.UUID  `json:"id" gorm:"column:id"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty" gorm:"column:category_id"`
	CategoryName *string    `json:"category_name,omitempty" gorm:"column:category_name"`
	SummaryText  string     `json:"summary_text" gorm:"column:summary_text"`
	Date         time.Time  `json:"date" gorm:"column:date"`
}

// statRow is the raw per-category aggregate; the average is derived in Go
// so rounding is identical across databases.
type statRow struct {
	CategoryID     uuid.UUID       `gorm:"column:category_id"`
	CategoryName   string          `gorm:"column:category_name"`
	CategoryIcon   string          `gorm:"column:category_icon"`
	AudioLabelFR   *string         `gorm:"column:audio_label_fr"`
	TotalProducts  int64           `gorm:"column:total_products"`
	TotalSuppliers int64           `gorm:"column:total_suppliers"`
	MinPrice       decimal.Decimal `gorm:"column:min_price"`
	MaxPrice       decimal.Decimal `gorm:"column:max_price"`
	SumPrice       decimal.Decimal `gorm:"column:sum_price"`
}

type unitRow struct {
	CategoryID uuid.UUID `gorm:"column:category_id"`
	Unit       string    `gorm:"column:unit"`
}
