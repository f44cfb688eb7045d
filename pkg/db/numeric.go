package db

import "github.com/shopspring/decimal"

// Numeric mirrors a Postgres numeric(precision, scale) column.
type Numeric struct {
	Precision int32
	Scale     int32
}

var (
	// PriceColumn matches products.price.
	PriceColumn = Numeric{Precision: 14, Scale: 2}
	// QuantityColumn matches purchase_requests.quantity.
	QuantityColumn = Numeric{Precision: 14, Scale: 3}
)

// IntegerDigits is the widest integer part the column stores.
func (n Numeric) IntegerDigits() int32 {
	return n.Precision - n.Scale
}

// HasScale reports whether d carries no more fractional digits than the column keeps.
func (n Numeric) HasScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(n.Scale))
}

// Fits reports whether d, rounded to the column scale, stays inside the integer range.
func (n Numeric) Fits(d decimal.Decimal) bool {
	limit := decimal.New(1, n.IntegerDigits())
	return d.Round(n.Scale).Abs().LessThan(limit)
}
