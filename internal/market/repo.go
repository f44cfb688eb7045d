package market

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const statsQuery = `
SELECT c.id AS category_id,
       c.name AS category_name,
       c.icon AS category_icon,
       c.audio_label_fr,
       COUNT(p.id) AS total_products,
       COUNT(DISTINCT p.supplier_id) AS total_suppliers,
       MIN(p.price) AS min_price,
       MAX(p.price) AS max_price,
       SUM(p.price) AS sum_price
FROM categories c
JOIN products p ON p.category_id = c.id AND p.available = ?
GROUP BY c.id, c.name, c.icon, c.audio_label_fr, c.sort_order
ORDER BY c.sort_order ASC, c.name ASC
`

const alternativeColumns = `p.id, p.name, p.price, p.unit, p.image, p.supplier_id,
u.name AS supplier_name, u.business_name AS supplier_business_name, u.location AS supplier_location`

// Repository runs the read-only market queries against the catalog.
type Repository interface {
	CategoryStats(ctx context.Context) ([]statRow, error)
	CategoryUnits(ctx context.Context) ([]unitRow, error)
	Alternatives(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]Alternative, error)
	SupplierProducts(ctx context.Context, supplierID, excludeID uuid.UUID, limit int) ([]Alternative, error)
	Summaries(ctx context.Context, limit int) ([]Summary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CategoryStats(ctx context.Context) ([]statRow, error) {
	var rows []statRow
	err := r.db.WithContext(ctx).Raw(statsQuery, true).Scan(&rows).Error
	return rows, err
}

func (r *repository) CategoryUnits(ctx context.Context) ([]unitRow, error) {
	var rows []unitRow
	err := r.db.WithContext(ctx).
		Table("products").
		Distinct("category_id", "unit").
		Where("available = ?", true).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Alternatives(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]Alternative, error) {
	var rows []Alternative
	err := r.alternativeQuery(ctx).
		Where("p.category_id = ? AND p.id <> ? AND p.available = ?", categoryID, excludeID, true).
		Order("p.price ASC, p.created_at ASC, p.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) SupplierProducts(ctx context.Context, supplierID, excludeID uuid.UUID, limit int) ([]Alternative, error) {
	var rows []Alternative
	err := r.alternativeQuery(ctx).
		Where("p.supplier_id = ? AND p.id <> ? AND p.available = ?", supplierID, excludeID, true).
		Order("p.created_at ASC, p.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Summaries(ctx context.Context, limit int) ([]Summary, error) {
	var rows []Summary
	err := r.db.WithContext(ctx).
		Table("market_summaries ms").
		Select("ms.id, ms.category_id, c.name AS category_name, ms.summary_text, ms.date").
		Joins("LEFT JOIN categories c ON c.id = ms.category_id").
		Order("ms.date DESC, ms.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) alternativeQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products p").
		Select(alternativeColumns).
		Joins("JOIN users u ON u.id = p.supplier_id")
}
