package admin

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
)

// Counts are the dashboard headline numbers.
type Counts struct {
	TotalUsers          int64 `json:"total_users"`
	Merchants           int64 `json:"merchants"`
	Suppliers           int64 `json:"suppliers"`
	UnverifiedSuppliers int64 `json:"unverified_suppliers"`
	TotalProducts       int64 `json:"total_products"`
	TotalRequests       int64 `json:"total_requests"`
	PendingRequests     int64 `json:"pending_requests"`
}

// TopProduct ranks products by how many purchase requests they received.
type TopProduct struct {
	ID           uuid.UUID       `json:"id" gorm:"column:id"`
	Name         string          `json:"name" gorm:"column:name"`
	Price        decimal.Decimal `json:"price" gorm:"column:price"`
	Unit         string          `json:"unit" gorm:"column:unit"`
	RequestCount int64           `json:"request_count" gorm:"column:request_count"`
}

// Repository reads the admin dashboard aggregates.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Counts runs one COUNT per headline figure.
func (r *Repository) Counts(ctx context.Context) (Counts, error) {
	var out Counts
	db := r.db.WithContext(ctx)
	queries := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&out.TotalUsers, db.Model(&models.User{})},
		{&out.Merchants, db.Model(&models.User{}).Where("role = ?", enums.RoleMerchant)},
		{&out.Suppliers, db.Model(&models.User{}).Where("role = ?", enums.RoleSupplier)},
		{&out.UnverifiedSuppliers, db.Model(&models.User{}).Where("role = ? AND verified = ?", enums.RoleSupplier, false)},
		{&out.TotalProducts, db.Model(&models.Product{})},
		{&out.TotalRequests, db.Model(&models.PurchaseRequest{})},
		{&out.PendingRequests, db.Model(&models.PurchaseRequest{}).Where("status = ?", enums.RequestStatusPending)},
	}
	for _, q := range queries {
		if err := q.query.Count(q.dest).Error; err != nil {
			return Counts{}, err
		}
	}
	return out, nil
}

// RecentUsers returns the latest sign-ups.
func (r *Repository) RecentUsers(ctx context.Context, limit int) ([]models.User, error) {
	var rows []models.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// TopProducts ranks every product by request count, including products never requested.
func (r *Repository) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	var rows []TopProduct
	err := r.db.WithContext(ctx).
		Table("products p").
		Select("p.id, p.name, p.price, p.unit, COUNT(pr.id) AS request_count").
		Joins("LEFT JOIN purchase_requests pr ON pr.product_id = p.id").
		Group("p.id, p.name, p.price, p.unit, p.created_at").
		Order("request_count DESC, p.created_at ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
