package requests

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
)

const recordColumns = `pr.id, pr.merchant_id, pr.product_id, pr.supplier_id, pr.quantity, pr.unit,
pr.message, pr.status, pr.created_at, pr.updated_at,
p.name AS product_name, p.price AS product_price, p.unit AS product_unit,
m.name AS merchant_name, m.business_name AS merchant_business_name,
m.location AS merchant_location, m.phone AS merchant_phone,
s.name AS supplier_name, s.business_name AS supplier_business_name, s.phone AS supplier_phone`

type repository struct {
	db *gorm.DB
}

// NewRepository builds a purchase request ledger bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, request *models.PurchaseRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PurchaseRequest, error) {
	var request models.PurchaseRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next enums.RequestStatus, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PurchaseRequest{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(map[string]any{
			"status":     next,
			"updated_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]RequestRecord, error) {
	var rows []RequestRecord
	err := r.recordQuery(ctx).
		Where("pr.merchant_id = ?", merchantID).
		Order("pr.created_at DESC, pr.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]RequestRecord, error) {
	var rows []RequestRecord
	err := r.recordQuery(ctx).
		Where("pr.supplier_id = ?", supplierID).
		Order("pr.created_at DESC, pr.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ListRecent(ctx context.Context, limit int) ([]RequestRecord, error) {
	var rows []RequestRecord
	err := r.recordQuery(ctx).
		Order("pr.created_at DESC, pr.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) recordQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("purchase_requests pr").
		Select(recordColumns).
		Joins("JOIN products p ON p.id = pr.product_id").
		Joins("JOIN users m ON m.id = pr.merchant_id").
		Joins("JOIN users s ON s.id = pr.supplier_id")
}
