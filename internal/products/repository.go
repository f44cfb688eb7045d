package product

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	"github.com/marcheplus/marcheplus-backend/pkg/pagination"
)

const productViewColumns = `p.id, p.supplier_id, p.category_id, p.name, p.description, p.price, p.unit,
p.image, p.available, p.created_at, p.updated_at,
c.name AS category_name, c.icon AS category_icon,
u.name AS supplier_name, u.business_name AS supplier_business_name,
u.location AS supplier_location, u.phone AS supplier_phone`

// Repository reads and writes product listings.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads the product without joins.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindView loads the product with category and supplier fields, regardless of availability.
func (r *Repository) FindView(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	var rows []ProductView
	if err := r.viewQuery(ctx).Where("p.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// ListAvailable returns available products newest first.
func (r *Repository) ListAvailable(ctx context.Context, filters ListFilters, params pagination.Params) ([]ProductView, error) {
	params = params.Normalize()
	var rows []ProductView
	err := applyFilters(r.viewQuery(ctx), filters).
		Order("p.created_at DESC, p.id DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Scan(&rows).Error
	return rows, err
}

// CountAvailable counts every available product matching filters, ignoring pagination.
func (r *Repository) CountAvailable(ctx context.Context, filters ListFilters) (int64, error) {
	var total int64
	err := applyFilters(r.db.WithContext(ctx).Table("products p"), filters).Count(&total).Error
	return total, err
}

// applyFilters narrows to available rows; search matches name or description.
func applyFilters(query *gorm.DB, filters ListFilters) *gorm.DB {
	query = query.Where("p.available = ?", true)
	if filters.CategoryID != nil {
		query = query.Where("p.category_id = ?", *filters.CategoryID)
	}
	if filters.SupplierID != nil {
		query = query.Where("p.supplier_id = ?", *filters.SupplierID)
	}
	if search := strings.ToLower(strings.TrimSpace(filters.Search)); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("(LOWER(p.name) LIKE ? OR LOWER(p.description) LIKE ?)", pattern, pattern)
	}
	return query
}

// ListBySupplier returns every product owned by supplierID, including unavailable ones.
func (r *Repository) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]ProductView, error) {
	var rows []ProductView
	err := r.viewQuery(ctx).
		Where("p.supplier_id = ?", supplierID).
		Order("p.created_at DESC, p.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *Repository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products p").
		Select(productViewColumns).
		Joins("JOIN categories c ON c.id = p.category_id").
		Joins("JOIN users u ON u.id = p.supplier_id")
}
