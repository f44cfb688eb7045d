package favorites

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
)

const favoriteColumns = `f.id AS favorite_id, f.created_at AS favorited_at,
p.id AS product_id, p.name, p.price, p.unit, p.image, p.available,
c.name AS category_name, c.icon AS category_icon,
u.name AS supplier_name, u.business_name AS supplier_business_name`

// Repository encapsulates favorite persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a favorites repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Find returns the favorite row for the pair, or gorm.ErrRecordNotFound.
func (r *Repository) Find(ctx context.Context, userID, productID uuid.UUID) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

// Create inserts a favorite; the unique (user_id, product_id) constraint rejects duplicates.
func (r *Repository) Create(ctx context.Context, userID, productID uuid.UUID, at time.Time) (*models.Favorite, error) {
	favorite := &models.Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: at,
	}
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		return nil, err
	}
	return favorite, nil
}

// Delete removes the pair if it exists.
func (r *Repository) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favorite{}).
		Error
}

// List returns the user's favorites newest first.
func (r *Repository) List(ctx context.Context, userID uuid.UUID) ([]FavoriteItem, error) {
	var rows []FavoriteItem
	err := r.db.WithContext(ctx).
		Table("favorites f").
		Select(favoriteColumns).
		Joins("JOIN products p ON p.id = f.product_id").
		Joins("JOIN categories c ON c.id = p.category_id").
		Joins("JOIN users u ON u.id = p.supplier_id").
		Where("f.user_id = ?", userID).
		Order("f.created_at DESC, f.id DESC").
		Scan(&rows).Error
	return rows, err
}
