package favorites

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marcheplus/marcheplus-backend/pkg/db"
	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	pkgerrors "github.com/marcheplus/marcheplus-backend/pkg/errors"
)

// Service exposes business rules for favorite management.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]FavoriteItem, error)
	Add(ctx context.Context, userID, productID uuid.UUID) (*AddResult, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) error
}

type favoriteStore interface {
	Find(ctx context.Context, userID, productID uuid.UUID) (*models.Favorite, error)
	Create(ctx context.Context, userID, productID uuid.UUID, at time.Time) (*models.Favorite, error)
	Delete(ctx context.Context, userID, productID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]FavoriteItem, error)
}

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     favoriteStore
	products productFinder
	now      func() time.Time
}

// NewService builds a favorites service with the required dependencies.
func NewService(repo favoriteStore, products productFinder) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "favorites repository required")
	}
	if products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product repository required")
	}
	return &service{repo: repo, products: products, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]FavoriteItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	rows, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list favorites")
	}
	if rows == nil {
		rows = []FavoriteItem{}
	}
	return rows, nil
}

// Add favorites the product. Adding an existing favorite returns it with Created=false.
func (s *service) Add(ctx context.Context, userID, productID uuid.UUID) (*AddResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"product_id": "is required"})
	}

	existing, err := s.repo.Find(ctx, userID, productID)
	switch {
	case err == nil:
		return &AddResult{ID: existing.ID}, nil
	case !db.IsNotFound(err):
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load favorite")
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	created, err := s.repo.Create(ctx, userID, productID, s.now().UTC())
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			// lost an insert race with the same user
			existing, findErr := s.repo.Find(ctx, userID, productID)
			if findErr == nil {
				return &AddResult{ID: existing.ID}, nil
			}
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert favorite")
	}
	return &AddResult{ID: created.ID, Created: true}, nil
}

// Remove drops the favorite regardless of prior state.
func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"product_id": "is required"})
	}
	if err := s.repo.Delete(ctx, userID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete favorite")
	}
	return nil
}
