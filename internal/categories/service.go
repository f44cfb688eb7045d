package categories

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	pkgerrors "github.com/marcheplus/marcheplus-backend/pkg/errors"
)

type Service interface {
	List(ctx context.Context) ([]models.Category, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "categories repository required")
	}
	return &service{repo: repo}, nil
}

// List returns every category in display order.
func (s *service) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	if rows == nil {
		rows = []models.Category{}
	}
	return rows, nil
}

func (s *service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup category")
	}
	return ok, nil
}
