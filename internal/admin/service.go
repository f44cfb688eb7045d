package admin

import (
	"context"

	"github.com/marcheplus/marcheplus-backend/internal/users"
	"github.com/marcheplus/marcheplus-backend/pkg/auth"
	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
	pkgerrors "github.com/marcheplus/marcheplus-backend/pkg/errors"
)

const (
	RecentUsersLimit = 10
	TopProductsLimit = 5
	UserListLimit    = 100
)

// Dashboard is the admin overview payload.
type Dashboard struct {
	Stats       Counts           `json:"stats"`
	RecentUsers []*users.UserDTO `json:"recent_users"`
	TopProducts []TopProduct     `json:"top_products"`
}

// Service exposes admin-only reads.
type Service interface {
	Dashboard(ctx context.Context, principal auth.Principal) (*Dashboard, error)
	ListUsers(ctx context.Context, principal auth.Principal) ([]*users.UserDTO, error)
}

type dashboardStore interface {
	Counts(ctx context.Context) (Counts, error)
	RecentUsers(ctx context.Context, limit int) ([]models.User, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
}

type userLister interface {
	List(ctx context.Context, limit int) ([]models.User, error)
}

type service struct {
	repo  dashboardStore
	users userLister
}

func NewService(repo dashboardStore, userRepo userLister) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "admin repository required")
	}
	if userRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user repository required")
	}
	return &service{repo: repo, users: userRepo}, nil
}

func (s *service) Dashboard(ctx context.Context, principal auth.Principal) (*Dashboard, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count dashboard totals")
	}
	recent, err := s.repo.RecentUsers(ctx, RecentUsersLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list recent users")
	}
	top, err := s.repo.TopProducts(ctx, TopProductsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rank products")
	}
	if top == nil {
		top = []TopProduct{}
	}
	return &Dashboard{
		Stats:       counts,
		RecentUsers: toDTOs(recent),
		TopProducts: top,
	}, nil
}

func (s *service) ListUsers(ctx context.Context, principal auth.Principal) ([]*users.UserDTO, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}
	rows, err := s.users.List(ctx, UserListLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	return toDTOs(rows), nil
}

func requireAdmin(principal auth.Principal) error {
	if !principal.Authenticated() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if principal.Role != enums.RoleAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
	}
	return nil
}

func toDTOs(rows []models.User) []*users.UserDTO {
	out := make([]*users.UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, users.FromModel(&rows[i]))
	}
	return out
}
