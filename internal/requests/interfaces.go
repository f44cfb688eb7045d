package requests

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
)

// Repository is the purchase request ledger.
type Repository interface {
	Create(ctx context.Context, request *models.PurchaseRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.PurchaseRequest, error)
	// UpdateStatusIf moves the row from expected to next and reports whether
	// a row changed. A false result means another writer got there first.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next enums.RequestStatus, at time.Time) (bool, error)
	ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]RequestRecord, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]RequestRecord, error)
	ListRecent(ctx context.Context, limit int) ([]RequestRecord, error)
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, typ enums.NotificationType, title, message string)
}
