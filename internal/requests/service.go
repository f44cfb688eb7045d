package requests

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marcheplus/marcheplus-backend/pkg/auth"
	"github.com/marcheplus/marcheplus-backend/pkg/db"
	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
	pkgerrors "github.com/marcheplus/marcheplus-backend/pkg/errors"
	"github.com/marcheplus/marcheplus-backend/pkg/i18n"
	"github.com/marcheplus/marcheplus-backend/pkg/logger"
	"github.com/marcheplus/marcheplus-backend/pkg/metrics"
)

// Service drives the purchase request lifecycle.
type Service interface {
	CreateRequest(ctx context.Context, principal auth.Principal, input CreateRequestInput) (*models.PurchaseRequest, error)
	UpdateStatus(ctx context.Context, principal auth.Principal, requestID uuid.UUID, next enums.RequestStatus) (*models.PurchaseRequest, error)
	ListRequestsForUser(ctx context.Context, principal auth.Principal) ([]RequestRecord, error)
}

// Options holds the optional collaborators of the service.
type Options struct {
	Translator         *i18n.Translator
	Metrics            *metrics.RequestMetrics
	Logger             *logger.Logger
	NotifyOnTransition bool
}

type service struct {
	repo               Repository
	products           productReader
	notifier           notifier
	tr                 *i18n.Translator
	metrics            *metrics.RequestMetrics
	logg               *logger.Logger
	notifyOnTransition bool
	now                func() time.Time
}

// NewService builds the purchase request orchestrator.
func NewService(repo Repository, products productReader, notifier notifier, opts Options) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("purchase request repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	tr := opts.Translator
	if tr == nil {
		tr = i18n.New("fr")
	}
	return &service{
		repo:               repo,
		products:           products,
		notifier:           notifier,
		tr:                 tr,
		metrics:            opts.Metrics,
		logg:               opts.Logger,
		notifyOnTransition: opts.NotifyOnTransition,
		now:                time.Now,
	}, nil
}

func (s *service) CreateRequest(ctx context.Context, principal auth.Principal, input CreateRequestInput) (*models.PurchaseRequest, error) {
	if !principal.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if principal.Role != enums.RoleMerchant {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only merchants can create purchase requests")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"product_id": "is required"})
	}

	quantity := decimal.NewFromInt(1)
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if !quantity.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}
	if !db.QuantityColumn.HasScale(quantity) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"quantity": "must have at most 3 decimal places"})
	}
	if !db.QuantityColumn.Fits(quantity) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"quantity": "is too large"})
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	now := s.now().UTC()
	request := &models.PurchaseRequest{
		ID:         uuid.New(),
		MerchantID: principal.UserID,
		ProductID:  product.ID,
		SupplierID: product.SupplierID,
		Quantity:   quantity,
		Unit:       product.Unit,
		Message:    trimmedOrNil(input.Message),
		Status:     enums.RequestStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert purchase request")
	}
	s.metrics.IncCreated()

	locale := s.tr.Default()
	s.notifier.Notify(ctx, product.SupplierID, enums.NotificationTypeOrder,
		s.tr.Sprintf(locale, i18n.MsgNewRequestTitle),
		s.tr.Sprintf(locale, i18n.MsgNewRequestBody, s.displayName(principal.Name), quantity.String(), request.Unit, product.Name),
	)
	return request, nil
}

func (s *service) UpdateStatus(ctx context.Context, principal auth.Principal, requestID uuid.UUID, next enums.RequestStatus) (*models.PurchaseRequest, error) {
	if !principal.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if requestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id")
	}
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	request, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := authorizeTransition(principal, request, next); err != nil {
		return nil, err
	}

	current := request.Status
	switch {
	case current.IsTerminal():
		s.metrics.IncConflict("invalid_transition")
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "invalid status transition").
			WithDetails(map[string]string{"from": string(current), "to": string(next)})
	case current == next:
		return request, nil
	case !current.CanTransitionTo(next):
		s.metrics.IncConflict("invalid_transition")
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "invalid status transition").
			WithDetails(map[string]string{"from": string(current), "to": string(next)})
	}

	now := s.now().UTC()
	changed, err := s.repo.UpdateStatusIf(ctx, request.ID, current, next, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update purchase request status")
	}
	if !changed {
		fresh, err := s.load(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if fresh.Status == next && !next.IsTerminal() {
			return fresh, nil
		}
		s.metrics.IncConflict("lost_race")
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "purchase request was updated concurrently")
	}

	request.Status = next
	request.UpdatedAt = now
	s.metrics.IncTransition(string(current), string(next))
	if s.logg != nil {
		s.logg.Info(s.logg.WithRequestStatus(ctx, request.ID.String(), string(next)), "purchase_request.transitioned")
	}

	if s.notifyOnTransition {
		s.notifyTransition(ctx, principal, request)
	}
	return request, nil
}

func (s *service) ListRequestsForUser(ctx context.Context, principal auth.Principal) ([]RequestRecord, error) {
	if !principal.Authenticated() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	var (
		rows []RequestRecord
		err  error
	)
	switch principal.Role {
	case enums.RoleMerchant:
		rows, err = s.repo.ListByMerchant(ctx, principal.UserID)
	case enums.RoleSupplier:
		rows, err = s.repo.ListBySupplier(ctx, principal.UserID)
	case enums.RoleAdmin:
		rows, err = s.repo.ListRecent(ctx, AdminListLimit)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list purchase requests")
	}
	if rows == nil {
		rows = []RequestRecord{}
	}
	return rows, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.PurchaseRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load purchase request")
	}
	return request, nil
}

// authorizeTransition checks who may move a request to next. Accepting and
// rejecting belong to the supplier; completion to either party.
func authorizeTransition(principal auth.Principal, request *models.PurchaseRequest, next enums.RequestStatus) error {
	isSupplier := principal.Role == enums.RoleSupplier && principal.UserID == request.SupplierID
	isMerchant := principal.Role == enums.RoleMerchant && principal.UserID == request.MerchantID

	switch principal.Role {
	case enums.RoleAdmin:
		return pkgerrors.New(pkgerrors.CodeForbidden, "not a party to this purchase request")
	case enums.RoleMerchant, enums.RoleSupplier:
		if !isSupplier && !isMerchant {
			return pkgerrors.New(pkgerrors.CodeForbidden, "not a party to this purchase request")
		}
	default:
		return pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
	}

	if next == enums.RequestStatusCompleted {
		return nil
	}
	if !isSupplier {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the supplier can accept or reject")
	}
	return nil
}

func (s *service) notifyTransition(ctx context.Context, principal auth.Principal, request *models.PurchaseRequest) {
	productName := ""
	if product, err := s.products.FindByID(ctx, request.ProductID); err == nil {
		productName = product.Name
	} else if s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "product_id", request.ProductID.String()), "purchase_request.notify_product_lookup_failed")
	}

	locale := s.tr.Default()
	actor := s.displayName(principal.Name)
	switch request.Status {
	case enums.RequestStatusAccepted:
		s.notifier.Notify(ctx, request.MerchantID, enums.NotificationTypeOrder,
			s.tr.Sprintf(locale, i18n.MsgRequestAcceptedTitle),
			s.tr.Sprintf(locale, i18n.MsgRequestAcceptedBody, actor, productName))
	case enums.RequestStatusRejected:
		s.notifier.Notify(ctx, request.MerchantID, enums.NotificationTypeOrder,
			s.tr.Sprintf(locale, i18n.MsgRequestRejectedTitle),
			s.tr.Sprintf(locale, i18n.MsgRequestRejectedBody, actor, productName))
	case enums.RequestStatusCompleted:
		recipient := request.SupplierID
		if principal.UserID == request.SupplierID {
			recipient = request.MerchantID
		}
		s.notifier.Notify(ctx, recipient, enums.NotificationTypeOrder,
			s.tr.Sprintf(locale, i18n.MsgRequestDoneTitle),
			s.tr.Sprintf(locale, i18n.MsgRequestDoneBody, productName, actor))
	}
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *service) displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return s.tr.Sprintf(s.tr.Default(), i18n.MsgSomeone)
	}
	return name
}
