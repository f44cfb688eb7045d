package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
	"github.com/marcheplus/marcheplus-backend/pkg/logger"
	"github.com/marcheplus/marcheplus-backend/pkg/metrics"
)

type creator interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// Dispatcher records user-facing notifications. Delivery is best effort:
// a failed insert is logged and counted but never returned to the caller.
type Dispatcher struct {
	repo    creator
	logg    *logger.Logger
	metrics *metrics.RequestMetrics
	now     func() time.Time
}

func NewDispatcher(repo creator, logg *logger.Logger, m *metrics.RequestMetrics) *Dispatcher {
	return &Dispatcher{repo: repo, logg: logg, metrics: m, now: time.Now}
}

// Notify inserts an unread notification for userID.
func (d *Dispatcher) Notify(ctx context.Context, userID uuid.UUID, typ enums.NotificationType, title, message string) {
	if d == nil || d.repo == nil {
		return
	}
	typ = typ.OrDefault()

	notification := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: d.now().UTC(),
	}
	if err := d.repo.Create(ctx, notification); err != nil {
		d.metrics.IncNotificationFailure(string(typ))
		if d.logg != nil {
			logCtx := d.logg.WithFields(ctx, map[string]any{
				"recipient_id":      userID.String(),
				"notification_type": string(typ),
			})
			d.logg.Error(logCtx, "notification.dispatch_failed", err)
		}
	}
}
