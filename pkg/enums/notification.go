package enums

import (
	"fmt"
	"slices"
)

// NotificationType drives the icon the client shows next to a notification.
// Request lifecycle events are "order", market price moves are "price", and
// anything else falls back to "info".
type NotificationType string

const (
	NotificationTypeOrder NotificationType = "order"
	NotificationTypePrice NotificationType = "price"
	NotificationTypeInfo  NotificationType = "info"
)

var notificationTypes = []NotificationType{NotificationTypeOrder, NotificationTypePrice, NotificationTypeInfo}

func (n NotificationType) String() string {
	return string(n)
}

func (n NotificationType) IsValid() bool {
	return slices.Contains(notificationTypes, n)
}

// OrDefault returns n when it is known and info otherwise.
func (n NotificationType) OrDefault() NotificationType {
	if n.IsValid() {
		return n
	}
	return NotificationTypeInfo
}

func ParseNotificationType(value string) (NotificationType, error) {
	if n := NotificationType(value); n.IsValid() {
		return n, nil
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
