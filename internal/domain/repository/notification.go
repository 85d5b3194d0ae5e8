package repository

import (
	"context"

	"github.com/polkiloo/deliveryportal/internal/domain/model"
)

// NotificationRepository stores user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n model.Notification) error
}

// PaymentEventRepository keeps the audit trail of webhook deliveries.
type PaymentEventRepository interface {
	// Record reports false when the event id was already stored.
	Record(ctx context.Context, rec model.PaymentEventRecord) (bool, error)
}
