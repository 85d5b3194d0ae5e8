package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polkiloo/deliveryportal/internal/domain/model"
	"github.com/polkiloo/deliveryportal/internal/domain/repository"
	"github.com/polkiloo/deliveryportal/internal/pkg/currency"
)

// Notifier writes billing notifications for project owners.
// Delivery is best effort: failures are logged and swallowed.
type Notifier struct {
	notifications repository.NotificationRepository
	logger        *slog.Logger
}

// NewNotifier constructs Notifier.
func NewNotifier(notifications repository.NotificationRepository, logger *slog.Logger) *Notifier {
	return &Notifier{notifications: notifications, logger: logger}
}

// InvoicePaid tells the project owner that the invoice was settled.
func (n *Notifier) InvoicePaid(ctx context.Context, inv model.InvoiceWithOwner) {
	n.send(ctx, inv, "Payment received",
		fmt.Sprintf("Payment of %s for invoice %q was received.", formatAmount(inv.Invoice), inv.Title))
}

// InvoiceOverdue tells the project owner that the invoice passed its due date.
func (n *Notifier) InvoiceOverdue(ctx context.Context, inv model.InvoiceWithOwner) {
	n.send(ctx, inv, "Invoice overdue",
		fmt.Sprintf("Invoice %q for %s is past its due date.", inv.Title, formatAmount(inv.Invoice)))
}

func (n *Notifier) send(ctx context.Context, inv model.InvoiceWithOwner, title, message string) {
	if n == nil || n.notifications == nil || inv.OwnerID == "" {
		return
	}
	err := n.notifications.Create(ctx, model.Notification{
		UserID:    inv.OwnerID,
		ProjectID: inv.ProjectID,
		Title:     title,
		Message:   message,
	})
	if err != nil {
		n.logger.Warn("failed to store notification",
			slog.String("invoice_id", inv.ID),
			slog.String("user_id", inv.OwnerID),
			slog.String("error", err.Error()),
		)
	}
}

func formatAmount(inv model.Invoice) string {
	return inv.Amount.StringFixed(currency.Exponent(inv.Currency)) + " " + inv.Currency
}
