package repository

import (
	"context"
	"time"

	"github.com/polkiloo/deliveryportal/internal/domain/model"
)

// InvoiceRepository describes persistence operations with invoices.
type InvoiceRepository interface {
	GetWithProjectOwner(ctx context.Context, id string) (*model.InvoiceWithOwner, error)
	// SetGatewayOrder stores orderID only when the invoice has no order yet and is not paid.
	// It reports whether the write was applied.
	SetGatewayOrder(ctx context.Context, id, orderID string) (bool, error)
	FindByGatewayOrderID(ctx context.Context, orderID string) (*model.InvoiceWithOwner, error)
	// MarkPaid settles the invoice. Repeating it with the same payment id is a no-op,
	// a different payment id on a settled invoice yields ErrPaymentConflict.
	MarkPaid(ctx context.Context, id, paymentID string, paidAt time.Time) (*model.Invoice, error)
	Create(ctx context.Context, invoice model.NewInvoice) (*model.Invoice, error)
	ListByProject(ctx context.Context, projectID string) ([]model.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status model.InvoiceStatus) (*model.Invoice, error)
	Delete(ctx context.Context, id string) error
	MarkOverdue(ctx context.Context, now time.Time, limit int) ([]model.InvoiceWithOwner, error)
}
