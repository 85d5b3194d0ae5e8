package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus describes the billing lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice is a billable record attached to a project.
type Invoice struct {
	ID               string
	ProjectID        string
	Title            string
	Amount           decimal.Decimal
	Currency         string
	Status           InvoiceStatus
	DueDate          *time.Time
	GatewayOrderID   *string
	GatewayPaymentID *string
	PaidAt           *time.Time
	CreatedAt        time.Time
}

// HasGatewayOrder reports whether a gateway order was already created for the invoice.
func (i *Invoice) HasGatewayOrder() bool {
	return i.GatewayOrderID != nil && *i.GatewayOrderID != ""
}

// IsSettled reports whether the invoice is paid through the gateway.
func (i *Invoice) IsSettled() bool {
	return i.Status == InvoiceStatusPaid && i.GatewayPaymentID != nil && *i.GatewayPaymentID != ""
}

// InvoiceWithOwner carries the invoice together with the client owning its project.
// OwnerID is empty when the project has no client assigned.
type InvoiceWithOwner struct {
	Invoice
	OwnerID string
}

// NewInvoice holds the fields an administrator supplies when issuing an invoice.
type NewInvoice struct {
	ProjectID string
	Title     string
	Amount    decimal.Decimal
	Currency  string
	Status    InvoiceStatus
	DueDate   *time.Time
}
