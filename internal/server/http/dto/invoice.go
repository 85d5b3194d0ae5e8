package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceResponse is the JSON shape of an invoice.
type InvoiceResponse struct {
	ID                string     `json:"id"`
	ProjectID         string     `json:"project_id"`
	Title             string     `json:"title"`
	Amount            string     `json:"amount"`
	Currency          string     `json:"currency"`
	Status            string     `json:"status"`
	DueDate           *string    `json:"due_date"`
	CreatedAt         time.Time  `json:"created_at"`
	RazorpayOrderID   *string    `json:"razorpay_order_id"`
	RazorpayPaymentID *string    `json:"razorpay_payment_id"`
	PaidAt            *time.Time `json:"paid_at"`
}

// CreateInvoiceRequest describes an invoice issued by an administrator.
// DueDate uses the YYYY-MM-DD layout.
type CreateInvoiceRequest struct {
	ProjectID string          `json:"project_id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Status    string          `json:"status"`
	DueDate   string          `json:"due_date"`
}

// UpdateInvoiceStatusRequest carries the manual status override.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status"`
}
