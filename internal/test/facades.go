package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polkiloo/deliveryportal/internal/domain/model"
)

// PaymentFacadeStub provides controllable behaviour for payment endpoints.
type PaymentFacadeStub struct {
	CreateOrderFn func(context.Context, model.Identity, string) (*model.OrderResult, error)
	WebhookFn     func(context.Context, model.WebhookDelivery) (model.WebhookOutcome, error)
	VerifyFn      func(context.Context, model.PaymentConfirmation) (*model.Invoice, error)
	KeyID         string
	KeyErr        error
}

// CreateOrder delegates to provided function or returns a fresh order.
func (s PaymentFacadeStub) CreateOrder(ctx context.Context, caller model.Identity, invoiceID string) (*model.OrderResult, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, caller, invoiceID)
	}
	return &model.OrderResult{OrderID: "order_1", Amount: 15000, Currency: "USD", Created: true}, nil
}

// HandleWebhook delegates to provided function or reports a settlement.
func (s PaymentFacadeStub) HandleWebhook(ctx context.Context, delivery model.WebhookDelivery) (model.WebhookOutcome, error) {
	if s.WebhookFn != nil {
		return s.WebhookFn(ctx, delivery)
	}
	return model.WebhookOutcomeSettled, nil
}

// VerifyPayment delegates to provided function or returns a paid invoice.
func (s PaymentFacadeStub) VerifyPayment(ctx context.Context, c model.PaymentConfirmation) (*model.Invoice, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, c)
	}
	orderID, paymentID := c.OrderID, c.PaymentID
	paidAt := time.Unix(1700000000, 0).UTC()
	return &model.Invoice{ID: "inv-1", Status: model.InvoiceStatusPaid, GatewayOrderID: &orderID, GatewayPaymentID: &paymentID, PaidAt: &paidAt}, nil
}

// CheckoutKeyID returns the configured key id.
func (s PaymentFacadeStub) CheckoutKeyID() (string, error) {
	if s.KeyErr != nil {
		return "", s.KeyErr
	}
	if s.KeyID == "" {
		return "rzp_test_key", nil
	}
	return s.KeyID, nil
}

// InvoiceFacadeStub simulates invoice administration.
type InvoiceFacadeStub struct {
	CreateFn func(context.Context, model.Identity, model.NewInvoice) (*model.Invoice, error)
	ListFn   func(context.Context, model.Identity, string) ([]model.Invoice, error)
	StatusFn func(context.Context, model.Identity, string, model.InvoiceStatus) (*model.Invoice, error)
	DeleteFn func(context.Context, model.Identity, string) error
}

// CreateInvoice echoes the request as a stored invoice.
func (s InvoiceFacadeStub) CreateInvoice(ctx context.Context, caller model.Identity, in model.NewInvoice) (*model.Invoice, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, caller, in)
	}
	return &model.Invoice{ID: "inv-1", ProjectID: in.ProjectID, Title: in.Title, Amount: in.Amount, Currency: in.Currency, Status: in.Status, DueDate: in.DueDate}, nil
}

// ProjectInvoices returns predefined invoices.
func (s InvoiceFacadeStub) ProjectInvoices(ctx context.Context, caller model.Identity, projectID string) ([]model.Invoice, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, caller, projectID)
	}
	return []model.Invoice{{ID: "inv-1", ProjectID: projectID, Status: model.InvoiceStatusPending}}, nil
}

// UpdateInvoiceStatus returns an invoice with the requested status.
func (s InvoiceFacadeStub) UpdateInvoiceStatus(ctx context.Context, caller model.Identity, id string, status model.InvoiceStatus) (*model.Invoice, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, caller, id, status)
	}
	return &model.Invoice{ID: id, Status: status}, nil
}

// DeleteInvoice executes configured handler.
func (s InvoiceFacadeStub) DeleteInvoice(ctx context.Context, caller model.Identity, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, caller, id)
	}
	return nil
}

// PortalFacadeStub aggregates every facade used by the HTTP layer.
type PortalFacadeStub struct {
	IdentityResolverStub
	PaymentFacadeStub
	InvoiceFacadeStub
	HealthErr error
}

// HealthCheck reports configured health.
func (s PortalFacadeStub) HealthCheck(context.Context) error {
	return s.HealthErr
}

// WorkerFacadeStub mimics worker interactions with the billing facade.
type WorkerFacadeStub struct {
	Batches   [][]model.InvoiceWithOwner
	MarkFn    func(context.Context, int) ([]model.InvoiceWithOwner, error)
	Notified  []model.InvoiceWithOwner
	mu        sync.Mutex
	markCalls int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// MarkCalls returns the number of MarkOverdue invocations.
func (s *WorkerFacadeStub) MarkCalls() int { return int(atomic.LoadInt32(&s.markCalls)) }

// MarkOverdue returns batches from configured queue.
func (s *WorkerFacadeStub) MarkOverdue(ctx context.Context, limit int) ([]model.InvoiceWithOwner, error) {
	call := atomic.AddInt32(&s.markCalls, 1)
	if s.MarkFn != nil {
		return s.MarkFn(ctx, limit)
	}
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	return nil, nil
}

// NotifyOverdue records notification requests.
func (s *WorkerFacadeStub) NotifyOverdue(ctx context.Context, inv model.InvoiceWithOwner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notified = append(s.Notified, inv)
}
