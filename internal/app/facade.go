package app

import (
	"context"

	"github.com/polkiloo/deliveryportal/internal/domain/model"
	"github.com/polkiloo/deliveryportal/internal/usecase"
)

// HealthChecker reports whether the backing store answers.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// PortalFacade exposes use cases to the HTTP layer and the background worker.
type PortalFacade struct {
	identity *usecase.IdentityUseCase
	payments *usecase.PaymentUseCase
	invoices *usecase.InvoiceUseCase
	overdue  *usecase.OverdueUseCase
	health   HealthChecker
}

func NewPortalFacade(identity *usecase.IdentityUseCase, payments *usecase.PaymentUseCase, invoices *usecase.InvoiceUseCase, overdue *usecase.OverdueUseCase, health HealthChecker) *PortalFacade {
	return &PortalFacade{identity: identity, payments: payments, invoices: invoices, overdue: overdue, health: health}
}

func (f *PortalFacade) ResolveIdentity(ctx context.Context, token string) (model.Identity, error) {
	return f.identity.Resolve(ctx, token)
}

func (f *PortalFacade) CreateOrder(ctx context.Context, caller model.Identity, invoiceID string) (*model.OrderResult, error) {
	return f.payments.CreateOrder(ctx, caller, invoiceID)
}

func (f *PortalFacade) HandleWebhook(ctx context.Context, delivery model.WebhookDelivery) (model.WebhookOutcome, error) {
	return f.payments.HandleWebhook(ctx, delivery)
}

func (f *PortalFacade) VerifyPayment(ctx context.Context, c model.PaymentConfirmation) (*model.Invoice, error) {
	return f.payments.VerifyPayment(ctx, c)
}

func (f *PortalFacade) CheckoutKeyID() (string, error) {
	return f.payments.CheckoutKeyID()
}

func (f *PortalFacade) CreateInvoice(ctx context.Context, caller model.Identity, in model.NewInvoice) (*model.Invoice, error) {
	return f.invoices.Create(ctx, caller, in)
}

func (f *PortalFacade) ProjectInvoices(ctx context.Context, caller model.Identity, projectID string) ([]model.Invoice, error) {
	return f.invoices.ListByProject(ctx, caller, projectID)
}

func (f *PortalFacade) UpdateInvoiceStatus(ctx context.Context, caller model.Identity, id string, status model.InvoiceStatus) (*model.Invoice, error) {
	return f.invoices.UpdateStatus(ctx, caller, id, status)
}

func (f *PortalFacade) DeleteInvoice(ctx context.Context, caller model.Identity, id string) error {
	return f.invoices.Delete(ctx, caller, id)
}

func (f *PortalFacade) MarkOverdue(ctx context.Context, limit int) ([]model.InvoiceWithOwner, error) {
	return f.overdue.MarkOverdue(ctx, limit)
}

func (f *PortalFacade) NotifyOverdue(ctx context.Context, inv model.InvoiceWithOwner) {
	f.overdue.NotifyOverdue(ctx, inv)
}

func (f *PortalFacade) HealthCheck(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
