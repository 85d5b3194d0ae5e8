package handlers

import (
	"context"

	"github.com/polkiloo/deliveryportal/internal/domain/model"
	"github.com/polkiloo/deliveryportal/internal/server/http/middleware"
)

// PaymentFacade covers the checkout endpoints.
type PaymentFacade interface {
	CreateOrder(ctx context.Context, caller model.Identity, invoiceID string) (*model.OrderResult, error)
	HandleWebhook(ctx context.Context, delivery model.WebhookDelivery) (model.WebhookOutcome, error)
	VerifyPayment(ctx context.Context, c model.PaymentConfirmation) (*model.Invoice, error)
	CheckoutKeyID() (string, error)
}

// InvoiceFacade encapsulates invoice operations exposed via HTTP.
type InvoiceFacade interface {
	CreateInvoice(ctx context.Context, caller model.Identity, in model.NewInvoice) (*model.Invoice, error)
	ProjectInvoices(ctx context.Context, caller model.Identity, projectID string) ([]model.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, caller model.Identity, id string, status model.InvoiceStatus) (*model.Invoice, error)
	DeleteInvoice(ctx context.Context, caller model.Identity, id string) error
}

// HealthFacade reports backend availability.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// PortalFacade aggregates the full set of operations used across handlers.
type PortalFacade interface {
	middleware.IdentityResolver
	PaymentFacade
	InvoiceFacade
	HealthFacade
}
