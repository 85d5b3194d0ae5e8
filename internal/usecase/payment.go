package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/deliveryportal/internal/domain/errors"
	"github.com/polkiloo/deliveryportal/internal/domain/model"
	"github.com/polkiloo/deliveryportal/internal/domain/repository"
	"github.com/polkiloo/deliveryportal/internal/metrics"
	"github.com/polkiloo/deliveryportal/internal/pkg/currency"
	"github.com/polkiloo/deliveryportal/internal/pkg/signature"
)

const (
	paymentProvider = "razorpay"
	orderLockPrefix = "invoice-order:"
	receiptPrefix   = "invoice_"
)

// OrderGateway creates orders at the payment gateway.
type OrderGateway interface {
	CreateOrder(ctx context.Context, req model.OrderRequest) (*model.GatewayOrder, error)
}

// OrderLocker serializes order creation for one invoice across instances.
type OrderLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	Release(ctx context.Context, key, token string) error
}

// PaymentSettings carries the gateway secrets and tunables.
type PaymentSettings struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
	LockTTL       time.Duration
}

func (s PaymentSettings) gatewayConfigured() bool {
	return s.KeyID != "" && s.KeySecret != ""
}

// PaymentDependencies groups collaborators of PaymentUseCase.
type PaymentDependencies struct {
	Invoices repository.InvoiceRepository
	Events   repository.PaymentEventRepository
	Gateway  OrderGateway
	Verifier signature.Verifier
	Locker   OrderLocker
	Notifier *Notifier
	Metrics  *metrics.Metrics
	Settings PaymentSettings
	Logger   *slog.Logger
}

// PaymentUseCase drives invoices from order creation to settlement.
type PaymentUseCase struct {
	invoices repository.InvoiceRepository
	events   repository.PaymentEventRepository
	gateway  OrderGateway
	verifier signature.Verifier
	locker   OrderLocker
	notifier *Notifier
	metrics  *metrics.Metrics
	settings PaymentSettings
	logger   *slog.Logger
	now      func() time.Time
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(deps PaymentDependencies) *PaymentUseCase {
	verifier := deps.Verifier
	if verifier == nil {
		verifier = signature.NewHMACVerifier()
	}
	return &PaymentUseCase{
		invoices: deps.Invoices,
		events:   deps.Events,
		gateway:  deps.Gateway,
		verifier: verifier,
		locker:   deps.Locker,
		notifier: deps.Notifier,
		metrics:  deps.Metrics,
		settings: deps.Settings,
		logger:   deps.Logger,
		now:      time.Now,
	}
}

// CheckoutKeyID returns the public key id the browser needs to open checkout.
func (u *PaymentUseCase) CheckoutKeyID() (string, error) {
	if u.settings.KeyID == "" {
		return "", domainErrors.ErrConfiguration
	}
	return u.settings.KeyID, nil
}

// CreateOrder returns the gateway order of the invoice, creating it on first call.
func (u *PaymentUseCase) CreateOrder(ctx context.Context, caller model.Identity, invoiceID string) (*model.OrderResult, error) {
	if invoiceID == "" {
		return nil, fmt.Errorf("%w: invoice_id is required", domainErrors.ErrBadRequest)
	}
	if _, err := uuid.Parse(invoiceID); err != nil {
		return nil, fmt.Errorf("%w: invoice_id is malformed", domainErrors.ErrBadRequest)
	}

	inv, err := u.invoices.GetWithProjectOwner(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccess(inv.OwnerID) {
		return nil, domainErrors.ErrForbidden
	}
	if res, err := u.existingOrder(inv); res != nil || err != nil {
		return res, err
	}
	if !u.settings.gatewayConfigured() {
		u.logger.Error("razorpay credentials are not configured")
		return nil, domainErrors.ErrConfiguration
	}

	if u.locker != nil {
		key := orderLockPrefix + inv.ID
		token, acquired, err := u.locker.TryLock(ctx, key, u.settings.LockTTL)
		switch {
		case err != nil:
			u.logger.Warn("order lock unavailable, relying on store checks",
				slog.String("invoice_id", inv.ID),
				slog.String("error", err.Error()),
			)
		case !acquired:
			return nil, domainErrors.ErrOrderInProgress
		default:
			defer u.releaseLock(ctx, key, token)
			if inv, err = u.invoices.GetWithProjectOwner(ctx, invoiceID); err != nil {
				return nil, err
			}
			if res, err := u.existingOrder(inv); res != nil || err != nil {
				return res, err
			}
		}
	}

	return u.placeOrder(ctx, inv)
}

// existingOrder rejects unpayable invoices and short-circuits when an order is already stored.
func (u *PaymentUseCase) existingOrder(inv *model.InvoiceWithOwner) (*model.OrderResult, error) {
	switch inv.Status {
	case model.InvoiceStatusPaid:
		return nil, domainErrors.ErrAlreadyPaid
	case model.InvoiceStatusCancelled:
		return nil, domainErrors.ErrNotPayable
	}
	if !inv.HasGatewayOrder() {
		return nil, nil
	}
	u.metrics.GatewayOrder(metrics.OrderReused)
	return &model.OrderResult{
		OrderID:  *inv.GatewayOrderID,
		Amount:   toMinorUnits(&inv.Invoice),
		Currency: inv.Currency,
	}, nil
}

func (u *PaymentUseCase) placeOrder(ctx context.Context, inv *model.InvoiceWithOwner) (*model.OrderResult, error) {
	amount := toMinorUnits(&inv.Invoice)
	if amount <= 0 {
		return nil, fmt.Errorf("%w: invoice amount must be positive", domainErrors.ErrBadRequest)
	}

	order, err := u.gateway.CreateOrder(ctx, model.OrderRequest{
		Amount:   amount,
		Currency: inv.Currency,
		Receipt:  receiptPrefix + inv.ID,
		Notes: map[string]string{
			"invoice_id":    inv.ID,
			"project_id":    inv.ProjectID,
			"invoice_title": inv.Title,
		},
	})
	if err != nil {
		u.metrics.GatewayOrder(metrics.OrderFailed)
		u.logger.Error("gateway order creation failed",
			slog.String("invoice_id", inv.ID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	applied, err := u.invoices.SetGatewayOrder(ctx, inv.ID, order.ID)
	if err != nil {
		u.metrics.GatewayOrder(metrics.OrderFailed)
		u.logger.Error("failed to store gateway order",
			slog.String("invoice_id", inv.ID),
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if !applied {
		u.logger.Warn("invoice got an order concurrently, discarding gateway order",
			slog.String("invoice_id", inv.ID),
			slog.String("order_id", order.ID),
		)
		current, err := u.invoices.GetWithProjectOwner(ctx, inv.ID)
		if err != nil {
			return nil, err
		}
		res, err := u.existingOrder(current)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, domainErrors.ErrOrderInProgress
		}
		return res, nil
	}

	u.metrics.GatewayOrder(metrics.OrderCreated)
	u.logger.Info("gateway order created",
		slog.String("invoice_id", inv.ID),
		slog.String("order_id", order.ID),
		slog.Int64("amount", amount),
		slog.String("currency", inv.Currency),
	)
	return &model.OrderResult{
		OrderID:  order.ID,
		Amount:   amount,
		Currency: inv.Currency,
		Created:  true,
	}, nil
}

func (u *PaymentUseCase) releaseLock(ctx context.Context, key, token string) {
	if err := u.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
		u.logger.Warn("failed to release order lock", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// settled records a successful transition to paid.
func (u *PaymentUseCase) settled(ctx context.Context, paid *model.Invoice, ownerID string, source model.SettlementSource) {
	u.metrics.Settlement(source)
	u.logger.Info("invoice settled",
		slog.String("invoice_id", paid.ID),
		slog.String("payment_id", derefString(paid.GatewayPaymentID)),
		slog.String("source", string(source)),
	)
	u.notifier.InvoicePaid(ctx, model.InvoiceWithOwner{Invoice: *paid, OwnerID: ownerID})
}

func toMinorUnits(inv *model.Invoice) int64 {
	return currency.ToMinorUnits(inv.Amount, inv.Currency)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
