package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/deliveryportal/internal/config"
	"github.com/polkiloo/deliveryportal/internal/domain/repository"
	"github.com/polkiloo/deliveryportal/internal/metrics"
	"github.com/polkiloo/deliveryportal/internal/pkg/auth"
	"github.com/polkiloo/deliveryportal/internal/pkg/signature"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewNotifier,
	newIdentityUseCase,
	newPaymentUseCase,
	NewInvoiceUseCase,
	NewOverdueUseCase,
)

func newIdentityUseCase(strategy auth.Strategy, profiles repository.ProfileRepository, logger *slog.Logger) *IdentityUseCase {
	return NewIdentityUseCase(strategy, profiles, logger)
}

type paymentParams struct {
	fx.In

	Config   *config.Config
	Invoices repository.InvoiceRepository
	Events   repository.PaymentEventRepository
	Gateway  OrderGateway
	Verifier signature.Verifier
	Locker   OrderLocker
	Notifier *Notifier
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	return NewPaymentUseCase(PaymentDependencies{
		Invoices: p.Invoices,
		Events:   p.Events,
		Gateway:  p.Gateway,
		Verifier: p.Verifier,
		Locker:   p.Locker,
		Notifier: p.Notifier,
		Metrics:  p.Metrics,
		Settings: PaymentSettings{
			KeyID:         p.Config.RazorpayKeyID,
			KeySecret:     p.Config.RazorpayKeySecret,
			WebhookSecret: p.Config.RazorpayWebhookSecret,
			LockTTL:       p.Config.OrderLockTTL,
		},
		Logger: p.Logger,
	})
}
