package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/polkiloo/deliveryportal/internal/domain/model"
	"github.com/polkiloo/deliveryportal/internal/domain/repository"
	"github.com/polkiloo/deliveryportal/internal/metrics"
)

// OverdueUseCase moves past-due invoices to overdue and notifies their owners.
type OverdueUseCase struct {
	invoices repository.InvoiceRepository
	notifier *Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewOverdueUseCase constructs OverdueUseCase.
func NewOverdueUseCase(invoices repository.InvoiceRepository, notifier *Notifier, m *metrics.Metrics, logger *slog.Logger) *OverdueUseCase {
	return &OverdueUseCase{invoices: invoices, notifier: notifier, metrics: m, logger: logger, now: time.Now}
}

// MarkOverdue flags at most limit pending invoices whose due date has passed.
func (u *OverdueUseCase) MarkOverdue(ctx context.Context, limit int) ([]model.InvoiceWithOwner, error) {
	marked, err := u.invoices.MarkOverdue(ctx, u.now(), limit)
	if err != nil {
		return nil, err
	}
	if len(marked) > 0 {
		u.metrics.InvoicesOverdue(len(marked))
		u.logger.Info("invoices marked overdue", slog.Int("count", len(marked)))
	}
	return marked, nil
}

// NotifyOverdue informs the project owner about an overdue invoice.
func (u *OverdueUseCase) NotifyOverdue(ctx context.Context, inv model.InvoiceWithOwner) {
	u.notifier.InvoiceOverdue(ctx, inv)
}
