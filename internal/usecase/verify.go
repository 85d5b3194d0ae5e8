package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/polkiloo/deliveryportal/internal/domain/errors"
	"github.com/polkiloo/deliveryportal/internal/domain/model"
)

// VerifyPayment settles an invoice from the confirmation returned by browser checkout.
// It races with HandleWebhook; both converge on the same paid state.
func (u *PaymentUseCase) VerifyPayment(ctx context.Context, c model.PaymentConfirmation) (*model.Invoice, error) {
	if c.OrderID == "" || c.PaymentID == "" || c.Signature == "" {
		return nil, fmt.Errorf("%w: order_id, payment_id and signature are required", domainErrors.ErrBadRequest)
	}
	if u.settings.KeySecret == "" {
		u.logger.Error("razorpay key secret is not configured")
		return nil, domainErrors.ErrConfiguration
	}
	if !u.verifier.VerifyOrderPayment(c.OrderID, c.PaymentID, c.Signature, u.settings.KeySecret) {
		u.logger.Warn("checkout signature mismatch",
			slog.String("order_id", c.OrderID),
			slog.String("payment_id", c.PaymentID),
		)
		return nil, domainErrors.ErrInvalidSignature
	}

	inv, err := u.invoices.FindByGatewayOrderID(ctx, c.OrderID)
	if err != nil {
		return nil, err
	}
	if inv.IsSettled() {
		if *inv.GatewayPaymentID != c.PaymentID {
			return nil, domainErrors.ErrPaymentConflict
		}
		return &inv.Invoice, nil
	}

	paid, err := u.invoices.MarkPaid(ctx, inv.ID, c.PaymentID, u.now())
	if err != nil {
		if !errors.Is(err, domainErrors.ErrPaymentConflict) {
			u.logger.Error("failed to mark invoice paid",
				slog.String("invoice_id", inv.ID),
				slog.String("order_id", c.OrderID),
				slog.String("payment_id", c.PaymentID),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}

	u.settled(ctx, paid, inv.OwnerID, model.SettlementSourceVerification)
	return paid, nil
}
