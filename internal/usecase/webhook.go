package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/deliveryportal/internal/domain/errors"
	"github.com/polkiloo/deliveryportal/internal/domain/model"
)

type webhookAction int

const (
	actionIgnore webhookAction = iota
	actionSettle
)

// webhookActions lists the events that change invoices. Anything else is acknowledged
// and ignored so the gateway does not retry it.
var webhookActions = map[string]webhookAction{
	"payment.captured": actionSettle,
}

func webhookActionFor(event string) webhookAction {
	if action, ok := webhookActions[event]; ok {
		return action
	}
	return actionIgnore
}

type webhookEnvelope struct {
	Event     string `json:"event"`
	CreatedAt int64  `json:"created_at"`
	Payload   struct {
		Payment *struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type paymentEntity struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Email     string `json:"email"`
	Contact   string `json:"contact"`
	CreatedAt int64  `json:"created_at"`
}

func decodeEvent(body []byte) (model.PaymentEvent, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return model.PaymentEvent{}, fmt.Errorf("%w: %v", domainErrors.ErrInvalidPayload, err)
	}
	if env.Event == "" {
		return model.PaymentEvent{}, fmt.Errorf("%w: event type is missing", domainErrors.ErrInvalidPayload)
	}

	event := model.PaymentEvent{Type: env.Event}
	if p := env.Payload.Payment; p != nil {
		event.PaymentID = p.Entity.ID
		event.OrderID = p.Entity.OrderID
		event.Status = p.Entity.Status
		event.Amount = p.Entity.Amount
		event.Currency = p.Entity.Currency
		event.Email = p.Entity.Email
		event.Contact = p.Entity.Contact
		if p.Entity.CreatedAt > 0 {
			event.CreatedAt = time.Unix(p.Entity.CreatedAt, 0).UTC()
		}
	}
	return event, nil
}

// HandleWebhook authenticates and applies a gateway webhook delivery.
// Only signature, configuration, payload and store failures return errors;
// every other condition is reported through the outcome.
func (u *PaymentUseCase) HandleWebhook(ctx context.Context, delivery model.WebhookDelivery) (model.WebhookOutcome, error) {
	if delivery.Signature == "" {
		return "", domainErrors.ErrMissingSignature
	}
	if u.settings.WebhookSecret == "" {
		u.logger.Error("razorpay webhook secret is not configured")
		return "", domainErrors.ErrConfiguration
	}
	if !u.verifier.VerifyPayload(delivery.Body, delivery.Signature, u.settings.WebhookSecret) {
		u.logger.Warn("webhook signature mismatch", slog.String("event_id", delivery.EventID))
		return "", domainErrors.ErrInvalidSignature
	}

	event, err := decodeEvent(delivery.Body)
	if err != nil {
		return "", err
	}

	outcome := model.WebhookOutcomeIgnored
	if webhookActionFor(event.Type) == actionSettle {
		if outcome, err = u.settleFromWebhook(ctx, event); err != nil {
			return "", err
		}
	}

	u.metrics.WebhookEvent(event.Type, outcome)
	u.audit(ctx, delivery, event, outcome)
	return outcome, nil
}

func (u *PaymentUseCase) settleFromWebhook(ctx context.Context, event model.PaymentEvent) (model.WebhookOutcome, error) {
	if event.PaymentID == "" || event.OrderID == "" {
		return "", fmt.Errorf("%w: payment entity lacks id or order_id", domainErrors.ErrInvalidPayload)
	}

	inv, err := u.invoices.FindByGatewayOrderID(ctx, event.OrderID)
	if errors.Is(err, domainErrors.ErrNotFound) {
		u.logger.Info("webhook for unknown order", slog.String("order_id", event.OrderID), slog.String("payment_id", event.PaymentID))
		return model.WebhookOutcomeUnknownOrder, nil
	}
	if err != nil {
		u.logger.Error("failed to load invoice for webhook",
			slog.String("order_id", event.OrderID),
			slog.String("error", err.Error()),
		)
		return "", err
	}

	if inv.IsSettled() {
		if *inv.GatewayPaymentID != event.PaymentID {
			u.logger.Warn("webhook payment differs from settled payment",
				slog.String("invoice_id", inv.ID),
				slog.String("payment_id", event.PaymentID),
				slog.String("settled_payment_id", *inv.GatewayPaymentID),
			)
		}
		return model.WebhookOutcomeDuplicate, nil
	}
	u.checkCapturedAmount(&inv.Invoice, event)

	paid, err := u.invoices.MarkPaid(ctx, inv.ID, event.PaymentID, u.now())
	if errors.Is(err, domainErrors.ErrPaymentConflict) {
		u.logger.Warn("invoice settled by another payment",
			slog.String("invoice_id", inv.ID),
			slog.String("payment_id", event.PaymentID),
		)
		return model.WebhookOutcomeDuplicate, nil
	}
	if err != nil {
		u.logger.Error("failed to mark invoice paid",
			slog.String("invoice_id", inv.ID),
			slog.String("order_id", event.OrderID),
			slog.String("payment_id", event.PaymentID),
			slog.String("error", err.Error()),
		)
		return "", err
	}

	u.settled(ctx, paid, inv.OwnerID, model.SettlementSourceWebhook)
	return model.WebhookOutcomeSettled, nil
}

// checkCapturedAmount logs captures that do not match the invoice. The gateway order
// fixes the amount, so a mismatch points at a stale invoice edit rather than fraud.
func (u *PaymentUseCase) checkCapturedAmount(inv *model.Invoice, event model.PaymentEvent) {
	if event.Amount == 0 && event.Currency == "" {
		return
	}
	expected := toMinorUnits(inv)
	if event.Amount != expected || (event.Currency != "" && event.Currency != inv.Currency) {
		u.logger.Warn("captured amount differs from invoice",
			slog.String("invoice_id", inv.ID),
			slog.Int64("captured", event.Amount),
			slog.String("captured_currency", event.Currency),
			slog.Int64("expected", expected),
			slog.String("currency", inv.Currency),
		)
	}
}

func (u *PaymentUseCase) audit(ctx context.Context, delivery model.WebhookDelivery, event model.PaymentEvent, outcome model.WebhookOutcome) {
	if u.events == nil {
		return
	}
	inserted, err := u.events.Record(ctx, model.PaymentEventRecord{
		Provider:   paymentProvider,
		EventID:    delivery.EventID,
		EventType:  event.Type,
		OrderID:    event.OrderID,
		PaymentID:  event.PaymentID,
		Outcome:    outcome,
		ReceivedAt: u.now(),
	})
	if err != nil {
		u.logger.Warn("failed to record payment event",
			slog.String("event_id", delivery.EventID),
			slog.String("error", err.Error()),
		)
		return
	}
	if !inserted {
		u.logger.Info("webhook event redelivered",
			slog.String("event_id", delivery.EventID),
			slog.String("outcome", string(outcome)),
		)
	}
}
