package model

import "time"

// OrderRequest is the gateway order payload built for one invoice.
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// GatewayOrder is the order returned by the payment gateway.
type GatewayOrder struct {
	ID        string
	Amount    int64
	Currency  string
	Receipt   string
	Status    string
	CreatedAt time.Time
}

// OrderResult is returned to the caller of create-order.
type OrderResult struct {
	OrderID  string
	Amount   int64
	Currency string
	Created  bool
}

// PaymentConfirmation is the triple reported by the browser after checkout.
type PaymentConfirmation struct {
	OrderID   string
	PaymentID string
	Signature string
}

// WebhookDelivery is an unverified webhook request as received.
type WebhookDelivery struct {
	Body      []byte
	Signature string
	EventID   string
}

// PaymentEvent is a verified and decoded gateway payment event.
type PaymentEvent struct {
	Type      string
	PaymentID string
	OrderID   string
	Status    string
	Amount    int64
	Currency  string
	Email     string
	Contact   string
	CreatedAt time.Time
}

// WebhookOutcome names what happened to a verified webhook delivery.
type WebhookOutcome string

const (
	WebhookOutcomeIgnored      WebhookOutcome = "ignored"
	WebhookOutcomeSettled      WebhookOutcome = "settled"
	WebhookOutcomeDuplicate    WebhookOutcome = "duplicate"
	WebhookOutcomeUnknownOrder WebhookOutcome = "unknown_order"
)

// SettlementSource identifies the path that marked an invoice paid.
type SettlementSource string

const (
	SettlementSourceWebhook      SettlementSource = "webhook"
	SettlementSourceVerification SettlementSource = "verification"
)

// PaymentEventRecord is the audit entry stored for every processed webhook delivery.
type PaymentEventRecord struct {
	Provider   string
	EventID    string
	EventType  string
	OrderID    string
	PaymentID  string
	Outcome    WebhookOutcome
	ReceivedAt time.Time
}
