package dto

// CreateOrderRequest describes create-order payload.
type CreateOrderRequest struct {
	InvoiceID string `json:"invoice_id"`
}

// CreateOrderResponse carries what the browser needs to open checkout.
type CreateOrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Message  string `json:"message"`
}

// VerifyPaymentRequest is the triple returned by checkout.
type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// VerifyPaymentResponse wraps the settled invoice.
type VerifyPaymentResponse struct {
	Success bool            `json:"success"`
	Invoice InvoiceResponse `json:"invoice"`
}

// WebhookResponse acknowledges a webhook delivery.
type WebhookResponse struct {
	Received bool   `json:"received"`
	Outcome  string `json:"outcome"`
}

// CheckoutConfigResponse exposes the public gateway key.
type CheckoutConfigResponse struct {
	KeyID string `json:"key_id"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
