package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/deliveryportal/internal/domain/errors"
	"github.com/polkiloo/deliveryportal/internal/domain/model"
	"github.com/polkiloo/deliveryportal/internal/server/http/dto"
)

const (
	signatureHeader = "X-Razorpay-Signature"
	eventIDHeader   = "X-Razorpay-Event-Id"
	maxWebhookBody  = 1 << 20
)

// PaymentHandler serves the checkout flow endpoints.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// CreateOrder handles POST /api/payments/orders.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req.InvoiceID = strings.TrimSpace(req.InvoiceID)
	if req.InvoiceID == "" {
		abortWithError(c, http.StatusBadRequest, "invoice_id is required")
		return
	}

	res, err := h.facade.CreateOrder(c.Request.Context(), CurrentIdentity(c), req.InvoiceID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	msg := "Order created successfully"
	if !res.Created {
		msg = "Order already exists"
	}
	c.JSON(http.StatusOK, dto.CreateOrderResponse{
		OrderID:  res.OrderID,
		Amount:   res.Amount,
		Currency: res.Currency,
		Message:  msg,
	})
}

// Webhook handles POST /api/payments/webhook. The body is read raw because the
// signature covers the exact bytes sent by the gateway.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, http.StatusRequestEntityTooLarge, "webhook body too large")
			return
		}
		abortWithError(c, http.StatusBadRequest, "unreadable body")
		return
	}

	outcome, err := h.facade.HandleWebhook(c.Request.Context(), model.WebhookDelivery{
		Body:      body,
		Signature: c.GetHeader(signatureHeader),
		EventID:   c.GetHeader(eventIDHeader),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{Received: true, Outcome: string(outcome)})
}

// Verify handles POST /api/payments/verify.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	inv, err := h.facade.VerifyPayment(c.Request.Context(), model.PaymentConfirmation{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidSignature) {
			abortWithError(c, http.StatusBadRequest, "invalid payment signature")
			return
		}
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyPaymentResponse{Success: true, Invoice: toInvoiceResponse(*inv)})
}

// Config handles GET /api/payments/config.
func (h *PaymentHandler) Config(c *gin.Context) {
	keyID, err := h.facade.CheckoutKeyID()
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CheckoutConfigResponse{KeyID: keyID})
}
