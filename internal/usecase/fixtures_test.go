package usecase

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/deliveryportal/internal/domain/model"
	"github.com/polkiloo/deliveryportal/internal/metrics"
	"github.com/polkiloo/deliveryportal/internal/pkg/signature"
	"github.com/polkiloo/deliveryportal/internal/test"
)

const (
	testInvoiceID = "4b1f3c5e-2d6a-4f8b-9c0d-1e2f3a4b5c6d"
	testProjectID = "8a7b6c5d-4e3f-4a1b-8c2d-3e4f5a6b7c8d"
	testOwnerID   = "c0ffee00-0000-4000-8000-000000000001"
	testKeyID     = "rzp_test_key"
	testKeySecret = "key-secret"
	testWebhook   = "webhook-secret"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pendingInvoice() model.InvoiceWithOwner {
	return model.InvoiceWithOwner{
		Invoice: model.Invoice{
			ID:        testInvoiceID,
			ProjectID: testProjectID,
			Title:     "Automation retainer",
			Amount:    decimal.RequireFromString("150.00"),
			Currency:  "USD",
			Status:    model.InvoiceStatusPending,
			CreatedAt: fixedNow.Add(-48 * time.Hour),
		},
		OwnerID: testOwnerID,
	}
}

func withOrder(inv model.InvoiceWithOwner, orderID string) model.InvoiceWithOwner {
	inv.GatewayOrderID = &orderID
	return inv
}

func settledInvoice(orderID, paymentID string) model.InvoiceWithOwner {
	inv := withOrder(pendingInvoice(), orderID)
	paidAt := fixedNow.Add(-time.Hour)
	inv.Status = model.InvoiceStatusPaid
	inv.GatewayPaymentID = &paymentID
	inv.PaidAt = &paidAt
	return inv
}

func owner() model.Identity {
	return model.Identity{UserID: testOwnerID, Role: model.RoleClient}
}

type paymentFixture struct {
	uc            *PaymentUseCase
	invoices      *test.InvoiceRepositoryStub
	gateway       *test.GatewayStub
	events        *test.PaymentEventRepositoryStub
	notifications *test.NotificationRepositoryStub
}

func newPaymentFixture(t *testing.T, invoices ...model.InvoiceWithOwner) *paymentFixture {
	t.Helper()
	f := &paymentFixture{
		invoices:      test.NewInvoiceRepositoryStub(invoices...),
		gateway:       &test.GatewayStub{},
		events:        &test.PaymentEventRepositoryStub{},
		notifications: &test.NotificationRepositoryStub{},
	}
	logger := discardLogger()
	f.uc = NewPaymentUseCase(PaymentDependencies{
		Invoices: f.invoices,
		Events:   f.events,
		Gateway:  f.gateway,
		Notifier: NewNotifier(f.notifications, logger),
		Metrics:  metrics.New(),
		Settings: PaymentSettings{
			KeyID:         testKeyID,
			KeySecret:     testKeySecret,
			WebhookSecret: testWebhook,
			LockTTL:       time.Second,
		},
		Logger: logger,
	})
	f.uc.now = func() time.Time { return fixedNow }
	return f
}

func capturedBody(orderID, paymentID string, amount int64) []byte {
	return []byte(fmt.Sprintf(`{"entity":"event","account_id":"acc_1","event":"payment.captured",`+
		`"payload":{"payment":{"entity":{"id":%q,"entity":"payment","amount":%d,"currency":"USD",`+
		`"status":"captured","order_id":%q,"method":"card","email":"client@example.com",`+
		`"contact":"+15550100","created_at":1700000000}}},"created_at":1700000001}`,
		paymentID, amount, orderID))
}

func signedDelivery(body []byte, eventID string) model.WebhookDelivery {
	return model.WebhookDelivery{Body: body, Signature: signature.Sign(body, testWebhook), EventID: eventID}
}

func confirmation(orderID, paymentID string) model.PaymentConfirmation {
	payload := []byte(signature.OrderPaymentPayload(orderID, paymentID))
	return model.PaymentConfirmation{OrderID: orderID, PaymentID: paymentID, Signature: signature.Sign(payload, testKeySecret)}
}
