package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/polkiloo/deliveryportal/internal/domain/model"
	"github.com/polkiloo/deliveryportal/internal/metrics"
	"github.com/polkiloo/deliveryportal/internal/test"
)

func TestOverdueMarkAndNotify(t *testing.T) {
	due := fixedNow.Add(-24 * time.Hour)
	late := pendingInvoice()
	late.DueDate = &due

	future := fixedNow.Add(24 * time.Hour)
	onTime := pendingInvoice()
	onTime.ID = "5c2e4d6f-3e7b-4a9c-8d1e-2f3a4b5c6d7e"
	onTime.DueDate = &future

	invoices := test.NewInvoiceRepositoryStub(late, onTime)
	notifications := &test.NotificationRepositoryStub{}
	uc := NewOverdueUseCase(invoices, NewNotifier(notifications, discardLogger()), metrics.New(), discardLogger())
	uc.now = func() time.Time { return fixedNow }

	marked, err := uc.MarkOverdue(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(marked) != 1 || marked[0].ID != testInvoiceID || marked[0].Status != model.InvoiceStatusOverdue {
		t.Fatalf("unexpected batch %+v", marked)
	}

	uc.NotifyOverdue(context.Background(), marked[0])
	if notifications.Len() != 1 {
		t.Fatalf("expected one notification")
	}
	n := notifications.Items[0]
	if n.UserID != testOwnerID || n.Title != "Invoice overdue" || !strings.Contains(n.Message, "150.00 USD") {
		t.Fatalf("unexpected notification %+v", n)
	}
}

func TestOverdueMarkPropagatesErrors(t *testing.T) {
	invoices := test.NewInvoiceRepositoryStub()
	invoices.Err = errors.New("db down")
	uc := NewOverdueUseCase(invoices, nil, nil, discardLogger())

	if _, err := uc.MarkOverdue(context.Background(), 10); err == nil {
		t.Fatal("expected error")
	}
}

func TestNotifierSkipsUnownedProjects(t *testing.T) {
	notifications := &test.NotificationRepositoryStub{}
	n := NewNotifier(notifications, discardLogger())

	inv := pendingInvoice()
	inv.OwnerID = ""
	n.InvoicePaid(context.Background(), inv)
	if notifications.Len() != 0 {
		t.Fatalf("notification without recipient must be skipped")
	}

	var nilNotifier *Notifier
	nilNotifier.InvoiceOverdue(context.Background(), pendingInvoice())
}
