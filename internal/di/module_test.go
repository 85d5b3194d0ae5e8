package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/deliveryportal/internal/adapter/lock"
	"github.com/polkiloo/deliveryportal/internal/adapter/razorpay"
	"github.com/polkiloo/deliveryportal/internal/app"
	"github.com/polkiloo/deliveryportal/internal/config"
	"github.com/polkiloo/deliveryportal/internal/domain/model"
	"github.com/polkiloo/deliveryportal/internal/domain/repository"
	"github.com/polkiloo/deliveryportal/internal/storage/postgres"
	"github.com/polkiloo/deliveryportal/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:            ":0",
		DatabaseURI:           "postgres://stub",
		JWTSecret:             "secret",
		JWTAudience:           "authenticated",
		RazorpayKeyID:         "rzp_test_key",
		RazorpayKeySecret:     "key-secret",
		RazorpayWebhookSecret: "webhook-secret",
		GatewayTimeout:        time.Second,
		OrderLockTTL:          time.Second,
		OverduePollInterval:   time.Millisecond,
		OverdueBatchSize:      1,
		WorkerPoolSize:        1,
		ShutdownTimeout:       time.Millisecond,
		AllowedOrigins:        []string{"*"},
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	gateway := &test.GatewayStub{}

	var (
		facade *app.PortalFacade
		locker lock.Locker
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.InvoiceRepository(test.NewInvoiceRepositoryStub())),
			fx.Replace(repository.ProfileRepository(&test.ProfileRepositoryStub{})),
			fx.Replace(repository.ProjectRepository(&test.ProjectRepositoryStub{})),
			fx.Replace(repository.NotificationRepository(&test.NotificationRepositoryStub{})),
			fx.Replace(repository.PaymentEventRepository(&test.PaymentEventRepositoryStub{})),
			fx.Replace(razorpay.Gateway(gateway)),
		),
		fx.Populate(&facade, &locker),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected portal facade instance")
	}
	if _, ok := locker.(lock.NopLocker); !ok {
		t.Fatalf("expected nop locker without redis, got %T", locker)
	}

	key, err := facade.CheckoutKeyID()
	if err != nil || key != "rzp_test_key" {
		t.Fatalf("unexpected checkout key %q: %v", key, err)
	}

	_, err = facade.CreateOrder(context.Background(), model.Identity{UserID: "admin", Role: model.RoleAdmin}, "not-a-uuid")
	if err == nil {
		t.Fatal("expected invalid invoice id to be rejected")
	}
	if gateway.Calls() != 0 {
		t.Fatalf("gateway must not be called, got %d calls", gateway.Calls())
	}
}
