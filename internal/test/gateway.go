package test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polkiloo/deliveryportal/internal/domain/model"
)

// GatewayStub counts order creations and returns sequential order ids.
type GatewayStub struct {
	CreateFn func(context.Context, model.OrderRequest) (*model.GatewayOrder, error)

	mu       sync.Mutex
	Requests []model.OrderRequest
	calls    int32
}

// CreateOrder records the request and returns a created order.
func (s *GatewayStub) CreateOrder(ctx context.Context, req model.OrderRequest) (*model.GatewayOrder, error) {
	n := atomic.AddInt32(&s.calls, 1)
	s.mu.Lock()
	s.Requests = append(s.Requests, req)
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	return &model.GatewayOrder{
		ID:        fmt.Sprintf("order_%d", n),
		Amount:    req.Amount,
		Currency:  req.Currency,
		Receipt:   req.Receipt,
		Status:    "created",
		CreatedAt: time.Now(),
	}, nil
}

// Calls returns the number of CreateOrder invocations.
func (s *GatewayStub) Calls() int {
	return int(atomic.LoadInt32(&s.calls))
}

// LockerStub grants or denies locks as configured and records releases.
type LockerStub struct {
	Denied   bool
	Err      error
	mu       sync.Mutex
	Released []string
}

func (s *LockerStub) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if s.Err != nil {
		return "", false, s.Err
	}
	if s.Denied {
		return "", false, nil
	}
	return "token-" + key, true, nil
}

func (s *LockerStub) Release(ctx context.Context, key, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Released = append(s.Released, key)
	return nil
}
