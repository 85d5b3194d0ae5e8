package razorpay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	rzp "github.com/razorpay/razorpay-go"

	domainErrors "github.com/polkiloo/deliveryportal/internal/domain/errors"
	"github.com/polkiloo/deliveryportal/internal/domain/model"
)

const opCreateOrder = "create order"

// Gateway exposes the payment gateway operations used by the billing flow.
type Gateway interface {
	CreateOrder(ctx context.Context, req model.OrderRequest) (*model.GatewayOrder, error)
}

type orderCreator func(data map[string]interface{}) (map[string]interface{}, error)

// Client implements Gateway on top of the Razorpay SDK.
type Client struct {
	create  orderCreator
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient builds a client. Without credentials every call fails with ErrConfiguration.
func NewClient(keyID, keySecret string, timeout time.Duration, logger *slog.Logger) *Client {
	var create orderCreator
	if keyID != "" && keySecret != "" {
		sdk := rzp.NewClient(keyID, keySecret)
		create = func(data map[string]interface{}) (map[string]interface{}, error) {
			return sdk.Order.Create(data, nil)
		}
	}
	return newClient(create, timeout, logger)
}

func newClient(create orderCreator, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{create: create, timeout: timeout, logger: logger}
}

type createResult struct {
	body map[string]interface{}
	err  error
}

// CreateOrder registers an order at the gateway. The invoice is never touched here,
// so a failure or timeout leaves nothing to roll back.
func (c *Client) CreateOrder(ctx context.Context, req model.OrderRequest) (*model.GatewayOrder, error) {
	if c.create == nil {
		return nil, domainErrors.ErrConfiguration
	}
	if req.Amount <= 0 || req.Currency == "" || req.Receipt == "" {
		return nil, fmt.Errorf("%w: order amount, currency and receipt are required", domainErrors.ErrBadRequest)
	}

	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}
	data := map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	done := make(chan createResult, 1)
	go func() {
		body, err := c.create(data)
		done <- createResult{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		c.logger.Error("razorpay order creation aborted",
			slog.String("receipt", req.Receipt),
			slog.String("error", ctx.Err().Error()),
		)
		return nil, &domainErrors.GatewayError{Op: opCreateOrder, Description: "request aborted", Err: ctx.Err()}
	case res := <-done:
		if res.err != nil {
			c.logger.Error("razorpay order creation failed",
				slog.String("receipt", req.Receipt),
				slog.String("error", res.err.Error()),
			)
			return nil, &domainErrors.GatewayError{Op: opCreateOrder, Description: res.err.Error(), Err: res.err}
		}
		order, err := decodeOrder(res.body)
		if err != nil {
			c.logger.Error("razorpay order response rejected", slog.String("receipt", req.Receipt), slog.String("error", err.Error()))
			return nil, err
		}
		return order, nil
	}
}

func decodeOrder(body map[string]interface{}) (*model.GatewayOrder, error) {
	if errBody, ok := body["error"].(map[string]interface{}); ok {
		desc, _ := errBody["description"].(string)
		return nil, &domainErrors.GatewayError{Op: opCreateOrder, Description: desc}
	}

	id, _ := body["id"].(string)
	amount, ok := toInt64(body["amount"])
	if id == "" || !ok || amount <= 0 {
		return nil, &domainErrors.GatewayError{Op: opCreateOrder, Description: "unexpected order response"}
	}

	order := &model.GatewayOrder{ID: id, Amount: amount}
	order.Currency, _ = body["currency"].(string)
	order.Receipt, _ = body["receipt"].(string)
	order.Status, _ = body["status"].(string)
	if created, ok := toInt64(body["created_at"]); ok && created > 0 {
		order.CreatedAt = time.Unix(created, 0).UTC()
	}
	return order, nil
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}
