package razorpay

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/deliveryportal/internal/config"
)

// Module exposes the payment gateway client to fx graph.
var Module = fx.Provide(newGateway)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p clientParams) Gateway {
	return NewClient(p.Config.RazorpayKeyID, p.Config.RazorpayKeySecret, p.Config.GatewayTimeout, p.Logger)
}
