package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/deliveryportal/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newTokenStrategy),
)

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewJWTStrategy(p.Config.JWTSecret, Options{Audience: p.Config.JWTAudience})
}
