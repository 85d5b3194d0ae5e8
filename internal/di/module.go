package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/deliveryportal/internal/adapter/lock"
	"github.com/polkiloo/deliveryportal/internal/adapter/razorpay"
	"github.com/polkiloo/deliveryportal/internal/app"
	"github.com/polkiloo/deliveryportal/internal/config"
	"github.com/polkiloo/deliveryportal/internal/logger"
	"github.com/polkiloo/deliveryportal/internal/metrics"
	"github.com/polkiloo/deliveryportal/internal/pkg/auth"
	"github.com/polkiloo/deliveryportal/internal/pkg/signature"
	"github.com/polkiloo/deliveryportal/internal/server/http/handlers"
	"github.com/polkiloo/deliveryportal/internal/server/http/router"
	"github.com/polkiloo/deliveryportal/internal/storage/postgres"
	"github.com/polkiloo/deliveryportal/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		signature.Module,
		postgres.Module,
		razorpay.Module,
		lock.Module,
		usecase.Module,
		fx.Provide(
			func(g razorpay.Gateway) usecase.OrderGateway { return g },
			func(l lock.Locker) usecase.OrderLocker { return l },
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.PortalFacade) handlers.PortalFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
