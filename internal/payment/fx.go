package payment

import (
	"github.com/coachably/coachpay/internal/config"
	"github.com/coachably/coachpay/internal/payment/adapters"
	"github.com/coachably/coachpay/internal/payment/adapters/stripe"
	"github.com/coachably/coachpay/internal/payment/webhook"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(func(cfg config.Config) *adapters.Registry {
		return adapters.NewRegistry(
			stripe.NewAdapter(cfg.StripeWebhookSecret),
		)
	}),
	fx.Provide(webhook.NewService),
)
