package fees

import (
	"github.com/coachably/coachpay/internal/fees/service"
	"go.uber.org/fx"
)

var Module = fx.Module("fees.service",
	fx.Provide(service.NewResolver),
	fx.Provide(service.NewCalculator),
	fx.Provide(service.NewSolver),
)
