package components

import (
	"vehicle-rental/internal/handler"
	"vehicle-rental/internal/handler/api"
	"vehicle-rental/internal/handler/middleware"
	"vehicle-rental/internal/infra/payment"
	"vehicle-rental/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewAvailabilityHandler,
		api.NewEarningsHandler,
		api.NewPaymentHandler,
		api.NewCatalogHandler,
		middleware.NewAuthMiddleware,
		middleware.NewRateLimiters,
		func(cfg config.Config) payment.WebhookVerifier {
			return payment.NewRazorpayVerifier(cfg.Payment.WebhookSecret)
		},
	),
	fx.Invoke(handler.NewRouter),
)
