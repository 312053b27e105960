package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/handler/api"
	"vehicle-rental/internal/handler/middleware"
	"vehicle-rental/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	fx.In

	Booking      *api.BookingHandler
	Availability *api.AvailabilityHandler
	Earnings     *api.EarningsHandler
	Payment      *api.PaymentHandler
	Catalog      *api.CatalogHandler
	Auth         *middleware.AuthMiddleware
	RateLimiters *middleware.RateLimiters
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers) error {
	setupMiddleware(engine, cfg, logger)
	return setupRoutes(engine, cfg, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers) error {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	createLimit, err := h.RateLimiters.For("create_booking", cfg.RateLimit.CreateBooking)
	if err != nil {
		return err
	}

	apiGroup := engine.Group("/api")
	{
		// Authenticated by signature, not by bearer token.
		addRoutes(apiGroup.Group("/webhooks"), []route{
			{Method: http.MethodPost, Path: "/payments", Handler: h.Payment.Webhook},
		})

		authed := apiGroup.Group("")
		authed.Use(h.Auth.RequireAuth())

		bookings := authed.Group("/bookings")
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create, Mw: []gin.HandlerFunc{createLimit}},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodPost, Path: "/:id/accept", Handler: h.Booking.Accept},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: h.Booking.Reject},
				{Method: http.MethodPost, Path: "/:id/start", Handler: h.Booking.Start},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Booking.Complete},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel},
			})
		}

		vehicles := authed.Group("/vehicles")
		{
			addRoutes(vehicles, []route{
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Availability.Calendar},
				{Method: http.MethodGet, Path: "/:id/availability/check", Handler: h.Availability.Check},
				{Method: http.MethodPut, Path: "/:id/availability", Handler: h.Availability.Set},
			})
		}

		owners := authed.Group("/owners")
		{
			addRoutes(owners, []route{
				{Method: http.MethodGet, Path: "/:id/earnings", Handler: h.Earnings.List},
				{Method: http.MethodGet, Path: "/:id/earnings/summary", Handler: h.Earnings.Summary},
			})
		}

		admin := authed.Group("/admin")
		admin.Use(h.Auth.RequireRole(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodPut, Path: "/vehicles/:id", Handler: h.Catalog.SyncVehicle},
				{Method: http.MethodPost, Path: "/bookings/:id/release", Handler: h.Availability.Release},
			})
		}
	}
	return nil
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

// addRoutes registers route middleware as regular gin handlers so that
// middleware calling c.Next (the rate limiter does) keeps working.
func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		hs := make([]gin.HandlerFunc, 0, len(r.Mw)+1)
		hs = append(hs, r.Mw...)
		hs = append(hs, r.Handler)
		g.Handle(r.Method, r.Path, hs...)
	}
}
