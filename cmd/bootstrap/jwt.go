package bootstrap

import (
	"time"

	"vehicle-rental/internal/pkg/config"
	"vehicle-rental/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		panic("invalid JWT_DURATION: " + err.Error())
	}

	opts := []jwt.Option{jwt.WithLeeway(cfg.JWT.Leeway)}
	if cfg.JWT.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.JWT.Issuer))
	}
	return jwt.NewService(cfg.JWT.Secret, duration, opts...)
}
