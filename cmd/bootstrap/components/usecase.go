package components

import (
	"vehicle-rental/internal/domain/earnings"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/config"
	"vehicle-rental/internal/usecase"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) (earnings.FeePolicy, error) {
		return earnings.NewFeePolicy(cfg.Booking.FeeRateBasisPoints)
	},
	func(cfg config.Config) shared.RetryPolicy {
		return shared.RetryPolicy{
			MaxAttempts: cfg.Booking.ReleaseMaxAttempts,
			Backoff:     cfg.Booking.ReleaseBackoff,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) *commands.ReservationCoordinator {
			return commands.NewReservationCoordinator(uow, clk, cfg.Booking.ReservationTimeout)
		},
		commands.NewEarningsRecorder,
		commands.NewBookingUseCase,
		commands.NewCatalogUseCase,
		func(c *commands.ReservationCoordinator) commands.AvailabilityCommands { return c },
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewAvailabilityQueries,
		queries.NewEarningsQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
