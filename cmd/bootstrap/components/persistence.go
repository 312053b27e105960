package components

import (
	"context"
	"log/slog"

	"vehicle-rental/internal/infra/memstore"
	"vehicle-rental/internal/infra/readstore"
	"vehicle-rental/internal/infra/relay"
	"vehicle-rental/internal/infra/repository"
	"vehicle-rental/internal/infra/uow"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/config"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStores,
	),
	fx.Invoke(StartRelay),
)

// Stores is everything the use cases and the relay need from the storage driver.
type Stores struct {
	fx.Out

	UoW          shared.UnitOfWork
	Bookings     queries.BookingReadStore
	Availability queries.AvailabilityReadStore
	Earnings     queries.EarningsReadStore
	Jobs         relay.JobStore
}

func NewStores(cfg config.Config, pool *pgxpool.Pool) Stores {
	if cfg.Storage.Driver == config.StorageMemory {
		slog.Warn("using in-memory storage, data is lost on restart")
		s := memstore.New()
		return Stores{
			UoW:          s,
			Bookings:     memstore.NewBookingReadStore(s),
			Availability: memstore.NewAvailabilityReadStore(s),
			Earnings:     memstore.NewEarningsReadStore(s),
			Jobs:         memstore.NewJobStore(s),
		}
	}

	return Stores{
		UoW:          uow.NewPostgresUoW(pool, cfg.Booking.LockTimeout),
		Bookings:     readstore.NewBookingReadStore(pool),
		Availability: readstore.NewAvailabilityReadStore(pool),
		Earnings:     readstore.NewEarningsReadStore(pool),
		Jobs:         repository.NewNotificationRepository(pool),
	}
}

// StartRelay drains the outbox in the background. Jobs go to Redis Pub/Sub
// when a client is configured and to the log otherwise.
func StartRelay(lc fx.Lifecycle, cfg config.Config, jobs relay.JobStore, clk clock.Clock, rdb *redis.Client) {
	if !cfg.Relay.Enabled {
		return
	}

	var pub relay.Publisher = relay.NewLogPublisher()
	if rdb != nil {
		pub = relay.NewRedisPublisher(rdb)
	}
	r := relay.New(jobs, pub, clk, cfg.Relay)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				r.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
