//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/earnings"
	"vehicle-rental/internal/infra/memstore"
	"vehicle-rental/internal/infra/relay"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/shared"
	"vehicle-rental/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testNow = builder.Date(2024, 4, 30).Add(9 * time.Hour)

type harness struct {
	store    *memstore.Store
	uow      shared.UnitOfWork
	clock    *clock.MockClock
	coord    *commands.ReservationCoordinator
	recorder *commands.EarningsRecorder
	bookings commands.BookingCommands
	catalog  commands.CatalogCommands

	vehicle *builder.VehicleBuilder
	owner   shared.Actor
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memstore.New()
	return newHarnessWithUoW(t, store, store)
}

// newHarnessWithUoW lets a test intercept repositories while reading state
// back from the underlying store.
func newHarnessWithUoW(t *testing.T, store *memstore.Store, uow shared.UnitOfWork) *harness {
	t.Helper()

	clk := clock.NewMockClock(testNow)
	policy, err := earnings.NewFeePolicy(1000)
	require.NoError(t, err)

	coord := commands.NewReservationCoordinator(uow, clk, 2*time.Second)
	recorder := commands.NewEarningsRecorder(uow, policy, clk)
	h := &harness{
		store:    store,
		uow:      uow,
		clock:    clk,
		coord:    coord,
		recorder: recorder,
		bookings: commands.NewBookingUseCase(coord, recorder, clk, shared.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}),
		catalog:  commands.NewCatalogUseCase(uow, clk),
		vehicle:  builder.NewVehicleBuilder(),
	}
	h.owner = builder.Owner(h.vehicle.OwnerID)

	_, err = h.catalog.SyncVehicle(context.Background(), builder.Admin(), h.vehicle.BuildSyncInput())
	require.NoError(t, err)
	return h
}

func (h *harness) create(t *testing.T, renter shared.Actor, start, end time.Time) *booking.Booking {
	t.Helper()
	b, err := h.bookings.CreateBookingRequest(context.Background(), renter, commands.CreateBookingInput{
		VehicleID:       h.vehicle.ID,
		StartDate:       start,
		EndDate:         end,
		PickupLocation:  "Indiranagar",
		DropoffLocation: "Koramangala",
	})
	require.NoError(t, err)
	return b
}

func (h *harness) transition(t *testing.T, id uuid.UUID, actions ...booking.Action) *booking.Booking {
	t.Helper()
	var b *booking.Booking
	var err error
	for _, a := range actions {
		switch a {
		case booking.ActionComplete:
			b, err = h.bookings.CompleteBooking(context.Background(), h.owner, id)
		case booking.ActionCancel:
			b, err = h.bookings.CancelBooking(context.Background(), h.owner, id, "")
		default:
			b, err = h.bookings.TransitionBookingStatus(context.Background(), h.owner, id, a)
		}
		require.NoError(t, err, "action %s", a)
	}
	return b
}

func (h *harness) days(t *testing.T, start, end time.Time) []availability.Day {
	t.Helper()
	r, err := availability.NewDateRange(start, end)
	require.NoError(t, err)
	days, err := memstore.NewAvailabilityReadStore(h.store).FindDays(context.Background(), h.vehicle.ID, r)
	require.NoError(t, err)
	return days
}

func (h *harness) isFree(t *testing.T, start, end time.Time) bool {
	t.Helper()
	r, err := availability.NewDateRange(start, end)
	require.NoError(t, err)
	check, err := h.coord.IsRangeFree(context.Background(), h.vehicle.ID, r)
	require.NoError(t, err)
	return check.Free
}

// drainJobs claims every queued outbox job due now.
func (h *harness) drainJobs(t *testing.T) []relay.Job {
	t.Helper()
	jobs, err := memstore.NewJobStore(h.store).ClaimDue(context.Background(), h.clock.Now(), 100)
	require.NoError(t, err)
	return jobs
}

func topics(jobs []relay.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Topic
	}
	return out
}

func decodeEvent(t *testing.T, job relay.Job) booking.Event {
	t.Helper()
	var ev booking.Event
	require.NoError(t, json.Unmarshal(job.Payload, &ev))
	return ev
}
