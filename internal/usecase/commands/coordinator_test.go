//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/shared"
	"vehicle-rental/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserve_ConcurrentOverlappingRequests(t *testing.T) {
	h := newHarness(t)

	ranges := [][2]int{{1, 3}, {2, 4}}
	var (
		wg      sync.WaitGroup
		results = make([]*booking.Booking, len(ranges))
		errList = make([]error, len(ranges))
	)
	for i, rg := range ranges {
		wg.Add(1)
		go func(i int, start, end int) {
			defer wg.Done()
			results[i], errList[i] = h.bookings.CreateBookingRequest(context.Background(), builder.Renter(uuid.New()), commands.CreateBookingInput{
				VehicleID: h.vehicle.ID,
				StartDate: builder.Date(2024, 5, start),
				EndDate:   builder.Date(2024, 5, end),
			})
		}(i, rg[0], rg[1])
	}
	wg.Wait()

	var winner *booking.Booking
	var conflict *commands.ConflictError
	conflicts := 0
	for i := range ranges {
		if errList[i] == nil {
			require.Nil(t, winner, "both overlapping requests succeeded")
			winner = results[i]
			continue
		}
		require.True(t, errs.As(errList[i], &conflict), "unexpected error: %v", errList[i])
		assert.True(t, errs.Is(errList[i], errs.ErrConflict))
		conflicts++
	}
	require.NotNil(t, winner)
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, booking.StatusPending, winner.Status())
	assert.Equal(t, []uuid.UUID{winner.ID()}, conflict.ConflictingBookings)
	assert.Equal(t, []time.Time{builder.Date(2024, 5, 2), builder.Date(2024, 5, 3)}, conflict.BlockedDates)
}

func TestReserve_BlockedByOwnerBlackout(t *testing.T) {
	h := newHarness(t)
	r, err := availability.NewDateRange(builder.Date(2024, 5, 3), builder.Date(2024, 5, 3))
	require.NoError(t, err)
	_, err = h.coord.SetAvailability(context.Background(), h.owner, commands.SetAvailabilityInput{
		VehicleID: h.vehicle.ID,
		Range:     r,
		Reason:    availability.ReasonMaintenance,
	})
	require.NoError(t, err)

	_, err = h.bookings.CreateBookingRequest(context.Background(), builder.Renter(uuid.New()), commands.CreateBookingInput{
		VehicleID: h.vehicle.ID,
		StartDate: builder.Date(2024, 5, 1),
		EndDate:   builder.Date(2024, 5, 4),
	})
	var conflict *commands.ConflictError
	require.True(t, errs.As(err, &conflict))
	assert.Equal(t, []time.Time{builder.Date(2024, 5, 3)}, conflict.BlockedDates)
	assert.Empty(t, conflict.ConflictingBookings)

	// Adjacent ranges are free.
	assert.True(t, h.isFree(t, builder.Date(2024, 5, 4), builder.Date(2024, 5, 6)))
}

func TestReserve_Validation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input func() commands.CreateBookingInput
		errIs error
	}{
		{
			name: "unknown vehicle",
			input: func() commands.CreateBookingInput {
				return commands.CreateBookingInput{VehicleID: uuid.New(), StartDate: builder.Date(2024, 5, 1), EndDate: builder.Date(2024, 5, 2)}
			},
			errIs: errs.ErrNotFound,
		},
		{
			name: "end before start",
			input: func() commands.CreateBookingInput {
				return commands.CreateBookingInput{VehicleID: h.vehicle.ID, StartDate: builder.Date(2024, 5, 3), EndDate: builder.Date(2024, 5, 2)}
			},
			errIs: errs.ErrValidation,
		},
		{
			name: "longer than a year",
			input: func() commands.CreateBookingInput {
				return commands.CreateBookingInput{VehicleID: h.vehicle.ID, StartDate: builder.Date(2024, 5, 1), EndDate: builder.Date(9999, 12, 31)}
			},
			errIs: errs.ErrValidation,
		},
		{
			name: "start in the past",
			input: func() commands.CreateBookingInput {
				return commands.CreateBookingInput{VehicleID: h.vehicle.ID, StartDate: builder.Date(2024, 4, 20), EndDate: builder.Date(2024, 5, 2)}
			},
			errIs: errs.ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.bookings.CreateBookingRequest(ctx, builder.Renter(uuid.New()), tt.input())
			require.Error(t, err)
			assert.True(t, errs.Is(err, tt.errIs), "got %v", err)
		})
	}

	t.Run("owner cannot book own vehicle", func(t *testing.T) {
		_, err := h.bookings.CreateBookingRequest(ctx, h.owner, commands.CreateBookingInput{
			VehicleID: h.vehicle.ID,
			StartDate: builder.Date(2024, 5, 1),
			EndDate:   builder.Date(2024, 5, 2),
		})
		assert.True(t, errs.Is(err, errs.ErrValidation))
		assert.True(t, errs.Is(err, booking.ErrSelfBooking))
	})
}

func TestReserve_EnqueuesCreatedEvent(t *testing.T) {
	h := newHarness(t)
	renter := builder.Renter(uuid.New())
	b := h.create(t, renter, builder.Date(2024, 5, 1), builder.Date(2024, 5, 3))

	jobs := h.drainJobs(t)
	require.Len(t, jobs, 1)
	ev := decodeEvent(t, jobs[0])
	assert.Equal(t, booking.EventCreated, ev.Type)
	assert.Equal(t, b.ID(), ev.BookingID)
	assert.Equal(t, renter.UserID, ev.RenterID)
	assert.Equal(t, h.vehicle.OwnerID, ev.OwnerID)
	assert.Equal(t, booking.StatusPending, ev.NewStatus)
}

func TestCommit(t *testing.T) {
	h := newHarness(t)
	b := h.create(t, builder.Renter(uuid.New()), builder.Date(2024, 5, 1), builder.Date(2024, 5, 2))

	t.Run("pending booking cannot be committed", func(t *testing.T) {
		err := h.coord.Commit(context.Background(), b.ID())
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition), "got %v", err)
		assert.Empty(t, h.days(t, builder.Date(2024, 5, 1), builder.Date(2024, 5, 2)))
	})

	t.Run("commit is idempotent", func(t *testing.T) {
		h.transition(t, b.ID(), booking.ActionAccept)
		require.NoError(t, h.coord.Commit(context.Background(), b.ID()))

		days := h.days(t, builder.Date(2024, 5, 1), builder.Date(2024, 5, 2))
		require.Len(t, days, 2)
		for _, d := range days {
			assert.False(t, d.IsAvailable)
			assert.Equal(t, availability.ReasonBooked, d.Reason)
			require.NotNil(t, d.BookingID)
			assert.Equal(t, b.ID(), *d.BookingID)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		err := h.coord.Commit(context.Background(), uuid.New())
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})
}

func TestRelease(t *testing.T) {
	h := newHarness(t)
	b := h.create(t, builder.Renter(uuid.New()), builder.Date(2024, 5, 1), builder.Date(2024, 5, 3))

	t.Run("active booking keeps its days", func(t *testing.T) {
		_, err := h.coord.Release(context.Background(), b.ID())
		assert.True(t, errs.Is(err, errs.ErrConflict), "got %v", err)
	})

	h.transition(t, b.ID(), booking.ActionAccept, booking.ActionCancel)

	t.Run("second release changes nothing", func(t *testing.T) {
		n, err := h.coord.Release(context.Background(), b.ID())
		require.NoError(t, err)
		assert.Zero(t, n)

		for _, d := range h.days(t, builder.Date(2024, 5, 1), builder.Date(2024, 5, 3)) {
			assert.True(t, d.IsAvailable)
			assert.Nil(t, d.BookingID)
		}
		assert.True(t, h.isFree(t, builder.Date(2024, 5, 1), builder.Date(2024, 5, 3)))
	})
}

func TestSetAvailability(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	r, err := availability.NewDateRange(builder.Date(2024, 6, 1), builder.Date(2024, 6, 3))
	require.NoError(t, err)

	t.Run("owner blocks and reopens a range", func(t *testing.T) {
		days, err := h.coord.SetAvailability(ctx, h.owner, commands.SetAvailabilityInput{
			VehicleID:    h.vehicle.ID,
			Range:        r,
			Reason:       availability.ReasonOther,
			CustomReason: "  family trip  ",
		})
		require.NoError(t, err)
		require.Len(t, days, 3)
		assert.Equal(t, "family trip", days[0].CustomReason)
		assert.False(t, h.isFree(t, r.Start(), r.End()))

		days, err = h.coord.SetAvailability(ctx, h.owner, commands.SetAvailabilityInput{
			VehicleID:   h.vehicle.ID,
			Range:       r,
			IsAvailable: true,
			Reason:      availability.ReasonPersonalUse,
		})
		require.NoError(t, err)
		require.Len(t, days, 3)
		assert.True(t, h.isFree(t, r.Start(), r.End()))
	})

	t.Run("booked reason is reserved for the booking flow", func(t *testing.T) {
		_, err := h.coord.SetAvailability(ctx, h.owner, commands.SetAvailabilityInput{
			VehicleID: h.vehicle.ID,
			Range:     r,
			Reason:    availability.ReasonBooked,
		})
		assert.ErrorIs(t, err, commands.ErrReservedReason)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("other users are rejected", func(t *testing.T) {
		_, err := h.coord.SetAvailability(ctx, builder.Owner(uuid.New()), commands.SetAvailabilityInput{
			VehicleID: h.vehicle.ID,
			Range:     r,
			Reason:    availability.ReasonMaintenance,
		})
		assert.True(t, errs.Is(err, errs.ErrUnauthorized))
	})

	t.Run("cannot override an active booking", func(t *testing.T) {
		b := h.create(t, builder.Renter(uuid.New()), builder.Date(2024, 7, 1), builder.Date(2024, 7, 2))
		br, err := availability.NewDateRange(builder.Date(2024, 7, 2), builder.Date(2024, 7, 5))
		require.NoError(t, err)

		_, err = h.coord.SetAvailability(ctx, h.owner, commands.SetAvailabilityInput{
			VehicleID:   h.vehicle.ID,
			Range:       br,
			IsAvailable: true,
			Reason:      availability.ReasonPersonalUse,
		})
		var conflict *commands.ConflictError
		require.True(t, errs.As(err, &conflict), "got %v", err)
		assert.Equal(t, []uuid.UUID{b.ID()}, conflict.ConflictingBookings)
		assert.Empty(t, h.days(t, br.Start(), br.End()))
	})
}

func TestIsRangeFree_UnknownVehicle(t *testing.T) {
	h := newHarness(t)
	r, err := availability.NewDateRange(builder.Date(2024, 5, 1), builder.Date(2024, 5, 2))
	require.NoError(t, err)

	_, err = h.coord.IsRangeFree(context.Background(), uuid.New(), r)
	assert.ErrorIs(t, err, commands.ErrVehicleNotFound)
}

func TestCreateBookingRequest_TimesOutWhileStoreIsHeld(t *testing.T) {
	h := newHarness(t)
	const bound = 150 * time.Millisecond
	coord := commands.NewReservationCoordinator(h.store, h.clock, bound)
	bookings := commands.NewBookingUseCase(coord, h.recorder, h.clock, shared.RetryPolicy{MaxAttempts: 1})

	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- h.store.Within(context.Background(), func(context.Context, shared.Tx) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	started := time.Now()
	_, err := bookings.CreateBookingRequest(context.Background(), builder.Renter(uuid.New()), commands.CreateBookingInput{
		VehicleID: h.vehicle.ID,
		StartDate: builder.Date(2024, 5, 1),
		EndDate:   builder.Date(2024, 5, 3),
	})
	elapsed := time.Since(started)

	close(release)
	require.NoError(t, <-done)

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrTimeout), "got %v", err)
	assert.GreaterOrEqual(t, elapsed, bound)
	assert.Less(t, elapsed, bound+time.Second)

	// nothing was written, and the store is usable again
	assert.True(t, h.isFree(t, builder.Date(2024, 5, 1), builder.Date(2024, 5, 3)))
}
