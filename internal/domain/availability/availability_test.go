//go:build unit

package availability_test

import (
	"testing"
	"time"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRange(t *testing.T) {
	t.Run("inclusive day count", func(t *testing.T) {
		r, err := availability.NewDateRange(builder.Date(2024, 5, 1), builder.Date(2024, 5, 3))
		require.NoError(t, err)

		assert.Equal(t, 3, r.Days())
		assert.Equal(t, []time.Time{
			builder.Date(2024, 5, 1),
			builder.Date(2024, 5, 2),
			builder.Date(2024, 5, 3),
		}, r.Dates())
	})

	t.Run("single day range", func(t *testing.T) {
		r, err := availability.NewDateRange(builder.Date(2024, 5, 1), builder.Date(2024, 5, 1))
		require.NoError(t, err)
		assert.Equal(t, 1, r.Days())
	})

	t.Run("times of day are dropped", func(t *testing.T) {
		r, err := availability.NewDateRange(
			time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC),
			time.Date(2024, 5, 2, 0, 15, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Equal(t, builder.Date(2024, 5, 1), r.Start())
		assert.Equal(t, 2, r.Days())
	})

	t.Run("day count spans a leap day", func(t *testing.T) {
		r, err := availability.NewDateRange(builder.Date(2024, 2, 28), builder.Date(2024, 3, 1))
		require.NoError(t, err)
		assert.Equal(t, 3, r.Days())
	})

	t.Run("day count agrees with Dates beyond the Duration range", func(t *testing.T) {
		r, err := availability.NewDateRange(builder.Date(2024, 5, 1), builder.Date(2400, 1, 1))
		require.NoError(t, err)
		assert.Equal(t, 137211, r.Days())
		assert.Len(t, r.Dates(), r.Days())
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := availability.NewDateRange(builder.Date(2024, 5, 3), builder.Date(2024, 5, 1))
		assert.ErrorIs(t, err, availability.ErrInvalidRange)
	})

	t.Run("zero dates are rejected", func(t *testing.T) {
		_, err := availability.NewDateRange(time.Time{}, builder.Date(2024, 5, 1))
		assert.ErrorIs(t, err, availability.ErrInvalidRange)
	})
}

func TestDateRange_Overlaps(t *testing.T) {
	mustRange := func(t *testing.T, from, to int) availability.DateRange {
		t.Helper()
		r, err := availability.NewDateRange(builder.Date(2024, 5, from), builder.Date(2024, 5, to))
		require.NoError(t, err)
		return r
	}

	testCases := []struct {
		name     string
		a, b     [2]int
		overlaps bool
	}{
		{name: "identical", a: [2]int{1, 3}, b: [2]int{1, 3}, overlaps: true},
		{name: "shared middle days", a: [2]int{1, 3}, b: [2]int{2, 4}, overlaps: true},
		{name: "touching on one inclusive day", a: [2]int{1, 3}, b: [2]int{3, 5}, overlaps: true},
		{name: "contained", a: [2]int{1, 10}, b: [2]int{4, 5}, overlaps: true},
		{name: "adjacent without shared day", a: [2]int{1, 3}, b: [2]int{4, 6}, overlaps: false},
		{name: "disjoint", a: [2]int{1, 2}, b: [2]int{10, 12}, overlaps: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := mustRange(t, tc.a[0], tc.a[1])
			b := mustRange(t, tc.b[0], tc.b[1])
			assert.Equal(t, tc.overlaps, a.Overlaps(b))
			assert.Equal(t, tc.overlaps, b.Overlaps(a))
		})
	}
}

func TestMark(t *testing.T) {
	vehicleID, ownerID := uuid.New(), uuid.New()
	r, err := availability.NewDateRange(builder.Date(2024, 5, 1), builder.Date(2024, 5, 3))
	require.NoError(t, err)

	t.Run("one record per day", func(t *testing.T) {
		m, err := availability.NewMark(vehicleID, ownerID, r, false, availability.ReasonMaintenance, "", nil)
		require.NoError(t, err)

		days := m.Apply()
		require.Len(t, days, 3)
		for _, d := range days {
			assert.False(t, d.IsAvailable)
			assert.Equal(t, availability.ReasonMaintenance, d.Reason)
			assert.Nil(t, d.BookingID)
		}
	})

	t.Run("applying twice yields the same records", func(t *testing.T) {
		bookingID := uuid.New()
		m, err := availability.NewMark(vehicleID, ownerID, r, false, availability.ReasonBooked, "", &bookingID)
		require.NoError(t, err)
		assert.Equal(t, m.Apply(), m.Apply())
	})

	t.Run("booked mark needs a booking", func(t *testing.T) {
		_, err := availability.NewMark(vehicleID, ownerID, r, false, availability.ReasonBooked, "", nil)
		assert.ErrorIs(t, err, availability.ErrBookedNeedsBooking)
	})

	t.Run("booking id dropped for non-booked reasons", func(t *testing.T) {
		bookingID := uuid.New()
		m, err := availability.NewMark(vehicleID, ownerID, r, false, availability.ReasonOther, "  service  ", &bookingID)
		require.NoError(t, err)
		assert.Nil(t, m.BookingID)
		assert.Equal(t, "service", m.CustomReason)
	})

	t.Run("range longer than a year", func(t *testing.T) {
		long, err := availability.NewDateRange(builder.Date(2024, 5, 1), builder.Date(9999, 12, 31))
		require.NoError(t, err)
		_, err = availability.NewMark(vehicleID, ownerID, long, false, availability.ReasonMaintenance, "", nil)
		assert.ErrorIs(t, err, availability.ErrRangeTooLong)
	})

	t.Run("invalid reason", func(t *testing.T) {
		_, err := availability.NewMark(vehicleID, ownerID, r, false, availability.Reason("holiday"), "", nil)
		assert.ErrorIs(t, err, availability.ErrInvalidReason)
	})

	t.Run("custom reason too long", func(t *testing.T) {
		long := make([]byte, availability.MaxCustomReasonLength+1)
		for i := range long {
			long[i] = 'x'
		}
		_, err := availability.NewMark(vehicleID, ownerID, r, false, availability.ReasonOther, string(long), nil)
		assert.ErrorIs(t, err, availability.ErrCustomReasonTooLong)
	})
}

func TestBlockedDates(t *testing.T) {
	vehicleID := uuid.New()
	r, err := availability.NewDateRange(builder.Date(2024, 5, 1), builder.Date(2024, 5, 5))
	require.NoError(t, err)

	days := []availability.Day{
		{VehicleID: vehicleID, Date: builder.Date(2024, 5, 4), IsAvailable: false, Reason: availability.ReasonMaintenance},
		{VehicleID: vehicleID, Date: builder.Date(2024, 5, 2), IsAvailable: false, Reason: availability.ReasonPersonalUse},
		{VehicleID: vehicleID, Date: builder.Date(2024, 5, 3), IsAvailable: true, Reason: availability.ReasonPersonalUse},
		{VehicleID: vehicleID, Date: builder.Date(2024, 5, 9), IsAvailable: false, Reason: availability.ReasonMaintenance},
	}

	assert.Equal(t, []time.Time{builder.Date(2024, 5, 2), builder.Date(2024, 5, 4)}, availability.BlockedDates(days, r))
	assert.False(t, availability.IsRangeFree(days, r))

	t.Run("absent days are available", func(t *testing.T) {
		assert.True(t, availability.IsRangeFree(nil, r))
	})
}
