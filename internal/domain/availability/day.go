package availability

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidReason       = errors.New("invalid availability reason")
	ErrCustomReasonTooLong = errors.New("custom reason is too long (max 255 characters)")
	ErrBookedNeedsBooking  = errors.New("booked days must reference a booking")
	ErrRangeTooLong        = errors.New("availability range may span at most 366 days")
)

// MaxRangeDays bounds any single write to the ledger.
const MaxRangeDays = 366

const MaxCustomReasonLength = 255

type Reason string

const (
	ReasonPersonalUse Reason = "personal_use"
	ReasonMaintenance Reason = "maintenance"
	ReasonBooked      Reason = "booked"
	ReasonOther       Reason = "other"
)

func (r Reason) String() string {
	return string(r)
}

func (r Reason) IsValid() bool {
	switch r {
	case ReasonPersonalUse, ReasonMaintenance, ReasonBooked, ReasonOther:
		return true
	default:
		return false
	}
}

func NewReason(s string) (Reason, error) {
	r := Reason(s)
	if !r.IsValid() {
		return "", ErrInvalidReason
	}
	return r, nil
}

// Day is an explicit per-day override of a vehicle's default availability.
// A missing Day means the date is available.
type Day struct {
	VehicleID    uuid.UUID
	OwnerID      uuid.UUID
	Date         time.Time
	IsAvailable  bool
	Reason       Reason
	CustomReason string
	BookingID    *uuid.UUID
	UpdatedAt    time.Time
}

// Mark describes one markRange call over an inclusive range.
type Mark struct {
	VehicleID    uuid.UUID
	OwnerID      uuid.UUID
	Range        DateRange
	IsAvailable  bool
	Reason       Reason
	CustomReason string
	BookingID    *uuid.UUID
}

func NewMark(vehicleID, ownerID uuid.UUID, r DateRange, isAvailable bool, reason Reason, customReason string, bookingID *uuid.UUID) (Mark, error) {
	if r.IsZero() {
		return Mark{}, ErrInvalidRange
	}
	if r.Days() > MaxRangeDays {
		return Mark{}, ErrRangeTooLong
	}
	if !reason.IsValid() {
		return Mark{}, ErrInvalidReason
	}
	customReason = strings.TrimSpace(customReason)
	if len(customReason) > MaxCustomReasonLength {
		return Mark{}, ErrCustomReasonTooLong
	}
	if reason == ReasonBooked && !isAvailable && bookingID == nil {
		return Mark{}, ErrBookedNeedsBooking
	}
	if reason != ReasonBooked {
		bookingID = nil
	}
	return Mark{
		VehicleID:    vehicleID,
		OwnerID:      ownerID,
		Range:        r,
		IsAvailable:  isAvailable,
		Reason:       reason,
		CustomReason: customReason,
		BookingID:    bookingID,
	}, nil
}

// Apply produces the records a mark leaves behind; applying it twice yields the same days.
func (m Mark) Apply() []Day {
	dates := m.Range.Dates()
	days := make([]Day, len(dates))
	for i, d := range dates {
		days[i] = Day{
			VehicleID:    m.VehicleID,
			OwnerID:      m.OwnerID,
			Date:         d,
			IsAvailable:  m.IsAvailable,
			Reason:       m.Reason,
			CustomReason: m.CustomReason,
			BookingID:    m.BookingID,
		}
	}
	return days
}

// BlockedDates returns, sorted, the dates in r that carry an explicit unavailable record.
func BlockedDates(days []Day, r DateRange) []time.Time {
	var blocked []time.Time
	for _, d := range days {
		if !d.IsAvailable && r.Contains(d.Date) {
			blocked = append(blocked, TruncateDay(d.Date))
		}
	}
	sort.Slice(blocked, func(i, j int) bool { return blocked[i].Before(blocked[j]) })
	return blocked
}

func IsRangeFree(days []Day, r DateRange) bool {
	return len(BlockedDates(days, r)) == 0
}
