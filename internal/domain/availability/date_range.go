package availability

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("end date must not be before start date")

// DateRange is an inclusive range of whole UTC days.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, ErrInvalidRange
	}
	s, e := TruncateDay(start), TruncateDay(end)
	if e.Before(s) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{start: s, end: e}, nil
}

// TruncateDay normalizes t to midnight UTC of its UTC calendar date.
func TruncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

func (r DateRange) IsZero() bool {
	return r.start.IsZero()
}

const secondsPerDay = 24 * 60 * 60

// Days counts calendar days in the range. Both ends are UTC midnights, so the
// Unix second difference is an exact multiple of a day and, unlike
// time.Duration, does not saturate for far-future dates.
func (r DateRange) Days() int {
	if r.IsZero() {
		return 0
	}
	return int((r.end.Unix()-r.start.Unix())/secondsPerDay) + 1
}

func (r DateRange) Dates() []time.Time {
	dates := make([]time.Time, 0, r.Days())
	for d := r.start; !d.After(r.end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

func (r DateRange) Contains(day time.Time) bool {
	d := TruncateDay(day)
	return !d.Before(r.start) && !d.After(r.end)
}

func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.end) && !other.start.After(r.end)
}

func (r DateRange) String() string {
	return r.start.Format(time.DateOnly) + ".." + r.end.Format(time.DateOnly)
}
