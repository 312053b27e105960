package response

import (
	"time"

	"vehicle-rental/internal/domain/availability"
	"vehicle-rental/internal/usecase/queries"
)

type DayResponse struct {
	Date         string  `json:"date"`
	IsAvailable  bool    `json:"is_available"`
	Reason       string  `json:"reason"`
	CustomReason string  `json:"custom_reason,omitempty"`
	BookingID    *string `json:"booking_id,omitempty"`
}

type BookedRangeResponse struct {
	BookingID string `json:"booking_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

type CalendarResponse struct {
	VehicleID string                `json:"vehicle_id"`
	From      string                `json:"from"`
	To        string                `json:"to"`
	Days      []DayResponse         `json:"days"`
	Bookings  []BookedRangeResponse `json:"bookings"`
}

func FromCalendarView(v *queries.CalendarView) *CalendarResponse {
	res := &CalendarResponse{
		VehicleID: v.VehicleID.String(),
		From:      v.From.Format(time.DateOnly),
		To:        v.To.Format(time.DateOnly),
		Days:      make([]DayResponse, len(v.Days)),
		Bookings:  make([]BookedRangeResponse, len(v.Bookings)),
	}
	for i, d := range v.Days {
		res.Days[i] = DayResponse{
			Date:         d.Date.Format(time.DateOnly),
			IsAvailable:  d.IsAvailable,
			Reason:       d.Reason,
			CustomReason: d.CustomReason,
		}
		if d.BookingID != nil {
			id := d.BookingID.String()
			res.Days[i].BookingID = &id
		}
	}
	for i, b := range v.Bookings {
		res.Bookings[i] = BookedRangeResponse{
			BookingID: b.BookingID.String(),
			StartDate: b.StartDate.Format(time.DateOnly),
			EndDate:   b.EndDate.Format(time.DateOnly),
			Status:    b.Status,
		}
	}
	return res
}

func FromDays(days []availability.Day) []DayResponse {
	res := make([]DayResponse, len(days))
	for i, d := range days {
		res[i] = DayResponse{
			Date:         d.Date.Format(time.DateOnly),
			IsAvailable:  d.IsAvailable,
			Reason:       d.Reason.String(),
			CustomReason: d.CustomReason,
		}
		if d.BookingID != nil {
			id := d.BookingID.String()
			res[i].BookingID = &id
		}
	}
	return res
}

type RangeCheckResponse struct {
	VehicleID           string   `json:"vehicle_id"`
	From                string   `json:"from"`
	To                  string   `json:"to"`
	Free                bool     `json:"free"`
	BlockedDates        []string `json:"blocked_dates"`
	ConflictingBookings []string `json:"conflicting_bookings"`
}

func FromRangeAvailability(v *queries.RangeAvailabilityView) *RangeCheckResponse {
	res := &RangeCheckResponse{
		VehicleID:           v.VehicleID.String(),
		From:                v.From.Format(time.DateOnly),
		To:                  v.To.Format(time.DateOnly),
		Free:                v.Free,
		BlockedDates:        make([]string, len(v.BlockedDates)),
		ConflictingBookings: make([]string, len(v.ConflictingBookings)),
	}
	for i, d := range v.BlockedDates {
		res.BlockedDates[i] = d.Format(time.DateOnly)
	}
	for i, id := range v.ConflictingBookings {
		res.ConflictingBookings[i] = id.String()
	}
	return res
}

type ReleaseResponse struct {
	BookingID    string `json:"booking_id"`
	ReleasedDays int    `json:"released_days"`
}
