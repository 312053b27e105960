package response

import (
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/usecase/queries"
)

type BookingResponse struct {
	ID                 string  `json:"id"`
	RenterID           string  `json:"renter_id"`
	OwnerID            string  `json:"owner_id"`
	VehicleID          string  `json:"vehicle_id"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	TotalDays          int     `json:"total_days"`
	PricePerDay        int64   `json:"price_per_day"`
	TotalAmount        int64   `json:"total_amount"`
	Status             string  `json:"status"`
	PaymentStatus      string  `json:"payment_status"`
	PaymentID          *string `json:"payment_id,omitempty"`
	PickupLocation     string  `json:"pickup_location"`
	DropoffLocation    string  `json:"dropoff_location"`
	CancellationReason string  `json:"cancellation_reason,omitempty"`
	CreatedAt          int64   `json:"created_at"`
	UpdatedAt          int64   `json:"updated_at"`
	AcceptedAt         *int64  `json:"accepted_at,omitempty"`
	StartedAt          *int64  `json:"started_at,omitempty"`
	CompletedAt        *int64  `json:"completed_at,omitempty"`
	CancelledAt        *int64  `json:"cancelled_at,omitempty"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:                 v.ID.String(),
		RenterID:           v.RenterID.String(),
		OwnerID:            v.OwnerID.String(),
		VehicleID:          v.VehicleID.String(),
		StartDate:          v.StartDate.Format(time.DateOnly),
		EndDate:            v.EndDate.Format(time.DateOnly),
		TotalDays:          v.TotalDays,
		PricePerDay:        v.PricePerDay,
		TotalAmount:        v.TotalAmount,
		Status:             v.Status,
		PaymentStatus:      v.PaymentStatus,
		PaymentID:          v.PaymentID,
		PickupLocation:     v.PickupLocation,
		DropoffLocation:    v.DropoffLocation,
		CancellationReason: v.CancellationReason,
		CreatedAt:          v.CreatedAt.Unix(),
		UpdatedAt:          v.UpdatedAt.Unix(),
		AcceptedAt:         unixPtr(v.AcceptedAt),
		StartedAt:          unixPtr(v.StartedAt),
		CompletedAt:        unixPtr(v.CompletedAt),
		CancelledAt:        unixPtr(v.CancelledAt),
	}
}

func FromBooking(b *booking.Booking) *BookingResponse {
	return FromBookingView(queries.NewBookingView(b))
}

func FromBookingList(items []*queries.BookingView) []*BookingResponse {
	res := make([]*BookingResponse, len(items))
	for i, it := range items {
		res[i] = FromBookingView(it)
	}
	return res
}

func unixPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	u := t.Unix()
	return &u
}
