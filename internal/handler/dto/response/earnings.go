package response

import (
	"time"

	"vehicle-rental/internal/usecase/queries"
)

type EarningsResponse struct {
	ID           string `json:"id"`
	BookingID    string `json:"booking_id"`
	VehicleID    string `json:"vehicle_id"`
	TripStart    string `json:"trip_start_date"`
	TripEnd      string `json:"trip_end_date"`
	TripDays     int    `json:"trip_days"`
	GrossAmount  int64  `json:"gross_amount"`
	PlatformFee  int64  `json:"platform_fee"`
	NetAmount    int64  `json:"net_amount"`
	PayoutStatus string `json:"payout_status"`
	CreatedAt    int64  `json:"created_at"`
}

func FromEarningsList(items []*queries.EarningsView) []*EarningsResponse {
	res := make([]*EarningsResponse, len(items))
	for i, it := range items {
		res[i] = &EarningsResponse{
			ID:           it.ID.String(),
			BookingID:    it.BookingID.String(),
			VehicleID:    it.VehicleID.String(),
			TripStart:    it.TripStart.Format(time.DateOnly),
			TripEnd:      it.TripEnd.Format(time.DateOnly),
			TripDays:     it.TripDays,
			GrossAmount:  it.Gross,
			PlatformFee:  it.Fee,
			NetAmount:    it.Net,
			PayoutStatus: it.PayoutStatus,
			CreatedAt:    it.CreatedAt.Unix(),
		}
	}
	return res
}

type EarningsSummaryResponse struct {
	OwnerID       string `json:"owner_id"`
	Settlements   int    `json:"settlements"`
	GrossAmount   int64  `json:"gross_amount"`
	PlatformFee   int64  `json:"platform_fee"`
	NetAmount     int64  `json:"net_amount"`
	PendingPayout int64  `json:"pending_payout"`
}

func FromEarningsSummary(s *queries.EarningsSummary) *EarningsSummaryResponse {
	return &EarningsSummaryResponse{
		OwnerID:       s.OwnerID.String(),
		Settlements:   s.Settlements,
		GrossAmount:   s.Gross,
		PlatformFee:   s.Fee,
		NetAmount:     s.Net,
		PendingPayout: s.PendingPayout,
	}
}
