package booking

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCreated          EventType = "booking.created"
	EventAccepted         EventType = "booking.accepted"
	EventRejected         EventType = "booking.rejected"
	EventStarted          EventType = "booking.started"
	EventPaymentConfirmed EventType = "booking.payment_confirmed"
	EventCompleted        EventType = "booking.completed"
	EventCancelled        EventType = "booking.cancelled"
)

func (t EventType) String() string {
	return string(t)
}

var actionEvents = map[Action]EventType{
	ActionAccept:         EventAccepted,
	ActionReject:         EventRejected,
	ActionCancel:         EventCancelled,
	ActionStart:          EventStarted,
	ActionComplete:       EventCompleted,
	ActionConfirmPayment: EventPaymentConfirmed,
}

func EventTypeFor(action Action) EventType {
	return actionEvents[action]
}

type Event struct {
	Type       EventType `json:"type"`
	BookingID  uuid.UUID `json:"booking_id"`
	RenterID   uuid.UUID `json:"renter_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	VehicleID  uuid.UUID `json:"vehicle_id"`
	NewStatus  Status    `json:"new_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (b *Booking) NewEvent(t EventType, at time.Time) Event {
	return Event{
		Type:       t,
		BookingID:  b.id,
		RenterID:   b.renterID,
		OwnerID:    b.ownerID,
		VehicleID:  b.vehicleID,
		NewStatus:  b.status,
		OccurredAt: at,
	}
}
