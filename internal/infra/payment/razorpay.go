package payment

import (
	"encoding/json"

	"vehicle-rental/internal/pkg/errs"

	"github.com/razorpay/razorpay-go/utils"
)

var (
	ErrInvalidSignature = errs.Mark(errs.New("invalid webhook signature"), errs.ErrUnauthorized)
	ErrMalformedPayload = errs.Mark(errs.New("malformed webhook payload"), errs.ErrValidation)
	ErrMissingBookingID = errs.Mark(errs.New("payment notes carry no booking_id"), errs.ErrValidation)
)

const (
	EventPaymentCaptured = "payment.captured"
	EventOrderPaid       = "order.paid"
)

// Capture is a verified, paid event correlated to a booking.
type Capture struct {
	Event     string
	PaymentID string
	OrderID   string
	BookingID string
	Amount    int64
}

type WebhookVerifier interface {
	// Parse verifies signature over body and extracts the capture. ok is false for
	// events that do not confirm a payment.
	Parse(body []byte, signature string) (capture *Capture, ok bool, err error)
}

type RazorpayVerifier struct {
	secret string
}

func NewRazorpayVerifier(secret string) *RazorpayVerifier {
	return &RazorpayVerifier{secret: secret}
}

type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string            `json:"id"`
				OrderID string            `json:"order_id"`
				Amount  int64             `json:"amount"`
				Status  string            `json:"status"`
				Notes   map[string]string `json:"notes"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

func (v *RazorpayVerifier) Parse(body []byte, signature string) (*Capture, bool, error) {
	if v.secret == "" || signature == "" || !utils.VerifyWebhookSignature(string(body), signature, v.secret) {
		return nil, false, ErrInvalidSignature
	}

	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, false, errs.Mark(errs.Wrap(err, "decode webhook"), ErrMalformedPayload)
	}

	switch env.Event {
	case EventPaymentCaptured, EventOrderPaid:
	default:
		return nil, false, nil
	}

	entity := env.Payload.Payment.Entity
	if entity.ID == "" {
		return nil, false, ErrMalformedPayload
	}
	bookingID := entity.Notes["booking_id"]
	if bookingID == "" {
		return nil, false, ErrMissingBookingID
	}

	return &Capture{
		Event:     env.Event,
		PaymentID: entity.ID,
		OrderID:   entity.OrderID,
		BookingID: bookingID,
		Amount:    entity.Amount,
	}, true, nil
}
