package api

import (
	"io"
	"log/slog"
	"net/http"

	"vehicle-rental/internal/domain/money"
	"vehicle-rental/internal/handler/httperr"
	"vehicle-rental/internal/infra/payment"
	"vehicle-rental/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	signatureHeader = "X-Razorpay-Signature"
	maxWebhookBody  = 1 << 20
)

type PaymentHandler struct {
	cmds     commands.BookingCommands
	verifier payment.WebhookVerifier
}

func NewPaymentHandler(cmds commands.BookingCommands, verifier payment.WebhookVerifier) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, verifier: verifier}
}

// @Summary Payment webhook
// @Description Gateway callback. A verified capture confirms the booking named in the payment notes. Replays are acknowledged without changes.
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Razorpay-Signature header string true "HMAC-SHA256 of the body"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/webhooks/payments [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request body", nil)
		return
	}
	capture, ok, err := h.verifier.Parse(body, c.GetHeader(signatureHeader))
	if err != nil {
		handleError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
	bookingID, err := uuid.Parse(capture.BookingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id in payment notes", nil)
		return
	}
	b, err := h.cmds.ConfirmPayment(c.Request.Context(), bookingID, capture.PaymentID, money.FromMinor(capture.Amount))
	if err != nil {
		handleError(c, err)
		return
	}
	slog.Info("payment confirmed",
		"booking_id", b.ID(),
		"payment_id", capture.PaymentID,
		"event", capture.Event,
	)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "booking_status": b.Status().String()})
}
