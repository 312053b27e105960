//go:build unit

package api_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"testing"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/money"
	"vehicle-rental/internal/handler/api"
	"vehicle-rental/internal/infra/payment"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/tests/common/builder"
	"vehicle-rental/tests/common/httptest"
	commandsmock "vehicle-rental/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const webhookSecret = "whsec_handler_test"

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	booking      *booking.Booking
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	h := api.NewPaymentHandler(s.mockCommands, payment.NewRazorpayVerifier(webhookSecret))
	s.router.POST("/api/webhooks/payments", h.Webhook)

	b, err := builder.NewBookingBuilder().BuildDomain()
	s.Require().NoError(err)
	s.booking = b
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) capturedBody(bookingID string) []byte {
	return []byte(fmt.Sprintf(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1","amount":150000,"notes":{"booking_id":%q}}}}}`, bookingID))
}

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *PaymentHandlerTestSuite) post(body []byte, signature string) int {
	rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/api/webhooks/payments", body,
		map[string]string{"X-Razorpay-Signature": signature})
	return rec.Code
}

func (s *PaymentHandlerTestSuite) TestWebhook() {
	s.Run("success: confirms the booking", func() {
		body := s.capturedBody(s.booking.ID().String())
		s.mockCommands.EXPECT().ConfirmPayment(gomock.Any(), s.booking.ID(), "pay_1", money.FromMinor(150000)).Return(s.booking, nil).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/api/webhooks/payments", body,
			map[string]string{"X-Razorpay-Signature": sign(body)})

		var resp map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("ok", resp["status"])
	})

	s.Run("error: 403 on bad signature", func() {
		body := s.capturedBody(s.booking.ID().String())
		s.Equal(http.StatusForbidden, s.post(body, "deadbeef"))
	})

	s.Run("success: other events are acknowledged and ignored", func() {
		body := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_2"}}}}`)
		s.Equal(http.StatusOK, s.post(body, sign(body)))
	})

	s.Run("error: 400 when booking id is not a uuid", func() {
		body := s.capturedBody("BK-42")
		s.Equal(http.StatusBadRequest, s.post(body, sign(body)))
	})

	s.Run("error: 409 when the booking was paid by another payment", func() {
		body := s.capturedBody(s.booking.ID().String())
		s.mockCommands.EXPECT().ConfirmPayment(gomock.Any(), s.booking.ID(), "pay_1", gomock.Any()).
			Return(nil, commands.ErrPaymentMismatch).Times(1)
		s.Equal(http.StatusConflict, s.post(body, sign(body)))
	})

	s.Run("error: 404 for unknown booking", func() {
		body := s.capturedBody(s.booking.ID().String())
		s.mockCommands.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrBookingNotFound).Times(1)
		s.Equal(http.StatusNotFound, s.post(body, sign(body)))
	})
}
