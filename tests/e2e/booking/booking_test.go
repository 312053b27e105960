//go:build e2e

package booking_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"vehicle-rental/internal/domain/user"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/tests/common/authtest"
	"vehicle-rental/tests/common/dbtest"
	"vehicle-rental/tests/common/httptest"
	"vehicle-rental/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type bookingSuite struct {
	e2e.SharedSuite
	tokens *authtest.JWTHelper

	ownerID     uuid.UUID
	renterID    uuid.UUID
	ownerToken  string
	renterToken string
	vehicleID   uuid.UUID
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.tokens = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *bookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	s.ownerID, s.renterID = uuid.New(), uuid.New()
	s.ownerToken = s.tokens.GenerateToken(s.T(), s.ownerID, user.RoleOwner)
	s.renterToken = s.tokens.GenerateToken(s.T(), s.renterID, user.RoleRenter)
	s.vehicleID = dbtest.InsertVehicle(s.T(), s.DB, s.ownerID, 50000)
}

// window returns a date range starting offset days after a month from now.
func window(offset, days int) (string, string) {
	start := time.Now().UTC().AddDate(0, 1, offset)
	return start.Format(time.DateOnly), start.AddDate(0, 0, days-1).Format(time.DateOnly)
}

func (s *bookingSuite) create(token, start, end string) *resdto.BookingResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, map[string]any{
		"vehicle_id":       s.vehicleID,
		"start_date":       start,
		"end_date":         end,
		"pickup_location":  "Station A",
		"dropoff_location": "Station A",
	}, token)
	var b resdto.BookingResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &b)
	return &b
}

func (s *bookingSuite) post(path, token string, wantStatus int) *resdto.BookingResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, path, nil, token)
	var b resdto.BookingResponse
	httptest.AssertSuccessResponse(t, w, wantStatus, &b)
	return &b
}

func (s *bookingSuite) TestLifecycle() {
	s.Run("create, accept, start and complete records earnings", func() {
		t := s.T()
		start, end := window(0, 3)

		created := s.create(s.renterToken, start, end)
		require.Equal(t, "pending", created.Status)
		require.Equal(t, 3, created.TotalDays)
		require.Equal(t, int64(150000), created.TotalAmount)

		s.post(bookingsURL+"/"+created.ID+"/accept", s.ownerToken, http.StatusOK)
		s.post(bookingsURL+"/"+created.ID+"/start", s.ownerToken, http.StatusOK)
		done := s.post(bookingsURL+"/"+created.ID+"/complete", s.ownerToken, http.StatusOK)
		require.Equal(t, "completed", done.Status)
		require.NotNil(t, done.CompletedAt)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			"/api/owners/"+s.ownerID.String()+"/earnings/summary", nil, s.ownerToken)
		var sum resdto.EarningsSummaryResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &sum)

		want := resdto.EarningsSummaryResponse{
			OwnerID:       s.ownerID.String(),
			Settlements:   1,
			GrossAmount:   150000,
			PlatformFee:   15000,
			NetAmount:     135000,
			PendingPayout: 135000,
		}
		if diff := cmp.Diff(want, sum); diff != "" {
			t.Errorf("earnings summary mismatch (-want +got):\n%s", diff)
		}

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			"/api/owners/"+s.ownerID.String()+"/earnings", nil, s.ownerToken)
		var list struct {
			Earnings []resdto.EarningsResponse `json:"earnings"`
		}
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list.Earnings, 1)
		require.Equal(t, created.StartDate, list.Earnings[0].TripStart)
		require.Equal(t, created.EndDate, list.Earnings[0].TripEnd)
		require.Equal(t, 3, list.Earnings[0].TripDays)

		// completing twice is rejected and does not settle again
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID+"/complete", nil, s.ownerToken)
		httptest.AssertErrorCode(t, w, http.StatusConflict, "invalid_transition")
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "SELECT COUNT(*) FROM earnings WHERE booking_id = $1", created.ID))
	})

	s.Run("renter cannot accept their own request", func() {
		t := s.T()
		start, end := window(10, 2)
		created := s.create(s.renterToken, start, end)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID+"/accept", nil, s.renterToken)
		httptest.AssertErrorCode(t, w, http.StatusForbidden, "forbidden")
	})

	s.Run("owner cannot book their own vehicle", func() {
		t := s.T()
		start, end := window(20, 2)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, map[string]any{
			"vehicle_id": s.vehicleID,
			"start_date": start,
			"end_date":   end,
		}, s.ownerToken)
		httptest.AssertErrorCode(t, w, http.StatusBadRequest, "validation_failed")
	})
}

func (s *bookingSuite) TestConflicts() {
	s.Run("overlapping request is rejected with the blocked dates", func() {
		t := s.T()
		start, end := window(0, 5)
		first := s.create(s.renterToken, start, end)
		s.post(bookingsURL+"/"+first.ID+"/accept", s.ownerToken, http.StatusOK)

		other := s.tokens.GenerateToken(t, uuid.New(), user.RoleRenter)
		overlapStart, overlapEnd := window(3, 4)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, map[string]any{
			"vehicle_id": s.vehicleID,
			"start_date": overlapStart,
			"end_date":   overlapEnd,
		}, other)

		body := httptest.AssertErrorCode(t, w, http.StatusConflict, "conflict")
		require.Len(t, body.Detail["blocked_dates"], 2)
		require.Equal(t, []any{first.ID}, body.Detail["conflicting_bookings"])
	})

	s.Run("concurrent overlapping requests let exactly one through", func() {
		t := s.T()
		start, end := window(0, 4)
		overlapStart, overlapEnd := window(2, 4)
		tokens := []string{
			s.tokens.GenerateToken(t, uuid.New(), user.RoleRenter),
			s.tokens.GenerateToken(t, uuid.New(), user.RoleRenter),
		}
		ranges := [][2]string{{start, end}, {overlapStart, overlapEnd}}

		codes := make([]int, len(tokens))
		bodies := make([]string, len(tokens))
		var wg sync.WaitGroup
		for i := range tokens {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, map[string]any{
					"vehicle_id": s.vehicleID,
					"start_date": ranges[i][0],
					"end_date":   ranges[i][1],
				}, tokens[i])
				codes[i], bodies[i] = w.Code, w.Body.String()
			}(i)
		}
		wg.Wait()

		require.ElementsMatch(t, []int{http.StatusCreated, http.StatusConflict}, codes, "bodies: %v", bodies)
		for i, code := range codes {
			if code == http.StatusConflict {
				require.Contains(t, bodies[i], `"code":"conflict"`)
			}
		}
		require.Equal(t, 1, dbtest.CountRows(t, s.DB,
			"SELECT COUNT(*) FROM bookings WHERE vehicle_id = $1", s.vehicleID))
	})

	s.Run("cancelling frees the dates", func() {
		t := s.T()
		start, end := window(0, 3)
		first := s.create(s.renterToken, start, end)
		s.post(bookingsURL+"/"+first.ID+"/accept", s.ownerToken, http.StatusOK)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+first.ID+"/cancel",
			map[string]any{"reason": "plans changed"}, s.renterToken)
		var cancelled resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &cancelled)
		require.Equal(t, "cancelled", cancelled.Status)
		require.Equal(t, "plans changed", cancelled.CancellationReason)

		require.Zero(t, dbtest.CountRows(t, s.DB,
			"SELECT COUNT(*) FROM availability_days WHERE booking_id = $1", first.ID))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("/api/vehicles/%s/availability/check?from=%s&to=%s", s.vehicleID, start, end), nil, s.renterToken)
		var check resdto.RangeCheckResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &check)
		require.True(t, check.Free)

		s.create(s.tokens.GenerateToken(t, uuid.New(), user.RoleRenter), start, end)
	})
}

func (s *bookingSuite) TestPaymentWebhook() {
	s.Run("captured payment confirms an accepted booking once", func() {
		t := s.T()
		start, end := window(0, 2)
		created := s.create(s.renterToken, start, end)
		s.post(bookingsURL+"/"+created.ID+"/accept", s.ownerToken, http.StatusOK)

		body := []byte(fmt.Sprintf(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_e2e","order_id":"order_e2e","amount":100000,"notes":{"booking_id":%q}}}}}`, created.ID))
		mac := hmac.New(sha256.New, []byte(s.Config.Payment.WebhookSecret))
		mac.Write(body)
		headers := map[string]string{"X-Razorpay-Signature": hex.EncodeToString(mac.Sum(nil))}

		for range 2 {
			w := httptest.PerformRawRequest(t, s.Router, http.MethodPost, "/api/webhooks/payments", body, headers)
			var resp map[string]string
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
			require.Equal(t, "confirmed", resp["booking_status"])
		}

		require.Equal(t, 1, dbtest.CountRows(t, s.DB,
			"SELECT COUNT(*) FROM notification_jobs WHERE topic = 'booking.payment_confirmed'"))
	})
}
