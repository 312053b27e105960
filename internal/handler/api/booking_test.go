//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/handler/api"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/handler/middleware"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/internal/usecase/shared"
	"vehicle-rental/tests/common/builder"
	"vehicle-rental/tests/common/httptest"
	"vehicle-rental/tests/common/testutil"
	commandsmock "vehicle-rental/tests/mock/commands"
	queriesmock "vehicle-rental/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// fakeAuth stands in for RequireAuth: any bearer token authenticates as actor.
func fakeAuth(actor *shared.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		middleware.SetActor(c, *actor)
		c.Next()
	}
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	actor        shared.Actor
	bookings     *builder.BookingBuilder
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.bookings = builder.NewBookingBuilder()
	s.actor = builder.Renter(s.bookings.RenterID)

	auth := fakeAuth(&s.actor)
	s.router.POST("/api/bookings", auth, s.handler.Create)
	s.router.GET("/api/bookings", auth, s.handler.List)
	s.router.GET("/api/bookings/:id", auth, s.handler.Get)
	s.router.POST("/api/bookings/:id/accept", auth, s.handler.Accept)
	s.router.POST("/api/bookings/:id/reject", auth, s.handler.Reject)
	s.router.POST("/api/bookings/:id/start", auth, s.handler.Start)
	s.router.POST("/api/bookings/:id/complete", auth, s.handler.Complete)
	s.router.POST("/api/bookings/:id/cancel", auth, s.handler.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     testutil.Mutation
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/api/bookings"
	reqBody := s.bookings.BuildCreateRequestDTO()
	created, err := s.bookings.BuildDomain()
	s.Require().NoError(err)

	bound := []testCaseBooking{
		{name: "pickup length OK (500 chars)", mutate: testutil.Field("pickup_location", strings.Repeat("a", 500)), expectCode: http.StatusCreated},
		{name: "pickup length invalid (501 chars)", mutate: testutil.Field("pickup_location", strings.Repeat("a", 501)), expectCode: http.StatusBadRequest},
		{name: "dropoff length invalid (501 chars)", mutate: testutil.Field("dropoff_location", strings.Repeat("a", 501)), expectCode: http.StatusBadRequest},
		{name: "start date not a date", mutate: testutil.Field("start_date", "2024/05/10"), expectCode: http.StatusBadRequest},
		{name: "end date with time", mutate: testutil.Field("end_date", "2024-05-12T10:00:00Z"), expectCode: http.StatusBadRequest},
		{name: "span over 366 days", mutate: testutil.Field("end_date", "9999-12-31"), expectCode: http.StatusBadRequest},
	}

	missing := []testCaseBooking{
		{name: "missing field: vehicle_id (required)", mutate: testutil.Field("vehicle_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: start_date (required)", mutate: testutil.Field("start_date", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: end_date (required)", mutate: testutil.Field("end_date", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: pickup_location (optional)", mutate: testutil.Field("pickup_location", nil), expectCode: http.StatusCreated},
	}

	s.Run("success: returns 201 Created with Location", func() {
		s.mockCommands.EXPECT().
			CreateBookingRequest(gomock.Any(), s.actor, s.bookings.BuildCreateInput()).
			Return(created, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(created.ID().String(), body.ID)
		s.Equal("pending", body.Status)
		s.Equal("pending", body.PaymentStatus)
		s.Equal("2024-05-10", body.StartDate)
		s.Equal("2024-05-12", body.EndDate)
		s.Equal(3, body.TotalDays)
		s.Equal(int64(150000), body.TotalAmount)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/" + created.ID().String()})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, group := range [][]testCaseBooking{bound, missing} {
			for _, tc := range group {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().CreateBookingRequest(gomock.Any(), gomock.Any(), gomock.Any()).
							Return(created, nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
					s.Equal(tc.expectCode, rec.Code, rec.Body.String())
				})
			}
		}
	})

	s.Run("error: 409 Conflict carries blocked dates", func() {
		other := uuid.New()
		r, err := s.bookings.Range()
		s.Require().NoError(err)
		s.mockCommands.EXPECT().CreateBookingRequest(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &commands.ConflictError{
				VehicleID:           s.bookings.Vehicle.ID,
				Range:               r,
				BlockedDates:        []time.Time{builder.Date(2024, 5, 11), builder.Date(2024, 5, 12)},
				ConflictingBookings: []uuid.UUID{other},
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		body := httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "conflict")
		s.Equal([]any{"2024-05-11", "2024-05-12"}, body.Detail["blocked_dates"])
		s.Equal([]any{other.String()}, body.Detail["conflicting_bookings"])
	})

	s.Run("error: domain validation maps to 400", func() {
		s.mockCommands.EXPECT().CreateBookingRequest(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(booking.ErrSelfBooking, errs.ErrValidation)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "validation_failed")
	})

	s.Run("error: 404 for unknown vehicle", func() {
		s.mockCommands.EXPECT().CreateBookingRequest(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrVehicleNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "not_found")
	})

	s.Run("error: 503 when the reservation times out", func() {
		s.mockCommands.EXPECT().CreateBookingRequest(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrReservationTimeout).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusServiceUnavailable, "timeout")
	})

	s.Run("error: internal failures hide their message", func() {
		s.mockCommands.EXPECT().CreateBookingRequest(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("pq: connection reset"), errs.ErrDatabaseOperationFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		body := httptest.AssertErrorCode(s.T(), rec, http.StatusInternalServerError, "internal")
		s.NotContains(body.Error.Message, "connection reset")
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestTransitions
// ================================================================================

func (s *BookingHandlerTestSuite) TestTransitions() {
	b, err := s.bookings.BuildDomain()
	s.Require().NoError(err)
	id := b.ID()

	actions := []struct {
		path   string
		action booking.Action
	}{
		{"accept", booking.ActionAccept},
		{"reject", booking.ActionReject},
		{"start", booking.ActionStart},
	}
	for _, a := range actions {
		s.Run("success: "+a.path, func() {
			s.mockCommands.EXPECT().TransitionBookingStatus(gomock.Any(), s.actor, id, a.action).
				Return(b, nil).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/"+id.String()+"/"+a.path, nil, "bearer-token")
			var body resdto.BookingResponse
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
			s.Equal(id.String(), body.ID)
		})
	}

	s.Run("error: 409 with current status on an invalid transition", func() {
		terr := &booking.TransitionError{From: booking.StatusCompleted, Action: booking.ActionAccept}
		s.mockCommands.EXPECT().TransitionBookingStatus(gomock.Any(), gomock.Any(), id, booking.ActionAccept).
			Return(nil, errs.Mark(terr, errs.ErrInvalidTransition)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/"+id.String()+"/accept", nil, "bearer-token")
		body := httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "invalid_transition")
		s.Equal("completed", body.Detail["current_status"])
		s.Equal("accept", body.Detail["attempted_action"])
	})

	s.Run("error: 403 when the actor is not a participant", func() {
		s.mockCommands.EXPECT().TransitionBookingStatus(gomock.Any(), gomock.Any(), id, booking.ActionStart).
			Return(nil, commands.ErrNotPermitted).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/"+id.String()+"/start", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "forbidden")
	})

	s.Run("error: 404 for unknown booking", func() {
		s.mockCommands.EXPECT().TransitionBookingStatus(gomock.Any(), gomock.Any(), id, booking.ActionReject).
			Return(nil, commands.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/"+id.String()+"/reject", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "not_found")
	})

	s.Run("error: 400 for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/not-a-uuid/accept", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

// ================================================================================
// TestComplete / TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestComplete() {
	b, err := s.bookings.BuildDomain()
	s.Require().NoError(err)
	url := "/api/bookings/" + b.ID().String() + "/complete"

	s.Run("success", func() {
		s.mockCommands.EXPECT().CompleteBooking(gomock.Any(), s.actor, b.ID()).Return(b, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 on duplicate settlement", func() {
		s.mockCommands.EXPECT().CompleteBooking(gomock.Any(), gomock.Any(), b.ID()).
			Return(nil, commands.ErrDuplicateSettlement).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "duplicate_settlement")
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	b, err := s.bookings.BuildDomain()
	s.Require().NoError(err)
	url := "/api/bookings/" + b.ID().String() + "/cancel"

	s.Run("success: with reason", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), s.actor, b.ID(), "plans changed").Return(b, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "plans changed"}, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: without body", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), s.actor, b.ID(), "").Return(b, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 when reason exceeds 500 chars", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": strings.Repeat("a", 501)}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestGet / TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	view := s.bookings.BuildView()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actor, view.ID).Return(view, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/"+view.ID.String(), nil, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(*resdto.FromBookingView(view), body)
	})

	s.Run("error: 403 for non-participants", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).Return(nil, queries.ErrAccessDenied).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/"+view.ID.String(), nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "forbidden")
	})
}

func (s *BookingHandlerTestSuite) TestList() {
	view := s.bookings.BuildView()
	next := &queries.Cursor{After: "next-page"}

	s.Run("success: renter listing is the default", func() {
		s.mockQueries.EXPECT().
			ListByRenter(gomock.Any(), s.actor, s.actor.UserID, queries.BookingFilter{Limit: queries.DefaultListLimit}).
			Return([]*queries.BookingView{view}, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings", nil, "bearer-token")
		var body struct {
			Bookings   []resdto.BookingResponse `json:"bookings"`
			NextCursor string                   `json:"next_cursor"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Bookings, 1)
		s.Equal("next-page", body.NextCursor)
	})

	s.Run("success: owner listing forwards filter and cursor", func() {
		s.mockQueries.EXPECT().
			ListByOwner(gomock.Any(), s.actor, s.actor.UserID, queries.BookingFilter{
				Status: "accepted",
				Cursor: &queries.Cursor{After: "abc"},
				Limit:  5,
			}).
			Return([]*queries.BookingView{}, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?as=owner&status=accepted&limit=5&after=abc", nil, "bearer-token")
		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.NotContains(body, "next_cursor")
	})

	s.Run("error: 400 for unknown as", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?as=driver", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 for malformed user_id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?user_id=nope", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 for invalid cursor", func() {
		s.mockQueries.EXPECT().ListByRenter(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?after=garbage", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "validation_failed")
	})
}
