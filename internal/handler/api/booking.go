package api

import (
	"errors"
	"net/http"

	"vehicle-rental/internal/domain/booking"
	reqdto "vehicle-rental/internal/handler/dto/request"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/handler/httperr"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errInvalidListRole = errors.New("as must be renter or owner")

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Request a booking
// @Description Create a pending booking. The dates are held immediately; overlapping requests get 409 with the blocked dates.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}
	b, err := h.cmds.CreateBookingRequest(c.Request.Context(), actor, in)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Header("Location", "/api/bookings/"+b.ID().String())
	c.JSON(http.StatusCreated, resdto.FromBooking(b))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description List bookings where the caller is the renter (as=renter, default) or the vehicle owner (as=owner). Admins may pass user_id.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param as query string false "renter or owner"
// @Param user_id query string false "Party to list (admins only)"
// @Param status query string false "Status filter"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	partyID := actor.UserID
	if v := c.Query("user_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid user_id", nil)
			return
		}
		partyID = id
	}
	cursor, limit := parsePage(c)
	filter := queries.BookingFilter{Status: c.Query("status"), Cursor: cursor, Limit: limit}

	var (
		items []*queries.BookingView
		next  *queries.Cursor
		err   error
	)
	switch c.DefaultQuery("as", "renter") {
	case "renter":
		items, next, err = h.q.ListByRenter(c.Request.Context(), actor, partyID, filter)
	case "owner":
		items, next, err = h.q.ListByOwner(c.Request.Context(), actor, partyID, filter)
	default:
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidListRole, errInvalidListRole.Error(), nil)
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	resp := gin.H{"bookings": resdto.FromBookingList(items)}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Accept booking
// @Description Owner accepts a pending booking; its days become booked in the ledger.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/accept [post]
func (h *BookingHandler) Accept(c *gin.Context) {
	h.transition(c, booking.ActionAccept)
}

// @Summary Reject booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/reject [post]
func (h *BookingHandler) Reject(c *gin.Context) {
	h.transition(c, booking.ActionReject)
}

// @Summary Start rental
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/start [post]
func (h *BookingHandler) Start(c *gin.Context) {
	h.transition(c, booking.ActionStart)
}

func (h *BookingHandler) transition(c *gin.Context, action booking.Action) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	b, err := h.cmds.TransitionBookingStatus(c.Request.Context(), actor, id, action)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Complete booking
// @Description Owner completes the rental; owner earnings are recorded in the same step.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/complete [post]
func (h *BookingHandler) Complete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	b, err := h.cmds.CompleteBooking(c.Request.Context(), actor, id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Cancel booking
// @Description Renter or owner cancels; the held dates are released.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest false "Cancellation reason"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	b, err := h.cmds.CancelBooking(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}
