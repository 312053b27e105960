package api

import (
	"net/http"

	reqdto "vehicle-rental/internal/handler/dto/request"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/handler/httperr"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	cmds commands.AvailabilityCommands
	q    queries.AvailabilityQueries
}

func NewAvailabilityHandler(cmds commands.AvailabilityCommands, q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{cmds: cmds, q: q}
}

// @Summary Vehicle calendar
// @Description Explicit day overrides and active bookings for a vehicle between from and to (inclusive, max 366 days). Days not listed are available.
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string true "Last date (YYYY-MM-DD)"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/vehicles/{id}/availability [get]
func (h *AvailabilityHandler) Calendar(c *gin.Context) {
	vehicleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "from and to are required", nil)
		return
	}
	r, err := q.ToRange()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}
	view, err := h.q.Calendar(c.Request.Context(), vehicleID, r)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCalendarView(view))
}

// @Summary Check a date range
// @Description Reports whether every date in the range can be booked, and what blocks it otherwise.
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string true "Last date (YYYY-MM-DD)"
// @Success 200 {object} resdto.RangeCheckResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/vehicles/{id}/availability/check [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	vehicleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "from and to are required", nil)
		return
	}
	r, err := q.ToRange()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}
	view, err := h.q.IsRangeFree(c.Request.Context(), vehicleID, r)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRangeAvailability(view))
}

// @Summary Set availability
// @Description Owner blocks or reopens a date range. Booked days cannot be written here.
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Param request body reqdto.SetAvailabilityRequest true "Availability mark"
// @Success 200 {object} map[string][]resdto.DayResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/vehicles/{id}/availability [put]
func (h *AvailabilityHandler) Set(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	vehicleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput(vehicleID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}
	days, err := h.cmds.SetAvailability(c.Request.Context(), actor, in)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": resdto.FromDays(days)})
}

// @Summary Release booking days
// @Description Admin repair: reopens the ledger days still held by a cancelled or rejected booking. Idempotent.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.ReleaseResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/bookings/{id}/release [post]
func (h *AvailabilityHandler) Release(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	n, err := h.cmds.Release(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ReleaseResponse{BookingID: id.String(), ReleasedDays: n})
}
