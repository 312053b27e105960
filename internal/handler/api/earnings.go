package api

import (
	"net/http"

	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type EarningsHandler struct {
	q queries.EarningsQueries
}

func NewEarningsHandler(q queries.EarningsQueries) *EarningsHandler {
	return &EarningsHandler{q: q}
}

// @Summary List owner earnings
// @Description Settlements recorded for an owner's completed bookings, newest first.
// @Tags earnings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Owner ID"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {array} resdto.EarningsResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/owners/{id}/earnings [get]
func (h *EarningsHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	ownerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	cursor, limit := parsePage(c)
	items, next, err := h.q.ListByOwner(c.Request.Context(), actor, ownerID, cursor, limit)
	if err != nil {
		handleError(c, err)
		return
	}
	resp := gin.H{"earnings": resdto.FromEarningsList(items)}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Owner earnings summary
// @Tags earnings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Owner ID"
// @Success 200 {object} resdto.EarningsSummaryResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/owners/{id}/earnings/summary [get]
func (h *EarningsHandler) Summary(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	ownerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sum, err := h.q.Summary(c.Request.Context(), actor, ownerID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromEarningsSummary(sum))
}
