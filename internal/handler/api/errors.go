package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/handler/httperr"
	"vehicle-rental/internal/handler/middleware"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type conflictDetail struct {
	BlockedDates        []string    `json:"blocked_dates"`
	ConflictingBookings []uuid.UUID `json:"conflicting_bookings"`
}

type transitionDetail struct {
	CurrentStatus   string `json:"current_status"`
	AttemptedAction string `json:"attempted_action"`
}

// handleError renders a use case error. Conflicts and rejected transitions
// carry enough detail for clients to react without a second request.
func handleError(c *gin.Context, err error) {
	var detail any

	var conflict *commands.ConflictError
	var transition *booking.TransitionError
	switch {
	case errs.As(err, &conflict):
		d := conflictDetail{
			BlockedDates:        make([]string, len(conflict.BlockedDates)),
			ConflictingBookings: conflict.ConflictingBookings,
		}
		for i, day := range conflict.BlockedDates {
			d.BlockedDates[i] = day.Format(time.DateOnly)
		}
		detail = d
	case errs.As(err, &transition):
		detail = transitionDetail{
			CurrentStatus:   transition.From.String(),
			AttemptedAction: string(transition.Action),
		}
	}

	if status, _ := httperr.Classify(err); status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"request_id", middleware.GetRequestID(c),
			"path", c.FullPath(),
			"error", err,
			"stack", errs.ExtractStackLines(err, 5),
		)
	}
	httperr.AbortWithCategory(c, err, detail)
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

func parsePage(c *gin.Context) (*queries.Cursor, int) {
	limit := queries.DefaultListLimit
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = queries.ValidateLimit(iv)
		}
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}
	return cursor, limit
}

func actorFrom(c *gin.Context) (shared.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, middleware.ErrMissingActor, "Unauthorized", nil)
	}
	return actor, ok
}
