package api

import (
	"net/http"

	reqdto "vehicle-rental/internal/handler/dto/request"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/handler/httperr"
	"vehicle-rental/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	cmds commands.CatalogCommands
}

func NewCatalogHandler(cmds commands.CatalogCommands) *CatalogHandler {
	return &CatalogHandler{cmds: cmds}
}

// @Summary Sync vehicle
// @Description Upserts the booking-relevant part of a catalog listing.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Param request body reqdto.SyncVehicleRequest true "Vehicle spec"
// @Success 200 {object} resdto.VehicleResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/vehicles/{id} [put]
func (h *CatalogHandler) SyncVehicle(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	vehicleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.SyncVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	spec, err := h.cmds.SyncVehicle(c.Request.Context(), actor, req.ToInput(vehicleID))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVehicle(spec))
}
