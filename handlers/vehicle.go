package handlers

import (
	"net/http"
	"time"

	"rentify/services/booking"
	"rentify/utils"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	BookingSvc booking.BookingService
}

func NewVehicleHandler(bookingSvc booking.BookingService) *VehicleHandler {
	return &VehicleHandler{BookingSvc: bookingSvc}
}

// BusyVehiclesHandler lists vehicles reserved during ?start=&end= (RFC 3339).
func (h *VehicleHandler) BusyVehiclesHandler(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query", "start must be an RFC 3339 timestamp")
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query", "end must be an RFC 3339 timestamp")
		return
	}

	ids, err := h.BookingSvc.ListBusyVehicleIDs(c.Request.Context(), start, end)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"vehicleIds": ids})
}

// VehicleSlotsHandler lists a vehicle's reservations that have not ended.
func (h *VehicleHandler) VehicleSlotsHandler(c *gin.Context) {
	slots, err := h.BookingSvc.ListVehicleSlots(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicleId": c.Param("id"), "slots": slots})
}
