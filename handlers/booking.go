package handlers

import (
	"context"
	"net/http"

	"rentify/models"
	"rentify/services/booking"
	"rentify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	BookingSvc booking.BookingService
}

func NewBookingHandler(bookingSvc booking.BookingService) *BookingHandler {
	return &BookingHandler{BookingSvc: bookingSvc}
}

// CreateBookingHandler reserves vehicles for the caller and returns the unpaid booking.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := getLogger(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug("Invalid booking request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	view, err := h.BookingSvc.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": view})
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	view, err := h.BookingSvc.GetBooking(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": view})
}

// ListBookingsHandler lists the caller's bookings, optionally filtered by ?status=.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	status := models.BookingStatus(c.Query("status"))
	bookings, err := h.BookingSvc.ListBookings(c.Request.Context(), actor, status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

type transitionFunc func(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)

// transition adapts a lifecycle call on /:id into a handler.
func (h *BookingHandler) transition(fn transitionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		b, err := fn(c.Request.Context(), actor, c.Param("id"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"booking": b})
	}
}

func (h *BookingHandler) PayHandler(c *gin.Context)      { h.transition(h.BookingSvc.Pay)(c) }
func (h *BookingHandler) ConfirmHandler(c *gin.Context)  { h.transition(h.BookingSvc.Confirm)(c) }
func (h *BookingHandler) DeliverHandler(c *gin.Context)  { h.transition(h.BookingSvc.Deliver)(c) }
func (h *BookingHandler) ReceiveHandler(c *gin.Context)  { h.transition(h.BookingSvc.Receive)(c) }
func (h *BookingHandler) ReturnHandler(c *gin.Context)   { h.transition(h.BookingSvc.Return)(c) }
func (h *BookingHandler) CompleteHandler(c *gin.Context) { h.transition(h.BookingSvc.Complete)(c) }
func (h *BookingHandler) CancelHandler(c *gin.Context)   { h.transition(h.BookingSvc.Cancel)(c) }
func (h *BookingHandler) NoShowHandler(c *gin.Context)   { h.transition(h.BookingSvc.ReportNoShow)(c) }

// ExternalPayHandler records a payment made outside the wallet. The body may
// carry the gateway reference.
func (h *BookingHandler) ExternalPayHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var body struct {
		Reference string `json:"reference"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
	}

	b, err := h.BookingSvc.RecordExternalPayment(c.Request.Context(), actor, c.Param("id"), body.Reference)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}
