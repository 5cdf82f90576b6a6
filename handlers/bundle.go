package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	// Booking endpoints
	CreateBookingHandler gin.HandlerFunc
	ListBookingsHandler  gin.HandlerFunc
	GetBookingHandler    gin.HandlerFunc
	PayHandler           gin.HandlerFunc
	ExternalPayHandler   gin.HandlerFunc
	ConfirmHandler       gin.HandlerFunc
	DeliverHandler       gin.HandlerFunc
	ReceiveHandler       gin.HandlerFunc
	ReturnHandler        gin.HandlerFunc
	CompleteHandler      gin.HandlerFunc
	CancelHandler        gin.HandlerFunc
	NoShowHandler        gin.HandlerFunc

	// Vehicle availability endpoints
	BusyVehiclesHandler gin.HandlerFunc
	VehicleSlotsHandler gin.HandlerFunc

	// Wallet endpoints
	GetBalanceHandler gin.HandlerFunc
	GetHistoryHandler gin.HandlerFunc

	// Ops endpoints
	HealthHandler  gin.HandlerFunc
	MetricsHandler gin.HandlerFunc
}
