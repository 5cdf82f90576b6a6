package routes

import (
	"time"

	"rentify/handlers"
	"rentify/middleware"
	"rentify/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware())
		bookingGroup.POST("", hb.CreateBookingHandler)
		bookingGroup.GET("", hb.ListBookingsHandler)
		bookingGroup.GET("/:id", hb.GetBookingHandler)

		// Renter actions
		bookingGroup.POST("/:id/pay", hb.PayHandler)
		bookingGroup.POST("/:id/external-pay", hb.ExternalPayHandler)
		bookingGroup.POST("/:id/receive", hb.ReceiveHandler)
		bookingGroup.POST("/:id/return", hb.ReturnHandler)

		// Provider actions
		bookingGroup.POST("/:id/confirm", hb.ConfirmHandler)
		bookingGroup.POST("/:id/deliver", hb.DeliverHandler)
		bookingGroup.POST("/:id/no-show", hb.NoShowHandler)

		// Either party
		bookingGroup.POST("/:id/complete", hb.CompleteHandler)
		bookingGroup.POST("/:id/cancel", hb.CancelHandler)
	}
}

// RegisterVehicleRoutes exposes reservation ledger reads.
func RegisterVehicleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	vehicleGroup := r.Group("/api/vehicles")
	{
		vehicleGroup.Use(middleware.JWTAuthMiddleware())
		vehicleGroup.GET("/busy", hb.BusyVehiclesHandler)
		vehicleGroup.GET("/:id/slots", hb.VehicleSlotsHandler)
	}
}

// RegisterWalletRoutes exposes the caller's wallet.
func RegisterWalletRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	walletGroup := r.Group("/api/wallet")
	{
		walletGroup.Use(middleware.JWTAuthMiddleware())
		walletGroup.GET("", hb.GetBalanceHandler)
		walletGroup.GET("/transactions", hb.GetHistoryHandler)
	}
}

// RegisterOpsRoutes registers health and metrics. Metrics are admin-only.
func RegisterOpsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	r.GET("/metrics", middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleAdmin), hb.MetricsHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterBookingRoutes(r, hb)
	RegisterVehicleRoutes(r, hb)
	RegisterWalletRoutes(r, hb)
	RegisterOpsRoutes(r, hb)
}
