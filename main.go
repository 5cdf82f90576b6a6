package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentify/config"
	"rentify/cron"
	"rentify/database"
	bookingRepo "rentify/database/repository/booking"
	contractRepo "rentify/database/repository/contract"
	couponRepo "rentify/database/repository/coupon"
	"rentify/database/repository/memory"
	timeslotRepo "rentify/database/repository/timeslot"
	vehicleRepo "rentify/database/repository/vehicle"
	walletRepo "rentify/database/repository/wallet"
	"rentify/handlers"
	"rentify/middleware"
	"rentify/routes"
	"rentify/services/booking"
	"rentify/services/contract"
	"rentify/services/notification"
	"rentify/services/tasks"
	"rentify/services/wallet"
	"rentify/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	bookingService := &booking.DefaultBookingService{
		Location:       config.BusinessLocation(),
		CleanupDelay:   config.AppConfig.BookingCleanupDelay,
		DeliveryWindow: config.AppConfig.DeliveryWindow,
	}
	var (
		walletService *wallet.DefaultWalletService
		worker        *cron.Worker
		queueClient   *asynq.Client
	)

	if config.UseMemoryStorage() {
		logger.Warn("main: using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		if path := config.AppConfig.SeedFile; path != "" {
			if err := loadSeed(store, path); err != nil {
				logger.Fatal("main: failed to load seed", zap.String("path", path), zap.Error(err))
			}
		}

		walletService = &wallet.DefaultWalletService{Repo: store.Wallets(), Tx: store}
		bookingService.Tx = store
		bookingService.Bookings = store.Bookings()
		bookingService.TimeSlots = store.TimeSlots()
		bookingService.Contracts = store.Contracts()
		bookingService.Directory = store.Directory()
		bookingService.Coupons = store.Coupons()
		bookingService.Notifier = notification.LogSink{}
		bookingService.Cleanup = &tasks.TimerScheduler{Run: bookingService.CleanupAbandoned}

		utils.StartHealthMonitor(nil, nil, 30*time.Second)
	} else {
		database.InitDB()
		cacheClient := utils.GetCacheClient()
		queueClient = asynq.NewClient(utils.QueueRedisOpt())

		if err := utils.FirebaseInit(context.Background()); err != nil {
			logger.Error("main: firebase disabled", zap.Error(err))
		}

		tx := database.NewMongoTransactor(database.MongoClient)
		walletService = &wallet.DefaultWalletService{Repo: walletRepo.NewMongoWalletRepo(), Tx: tx}
		bookingService.Tx = tx
		bookingService.Bookings = bookingRepo.NewMongoBookingRepo()
		bookingService.TimeSlots = timeslotRepo.NewMongoTimeSlotRepo()
		bookingService.Contracts = contractRepo.NewMongoContractRepo()
		bookingService.Directory = vehicleRepo.NewCachedDirectory(
			vehicleRepo.NewMongoVehicleDirectory(), cacheClient, config.AppConfig.VehicleCacheTTL)
		bookingService.Coupons = couponRepo.NewMongoCouponRepo()
		bookingService.Notifier = notification.NewQueueSink(queueClient)
		bookingService.Cleanup = tasks.NewCleanupScheduler(queueClient)

		worker = cron.InitBookingWorker(bookingService, notification.NewPusher(utils.FCMClient))
		utils.StartHealthMonitor([]*redis.Client{cacheClient, utils.GetQueueClient()}, database.MongoClient, 30*time.Second)
	}
	bookingService.Wallet = walletService
	bookingService.ContractSvc = &contract.DefaultContractService{Repo: bookingService.Contracts}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	bookingHandler := handlers.NewBookingHandler(bookingService)
	vehicleHandler := handlers.NewVehicleHandler(bookingService)
	walletHandler := handlers.NewWalletHandler(walletService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Booking endpoints.
		CreateBookingHandler: bookingHandler.CreateBookingHandler,
		ListBookingsHandler:  bookingHandler.ListBookingsHandler,
		GetBookingHandler:    bookingHandler.GetBookingHandler,
		PayHandler:           bookingHandler.PayHandler,
		ExternalPayHandler:   bookingHandler.ExternalPayHandler,
		ConfirmHandler:       bookingHandler.ConfirmHandler,
		DeliverHandler:       bookingHandler.DeliverHandler,
		ReceiveHandler:       bookingHandler.ReceiveHandler,
		ReturnHandler:        bookingHandler.ReturnHandler,
		CompleteHandler:      bookingHandler.CompleteHandler,
		CancelHandler:        bookingHandler.CancelHandler,
		NoShowHandler:        bookingHandler.NoShowHandler,

		// Vehicle endpoints.
		BusyVehiclesHandler: vehicleHandler.BusyVehiclesHandler,
		VehicleSlotsHandler: vehicleHandler.VehicleSlotsHandler,

		// Wallet endpoints.
		GetBalanceHandler: walletHandler.GetBalanceHandler,
		GetHistoryHandler: walletHandler.GetHistoryHandler,

		// Ops endpoints.
		HealthHandler:  handlers.HealthHandler,
		MetricsHandler: utils.MetricsHandler(),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			logger.Sugar().Warnf("main: closing queue client: %v", err)
		}
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Sugar().Warnf("main: closing database: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

func loadSeed(store *memory.Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return store.LoadSeed(f)
}
