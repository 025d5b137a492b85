// File: soulspace/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"soulspace/config"
	"soulspace/cron"
	"soulspace/database"
	appointmentRepoPkg "soulspace/database/repository/appointment"
	paymentRepoPkg "soulspace/database/repository/payment"
	providerRepoPkg "soulspace/database/repository/provider"
	slotRepoPkg "soulspace/database/repository/slot"
	userRepoPkg "soulspace/database/repository/user"
	walletRepoPkg "soulspace/database/repository/wallet"
	"soulspace/handlers"
	"soulspace/routes"
	"soulspace/services/appointment"
	"soulspace/services/notification"
	"soulspace/services/payment"
	"soulspace/services/slot"
	"soulspace/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	payRepo := paymentRepoPkg.NewMongoPaymentRepo()
	walletRepo := walletRepoPkg.NewMongoWalletRepo()
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	for _, ensure := range []func() error{
		slotRepo.EnsureIndexes,
		apptRepo.EnsureIndexes,
		payRepo.EnsureIndexes,
		walletRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// services.
	notifier := &notification.DefaultNotificationService{
		Users:     userRepo,
		Providers: provRepo,
	}

	slotService := &slot.DefaultSlotService{
		Repo:   slotRepo,
		Cache:  utils.GetCacheClient(),
		Logger: logger,
	}

	paymentService := &payment.DefaultPaymentService{
		Payments:     payRepo,
		Appointments: apptRepo,
		Gateway:      &payment.StripeGateway{Logger: logger},
		Notifier:     notifier,
		Logger:       logger,
	}

	appointmentService := &appointment.DefaultAppointmentService{
		Appointments: apptRepo,
		Slots:        slotRepo,
		Payments:     payRepo,
		Wallets:      walletRepo,
		Providers:    provRepo,
		Users:        userRepo,
		Tx:           database.NewMongoTxRunner(database.MongoClient),
		PaymentSvc:   paymentService,
		Notifier:     notifier,
		Logger:       logger,
	}

	handlers.SlotService = slotService
	handlers.AppointmentService = appointmentService
	handlers.PaymentService = paymentService
	handlers.WalletRepo = walletRepo

	// background status sweep.
	sweeper := cron.NewSweeper(appointmentService, logger)
	if err := sweeper.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start status sweeper: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router)

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

	sweeper.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
