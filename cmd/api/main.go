package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/detailerhq/booking-api/internal/config"
	accountHandler "github.com/detailerhq/booking-api/internal/handler/account"
	authHandler "github.com/detailerhq/booking-api/internal/handler/auth"
	bookingHandler "github.com/detailerhq/booking-api/internal/handler/booking"
	catalogHandler "github.com/detailerhq/booking-api/internal/handler/catalog"
	detailerHandler "github.com/detailerhq/booking-api/internal/handler/detailer"
	garageHandler "github.com/detailerhq/booking-api/internal/handler/garage"
	healthHandler "github.com/detailerhq/booking-api/internal/handler/health"
	"github.com/detailerhq/booking-api/internal/middleware"
	"github.com/detailerhq/booking-api/internal/repository/postgres"
	"github.com/detailerhq/booking-api/internal/router"
	accountService "github.com/detailerhq/booking-api/internal/service/account"
	authService "github.com/detailerhq/booking-api/internal/service/auth"
	availabilityService "github.com/detailerhq/booking-api/internal/service/availability"
	bookingService "github.com/detailerhq/booking-api/internal/service/booking"
	catalogService "github.com/detailerhq/booking-api/internal/service/catalog"
	garageService "github.com/detailerhq/booking-api/internal/service/garage"
	invoiceService "github.com/detailerhq/booking-api/internal/service/invoice"
	orderService "github.com/detailerhq/booking-api/internal/service/order"
	refdataService "github.com/detailerhq/booking-api/internal/service/refdata"
	staffService "github.com/detailerhq/booking-api/internal/service/staff"
	"github.com/detailerhq/booking-api/pkg/auth"
	"github.com/detailerhq/booking-api/pkg/logger"
	redisBroker "github.com/detailerhq/booking-api/pkg/messaging/redis"
	"github.com/detailerhq/booking-api/pkg/metrics"
	"github.com/detailerhq/booking-api/pkg/security"
	"github.com/detailerhq/booking-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Pretty:     cfg.Log.Pretty,
		Output:     os.Stdout,
	})

	if err := validator.RegisterBindingValidators(); err != nil {
		log.Fatal(err, "failed to register binding validators")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	submissionRepo := postgres.NewSubmissionRepository(db)
	carRepo := postgres.NewCarRepository(db)
	employeeRepo := postgres.NewEmployeeRepository(db)
	statusRepo := postgres.NewStatusRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)

	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     10,
		MinIdleConns: 2,
	}, log.Zerolog())
	if err != nil {
		log.Fatal(err, "failed to connect to Redis")
	}
	defer broker.Close()

	m := metrics.NewMetrics("booking")
	hasher := security.NewBcryptHasher(0)
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        cfg.JWT.Expiry(),
		RefreshExpiry: cfg.JWT.RefreshExpiry(),
	})

	refdataSvc := refdataService.NewService(roleRepo, statusRepo)
	accountSvc := accountService.NewService(userRepo, refdataSvc, hasher)
	authSvc := authService.NewService(userRepo, refdataSvc, hasher, jwtSvc)
	availabilitySvc := availabilityService.NewService(serviceRepo, scheduleRepo, submissionRepo, m)
	bookingSvc := bookingService.NewService(
		submissionRepo, scheduleRepo, serviceRepo, carRepo, employeeRepo,
		statusRepo, userRepo, refdataSvc, broker, m, log,
	)
	orderSvc := orderService.NewService(
		submissionRepo, serviceRepo, userRepo, carRepo, employeeRepo,
		statusRepo, refdataSvc, m, log,
	)
	catalogSvc := catalogService.NewService(serviceRepo, scheduleRepo, log)
	garageSvc := garageService.NewService(carRepo, submissionRepo)
	staffSvc := staffService.NewService(employeeRepo)
	invoiceSvc := invoiceService.NewService(invoiceRepo)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	r := router.NewRouter(
		authMw,
		authHandler.NewHandler(authSvc, accountSvc),
		accountHandler.NewHandler(accountSvc),
		catalogHandler.NewHandler(catalogSvc, availabilitySvc),
		bookingHandler.NewHandler(bookingSvc),
		garageHandler.NewHandler(garageSvc),
		detailerHandler.NewHandler(orderSvc, staffSvc, invoiceSvc, statusRepo),
		healthHandler.NewHandler(db),
		log,
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			MetricsPrefix:  "booking_http",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited")
}
