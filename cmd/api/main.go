package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/mealbridge/mealbridge-api/internal/config"
	"github.com/mealbridge/mealbridge-api/internal/email"
	"github.com/mealbridge/mealbridge-api/internal/handler"
	analyticsHandler "github.com/mealbridge/mealbridge-api/internal/handler/analytics"
	authHandler "github.com/mealbridge/mealbridge-api/internal/handler/auth"
	donationHandler "github.com/mealbridge/mealbridge-api/internal/handler/donation"
	notificationHandler "github.com/mealbridge/mealbridge-api/internal/handler/notification"
	paymentHandler "github.com/mealbridge/mealbridge-api/internal/handler/payment"
	"github.com/mealbridge/mealbridge-api/internal/middleware"
	"github.com/mealbridge/mealbridge-api/internal/payment"
	"github.com/mealbridge/mealbridge-api/internal/repository/cache"
	"github.com/mealbridge/mealbridge-api/internal/repository/postgres"
	"github.com/mealbridge/mealbridge-api/internal/router"
	analyticsService "github.com/mealbridge/mealbridge-api/internal/service/analytics"
	authService "github.com/mealbridge/mealbridge-api/internal/service/auth"
	donationService "github.com/mealbridge/mealbridge-api/internal/service/donation"
	notificationService "github.com/mealbridge/mealbridge-api/internal/service/notification"
	paymentService "github.com/mealbridge/mealbridge-api/internal/service/payment"
	"github.com/mealbridge/mealbridge-api/internal/service/rbac"
	"github.com/mealbridge/mealbridge-api/pkg/auth"
	"github.com/mealbridge/mealbridge-api/pkg/logger"
	"github.com/mealbridge/mealbridge-api/pkg/messaging"
	redisBroker "github.com/mealbridge/mealbridge-api/pkg/messaging/redis"
	"github.com/mealbridge/mealbridge-api/pkg/metrics"
	"github.com/mealbridge/mealbridge-api/pkg/security"
	"golang.org/x/time/rate"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(postgres.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories. The donation repository carries a read-through cache
	// flushed on every write.
	accountRepo := postgres.NewAccountRepository(db)
	donationRepo := cache.NewDonationRepository(postgres.NewDonationRepository(db), cfg.Cache.TTL)
	notificationRepo := postgres.NewNotificationRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)

	codec, err := auth.NewCodec(cfg.Auth.Secret, cfg.Auth.TokenExpiry())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token codec")
	}

	var broker messaging.Broker = messaging.NoopBroker{}
	if cfg.Redis.URL != "" {
		broker, err = redisBroker.NewBroker(redisBroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, appLogger.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()
	}

	var emailSvc email.Service = email.NoopService{}
	smtp := email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}
	if smtp.Enabled() {
		emailSvc = email.NewSMTPService(smtp)
	}

	paymentCfg, err := payment.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load payment provider configuration")
	}

	m := metrics.NewMetrics("mealbridge")
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	// Services
	authSvc := authService.NewService(accountRepo, hasher, codec, appLogger)
	rbacSvc := rbac.NewService()
	donationSvc := donationService.NewService(donationRepo, broker, m, appLogger)
	notificationSvc := notificationService.NewService(notificationRepo, donationRepo, accountRepo,
		emailSvc, broker, m, appLogger)
	analyticsSvc := analyticsService.NewService(donationRepo, accountRepo)
	paymentSvc := paymentService.NewService(paymentRepo, payment.NewProvider(paymentCfg), m, appLogger)

	// HTTP layer
	authMiddleware := middleware.NewAuthMiddleware(codec, rbacSvc)
	r, err := router.NewRouter(
		router.Config{
			RateLimit: middleware.RateLimiterConfig{
				Rate:  rate.Limit(cfg.RateLimit.RequestsPerSecond),
				Burst: cfg.RateLimit.Burst,
			},
			CORS: middleware.DefaultCORSConfig(),
		},
		m,
		handler.NewHandler(),
		authHandler.NewHandler(authSvc, authMiddleware),
		donationHandler.NewHandler(donationSvc, notificationSvc, authMiddleware),
		notificationHandler.NewHandler(notificationSvc, authMiddleware),
		analyticsHandler.NewHandler(analyticsSvc, authMiddleware),
		paymentHandler.NewHandler(paymentSvc),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize router")
	}
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
