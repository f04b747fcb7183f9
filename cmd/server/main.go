package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"cricturf/config"
	_ "cricturf/docs"
	"cricturf/internal/adapters/auth"
	"cricturf/internal/adapters/email"
	"cricturf/internal/clock"
	delivery "cricturf/internal/delivery/http"
	"cricturf/internal/delivery/http/controllers"
	"cricturf/internal/delivery/http/middleware"
	"cricturf/internal/domain"
	"cricturf/internal/replica"
	"cricturf/internal/repository/postgres"
	"cricturf/internal/services"
	"cricturf/migrations"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title CricTurf Booking API
// @version 1.0
// @description Backend for the CricTurf ground booking app: venue and slot catalog, live availability, bookings with simulated payment, and an admin dashboard.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Admin session token from POST /admin/login, as "Bearer {token}".
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	if err := migrations.Up(ctx, db); err != nil {
		logger.Error("run migrations", "err", err)
		os.Exit(1)
	}

	repo := postgres.NewBookingRepository(db)

	// The replica cache is seeded from a bounded window of recent bookings,
	// then kept fresh by the live change feed.
	feed, err := postgres.NewFeed(cfg.DBUrl, logger)
	if err != nil {
		logger.Error("open booking feed", "err", err)
		os.Exit(1)
	}
	defer feed.Close()

	cache := replica.New(logger)
	go cache.Run(ctx, feed)

	seedFrom := time.Now().AddDate(0, 0, -cfg.CacheLookbackDays).Format(domain.DateLayout)
	seed, err := repo.ListFromDate(ctx, seedFrom)
	if err != nil {
		logger.Error("seed replica cache", "err", err)
		os.Exit(1)
	}
	cache.Seed(seed)
	logger.Info("replica cache seeded", "bookings", cache.Len(), "from", seedFrom)

	clk := clock.NewSystem()
	availability := services.NewAvailabilityService(cache, clk)

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	secretHash := cfg.AdminPasswordHash
	if secretHash == "" {
		secretHash, err = hasher.Hash(cfg.AdminPassword)
		if err != nil {
			logger.Error("hash admin password", "err", err)
			os.Exit(1)
		}
		logger.Warn("ADMIN_PASSWORD_HASH not set, using ADMIN_PASSWORD (development only)")
	}
	tokens := auth.NewJWT(cfg.JWTSecret)
	adminService := services.NewAdminService(secretHash, hasher, tokens)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("init mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	phases := services.ProcessingPhases{
		Connect:  time.Duration(cfg.PaymentConnectMs) * time.Millisecond,
		Verify:   time.Duration(cfg.PaymentVerifyMs) * time.Millisecond,
		Finalize: time.Duration(cfg.PaymentFinalizeMs) * time.Millisecond,
	}
	bookingService := services.NewBookingService(repo, availability, emailService,
		clk, clock.NewSystemSleeper(), phases, logger, serviceTimeout)

	bookingController := controllers.NewBookingController(logger, bookingService)
	catalogController := controllers.NewCatalogController(logger, availability)
	adminController := controllers.NewAdminController(logger, adminService, bookingService)

	mux := delivery.NewRouter(bookingController, catalogController, adminController, tokens)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.Logging(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
