package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/venuebook/internal/api"
	cancelBookingHandler "github.com/m04kA/venuebook/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/venuebook/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/venuebook/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/venuebook/internal/api/handlers/get_booking"
	getCourtReservationsHandler "github.com/m04kA/venuebook/internal/api/handlers/get_court_reservations"
	getUserBookingsHandler "github.com/m04kA/venuebook/internal/api/handlers/get_user_bookings"
	getVenueRulesHandler "github.com/m04kA/venuebook/internal/api/handlers/get_venue_rules"
	quoteBookingHandler "github.com/m04kA/venuebook/internal/api/handlers/quote_booking"
	updateVenueRulesHandler "github.com/m04kA/venuebook/internal/api/handlers/update_venue_rules"
	"github.com/m04kA/venuebook/internal/config"
	"github.com/m04kA/venuebook/internal/infra/storage/database"
	reservationRepo "github.com/m04kA/venuebook/internal/infra/storage/reservation"
	rulesRepo "github.com/m04kA/venuebook/internal/infra/storage/rules"
	catalogClient "github.com/m04kA/venuebook/internal/integrations/catalog"
	"github.com/m04kA/venuebook/internal/integrations/notification"
	"github.com/m04kA/venuebook/internal/integrations/payment"
	ledgerService "github.com/m04kA/venuebook/internal/service/ledger"
	rulesService "github.com/m04kA/venuebook/internal/service/rules"
	bookUC "github.com/m04kA/venuebook/internal/usecase/book"
	getAvailabilityUC "github.com/m04kA/venuebook/internal/usecase/get_availability"
	"github.com/m04kA/venuebook/pkg/auth"
	"github.com/m04kA/venuebook/pkg/dbmetrics"
	"github.com/m04kA/venuebook/pkg/logger"
	"github.com/m04kA/venuebook/pkg/metrics"
	"github.com/m04kA/venuebook/pkg/mq"
	"github.com/m04kA/venuebook/pkg/obs"
	"github.com/m04kA/venuebook/pkg/txmanager"
)

func newServeCmd(load configLoader) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if migrateUp {
				cfg.Database.AutoMigrate = true
			}

			log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply database migrations before start")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	log.Info("Starting venuebook %s...", Version)

	// Трейсинг (если включен)
	if cfg.Tracing.Enabled {
		shutdownTracer, err := obs.InitTracer(ctx, cfg.Metrics.ServiceName, Version, cfg.Tracing.Environment, cfg.Tracing.Endpoint)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(shutdownCtx); err != nil {
				log.Error("Tracer shutdown: %v", err)
			}
		}()
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.Endpoint)
	}

	// Метрики (если включены); nil - все вызовы метрик no-op
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// База данных
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Connected to %s database", cfg.Database.Driver)

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, cfg.Database.Driver); err != nil {
			return err
		}
		log.Info("Database migrations applied")
	}

	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txManager := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	reservations, err := reservationRepo.NewRepository(wrappedDB, cfg.Database.Driver, cfg.Booking.BucketMinutes)
	if err != nil {
		return err
	}
	rulesRepository, err := rulesRepo.NewRepository(wrappedDB, cfg.Database.Driver)
	if err != nil {
		return err
	}

	// Интеграции
	catalog := catalogClient.NewClient(cfg.Catalog.URL, time.Duration(cfg.Catalog.Timeout)*time.Second, log)
	log.Info("Catalog client initialized (url=%s timeout=%ds)", cfg.Catalog.URL, cfg.Catalog.Timeout)

	payments, err := newPaymentAuthorizer(cfg.Payment, log)
	if err != nil {
		return err
	}

	sender, closeSender, err := newNotificationSender(cfg.Notification, log)
	if err != nil {
		return err
	}
	defer closeSender()
	dispatcher := notification.NewDispatcher(sender, time.Duration(cfg.Booking.NotifyTimeout)*time.Second, log)

	// Сервисы
	rulesSvc := rulesService.NewService(rulesRepository, catalog, rulesService.Defaults{
		SlotMinutes:         cfg.Booking.SlotMinutes,
		MaxAdvanceDays:      cfg.Booking.MaxAdvanceDays,
		MinNoticeMinutes:    cfg.Booking.MinNoticeMinutes,
		CancelCutoffMinutes: int(cfg.Booking.CancelCutoff() / time.Minute),
		BucketMinutes:       cfg.Booking.BucketMinutes,
	}, log)
	ledgerSvc := ledgerService.NewService(reservations, rulesSvc, catalog, dispatcher, txManager, log)

	// Use cases
	availabilityUseCase := getAvailabilityUC.NewUseCase(catalog, ledgerSvc, rulesSvc, log)
	bookUseCase := bookUC.NewUseCase(availabilityUseCase, ledgerSvc, payments, dispatcher, metricsCollector, log)

	tokens, err := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
		return err
	}

	routerCfg := api.RouterConfig{
		BasePath: cfg.Server.BasePath,
		Tokens:   tokens,
		Logger:   log,
	}
	if cfg.Metrics.Enabled {
		routerCfg.Metrics = metricsCollector
		routerCfg.MetricsPath = cfg.Metrics.Path
	}

	router := api.NewRouter(routerCfg, api.Handlers{
		GetAvailability:      getAvailabilityHandler.NewHandler(availabilityUseCase, log),
		CreateBooking:        createBookingHandler.NewHandler(bookUseCase, log),
		QuoteBooking:         quoteBookingHandler.NewHandler(bookUseCase, log),
		CancelBooking:        cancelBookingHandler.NewHandler(ledgerSvc, log),
		GetBooking:           getBookingHandler.NewHandler(ledgerSvc, log),
		GetUserBookings:      getUserBookingsHandler.NewHandler(ledgerSvc, log),
		GetCourtReservations: getCourtReservationsHandler.NewHandler(ledgerSvc, log),
		GetVenueRules:        getVenueRulesHandler.NewHandler(rulesSvc, log),
		UpdateVenueRules:     updateVenueRulesHandler.NewHandler(rulesSvc, log),
	})

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s%s", addr, cfg.Server.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Уведомления, запущенные последними запросами, должны уйти до закрытия канала брокера
	dispatcher.Wait()

	log.Info("Server stopped gracefully")
	return nil
}

func newPaymentAuthorizer(cfg config.PaymentConfig, log *logger.Logger) (bookUC.PaymentAuthorizer, error) {
	switch cfg.Provider {
	case config.PaymentOmise:
		authorizer, err := payment.NewOmiseFromKeys(cfg.OmisePublicKey, cfg.OmiseSecretKey, log)
		if err != nil {
			return nil, fmt.Errorf("init omise client: %w", err)
		}
		log.Info("Payment provider: omise")
		return authorizer, nil
	default:
		log.Warn("Payment provider: offline, payments are recorded as pending")
		return payment.NewOffline(log), nil
	}
}

func newNotificationSender(cfg config.NotificationConfig, log *logger.Logger) (notification.Sender, func(), error) {
	switch cfg.Driver {
	case config.NotificationAMQP:
		publisher, err := mq.NewPublisher(cfg.AMQPURL, cfg.Exchange)
		if err != nil {
			return nil, nil, fmt.Errorf("init amqp publisher: %w", err)
		}
		log.Info("Notifications published to exchange %s", cfg.Exchange)
		return notification.NewAMQPSender(publisher), func() {
			if err := publisher.Close(); err != nil {
				log.Error("Close amqp publisher: %v", err)
			}
		}, nil
	default:
		log.Info("Notifications are written to the log only")
		return notification.NewLogSender(log), func() {}, nil
	}
}
