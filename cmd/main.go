package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelSessionHandler "github.com/avdeevlv/TSP-WizardService/internal/api/handlers/cancel_session"
	createSessionHandler "github.com/avdeevlv/TSP-WizardService/internal/api/handlers/create_session"
	getDayDetailsHandler "github.com/avdeevlv/TSP-WizardService/internal/api/handlers/get_day_details"
	getSessionHandler "github.com/avdeevlv/TSP-WizardService/internal/api/handlers/get_session"
	getSlotsHandler "github.com/avdeevlv/TSP-WizardService/internal/api/handlers/get_slots"
	navigateWizardHandler "github.com/avdeevlv/TSP-WizardService/internal/api/handlers/navigate_wizard"
	resetWizardHandler "github.com/avdeevlv/TSP-WizardService/internal/api/handlers/reset_wizard"
	resolveDialogHandler "github.com/avdeevlv/TSP-WizardService/internal/api/handlers/resolve_dialog"
	submitWizardHandler "github.com/avdeevlv/TSP-WizardService/internal/api/handlers/submit_wizard"
	updateFormHandler "github.com/avdeevlv/TSP-WizardService/internal/api/handlers/update_form"
	"github.com/avdeevlv/TSP-WizardService/internal/api/middleware"
	"github.com/avdeevlv/TSP-WizardService/internal/config"
	sessionStore "github.com/avdeevlv/TSP-WizardService/internal/infra/storage/sessions"
	authServiceClient "github.com/avdeevlv/TSP-WizardService/internal/integrations/authservice"
	bookingServiceClient "github.com/avdeevlv/TSP-WizardService/internal/integrations/bookingservice"
	clientServiceClient "github.com/avdeevlv/TSP-WizardService/internal/integrations/clientservice"
	"github.com/avdeevlv/TSP-WizardService/internal/service/wizard"
	getSlotsUC "github.com/avdeevlv/TSP-WizardService/internal/usecase/get_slots"
	reconcileAccountUC "github.com/avdeevlv/TSP-WizardService/internal/usecase/reconcile_account"
	submitBookingUC "github.com/avdeevlv/TSP-WizardService/internal/usecase/submit_booking"
	"github.com/avdeevlv/TSP-WizardService/pkg/logger"
	"github.com/avdeevlv/TSP-WizardService/pkg/metrics"
)

const sessionSweepInterval = 5 * time.Minute

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting TSP-WizardService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Выбираем хранилище сессий
	var store wizard.SessionStore
	switch cfg.Sessions.Store {
	case "postgres":
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Session store: postgres (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		store = sessionStore.NewRepository(db)

	default:
		log.Info("Session store: in-memory")
		store = sessionStore.NewMemoryStore()
	}

	// Инициализируем интеграционных клиентов
	bookingClient := bookingServiceClient.NewClient(
		cfg.Availability.URL,
		time.Duration(cfg.Availability.Timeout)*time.Second,
		log,
	)
	authClient := authServiceClient.NewClient(
		cfg.AuthService.URL,
		time.Duration(cfg.AuthService.Timeout)*time.Second,
		log,
	)
	clientClient := clientServiceClient.NewClient(
		cfg.ClientService.URL,
		time.Duration(cfg.ClientService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (BookingService=%s, AuthService=%s, ClientService=%s)",
		cfg.Availability.URL, cfg.AuthService.URL, cfg.ClientService.URL)

	// Инициализируем use cases
	slotsUseCase := getSlotsUC.NewUseCase(bookingClient, log)
	submitUseCase := submitBookingUC.NewUseCase(bookingClient, clientClient, log)
	reconcileUseCase := reconcileAccountUC.NewUseCase(authClient, clientClient, submitUseCase, log)

	// Инициализируем контроллер мастера
	var wizardMetrics wizard.Metrics
	if metricsCollector != nil {
		wizardMetrics = metricsCollector
	}
	wizardService := wizard.NewService(
		store,
		slotsUseCase,
		submitUseCase,
		reconcileUseCase,
		bookingClient,
		log,
		wizardMetrics,
		wizard.Options{
			SessionTTL:        time.Duration(cfg.Sessions.TTLMinutes) * time.Minute,
			PhoneLookupDelay:  time.Duration(cfg.Wizard.PhoneLookupDebounceMs) * time.Millisecond,
			PhoneLookupDigits: cfg.Wizard.PhoneLookupMinDigits,
		},
	)

	// Фоновая очистка истекших сессий
	stopSweepCh := make(chan struct{})
	wizardService.StartExpirySweep(sessionSweepInterval, stopSweepCh)

	// Инициализируем handlers
	createSession := createSessionHandler.NewHandler(wizardService, log)
	getSession := getSessionHandler.NewHandler(wizardService, log)
	cancelSession := cancelSessionHandler.NewHandler(wizardService, log)
	updateForm := updateFormHandler.NewHandler(wizardService, log)
	navigateWizard := navigateWizardHandler.NewHandler(wizardService, log)
	getSlots := getSlotsHandler.NewHandler(wizardService, log)
	getDayDetails := getDayDetailsHandler.NewHandler(wizardService, log)
	submitWizard := submitWizardHandler.NewHandler(wizardService, log)
	resolveDialog := resolveDialogHandler.NewHandler(wizardService, log)
	resetWizard := resetWizardHandler.NewHandler(wizardService, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; аутентификация опциональна для всех маршрутов мастера
	api := r.PathPrefix("/api/v1/wizard").Subrouter()
	api.Use(middleware.Auth(cfg.Auth.JWTSecret, log))

	// Жизненный цикл сессии
	api.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}", cancelSession.Handle).Methods(http.MethodDelete)

	// Форма и навигация по шагам
	api.HandleFunc("/sessions/{sessionId}/form", updateForm.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/sessions/{sessionId}/navigate", navigateWizard.Handle).Methods(http.MethodPost)

	// Слоты и дневная сводка занятости
	api.HandleFunc("/sessions/{sessionId}/slots", getSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}/days/{date}", getDayDetails.Handle).Methods(http.MethodGet)

	// Отправка бронирования и диалоги
	api.HandleFunc("/sessions/{sessionId}/submit", submitWizard.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/dialog", resolveDialog.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/reset", resetWizard.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	close(stopSweepCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
