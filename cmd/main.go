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

	bookAppointmentHandler "github.com/avdeenko/appointment-service/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/avdeenko/appointment-service/internal/api/handlers/cancel_appointment"
	createArrangementsHandler "github.com/avdeenko/appointment-service/internal/api/handlers/create_arrangements"
	createTemplateHandler "github.com/avdeenko/appointment-service/internal/api/handlers/create_template"
	generateSlotsHandler "github.com/avdeenko/appointment-service/internal/api/handlers/generate_slots"
	getAppointmentHandler "github.com/avdeenko/appointment-service/internal/api/handlers/get_appointment"
	getArrangementsHandler "github.com/avdeenko/appointment-service/internal/api/handlers/get_arrangements"
	getServiceHandler "github.com/avdeenko/appointment-service/internal/api/handlers/get_service"
	getTemplateHandler "github.com/avdeenko/appointment-service/internal/api/handlers/get_template"
	getUserAppointmentsHandler "github.com/avdeenko/appointment-service/internal/api/handlers/get_user_appointments"
	listSlotsHandler "github.com/avdeenko/appointment-service/internal/api/handlers/list_slots"
	listTemplatesHandler "github.com/avdeenko/appointment-service/internal/api/handlers/list_templates"
	updateAppointmentStatusHandler "github.com/avdeenko/appointment-service/internal/api/handlers/update_appointment_status"
	"github.com/avdeenko/appointment-service/internal/api/middleware"
	"github.com/avdeenko/appointment-service/internal/config"
	appointmentRepo "github.com/avdeenko/appointment-service/internal/infra/storage/appointment"
	arrangementRepo "github.com/avdeenko/appointment-service/internal/infra/storage/arrangement"
	billRepo "github.com/avdeenko/appointment-service/internal/infra/storage/bill"
	slotRepo "github.com/avdeenko/appointment-service/internal/infra/storage/slot"
	templateRepo "github.com/avdeenko/appointment-service/internal/infra/storage/template"
	catalogServiceClient "github.com/avdeenko/appointment-service/internal/integrations/catalogservice"
	appointmentsService "github.com/avdeenko/appointment-service/internal/service/appointments"
	scheduleService "github.com/avdeenko/appointment-service/internal/service/schedule"
	bookAppointmentUC "github.com/avdeenko/appointment-service/internal/usecase/book_appointment"
	cancelAppointmentUC "github.com/avdeenko/appointment-service/internal/usecase/cancel_appointment"
	generateSlotsUC "github.com/avdeenko/appointment-service/internal/usecase/generate_slots"
	"github.com/avdeenko/appointment-service/migrations"
	"github.com/avdeenko/appointment-service/pkg/dbmetrics"
	"github.com/avdeenko/appointment-service/pkg/logger"
	"github.com/avdeenko/appointment-service/pkg/metrics"
	"github.com/avdeenko/appointment-service/pkg/simpletxmanager"
	"github.com/avdeenko/appointment-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}
	cfg, err := config.Load(configPath)
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

	log.Info("Starting appointment-service...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции схемы
	if cfg.Migrations.RunOnStartup {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to run migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Инициализируем клиент каталога услуг
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		templateRepository    *templateRepo.Repository
		arrangementRepository *arrangementRepo.Repository
		slotRepository        *slotRepo.Repository
		appointmentRepository *appointmentRepo.Repository
		billRepository        *billRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		templateRepository = templateRepo.NewRepository(wrappedDB)
		arrangementRepository = arrangementRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		billRepository = billRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		templateRepository = templateRepo.NewRepository(db)
		arrangementRepository = arrangementRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		billRepository = billRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		slotRepository,
		billRepository,
		catalogClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		templateRepository,
		arrangementRepository,
		catalogClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		slotRepository,
		appointmentRepository,
		billRepository,
		catalogClient,
		txMgr,
		log,
	)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		billRepository,
		slotRepository,
		txMgr,
		log,
	)
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		arrangementRepository,
		templateRepository,
		slotRepository,
		catalogClient,
		log,
	)

	// Инициализируем handlers
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	listSlots := listSlotsHandler.NewHandler(appointmentsSvc, log)
	createTemplate := createTemplateHandler.NewHandler(scheduleSvc, log)
	getTemplate := getTemplateHandler.NewHandler(scheduleSvc, log)
	listTemplates := listTemplatesHandler.NewHandler(scheduleSvc, log)
	createArrangements := createArrangementsHandler.NewHandler(scheduleSvc, log)
	getArrangements := getArrangementsHandler.NewHandler(scheduleSvc, log)
	getService := getServiceHandler.NewHandler(catalogClient, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Идентификатор запроса на всех маршрутах
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Данные услуги из каталога
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)

	// Доступные слоты услуги
	api.HandleFunc("/services/{serviceId}/slots", listSlots.Handle).Methods(http.MethodGet)

	// Шаблон расписания
	api.HandleFunc("/templates/{templateId}", getTemplate.Handle).Methods(http.MethodGet)

	// Шаблоны поставщика услуг
	api.HandleFunc("/providers/{providerId}/templates", listTemplates.Handle).Methods(http.MethodGet)

	// Назначения услуги
	api.HandleFunc("/services/{serviceId}/arrangements", getArrangements.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на приём ---
	// Создание записи
	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Подтверждение и завершение приёма (для менеджеров)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История записей пользователя
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Управление расписанием (для менеджеров) ---
	// Создание шаблона расписания
	protected.HandleFunc("/templates", createTemplate.Handle).Methods(http.MethodPost)

	// Назначение шаблонов услуге
	protected.HandleFunc("/services/{serviceId}/arrangements", createArrangements.Handle).Methods(http.MethodPost)

	// Генерация слотов по назначениям услуги
	protected.HandleFunc("/services/{serviceId}/slots/generate", generateSlots.Handle).Methods(http.MethodPost)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
