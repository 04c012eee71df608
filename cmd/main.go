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

	assignReservationHandler "github.com/dkomnin/AVB-SchedulingService/internal/api/handlers/assign_reservation"
	cancelReservationHandler "github.com/dkomnin/AVB-SchedulingService/internal/api/handlers/cancel_reservation"
	getCompanyReservationsHandler "github.com/dkomnin/AVB-SchedulingService/internal/api/handlers/get_company_reservations"
	getInstructorScheduleHandler "github.com/dkomnin/AVB-SchedulingService/internal/api/handlers/get_instructor_schedule"
	getInstructorsHandler "github.com/dkomnin/AVB-SchedulingService/internal/api/handlers/get_instructors"
	getReservationHandler "github.com/dkomnin/AVB-SchedulingService/internal/api/handlers/get_reservation"
	getSitesHandler "github.com/dkomnin/AVB-SchedulingService/internal/api/handlers/get_sites"
	getVehiclesHandler "github.com/dkomnin/AVB-SchedulingService/internal/api/handlers/get_vehicles"
	quoteReservationHandler "github.com/dkomnin/AVB-SchedulingService/internal/api/handlers/quote_reservation"
	rescheduleReservationHandler "github.com/dkomnin/AVB-SchedulingService/internal/api/handlers/reschedule_reservation"
	"github.com/dkomnin/AVB-SchedulingService/internal/api/middleware"
	"github.com/dkomnin/AVB-SchedulingService/internal/config"
	activityRepo "github.com/dkomnin/AVB-SchedulingService/internal/infra/storage/activity"
	instructorRepo "github.com/dkomnin/AVB-SchedulingService/internal/infra/storage/instructor"
	reservationRepo "github.com/dkomnin/AVB-SchedulingService/internal/infra/storage/reservation"
	resourceRepo "github.com/dkomnin/AVB-SchedulingService/internal/infra/storage/resource"
	sessionRepo "github.com/dkomnin/AVB-SchedulingService/internal/infra/storage/session"
	"github.com/dkomnin/AVB-SchedulingService/internal/scheduling"
	reservationsService "github.com/dkomnin/AVB-SchedulingService/internal/service/reservations"
	resourcesService "github.com/dkomnin/AVB-SchedulingService/internal/service/resources"
	assignReservationUC "github.com/dkomnin/AVB-SchedulingService/internal/usecase/assign_reservation"
	quoteReservationUC "github.com/dkomnin/AVB-SchedulingService/internal/usecase/quote_reservation"
	rescheduleReservationUC "github.com/dkomnin/AVB-SchedulingService/internal/usecase/reschedule_reservation"
	"github.com/dkomnin/AVB-SchedulingService/pkg/dbmetrics"
	"github.com/dkomnin/AVB-SchedulingService/pkg/logger"
	"github.com/dkomnin/AVB-SchedulingService/pkg/metrics"
	"github.com/dkomnin/AVB-SchedulingService/pkg/simpletxmanager"
	"github.com/dkomnin/AVB-SchedulingService/pkg/txmanager"
)

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

	log.Info("Starting AVB-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

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

	// Политика планирования из конфигурации
	policy := scheduling.Policy{
		BufferMinutes:              cfg.Scheduling.BufferMinutes,
		RotationWindowMinutes:      cfg.Scheduling.RotationWindowMinutes,
		DefaultParticipantWeightKg: cfg.Scheduling.DefaultParticipantWeightKg,
		DefaultInstructorWeightKg:  cfg.Scheduling.DefaultInstructorWeightKg,
		DriverWeightKg:             cfg.Scheduling.DefaultDriverWeightKg,
	}.Normalize()
	log.Info("Scheduling policy: buffer=%dm, rotation_window=%dm",
		policy.BufferMinutes, policy.RotationWindowMinutes)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		sessionRepository     *sessionRepo.Repository
		activityRepository    *activityRepo.Repository
		instructorRepository  *instructorRepo.Repository
		resourceRepository    *resourceRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		activityRepository = activityRepo.NewRepository(wrappedDB)
		instructorRepository = instructorRepo.NewRepository(wrappedDB)
		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		sessionRepository = sessionRepo.NewRepository(db)
		activityRepository = activityRepo.NewRepository(db)
		instructorRepository = instructorRepo.NewRepository(db)
		resourceRepository = resourceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		sessionRepository,
		log,
	)
	resourceSvc := resourcesService.NewService(
		instructorRepository,
		resourceRepository,
		sessionRepository,
		log,
	)

	// Инициализируем use cases
	assignReservationUseCase := assignReservationUC.NewUseCase(
		reservationRepository,
		sessionRepository,
		activityRepository,
		instructorRepository,
		resourceRepository,
		resourceRepository,
		txMgr,
		policy,
		log,
	)
	rescheduleReservationUseCase := rescheduleReservationUC.NewUseCase(
		reservationRepository,
		sessionRepository,
		txMgr,
		log,
	)
	quoteReservationUseCase := quoteReservationUC.NewUseCase(
		activityRepository,
		log,
	)

	// Инициализируем handlers
	assignReservation := assignReservationHandler.NewHandler(assignReservationUseCase, log)
	rescheduleReservation := rescheduleReservationHandler.NewHandler(rescheduleReservationUseCase, log)
	quoteReservation := quoteReservationHandler.NewHandler(quoteReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getCompanyReservations := getCompanyReservationsHandler.NewHandler(reservationSvc, log)
	getInstructors := getInstructorsHandler.NewHandler(resourceSvc, log)
	getVehicles := getVehiclesHandler.NewHandler(resourceSvc, log)
	getSites := getSitesHandler.NewHandler(resourceSvc, log)
	getInstructorSchedule := getInstructorScheduleHandler.NewHandler(resourceSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Расчет стоимости брони
	api.HandleFunc("/activities/{activityId}/quote", quoteReservation.Handle).Methods(http.MethodGet)

	// Ресурсы компании
	api.HandleFunc("/companies/{companyId}/instructors", getInstructors.Handle).Methods(http.MethodGet)
	api.HandleFunc("/companies/{companyId}/vehicles", getVehicles.Handle).Methods(http.MethodGet)
	api.HandleFunc("/companies/{companyId}/sites", getSites.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Брони ---
	// Получение брони по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Назначение ресурсов на бронь
	protected.HandleFunc("/reservations/{reservationId}/assign", assignReservation.Handle).Methods(http.MethodPost)

	// Перенос брони (снятие назначения)
	protected.HandleFunc("/reservations/{reservationId}/reschedule", rescheduleReservation.Handle).Methods(http.MethodPost)

	// Отмена брони
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Управление компанией (для операторов) ---
	// Список броней компании
	protected.HandleFunc("/companies/{companyId}/reservations", getCompanyReservations.Handle).Methods(http.MethodGet)

	// Расписание инструктора на дату
	protected.HandleFunc("/instructors/{instructorId}/schedule", getInstructorSchedule.Handle).Methods(http.MethodGet)

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
