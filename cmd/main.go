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

	bookAppointmentHandler "github.com/agendli/scheduling-service/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/agendli/scheduling-service/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/agendli/scheduling-service/internal/api/handlers/complete_appointment"
	confirmAppointmentHandler "github.com/agendli/scheduling-service/internal/api/handlers/confirm_appointment"
	getAppointmentHandler "github.com/agendli/scheduling-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/agendli/scheduling-service/internal/api/handlers/get_available_slots"
	rescheduleAppointmentHandler "github.com/agendli/scheduling-service/internal/api/handlers/reschedule_appointment"
	"github.com/agendli/scheduling-service/internal/api/middleware"
	"github.com/agendli/scheduling-service/internal/config"
	appointmentRepo "github.com/agendli/scheduling-service/internal/infra/storage/appointment"
	schedulingRepo "github.com/agendli/scheduling-service/internal/infra/storage/scheduling"
	appointmentsService "github.com/agendli/scheduling-service/internal/service/appointments"
	bookAppointmentUC "github.com/agendli/scheduling-service/internal/usecase/book_appointment"
	getAvailableSlotsUC "github.com/agendli/scheduling-service/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/agendli/scheduling-service/internal/usecase/reschedule_appointment"
	"github.com/agendli/scheduling-service/pkg/dbmetrics"
	"github.com/agendli/scheduling-service/pkg/logger"
	"github.com/agendli/scheduling-service/pkg/metrics"
	"github.com/agendli/scheduling-service/pkg/simpletxmanager"
	"github.com/agendli/scheduling-service/pkg/txmanager"
)

// appointmentMetrics интерфейс бизнес-метрик для handlers
type appointmentMetrics interface {
	IncAppointmentsBooked(status string)
	IncSlotConflicts()
}

// noopMetrics заглушка бизнес-метрик при выключенном сборе
type noopMetrics struct{}

func (noopMetrics) IncAppointmentsBooked(string) {}
func (noopMetrics) IncSlotConflicts()            {}

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

	log.Info("Starting scheduling-service...")
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

	// Таймзона календаря, в ней интерпретируются рабочие часы специалистов
	location, err := time.LoadLocation(cfg.Scheduling.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Scheduling.Timezone, err)
	}
	log.Info("Calendar timezone: %s", location)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		schedulingRepository  *schedulingRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		schedulingRepository = schedulingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		schedulingRepository = schedulingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Бизнес-метрики для handlers, заглушка при выключенном сборе
	var apptMetrics appointmentMetrics = noopMetrics{}
	if cfg.Metrics.Enabled {
		apptMetrics = metricsCollector
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		schedulingRepository,
		txMgr,
		cfg.Scheduling.AllowNullOwner,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		schedulingRepository,
		location,
		log,
	)

	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		schedulingRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, apptMetrics, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentSvc, apptMetrics, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// CORS для браузерных клиентов
	r.Use(middleware.CORS)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Ограничение частоты запросов по IP (если включено)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		r.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1/appointments").Subrouter()

	// Свободные слоты специалиста на день
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet, http.MethodOptions)

	// Запись с данными клиента, специалиста и услуги
	api.HandleFunc("/details", getAppointment.Handle).Methods(http.MethodGet, http.MethodOptions)

	// Создание записи
	api.HandleFunc("/book", bookAppointment.Handle).Methods(http.MethodPost, http.MethodOptions)

	// Перенос записи на другое время
	api.HandleFunc("/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPut, http.MethodOptions)

	// Отмена записи
	api.HandleFunc("/cancel", cancelAppointment.Handle).Methods(http.MethodPut, http.MethodOptions)

	// Подтверждение предварительной записи
	api.HandleFunc("/confirm", confirmAppointment.Handle).Methods(http.MethodPut, http.MethodOptions)

	// Завершение записи
	api.HandleFunc("/complete", completeAppointment.Handle).Methods(http.MethodPut, http.MethodOptions)

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
