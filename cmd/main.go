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
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getBranchHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_branch"
	listBranchesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_branches"
	lookupAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/lookup_appointment"
	searchBranchesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/search_branches"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	branchCache "github.com/m04kA/SMC-AppointmentService/internal/infra/cache/branch"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	branchRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/branch"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/notification"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	branchesService "github.com/m04kA/SMC-AppointmentService/internal/service/branches"
	"github.com/m04kA/SMC-AppointmentService/internal/service/reference"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots"
	"github.com/m04kA/SMC-AppointmentService/internal/service/validation"
	cancelAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_appointment"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// appointmentStore общий набор методов postgres и memory репозиториев записей
type appointmentStore interface {
	FindByReference(ctx context.Context, reference string) (*domain.Appointment, error)
	FindByReferenceForUpdate(ctx context.Context, reference string) (*domain.Appointment, error)
	FindByEmailAndReference(ctx context.Context, email, reference string) (*domain.Appointment, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	CountActiveAtExactTime(ctx context.Context, branchID int64, at time.Time) (int, error)
	FindActiveByBranchAndTimeRange(ctx context.Context, branchID int64, from, to time.Time) ([]*domain.Appointment, error)
	LockSlot(ctx context.Context, branchID int64, at time.Time) error
	Save(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// branchStore общий набор методов репозиториев филиалов
type branchStore interface {
	FindByID(ctx context.Context, id int64) (*domain.Branch, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Branch, error)
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, term string, limit, offset int) ([]*domain.Branch, error)
	CountSearch(ctx context.Context, term string) (int64, error)
}

type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type storage struct {
	appointments appointmentStore
	branches     branchStore
	tx           txManager
	close        func() error
}

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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Часовой пояс филиалов (Validate уже проверил, что он загружается)
	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load booking timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	store, err := openStorage(cfg, location, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Кеш филиалов в Redis (если включен).
	// Транзакционные проверки при бронировании читают филиал напрямую из хранилища.
	var branchesReader branchStore = store.branches
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, branch cache will fall back to storage: %v", cfg.Redis.Addr, err)
		}
		cancel()

		branchesReader = branchCache.NewCache(store.branches, rdb, cfg.Redis.BranchTTL(), log)
		log.Info("Branch cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.BranchTTL())
	}

	// Уведомления клиентам
	sink, closeSink := buildNotificationSink(cfg, log)
	dispatcher := notification.NewDispatcher(
		sink,
		cfg.Notifications.Workers,
		cfg.Notifications.BufferSize,
		log,
		metricsCollector,
	)
	log.Info("Notifications enabled (mode=%s, workers=%d, buffer=%d)",
		cfg.Notifications.Mode, cfg.Notifications.Workers, cfg.Notifications.BufferSize)

	// Инициализируем сервисы
	referenceGenerator := reference.NewGenerator(store.appointments, cfg.Booking.ReferenceMaxAttempts, log)
	slotCalculator := slots.NewCalculator(cfg.Booking.SlotDurationMinutes)
	availabilityOracle := slots.NewOracle(store.appointments, log)
	bookingValidator := validation.NewValidator(store.branches, store.appointments, log)
	appointmentSvc := appointmentsService.NewService(store.appointments, log)
	branchSvc := branchesService.NewService(branchesReader, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		store.appointments,
		store.branches,
		bookingValidator,
		referenceGenerator,
		dispatcher,
		store.tx,
		metricsCollector,
		log,
	)

	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		store.appointments,
		bookingValidator,
		dispatcher,
		store.tx,
		metricsCollector,
		cfg.Booking.DefaultCancellationReason,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		branchesReader,
		slotCalculator,
		availabilityOracle,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, location, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, location, log)
	lookupAppointment := lookupAppointmentHandler.NewHandler(appointmentSvc, location, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	getBranch := getBranchHandler.NewHandler(branchSvc, log)
	listBranches := listBranchesHandler.NewHandler(branchSvc, log)
	searchBranches := searchBranchesHandler.NewHandler(branchSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
		api.Use(limiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// --- Записи ---
	// Доступные слоты филиала на дату
	api.HandleFunc("/appointments/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Бронирование
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Поиск записи по email и номеру
	api.HandleFunc("/appointments/lookup", lookupAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	api.HandleFunc("/appointments/cancel", cancelAppointment.Handle).Methods(http.MethodPut)

	// --- Филиалы ---
	api.HandleFunc("/branches", listBranches.Handle).Methods(http.MethodGet)
	// /branches/search регистрируется раньше /branches/{branchId}
	api.HandleFunc("/branches/search", searchBranches.Handle).Methods(http.MethodGet)
	api.HandleFunc("/branches/{branchId}", getBranch.Handle).Methods(http.MethodGet)

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

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Досылаем уведомления, принятые до остановки сервера
	dispatcher.Shutdown(shutdownTimeout)
	if err := closeSink(); err != nil {
		log.Error("Failed to close notification sink: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

// openStorage поднимает хранилище по storage.driver
func openStorage(
	cfg *config.Config,
	location *time.Location,
	metricsCollector *metrics.Metrics,
	stopCh <-chan struct{},
	log *logger.Logger,
) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		mem := memory.NewStore()
		mem.SeedBranches(memory.DemoBranches()...)
		log.Warn("Using in-memory storage, data is lost on restart")

		return &storage{
			appointments: mem.Appointments(),
			branches:     mem.Branches(),
			tx:           mem.TxManager(),
			close:        func() error { return nil },
		}, nil
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)
	if metricsCollector != nil {
		log.Info("Database metrics collection started")
	}

	return &storage{
		appointments: appointmentRepo.NewRepository(wrappedDB, location),
		branches:     branchRepo.NewRepository(wrappedDB),
		tx:           txmanager.NewTransactionManager(wrappedDB, cfg.Database.SerializableRetries),
		close:        db.Close,
	}, nil
}

// buildNotificationSink выбирает канал уведомлений по notifications.mode.
// Внешние каналы закрыты circuit breaker'ом.
func buildNotificationSink(cfg *config.Config, log *logger.Logger) (notification.Sink, func() error) {
	noop := func() error { return nil }

	switch cfg.Notifications.Mode {
	case config.NotificationModeHTTP:
		httpSink := notification.NewHTTPSink(
			cfg.Notifications.URL,
			time.Duration(cfg.Notifications.Timeout)*time.Second,
			log,
		)
		return notification.NewBreakerSink(httpSink, log), noop

	case config.NotificationModeKafka:
		kafkaSink := notification.NewKafkaSink(
			notification.NewKafkaWriter(cfg.Kafka.Brokers),
			cfg.Kafka.TopicConfirmed,
			cfg.Kafka.TopicCancelled,
		)
		return notification.NewBreakerSink(kafkaSink, log), kafkaSink.Close

	default:
		return notification.NewLogSink(log), noop
	}
}
