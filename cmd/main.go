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

	addComputerHandler "github.com/ekarahan/LCR-ReservationService/internal/api/handlers/add_computer"
	createLabHandler "github.com/ekarahan/LCR-ReservationService/internal/api/handlers/create_lab"
	createReservationHandler "github.com/ekarahan/LCR-ReservationService/internal/api/handlers/create_reservation"
	deleteLabHandler "github.com/ekarahan/LCR-ReservationService/internal/api/handlers/delete_lab"
	deleteReservationHandler "github.com/ekarahan/LCR-ReservationService/internal/api/handlers/delete_reservation"
	getLabHandler "github.com/ekarahan/LCR-ReservationService/internal/api/handlers/get_lab"
	getLabReservationsHandler "github.com/ekarahan/LCR-ReservationService/internal/api/handlers/get_lab_reservations"
	getLabScheduleHandler "github.com/ekarahan/LCR-ReservationService/internal/api/handlers/get_lab_schedule"
	getReservationHandler "github.com/ekarahan/LCR-ReservationService/internal/api/handlers/get_reservation"
	getStudentReservationsHandler "github.com/ekarahan/LCR-ReservationService/internal/api/handlers/get_student_reservations"
	listLabsHandler "github.com/ekarahan/LCR-ReservationService/internal/api/handlers/list_labs"
	manageManagersHandler "github.com/ekarahan/LCR-ReservationService/internal/api/handlers/manage_managers"
	removeComputerHandler "github.com/ekarahan/LCR-ReservationService/internal/api/handlers/remove_computer"
	updateReservationStatusHandler "github.com/ekarahan/LCR-ReservationService/internal/api/handlers/update_reservation_status"
	"github.com/ekarahan/LCR-ReservationService/internal/api/middleware"
	"github.com/ekarahan/LCR-ReservationService/internal/config"
	labRepo "github.com/ekarahan/LCR-ReservationService/internal/infra/storage/lab"
	reservationRepo "github.com/ekarahan/LCR-ReservationService/internal/infra/storage/reservation"
	studentRepo "github.com/ekarahan/LCR-ReservationService/internal/infra/storage/student"
	accountServiceClient "github.com/ekarahan/LCR-ReservationService/internal/integrations/accountservice"
	labsService "github.com/ekarahan/LCR-ReservationService/internal/service/labs"
	reservationsService "github.com/ekarahan/LCR-ReservationService/internal/service/reservations"
	createReservationUC "github.com/ekarahan/LCR-ReservationService/internal/usecase/create_reservation"
	getLabScheduleUC "github.com/ekarahan/LCR-ReservationService/internal/usecase/get_lab_schedule"
	"github.com/ekarahan/LCR-ReservationService/pkg/dbmetrics"
	"github.com/ekarahan/LCR-ReservationService/pkg/logger"
	"github.com/ekarahan/LCR-ReservationService/pkg/metrics"
	"github.com/ekarahan/LCR-ReservationService/pkg/simpletxmanager"
	"github.com/ekarahan/LCR-ReservationService/pkg/txmanager"
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

	log.Info("Starting LCR-ReservationService...")
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

	// Инициализируем клиента справочника аккаунтов
	accountClient := accountServiceClient.NewClient(
		cfg.AccountService.URL,
		time.Duration(cfg.AccountService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (AccountService=%s timeout=%ds)",
		cfg.AccountService.URL, cfg.AccountService.Timeout)

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		labRepository         *labRepo.Repository
		studentRepository     *studentRepo.Repository
	)

	// Интерфейс транзакционного менеджера (используется в usecase создания)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		labRepository = labRepo.NewRepository(wrappedDB)
		studentRepository = studentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		labRepository = labRepo.NewRepository(db)
		studentRepository = studentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		labRepository,
		log,
	)
	labSvc := labsService.NewService(
		labRepository,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		labRepository,
		studentRepository,
		accountClient,
		txMgr,
		log,
	)
	getLabScheduleUseCase := getLabScheduleUC.NewUseCase(
		labRepository,
		reservationRepository,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	getStudentReservations := getStudentReservationsHandler.NewHandler(reservationSvc, log)
	getLabReservations := getLabReservationsHandler.NewHandler(reservationSvc, log)
	getLabSchedule := getLabScheduleHandler.NewHandler(getLabScheduleUseCase, log)
	listLabs := listLabsHandler.NewHandler(labSvc, log)
	getLab := getLabHandler.NewHandler(labSvc, log)
	createLab := createLabHandler.NewHandler(labSvc, log)
	deleteLab := deleteLabHandler.NewHandler(labSvc, log)
	addComputer := addComputerHandler.NewHandler(labSvc, log)
	removeComputer := removeComputerHandler.NewHandler(labSvc, log)
	manageManagers := manageManagersHandler.NewHandler(labSvc, log)

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

	// Список лабораторий
	api.HandleFunc("/labs", listLabs.Handle).Methods(http.MethodGet)

	// Лаборатория с компьютерами
	api.HandleFunc("/labs/{labId}", getLab.Handle).Methods(http.MethodGet)

	// Расписание лаборатории на дату
	api.HandleFunc("/labs/{labId}/schedule", getLabSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-Email и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Резервирования ---
	// Создание резервирования (конвейер допуска)
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение резервирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Перевод резервирования в новый статус (approve/reject)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// Административное удаление резервирования
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)

	// История резервирований студента
	protected.HandleFunc("/students/{email}/reservations", getStudentReservations.Handle).Methods(http.MethodGet)

	// Резервирования лаборатории (для менеджеров)
	protected.HandleFunc("/labs/{labId}/reservations", getLabReservations.Handle).Methods(http.MethodGet)

	// --- Управление лабораториями ---
	// Создание и удаление лаборатории (админ)
	protected.HandleFunc("/labs", createLab.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/labs/{labId}", deleteLab.Handle).Methods(http.MethodDelete)

	// Состав компьютеров (админ или менеджер лаборатории)
	protected.HandleFunc("/labs/{labId}/computers", addComputer.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/labs/{labId}/computers/{computerId}", removeComputer.Handle).Methods(http.MethodDelete)

	// Состав менеджеров (админ)
	protected.HandleFunc("/labs/{labId}/managers", manageManagers.HandleAdd).Methods(http.MethodPost)
	protected.HandleFunc("/labs/{labId}/managers/{email}", manageManagers.HandleRemove).Methods(http.MethodDelete)

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
