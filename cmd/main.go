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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/get_availability"
	getHolidaysHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/get_holidays"
	getMemberReservationsHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/get_member_reservations"
	getReservationHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/get_reservation"
	getRoomHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/get_room"
	getRoomReservationsHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/get_room_reservations"
	getRoomsHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/get_rooms"
	quoteChargeHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/quote_charge"
	recordPaymentHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/record_payment"
	removeHolidayHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/remove_holiday"
	setAirconHoursHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/set_aircon_hours"
	updateRateTableHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/update_rate_table"
	updateReservationStatusHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/update_reservation_status"
	upsertHolidayHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/upsert_holiday"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityService/internal/config"
	"github.com/m04kA/SMC-FacilityService/internal/infra/cache"
	holidayRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/holiday"
	reservationRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/room"
	memberServiceClient "github.com/m04kA/SMC-FacilityService/internal/integrations/memberservice"
	paymentServiceClient "github.com/m04kA/SMC-FacilityService/internal/integrations/payment"
	calendarService "github.com/m04kA/SMC-FacilityService/internal/service/calendar"
	reservationsService "github.com/m04kA/SMC-FacilityService/internal/service/reservations"
	roomsService "github.com/m04kA/SMC-FacilityService/internal/service/rooms"
	cancelReservationUC "github.com/m04kA/SMC-FacilityService/internal/usecase/cancel_reservation"
	createReservationUC "github.com/m04kA/SMC-FacilityService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/SMC-FacilityService/internal/usecase/get_availability"
	quoteChargeUC "github.com/m04kA/SMC-FacilityService/internal/usecase/quote_charge"
	setAirconHoursUC "github.com/m04kA/SMC-FacilityService/internal/usecase/set_aircon_hours"
	"github.com/m04kA/SMC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityService/pkg/logger"
	"github.com/m04kA/SMC-FacilityService/pkg/metrics"
	"github.com/m04kA/SMC-FacilityService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-FacilityService/pkg/txmanager"
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

	log.Info("Starting SMC-FacilityService...")
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

	// Подключаемся к Redis для кэша календаря (если включен)
	var kvStore calendarService.KVStore
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		kvStore = cache.NewRedisKV(redisClient)
		log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	}

	// Инициализируем интеграционных клиентов
	memberClient := memberServiceClient.NewClient(
		cfg.MemberService.URL,
		time.Duration(cfg.MemberService.Timeout)*time.Second,
		log,
	)
	paymentClient := paymentServiceClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (MemberService=%s timeout=%ds, PaymentService=%s timeout=%ds)",
		cfg.MemberService.URL, cfg.MemberService.Timeout, cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		roomRepository        *roomRepo.Repository
		reservationRepository *reservationRepo.Repository
		holidayRepository     *holidayRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		roomRepository = roomRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		holidayRepository = holidayRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		roomRepository = roomRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		holidayRepository = holidayRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	calendarSvc := calendarService.NewService(
		holidayRepository,
		kvStore,
		time.Duration(cfg.Redis.HolidayCacheTTL)*time.Second,
		memberClient,
		log,
	)
	roomsSvc := roomsService.NewService(
		roomRepository,
		memberClient,
		log,
	)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		roomRepository,
		memberClient,
		paymentClient,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		roomRepository,
		calendarSvc,
		memberClient,
		txMgr,
		log,
	)
	quoteChargeUseCase := quoteChargeUC.NewUseCase(
		roomRepository,
		calendarSvc,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		reservationRepository,
		roomRepository,
		calendarSvc,
		log,
	)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		memberClient,
		paymentClient,
		log,
	)
	setAirconHoursUseCase := setAirconHoursUC.NewUseCase(
		reservationRepository,
		roomRepository,
		memberClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	quoteCharge := quoteChargeHandler.NewHandler(quoteChargeUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	setAirconHours := setAirconHoursHandler.NewHandler(setAirconHoursUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getMemberReservations := getMemberReservationsHandler.NewHandler(reservationsSvc, log)
	getRoomReservations := getRoomReservationsHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	recordPayment := recordPaymentHandler.NewHandler(reservationsSvc, log)
	getRooms := getRoomsHandler.NewHandler(roomsSvc, log)
	getRoom := getRoomHandler.NewHandler(roomsSvc, log)
	updateRateTable := updateRateTableHandler.NewHandler(roomsSvc, log)
	getHolidays := getHolidaysHandler.NewHandler(calendarSvc, log)
	upsertHoliday := upsertHolidayHandler.NewHandler(calendarSvc, log)
	removeHoliday := removeHolidayHandler.NewHandler(calendarSvc, log)

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

	// Каталог залов с расценками и оборудованием
	api.HandleFunc("/rooms", getRooms.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}", getRoom.Handle).Methods(http.MethodGet)

	// Занятость зала по блокам дня
	api.HandleFunc("/rooms/{roomId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Предварительный расчёт стоимости
	api.HandleFunc("/quotes", quoteCharge.Handle).Methods(http.MethodPost)

	// Праздничные дни за период
	api.HandleFunc("/holidays", getHolidays.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Member-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Подтверждение и завершение бронирования
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// Фиксация оплаты
	protected.HandleFunc("/reservations/{reservationId}/payment", recordPayment.Handle).Methods(http.MethodPost)

	// Фактические часы кондиционера (вносит сотрудник после использования)
	protected.HandleFunc("/reservations/{reservationId}/usages/{usageId}/aircon", setAirconHours.Handle).Methods(http.MethodPatch)

	// История бронирований участника
	protected.HandleFunc("/members/{memberId}/reservations", getMemberReservations.Handle).Methods(http.MethodGet)

	// --- Управление залами (для сотрудников) ---
	// Бронирования зала с фильтрацией
	protected.HandleFunc("/rooms/{roomId}/reservations", getRoomReservations.Handle).Methods(http.MethodGet)

	// Обновление таблицы расценок
	protected.HandleFunc("/rooms/{roomId}/rate-table", updateRateTable.Handle).Methods(http.MethodPut)

	// --- Календарь праздников (для сотрудников) ---
	protected.HandleFunc("/holidays", upsertHoliday.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/holidays/{date}", removeHoliday.Handle).Methods(http.MethodDelete)

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
