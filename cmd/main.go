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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-CarSpot/internal/api/errnorm"
	carsHandler "github.com/m04kA/SMC-CarSpot/internal/api/handlers/cars"
	healthHandler "github.com/m04kA/SMC-CarSpot/internal/api/handlers/health"
	referenceHandler "github.com/m04kA/SMC-CarSpot/internal/api/handlers/reference"
	specsHandler "github.com/m04kA/SMC-CarSpot/internal/api/handlers/specs"
	spotsHandler "github.com/m04kA/SMC-CarSpot/internal/api/handlers/spots"
	usersHandler "github.com/m04kA/SMC-CarSpot/internal/api/handlers/users"
	"github.com/m04kA/SMC-CarSpot/internal/api/middleware"
	"github.com/m04kA/SMC-CarSpot/internal/api/validation"
	"github.com/m04kA/SMC-CarSpot/internal/config"
	"github.com/m04kA/SMC-CarSpot/internal/domain"
	carsRepo "github.com/m04kA/SMC-CarSpot/internal/infra/storage/cars"
	referenceRepo "github.com/m04kA/SMC-CarSpot/internal/infra/storage/reference"
	specsRepo "github.com/m04kA/SMC-CarSpot/internal/infra/storage/specs"
	spotsRepo "github.com/m04kA/SMC-CarSpot/internal/infra/storage/spots"
	usersRepo "github.com/m04kA/SMC-CarSpot/internal/infra/storage/users"
	"github.com/m04kA/SMC-CarSpot/internal/ratelimit"
	"github.com/m04kA/SMC-CarSpot/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarSpot/pkg/logger"
	"github.com/m04kA/SMC-CarSpot/pkg/metrics"
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

	log.Info("Starting CarSpot API (environment=%s)...", cfg.App.Environment)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
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

	// Проверяем соединение: без базы сервис не стартует
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	userRepository := usersRepo.NewRepository(executor)
	brandRepository := referenceRepo.NewRepository(executor, domain.BrandKind)
	modelRepository := referenceRepo.NewRepository(executor, domain.ModelKind)
	trimRepository := referenceRepo.NewRepository(executor, domain.TrimKind)
	specsRepository := specsRepo.NewRepository(executor)
	carRepository := carsRepo.NewRepository(executor)
	spotRepository := spotsRepo.NewRepository(executor)

	// Общие компоненты API
	normalizer := errnorm.NewNormalizer(log, metricsCollector, cfg.IsDevelopment())
	validator := validation.NewMiddleware(log, metricsCollector)

	// Инициализируем handlers
	users := usersHandler.NewHandler(userRepository, spotRepository, normalizer, log)
	brands := referenceHandler.NewHandler(brandRepository, normalizer, log)
	models := referenceHandler.NewHandler(modelRepository, normalizer, log)
	trims := referenceHandler.NewHandler(trimRepository, normalizer, log)
	specs := specsHandler.NewHandler(specsRepository, normalizer, log)
	cars := carsHandler.NewHandler(carRepository, normalizer, log)
	spots := spotsHandler.NewHandler(spotRepository, normalizer, log)
	health := healthHandler.NewHandler(cfg.App.Environment, ratelimit.SystemClock{})

	// Настраиваем роутер
	r := mux.NewRouter()
	r.NotFoundHandler = normalizer.NotFound()
	r.MethodNotAllowedHandler = normalizer.NotFound()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)
	users.Register(api, validator)
	brands.Register(api, validator)
	models.Register(api, validator)
	trims.Register(api, validator)
	specs.Register(api, validator)
	cars.Register(api, validator)
	spots.Register(api, validator)

	// Цепочка middleware снаружи внутрь: recovery -> access log -> CORS -> rate limit -> router
	var handler http.Handler = r

	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()

	if cfg.RateLimit.Enabled {
		limiter, err := ratelimit.New(
			ratelimit.Config{Limit: cfg.RateLimit.Requests, Window: cfg.RateLimitWindow()},
			ratelimit.NewMemoryStore(),
			ratelimit.SystemClock{},
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize rate limiter: %v", err)
		}
		go limiter.Run(sweeperCtx)

		handler = middleware.RateLimit(limiter, metricsCollector, log, cfg.RateLimit.TrustProxy)(handler)
		log.Info("Rate limiting enabled (requests=%d, window=%s, trust_proxy=%t)",
			cfg.RateLimit.Requests, cfg.RateLimitWindow(), cfg.RateLimit.TrustProxy)
	}

	handler = middleware.CORS(middleware.CORSOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
		MaxAge:         cfg.CORS.MaxAge,
	})(handler)
	handler = middleware.Logging(log)(handler)
	handler = normalizer.Recover(handler)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	// Останавливаем очистку rate limiter и сбор метрик connection pool
	stopSweeper()
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
