package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/farmmitra/FarmMitraGo/internal/auth"
	"github.com/farmmitra/FarmMitraGo/internal/catalog"
	"github.com/farmmitra/FarmMitraGo/internal/config"
	"github.com/farmmitra/FarmMitraGo/internal/event"
	handler "github.com/farmmitra/FarmMitraGo/internal/handler/http"
	"github.com/farmmitra/FarmMitraGo/internal/repository/postgres"
	redisrepo "github.com/farmmitra/FarmMitraGo/internal/repository/redis"
	"github.com/farmmitra/FarmMitraGo/internal/service"
	"github.com/farmmitra/FarmMitraGo/migrations"
	"github.com/farmmitra/FarmMitraGo/pkg/database"
	"github.com/farmmitra/FarmMitraGo/pkg/health"
	"github.com/farmmitra/FarmMitraGo/pkg/httpclient"
	pkgkafka "github.com/farmmitra/FarmMitraGo/pkg/kafka"
	"github.com/farmmitra/FarmMitraGo/pkg/middleware"
)

// App wires together all dependencies and runs the FarmMitra service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	redis      *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize PostgreSQL connection pool.
	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: time.Duration(cfg.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(cfg.DBMaxConnIdleTimeMins) * time.Minute,
	}

	pool, err := database.NewPostgresPool(ctx, &pgCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	database.RegisterPoolMetrics(pool, "farmmitra")

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.Files, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Initialize Redis.
	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("host", cfg.RedisHost),
		slog.Int("port", cfg.RedisPort),
	)

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Parse configured durations.
	accessExpiry, err := time.ParseDuration(cfg.JWTAccessExpiry)
	if err != nil {
		return nil, fmt.Errorf("parse JWT access expiry %q: %w", cfg.JWTAccessExpiry, err)
	}
	refreshExpiry, err := time.ParseDuration(cfg.JWTRefreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("parse JWT refresh expiry %q: %w", cfg.JWTRefreshExpiry, err)
	}
	weatherTTL, err := time.ParseDuration(cfg.WeatherCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("parse weather cache TTL %q: %w", cfg.WeatherCacheTTL, err)
	}
	marketTTL, err := time.ParseDuration(cfg.MarketCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("parse market cache TTL %q: %w", cfg.MarketCacheTTL, err)
	}

	// Build the dependency graph.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, accessExpiry, refreshExpiry)
	userRepo := postgres.NewUserRepository(pool)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	outreachRepo := postgres.NewOutreachRepository(pool)
	marketCache := redisrepo.NewMarketCache(redisClient, marketTTL)
	weatherCache := redisrepo.NewWeatherCache(redisClient, weatherTTL)
	eventProducer := event.NewProducer(producer, logger)

	cropCatalog, err := catalog.Load()
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("load crop catalog: %w", err)
	}

	weatherClient := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.DefaultCircuitBreakerConfig("openweather"),
		logger,
	)

	userService := service.NewUserService(userRepo, refreshTokenRepo, jwtManager, eventProducer, logger)
	reviewService := service.NewReviewService(reviewRepo, eventProducer, logger)
	outreachService := service.NewOutreachService(outreachRepo, eventProducer, logger)
	weatherService := service.NewWeatherService(weatherClient, weatherCache, cfg.WeatherBaseURL, cfg.WeatherAPIKey, logger)

	// Each randomized service gets its own generator. A *rand.Rand is not
	// safe for concurrent use and each service serializes only its own draws.
	marketService, err := service.NewMarketService(marketCache, rand.New(rand.NewSource(time.Now().UnixNano())), logger)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init market service: %w", err)
	}
	advisoryService, err := service.NewAdvisoryService(rand.New(rand.NewSource(time.Now().UnixNano())), logger)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init advisory service: %w", err)
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.RegisterCritical("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	router := handler.NewRouter(handler.RouterConfig{
		UserService:       userService,
		ReviewService:     reviewService,
		MarketService:     marketService,
		WeatherService:    weatherService,
		AdvisoryService:   advisoryService,
		OutreachService:   outreachService,
		Catalog:           cropCatalog,
		JWTManager:        jwtManager,
		HealthHandler:     healthHandler,
		Logger:            logger,
		CORS:              corsCfg,
		PprofAllowedCIDRs: cfg.PprofAllowedCIDRs,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		pool:       pool,
		redis:      redisClient,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Kafka producer
// 3. Redis client
// 4. PostgreSQL pool
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.redis.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
