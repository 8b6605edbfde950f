package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	accreditationapp "github.com/tokenestate/backend/internal/application/accreditation"
	identityapp "github.com/tokenestate/backend/internal/application/identity"
	insightsapp "github.com/tokenestate/backend/internal/application/insights"
	investmentapp "github.com/tokenestate/backend/internal/application/investment"
	liquidityapp "github.com/tokenestate/backend/internal/application/liquidity"
	predictionapp "github.com/tokenestate/backend/internal/application/prediction"
	propertyapp "github.com/tokenestate/backend/internal/application/property"
	referralapp "github.com/tokenestate/backend/internal/application/referral"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"github.com/tokenestate/backend/internal/infrastructure/auth"
	"github.com/tokenestate/backend/internal/infrastructure/cache"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"github.com/tokenestate/backend/internal/infrastructure/email"
	"github.com/tokenestate/backend/internal/infrastructure/event"
	"github.com/tokenestate/backend/internal/infrastructure/llm"
	"github.com/tokenestate/backend/internal/infrastructure/logger"
	"github.com/tokenestate/backend/internal/infrastructure/migration"
	"github.com/tokenestate/backend/internal/infrastructure/persistence"
	"github.com/tokenestate/backend/internal/infrastructure/realtime"
	"github.com/tokenestate/backend/internal/infrastructure/scheduler"
	"github.com/tokenestate/backend/internal/infrastructure/statement"
	"github.com/tokenestate/backend/internal/infrastructure/storage"
	"github.com/tokenestate/backend/internal/infrastructure/telemetry"
	"github.com/tokenestate/backend/internal/interfaces/http/handler"
	"github.com/tokenestate/backend/internal/interfaces/http/middleware"
	"github.com/tokenestate/backend/internal/interfaces/http/router"
	"github.com/tokenestate/backend/migrations"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/tokenestate/backend/docs"
)

//go:generate swag init -g main.go -d ./,../../internal/interfaces/http/handler,../../internal/application,../../internal/domain -o ../../docs --outputTypes go

//	@title			TokenEstate API
//	@version		1.0
//	@description	Fractional real estate investment platform: listings, token purchases, redemptions, accreditation and prediction markets.

//	@contact.name	API Support

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const (
	idempotencyTTL   = 24 * time.Hour
	invalidationChan = "tokenestate:cache:invalidate"
	shutdownTimeout  = 30 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}
	log := logger.New(logCfg)

	// Telemetry comes up first so the logger can tee into the OTLP exporter
	provider, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	if core := provider.LogCore(logger.ParseLevel(cfg.Log.Level)); core != nil {
		log = logger.New(logCfg, core)
	}
	defer func() {
		_ = log.Sync()
	}()

	profiler, err := telemetry.StartProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.Enabled() {
		provider.EnableSpanProfiles()
	}

	log.Info("Starting TokenEstate backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, log, logger.GormLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, cfg.Database.DBName, log); err != nil {
		log.Warn("Database tracing unavailable", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := migrate(db, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Cache, token blacklist and idempotency claims. Redis backs all three
	// when enabled so several instances share state.
	var (
		redisClient *redis.Client
		store       cache.Store
		claims      cache.Claimer
		blacklist   auth.TokenBlacklist
	)
	local := cache.NewMemoryStore(cfg.Liquidity.ScheduleCacheTTL, time.Minute)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis", zap.Error(err))
			}
		}()
		remote := cache.NewRedisStore(redisClient, "tokenestate:")
		tiered := cache.NewTieredStore(local, remote,
			cache.WithL1TTL(cfg.Liquidity.ScheduleCacheTTL),
			cache.WithInvalidation(redisClient, invalidationChan),
			cache.WithTieredLogger(log),
		)
		go func() {
			if err := tiered.ListenInvalidations(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("Cache invalidation listener stopped", zap.Error(err))
			}
		}()
		store, claims = tiered, remote
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		store, claims = local, local
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Object storage for KYC documents, property documents and statements
	var objects storage.ObjectStorage
	if cfg.Storage.Enabled {
		s3, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignTTL),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare storage bucket", zap.Error(err))
		}
		objects = s3
	}

	// Repositories
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	investmentRepo := persistence.NewGormInvestmentRepository(db.DB)
	redemptionRepo := persistence.NewGormRedemptionRepository(db.DB)
	feeTierRepo := persistence.NewGormFeeTierRepository(db.DB)
	marketRepo := persistence.NewGormMarketRepository(db.DB)
	referralRepo := persistence.NewGormReferralRepository(db.DB)
	accreditationRepo := persistence.NewGormAccreditationRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Application services
	schedule := liquidityapp.NewScheduleProvider(feeTierRepo, store, cfg.Liquidity, log)
	if err := schedule.SetDefaults(ctx, liquidityapp.TiersFromConfig(cfg.Liquidity.DefaultTiers)); err != nil {
		log.Fatal("Invalid default fee tiers", zap.Error(err))
	}
	cfg.Watch(func(next *config.Config) {
		if err := schedule.SetDefaults(context.Background(), liquidityapp.TiersFromConfig(next.Liquidity.DefaultTiers)); err != nil {
			log.Warn("Ignoring reloaded fee tiers", zap.Error(err))
			return
		}
		log.Info("Default fee tiers reloaded", zap.Int("tiers", len(next.Liquidity.DefaultTiers)))
	}, func(err error) {
		log.Warn("Config reload failed", zap.Error(err))
	})

	propertyService := propertyapp.NewService(propertyRepo, objects, log)
	propertyService.SetEventPublisher(eventBus)

	accreditationService := accreditationapp.NewService(accreditationRepo, objects, cfg.Accreditation, log)
	accreditationService.SetEventPublisher(eventBus)

	liquidityService := liquidityapp.NewService(schedule, redemptionRepo, propertyRepo, userRepo, scope, log)
	liquidityService.SetEventPublisher(eventBus)

	investmentService := investmentapp.NewService(investmentRepo, propertyRepo, redemptionRepo, marketRepo, scope, log)
	investmentService.SetEventPublisher(eventBus)
	investmentService.SetFeeScheduleSource(schedule)
	if cfg.Accreditation.RequiredToInvest {
		investmentService.RequireAccreditation(accreditationService)
	}

	predictionService := predictionapp.NewService(marketRepo, propertyRepo, cfg.Prediction, log)
	predictionService.SetEventPublisher(eventBus)

	var sender email.Sender = email.NewLogSender(log)
	if cfg.Email.Enabled {
		httpSender, err := email.NewHTTPSender(cfg.Email, log)
		if err != nil {
			log.Fatal("Failed to initialize e-mail sender", zap.Error(err))
		}
		sender = httpSender
	}
	reward, err := valueobject.NewMoney(decimal.NewFromFloat(cfg.Referral.RewardAmount), valueobject.USD)
	if err != nil {
		log.Fatal("Invalid referral reward", zap.Error(err))
	}
	referralService := referralapp.NewService(referralRepo, userRepo, investmentRepo, sender,
		email.NewComposer(language.English),
		referralapp.Config{Reward: reward, SignupURL: cfg.App.BaseURL + "/signup"},
		log,
	)
	referralService.SetEventPublisher(eventBus)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)
	authService.SetReferralLinker(referralService)
	authService.SetEventPublisher(eventBus)

	var completer llm.Completer
	if cfg.Insights.Enabled {
		gateway, err := llm.NewGateway(cfg.Insights, log)
		if err != nil {
			log.Fatal("Failed to initialize insights gateway", zap.Error(err))
		}
		completer = gateway
	}
	insightsService := insightsapp.NewService(completer, propertyRepo, marketRepo, store, cfg.Insights.CacheTTL, log)

	// PDF statements need both a renderer and somewhere to put the result
	if cfg.Chrome.Enabled && objects != nil {
		renderer := statement.NewChromedpRenderer(cfg.Chrome, log)
		defer func() {
			if err := renderer.Close(); err != nil {
				log.Error("Error closing statement renderer", zap.Error(err))
			}
		}()
		liquidityService.SetStatementRenderer(statement.NewGenerator(renderer, language.English), objects)
	}

	// Metrics
	businessMetrics, err := telemetry.NewBusinessMetrics(provider.Meter("tokenestate"), log)
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}
	liquidityService.SetMetrics(businessMetrics)
	jobObservers := telemetry.MultiObserver{businessMetrics}

	var prom *telemetry.PrometheusMetrics
	if cfg.HTTP.MetricsEnabled {
		prom = telemetry.NewPrometheusMetrics()
		if sqlDB, err := db.DB.DB(); err == nil {
			if err := prom.RegisterDB(sqlDB, cfg.Database.DBName); err != nil {
				log.Warn("Failed to register database metrics", zap.Error(err))
			}
		}
		if err := prom.RegisterCounter("events", "published_total", "Domain events published", func() float64 {
			published, _ := eventBus.Stats()
			return float64(published)
		}); err != nil {
			log.Warn("Failed to register event metrics", zap.Error(err))
		}
		jobObservers = append(jobObservers, prom)
	}

	// Event subscribers
	eventBus.Subscribe(businessMetrics)
	eventBus.Subscribe(event.NewIdempotentHandler("referral-reward",
		referralapp.NewRewardHandler(referralService), claims, idempotencyTTL, log))

	var hub *realtime.Hub
	if cfg.HTTP.WebsocketEnabled {
		hub = realtime.NewHub(
			realtime.WithLogger(log),
			realtime.WithBuffer(cfg.HTTP.WebsocketBuffer),
			realtime.WithPingInterval(cfg.HTTP.WebsocketPingTick),
			realtime.WithCheckOrigin(originChecker(cfg.HTTP.CORSAllowOrigins)),
		)
		defer hub.Close()
		eventBus.Subscribe(hub)
		if prom != nil {
			if err := prom.RegisterGauge("realtime", "clients", "Connected realtime subscribers", func() float64 {
				return float64(hub.ClientCount())
			}); err != nil {
				log.Warn("Failed to register realtime metrics", zap.Error(err))
			}
		}
	}

	if cfg.Kafka.Enabled {
		relay := event.NewKafkaRelay(event.NewKafkaWriter(cfg.Kafka, log), event.NewCodec(), log)
		defer func() {
			if err := relay.Close(); err != nil {
				log.Error("Error closing Kafka relay", zap.Error(err))
			}
		}()
		eventBus.Subscribe(relay)
		log.Info("Kafka event relay enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Scheduled maintenance
	systemHandler := handler.NewSystemHandler(cfg.App.Name, telemetry.ServiceVersion).
		AddCheck("database", func(context.Context) error { return db.Ping() })
	if redisClient != nil {
		systemHandler.AddCheck("redis", func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
	}
	if hub != nil {
		systemHandler.SetHub(hub)
	}
	if cfg.Scheduler.Enabled {
		sched := scheduler.New(cfg.Scheduler, log)
		sched.SetObserver(jobObservers)
		for _, job := range scheduler.MaintenanceJobs(cfg.Scheduler, accreditationService, predictionService) {
			if err := sched.Register(job); err != nil {
				log.Fatal("Failed to register job", zap.String("job", job.Name), zap.Error(err))
			}
		}
		if err := sched.Start(ctx); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := sched.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()
		systemHandler.SetJobRunner(sched)
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	unobserved := []string{"/health", "/metrics"}
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
		SkipPaths:   unobserved,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.Secure(middleware.DefaultSecurityConfig(cfg.App.Env)))
	engine.Use(middleware.CORS(cfg.HTTP))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if prom != nil {
		engine.Use(middleware.HTTPMetrics(prom, unobserved...))
		engine.GET("/metrics", gin.WrapH(prom.Handler()))
	}
	engine.Use(middleware.ProfilingLabels())

	engine.GET("/health", systemHandler.Health)
	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", middleware.SwaggerProtection(cfg.Swagger), ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log

	r := router.NewRouter(engine, router.WithAPIVersion("v1")).
		Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig)).
		Use(middleware.TracingAttributeInjector())
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst, 10*time.Minute)
		defer limiter.Stop()
		r.Use(middleware.RateLimit(limiter, log))
		log.Info("Rate limiting enabled",
			zap.Float64("rps", cfg.HTTP.RateLimitRPS),
			zap.Int("burst", cfg.HTTP.RateLimitBurst),
		)
	}

	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Property:      handler.NewPropertyHandler(propertyService),
		Investment:    handler.NewInvestmentHandler(investmentService),
		Liquidity:     handler.NewLiquidityHandler(liquidityService),
		Accreditation: handler.NewAccreditationHandler(accreditationService),
		Prediction:    handler.NewPredictionHandler(predictionService),
		Referral:      handler.NewReferralHandler(referralService),
		Insights:      handler.NewInsightsHandler(insightsService),
		System:        systemHandler,
	}
	if hub != nil {
		handlers.Realtime = handler.NewRealtimeHandler(hub)
	}
	router.RegisterAPI(r, handlers, middleware.RequireAdmin())
	r.Setup()
	log.Info("Routes registered", zap.Int("routes", len(r.Routes())))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err := <-serveErr:
		log.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

// migrate applies the embedded schema
func migrate(db *persistence.Database, log *zap.Logger) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.NewFromFS(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	return m.Up()
}

// originChecker accepts websocket upgrades from the configured CORS origins
func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
