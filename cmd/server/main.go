package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	documentapp "github.com/freightdocs/backend/internal/application/document"
	identityapp "github.com/freightdocs/backend/internal/application/identity"
	"github.com/freightdocs/backend/internal/infrastructure/auth"
	"github.com/freightdocs/backend/internal/infrastructure/cache"
	"github.com/freightdocs/backend/internal/infrastructure/config"
	"github.com/freightdocs/backend/internal/infrastructure/logger"
	"github.com/freightdocs/backend/internal/infrastructure/persistence"
	"github.com/freightdocs/backend/internal/infrastructure/printing"
	"github.com/freightdocs/backend/internal/infrastructure/storage"
	"github.com/freightdocs/backend/internal/infrastructure/telemetry"
	"github.com/freightdocs/backend/internal/interfaces/http/handler"
	"github.com/freightdocs/backend/internal/interfaces/http/middleware"
	"github.com/freightdocs/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// Telemetry starts before the final logger so log export can be teed in
	tel, err := telemetry.Setup(context.Background(), cfg.Telemetry, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			bootLog.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	log, err := logger.New(logCfg, logger.WithCore(
		telemetry.NewZapOTELCore(cfg.Telemetry.ServiceName, tel.Logs, logger.ParseLevel(cfg.Log.Level)),
	))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting freight documents backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), 200*time.Millisecond)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterGormTracing(db.DB, cfg.Telemetry, log); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	if cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite database", zap.Error(err))
		}
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	// Repositories
	fileRepo := persistence.NewGormUploadedFileRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Storage: object storage when enabled, local directory always
	local, err := storage.NewLocalStorage(&storage.LocalStorageConfig{
		BasePath: cfg.Storage.LocalDir,
		Logger:   log,
	})
	if err != nil {
		log.Fatal("Failed to initialize local storage", zap.Error(err))
	}
	var primary storage.ObjectStore
	var s3Store *storage.S3ObjectStorage
	if cfg.Storage.Enabled {
		s3Store, err = storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Store.EnsureBucket(ctx); err != nil {
			log.Warn("Object storage bucket check failed, uploads will fall back to local storage", zap.Error(err))
		}
		cancel()
		log.Info("Object storage enabled", zap.String("bucket", s3Store.Bucket()))
		primary = s3Store
	} else {
		log.Info("Object storage disabled, using local storage only", zap.String("dir", local.BasePath()))
	}
	blobs := storage.NewFallbackStore(primary, local, log)

	// Asset preferences
	assetStore, err := cache.NewAssetStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).CreateStore()
	if err != nil {
		log.Fatal("Failed to initialize asset preference store", zap.Error(err))
	}
	defer func() {
		if err := assetStore.Close(); err != nil {
			log.Error("Error closing asset preference store", zap.Error(err))
		}
	}()

	// Templates and rasterizer
	templates, err := printing.NewTemplateStore(&printing.TemplateStoreConfig{
		ExternalDir: cfg.Printing.TemplateDir,
		CacheSize:   cfg.Printing.TemplateCache,
		Logger:      log,
	})
	if err != nil {
		log.Fatal("Failed to load templates", zap.Error(err))
	}
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if cfg.Printing.WatchTemplates {
		go func() {
			if err := templates.Watch(watchCtx); err != nil {
				log.Error("Template watcher stopped", zap.Error(err))
			}
		}()
	}

	baseURL := cfg.Storage.PublicURL
	if baseURL == "" {
		baseURL = "http://127.0.0.1:" + cfg.App.Port + "/"
	}
	rasterizer, err := printing.NewChromedpRasterizer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.Printing.Timeout,
		RemoteURL:      cfg.Printing.ChromeURL,
		Headless:       cfg.Printing.Headless,
		DisableGPU:     cfg.Printing.DisableGPU,
		NoSandbox:      cfg.Printing.NoSandbox,
		BaseURL:        baseURL,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize rasterizer", zap.Error(err))
	}
	defer func() {
		if err := rasterizer.Close(); err != nil {
			log.Error("Error closing rasterizer", zap.Error(err))
		}
	}()

	// Application services
	renderService := documentapp.NewRenderService(templates, assetStore, log)
	uploadService := documentapp.NewUploadService(blobs, fileRepo, log)
	batchService := documentapp.NewBatchService(renderService, rasterizer, uploadService, log,
		documentapp.WithDocumentDelay(cfg.Batch.DocumentDelay))
	registryService := documentapp.NewRegistryService(fileRepo)
	downloadService, err := documentapp.NewDownloadService(blobs, cfg.Storage.DownloadCacheEntries, log,
		documentapp.WithUploadRecords(fileRepo))
	if err != nil {
		log.Fatal("Failed to initialize download service", zap.Error(err))
	}
	assetService := documentapp.NewAssetService(blobs, assetStore, documentapp.AssetServiceConfig{
		MaxWidth: cfg.Assets.MaxWidth,
		MaxBytes: cfg.Assets.MaxBytes,
	}, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)

	// HTTP handlers
	documentHandler := handler.NewDocumentHandler(handler.DocumentServices{
		Render:   renderService,
		Upload:   uploadService,
		Batch:    batchService,
		Registry: registryService,
		Download: downloadService,
	})
	assetHandler := handler.NewAssetHandler(assetService)
	authHandler := handler.NewAuthHandler(authService)

	checks := map[string]handler.Pinger{
		"database": func(context.Context) error { return db.Ping() },
	}
	if s3Store != nil {
		checks["storage"] = s3Store.Ping
	}
	if redisStore, ok := assetStore.(*cache.RedisAssetStore); ok {
		checks["redis"] = redisStore.Ping
	}
	healthHandler := handler.NewHealthHandler(version, checks)

	// Set Gin mode based on environment
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

	// RequestID must run first; later layers read it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
	engine.Use(middleware.SpanEnricher())
	engine.Use(middleware.HTTPMetrics(tel.Meter, log))
	engine.Use(middleware.Profiling(tel.Profiler))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Unversioned endpoints
	engine.GET("/health", healthHandler.Live)
	engine.GET("/health/ready", healthHandler.Ready)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/upload/:name", documentHandler.ServePublic)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/register", authHandler.Register)

	// Render and batch requests drive the browser; they share one quota
	var renderLimit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.HTTP.RenderRateLimit > 0 {
		renderLimit = middleware.RateLimit(middleware.NewRateLimiter(cfg.HTTP.RenderRateLimit, cfg.HTTP.RenderRateWindow))
	}

	documentRoutes := router.NewDomainGroup("documents", "/documents")
	documentRoutes.GET("", documentHandler.List)
	documentRoutes.POST("/render", renderLimit, documentHandler.Render)
	documentRoutes.POST("/upload", documentHandler.Upload)
	documentRoutes.POST("/batches", renderLimit, documentHandler.SubmitBatch)
	documentRoutes.GET("/download", documentHandler.Download)

	assetRoutes := router.NewDomainGroup("assets", "/assets")
	assetRoutes.GET("", assetHandler.Current)
	assetRoutes.POST("", assetHandler.Upload)

	r.Register(authRoutes).
		Register(documentRoutes).
		Register(assetRoutes).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
