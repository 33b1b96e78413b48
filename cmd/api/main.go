package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bryanwahyu/contentlens/internal/application"
	appanalysis "github.com/bryanwahyu/contentlens/internal/application/analysis"
	"github.com/bryanwahyu/contentlens/internal/config"
	"github.com/bryanwahyu/contentlens/internal/costs"
	domainai "github.com/bryanwahyu/contentlens/internal/domain/ai"
	"github.com/bryanwahyu/contentlens/internal/domain/analysis"
	"github.com/bryanwahyu/contentlens/internal/infra/ai/claude"
	"github.com/bryanwahyu/contentlens/internal/infra/ai/fallback"
	"github.com/bryanwahyu/contentlens/internal/infra/ai/gemini"
	openaiclient "github.com/bryanwahyu/contentlens/internal/infra/ai/openai"
	"github.com/bryanwahyu/contentlens/internal/infra/cache"
	"github.com/bryanwahyu/contentlens/internal/infra/content"
	mysqlp "github.com/bryanwahyu/contentlens/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/contentlens/internal/infra/db/postgres"
	"github.com/bryanwahyu/contentlens/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/contentlens/internal/infra/storage"
	"github.com/bryanwahyu/contentlens/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database (driver dari config)
	var repo analysis.Repository
	var dbChecker middleware.HealthChecker
	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		defer db.Close()
		repo = postgresp.NewAnalysisRepository(db)
		dbChecker = &middleware.DatabaseHealthChecker{DB: db}
	default:
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		defer db.Close()
		repo = mysqlp.NewAnalysisRepository(db)
		dbChecker = &middleware.DatabaseHealthChecker{DB: db}
	}

	// init minio (optional, untuk export)
	var exports analysis.ExportStore
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		exports = store
	}

	// init redis cache (optional)
	var resultCache cache.Cache
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("redis init error: %v", err)
		}
		defer redisCache.Close()
		resultCache = redisCache
	}

	// init providers: hanya yang punya API key yang masuk chain
	providers := map[string]domainai.Provider{}
	var order []string
	for _, name := range cfg.AI.Preference {
		var p domainai.Provider
		switch name {
		case "openai":
			if cfg.AI.OpenAI.APIKey == "" {
				continue
			}
			p = openaiclient.NewClient(openaiclient.Config{
				APIKey:          cfg.AI.OpenAI.APIKey,
				Model:           cfg.AI.OpenAI.Model,
				BaseURL:         cfg.AI.OpenAI.BaseURL,
				MaxContentChars: cfg.AI.MaxContentChars,
				MaxOutputTokens: cfg.AI.MaxOutputTokens,
				Temperature:     cfg.AI.Temperature,
			})
		case "gemini":
			if cfg.AI.Gemini.APIKey == "" {
				continue
			}
			p = gemini.NewClient(gemini.Config{
				APIKey:          cfg.AI.Gemini.APIKey,
				Model:           cfg.AI.Gemini.Model,
				BaseURL:         cfg.AI.Gemini.BaseURL,
				MaxContentChars: cfg.AI.MaxContentChars,
				MaxOutputTokens: cfg.AI.MaxOutputTokens,
				Temperature:     cfg.AI.Temperature,
			})
		case "claude":
			if cfg.AI.Claude.APIKey == "" {
				continue
			}
			p = claude.NewClient(claude.Config{
				APIKey:          cfg.AI.Claude.APIKey,
				Model:           cfg.AI.Claude.Model,
				BaseURL:         cfg.AI.Claude.BaseURL,
				MaxContentChars: cfg.AI.MaxContentChars,
				MaxOutputTokens: cfg.AI.MaxOutputTokens,
				Temperature:     cfg.AI.Temperature,
			})
		default:
			log.Printf("unknown provider in preference, skipping: %s", name)
			continue
		}
		providers[name] = p
		order = append(order, name)
	}
	if len(order) == 0 {
		log.Println("no AI providers configured, analyses will use the deterministic fallback")
	}

	// init service
	svc := &appanalysis.Service{
		Providers:       providers,
		Order:           order,
		Fallback:        fallback.New(),
		Costs:           costs.New(cfg.CostWindow(), cfg.Costs.Limits),
		Repo:            repo,
		Cache:           resultCache,
		Exports:         exports,
		Clock:           application.SystemClock{},
		RetryAttempts:   cfg.AI.RetryAttempts,
		RetryDelay:      cfg.RetryDelay(),
		CallTimeout:     cfg.RequestTimeout(),
		MaxContentChars: cfg.AI.MaxContentChars,
		CacheTTL:        cfg.CacheTTL(),
	}

	fetcher := content.NewFetcher(cfg.RequestTimeout())

	// health checkers
	checkers := map[string]middleware.HealthChecker{
		"database": dbChecker,
	}
	if redisCache != nil {
		checkers["redis"] = middleware.CheckFunc(redisCache.Ping)
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if cfg.Server.RateLimit.Enabled {
		mux.Use(middleware.RateLimitMiddleware(cfg.Server.RateLimit.Capacity, cfg.Server.RateLimit.RefillRate))
	}
	if len(cfg.Server.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Server.APIKeys))
	}

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(svc, fetcher))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
