package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/swaggo/swag"
	"go.uber.org/zap"

	_ "github.com/draftkit/valuation-api/docs"
	"github.com/draftkit/valuation-api/internal/cache"
	"github.com/draftkit/valuation-api/internal/config"
	"github.com/draftkit/valuation-api/internal/dynasty"
	"github.com/draftkit/valuation-api/internal/handlers"
	"github.com/draftkit/valuation-api/internal/logic"
	"github.com/draftkit/valuation-api/internal/sources"
	"github.com/draftkit/valuation-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Cache store: Redis when configured, in-process otherwise
	var (
		store       cache.Store
		memStore    *cache.MemoryStore
		redisClient *redis.Client
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			sugar.Fatalw("Invalid REDIS_URL", "error", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			sugar.Warnw("Redis not reachable at startup", "error", err)
		}
		store = cache.NewRedisStore(redisClient, "draftkit:")
	} else {
		memStore = cache.NewMemoryStore()
		store = memStore
	}
	memo := cache.NewMemo(store, logger).WithFetchTimeout(cfg.FetchTimeout)

	// Default projection tables: Postgres when configured, CSV directory otherwise
	var (
		defaults sources.ProjectionSource
		pgPool   *pgxpool.Pool
	)
	if cfg.PostgresURL != "" {
		pgPool, err = pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			sugar.Fatalw("Failed to create Postgres pool", "error", err)
		}
		defer pgPool.Close()
		defaults = sources.NewPostgresProjections(pgPool, cfg.ProjectionSeason)
	} else {
		defaults = sources.NewDirProjections(cfg.DataDir)
	}

	// Dynasty sources
	league := sources.NewCachedLeague(
		sources.NewSleeperClient(sources.SleeperConfig{
			BaseURL: cfg.SleeperBaseURL,
			Timeout: cfg.FetchTimeout,
		}),
		memo, cfg.PlayersCacheTTL, cfg.LeagueCacheTTL,
	)
	market := sources.NewCachedMarket(
		sources.NewMarketSheetClient(sources.MarketSheetConfig{
			DefaultSheet: cfg.MarketSheetURL,
			DefaultTab:   cfg.MarketSheetTab,
			Timeout:      cfg.FetchTimeout,
		}),
		memo, cfg.MarketCacheTTL,
	)
	dynastySvc := dynasty.NewService(dynasty.ServiceConfig{
		League:      league,
		Market:      market,
		Logger:      logger,
		FuzzyCutoff: cfg.FuzzyCutoff,
		Seasons:     cfg.PickSeasons,
		Rounds:      cfg.PickRounds,
	})

	sessions := handlers.NewSessionStore(cfg.SessionTTL)

	// Refresh pool
	schedule := worker.NewSchedule(cfg.MaxTrackedJobs)
	tracker := worker.NewTracker(schedule, league, market, logger)
	schedule.Register("sessions:sweep", func(ctx context.Context) error {
		if n := sessions.Sweep(); n > 0 {
			sugar.Infow("Expired sessions removed", "count", n)
		}
		return nil
	})
	if memStore != nil {
		schedule.Register("cache:sweep", func(ctx context.Context) error {
			memStore.Sweep()
			return nil
		})
	}
	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount: cfg.WorkerCount,
		QueueSize:   cfg.QueueSize,
		Interval:    cfg.RefreshInterval,
		JobTimeout:  cfg.FetchTimeout,
		Schedule:    schedule,
		Logger:      logger,
	})
	pool.Start(ctx)

	engine := logic.NewEngine(logic.EngineConfig{
		LeagueSize:              cfg.LeagueSize,
		IncludeZeroPointPlayers: cfg.IncludeZeroPointPlayers,
		Logger:                  logger,
	})

	hcfg := handlers.Config{
		Refresh:     pool,
		Logger:      logger,
		Valuation:   engine,
		Dynasty:     dynastySvc,
		Tracker:     tracker,
		Defaults:    defaults,
		Sessions:    sessions,
		HeadCount:   cfg.HeadCount,
		MarketSheet: cfg.MarketSheetURL,
		MarketTab:   cfg.MarketSheetTab,
	}
	if redisClient != nil {
		hcfg.Redis = redisClient
	}
	if pgPool != nil {
		hcfg.Postgres = pgPool
	}
	h := handlers.New(hcfg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	})
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		h.Routes(r)
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		sugar.Infow("API listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Shutdown error", "error", err)
	}
	pool.Stop()
}

// requestLogger logs one line per request with the chi request id.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	sugar := logger.Sugar()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			sugar.Infow("Request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"requestID", middleware.GetReqID(r.Context()),
			)
		})
	}
}
