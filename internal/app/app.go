// Package app wires configuration, stores, services and transports into one server.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SirPenguin555/Whats-That-Color/internal/cache"
	"github.com/SirPenguin555/Whats-That-Color/internal/config"
	"github.com/SirPenguin555/Whats-That-Color/internal/metrics"
	"github.com/SirPenguin555/Whats-That-Color/internal/remote"
	"github.com/SirPenguin555/Whats-That-Color/internal/repository"
	"github.com/SirPenguin555/Whats-That-Color/internal/service"
	"github.com/SirPenguin555/Whats-That-Color/internal/transport/rest"
	"github.com/SirPenguin555/Whats-That-Color/internal/transport/ws"
)

const pingTimeout = 5 * time.Second

type App struct {
	HistoryRepo   repository.HistoryRepo
	ResponseCache cache.ResponseCache
	Hub           *ws.Hub
	Registry      *prometheus.Registry

	handler     http.Handler
	mongoClient *mongo.Client
	redisClient *redis.Client
	logger      *slog.Logger
}

// New connects the configured stores and builds the HTTP handler
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &App{logger: logger}

	if err := a.connectStores(ctx, cfg); err != nil {
		a.Close(context.Background())
		return nil, err
	}

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	scoringMetrics := metrics.NewScoring(a.Registry)

	// Initialize services
	authSvc := service.NewAuthService(cfg.Auth)
	scoringSvc := service.NewScoringService(newRemoteScorer(cfg, logger), a.ResponseCache, scoringMetrics, logger)
	historySvc := service.NewHistoryService(a.HistoryRepo)
	playSvc := service.NewPlayService(scoringSvc, historySvc, logger)

	// Inject broadcaster (Hub implements service.Broadcaster)
	a.Hub = ws.NewHub(logger)
	playSvc.SetBroadcaster(a.Hub)

	a.handler = rest.NewRouter(&rest.Container{
		AuthService:    authSvc,
		PlayService:    playSvc,
		HistoryService: historySvc,
		ResponseCache:  a.ResponseCache,
		Policy:         cfg.ScoringPolicy,
		WSHub:          a.Hub,
		Metrics:        promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}),
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		Logger:         logger,
	})
	return a, nil
}

func (a *App) connectStores(ctx context.Context, cfg *config.Config) error {
	if cfg.Mongo.Enabled {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		a.mongoClient = client

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			return fmt.Errorf("ping mongo: %w", err)
		}
		db := client.Database(cfg.Mongo.Database)
		if err := repository.EnsureHistoryIndexes(ctx, db); err != nil {
			return fmt.Errorf("ensure history indexes: %w", err)
		}
		a.HistoryRepo = repository.NewHistoryRepo(db)
		a.logger.InfoContext(ctx, "connected to mongo", "database", cfg.Mongo.Database)
	} else {
		a.HistoryRepo = repository.NewMemoryHistoryRepo()
		a.logger.InfoContext(ctx, "mongo disabled, history kept in memory")
	}

	if cfg.Redis.Enabled {
		a.redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := a.redisClient.Ping(pingCtx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		a.logger.InfoContext(ctx, "connected to redis", "addr", cfg.Redis.Addr)
	}

	switch cfg.Scoring.CacheBackend {
	case config.CacheBackendRedis:
		if a.redisClient == nil {
			return errors.New("redis cache backend needs redis enabled")
		}
		a.ResponseCache = cache.NewRedisResponseCache(a.redisClient, cfg.Scoring.CacheCapacity, cfg.Scoring.CacheTTL)
	default:
		a.ResponseCache = cache.NewMemoryResponseCache(cfg.Scoring.CacheCapacity, cfg.Scoring.CacheTTL, nil)
	}
	a.logger.InfoContext(ctx, "response cache ready",
		"backend", cfg.Scoring.CacheBackend,
		"capacity", cfg.Scoring.CacheCapacity,
		"ttl", cfg.Scoring.CacheTTL)
	return nil
}

// newRemoteScorer returns nil when remote scoring is switched off
func newRemoteScorer(cfg *config.Config, logger *slog.Logger) service.RemoteScorer {
	if !cfg.Scoring.RemoteEnabled {
		logger.Info("remote scoring disabled")
		return nil
	}
	switch cfg.AI.Provider {
	case config.ProviderEndpoint:
		logger.Info("remote scoring via endpoint", "url", cfg.AI.EndpointURL)
		return remote.NewEndpointScorer(cfg.AI)
	default:
		if cfg.AI.IsEnabled() {
			logger.Info("remote scoring via gemini", "model", cfg.AI.Model)
		} else {
			logger.Info("remote scoring via gemini, no server key; callers must send one", "model", cfg.AI.Model)
		}
		return remote.NewGeminiScorer(cfg.AI)
	}
}

// Handler is the root HTTP handler
func (a *App) Handler() http.Handler {
	return a.handler
}

// Close stops the feed hub and disconnects the stores
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Hub != nil {
		a.Hub.Close()
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("disconnect mongo: %w", err))
		}
	}
	return errors.Join(errs...)
}
