// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal module packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"voteguard/internal/advisory"
	advisoryHandler "voteguard/internal/advisory/handler"
	"voteguard/internal/audit"
	auditHandler "voteguard/internal/audit/handler"
	conflictHandler "voteguard/internal/conflict/handler"
	"voteguard/internal/extraction"
	"voteguard/internal/jwttoken"
	"voteguard/internal/platform/config"
	"voteguard/internal/platform/httpserver"
	"voteguard/internal/platform/logger"
	platformMetrics "voteguard/internal/platform/metrics"
	platformredis "voteguard/internal/platform/redis"
	"voteguard/internal/resolution"
	resolutionHandler "voteguard/internal/resolution/handler"
	resolutionMetrics "voteguard/internal/resolution/metrics"
	"voteguard/internal/roll"
	rollHandler "voteguard/internal/roll/handler"
	httptransport "voteguard/internal/transport/http"
	"voteguard/pkg/platform/retry"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize record store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// Audit trail: synchronous memory store, optional Kafka mirror.
	auditStore := audit.NewInMemoryStore()
	var mirror chan audit.Entry
	var publisher *audit.KafkaPublisher
	if len(cfg.KafkaBrokers) > 0 {
		mirror = make(chan audit.Entry, 256)
		publisher, err = audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaAuditTopic, mirror, log)
		if err != nil {
			log.Error("failed to connect audit publisher", "error", err)
			os.Exit(1)
		}
	}
	auditLog := audit.NewLog(auditStore, mirror, log)

	// Advisory cache rides Redis when configured.
	advisoryCache := advisory.Cache(advisory.NoopCache{})
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		advisoryCache = advisory.NewRedisCache(redisClient.Client)
	}

	policy := retry.DefaultPolicy()
	advisorySvc := advisory.NewService(advisory.Unconfigured{}, advisoryCache, policy, log)
	extractionSvc := extraction.NewService(extraction.Unconfigured{}, policy, log)

	resolutionSvc := resolution.NewService(store, auditLog, resolutionMetrics.New(), log)
	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)

	router := httptransport.NewRouter(httptransport.Dependencies{
		Roll:         rollHandler.New(store, log),
		Conflict:     conflictHandler.New(store, log),
		Advisory:     advisoryHandler.New(store, advisorySvc, log),
		Resolution:   resolutionHandler.New(resolutionSvc, extractionSvc, log),
		Audit:        auditHandler.New(auditLog, log),
		JWTValidator: jwtService,
		Metrics:      platformMetrics.New(),
		Logger:       log,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting voteguard", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if publisher != nil {
		g.Go(func() error {
			if err := publisher.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

// buildStore selects the Postgres store when a database is configured and
// seeds the in-memory roster otherwise. Either way the roster is never empty.
func buildStore(ctx context.Context, cfg config.Server) (roll.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		store := roll.NewInMemoryStore()
		if err := roll.SeedStore(ctx, store); err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	store := roll.NewPostgres(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	count, err := store.Count(ctx)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	if count == 0 {
		if err := roll.SeedStore(ctx, store); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	return store, pool.Close, nil
}
