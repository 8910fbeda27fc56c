package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/ArtSentry/StyleGate/pkg/app/auditlog"
	"github.com/ArtSentry/StyleGate/pkg/app/evaluator"
	"github.com/ArtSentry/StyleGate/pkg/app/fingerprint"
	"github.com/ArtSentry/StyleGate/pkg/app/orchestrator"
	"github.com/ArtSentry/StyleGate/pkg/app/registry"
	"github.com/ArtSentry/StyleGate/pkg/app/styles"
	"github.com/ArtSentry/StyleGate/pkg/app/thresholds"
	"github.com/ArtSentry/StyleGate/pkg/config"
	"github.com/ArtSentry/StyleGate/pkg/handlers/http"
	"github.com/ArtSentry/StyleGate/pkg/infra/backend"
	"github.com/ArtSentry/StyleGate/pkg/infra/database"
	infraEmbedding "github.com/ArtSentry/StyleGate/pkg/infra/embedding"
	"github.com/ArtSentry/StyleGate/pkg/infra/events"
	"github.com/ArtSentry/StyleGate/pkg/infra/httpx"
	"github.com/ArtSentry/StyleGate/pkg/infra/logger"
	"github.com/ArtSentry/StyleGate/pkg/infra/oracle"
	infraRepo "github.com/ArtSentry/StyleGate/pkg/infra/repository"
	"github.com/ArtSentry/StyleGate/pkg/server"
	"github.com/ArtSentry/StyleGate/pkg/server/router"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logr := logger.NewLogger()

	if err := config.Load("./config"); err != nil {
		logr.WithError(err).Fatal("failed to load config")
	}
	cfg := config.GetConfig()

	db, err := database.NewDB(logr, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logr.WithError(err).Fatal("failed to initialize database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logr.WithError(err).Fatal("failed to run migrations")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	styleRepo := infraRepo.NewStyleRepository(db.DB)
	auditRepo := infraRepo.NewAuditRepository(db.DB)

	scoreClient := oracle.NewHTTPScoreClient(
		nil,
		logr,
		httpx.NewCircuitBreaker("score-oracle", 30*time.Second, 5),
		oracle.Credentials{BaseURL: cfg.Oracles.Score.BaseURL, Token: cfg.Oracles.Score.Token},
	)
	visionClient := oracle.NewFastHTTPVisionClient(
		nil,
		logr,
		httpx.NewCircuitBreaker("vision-oracle", 30*time.Second, 5),
		oracle.Credentials{BaseURL: cfg.Oracles.Vision.BaseURL, Token: cfg.Oracles.Vision.Token},
	)
	embedder := infraEmbedding.NewImageEmbeddingService(nil, logr, infraEmbedding.Config{
		BaseURL: cfg.Oracles.Embedding.BaseURL,
		Token:   cfg.Oracles.Embedding.Token,
	})
	backendClient := backend.NewHTTPClient(
		nil,
		logr,
		httpx.NewCircuitBreaker("generative-backend", 30*time.Second, 5),
		cfg.Backend.BaseURL,
	)

	eval := evaluator.NewEvaluator(evaluator.Thresholds{
		Version: 1,
		Values:  cfg.Thresholds,
	})

	registryCache := registry.NewCache(logr, styleRepo, time.Duration(cfg.Registry.RefreshIntervalMS)*time.Millisecond)

	fingerprinter := fingerprint.NewFingerprinter(logr, visionClient, embedder, eval)

	auditWriter := auditlog.NewWriter(logr, auditRepo, auditlog.Config{
		BufferSize:    cfg.Audit.BufferSize,
		WriteTimeout:  time.Duration(cfg.Audit.WriteTimeoutMS) * time.Millisecond,
		RetryBase:     time.Duration(cfg.Audit.RetryBaseMS) * time.Millisecond,
		RetryCap:      time.Duration(cfg.Audit.RetryCapMS) * time.Millisecond,
		MaxAttempts:   cfg.Audit.MaxAttempts,
		RetentionDays: cfg.Audit.RetentionDays,
	})

	orch := orchestrator.NewOrchestrator(
		logr,
		scoreClient,
		backendClient,
		fingerprinter,
		eval,
		registryCache,
		auditWriter,
		orchestrator.Timeouts{
			Gate1:   time.Duration(cfg.Gates.Gate1TimeoutMS) * time.Millisecond,
			Backend: time.Duration(cfg.Backend.TimeoutMS) * time.Millisecond,
			Gate2:   time.Duration(cfg.Gates.Gate2BudgetMS) * time.Millisecond,
		},
	)

	publisher := events.NewRedisPublisher(redisClient)
	styleService := styles.NewService(logr, styleRepo, publisher)
	thresholdService := thresholds.NewService(logr, eval, publisher)

	listener := events.NewListener(logr, redisClient)
	listener.Register(events.TypeThresholdsUpdated, func(ctx context.Context, payload json.RawMessage) {
		var evt events.ThresholdsUpdatedEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			logr.WithError(err).Error("invalid thresholds update event")
			return
		}
		if eval.Swap(evaluator.Thresholds{Version: evt.Version, Values: evt.Thresholds}) {
			logr.WithField("version", evt.Version).Info("thresholds swapped from peer update")
		}
	})
	listener.Register(events.TypeRegistryChanged, func(ctx context.Context, payload json.RawMessage) {
		_ = registryCache.Refresh(ctx)
	})

	transport := &http.HandlerTransport{
		InterceptHandler:          http.NewInterceptHandler(logr, orch),
		RegisterStyleHandler:      http.NewRegisterStyleHandler(logr, styleService),
		GetStyleHandler:           http.NewGetStyleHandler(logr, styleService),
		AppendStyleSamplesHandler: http.NewAppendStyleSamplesHandler(logr, styleService),
		SuspendStyleHandler:       http.NewSuspendStyleHandler(logr, styleService),
		GetThresholdsHandler:      http.NewGetThresholdsHandler(logr, thresholdService),
		UpdateThresholdsHandler:   http.NewUpdateThresholdsHandler(logr, thresholdService),
		GetAuditRecordHandler:     http.NewGetAuditRecordHandler(logr, auditRepo),
		ListAuditRecordsHandler:   http.NewListAuditRecordsHandler(logr, auditRepo),
	}

	proxySrv := server.NewProxyServer(server.ProxyServerDI{
		Config:  cfg,
		Logger:  logr,
		Routers: []router.ServerRouter{router.NewProxyRouter(transport)},
	})
	adminSrv := server.NewAdminServer(server.AdminServerDI{
		Config:  cfg,
		Logger:  logr,
		Routers: []router.ServerRouter{router.NewAdminRouter(transport)},
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error { return proxySrv.Run() })
	group.Go(func() error { return adminSrv.Run() })
	group.Go(func() error {
		registryCache.Run(groupCtx)
		return nil
	})
	group.Go(func() error {
		auditWriter.RunRetryLoop(groupCtx)
		return nil
	})
	group.Go(func() error {
		listener.Listen(groupCtx)
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logr.Info("shutting down")
		if err := proxySrv.Shutdown(); err != nil {
			logr.WithError(err).Error("proxy shutdown failed")
		}
		if err := adminSrv.Shutdown(); err != nil {
			logr.WithError(err).Error("admin shutdown failed")
		}
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer flushCancel()
		auditWriter.Flush(flushCtx)
		return nil
	})

	if err := group.Wait(); err != nil {
		logr.WithError(err).Error("gateway stopped")
	}
}
