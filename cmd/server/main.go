package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/lostfound/internal/auth"
	"github.com/mmynk/lostfound/internal/config"
	"github.com/mmynk/lostfound/internal/inference"
	"github.com/mmynk/lostfound/internal/middleware"
	"github.com/mmynk/lostfound/internal/realtime"
	"github.com/mmynk/lostfound/internal/server"
	"github.com/mmynk/lostfound/internal/service"
	"github.com/mmynk/lostfound/internal/storage/sqlite"
	"github.com/mmynk/lostfound/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	closer := logging.SetupWithOptions(logging.Options{
		Level: logging.ParseLevel(cfg.Log.Level),
		File: logging.FileOptions{
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
		},
	})
	defer closer.Close()
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := service.SeedBadges(ctx, store); err != nil {
		return err
	}
	logger.Info("Storage initialized", "database", cfg.Database.Path)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	hub := realtime.NewHub(realtime.HubOptions{
		Buffer:  cfg.Realtime.SubscriberBuffer,
		Metrics: realtime.NewMetrics(reg),
		Logger:  logger.With("component", "hub"),
	})
	defer hub.Close()

	if kc := cfg.Realtime.Kafka; len(kc.Brokers) > 0 {
		relay, err := realtime.NewKafkaRelay(hub, realtime.KafkaRelayParams{
			Brokers: kc.Brokers,
			Topic:   kc.Topic,
			GroupID: kc.GroupID,
		})
		if err != nil {
			return err
		}
		relay.Start(ctx)
		defer relay.Close()
		logger.Info("Kafka relay started", "brokers", kc.Brokers, "topic", kc.Topic, "origin", hub.Origin())
	}

	ai := inference.New(inference.Options{
		BaseURL: cfg.Inference.BaseURL,
		APIKey:  cfg.Inference.APIKey,
		Timeout: cfg.Inference.Timeout,
	})
	if !ai.Enabled() {
		logger.Warn("Inference endpoint not configured, using local fallbacks")
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	realtimeService := service.NewRealtimeService(store, hub, logger)
	handler := server.New(server.Services{
		Auth:          service.NewAuthService(authenticator, jwtManager, store, logger),
		Profile:       service.NewProfileService(store, authenticator, ai, hub, logger),
		Items:         service.NewItemService(store, ai, hub, logger),
		Claims:        service.NewClaimService(store, hub, logger),
		Chat:          service.NewChatService(store, hub, logger),
		Notifications: service.NewNotificationService(store, hub, logger),
		Rewards:       service.NewRewardService(store, hub, logger),
		Backups:       service.NewBackupService(store, cfg.Backup.MaxBytes, logger),
		Realtime:      realtimeService,
	}, server.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Gatherer:       reg,
		JWT:            jwtManager,
		Accounts:       service.AccountExists(store),
		Logger:         logger,
		HandlerOptions: []connect.HandlerOption{connect.WithInterceptors(
			middleware.NewMetricsInterceptor(reg),
			middleware.NewAuthInterceptor(jwtManager, logger, service.PublicProcedures()...).WithAccountCheck(service.AccountExists(store)),
			middleware.NewLoggingInterceptor(logger),
		)},
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect streaming)
	srv := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}
	// Streams never go idle on their own.
	srv.RegisterOnShutdown(realtimeService.Shutdown)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", cfg.Server.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
