package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/config"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/consumer"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/device"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/models"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/repository"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/routes"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/services"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/pkg/logger"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/pkg/metrics"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/pkg/retry"
	"github.com/go-redis/redis/v8"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logr := logger.New(cfg.LogLevel, cfg.LogFormat)
	logr.Info("starting push demo",
		slog.String("app", cfg.AppName),
		slog.String("platform", cfg.DevicePlatform),
		slog.Bool("physical_device", cfg.IsPhysicalDevice),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Error("push demo exited", slog.Any("error", err))
		os.Exit(1)
	}
	logr.Info("push demo stopped")
}

func run(ctx context.Context, cfg *config.Config, logr *slog.Logger) error {
	build, err := config.LoadBuildConfig(cfg.BuildConfigPath)
	if err != nil {
		return err
	}
	build.WithFallbackProjectID(cfg.ProjectID)

	installationID, err := device.InstallationID(cfg.InstallationID)
	if err != nil {
		return err
	}
	logr.Info("device installation", slog.String("installation_id", installationID))

	connectCfg := retry.Config{
		MaxAttempts:    cfg.ConnectMaxAttempts,
		InitialBackoff: cfg.ConnectInitialBackoff,
		MaxBackoff:     cfg.ConnectMaxBackoff,
		JitterFactor:   0.2,
		OnRetry: func(attempt int, err error, wait time.Duration) {
			logr.Warn("connection attempt failed", slog.Int("attempt", attempt), slog.Duration("wait", wait), slog.Any("error", err))
		},
	}

	var grants device.GrantStore = device.NewMemoryGrants()
	if cfg.DatabaseURL != "" {
		store, err := openPermissionStore(ctx, cfg, connectCfg)
		if err != nil {
			return err
		}
		grants = store
	}

	var registry device.Registry = device.NewMemoryRegistry()
	if cfg.RedisURL != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		if err := retry.Do(ctx, connectCfg, func() error { return rdb.Ping(ctx).Err() }); err != nil {
			_ = rdb.Close()
			return fmt.Errorf("connect redis: %w", err)
		}
		tokenRegistry := repository.NewTokenRegistry(rdb, cfg.TokenTTL)
		defer tokenRegistry.Close()
		registry = tokenRegistry
	}

	listeners := consumer.NewListeners()
	if cfg.RabbitURL != "" {
		var conn *amqp.Connection
		err := retry.Do(ctx, connectCfg, func() error {
			var dialErr error
			conn, dialErr = amqp.Dial(cfg.RabbitURL)
			return dialErr
		})
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		defer conn.Close()

		events := consumer.NewEventConsumer(conn, cfg.EventQueue, installationID, listeners, logr)
		go func() {
			if err := events.Start(ctx); err != nil {
				logr.Error("event consumer exited", slog.Any("error", err))
			}
		}()
	}

	prompter, err := device.NewPrompter(cfg.PermissionPrompt, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	console := device.NewConsole(os.Stdout, logr)
	metricsCollector := metrics.New()

	client := services.NewNotificationClient(
		services.Capabilities{
			Device:      device.NewInfo(cfg.DevicePlatform, cfg.IsPhysicalDevice),
			Permissions: device.NewPermissionManager(grants, prompter, installationID, cfg.AppName, logr),
			Tokens:      device.NewIssuer(registry, installationID, logr),
			Channels:    device.NewChannels(logr),
			Events:      listeners,
			UI:          console,
			Presenter:   console,
		},
		services.NewRelaySender(cfg.RelayEndpoint, cfg.RelayTimeout, logr),
		build,
		models.HandlerConfig{
			ShouldShowAlert: cfg.ShowAlert,
			ShouldPlaySound: cfg.PlaySound,
			ShouldSetBadge:  cfg.SetBadge,
		},
		metricsCollector,
		logr,
	)
	if err := client.Mount(ctx); err != nil {
		return err
	}
	defer client.Unmount()

	httpSrv := startHTTPServer(cfg.HTTPPort, client, metricsCollector, logr, time.Now())
	<-ctx.Done()
	shutdownHTTP(httpSrv, logr)
	return nil
}

func openPermissionStore(ctx context.Context, cfg *config.Config, connectCfg retry.Config) (*repository.PermissionStore, error) {
	var db *gorm.DB
	err := retry.Do(ctx, connectCfg, func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		return openErr
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	store := repository.NewPermissionStore(db, cfg.PermissionTable)
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate permission table: %w", err)
	}
	return store, nil
}

func startHTTPServer(port string, screen routes.Screen, metricsCollector *metrics.Metrics, logr *slog.Logger, started time.Time) *http.Server {
	if port == "" {
		port = "8083"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: routes.NewRouter(screen, metricsCollector, started),
	}
	go func() {
		logr.Info("screen available", slog.String("addr", "http://localhost:"+port+"/"))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Error("http server error", slog.Any("error", err))
		}
	}()
	return srv
}

func shutdownHTTP(srv *http.Server, logr *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("failed to shutdown http server", slog.Any("error", err))
	}
}
