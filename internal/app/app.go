package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/auth"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/config"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/domain"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/deps"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/index"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/logger"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/notify"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/redis"
	redisstore "github.com/Aditya-Goel-Compro/imp-link-manager/internal/store/redis"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	notifier    *notify.Notifier
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Workspace credentials - fail fast on a broken file
	credentials, err := auth.LoadCredentials(cfg.CredentialsFile)
	if err != nil {
		loggerClient.Errorf("Failed to load credentials: %v", err)
		os.Exit(1)
	}
	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)

	// Initialize memory index
	memIndex := index.NewMemoryIndex()

	// Initialize Redis store
	store := redisstore.NewStore(redisClient)

	// Create manual notify trigger channel (poked after mutations)
	notifyTrigger := make(chan struct{}, 1)

	// Initialize reminder notifier
	notifier := notify.NewNotifier(
		store,
		memIndex,
		loggerClient,
		cfg.NotifyInterval,
		cfg.NotifyWindow,
		notifyTrigger,
		func(r *domain.Reminder) {
			loggerClient.Info("⏰ reminder",
				logger.String("task", r.Task),
				logger.String("time_of_day", r.TimeOfDay),
				logger.String("workspace", r.Workspace.String()))
		},
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,

		Links:      store,
		Reminders:  store,
		Categories: store,

		RedisClient:   redisClient,
		MemoryIndex:   memIndex,
		Notifier:      notifier,
		NotifyTrigger: notifyTrigger,
		NotifyWindow:  cfg.NotifyWindow,

		Sessions:     sessions,
		Credentials:  credentials,
		AuthRequired: cfg.AuthRequired,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memIndex:    memIndex,
		notifier:    notifier,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting imp-link-manager v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("imp-link-manager %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start reminder notifier (initial check + periodic re-evaluation)
	if err := a.notifier.Start(ctx); err != nil {
		return fmt.Errorf("failed to start reminder notifier: %w", err)
	}
	a.logger.Info("reminder notifier started",
		logger.Duration("interval", a.cfg.NotifyInterval),
		logger.Duration("window", a.cfg.NotifyWindow))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Stop notifier
	a.notifier.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ imp-link-manager stopped cleanly")
	return nil
}
