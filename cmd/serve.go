package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smsflt/sms-filter/internal/cache"
	"github.com/smsflt/sms-filter/internal/classifier"
	"github.com/smsflt/sms-filter/internal/config"
	"github.com/smsflt/sms-filter/internal/db"
	httpSrv "github.com/smsflt/sms-filter/internal/http"
	"github.com/smsflt/sms-filter/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger.Init(cfg.Log.Level)
		defer logger.Sync()

		// Model load failure aborts startup; no degraded serving.
		clf, err := classifier.LoadLinear(cfg.Model.Path)
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}
		logger.Log.Info("model loaded", zap.String("path", cfg.Model.Path))

		sqliteDB, err := db.NewSQLiteConnection(cfg.SQLite.Path, db.SQLiteOpts{
			BusyTimeout: cfg.SQLite.BusyTimeout,
			PingTimeout: cfg.SQLite.PingTimeout,
		})
		if err != nil {
			return fmt.Errorf("sqlite open: %w", err)
		}
		defer sqliteDB.Close()

		var redisClient *redis.Client
		if cfg.Redis.Addr != "" {
			redisClient, err = cache.Dial(cache.RedisOpts{
				Addr:        cfg.Redis.Addr,
				Password:    cfg.Redis.Password,
				DB:          cfg.Redis.DB,
				DialTimeout: cfg.Redis.DialTimeout,
			})
			if err != nil {
				return fmt.Errorf("redis connect: %w", err)
			}
			defer func() { _ = redisClient.Close() }()
		}

		server := httpSrv.NewServer(cfg, sqliteDB, redisClient, clf)

		errCh := make(chan error, 1)
		go func() {
			logger.Log.Info("starting http", zap.String("addr", cfg.HTTP.Addr))
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			logger.Log.Info("signal received, shutting down", zap.String("signal", sig.String()))
		case err := <-errCh:
			if err != nil {
				logger.Log.Error("http server exited", zap.Error(err))
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)

		return nil
	},
}
