package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"

	httpdelivery "github.com/Xausdorf/qr-bill-hub/internal/delivery/http"
	"github.com/Xausdorf/qr-bill-hub/internal/infrastructure/cache"
	"github.com/Xausdorf/qr-bill-hub/internal/infrastructure/config"
	"github.com/Xausdorf/qr-bill-hub/internal/infrastructure/qrbill"
	"github.com/Xausdorf/qr-bill-hub/internal/usecase/generatebill"
)

const (
	readHeaderTimeout     = 5 * time.Second
	gracefulShutdownDelay = 5 * time.Second
	logMaxSizeMB          = 100
	logMaxBackups         = 5
	logMaxAgeDays         = 28
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	format, err := cfg.RenderFormat()
	if err != nil {
		logger.Error("invalid render config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := []generatebill.Option{generatebill.WithLogger(logger)}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if pingErr := client.Ping(ctx).Err(); pingErr != nil {
			logger.Warn("redis unreachable, render cache may miss", "addr", cfg.RedisAddr, "error", pingErr)
		}
		renderCache := cache.NewRedis(client)
		defer func() { _ = renderCache.Close() }()
		opts = append(opts, generatebill.WithCache(renderCache, cfg.CacheTTL))
		logger.Info("render cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL.String())
	}

	generateBillUC := generatebill.NewUseCase(qrbill.NewGenerator(), format, opts...)

	handler := httpdelivery.NewHandler(generateBillUC, logger)
	router := httpdelivery.NewRouter(handler)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "language", string(format.Language), "dpi", format.DPI)
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", serveErr)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownDelay)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

// newLogger writes JSON logs to stdout and, when a log file is configured,
// also to a rotating file.
func newLogger(cfg *config.Config) *slog.Logger {
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
			Compress:   true,
		})
	}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	return logger
}
