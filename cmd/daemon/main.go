// @title Video Color Track API
// @version 1.0
// @description API for registering videos, running parallel color track extraction jobs and fetching the results.
// @host localhost:8080
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"videocolors/internal/config"
	"videocolors/internal/daemon"
	"videocolors/internal/decode"
	_ "videocolors/internal/docs"
	"videocolors/internal/logger"
	"videocolors/internal/tracing"
)

func main() {
	cfg, err := loadConfig()
	fatalOnErr(err, "load config")

	log, err := logger.New(cfg.LogLevel)
	fatalOnErr(err, "init logger")
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.JaegerEndpoint != "" {
		tp, err := tracing.InitTracer(ctx, cfg.JaegerEndpoint)
		if err != nil {
			log.Warn("tracing init failed, continuing without tracing", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
		}
	}

	server := daemon.NewServer(cfg, decode.NewOpener(decode.WithLogger(log)), log)
	defer server.Cleanup()

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server",
			zap.String("addr", cfg.HTTPAddr),
			zap.Int("workers", cfg.EffectiveWorkers()),
			zap.String("executor", cfg.Executor),
			zap.String("color_mode", cfg.ColorMode),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", zap.Error(err))
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("jobs did not stop in time", zap.Error(err))
	}
	log.Info("server stopped")
}

// loadConfig reads the environment, plus the YAML file named by CONFIG_FILE
// when it is set.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}
