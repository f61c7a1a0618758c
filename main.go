package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"remotebrowse/config"
	"remotebrowse/core"
	"remotebrowse/web"
)

func main() {
	configPath := pflag.String("config", "config.toml", "Path to endpoint config file")
	listen := pflag.String("listen", "", "Listen address (overrides config)")
	pflag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := config.LoadStore(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	settings := store.Settings()

	reloader := core.NewReloader(store, logger)
	if err := reloader.Start(settings.ReloadCron); err != nil {
		logger.Fatal("failed to schedule config reload", zap.Error(err))
	}

	browser := core.NewBrowser(store, settings.ConnectTimeout(), logger)
	server := web.NewServer(store, browser, logger)

	addr := settings.Listen
	if *listen != "" {
		addr = *listen
	}
	if addr == "" {
		addr = ":8080"
	}

	httpServer := &http.Server{Addr: addr, Handler: server.Handler()}
	go func() {
		logger.Info("remotebrowse listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	reloader.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httpServer.Shutdown(ctx)
}
