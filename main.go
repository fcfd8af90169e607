package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitea.kood.tech/petrkubec/travel-buddy/config"
	"gitea.kood.tech/petrkubec/travel-buddy/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(&cfg.Logging)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	// Cancelled on shutdown; every live session watches it.
	base, stop := context.WithCancel(context.Background())
	defer stop()

	a, err := newApp(base, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize application")
	}
	defer a.close()

	srv := &http.Server{
		Addr:           cfg.Server.Addr(),
		Handler:        a.routes(base),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.WithField("addr", srv.Addr).Info("Starting Travel Buddy backend")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("server error")
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logger.Info("Shutting down server...")

	// Hijacked websocket connections are not tracked by Shutdown, so close them first.
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("server shutdown failed")
	}
	logger.Info("Server stopped")
}
