package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/agentforge/agentforge/src/app"
	"github.com/agentforge/agentforge/src/server"
	"github.com/alecthomas/kong"
)

// ServeCmd starts the HTTP ingress.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)"`
}

// Run executes the serve command
func (c *ServeCmd) Run(ctx *kong.Context, cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Addr = c.Addr
	}

	logger := newLogger(cfg.Logging)

	appInstance, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer appInstance.Close()

	srv := server.NewServer(server.Config{
		Model:          appInstance.Model,
		Service:        appInstance.Service,
		Store:          appInstance.Store,
		Pricing:        appInstance.Pricing,
		Toolbox:        appInstance.NewToolbox,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		Logger:         logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr, "model", cfg.Model.Name)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-runCtx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
