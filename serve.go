package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"primeadapt/internal/handler"
	"primeadapt/internal/widget"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve wizard sessions over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		h := handler.New(handler.Options{
			Config:  cfg,
			Logger:  logger,
			Context: ctx,
			Deps:    widget.Deps{Analytics: widget.LogAnalytics{Logger: logger}},
		})
		server := &fasthttp.Server{
			Handler:      h.Handle,
			Name:         "primeadapt",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}

		errc := make(chan error, 1)
		go func() {
			logger.Warn("primeadapt starting", zap.String("listen", cfg.Listen))
			errc <- server.ListenAndServe(cfg.Listen)
		}()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.ShutdownWithContext(shutdownCtx)
	},
}
