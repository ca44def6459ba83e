package app

import (
	"context"
	"fmt"
	stdhttp "net/http"

	"github.com/rs/zerolog"

	"github.com/yusufemrebilgin/multithreaded-chat-room/internal/chat"
	"github.com/yusufemrebilgin/multithreaded-chat-room/internal/config"
	"github.com/yusufemrebilgin/multithreaded-chat-room/internal/transport/tcp"
	"github.com/yusufemrebilgin/multithreaded-chat-room/internal/transport/ws"
)

// App wires together the core hub and the transport layers. All shared
// singletons are constructed here explicitly and passed down by reference.
type App struct {
	cfg config.Config
	log *zerolog.Logger

	hub  *chat.Hub
	tcp  *tcp.Server
	http *stdhttp.Server
}

// New constructs the application with the provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	hub := chat.NewHub(*logger, chat.HubConfig{
		CommandPrefix: cfg.CommandPrefix,
		SystemPrefix:  cfg.SystemPrefix,
		SweepInterval: cfg.SweepInterval,
	})

	a := &App{
		cfg: cfg,
		log: logger,
		hub: hub,
		tcp: tcp.NewServer(cfg.Addr, cfg.PoolSize, hub, *logger),
	}
	if cfg.HTTPAddr != "" {
		a.http = ws.NewServer(cfg.HTTPAddr, hub, *logger)
	}
	return a
}

// Run starts the transports and blocks until context cancellation or a
// fatal listener error. Per-client failures never surface here.
func (a *App) Run(ctx context.Context) error {
	if err := a.tcp.Listen(); err != nil {
		return fmt.Errorf("bind tcp listener: %w", err)
	}

	serverErr := make(chan error, 2)

	go func() {
		serverErr <- a.tcp.Serve(ctx)
	}()

	if a.http != nil {
		go func() {
			a.log.Info().Str("addr", a.http.Addr).Msg("ws transport listening")
			if err := a.http.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
				serverErr <- err
				return
			}
			serverErr <- nil
		}()
	}

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		a.log.Info().Msg("shutting down")

		if err := a.tcp.Close(); err != nil {
			a.log.Warn().Err(err).Msg("closing tcp listener failed")
		}
		if a.http != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
			defer cancel()
			if err := a.http.Shutdown(shutdownCtx); err != nil {
				a.log.Warn().Err(err).Msg("shutting down http server failed")
			}
		}

		a.cleanup()
		return nil
	}
}

// cleanup closes every tracked client connection and stops the liveness
// sweep.
func (a *App) cleanup() {
	a.hub.Shutdown()
	a.log.Info().Msg("all client connections closed")
}
