// Package api mounts the HTTP surface: the websocket endpoint, push
// subscription registration, and a health probe.
package api

import (
	"chat-relay/auth"
	"chat-relay/ws"
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Application struct {
	wsHandler   *ws.Handler
	subsHandler *SubscriptionHandler
	tokens      *auth.TokenManager
	addr        string
	log         *slog.Logger
}

func NewApplication(wsHandler *ws.Handler, subsHandler *SubscriptionHandler,
	tokens *auth.TokenManager, addr string, log *slog.Logger) *Application {
	return &Application{
		wsHandler:   wsHandler,
		subsHandler: subsHandler,
		tokens:      tokens,
		addr:        addr,
		log:         log,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/ws", app.wsHandler.ServeWS)
	r.With(app.requireToken).Post("/subscriptions", app.subsHandler.Register)

	return r
}

// Run serves until ctx is canceled, then drains in-flight requests.
// Live websocket sessions end with the server's base context.
func (app *Application) Run(ctx context.Context, handler http.Handler) error {
	srv := &http.Server{
		Addr:              app.addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errChan := make(chan error, 1)
	go func() {
		app.log.Info("http server listening", "addr", app.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
