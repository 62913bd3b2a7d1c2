/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the leave board server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration, apply flag overrides
  2. Initialize SQLite store
  3. Connect the realtime transport (AMQP if configured, in-process
     otherwise)
  4. Configure HTTP router
  5. Start server and event consumer; shut down gracefully on signal

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PORT)
  -db      SQLite database path (overrides DATABASE_PATH)
           Use ":memory:" for an in-memory database

ENVIRONMENT:
  PORT, DATABASE_PATH, AMQP_URL, AMQP_EXCHANGE, ALLOWED_ORIGINS
  (optionally from a .env file)

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment loading
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/warp/leave-board/api"
	"github.com/warp/leave-board/config"
	"github.com/warp/leave-board/realtime"
	"github.com/warp/leave-board/store/sqlite"
)

func main() {
	cfg := config.Load()

	// Flags override the environment
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DatabasePath, "SQLite database path")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer store.Close()

	transport, err := newTransport(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect realtime transport")
	}
	defer transport.Close()

	handler := api.NewHandler(store, transport)
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logrus.WithField("addr", srv.Addr).Info("leave board listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error { return consumeEvents(ctx, transport) })

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logrus.WithError(err).Fatal("server exited")
	}
	logrus.Info("server stopped")
}

func newTransport(cfg *config.Config) (realtime.Client, error) {
	if cfg.AMQPURL == "" {
		logrus.Info("no AMQP_URL, using in-process realtime transport")
		return realtime.NewMemory(), nil
	}
	return realtime.NewAMQP(cfg.AMQPURL, cfg.AMQPExchange)
}

// consumeEvents drains the transport so the server's own subscription
// keeps the AMQP binding alive and mutation traffic shows up in logs.
func consumeEvents(ctx context.Context, transport realtime.Client) error {
	events, err := transport.Subscribe(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-events:
			if !ok {
				return nil
			}
			logrus.WithFields(logrus.Fields{
				"event": e.Name,
				"id":    e.Payload["id"],
			}).Debug("realtime event")
		}
	}
}
