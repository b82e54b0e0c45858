package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/messledger/internal/api/apiconnect"
	"github.com/mmynk/messledger/internal/backend"
	"github.com/mmynk/messledger/internal/config"
	"github.com/mmynk/messledger/internal/events"
	"github.com/mmynk/messledger/internal/ledger"
	"github.com/mmynk/messledger/internal/metrics"
	"github.com/mmynk/messledger/internal/middleware"
	"github.com/mmynk/messledger/internal/service"
	"github.com/mmynk/messledger/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	res, err := backend.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer res.Store.Close()

	opts := []ledger.Option{ledger.WithRecordLimit(cfg.RecordLimit)}

	if cfg.AMQPURL != "" {
		pub, err := events.Dial(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			slog.Warn("Failed to initialize AMQP publisher, continuing without events", "error", err)
		} else {
			defer pub.Close()
			opts = append(opts, ledger.WithObserver(pub))
			slog.Info("Publishing change events", "exchange", cfg.AMQPExchange)
		}
	}

	l, err := ledger.New(ctx, res.Store, opts...)
	if err != nil {
		return err
	}
	defer l.Close()

	m := metrics.New(l, time.Now)
	l.Observe(m)

	mux := http.NewServeMux()

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)
	path, handler := apiconnect.NewLedgerServiceHandler(service.NewLedgerService(l), interceptors)
	mux.Handle(path, handler)
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(middleware.RequestLogger(middleware.CORS(mux)), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Connect server starting", "address", srv.Addr, "backend", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if res.Poll != nil {
		g.Go(func() error { return res.Poll(gctx) })
	}

	return g.Wait()
}
