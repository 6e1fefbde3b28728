// Command dgpl-server runs the authentication HTTP API.
//
// Configuration comes from the environment:
//
//	DGPL_ADDR             listen address (default ":8080")
//	DGPL_TOKEN_SECRET     HMAC signing secret, at least 16 bytes (required)
//	DGPL_ACCESS_TTL       access token lifetime (default "60m")
//	DGPL_REDIS_ADDR       optional Redis address for the credential store;
//	                      an in-memory store is used when unset
//	DGPL_AUDIT_LOG        write audit events as JSON lines to stderr
//	                      (default true)
//	DGPL_METRICS          serve /metrics in Prometheus text format
//	                      (default true)
//	DGPL_SHUTDOWN_TIMEOUT graceful shutdown window (default "10s")
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

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"

	dgpl "github.com/Tejaswanth2406/dgpl"
	"github.com/Tejaswanth2406/dgpl/httpapi"
	promexport "github.com/Tejaswanth2406/dgpl/metrics/export/prometheus"
)

type serverConfig struct {
	Addr            string        `env:"DGPL_ADDR" envDefault:":8080"`
	TokenSecret     string        `env:"DGPL_TOKEN_SECRET,required"`
	AccessTTL       time.Duration `env:"DGPL_ACCESS_TTL" envDefault:"60m"`
	RedisAddr       string        `env:"DGPL_REDIS_ADDR"`
	AuditLog        bool          `env:"DGPL_AUDIT_LOG" envDefault:"true"`
	Metrics         bool          `env:"DGPL_METRICS" envDefault:"true"`
	ShutdownTimeout time.Duration `env:"DGPL_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}

	engineCfg := dgpl.DefaultConfig()
	engineCfg.Token.Secret = []byte(cfg.TokenSecret)
	engineCfg.Token.AccessTTL = cfg.AccessTTL

	builder := dgpl.New().WithConfig(engineCfg)
	if cfg.RedisAddr != "" {
		builder = builder.WithRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		logger.Info("using redis credential store", "addr", cfg.RedisAddr)
	}
	if cfg.AuditLog {
		builder = builder.WithAuditSink(dgpl.NewJSONWriterSink(os.Stderr))
	}

	engine, err := builder.Build()
	if err != nil {
		logger.Error("build engine", "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	handler := httpapi.NewServer(engine).Routes()
	if cfg.Metrics {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promexport.NewExporter(engine).Handler())
		mux.Handle("/", handler)
		handler = mux
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}
