// Honeybadger-mcp serves the Honeybadger Data API as MCP tools for AI
// agents. It speaks stdio by default and can expose a streamable HTTP
// endpoint instead (MCP_TRANSPORT=http).
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nachoal/honeybadger-mcp/pkg/auth"
	"github.com/nachoal/honeybadger-mcp/pkg/config"
	"github.com/nachoal/honeybadger-mcp/pkg/honeybadger"
	hbotel "github.com/nachoal/honeybadger-mcp/pkg/otel"
	"github.com/nachoal/honeybadger-mcp/pkg/tools"
)

const version = "1.0.0"

func main() {
	// Stdout belongs to the stdio transport, so logs go to stderr.
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))
	slog.SetDefault(log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "error", err)
		os.Exit(1)
	}

	// ── OpenTelemetry ────────────────────────────────────────────────────
	otelShutdown, err := hbotel.Setup(ctx, hbotel.Config{
		ServiceName:    cfg.ServiceName,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		MetricsEnabled: cfg.MetricsEnabled,
		TracingEnabled: cfg.TracingEnabled && cfg.OTLPEndpoint != "",
	})
	if err != nil {
		log.Error("otel setup failed", "error", err)
	} else {
		defer otelShutdown(context.Background()) //nolint:errcheck // best-effort shutdown
	}

	// ── Honeybadger client ───────────────────────────────────────────────
	client, err := honeybadger.New(honeybadger.Config{
		Token:             cfg.APIToken,
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RateLimit,
		UserAgent:         "honeybadger-mcp/" + version,
		Logger:            log,
	})
	if err != nil {
		log.Error("client setup failed", "error", err)
		os.Exit(1)
	}

	// ── MCP server ───────────────────────────────────────────────────────
	srv := server.NewMCPServer("Honeybadger API", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
		server.WithInstructions("Query and manage Honeybadger error monitoring: projects, faults, notices and notification settings."),
	)
	tools.NewCatalog(client, log).Register(srv)

	// ── Metrics (internal) ───────────────────────────────────────────────
	var metricsSrv *http.Server
	if cfg.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metricsMux,
			ReadTimeout:       5 * time.Second,
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       30 * time.Second,
		}
		go func() {
			log.Info("metrics server starting", "addr", cfg.MetricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server error", "error", err)
			}
		}()
	}

	switch cfg.Transport {
	case "http":
		serveHTTP(ctx, cancel, srv, cfg, log)
	default:
		serveStdio(ctx, srv, log)
	}

	if metricsSrv != nil {
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutCancel()
		if err := metricsSrv.Shutdown(shutCtx); err != nil {
			log.Error("metrics server shutdown error", "error", err)
		}
	}
}

// serveStdio blocks until stdin closes or ctx is cancelled.
func serveStdio(ctx context.Context, srv *server.MCPServer, log *slog.Logger) {
	log.Info("serving MCP over stdio", "version", version)
	stdio := server.NewStdioServer(srv)
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		log.Error("stdio server error", "error", err)
	}
	log.Info("stdio transport closed")
}

// newRouter assembles the HTTP surface: health endpoints that stay open,
// and the MCP mount, bearer-guarded when a token is configured.
func newRouter(mcpHandler http.Handler, httpToken string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Group(func(r chi.Router) {
		if httpToken != "" {
			r.Use(auth.Bearer(httpToken))
		}
		r.Mount("/mcp", mcpHandler)
	})
	return r
}

// serveHTTP mounts the streamable MCP endpoint on a chi router and blocks
// until ctx is cancelled.
func serveHTTP(ctx context.Context, cancel context.CancelFunc, srv *server.MCPServer, cfg *config.Config, log *slog.Logger) {
	r := newRouter(server.NewStreamableHTTPServer(srv), cfg.HTTPToken)

	// No write timeout: the MCP endpoint can hold a long-lived event stream.
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("serving MCP over http", "addr", cfg.HTTPAddr, "version", version)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()
	if err := httpSrv.Shutdown(shutCtx); err != nil {
		log.Error("server shutdown error", "error", err)
	}
}

func logLevel() slog.Level {
	if config.EnvOr("LOG_LEVEL", "info") == "debug" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
