// Package main is the entrypoint for the snow-incident-agent application.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cragr/snow-incident-agent/internal/agent"
	"github.com/cragr/snow-incident-agent/internal/config"
	"github.com/cragr/snow-incident-agent/internal/incident"
	"github.com/cragr/snow-incident-agent/internal/logging"
	"github.com/cragr/snow-incident-agent/internal/metrics"
	"github.com/cragr/snow-incident-agent/internal/servicenow"
	"github.com/cragr/snow-incident-agent/internal/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.NewLogger("info").Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.LogLevel)
	logger.Info("starting snow-incident-agent")

	logger.Info("configuration loaded",
		"http_port", cfg.HTTPPort,
		"llm_provider", cfg.LLMProvider,
		"servicenow_default_instance_url", cfg.ServiceNowDefaultInstanceURL,
		"servicenow_endpoint_path", cfg.ServiceNowEndpointPath,
	)

	m := metrics.New(prometheus.DefaultRegisterer)

	runner, err := agent.NewRunner(cfg, m, logging.WithComponent(logger, "agent"))
	if err != nil {
		logger.Error("failed to create query runner", "error", err)
		os.Exit(1)
	}

	// Each submission gets a client bound to the credentials typed into the form
	snowLogger := logging.WithComponent(logger, "servicenow")
	newFetcher := func(conn servicenow.ConnectionConfig) incident.Fetcher {
		return servicenow.NewClient(conn, cfg, m, snowLogger)
	}

	formHandler := web.NewHandler(runner, newFetcher, cfg, m, logging.WithComponent(logger, "web"))

	// Setup HTTP routes
	mux := http.NewServeMux()

	// Lookup form
	mux.Handle("/", formHandler)

	// Health and readiness probes
	mux.HandleFunc("/healthz", healthzHandler)
	mux.HandleFunc("/readyz", readyzHandler)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Create HTTP server
	addr := fmt.Sprintf(":%s", cfg.HTTPPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// healthzHandler handles liveness probe requests.
func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// readyzHandler handles readiness probe requests.
func readyzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
