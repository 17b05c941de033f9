// Package main provides the referral API service entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/movefitrx/referral-engine/internal/api/handlers"
	"github.com/movefitrx/referral-engine/internal/api/middleware"
	"github.com/movefitrx/referral-engine/internal/domain/adherence"
	"github.com/movefitrx/referral-engine/internal/domain/credential"
	"github.com/movefitrx/referral-engine/internal/domain/referral"
	"github.com/movefitrx/referral-engine/internal/enrollment"
	"github.com/movefitrx/referral-engine/internal/observability/metrics"
	"github.com/movefitrx/referral-engine/internal/observability/tracing"
)

// Config holds application configuration
type Config struct {
	Port           string
	ExpectedEvents int
	TracingEnabled bool
	OTLPEndpoint   string
}

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg := loadConfig()

	// Tracing is optional; the demo runs fine without a collector.
	if cfg.TracingEnabled {
		tcfg := tracing.DefaultConfig("referral-api")
		tcfg.OTLPEndpoint = cfg.OTLPEndpoint
		provider, err := tracing.Init(context.Background(), tcfg)
		if err != nil {
			logger.Fatal("tracing init failed", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			provider.Shutdown(ctx)
		}()
	}

	// Build the in-memory core. All state lives for the process lifetime.
	m := metrics.New(nil)
	pool := credential.NewPool(credential.DefaultCredentials(), logger)
	registry := referral.NewRegistry(logger)
	events := adherence.NewEventLog(logger)

	m.CredentialsRemaining.Set(float64(pool.Remaining()))

	svc := enrollment.NewService(pool, registry, events,
		enrollment.Config{ExpectedEvents: cfg.ExpectedEvents}, m, logger)

	referralHandler := handlers.NewReferralHandler(svc, logger)
	patientHandler := handlers.NewPatientHandler(svc, logger)
	regimenHandler := handlers.NewRegimenHandler(svc, logger)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Tracing("referral-api"))

	r.Get("/health", healthHandler)
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/referrals", referralHandler.Routes())
		r.Mount("/patients", patientHandler.Routes())
		r.Mount("/regimens", regimenHandler.Routes())
	})

	// Start server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	}()

	logger.Info("starting referral API",
		zap.String("port", cfg.Port),
		zap.Int("credential_pool", pool.Size()),
		zap.Int("expected_events", svc.ExpectedEvents()),
	)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}

	logger.Info("server stopped")
}

func loadConfig() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	expected := adherence.DefaultExpectedEvents
	if v := os.Getenv("EXPECTED_WORKOUT_EVENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			expected = n
		}
	}

	endpoint := os.Getenv("OTEL_EXPORTER_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:4317"
	}

	return Config{
		Port:           port,
		ExpectedEvents: expected,
		TracingEnabled: os.Getenv("TRACING_ENABLED") == "true",
		OTLPEndpoint:   endpoint,
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","service":"referral-api","version":"0.1.0"}`)
}
