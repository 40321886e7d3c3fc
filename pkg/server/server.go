package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/fin-atlas/pkg/handlers/assessment"
	finatlasmiddleware "github.com/de-tools/fin-atlas/pkg/server/middleware"
	"github.com/de-tools/fin-atlas/pkg/services/config"
	"github.com/de-tools/fin-atlas/pkg/services/ingest"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Profiles config.Registry
	Decoders ingest.Registry
	Logger   zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
	DefaultProfile  string
	RateLimit       config.RateLimitConfig
	Dependencies    Dependencies
}

func ConfigureRouter(cfg Config) *chi.Mux {
	decoders := cfg.Dependencies.Decoders
	if decoders == nil {
		decoders = ingest.DefaultRegistry()
	}
	profiles := cfg.Dependencies.Profiles
	if profiles == nil {
		profiles = config.NewDefaultRegistry()
	}

	assessmentHandler := handlers.NewHandler(profiles, decoders, handlers.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		DefaultProfile: cfg.DefaultProfile,
	})

	logger := cfg.Dependencies.Logger
	router := chi.NewRouter()

	router.Use(finatlasmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(finatlasmiddleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

		r.Post("/assessments", assessmentHandler.Assess)
		r.Post("/uploads", assessmentHandler.Upload)
		r.Get("/profiles", assessmentHandler.ListProfiles)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Start serves until the listener fails or the process receives SIGINT/SIGTERM.
func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
