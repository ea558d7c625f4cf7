package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/louisslnn/ODOO-Project/pkg/handlers/audit"
	auditmiddleware "github.com/louisslnn/ODOO-Project/pkg/server/middleware"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

// Auditor and RevenueAnalyst alias the handler collaborator interfaces so
// callers can wire concrete services without importing the handler package.
type (
	Auditor        = handlers.Auditor
	RevenueAnalyst = handlers.RevenueAnalyst
)

type Dependencies struct {
	Auditor Auditor
	Analyst RevenueAnalyst
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	auditHandler := handlers.NewHandler(config.Dependencies.Auditor, config.Dependencies.Analyst)

	router := chi.NewRouter()

	router.Use(auditmiddleware.Logger(&logger))
	router.Use(chimiddleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/audit", auditHandler.RunAudit)
		r.Get("/revenue", auditHandler.GetRevenue)
	})

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
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
