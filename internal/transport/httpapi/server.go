package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sandevgo/askgate/internal/config"
	"github.com/sandevgo/askgate/internal/core"
	"github.com/sandevgo/askgate/pkg/log"
)

// Server exposes the askgate HTTP API and implements srv.Service.
type Server struct {
	server *http.Server
}

func NewServer(appCtx context.Context, cfg *config.AppConfig, repo core.InteractionsRepository, text core.TextGenerator, vision core.VisionGenerator) *Server {
	h := &handlers{
		cfg:    cfg,
		repo:   repo,
		text:   text,
		vision: vision,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("POST /api/generate", h.handleGenerate)
	mux.HandleFunc("POST /api/generate-vision", h.handleGenerateVision)
	mux.HandleFunc("POST /api/save_rating", h.handleSaveRating)
	mux.HandleFunc("GET /api/responses", h.handleListResponses)
	mux.HandleFunc("DELETE /api/responses/{id}", h.handleDeleteResponse)

	return &Server{
		server: &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: withCORS(withRequestLog(mux)),
			// Handlers inherit the app context so log.FromCtx works
			BaseContext: func(net.Listener) context.Context {
				return appCtx
			},
			ReadHeaderTimeout: 15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.server.Addr).Msg("http api listening")

	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(drainCtx)
}
