package stub

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"campus/config"
)

// Server hosts the stub backend over HTTP.
type Server struct {
	cfg     *config.Config
	handler Handler
	mux     *chi.Mux
}

func NewServer(cfg *config.Config, handler Handler) *Server {
	return &Server{
		cfg:     cfg,
		handler: handler,
	}
}

func (s *Server) setup() {
	s.mux = chi.NewRouter()

	s.mux.Use(middleware.RequestID)
	s.mux.Use(middleware.RealIP)
	s.mux.Use(middleware.Recoverer)

	s.mux.Use(cors.Handler(cors.Options{
		AllowCredentials: s.cfg.Stub.CORS.AllowCredentials,
		AllowedHeaders:   s.cfg.Stub.CORS.AllowedHeaders,
		AllowedMethods:   s.cfg.Stub.CORS.AllowedMethods,
		AllowedOrigins:   s.cfg.Stub.CORS.AllowedOrigins,
		MaxAge:           s.cfg.Stub.CORS.MaxAgeSeconds,
	}))

	s.handler.Router(s.mux)
}

// Mux exposes the configured router, mainly for httptest servers.
func (s *Server) Mux() http.Handler {
	if s.mux == nil {
		s.setup()
	}

	return s.mux
}

func (s *Server) Serve() {
	s.setup()

	address := net.JoinHostPort(s.cfg.Stub.Host, s.cfg.Stub.Port)

	server := &http.Server{
		Addr:              address,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.shutdownOnSignal(server)

	log.Info().Str("address", address).Msg("Starting up stub backend.")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Failed to start stub backend")
	}
}

func (s *Server) shutdownOnSignal(server *http.Server) {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	<-done

	log.Info().Msg("Received SIGTERM. Shutting down now.")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down cleanly")
	}
}
