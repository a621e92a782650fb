package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/config"
)

// Server owns the HTTP listener of the search API
type Server struct {
	cfg    *config.Config
	server *http.Server
}

// New creates a server for handler using the configured timeouts
func New(cfg *config.Config, handler http.Handler) *Server {
	return &Server{
		cfg: cfg,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.App.Port),
			Handler:           handler,
			ReadTimeout:       cfg.Server.ReadTimeout,
			ReadHeaderTimeout: cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
			IdleTimeout:       cfg.Server.IdleTimeout,
			MaxHeaderBytes:    1 << 20, // 1 MB
		},
	}
}

// Run serves until ctx is cancelled (SIGINT/SIGTERM in main), then drains
// in-flight requests for at most Server.GracefulTimeout.
func (s *Server) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("서버 시작 중",
			"port", s.cfg.App.Port,
			"env", s.cfg.App.Env,
			"db_driver", s.cfg.Database.Driver,
			"request_timeout", s.cfg.Server.RequestTimeout,
		)
		serverErrors <- s.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("서버 오류: %w", err)

	case <-ctx.Done():
		slog.Info("종료 신호 수신됨, 서버 종료 중...", "graceful_timeout", s.cfg.Server.GracefulTimeout)
		return s.Shutdown(s.cfg.Server.GracefulTimeout)
	}
}

// Shutdown stops accepting connections and waits up to timeout for active requests
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("서버 강제 종료: %w", err)
	}
	return nil
}
