// Package server serves the prerendered storefront page and its static assets.
package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/vcrobe/storefront/internal/prerender"
)

//go:embed assets
var assets embed.FS

// Page writes the full storefront document.
type Page interface {
	Write(ctx context.Context, w io.Writer) error
}

// Config holds the server settings.
type Config struct {
	Addr      string
	StaticDir string
	// RenderTimeout bounds how long a request waits for the catalog.
	RenderTimeout time.Duration
}

// Server is the storefront HTTP server.
type Server struct {
	cfg    Config
	page   Page
	logger *zap.Logger
	http   *http.Server
}

// New creates the server. page is usually a *prerender.Renderer.
func New(cfg Config, page Page, logger *zap.Logger) *Server {
	s := &Server{cfg: cfg, page: page, logger: logger}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

var _ Page = (*prerender.Renderer)(nil)

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/static/*", http.StripPrefix("/static/", s.staticHandler()))

	return r
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.cfg.RenderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RenderTimeout)
		defer cancel()
	}

	var buf bytes.Buffer
	if err := s.page.Write(ctx, &buf); err != nil {
		s.logger.Error("prerender failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// staticHandler serves StaticDir, falling back to the embedded assets for
// files the directory does not have.
func (s *Server) staticHandler() http.Handler {
	embedded, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	fallback := http.FileServer(http.FS(embedded))

	if s.cfg.StaticDir == "" {
		return fallback
	}
	disk := http.FileServer(http.Dir(s.cfg.StaticDir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(s.cfg.StaticDir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
		if _, err := os.Stat(name); err == nil {
			disk.ServeHTTP(w, r)
			return
		}
		fallback.ServeHTTP(w, r)
	})
}

// Run serves until ctx is cancelled, then shuts down within shutdownTimeout.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server started", zap.String("addr", s.cfg.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)))
		})
	}
}
