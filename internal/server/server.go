// Package server hosts the streaming preview server: a small HTTP surface
// that renders the demo component gallery and individual component pages,
// flushing each rendered chunk to the client as it is produced.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hydrohtml/hydro/internal/demo"
	"github.com/hydrohtml/hydro/internal/logging"
	"github.com/hydrohtml/hydro/pkg/registry"
	"github.com/hydrohtml/hydro/pkg/render"
)

// Server serves rendered component previews over HTTP.
type Server struct {
	addr      string
	logger    logging.Logger
	registry  *registry.Registry
	cacheSize int

	httpServer *http.Server
}

// New builds a preview server listening on addr, rendering against the
// given registry with a template cache of cacheSize entries.
func New(addr string, reg *registry.Registry, cacheSize int, logger logging.Logger) *Server {
	s := &Server{
		addr:      addr,
		logger:    logger.WithComponent("server"),
		registry:  reg,
		cacheSize: cacheSize,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleGallery)
	mux.HandleFunc("GET /component/{tag}", s.handleComponent)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "preview server listening", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}

// Handler exposes the routing surface for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) renderOptions() []render.Option {
	return []render.Option{
		render.WithRegistry(s.registry),
		render.WithLogger(s.logger),
		render.WithCacheSize(s.cacheSize),
	}
}

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	out := newFlushWriter(w)
	if err := render.To(r.Context(), out, demo.Gallery(), s.renderOptions()...); err != nil {
		// headers are already sent; all we can do is log and drop
		s.logger.Error(r.Context(), err, "gallery render failed")
	}
}

func (s *Server) handleComponent(w http.ResponseWriter, r *http.Request) {
	tag := r.PathValue("tag")
	res, ok := demo.Preview(tag)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown component %q", tag), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	out := newFlushWriter(w)
	if err := render.To(r.Context(), out, res, s.renderOptions()...); err != nil {
		s.logger.Error(r.Context(), err, "component render failed", "tag", tag)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

// flushWriter pushes every rendered chunk to the client immediately, so a
// slow template streams instead of buffering the whole document.
type flushWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newFlushWriter(w http.ResponseWriter) *flushWriter {
	flusher, _ := w.(http.Flusher)
	return &flushWriter{w: w, flusher: flusher}
}

func (fw *flushWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	if fw.flusher != nil {
		fw.flusher.Flush()
	}
	return n, err
}
