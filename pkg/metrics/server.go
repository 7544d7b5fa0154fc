package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Server exposes a Metrics registry over HTTP.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	done       chan struct{}
}

// StartServer binds port before returning, so a port already in use is
// reported to the caller. Port 0 picks a free port; Addr reports it.
func StartServer(port int, m *Metrics) (*Server, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("binding metrics port %d: %w", port, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><h1>Abstract Ranker Metrics</h1><p><a href="/metrics">/metrics</a></p></body></html>`)
	})

	s := &Server{
		httpServer: &http.Server{
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		listener: ln,
		done:     make(chan struct{}),
	}

	log := slog.Default().With("component", "metrics")
	log.Info("metrics server listening", "addr", s.Addr())
	go func() {
		defer close(s.done)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", "error", err)
		}
	}()
	return s, nil
}

// Addr is the bound listen address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Shutdown stops accepting scrapes and waits for in-flight ones and the
// serve loop to finish, or for ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
