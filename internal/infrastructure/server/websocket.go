// Package server exposes the assistant over a WebSocket endpoint.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	ws "github.com/gorilla/websocket"

	"github.com/doeshing/jarvis-go/internal/application/assistant"
	"github.com/doeshing/jarvis-go/internal/ports"
)

const shutdownTimeout = 5 * time.Second

// Turner runs one assistant turn.
type Turner interface {
	Turn(ctx context.Context, input string) assistant.TurnResult
}

// Server answers every text message on /ws with one JSON turn result.
type Server struct {
	core     Turner
	logger   ports.Logger
	upgrader ws.Upgrader
}

// New builds a server around core.
func New(core Turner, logger ports.Logger) *Server {
	return &Server{
		core:   core,
		logger: logger,
		upgrader: ws.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("websocket server listening", map[string]interface{}{"addr": addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", map[string]interface{}{"error": err.Error()})
		return
	}
	defer conn.Close()

	ctx := r.Context()
	remote := conn.RemoteAddr().String()
	s.logger.Debug("websocket client connected", map[string]interface{}{"remote": remote})

	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			if !isClosed(err) {
				s.logger.Warn("websocket read failed", map[string]interface{}{"remote": remote, "error": err.Error()})
			}
			return
		}
		if kind != ws.TextMessage {
			continue
		}

		res := s.core.Turn(ctx, string(msg))
		if err := conn.WriteJSON(res); err != nil {
			s.logger.Warn("websocket write failed", map[string]interface{}{"remote": remote, "error": err.Error()})
			return
		}
		if res.Exit {
			deadline := time.Now().Add(time.Second)
			_ = conn.WriteControl(ws.CloseMessage, ws.FormatCloseMessage(ws.CloseNormalClosure, "goodbye"), deadline)
			return
		}
	}
}

func isClosed(err error) bool {
	return ws.IsCloseError(err,
		ws.CloseNormalClosure,
		ws.CloseGoingAway,
		ws.CloseAbnormalClosure)
}
