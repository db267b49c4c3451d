// Package wsserver exposes a worker.Worker over WebSocket. Each text frame
// from the client carries one request envelope; responses are written back
// on the same connection, possibly out of order, matched by id.
package wsserver

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/worker"
)

const writeTimeout = 10 * time.Second

// Server serves worker requests to WebSocket clients.
type Server struct {
	logger   *logrus.Entry
	worker   *worker.Worker
	upgrader websocket.Upgrader
	server   *http.Server
}

// New creates a Server backed by w.
func New(w *worker.Worker, logger *logrus.Entry) *Server {
	return &Server{
		logger: logger,
		worker: w,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// nil CheckOrigin: only requests without an Origin header or
			// whose Origin host equals Host are upgraded
		},
	}
}

// Handler returns the HTTP routes: /health and the /ws endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// ListenAndServe listens on addr and blocks until the server stops.
func (s *Server) ListenAndServe(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to listen").WithDetail("addr", addr)
	}
	return s.Serve(listener)
}

// Serve accepts connections on listener.
func (s *Server) Serve(listener net.Listener) error {
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.WithField("addr", listener.Addr().String()).Info("Worker server listening")
	if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down worker server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Debug("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	s.logger.WithField("remote", r.RemoteAddr).Debug("Client connected")

	var (
		writeMu  sync.Mutex
		inflight sync.WaitGroup
	)
	send := func(resp worker.Response) {
		data, err := gojson.Marshal(resp)
		if err != nil {
			s.logger.WithError(err).Error("Failed to encode response")
			return
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.WithError(err).Debug("Failed to write response")
		}
	}

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.WithError(err).Debug("Client connection closed unexpectedly")
			}
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var req worker.Request
		if err := gojson.Unmarshal(data, &req); err != nil {
			send(worker.Response{
				ID:    req.ID,
				Error: "malformed request: " + err.Error(),
				Code:  string(errors.ErrCodeInvalidInput),
			})
			continue
		}

		inflight.Add(1)
		go func(req worker.Request) {
			defer inflight.Done()
			send(s.execute(ctx, req))
		}(req)
	}

	cancel()
	inflight.Wait()
	s.logger.WithField("remote", r.RemoteAddr).Debug("Client disconnected")
}

func (s *Server) execute(ctx context.Context, req worker.Request) worker.Response {
	result, err := s.worker.Execute(ctx, req.Type, req.Payload)
	if err == nil {
		return worker.Response{ID: req.ID, Success: true, Result: result}
	}
	resp := worker.Response{ID: req.ID, Error: err.Error()}
	if coded, ok := err.(*errors.CodedError); ok {
		resp.Error = coded.Message
		resp.Code = string(coded.Code)
	}
	return resp
}
