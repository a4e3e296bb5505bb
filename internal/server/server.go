package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/cardroom/trainer/internal/engine"
	"github.com/cardroom/trainer/internal/validate"
)

// Server exposes one Session over HTTP: read-only JSON snapshots plus a
// websocket for submitting actions and streaming state transitions.
type Server struct {
	addr     string
	session  *Session
	upgrader websocket.Upgrader
	logger   *log.Logger
	http     *http.Server
}

// NewServer wires the routes for a session.
func NewServer(addr string, session *Session, logger *log.Logger) *Server {
	s := &Server{
		addr:    addr,
		session: session,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Local trainer; the browser client is served from
				// anywhere during development.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("server"),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/stats", s.handleStats)
		r.Get("/history", s.handleHistory)
		r.Post("/action", s.handleAction)
	})
	r.Get("/ws", s.handleWebSocket)

	s.http = &http.Server{Addr: addr, Handler: r}
	return s
}

// Start serves until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.logger.Info("listening", "addr", s.addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop shuts the HTTP server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.session.State())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.session.Stats())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	state := s.session.State()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"handId":  state.HandID,
		"handNo":  state.HandNo,
		"history": state.History,
	})
}

// errorBody is the JSON shape for rejected submissions. Validation
// failures and engine rejections both land here with status 422; they
// are expected traffic, not server errors.
type errorBody struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var raw validate.RawAction
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed JSON: " + err.Error()})
		return
	}

	state, err := s.session.Submit(raw)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var fieldErr *validate.FieldError
	if errors.As(err, &fieldErr) {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error: err.Error(),
			Code:  fieldErr.Code,
		})
		return
	}
	var rej *engine.Rejection
	if errors.As(err, &rej) {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:  err.Error(),
			Code:   string(rej.Code),
			Reason: rej.Reason,
		})
		return
	}
	s.writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// wsEnvelope frames every websocket message the server sends.
type wsEnvelope struct {
	Type  string            `json:"type"` // "state" or "error"
	State *engine.GameState `json:"state,omitempty"`
	Error *errorBody        `json:"error,omitempty"`
}

// handleWebSocket upgrades the connection and splits into a read loop
// for submissions and a single writer goroutine. Every outgoing frame,
// broadcast states and error replies alike, goes through the writer;
// the connection is never written from two goroutines at once.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}
	s.logger.Info("client connected", "remote", conn.RemoteAddr())

	updates := s.session.Subscribe()
	outbound := make(chan wsEnvelope, 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		defer conn.Close()
		for {
			select {
			case state, ok := <-updates:
				if !ok {
					return
				}
				if err := s.writeWS(conn, wsEnvelope{Type: "state", State: state}); err != nil {
					return
				}
			case env := <-outbound:
				if err := s.writeWS(conn, env); err != nil {
					return
				}
			}
		}
	}()

	outbound <- wsEnvelope{Type: "state", State: s.session.State()}

	for {
		var raw validate.RawAction
		if err := conn.ReadJSON(&raw); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket read failed", "error", err)
			}
			break
		}
		if _, err := s.session.Submit(raw); err != nil {
			body := s.errorBodyFor(err)
			select {
			case outbound <- wsEnvelope{Type: "error", Error: &body}:
			case <-writerDone:
			}
		}
		// Accepted actions reach this client through the broadcast.
	}

	s.session.Unsubscribe(updates)
	<-writerDone
	s.logger.Info("client disconnected", "remote", conn.RemoteAddr())
}

func (s *Server) errorBodyFor(err error) errorBody {
	var fieldErr *validate.FieldError
	if errors.As(err, &fieldErr) {
		return errorBody{Error: err.Error(), Code: fieldErr.Code}
	}
	var rej *engine.Rejection
	if errors.As(err, &rej) {
		return errorBody{Error: err.Error(), Code: string(rej.Code), Reason: rej.Reason}
	}
	return errorBody{Error: err.Error()}
}

func (s *Server) writeWS(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(env)
}
