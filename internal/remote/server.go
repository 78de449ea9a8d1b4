// Package remote serves a posing session over HTTP and websockets.
//
// Routes:
//
//	GET  /api/state    selection and camera snapshot
//	GET  /api/nodes    every selectable component
//	GET  /api/poses    pose presets
//	POST /api/command  run a Request, reply with the new state
//	GET  /ws           Requests in, state Replies out
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/creature-poser/internal/interaction"
	"github.com/Faultbox/creature-poser/internal/logger"
	"github.com/Faultbox/creature-poser/internal/pose"
)

// Config holds server timing.
type Config struct {
	WriteTimeout time.Duration
	PingInterval time.Duration
}

// DefaultConfig returns the server defaults.
func DefaultConfig() Config {
	return Config{WriteTimeout: 10 * time.Second, PingInterval: 30 * time.Second}
}

// Server exposes a Session.
type Server struct {
	session  *Session
	cfg      Config
	hub      *hub
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewServer creates a server for session.
func NewServer(session *Session, cfg Config) *Server {
	log := logger.Named("remote")
	return &Server{
		session: session,
		cfg:     cfg,
		hub:     newHub(log),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: log,
	}
}

// Router returns the API routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/nodes", s.handleNodes).Methods(http.MethodGet)
	api.HandleFunc("/poses", s.handlePoses).Methods(http.MethodGet)
	api.HandleFunc("/command", s.handleCommand).Methods(http.MethodPost)
	r.HandleFunc("/ws", s.handleWS)
	return r
}

// Handler wraps the router with panic recovery and access logging.
func (s *Server) Handler() http.Handler {
	access := zap.NewStdLog(s.log.Named("access")).Writer()
	h := handlers.LoggingHandler(access, s.Router())
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("listening", zap.String("addr", addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}

// Apply runs req on the session and broadcasts the new state.
func (s *Server) Apply(ctx context.Context, req Request) (Reply, error) {
	var snap interaction.Snapshot
	err := s.session.Do(ctx, func(c *interaction.Controller) error {
		err := req.Apply(c)
		snap = c.Snapshot()
		return err
	})
	reply := Reply{State: snap}
	if err != nil {
		reply.Error = err.Error()
		return reply, err
	}
	s.hub.broadcast(reply)
	return reply, nil
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var snap interaction.Snapshot
	err := s.session.Do(r.Context(), func(c *interaction.Controller) error {
		snap = c.Snapshot()
		return nil
	})
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	var nodes []interaction.NodeInfo
	err := s.session.Do(r.Context(), func(c *interaction.Controller) error {
		nodes = c.Nodes()
		return nil
	})
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, nodes)
}

type poseInfo struct {
	Name        string `json:"name"`
	Key         string `json:"key"`
	Description string `json:"description"`
}

func (s *Server) handlePoses(w http.ResponseWriter, r *http.Request) {
	var out []poseInfo
	for _, p := range pose.All() {
		out = append(out, poseInfo{Name: p.Name, Key: string(p.Key), Description: p.Description})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	req, err := DecodeRequest(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	reply, err := s.Apply(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), reply)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, interaction.ErrUnknownPose),
		errors.Is(err, interaction.ErrNoPoses),
		errors.Is(err, interaction.ErrUnknownOp):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws upgrade", zap.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 32)}
	s.hub.register(c)
	go c.writePump(s.cfg.WriteTimeout, s.cfg.PingInterval, s.log)
	s.log.Info("ws client connected", zap.String("remote", r.RemoteAddr), zap.Int("clients", s.hub.count()))

	ctx := r.Context()
	var snap interaction.Snapshot
	if err := s.session.Do(ctx, func(ctl *interaction.Controller) error {
		snap = ctl.Snapshot()
		return nil
	}); err == nil {
		s.sendTo(c, Reply{State: snap})
	}
	s.readPump(ctx, c)
}

func (s *Server) readPump(ctx context.Context, c *client) {
	defer func() {
		s.hub.unregister(c)
		s.log.Info("ws client disconnected", zap.Int("clients", s.hub.count()))
	}()
	c.conn.SetReadLimit(1 << 16)
	wait := 2 * s.cfg.PingInterval
	c.conn.SetReadDeadline(time.Now().Add(wait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wait))
	})

	for {
		_, rd, err := c.conn.NextReader()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("ws read", zap.Error(err))
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(wait))
		req, err := DecodeRequest(rd)
		if err != nil {
			s.sendTo(c, Reply{Error: err.Error()})
			continue
		}
		if reply, err := s.Apply(ctx, req); err != nil {
			s.sendTo(c, reply)
		}
	}
}

func (s *Server) sendTo(c *client, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error("marshal reply", zap.Error(err))
		return
	}
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if s.hub.clients[c] {
		select {
		case c.send <- data:
		default:
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
