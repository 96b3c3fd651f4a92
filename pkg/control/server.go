// Package control runs the local HTTP endpoint used by uptime monitors.
package control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/small-frappuccino/modcore/pkg/log"
	"github.com/small-frappuccino/modcore/pkg/storage"
	"github.com/small-frappuccino/modcore/pkg/util"
)

// DefaultAddr is the default listen address for the control server.
const DefaultAddr = "127.0.0.1:8080"

// Server exposes the liveness endpoint and a small status report.
type Server struct {
	addr    string
	session *discordgo.Session
	store   *storage.Store
	started time.Time
	httpSrv *http.Server
}

func NewServer(addr string, session *discordgo.Session, store *storage.Store) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{
		addr:    addr,
		session: session,
		store:   store,
		started: time.Now(),
	}
}

// Start begins serving in the background. The returned error only covers
// listener setup; serve errors are logged.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/v1/status", s.handleStatus)

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("control server listen on %s: %w", s.addr, err)
	}

	s.httpSrv = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ApplicationLogger().Error("control server stopped", "error", err)
		}
	}()

	log.ApplicationLogger().Info("control server started", "addr", s.addr)
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "Bot is alive!")
}

type statusResponse struct {
	Application string `json:"application"`
	Version     string `json:"version"`
	UptimeSec   int64  `json:"uptime_seconds"`
	Guilds      int    `json:"guilds"`
	Heartbeat   string `json:"heartbeat,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Application: util.EffectiveBotName(),
		Version:     util.AppVersion,
		UptimeSec:   int64(time.Since(s.started).Seconds()),
	}
	if s.session != nil && s.session.State != nil {
		resp.Guilds = len(s.session.State.Guilds)
	}
	if s.store != nil {
		if at, err := s.store.GetHeartbeat(); err == nil {
			resp.Heartbeat = at.UTC().Format(time.RFC3339)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.ApplicationLogger().Debug("status encode failed", "error", err)
	}
}
