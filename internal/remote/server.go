package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/mewp/lcdmenu/internal/logging"
	"github.com/mewp/lcdmenu/internal/version"
)

const (
	// ServiceType is the mDNS service type announced when enabled.
	ServiceType = "_lcdmenu._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// readWait is how long a connection may stay silent before it is
	// considered dead.
	readWait = 5 * time.Minute

	// commandBuffer is how many commands may queue up before the server
	// starts dropping them.
	commandBuffer = 32
)

// Server accepts WebSocket connections and turns their JSON messages into
// menu commands on a single channel.
type Server struct {
	listen   string
	announce bool

	commands chan Command
	upgrader websocket.Upgrader

	httpServer *http.Server
	listener   net.Listener
	mdns       *zeroconf.Server
}

// NewServer creates a server that will listen on the given address.
// announce controls mDNS registration.
func NewServer(listen string, announce bool) *Server {
	return &Server{
		listen:   listen,
		announce: announce,
		commands: make(chan Command, commandBuffer),
		upgrader: websocket.Upgrader{
			// The menu has no secrets; any local client may drive it.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Commands returns the channel the control loop drains.
func (s *Server) Commands() <-chan Command {
	return s.commands
}

// Addr returns the bound listen address. Empty before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start binds the listener, begins serving in the background, and
// registers the mDNS service when announcement is enabled.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.listen, err)
	}
	s.listener = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	s.httpServer = &http.Server{Handler: mux}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			logging.Error("Remote server stopped", zap.Error(err))
		}
	}()

	logging.Info("Remote control listening", zap.String("addr", ln.Addr().String()))

	if s.announce {
		port := ln.Addr().(*net.TCPAddr).Port
		mdns, err := zeroconf.Register("lcdmenu", ServiceType, ServiceDomain, port,
			[]string{"version=" + version.Version}, nil)
		if err != nil {
			// Announcement is best-effort: the server still works when mDNS
			// registration fails (e.g., no multicast on the interface).
			logging.Warn("Failed to register mDNS service", zap.Error(err))
		} else {
			s.mdns = mdns
			logging.Info("Announced mDNS service",
				zap.String("type", ServiceType),
				zap.Int("port", port))
		}
	}

	return nil
}

// Shutdown stops announcing, closes the listener, and waits for in-flight
// handlers up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.mdns != nil {
		s.mdns.Shutdown()
		s.mdns = nil
	}
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down remote server: %w", err)
	}
	return nil
}

// handleWebSocket upgrades the connection and feeds its commands into the
// queue until the client disconnects.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err))
		return
	}
	remoteAddr := conn.RemoteAddr().String()
	logging.LogConnection(remoteAddr, "websocket_connected")

	defer func() {
		_ = conn.Close()
		logging.LogConnection(remoteAddr, "websocket_closed")
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(readWait)); err != nil {
			return
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Warn("WebSocket read error",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err))
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			logging.Warn("Malformed remote command",
				zap.String("remote_addr", remoteAddr),
				zap.ByteString("payload", data),
				zap.Error(err))
			continue
		}
		if err := cmd.Validate(); err != nil {
			logging.Warn("Rejected remote command",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err))
			continue
		}

		select {
		case s.commands <- cmd:
			logging.Debug("Remote command queued",
				zap.String("remote_addr", remoteAddr),
				zap.String("action", cmd.Action),
				zap.Float64("steps", cmd.Steps))
		default:
			// The control loop is the only consumer; never block the
			// reader on its behalf.
			logging.Warn("Command queue full, dropping command",
				zap.String("remote_addr", remoteAddr),
				zap.String("action", cmd.Action))
		}
	}
}
