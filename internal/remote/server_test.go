package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestCommandValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		wantErr bool
	}{
		{"next", Command{Action: ActionNext}, false},
		{"prev", Command{Action: ActionPrev}, false},
		{"inc with steps", Command{Action: ActionInc, Steps: -2}, false},
		{"wake", Command{Action: ActionWake}, false},
		{"sleep", Command{Action: ActionSleep}, false},
		{"missing action", Command{}, true},
		{"unknown action", Command{Action: "reboot"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCommandStepCount(t *testing.T) {
	if got := (Command{Action: ActionInc}).StepCount(); got != 1 {
		t.Errorf("StepCount() with zero steps = %v, want 1", got)
	}
	if got := (Command{Action: ActionInc, Steps: -3}).StepCount(); got != -3 {
		t.Errorf("StepCount() = %v, want -3", got)
	}
}

// dialTestServer upgrades a client connection against the server's
// WebSocket handler using httptest.
func dialTestServer(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(s.handleWebSocket))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial test server: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func recvCommand(t *testing.T, s *Server) Command {
	t.Helper()
	select {
	case cmd := <-s.Commands():
		return cmd
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for command")
		return Command{}
	}
}

func TestServerDeliversCommands(t *testing.T) {
	s := NewServer(":0", false)
	conn := dialTestServer(t, s)

	if err := conn.WriteJSON(Command{Action: ActionNext}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if err := conn.WriteJSON(Command{Action: ActionInc, Steps: -2}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	first := recvCommand(t, s)
	if first.Action != ActionNext {
		t.Errorf("first command = %+v, want action %q", first, ActionNext)
	}
	second := recvCommand(t, s)
	if second.Action != ActionInc || second.Steps != -2 {
		t.Errorf("second command = %+v, want inc with steps -2", second)
	}
}

func TestServerSkipsBadMessages(t *testing.T) {
	s := NewServer(":0", false)
	conn := dialTestServer(t, s)

	// Malformed JSON and unknown actions must be skipped, not delivered
	// and not fatal to the connection.
	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}
	if err := conn.WriteJSON(Command{Action: "reboot"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if err := conn.WriteJSON(Command{Action: ActionPrev}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	cmd := recvCommand(t, s)
	if cmd.Action != ActionPrev {
		t.Errorf("delivered command = %+v, want only the valid %q", cmd, ActionPrev)
	}
}

func TestServerStartAndShutdown(t *testing.T) {
	s := NewServer("127.0.0.1:0", false)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.Addr() == "" {
		t.Error("Addr() empty after Start()")
	}

	url := "ws://" + s.Addr() + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial started server: %v", err)
	}
	if err := conn.WriteJSON(Command{Action: ActionWake}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if cmd := recvCommand(t, s); cmd.Action != ActionWake {
		t.Errorf("command = %+v, want wake", cmd)
	}
	_ = conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
