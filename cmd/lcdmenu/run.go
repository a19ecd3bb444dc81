package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.bug.st/serial"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/mewp/lcdmenu/internal/config"
	"github.com/mewp/lcdmenu/internal/logging"
	"github.com/mewp/lcdmenu/internal/menu"
	"github.com/mewp/lcdmenu/internal/remote"
	"github.com/mewp/lcdmenu/internal/serlcd"
)

// keyAction is a decoded keyboard input.
type keyAction int

const (
	keyNone keyAction = iota
	keyNext
	keyPrev
	keyInc
	keyDec
	keySleep
	keyQuit
)

func runRun(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	defer logging.Sync()

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if serialPort != "" {
		cfg.Serial.Port = serialPort
	}
	if serialBaud != 0 {
		cfg.Serial.Baud = serialBaud
	}

	port, err := serial.Open(cfg.Serial.Port, &serial.Mode{BaudRate: cfg.Serial.Baud})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", cfg.Serial.Port, err)
	}
	defer port.Close()
	logging.Info("Serial port open",
		zap.String("port", cfg.Serial.Port),
		zap.Int("baud", cfg.Serial.Baud))

	disp := serlcd.New(port,
		serlcd.WithWidth(cfg.Display.Width),
		serlcd.WithSettleDelay(time.Duration(cfg.Display.SettleDelayMs)*time.Millisecond))

	ctrl, err := menu.NewController(disp,
		menu.WithSleepTimeout(time.Duration(cfg.Display.SleepTimeoutMs)*time.Millisecond),
		menu.WithDisplaySize(cfg.Display.Size))
	if err != nil {
		return err
	}

	section, err := cfg.BuildSection(func(e menu.Event) {
		logging.Info("Parameter changed",
			zap.Int("id", e.Source),
			zap.Float64("value", e.Value),
			zap.String("display", e.Param.DisplayValue()))
	})
	if err != nil {
		return err
	}
	ctrl.AddSection(section, nil)

	// Optional second input source: the WebSocket remote.
	var remoteCommands <-chan remote.Command
	if cfg.Remote != nil && cfg.Remote.Enabled {
		srv := remote.NewServer(cfg.Remote.Listen, cfg.Remote.Announce)
		if err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		remoteCommands = srv.Commands()
	}

	keys, restore, err := startKeyboard()
	if err != nil {
		return err
	}
	defer restore()

	fmt.Print("lcdmenu running: arrows or n/p navigate, +/- adjust, s sleep, q quit\r\n")
	return controlLoop(ctrl, cfg, keys, remoteCommands)
}

// controlLoop owns the controller: it is the single goroutine that touches
// menu state, draining both input channels between render ticks.
func controlLoop(ctrl *menu.Controller, cfg *config.Config, keys <-chan keyAction, remoteCommands <-chan remote.Command) error {
	ticker := time.NewTicker(time.Duration(cfg.Display.TickMs) * time.Millisecond)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	for {
		select {
		case <-ticker.C:
			if err := ctrl.Render(); err != nil {
				logging.Error("Render failed", zap.Error(err))
			}

		case action, ok := <-keys:
			if !ok {
				return nil
			}
			switch action {
			case keyNext:
				ctrl.NextItem()
			case keyPrev:
				ctrl.PrevItem()
			case keyInc:
				ctrl.IncCurrentParameter(1)
			case keyDec:
				ctrl.IncCurrentParameter(-1)
			case keySleep:
				ctrl.Sleep()
			case keyQuit:
				return nil
			}

		case rc := <-remoteCommands:
			applyRemoteCommand(ctrl, rc)

		case <-sig:
			return nil
		}
	}
}

func applyRemoteCommand(ctrl *menu.Controller, rc remote.Command) {
	logging.Debug("Applying remote command",
		zap.String("action", rc.Action),
		zap.Float64("steps", rc.Steps))

	switch rc.Action {
	case remote.ActionNext:
		ctrl.NextItem()
	case remote.ActionPrev:
		ctrl.PrevItem()
	case remote.ActionInc:
		ctrl.IncCurrentParameter(rc.StepCount())
	case remote.ActionWake:
		ctrl.StayAwake()
	case remote.ActionSleep:
		ctrl.Sleep()
	}
}

// startKeyboard puts the terminal into raw mode and decodes key presses
// onto a channel. The returned restore function must run before exit.
func startKeyboard() (<-chan keyAction, func(), error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to enter raw terminal mode: %w", err)
	}
	restore := func() { _ = term.Restore(fd, oldState) }

	keys := make(chan keyAction, 8)
	go readKeys(os.Stdin, keys)
	return keys, restore, nil
}

func readKeys(r io.Reader, out chan<- keyAction) {
	defer close(out)
	buf := make([]byte, 8)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		if action := decodeKey(buf[:n]); action != keyNone {
			out <- action
		}
	}
}

// decodeKey maps a raw terminal read to a menu action. Arrow keys arrive
// as ESC [ A..D sequences; everything else is a single byte.
func decodeKey(b []byte) keyAction {
	if len(b) == 3 && b[0] == 0x1B && b[1] == '[' {
		switch b[2] {
		case 'C': // right
			return keyNext
		case 'D': // left
			return keyPrev
		case 'A': // up
			return keyInc
		case 'B': // down
			return keyDec
		}
		return keyNone
	}
	if len(b) != 1 {
		return keyNone
	}

	switch b[0] {
	case 'n':
		return keyNext
	case 'p':
		return keyPrev
	case '+', '=':
		return keyInc
	case '-', '_':
		return keyDec
	case 's':
		return keySleep
	case 'q', 0x03: // q or Ctrl-C
		return keyQuit
	}
	return keyNone
}
