package config

import (
	"fmt"

	"github.com/mewp/lcdmenu/internal/menu"
	"github.com/mewp/lcdmenu/internal/serlcd"
)

// Parameter kinds accepted in the menu definition.
const (
	KindValue  = "value"
	KindButton = "button"
)

// Config is the entire configuration file.
type Config struct {
	Version int              `yaml:"version"`
	Serial  *SerialConfig    `yaml:"serial,omitempty"`
	Display *DisplayConfig   `yaml:"display,omitempty"`
	Remote  *RemoteConfig    `yaml:"remote,omitempty"`
	Menu    []*ParameterSpec `yaml:"menu,omitempty"`
}

// SerialConfig describes the serial link to the display.
type SerialConfig struct {
	Port string `yaml:"port"` // Device path (e.g., /dev/ttyUSB0, COM3)
	Baud int    `yaml:"baud"` // Baud rate (SparkFun SerLCD default is 9600)
}

// DisplayConfig describes display geometry and controller timing.
type DisplayConfig struct {
	Size           int `yaml:"size"`             // Screen-size setting (3-6)
	Width          int `yaml:"width"`            // Characters per row
	SleepTimeoutMs int `yaml:"sleep_timeout_ms"` // Inactivity before backlight off
	TickMs         int `yaml:"tick_ms"`          // Render tick period
	SettleDelayMs  int `yaml:"settle_delay_ms"`  // Pause after each display command
}

// RemoteConfig describes the optional WebSocket remote-control server.
type RemoteConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Listen   string `yaml:"listen"`   // Listen address (e.g., ":8422")
	Announce bool   `yaml:"announce"` // Advertise the service over mDNS
}

// ParameterSpec is one entry of the menu definition.
type ParameterSpec struct {
	Kind string `yaml:"kind"` // "value" or "button"
	Name string `yaml:"name"` // Display name shown on the title row
	ID   int    `yaml:"id"`   // Identity tag carried in change events

	// Value parameters
	Value        float64 `yaml:"value,omitempty"`
	Step         float64 `yaml:"step,omitempty"`
	DisplayFloat bool    `yaml:"display_float,omitempty"`

	// Button parameters
	States []string `yaml:"states,omitempty"`
	State  int      `yaml:"state,omitempty"`
}

// Default returns a configuration with sensible defaults and a small
// example menu.
func Default() *Config {
	return &Config{
		Version: 1,
		Serial: &SerialConfig{
			Port: "/dev/ttyUSB0",
			Baud: 9600,
		},
		Display: &DisplayConfig{
			Size:           menu.DefaultDisplaySize,
			Width:          serlcd.DefaultWidth,
			SleepTimeoutMs: 30000,
			TickMs:         100,
			SettleDelayMs:  10,
		},
		Remote: &RemoteConfig{
			Enabled:  false,
			Listen:   ":8422",
			Announce: true,
		},
		Menu: []*ParameterSpec{
			{Kind: KindValue, Name: "Volume", ID: 1, Value: 50, Step: 5},
			{Kind: KindValue, Name: "Temperature", ID: 2, Value: 21.5, Step: 0.5, DisplayFloat: true},
			{Kind: KindButton, Name: "Mode", ID: 3, States: []string{"Auto", "Manual", "Off"}},
		},
	}
}

// applyDefaults fills in sections and timing fields a hand-written config
// file may omit, so partial files stay usable.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Serial == nil {
		c.Serial = d.Serial
	} else {
		if c.Serial.Port == "" {
			c.Serial.Port = d.Serial.Port
		}
		if c.Serial.Baud == 0 {
			c.Serial.Baud = d.Serial.Baud
		}
	}
	if c.Display == nil {
		c.Display = d.Display
	} else {
		if c.Display.Size == 0 {
			c.Display.Size = d.Display.Size
		}
		if c.Display.Width == 0 {
			c.Display.Width = d.Display.Width
		}
		if c.Display.SleepTimeoutMs == 0 {
			c.Display.SleepTimeoutMs = d.Display.SleepTimeoutMs
		}
		if c.Display.TickMs == 0 {
			c.Display.TickMs = d.Display.TickMs
		}
		if c.Display.SettleDelayMs == 0 {
			c.Display.SettleDelayMs = d.Display.SettleDelayMs
		}
	}
	if c.Remote == nil {
		c.Remote = d.Remote
	}
}

// Validate checks the configuration for problems that would surface later
// as confusing runtime behavior.
func (c *Config) Validate() error {
	if c.Display != nil {
		if c.Display.Size < serlcd.MinScreenSize || c.Display.Size > serlcd.MaxScreenSize {
			return fmt.Errorf("display size %d out of range [%d, %d]",
				c.Display.Size, serlcd.MinScreenSize, serlcd.MaxScreenSize)
		}
		if c.Display.TickMs <= 0 {
			return fmt.Errorf("tick_ms must be positive, got %d", c.Display.TickMs)
		}
		if c.Display.SleepTimeoutMs <= 0 {
			return fmt.Errorf("sleep_timeout_ms must be positive, got %d", c.Display.SleepTimeoutMs)
		}
	}

	seen := make(map[int]string)
	for i, spec := range c.Menu {
		if spec.Name == "" {
			return fmt.Errorf("menu entry %d: name is required", i)
		}
		if prev, dup := seen[spec.ID]; dup {
			return fmt.Errorf("menu entry %q: id %d already used by %q", spec.Name, spec.ID, prev)
		}
		seen[spec.ID] = spec.Name

		switch spec.Kind {
		case KindValue:
			// Nothing further to check: any value/step combination is legal.
		case KindButton:
			if len(spec.States) == 0 {
				return fmt.Errorf("menu entry %q: button needs at least one state", spec.Name)
			}
			if spec.State < 0 || spec.State >= len(spec.States) {
				return fmt.Errorf("menu entry %q: initial state %d out of range [0, %d)",
					spec.Name, spec.State, len(spec.States))
			}
		default:
			return fmt.Errorf("menu entry %q: unknown kind %q (want %q or %q)",
				spec.Name, spec.Kind, KindValue, KindButton)
		}
	}
	return nil
}

// BuildSection constructs the menu section described by the configuration.
// The callback, which may be nil, is registered on every parameter.
func (c *Config) BuildSection(cb menu.SetValueCallback) (*menu.Section, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid menu definition: %w", err)
	}

	section := menu.NewSection()
	for _, spec := range c.Menu {
		switch spec.Kind {
		case KindValue:
			section.AddParameter(menu.NewParameter(
				spec.Name, spec.ID, spec.Value, spec.Step, spec.DisplayFloat, cb))
		case KindButton:
			section.AddParameter(menu.NewButton(
				spec.Name, spec.ID, spec.States, spec.State, cb))
		}
	}
	return section, nil
}
