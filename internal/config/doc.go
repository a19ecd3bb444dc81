// Package config loads and persists the lcdmenu configuration file.
//
// The configuration is a YAML file holding three things: how to reach the
// display (serial port, baud rate, screen geometry), how the controller
// should behave (sleep timeout, render tick), and the menu definition
// itself - the ordered list of parameters shown on the display.
//
// # File Location
//
// The file lives in the platform config directory:
//   - Linux: $XDG_CONFIG_HOME/lcdmenu/config.yaml or ~/.config/lcdmenu/config.yaml
//   - macOS: ~/.config/lcdmenu/config.yaml
//   - Windows: %LOCALAPPDATA%\lcdmenu\config.yaml
//
// # Menu Definition
//
// Each menu entry is either a continuous value or a cyclic button:
//
//	menu:
//	  - kind: value
//	    name: Volume
//	    id: 1
//	    value: 50
//	    step: 5
//	    display_float: true
//	  - kind: button
//	    name: Mode
//	    id: 2
//	    states: [Auto, Manual, "Off"]
//	    state: 0
//
// BuildSection turns a validated menu definition into a menu.Section ready
// to hand to the controller.
package config
