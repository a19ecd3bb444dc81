// Package simulator renders a virtual two-row character LCD in the
// terminal so the menu can be developed and demonstrated without hardware.
//
// The simulator owns a real menu.Controller wired to an in-memory display
// implementation. Key presses map onto the same controller actions the
// hardware build uses (navigate, adjust, sleep), and a periodic tick drives
// Render exactly like the hardware control loop, so dirty-tracking and
// sleep behavior are exercised faithfully. When the controller puts the
// display to sleep the frame dims, mirroring the backlight turning off.
package simulator
