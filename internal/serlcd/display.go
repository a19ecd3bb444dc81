package serlcd

import (
	"fmt"
	"io"
	"time"

	"github.com/mewp/lcdmenu/internal/logging"
)

// DefaultSettleDelay is the pause after each control command before the
// next byte may be safely sent to the display.
const DefaultSettleDelay = 10 * time.Millisecond

// Display drives a SparkFun serial LCD over any io.Writer and implements
// the menu.Display transport. All methods block until the display is ready
// for the next command.
type Display struct {
	w      io.Writer
	width  int
	settle time.Duration
	sleep  func(time.Duration)
}

// Option configures a Display.
type Option func(*Display)

// WithWidth overrides the characters-per-row limit used to truncate text.
func WithWidth(width int) Option {
	return func(d *Display) { d.width = width }
}

// WithSettleDelay overrides the pause inserted after each control command.
func WithSettleDelay(delay time.Duration) Option {
	return func(d *Display) { d.settle = delay }
}

// WithSleeper replaces the function used to wait out settle delays. Tests
// use this to avoid real sleeps.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(d *Display) { d.sleep = sleep }
}

// New creates a Display writing to w, typically an open serial port.
func New(w io.Writer, opts ...Option) *Display {
	d := &Display{
		w:      w,
		width:  DefaultWidth,
		settle: DefaultSettleDelay,
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SelectRow homes the cursor on row 0 or 1.
func (d *Display) SelectRow(row int) error {
	if err := d.command(SelectRowCommand(row)); err != nil {
		return fmt.Errorf("failed to select row %d: %w", row, err)
	}
	return nil
}

// WriteText draws text at the current cursor position, truncated to the
// row width so long values cannot run onto the other row.
func (d *Display) WriteText(text string) error {
	runes := []rune(text)
	if len(runes) > d.width {
		runes = runes[:d.width]
	}
	data := []byte(string(runes))
	logging.LogRawBytes("serlcd write text", data)
	if _, err := d.w.Write(data); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}

// ClearAll erases the whole display and homes the cursor.
func (d *Display) ClearAll() error {
	if err := d.command(ClearCommand()); err != nil {
		return fmt.Errorf("failed to clear display: %w", err)
	}
	return nil
}

// SetBacklight toggles backlight power.
func (d *Display) SetBacklight(on bool) error {
	if err := d.command(BacklightCommand(on)); err != nil {
		return fmt.Errorf("failed to set backlight: %w", err)
	}
	return nil
}

// ConfigureDisplaySize applies the one-time screen-size setting (3-6).
func (d *Display) ConfigureDisplaySize(size int) error {
	cmd, err := ScreenSizeCommand(size)
	if err != nil {
		return err
	}
	if err := d.command(cmd); err != nil {
		return fmt.Errorf("failed to configure display size: %w", err)
	}
	return nil
}

// command writes a control sequence and waits out the settle delay.
func (d *Display) command(data []byte) error {
	logging.LogRawBytes("serlcd command", data)
	if _, err := d.w.Write(data); err != nil {
		return err
	}
	if d.settle > 0 {
		d.sleep(d.settle)
	}
	return nil
}
