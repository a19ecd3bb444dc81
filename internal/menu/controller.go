package menu

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mewp/lcdmenu/internal/logging"
)

// Display is the rendering transport the controller drives. Implementations
// position the cursor, write text, and control power; any settle delays the
// physical protocol needs happen inside the implementation, which returns
// once the next command may be safely issued.
type Display interface {
	// SelectRow positions the output cursor at the start of row 0 or 1.
	SelectRow(row int) error
	// WriteText emits text at the current cursor position.
	WriteText(text string) error
	// ClearAll erases the whole display.
	ClearAll() error
	// SetBacklight toggles backlight power.
	SetBacklight(on bool) error
	// ConfigureDisplaySize performs the one-time size setup at startup.
	ConfigureDisplaySize(size int) error
}

// Row selectors for MarkDirty.
const (
	// RowBoth marks the title and value rows together.
	RowBoth = 0
	// RowTitle is the first display row, which shows the parameter name.
	RowTitle = 1
	// RowValue is the second display row, which shows the parameter value.
	RowValue = 2
)

// DefaultSleepTimeout is the inactivity period after which Render turns the
// backlight off.
const DefaultSleepTimeout = 30 * time.Second

// DefaultDisplaySize is the screen-size setting applied at startup.
const DefaultDisplaySize = 5

// Controller tracks which display rows are stale and repaints them on its
// Render tick. It observes one active Section whose lifetime is managed by
// the application.
//
// Not safe for concurrent use; see the package documentation.
type Controller struct {
	display Display
	clock   Clock

	root    *Section
	current *Section

	dirty  bool
	dirt   [2]bool
	asleep bool

	sleepTimeout time.Duration
	lastActivity time.Time
	displaySize  int
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the time source. Tests use this to drive the sleep
// timer with synthetic time.
func WithClock(c Clock) Option {
	return func(ctrl *Controller) { ctrl.clock = c }
}

// WithSleepTimeout overrides the inactivity period before the display goes
// to sleep.
func WithSleepTimeout(d time.Duration) Option {
	return func(ctrl *Controller) { ctrl.sleepTimeout = d }
}

// WithDisplaySize overrides the screen-size setting applied at startup.
func WithDisplaySize(size int) Option {
	return func(ctrl *Controller) { ctrl.displaySize = size }
}

// NewController creates a controller and performs the startup display
// sequence: clear, backlight on, screen-size configuration, everything
// marked for redraw.
func NewController(display Display, opts ...Option) (*Controller, error) {
	ctrl := &Controller{
		display:      display,
		clock:        SystemClock,
		sleepTimeout: DefaultSleepTimeout,
		displaySize:  DefaultDisplaySize,
	}
	for _, opt := range opts {
		opt(ctrl)
	}
	ctrl.lastActivity = ctrl.clock.Now()

	if err := display.ClearAll(); err != nil {
		return nil, fmt.Errorf("failed to clear display: %w", err)
	}
	if err := display.SetBacklight(true); err != nil {
		return nil, fmt.Errorf("failed to enable backlight: %w", err)
	}
	if err := display.ConfigureDisplaySize(ctrl.displaySize); err != nil {
		return nil, fmt.Errorf("failed to configure display size: %w", err)
	}
	ctrl.SetDirty(true)
	return ctrl, nil
}

// AddSection makes section the active one and marks the whole display for
// redraw. The first section added becomes the root. The parent argument is
// accepted for future nesting but currently unused: the controller works
// with a single flat section.
func (c *Controller) AddSection(section, parent *Section) {
	_ = parent
	c.current = section
	if c.root == nil {
		c.root = section
	}
	c.SetDirty(true)
}

// CurrentSection returns the active section, or nil if none has been added.
func (c *Controller) CurrentSection() *Section { return c.current }

// NextItem moves the cursor to the next parameter and marks both rows for
// redraw.
func (c *Controller) NextItem() {
	if c.current == nil {
		return
	}
	c.current.NextItem()
	c.SetDirty(true)
}

// PrevItem moves the cursor to the previous parameter and marks both rows
// for redraw.
func (c *Controller) PrevItem() {
	if c.current == nil {
		return
	}
	c.current.PrevItem()
	c.SetDirty(true)
}

// IncCurrentParameter adjusts the selected parameter by the given number of
// steps and marks the value row for redraw.
func (c *Controller) IncCurrentParameter(steps float64) {
	if c.current == nil {
		return
	}
	c.current.CurrentParameter().IncValue(steps)
	c.MarkDirty(true, RowValue)
}

// SetDirty marks or clears both rows at once.
func (c *Controller) SetDirty(dirty bool) {
	c.MarkDirty(dirty, RowBoth)
}

// MarkDirty marks or clears redraw flags. RowBoth touches both rows;
// RowTitle and RowValue touch one; anything above RowValue is clamped to
// RowValue. Every call counts as activity, even one that clears flags:
// looking at an unchanged menu still keeps the display awake.
func (c *Controller) MarkDirty(dirty bool, row int) {
	switch {
	case row <= RowBoth:
		c.dirt[0] = dirty
		c.dirt[1] = dirty
	case row == RowTitle:
		c.dirt[0] = dirty
	default:
		c.dirt[1] = dirty
	}
	c.dirty = c.dirt[0] || c.dirt[1]
	c.StayAwake()
}

// IsDirty reports whether any row needs a redraw.
func (c *Controller) IsDirty() bool { return c.dirty }

// Asleep reports whether the display has been put to sleep.
func (c *Controller) Asleep() bool { return c.asleep }

// StayAwake records activity, waking the backlight first if the display was
// asleep. A backlight failure is logged and the controller carries on: the
// menu state machine must keep working even when the transport hiccups.
func (c *Controller) StayAwake() {
	if c.asleep {
		if err := c.display.SetBacklight(true); err != nil {
			logging.Warn("Failed to wake backlight", zap.Error(err))
		}
		c.asleep = false
	}
	c.lastActivity = c.clock.Now()
}

// Sleep turns the backlight off and marks the controller asleep. Called
// directly or from Render's inactivity check.
func (c *Controller) Sleep() {
	if err := c.display.SetBacklight(false); err != nil {
		logging.Warn("Failed to turn off backlight", zap.Error(err))
	}
	c.asleep = true
}

// Render is the periodic tick. When rows are dirty it repaints exactly
// those rows (with a full clear first when both are), writing the parameter
// name on the title row and its formatted value on the value row. When
// nothing is dirty it checks the inactivity timer and puts the display to
// sleep after the timeout.
//
// A row flag is cleared only after its write succeeds, so a failed write is
// retried on the next tick.
func (c *Controller) Render() error {
	if !c.dirty {
		if !c.asleep && c.clock.Now().Sub(c.lastActivity) > c.sleepTimeout {
			logging.Debug("Inactivity timeout reached, sleeping",
				zap.Duration("timeout", c.sleepTimeout))
			c.Sleep()
		}
		return nil
	}
	c.dirty = false

	if c.current == nil {
		// Nothing to draw yet; drop the flags so the sleep timer can run.
		c.dirt[0] = false
		c.dirt[1] = false
		return nil
	}

	if c.dirt[0] && c.dirt[1] {
		if err := c.display.ClearAll(); err != nil {
			c.dirty = true
			return fmt.Errorf("failed to clear display: %w", err)
		}
	}

	cur := c.current.CurrentParameter()

	if c.dirt[0] {
		if err := c.writeRow(0, cur.Name()); err != nil {
			c.dirty = true
			return err
		}
		c.dirt[0] = false
	}
	if c.dirt[1] {
		if err := c.writeRow(1, cur.DisplayValue()); err != nil {
			c.dirty = true
			return err
		}
		c.dirt[1] = false
	}
	return nil
}

func (c *Controller) writeRow(row int, text string) error {
	if err := c.display.SelectRow(row); err != nil {
		return fmt.Errorf("failed to select row %d: %w", row, err)
	}
	if err := c.display.WriteText(text); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
