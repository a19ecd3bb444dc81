// Package menu implements the navigation and display-refresh state machine
// for a two-row character LCD menu.
//
// The package has three layers:
//
//   - Parameter: a single adjustable menu item. Either a continuous numeric
//     value with a step increment, or a cyclic button that steps through a
//     fixed list of named states. Changing a parameter's value fires its
//     registered callback at most once per actual change.
//   - Section: an ordered collection of parameters with a cursor that wraps
//     cyclically in both directions.
//   - Controller: tracks which display rows are stale, repaints only those
//     rows on its periodic Render tick, and turns the backlight off after a
//     configurable period of inactivity.
//
// # Usage
//
//	disp := serlcd.New(port)
//	ctrl, err := menu.NewController(disp)
//	if err != nil {
//	    return err
//	}
//
//	section := menu.NewSection()
//	section.AddParameter(menu.NewParameter("Volume", 1, 50, 5, false, onVolume))
//	section.AddParameter(menu.NewButton("Mode", 2, []string{"Auto", "Manual"}, 0, onMode))
//	ctrl.AddSection(section, nil)
//
//	for range time.Tick(100 * time.Millisecond) {
//	    if err := ctrl.Render(); err != nil {
//	        return err
//	    }
//	}
//
// # Concurrency
//
// The Controller is not safe for concurrent use. The intended model is a
// single control loop goroutine that owns the Controller, drains input
// events from channels, and calls Render on a ticker. Input sources running
// on other goroutines (remote control, keyboard readers) must deliver their
// events through a channel consumed by that loop.
//
// # Time
//
// All timing (event timestamps, the inactivity timer) comes from an
// injectable Clock so tests can drive the sleep logic with synthetic time.
package menu
