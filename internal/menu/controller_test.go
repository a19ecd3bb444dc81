package menu

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// recordingDisplay captures every transport command as a readable string so
// tests can assert on the exact command sequence.
type recordingDisplay struct {
	ops        []string
	failWrites bool
}

func (d *recordingDisplay) SelectRow(row int) error {
	d.ops = append(d.ops, fmt.Sprintf("select:%d", row))
	return nil
}

func (d *recordingDisplay) WriteText(text string) error {
	if d.failWrites {
		return errors.New("write failed")
	}
	d.ops = append(d.ops, "write:"+text)
	return nil
}

func (d *recordingDisplay) ClearAll() error {
	d.ops = append(d.ops, "clear")
	return nil
}

func (d *recordingDisplay) SetBacklight(on bool) error {
	d.ops = append(d.ops, fmt.Sprintf("backlight:%v", on))
	return nil
}

func (d *recordingDisplay) ConfigureDisplaySize(size int) error {
	d.ops = append(d.ops, fmt.Sprintf("size:%d", size))
	return nil
}

func (d *recordingDisplay) reset() { d.ops = nil }

func newTestController(t *testing.T) (*Controller, *recordingDisplay, *fakeClock) {
	t.Helper()
	disp := &recordingDisplay{}
	clock := &fakeClock{now: time.Unix(0, 0)}
	ctrl, err := NewController(disp, WithClock(clock))
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	return ctrl, disp, clock
}

func TestNewControllerStartupSequence(t *testing.T) {
	ctrl, disp, _ := newTestController(t)

	want := []string{"clear", "backlight:true", fmt.Sprintf("size:%d", DefaultDisplaySize)}
	if !reflect.DeepEqual(disp.ops, want) {
		t.Errorf("startup ops = %v, want %v", disp.ops, want)
	}
	if !ctrl.IsDirty() {
		t.Error("controller should start dirty")
	}
	if ctrl.Asleep() {
		t.Error("controller should start awake")
	}
}

func TestRenderRedrawsDirtyRowsExactlyOnce(t *testing.T) {
	ctrl, disp, _ := newTestController(t)

	section := NewSection()
	section.AddParameter(NewParameter("Volume", 1, 21.5, 0.5, true, nil))
	ctrl.AddSection(section, nil)
	disp.reset()

	if err := ctrl.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := []string{"clear", "select:0", "write:Volume", "select:1", "write:21.50"}
	if !reflect.DeepEqual(disp.ops, want) {
		t.Errorf("Render() ops = %v, want %v", disp.ops, want)
	}
	if ctrl.IsDirty() {
		t.Error("IsDirty() = true after Render, want false")
	}

	// A second render with nothing newly dirtied must not touch the display.
	disp.reset()
	if err := ctrl.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(disp.ops) != 0 {
		t.Errorf("second Render() issued ops %v, want none", disp.ops)
	}
}

func TestIncCurrentParameterRedrawsValueRowOnly(t *testing.T) {
	ctrl, disp, _ := newTestController(t)

	section := NewSection()
	section.AddParameter(NewParameter("Volume", 1, 10, 0.5, true, nil))
	ctrl.AddSection(section, nil)
	if err := ctrl.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	ctrl.IncCurrentParameter(2)
	disp.reset()
	if err := ctrl.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// No full clear and no title write: only the value row changed.
	want := []string{"select:1", "write:11.00"}
	if !reflect.DeepEqual(disp.ops, want) {
		t.Errorf("Render() ops = %v, want %v", disp.ops, want)
	}
}

func TestNavigationMarksBothRows(t *testing.T) {
	ctrl, disp, _ := newTestController(t)

	section := threeParamSection()
	ctrl.AddSection(section, nil)
	if err := ctrl.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	ctrl.NextItem()
	disp.reset()
	if err := ctrl.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := []string{"clear", "select:0", "write:Two", "select:1", "write:0.00"}
	if !reflect.DeepEqual(disp.ops, want) {
		t.Errorf("Render() after NextItem ops = %v, want %v", disp.ops, want)
	}
}

func TestSleepAfterInactivityTimeout(t *testing.T) {
	ctrl, disp, clock := newTestController(t)
	ctrl.AddSection(threeParamSection(), nil)
	if err := ctrl.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// Just inside the timeout: still awake.
	clock.Advance(DefaultSleepTimeout)
	if err := ctrl.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if ctrl.Asleep() {
		t.Fatal("controller slept at exactly the timeout, want awake")
	}

	disp.reset()
	clock.Advance(time.Millisecond)
	if err := ctrl.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !ctrl.Asleep() {
		t.Fatal("controller still awake past the timeout, want asleep")
	}
	want := []string{"backlight:false"}
	if !reflect.DeepEqual(disp.ops, want) {
		t.Errorf("sleep ops = %v, want %v", disp.ops, want)
	}
}

func TestStayAwakeResetsInactivityTimer(t *testing.T) {
	ctrl, _, clock := newTestController(t)
	ctrl.AddSection(threeParamSection(), nil)
	if err := ctrl.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	clock.Advance(DefaultSleepTimeout - time.Second)
	ctrl.StayAwake()
	clock.Advance(DefaultSleepTimeout - time.Second)

	if err := ctrl.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if ctrl.Asleep() {
		t.Error("controller slept despite recent StayAwake()")
	}
}

func TestActivityWakesSleepingDisplay(t *testing.T) {
	ctrl, disp, _ := newTestController(t)
	ctrl.AddSection(threeParamSection(), nil)
	if err := ctrl.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	ctrl.Sleep()
	if !ctrl.Asleep() {
		t.Fatal("Sleep() did not mark controller asleep")
	}

	disp.reset()
	ctrl.NextItem()

	if ctrl.Asleep() {
		t.Error("controller still asleep after navigation")
	}
	want := []string{"backlight:true"}
	if !reflect.DeepEqual(disp.ops, want) {
		t.Errorf("wake ops = %v, want %v", disp.ops, want)
	}
}

func TestClearingDirtyStillCountsAsActivity(t *testing.T) {
	ctrl, _, clock := newTestController(t)
	ctrl.AddSection(threeParamSection(), nil)
	if err := ctrl.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// Even a call that clears flags resets the activity timer: the user
	// looked at the unchanged menu.
	clock.Advance(DefaultSleepTimeout - time.Second)
	ctrl.SetDirty(false)
	clock.Advance(2 * time.Second)

	if err := ctrl.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if ctrl.Asleep() {
		t.Error("controller slept despite SetDirty(false) activity")
	}
}

func TestMarkDirtyRowSelection(t *testing.T) {
	tests := []struct {
		name     string
		row      int
		wantDirt [2]bool
	}{
		{"both rows", RowBoth, [2]bool{true, true}},
		{"title row", RowTitle, [2]bool{true, false}},
		{"value row", RowValue, [2]bool{false, true}},
		{"out-of-range clamps to value row", 9, [2]bool{false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, _, _ := newTestController(t)
			ctrl.SetDirty(false)

			ctrl.MarkDirty(true, tt.row)

			if ctrl.dirt != tt.wantDirt {
				t.Errorf("dirt = %v, want %v", ctrl.dirt, tt.wantDirt)
			}
			if got := ctrl.IsDirty(); got != (tt.wantDirt[0] || tt.wantDirt[1]) {
				t.Errorf("IsDirty() = %v, out of sync with row flags %v", got, ctrl.dirt)
			}
		})
	}
}

func TestDirtyFlagMatchesRowFlags(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	// Clearing one row while the other stays dirty must keep the aggregate
	// flag set.
	ctrl.SetDirty(true)
	ctrl.MarkDirty(false, RowTitle)
	if !ctrl.IsDirty() {
		t.Error("IsDirty() = false while value row still dirty")
	}
	ctrl.MarkDirty(false, RowValue)
	if ctrl.IsDirty() {
		t.Error("IsDirty() = true with no dirty rows")
	}
}

func TestRenderRetriesRowAfterWriteFailure(t *testing.T) {
	ctrl, disp, _ := newTestController(t)
	ctrl.AddSection(threeParamSection(), nil)

	disp.failWrites = true
	if err := ctrl.Render(); err == nil {
		t.Fatal("Render() error = nil, want write failure")
	}
	if !ctrl.IsDirty() {
		t.Fatal("controller dropped dirty state after failed write")
	}

	disp.failWrites = false
	disp.reset()
	if err := ctrl.Render(); err != nil {
		t.Fatalf("Render() retry error = %v", err)
	}
	want := []string{"clear", "select:0", "write:One", "select:1", "write:0.00"}
	if !reflect.DeepEqual(disp.ops, want) {
		t.Errorf("retry ops = %v, want %v", disp.ops, want)
	}
}

func TestRenderWithoutSectionIsSafe(t *testing.T) {
	ctrl, disp, _ := newTestController(t)
	disp.reset()

	if err := ctrl.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(disp.ops) != 0 {
		t.Errorf("Render() without a section issued ops %v, want none", disp.ops)
	}
	if ctrl.IsDirty() {
		t.Error("Render() without a section should drop the dirty flags")
	}
}

func TestAddSectionSetsRootOnce(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	first := threeParamSection()
	second := NewSection()

	ctrl.AddSection(first, nil)
	ctrl.AddSection(second, first)

	if ctrl.CurrentSection() != second {
		t.Error("CurrentSection() should be the most recently added section")
	}
	if ctrl.root != first {
		t.Error("root should remain the first section ever added")
	}
	if !ctrl.IsDirty() {
		t.Error("AddSection() should mark the display dirty")
	}
}
