package serlcd

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
	"time"
)

func newTestDisplay() (*Display, *bytes.Buffer, *[]time.Duration) {
	var buf bytes.Buffer
	var sleeps []time.Duration
	d := New(&buf, WithSleeper(func(dur time.Duration) {
		sleeps = append(sleeps, dur)
	}))
	return d, &buf, &sleeps
}

func TestDisplaySelectRow(t *testing.T) {
	d, buf, sleeps := newTestDisplay()

	if err := d.SelectRow(1); err != nil {
		t.Fatalf("SelectRow(1) error = %v", err)
	}
	if got := buf.Bytes(); !reflect.DeepEqual(got, []byte{0xFE, 192}) {
		t.Errorf("SelectRow(1) wrote %#v, want FE C0", got)
	}
	if len(*sleeps) != 1 || (*sleeps)[0] != DefaultSettleDelay {
		t.Errorf("SelectRow(1) settle sleeps = %v, want one of %v", *sleeps, DefaultSettleDelay)
	}
}

func TestDisplayWriteTextTruncatesToWidth(t *testing.T) {
	d, buf, sleeps := newTestDisplay()

	if err := d.WriteText("a value that is far too long for one row"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if got := buf.String(); got != "a value that is " {
		t.Errorf("WriteText() wrote %q, want 16-character prefix", got)
	}
	// Text writes need no settle delay.
	if len(*sleeps) != 0 {
		t.Errorf("WriteText() slept %v, want no sleeps", *sleeps)
	}
}

func TestDisplayClearAndBacklight(t *testing.T) {
	d, buf, _ := newTestDisplay()

	if err := d.ClearAll(); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	if err := d.SetBacklight(false); err != nil {
		t.Fatalf("SetBacklight(false) error = %v", err)
	}

	want := []byte{0xFE, 0x01, 0x7C, 128}
	if got := buf.Bytes(); !reflect.DeepEqual(got, want) {
		t.Errorf("wrote %#v, want %#v", got, want)
	}
}

func TestDisplayConfigureDisplaySize(t *testing.T) {
	d, buf, _ := newTestDisplay()

	if err := d.ConfigureDisplaySize(5); err != nil {
		t.Fatalf("ConfigureDisplaySize(5) error = %v", err)
	}
	if got := buf.Bytes(); !reflect.DeepEqual(got, []byte{0x7C, '5'}) {
		t.Errorf("ConfigureDisplaySize(5) wrote %#v, want 7C '5'", got)
	}

	if err := d.ConfigureDisplaySize(9); err == nil {
		t.Error("ConfigureDisplaySize(9) error = nil, want out-of-range error")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("port gone")
}

func TestDisplayPropagatesWriteErrors(t *testing.T) {
	d := New(failingWriter{}, WithSleeper(func(time.Duration) {}))

	if err := d.ClearAll(); err == nil {
		t.Error("ClearAll() error = nil, want write error")
	}
	if err := d.WriteText("hi"); err == nil {
		t.Error("WriteText() error = nil, want write error")
	}
}

func TestDisplayCustomSettleDelay(t *testing.T) {
	var buf bytes.Buffer
	var sleeps []time.Duration
	d := New(&buf,
		WithSettleDelay(25*time.Millisecond),
		WithSleeper(func(dur time.Duration) { sleeps = append(sleeps, dur) }),
	)

	if err := d.SetBacklight(true); err != nil {
		t.Fatalf("SetBacklight(true) error = %v", err)
	}
	if len(sleeps) != 1 || sleeps[0] != 25*time.Millisecond {
		t.Errorf("settle sleeps = %v, want one of 25ms", sleeps)
	}
}
