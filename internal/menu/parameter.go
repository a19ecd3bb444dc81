package menu

import (
	"strconv"
	"time"
)

// Kind discriminates the two parameter variants.
type Kind int

const (
	// KindValue is a continuous numeric parameter adjusted by a step
	// increment.
	KindValue Kind = iota
	// KindButton is a cyclic parameter that steps through a fixed list of
	// named states.
	KindButton
)

// Event is the payload delivered to a parameter's change callback.
type Event struct {
	// Source is the identity tag of the parameter that changed.
	Source int
	// Time is when the change happened, per the parameter's clock.
	Time time.Time
	// Value is the new numeric value (the state index for buttons).
	Value float64
	// Param is the parameter that changed.
	Param *Parameter
}

// SetValueCallback is invoked synchronously from SetValue/SetState, at most
// once per call, and only when the value actually changed.
type SetValueCallback func(Event)

// Parameter is a single menu item. The zero value is a safe placeholder:
// an unnamed numeric parameter stuck at zero.
type Parameter struct {
	name         string
	id           int
	kind         Kind
	value        float64
	step         float64
	displayFloat bool
	state        int
	states       []string
	callback     SetValueCallback
	clock        Clock
}

// NewParameter creates a numeric parameter. displayFloat controls whether
// DisplayValue renders a fixed two-decimal string or a whole number.
func NewParameter(name string, id int, value, step float64, displayFloat bool, cb SetValueCallback) *Parameter {
	return &Parameter{
		name:         name,
		id:           id,
		kind:         KindValue,
		value:        value,
		step:         step,
		displayFloat: displayFloat,
		callback:     cb,
		clock:        SystemClock,
	}
}

// NewButton creates a cyclic multi-state parameter. An out-of-range initial
// state is reset to 0 rather than kept invalid.
func NewButton(name string, id int, states []string, initState int, cb SetValueCallback) *Parameter {
	p := &Parameter{
		name:     name,
		id:       id,
		kind:     KindButton,
		states:   states,
		state:    initState,
		callback: cb,
		clock:    SystemClock,
	}
	if !p.validState(p.state) {
		p.state = 0
	}
	return p
}

// Name returns the immutable display name.
func (p *Parameter) Name() string { return p.name }

// ID returns the identity tag used to correlate change events.
func (p *Parameter) ID() int { return p.id }

// Kind reports which variant this parameter is.
func (p *Parameter) Kind() Kind { return p.kind }

// IsFloat reports whether the parameter carries a continuous numeric value.
// Buttons return false and render through their state names instead.
func (p *Parameter) IsFloat() bool { return p.kind == KindValue }

// Value returns the current numeric value. For buttons this is the state
// index.
func (p *Parameter) Value() float64 {
	if p.kind == KindButton {
		return float64(p.state)
	}
	return p.value
}

// State returns the current state index. Zero for numeric parameters.
func (p *Parameter) State() int { return p.state }

// States returns the ordered state names of a button parameter.
func (p *Parameter) States() []string { return p.states }

// DisplayValue formats the current value for the display's value row.
// Buttons return the name of the current state; the bounds guard keeps an
// empty state list from panicking.
func (p *Parameter) DisplayValue() string {
	if p.kind == KindButton {
		if p.state >= 0 && p.state < len(p.states) {
			return p.states[p.state]
		}
		return ""
	}
	if p.displayFloat {
		return strconv.FormatFloat(p.value, 'f', 2, 64)
	}
	return strconv.FormatFloat(p.value, 'f', 0, 64)
}

// SetValue replaces the current value. The callback fires only when the
// value actually changes. For buttons the value is truncated to a state
// index and delegated to SetState.
func (p *Parameter) SetValue(v float64) {
	if p.kind == KindButton {
		p.SetState(int(v))
		return
	}
	if p.value == v {
		return
	}
	p.value = v
	p.fire(v)
}

// SetState replaces a button's state. Out-of-range states are ignored, and
// if the current state is itself invalid it self-heals to 0 without firing
// the callback.
func (p *Parameter) SetState(state int) {
	if p.kind != KindButton {
		return
	}
	if state != p.state && p.validState(state) {
		p.state = state
		p.fire(float64(state))
		return
	}
	if !p.validState(p.state) {
		p.state = 0
	}
}

// IncValue adjusts the parameter by the given number of steps. Numeric
// parameters move by steps times their increment; buttons advance
// cyclically, wrapping in both directions.
func (p *Parameter) IncValue(steps float64) {
	if p.kind == KindButton {
		p.SetState(wrapState(p.state+int(steps), len(p.states)))
		return
	}
	p.SetValue(p.value + steps*p.step)
}

// RegisterSetValueCallback replaces the change callback. The new callback is
// not invoked until the next actual change.
func (p *Parameter) RegisterSetValueCallback(cb SetValueCallback) {
	p.callback = cb
}

func (p *Parameter) validState(state int) bool {
	return state >= 0 && state < len(p.states)
}

func (p *Parameter) fire(v float64) {
	if p.callback == nil {
		return
	}
	clock := p.clock
	if clock == nil {
		clock = SystemClock
	}
	p.callback(Event{
		Source: p.id,
		Time:   clock.Now(),
		Value:  v,
		Param:  p,
	})
}

// wrapState maps an arbitrary state offset into [0, count) with Euclidean
// modulo, so a step of -1 from state 0 lands on count-1.
func wrapState(state, count int) int {
	if count <= 0 {
		return 0
	}
	state %= count
	if state < 0 {
		state += count
	}
	return state
}
