package menu

// placeholder is handed out when a section has nothing at the cursor, so
// callers never need a nil check. It is a zero-valued numeric parameter
// with an empty name.
var placeholder = &Parameter{}

// Section is an ordered collection of parameters with a cursor. The cursor
// wraps cyclically: stepping past the last parameter lands on the first and
// vice versa. The backing slice grows as parameters are added.
//
// A Section's lifetime is managed by the application; the Controller only
// observes it.
type Section struct {
	params []*Parameter
	index  int
}

// NewSection creates an empty section.
func NewSection() *Section {
	return &Section{}
}

// AddParameter appends a parameter to the end of the section. Nil
// parameters are ignored.
func (s *Section) AddParameter(p *Parameter) {
	if p == nil {
		return
	}
	s.params = append(s.params, p)
}

// Len returns the number of parameters in the section.
func (s *Section) Len() int { return len(s.params) }

// Index returns the current cursor position.
func (s *Section) Index() int { return s.index }

// Parameters returns the ordered parameters of the section.
func (s *Section) Parameters() []*Parameter { return s.params }

// CurrentParameter returns the parameter at the cursor, or a safe
// placeholder when the section is empty.
func (s *Section) CurrentParameter() *Parameter {
	if s.index >= 0 && s.index < len(s.params) {
		return s.params[s.index]
	}
	return placeholder
}

// NextItem advances the cursor, wrapping to the first parameter past the
// end.
func (s *Section) NextItem() {
	if s.index < len(s.params)-1 {
		s.index++
	} else {
		s.index = 0
	}
}

// PrevItem moves the cursor back, wrapping to the last parameter before the
// start.
func (s *Section) PrevItem() {
	if len(s.params) == 0 {
		s.index = 0
		return
	}
	if s.index > 0 {
		s.index--
	} else {
		s.index = len(s.params) - 1
	}
}
