package core

// Picker holds the current selection of a date or range picker along with
// the shortcuts offered to the user. The current value may be absent.
// A Picker is not safe for concurrent use.
type Picker[V Variant] struct {
	env       Env
	shortcuts []Shortcut[V]
	current   V
	hasValue  bool
	onChange  func(v V, ok bool)
}

func NewPicker[V Variant](env Env, shortcuts ...Shortcut[V]) *Picker[V] {
	return &Picker[V]{env: env, shortcuts: append([]Shortcut[V](nil), shortcuts...)}
}

func (p *Picker[V]) Mode() Mode { return ModeOf[V]() }
func (p *Picker[V]) Env() Env   { return p.env }

func (p *Picker[V]) Shortcuts() []Shortcut[V] {
	return append([]Shortcut[V](nil), p.shortcuts...)
}

func (p *Picker[V]) SetShortcuts(shortcuts []Shortcut[V]) {
	p.shortcuts = append([]Shortcut[V](nil), shortcuts...)
}

// OnChange registers the callback fired after every Set, Apply and Clear.
func (p *Picker[V]) OnChange(fn func(v V, ok bool)) {
	p.onChange = fn
}

// Value returns the current value and whether one is set.
func (p *Picker[V]) Value() (V, bool) {
	return p.current, p.hasValue
}

// Current returns the current value as a Value, or nil when absent.
func (p *Picker[V]) Current() Value {
	if !p.hasValue {
		return nil
	}
	return p.current
}

func (p *Picker[V]) Set(v V) {
	p.current, p.hasValue = v, true
	p.changed()
}

// Apply evaluates s and makes the result the current value.
func (p *Picker[V]) Apply(s Shortcut[V]) V {
	v := s.Evaluate(p.env)
	p.Set(v)
	return v
}

func (p *Picker[V]) Clear() {
	var zero V
	p.current, p.hasValue = zero, false
	p.changed()
}

// Highlighted returns the shortcut matching the current value, if any.
func (p *Picker[V]) Highlighted() (Shortcut[V], bool) {
	return Selected(p.env, p.shortcuts, p.Current())
}

func (p *Picker[V]) changed() {
	if p.onChange != nil {
		p.onChange(p.current, p.hasValue)
	}
}
