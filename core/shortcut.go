package core

import (
	"time"

	"github.com/google/uuid"
)

// Action computes a shortcut's value from the current instant. It is called
// on every evaluation and never cached.
type Action[V Variant] func(now time.Time, cal Calendar) V

// Shortcut is a named, lazily evaluated producer of a preset value.
// Shortcuts compare by identity: two shortcuts built from the same name and
// action are still different.
type Shortcut[V Variant] struct {
	id     uuid.UUID
	name   string
	preset Preset
	action Action[V]
}

// New returns a shortcut with a fresh identity. Neither argument is
// validated and the action is not invoked.
func New[V Variant](name string, action Action[V]) Shortcut[V] {
	return newShortcut(name, PresetCustom, action)
}

func newShortcut[V Variant](name string, p Preset, action Action[V]) Shortcut[V] {
	return Shortcut[V]{id: uuid.New(), name: name, preset: p, action: action}
}

// Key is the identity, usable as a map key.
func (s Shortcut[V]) Key() uuid.UUID { return s.id }

func (s Shortcut[V]) Name() string   { return s.name }
func (s Shortcut[V]) Preset() Preset { return s.preset }
func (s Shortcut[V]) Mode() Mode     { return ModeOf[V]() }

// Equal compares identities only.
func (s Shortcut[V]) Equal(o Shortcut[V]) bool {
	return s.id == o.id
}

// IsZero reports whether s was never constructed.
func (s Shortcut[V]) IsZero() bool {
	return s.id == uuid.Nil
}

// Evaluate invokes the action once.
func (s Shortcut[V]) Evaluate(env Env) V {
	return s.action(env.Now(), env.Calendar)
}

// Matches evaluates the shortcut once and compares the result with v.
// Dates match on the same calendar day; ranges match only when both
// endpoints are equal. A nil v or a v of the other variant never matches.
func (s Shortcut[V]) Matches(env Env, v Value) bool {
	return matches(env.Calendar, s.Evaluate(env), v)
}

func matches(cal Calendar, computed, v Value) bool {
	switch want := computed.(type) {
	case Date:
		got, ok := v.(Date)
		return ok && cal.IsSameDay(want.Time, got.Time)
	case Range:
		got, ok := v.(Range)
		return ok && want.Equal(got)
	default:
		return false
	}
}

// Selected returns the first shortcut matching v.
func Selected[V Variant](env Env, shortcuts []Shortcut[V], v Value) (Shortcut[V], bool) {
	if v == nil {
		return Shortcut[V]{}, false
	}
	for _, s := range shortcuts {
		if s.Matches(env, v) {
			return s, true
		}
	}
	return Shortcut[V]{}, false
}
