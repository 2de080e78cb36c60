package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Mode selects single-date or date-range behavior.
type Mode int

const (
	ModeSingle Mode = iota + 1
	ModeRange
)

var ErrUnknownMode = errors.New("unknown mode")

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeRange:
		return "range"
	default:
		return "unknown"
	}
}

// ParseMode accepts "single" or "range" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "date":
		return ModeSingle, nil
	case "range":
		return ModeRange, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Value is either a Date or a Range. The set is closed.
type Value interface {
	Mode() Mode
	value()
}

// Variant constrains type parameters to the concrete value types. The
// interface Value itself is not a valid type argument.
type Variant interface {
	Date | Range
	Value
}

// ModeOf reports the mode of the variant type V.
func ModeOf[V Variant]() Mode {
	var zero V
	return zero.Mode()
}

// Date is a single point in time.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date { return Date{Time: t} }

func (Date) Mode() Mode { return ModeSingle }
func (Date) value()     {}

// Range is the closed interval [From, To].
type Range struct {
	From time.Time
	To   time.Time
}

// NewRange builds a range. It panics when from is after to; callers must
// order the endpoints themselves.
func NewRange(from, to time.Time) Range {
	if from.After(to) {
		panic(fmt.Sprintf("core: range from %s is after to %s", from.Format(time.RFC3339), to.Format(time.RFC3339)))
	}
	return Range{From: from, To: to}
}

func (Range) Mode() Mode { return ModeRange }
func (Range) value()     {}

// Equal compares both endpoints as instants.
func (r Range) Equal(o Range) bool {
	return r.From.Equal(o.From) && r.To.Equal(o.To)
}

// OnSameDay reports whether both endpoints fall on one calendar day.
func (r Range) OnSameDay(cal Calendar) bool {
	return cal.IsSameDay(r.From, r.To)
}

func (r Range) String() string {
	return r.From.Format(time.RFC3339) + "/" + r.To.Format(time.RFC3339)
}
