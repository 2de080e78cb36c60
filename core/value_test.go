package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{" Range ", ModeRange},
		{"single", ModeSingle},
		{"DATE", ModeSingle},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseMode("week"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("ParseMode(week) err = %v, want ErrUnknownMode", err)
	}
}

func TestModeOfVariants(t *testing.T) {
	if got := ModeOf[Date](); got != ModeSingle {
		t.Fatalf("ModeOf[Date] = %v", got)
	}
	if got := ModeOf[Range](); got != ModeRange {
		t.Fatalf("ModeOf[Range] = %v", got)
	}
	if ModeRange.String() != "range" || NewDate(time.Now()).Mode().String() != "single" {
		t.Fatalf("unexpected mode names")
	}
	if Mode(0).String() != "unknown" {
		t.Fatalf("zero mode = %q", Mode(0).String())
	}
}

func TestNewRangeRejectsReversedEndpoints(t *testing.T) {
	from := time.Date(2026, time.February, 6, 0, 0, 0, 0, time.UTC)
	_ = NewRange(from, from)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for reversed endpoints")
		}
	}()
	NewRange(from.Add(time.Second), from)
}

func TestRangeEqualIsStructural(t *testing.T) {
	loc := mustLoad(t, "Australia/Melbourne")
	from := time.Date(2026, time.February, 1, 0, 0, 0, 0, loc)
	to := time.Date(2026, time.February, 6, 23, 0, 0, 0, loc)
	r := NewRange(from, to)

	if !r.Equal(NewRange(from, to)) {
		t.Fatalf("identical range not equal")
	}
	// Same instants expressed in another zone.
	if !r.Equal(NewRange(from.UTC(), to.UTC())) {
		t.Fatalf("range in UTC not equal")
	}
	if r.Equal(NewRange(from, to.Add(time.Nanosecond))) || r.Equal(NewRange(from.Add(-time.Nanosecond), to)) {
		t.Fatalf("ranges one nanosecond apart compare equal")
	}
}

func TestRangeOnSameDayIsDerived(t *testing.T) {
	cal := NewCalendar(time.UTC, time.Monday)
	base := time.Date(2026, time.February, 6, 0, 0, 0, 0, time.UTC)
	for _, span := range []time.Duration{0, time.Hour, 23 * time.Hour, 24 * time.Hour, 72 * time.Hour} {
		r := NewRange(base, base.Add(span))
		if got, want := r.OnSameDay(cal), cal.IsSameDay(r.From, r.To); got != want {
			t.Fatalf("span %s: OnSameDay = %v, want %v", span, got, want)
		}
	}
	if !NewRange(cal.StartOfDay(base), cal.EndOfDay(base)).OnSameDay(cal) {
		t.Fatalf("start and end of day should be on the same day")
	}
}
