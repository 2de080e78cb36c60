package tui

import (
	"errors"
	"time"

	"github.com/jask/datepick/core"
)

const entryLayout = "2006-01-02"

var (
	errEntryDate  = errors.New("invalid date, use YYYY-MM-DD")
	errEntryOrder = errors.New("end date must be on or after start date")
)

type entryAction int

const (
	entryActionNone entryAction = iota
	entryActionNext
	entryActionDone
	entryActionCancelled
)

// dateEntry collects a custom value as typed dates: one for a single date,
// start then end for a range. Dates are read in the calendar's location.
type dateEntry struct {
	cal      core.Calendar
	twoStep  bool
	input    string
	start    time.Time
	end      time.Time
	hasStart bool
}

func newDateEntry(cal core.Calendar, mode core.Mode) *dateEntry {
	return &dateEntry{cal: cal, twoStep: mode == core.ModeRange}
}

func (e *dateEntry) prompt() string {
	switch {
	case e.twoStep && e.hasStart:
		return "End date (YYYY-MM-DD): "
	case e.twoStep:
		return "Start date (YYYY-MM-DD): "
	default:
		return "Date (YYYY-MM-DD): "
	}
}

func (e *dateEntry) parse() (time.Time, error) {
	loc := e.cal.Location
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(entryLayout, e.input, loc)
	if err != nil {
		return time.Time{}, errEntryDate
	}
	return t, nil
}

func (e *dateEntry) handleKey(keyName string) (entryAction, error) {
	switch keyName {
	case "esc":
		return entryActionCancelled, nil
	case "backspace":
		if len(e.input) > 0 {
			e.input = e.input[:len(e.input)-1]
		}
		return entryActionNone, nil
	case "enter":
		t, err := e.parse()
		if err != nil {
			return entryActionNone, err
		}
		e.input = ""
		if !e.twoStep {
			e.start, e.end = t, t
			return entryActionDone, nil
		}
		if !e.hasStart {
			e.start, e.hasStart = t, true
			return entryActionNext, nil
		}
		if t.Before(e.start) {
			return entryActionNone, errEntryOrder
		}
		e.end = t
		return entryActionDone, nil
	default:
		if len(keyName) == 1 && keyName[0] >= 32 && keyName[0] < 127 {
			e.input += keyName
		}
		return entryActionNone, nil
	}
}

// customValue spans whole days from start through end.
func customValue[V core.Variant](cal core.Calendar, start, end time.Time) V {
	var out V
	switch dst := any(&out).(type) {
	case *core.Date:
		*dst = core.NewDate(cal.StartOfDay(start))
	case *core.Range:
		*dst = core.NewRange(cal.StartOfDay(start), cal.EndOfDay(end))
	}
	return out
}
