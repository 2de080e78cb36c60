package service

import (
	"errors"
	"fmt"
	"io"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jask/datepick/core"
)

var ErrNoValue = errors.New("no value to export")

// WriteICS writes v as a single all-day VEVENT. DTEND is the day after the
// last covered day. CREATED and DTSTAMP come from env's clock.
func WriteICS(w io.Writer, v core.Value, summary string, env core.Env) error {
	if v == nil {
		return ErrNoValue
	}
	cal := env.Calendar
	from, to := bounds(v)
	start := cal.StartOfDay(from)
	end := cal.AddDays(cal.StartOfDay(to), 1)

	c := ics.NewCalendar()
	c.SetMethod(ics.MethodPublish)
	c.SetProductId("-//datepick//selection//EN")

	now := env.Now()
	event := c.AddEvent(uuid.NewString() + "@datepick")
	event.SetCreatedTime(now)
	event.SetDtStampTime(now)
	event.SetAllDayStartAt(start)
	event.SetAllDayEndAt(end)
	event.SetSummary(summary)

	if err := c.SerializeTo(w); err != nil {
		return fmt.Errorf("write ics: %w", err)
	}
	return nil
}

// WriteYAML writes the evaluated catalog as a YAML sequence.
func WriteYAML(w io.Writer, entries []Entry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	return enc.Close()
}
