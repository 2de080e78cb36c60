package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jask/datepick/core"
)

func TestWriteICSAllDayRange(t *testing.T) {
	env := melbourneEnv(t)
	v := core.RangeLastWeek().Evaluate(env)

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, v, "Last week", env))

	parsed, err := ics.ParseCalendar(strings.NewReader(buf.String()))
	require.NoError(t, err)
	events := parsed.Events()
	require.Len(t, events, 1)

	ev := events[0]
	require.Equal(t, "20260130", ev.GetProperty(ics.ComponentPropertyDtStart).Value)
	// DTEND is exclusive: the range ends on 6 February.
	require.Equal(t, "20260207", ev.GetProperty(ics.ComponentPropertyDtEnd).Value)
	require.Equal(t, "Last week", ev.GetProperty(ics.ComponentPropertySummary).Value)
}

func TestWriteICSStampsFromClock(t *testing.T) {
	env := melbourneEnv(t)
	v := core.RangeToday().Evaluate(env)

	var first, second bytes.Buffer
	require.NoError(t, WriteICS(&first, v, "Today", env))
	require.NoError(t, WriteICS(&second, v, "Today", env))

	// Noon in Melbourne during daylight saving is 01:00 UTC.
	require.Contains(t, first.String(), "DTSTAMP:20260206T010000Z")
	require.Contains(t, first.String(), "CREATED:20260206T010000Z")
	require.Contains(t, second.String(), "DTSTAMP:20260206T010000Z")
}

func TestWriteICSSingleDate(t *testing.T) {
	env := melbourneEnv(t)
	v := core.DateTomorrow().Evaluate(env)

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, v, "Tomorrow", env))
	require.Contains(t, buf.String(), "DTSTART;VALUE=DATE:20260207")
	require.Contains(t, buf.String(), "DTEND;VALUE=DATE:20260208")
}

func TestWriteICSNil(t *testing.T) {
	require.ErrorIs(t, WriteICS(&bytes.Buffer{}, nil, "", core.Env{}), ErrNoValue)
}

func TestWriteYAML(t *testing.T) {
	p := newRangePicker(t, nil)
	p.State.Apply(p.State.Shortcuts()[0])

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, p.Entries()))

	var got []struct {
		Name     string    `yaml:"name"`
		Key      string    `yaml:"key"`
		From     time.Time `yaml:"from"`
		Selected bool      `yaml:"selected"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	require.Equal(t, "Today", got[0].Name)
	require.True(t, got[0].Selected)
	require.Equal(t, "last_month", got[2].Key)
	require.True(t, time.Date(2026, 1, 6, 0, 0, 0, 0, p.State.Env().Calendar.Location).Equal(got[2].From))
}
