package core_test

import (
	"fmt"
	"time"

	"github.com/jask/datepick/core"
)

func ExamplePicker() {
	now := time.Date(2026, time.February, 6, 12, 0, 0, 0, time.UTC)
	env := core.Env{Clock: core.FixedClock(now), Calendar: core.NewCalendar(time.UTC, time.Monday)}

	p := core.NewPicker(env, core.RangeToday(), core.RangeLastWeek())
	p.Apply(p.Shortcuts()[1])

	v, _ := p.Value()
	hl, _ := p.Highlighted()
	fmt.Println(v.From.Format("2006-01-02"), v.To.Format("2006-01-02"))
	fmt.Println(hl.Name())
	// Output:
	// 2026-01-30 2026-02-06
	// Last week
}

func ExampleNew() {
	now := time.Date(2026, time.February, 6, 12, 0, 0, 0, time.UTC)
	env := core.Env{Clock: core.FixedClock(now), Calendar: core.NewCalendar(time.UTC, time.Monday)}

	fortnight := core.New("Last 14 days", func(now time.Time, cal core.Calendar) core.Range {
		return core.NewRange(cal.StartOfDay(cal.AddDays(now, -14)), cal.EndOfDay(now))
	})
	fmt.Println(fortnight.Matches(env, core.NewRange(
		time.Date(2026, time.January, 23, 0, 0, 0, 0, time.UTC),
		env.Calendar.EndOfDay(now),
	)))
	// Output:
	// true
}
