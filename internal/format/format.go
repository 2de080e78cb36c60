// Package format renders picker values and month headers as text.
package format

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goodsign/monday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jask/datepick/core"
	"github.com/jask/datepick/internal/config"
)

// Options controls how values are labelled. Layouts use Go reference time.
type Options struct {
	Layout            string
	MonthLayout       string
	Separator         string
	PlaceholderRange  string
	PlaceholderSingle string
	Locale            language.Tag
	Calendar          core.Calendar
}

// Default mirrors the stock picker: "2 January", "January 2006" and an en
// dash between range endpoints.
func Default() Options {
	return Options{
		Layout:            "2 January",
		MonthLayout:       "January 2006",
		Separator:         " – ",
		PlaceholderRange:  "Select date range",
		PlaceholderSingle: "Select date",
		Locale:            language.English,
		Calendar:          core.NewCalendar(time.Local, time.Monday),
	}
}

// FromConfig builds options from the display and calendar sections. Empty
// display fields keep their defaults.
func FromConfig(cfg config.Config) (Options, error) {
	o := Default()
	cal, err := cfg.ResolveCalendar()
	if err != nil {
		return Options{}, err
	}
	o.Calendar = cal
	o.Locale = cfg.Locale()

	d := cfg.Display
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&o.Layout, d.Format)
	set(&o.MonthLayout, d.MonthFormat)
	set(&o.Separator, d.Separator)
	set(&o.PlaceholderRange, d.PlaceholderRange)
	set(&o.PlaceholderSingle, d.PlaceholderSingle)
	return o, nil
}

// Placeholder is shown when the picker holds no value.
func (o Options) Placeholder(mode core.Mode) string {
	if mode == core.ModeSingle {
		return o.PlaceholderSingle
	}
	return o.PlaceholderRange
}

// Label renders v, or the mode's placeholder when v is nil. A range that
// starts and ends on the same day shows a single date.
func (o Options) Label(mode core.Mode, v core.Value) string {
	switch x := v.(type) {
	case core.Date:
		return o.date(x.Time)
	case core.Range:
		if x.OnSameDay(o.Calendar) {
			return o.date(x.From)
		}
		return o.date(x.From) + o.Separator + o.date(x.To)
	default:
		return o.Placeholder(mode)
	}
}

// MonthHeader renders the month of t in the locale with only its first
// letter upper-cased.
func (o Options) MonthHeader(t time.Time) string {
	s := o.format(t, o.MonthLayout)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(o.Locale).String(string(r)) + s[size:]
}

func (o Options) date(t time.Time) string {
	return o.format(t, o.Layout)
}

func (o Options) format(t time.Time, layout string) string {
	return monday.Format(o.Calendar.In(t), layout, localeFor(o.Locale))
}

// localeFor maps a language tag to the closest monday locale: the exact
// language and region, then any region of the language, then en_US.
func localeFor(tag language.Tag) monday.Locale {
	base, _ := tag.Base()
	region, _ := tag.Region()
	want := monday.Locale(base.String() + "_" + region.String())
	prefix := base.String() + "_"
	var fallback monday.Locale
	for _, l := range monday.ListLocales() {
		if l == want {
			return l
		}
		if fallback == "" && strings.HasPrefix(string(l), prefix) {
			fallback = l
		}
	}
	if fallback != "" {
		return fallback
	}
	return monday.LocaleEnUS
}
