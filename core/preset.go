package core

import (
	"errors"
	"fmt"
	"strings"
)

// Preset tags the computation behind a built-in shortcut.
type Preset int

const (
	PresetCustom Preset = iota
	PresetToday
	PresetYesterday
	PresetTomorrow
	PresetLastWeek
	PresetLastMonth
	PresetLastQuarter
	PresetLastYear
	PresetThisWeek
	PresetThisMonth
	PresetYearToDate
)

var (
	ErrUnknownPreset = errors.New("unknown preset")
	ErrPresetMode    = errors.New("preset not available in mode")
)

var presetKeys = map[Preset]string{
	PresetCustom:      "custom",
	PresetToday:       "today",
	PresetYesterday:   "yesterday",
	PresetTomorrow:    "tomorrow",
	PresetLastWeek:    "last_week",
	PresetLastMonth:   "last_month",
	PresetLastQuarter: "last_quarter",
	PresetLastYear:    "last_year",
	PresetThisWeek:    "this_week",
	PresetThisMonth:   "this_month",
	PresetYearToDate:  "year_to_date",
}

// singlePresets and rangePresets are in catalog order.
var (
	singlePresets = []Preset{PresetToday, PresetYesterday, PresetTomorrow}
	rangePresets  = []Preset{
		PresetToday,
		PresetLastWeek,
		PresetLastMonth,
		PresetLastQuarter,
		PresetLastYear,
		PresetThisWeek,
		PresetThisMonth,
		PresetYearToDate,
	}
)

// String returns the config key, e.g. "last_week".
func (p Preset) String() string {
	if k, ok := presetKeys[p]; ok {
		return k
	}
	return fmt.Sprintf("preset(%d)", int(p))
}

func (p Preset) MarshalText() ([]byte, error) {
	if _, ok := presetKeys[p]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPreset, int(p))
	}
	return []byte(p.String()), nil
}

func (p *Preset) UnmarshalText(b []byte) error {
	parsed, err := ParsePreset(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePreset accepts keys such as "last_week", "last-week" or "Last Week".
func ParsePreset(s string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	for p, k := range presetKeys {
		if k == key {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPreset, s)
}

// Presets lists the built-in presets available for mode V.
func Presets[V Variant]() []Preset {
	if ModeOf[V]() == ModeSingle {
		return append([]Preset(nil), singlePresets...)
	}
	return append([]Preset(nil), rangePresets...)
}
