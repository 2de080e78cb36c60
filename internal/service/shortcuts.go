package service

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/datepick/core"
	"github.com/jask/datepick/internal/config"
)

// UnknownShortcutError reports a name that matched no shortcut. Suggestion
// is the closest known name, or empty when nothing is close.
type UnknownShortcutError struct {
	Name       string
	Suggestion string
}

func (e *UnknownShortcutError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("unknown shortcut %q", e.Name)
	}
	return fmt.Sprintf("unknown shortcut %q (did you mean %q?)", e.Name, e.Suggestion)
}

// BuildShortcuts turns the picker config into shortcuts for mode V: preset
// keys in the configured order, then the custom relative shortcuts.
func BuildShortcuts[V core.Variant](cfg config.PickerConfig) ([]core.Shortcut[V], error) {
	out := make([]core.Shortcut[V], 0, len(cfg.Shortcuts)+len(cfg.Custom))
	for _, key := range cfg.Shortcuts {
		p, err := core.ParsePreset(key)
		if err != nil {
			return nil, fmt.Errorf("picker.shortcuts: %w", err)
		}
		s, err := core.FromPreset[V](p)
		if err != nil {
			return nil, fmt.Errorf("picker.shortcuts: %w", err)
		}
		out = append(out, s)
	}
	for _, cs := range cfg.Custom {
		off := core.Offset{Days: cs.Days, Months: cs.Months, Years: cs.Years}
		out = append(out, core.Relative[V](cs.Name, off))
	}
	return out, nil
}

// Normalized edit distances below fuzzyCutoff resolve to the candidate;
// below suggestCutoff the candidate is only offered as a suggestion.
const (
	fuzzyCutoff   = 0.4
	suggestCutoff = 0.7
)

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// shortcutKey identifies a shortcut in storage and on the command line.
func shortcutKey[V core.Variant](s core.Shortcut[V]) string {
	if s.Preset() != core.PresetCustom {
		return s.Preset().String()
	}
	return s.Name()
}

// lookup resolves name against candidates: exact name or preset key first,
// then the closest name by edit distance when it is close enough.
func lookup[V core.Variant](candidates []core.Shortcut[V], name string) (core.Shortcut[V], bool, error) {
	want := normalizeName(name)
	for _, s := range candidates {
		if normalizeName(s.Name()) == want || normalizeName(shortcutKey(s)) == want {
			return s, false, nil
		}
	}

	var (
		best     core.Shortcut[V]
		bestDist = -1
		bestLen  int
	)
	for _, s := range candidates {
		cand := normalizeName(s.Name())
		dist := levenshtein.ComputeDistance(want, cand)
		if bestDist < 0 || dist < bestDist {
			best, bestDist, bestLen = s, dist, max(len(want), len(cand))
		}
	}
	if bestDist < 0 {
		return core.Shortcut[V]{}, false, &UnknownShortcutError{Name: name}
	}
	ratio := 1.0
	if bestLen > 0 {
		ratio = float64(bestDist) / float64(bestLen)
	}
	if ratio < fuzzyCutoff {
		return best, true, nil
	}
	err := &UnknownShortcutError{Name: name}
	if ratio < suggestCutoff {
		err.Suggestion = best.Name()
	}
	return core.Shortcut[V]{}, false, err
}
