package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jask/datepick/core"
	"github.com/jask/datepick/internal/config"
	"github.com/jask/datepick/internal/database/repository"
	"github.com/jask/datepick/internal/format"
)

// ErrModeMismatch is returned when a stored selection belongs to the other
// picker mode.
var ErrModeMismatch = errors.New("stored selection has a different mode")

// SelectionStore persists picker interactions. *repository.SelectionRepo
// satisfies it.
type SelectionStore interface {
	Insert(ctx context.Context, s repository.Selection) error
	Latest(ctx context.Context, pickerID string) (*repository.Selection, error)
	History(ctx context.Context, pickerID string, limit int) ([]repository.Selection, error)
	Prune(ctx context.Context, pickerID string, keep int) (int64, error)
}

// Picker wraps the core picker state with lookup, persistence and
// formatting. Store and Logger are optional.
type Picker[V core.Variant] struct {
	ID     string
	State  *core.Picker[V]
	Format format.Options
	Store  SelectionStore
	Logger *slog.Logger
	// Keep bounds stored history per picker; 0 keeps everything.
	Keep int
}

// Record is one stored interaction decoded for mode V.
type Record[V core.Variant] struct {
	ID       string
	Value    V
	Cleared  bool
	Shortcut string
	At       time.Time
}

// Entry is a shortcut evaluated against the current clock.
type Entry struct {
	Name     string    `yaml:"name"`
	Key      string    `yaml:"key"`
	Mode     string    `yaml:"mode"`
	From     time.Time `yaml:"from"`
	To       time.Time `yaml:"to"`
	Label    string    `yaml:"label"`
	Selected bool      `yaml:"selected"`
}

func NewPicker[V core.Variant](id string, env core.Env, shortcuts []core.Shortcut[V]) *Picker[V] {
	return &Picker[V]{
		ID:     id,
		State:  core.NewPicker(env, shortcuts...),
		Format: format.Default(),
	}
}

// FromConfig builds a picker for mode V from the loaded configuration.
func FromConfig[V core.Variant](cfg config.Config, clock core.Clock, store SelectionStore, logger *slog.Logger) (*Picker[V], error) {
	if m := cfg.Mode(); m != core.ModeOf[V]() {
		return nil, fmt.Errorf("picker mode is %s, not %s", m, core.ModeOf[V]())
	}
	opts, err := format.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	shortcuts, err := BuildShortcuts[V](cfg.Picker)
	if err != nil {
		return nil, err
	}
	p := NewPicker(cfg.Picker.ID, core.Env{Clock: clock, Calendar: opts.Calendar}, shortcuts)
	p.Format = opts
	p.Store = store
	p.Logger = logger
	p.Keep = cfg.Database.Keep
	return p, nil
}

func (p *Picker[V]) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// candidates lists the configured shortcuts followed by the built-in presets
// of mode V that are not configured.
func (p *Picker[V]) candidates() []core.Shortcut[V] {
	out := p.State.Shortcuts()
	have := make(map[core.Preset]bool, len(out))
	for _, s := range out {
		have[s.Preset()] = true
	}
	for _, preset := range core.Presets[V]() {
		if have[preset] {
			continue
		}
		if s, err := core.FromPreset[V](preset); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// Lookup finds a shortcut by display name or preset key, case-insensitively.
// A close misspelling resolves to the nearest name; otherwise the error is
// an *UnknownShortcutError.
func (p *Picker[V]) Lookup(name string) (core.Shortcut[V], error) {
	s, fuzzy, err := lookup(p.candidates(), name)
	if err != nil {
		return s, err
	}
	if fuzzy {
		p.logger().Debug("fuzzy shortcut match", "picker", p.ID, "input", name, "shortcut", s.Name())
	}
	return s, nil
}

// Resolve looks up name and evaluates it without changing the state.
func (p *Picker[V]) Resolve(name string) (V, core.Shortcut[V], error) {
	s, err := p.Lookup(name)
	if err != nil {
		var zero V
		return zero, s, err
	}
	return s.Evaluate(p.State.Env()), s, nil
}

// Commit records v and then makes it the current value. via is the shortcut
// that produced v, or the zero Shortcut for a custom value. The state is left
// unchanged when recording fails.
func (p *Picker[V]) Commit(ctx context.Context, v V, via core.Shortcut[V]) error {
	from, to := bounds(v)
	row := repository.Selection{
		ID:       uuid.NewString(),
		PickerID: p.ID,
		Mode:     core.ModeOf[V]().String(),
		From:     &from,
		To:       &to,
	}
	if !via.IsZero() {
		key := shortcutKey(via)
		row.Shortcut = &key
	}
	if err := p.record(ctx, row); err != nil {
		return err
	}
	p.State.Set(v)
	p.logger().Info("selection committed", "picker", p.ID, "value", p.Format.Label(core.ModeOf[V](), v), "shortcut", row.Shortcut != nil)
	return nil
}

// Clear records the clear and then removes the current value.
func (p *Picker[V]) Clear(ctx context.Context) error {
	err := p.record(ctx, repository.Selection{
		ID:       uuid.NewString(),
		PickerID: p.ID,
		Mode:     core.ModeOf[V]().String(),
		Cleared:  true,
	})
	if err != nil {
		return err
	}
	p.State.Clear()
	p.logger().Info("selection cleared", "picker", p.ID)
	return nil
}

func (p *Picker[V]) record(ctx context.Context, row repository.Selection) error {
	if p.Store == nil {
		return nil
	}
	row.CreatedAt = p.State.Env().Now().UTC()
	if err := p.Store.Insert(ctx, row); err != nil {
		return fmt.Errorf("record selection: %w", err)
	}
	if p.Keep > 0 {
		// The row is stored; a failed prune only delays trimming.
		n, err := p.Store.Prune(ctx, p.ID, p.Keep)
		switch {
		case err != nil:
			p.logger().Warn("prune history failed", "picker", p.ID, "err", err)
		case n > 0:
			p.logger().Debug("history pruned", "picker", p.ID, "removed", n)
		}
	}
	return nil
}

// Latest returns the last committed value. It reports false when nothing was
// stored or the last interaction was a clear.
func (p *Picker[V]) Latest(ctx context.Context) (V, bool, error) {
	var zero V
	if p.Store == nil {
		return zero, false, nil
	}
	row, err := p.Store.Latest(ctx, p.ID)
	if err != nil {
		return zero, false, fmt.Errorf("latest selection: %w", err)
	}
	if row == nil || row.Cleared {
		return zero, false, nil
	}
	v, err := decode[V](*row)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Restore loads the last committed value into the state.
func (p *Picker[V]) Restore(ctx context.Context) (V, bool, error) {
	v, ok, err := p.Latest(ctx)
	if err != nil || !ok {
		return v, ok, err
	}
	p.State.Set(v)
	p.logger().Debug("selection restored", "picker", p.ID)
	return v, true, nil
}

// History lists stored interactions newest first.
func (p *Picker[V]) History(ctx context.Context, limit int) ([]Record[V], error) {
	if p.Store == nil {
		return nil, nil
	}
	rows, err := p.Store.History(ctx, p.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("selection history: %w", err)
	}
	out := make([]Record[V], 0, len(rows))
	for _, row := range rows {
		rec := Record[V]{ID: row.ID, Cleared: row.Cleared, At: row.CreatedAt}
		if row.Shortcut != nil {
			rec.Shortcut = *row.Shortcut
		}
		if !row.Cleared {
			v, err := decode[V](row)
			if err != nil {
				return nil, err
			}
			rec.Value = v
		}
		out = append(out, rec)
	}
	return out, nil
}

// Entries evaluates every configured shortcut and flags the one matching the
// current value.
func (p *Picker[V]) Entries() []Entry {
	env := p.State.Env()
	selected, ok := p.State.Highlighted()
	shortcuts := p.State.Shortcuts()
	out := make([]Entry, 0, len(shortcuts))
	for _, s := range shortcuts {
		v := s.Evaluate(env)
		from, to := bounds(v)
		out = append(out, Entry{
			Name:     s.Name(),
			Key:      shortcutKey(s),
			Mode:     s.Mode().String(),
			From:     from,
			To:       to,
			Label:    p.Format.Label(s.Mode(), v),
			Selected: ok && s.Equal(selected),
		})
	}
	return out
}

// bounds returns the endpoints of v; a date is its own start and end.
func bounds(v core.Value) (time.Time, time.Time) {
	switch x := v.(type) {
	case core.Date:
		return x.Time, x.Time
	case core.Range:
		return x.From, x.To
	}
	return time.Time{}, time.Time{}
}

func decode[V core.Variant](row repository.Selection) (V, error) {
	var out V
	if row.Mode != core.ModeOf[V]().String() {
		return out, fmt.Errorf("%w: %s", ErrModeMismatch, row.Mode)
	}
	if row.From == nil || row.To == nil {
		return out, fmt.Errorf("selection %s has no bounds", row.ID)
	}
	switch dst := any(&out).(type) {
	case *core.Date:
		*dst = core.NewDate(*row.From)
	case *core.Range:
		if row.From.After(*row.To) {
			return out, fmt.Errorf("selection %s: from after to", row.ID)
		}
		*dst = core.NewRange(*row.From, *row.To)
	}
	return out, nil
}
