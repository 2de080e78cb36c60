package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/datepick/core"
	"github.com/jask/datepick/internal/config"
	"github.com/jask/datepick/internal/format"
	"github.com/jask/datepick/internal/service"
)

// ConfigChangedMsg carries a reloaded configuration. Display settings and
// shortcuts are swapped in place; calendar changes need a restart.
type ConfigChangedMsg struct {
	Config config.Config
	Err    error
}

type restoredMsg[V core.Variant] struct {
	value V
	ok    bool
}

type errMsg struct{ error }

// Model is the interactive picker for values of type V.
type Model[V core.Variant] struct {
	ctx    context.Context
	picker *service.Picker[V]
	bar    *ShortcutBar
	entry  *dateEntry

	status    string
	statusErr bool
	committed bool
	quitting  bool
}

func New[V core.Variant](ctx context.Context, picker *service.Picker[V]) *Model[V] {
	m := &Model[V]{ctx: ctx, picker: picker, bar: NewShortcutBar(nil)}
	m.syncBar()
	if s, ok := picker.State.Highlighted(); ok {
		m.bar.SetCursor(m.indexOf(s))
	}
	return m
}

// Committed reports the value saved with "s", if any. ok is false when the
// user quit without saving or saved a cleared picker.
func (m *Model[V]) Committed() (v V, ok bool) {
	if !m.committed {
		return v, false
	}
	return m.picker.State.Value()
}

func (m *Model[V]) Init() tea.Cmd {
	return m.restoreCmd()
}

func (m *Model[V]) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		v, ok, err := m.picker.Latest(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return restoredMsg[V]{value: v, ok: ok}
	}
}

func (m *Model[V]) syncBar() {
	shortcuts := m.picker.State.Shortcuts()
	labels := make([]string, len(shortcuts))
	for i, s := range shortcuts {
		labels[i] = s.Name()
	}
	m.bar.SetLabels(labels)
}

func (m *Model[V]) indexOf(s core.Shortcut[V]) int {
	for i, c := range m.picker.State.Shortcuts() {
		if c.Equal(s) {
			return i
		}
	}
	return -1
}

func (m *Model[V]) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model[V]) setError(s string) {
	m.status, m.statusErr = s, true
}

func (m *Model[V]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.entry != nil {
			return m.updateEntry(msg)
		}
		return m.updateKey(msg)
	case restoredMsg[V]:
		// A value picked before the restore arrived wins.
		if _, has := m.picker.State.Value(); msg.ok && !has {
			m.picker.State.Set(msg.value)
			if s, ok := m.picker.State.Highlighted(); ok {
				m.bar.SetCursor(m.indexOf(s))
			}
			m.setStatus("Restored last selection.")
		}
	case ConfigChangedMsg:
		m.applyConfig(msg)
	case errMsg:
		m.setError("error: " + msg.Error())
	}
	return m, nil
}

func (m *Model[V]) applyConfig(msg ConfigChangedMsg) {
	if msg.Err != nil {
		m.setError("config: " + msg.Err.Error())
		return
	}
	opts, err := format.FromConfig(msg.Config)
	if err != nil {
		m.setError("config: " + err.Error())
		return
	}
	shortcuts, err := service.BuildShortcuts[V](msg.Config.Picker)
	if err != nil {
		m.setError("config: " + err.Error())
		return
	}
	opts.Calendar = m.picker.State.Env().Calendar
	m.picker.Format = opts
	m.picker.State.SetShortcuts(shortcuts)
	m.syncBar()
	m.setStatus("Configuration reloaded.")
}

func (m *Model[V]) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "x", "delete":
		if _, ok := m.picker.State.Value(); !ok {
			return m, nil
		}
		m.picker.State.Clear()
		m.setStatus("Selection cleared.")
		return m, nil
	case "c":
		m.entry = newDateEntry(m.picker.State.Env().Calendar, m.picker.State.Mode())
		m.setStatus("Custom " + m.picker.State.Mode().String() + ": " + strings.TrimSuffix(m.entry.prompt(), ": "))
		return m, nil
	case "s":
		return m.commit()
	}

	res := m.bar.HandleKey(msg.String())
	if res.Action == BarActionApply {
		shortcuts := m.picker.State.Shortcuts()
		s := shortcuts[res.Index]
		v := m.picker.State.Apply(s)
		m.setStatus(fmt.Sprintf("%s: %s", s.Name(), m.picker.Format.Label(s.Mode(), v)))
	}
	return m, nil
}

// commit saves the current value, or records the clear, and quits.
func (m *Model[V]) commit() (tea.Model, tea.Cmd) {
	v, ok := m.picker.State.Value()
	var err error
	if ok {
		via, _ := m.picker.State.Highlighted()
		err = m.picker.Commit(m.ctx, v, via)
	} else {
		err = m.picker.Clear(m.ctx)
	}
	if err != nil {
		m.setError("save: " + err.Error())
		return m, nil
	}
	m.committed = true
	m.quitting = true
	return m, tea.Quit
}

func (m *Model[V]) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, err := m.entry.handleKey(msg.String())
	if err != nil {
		m.setError(err.Error())
		return m, nil
	}
	switch action {
	case entryActionCancelled:
		m.entry = nil
		m.setStatus("Custom entry cancelled.")
	case entryActionNext:
		m.setStatus("Custom range: " + strings.TrimSuffix(m.entry.prompt(), ": "))
	case entryActionDone:
		cal := m.picker.State.Env().Calendar
		v := customValue[V](cal, m.entry.start, m.entry.end)
		m.entry = nil
		m.picker.State.Set(v)
		if s, ok := m.picker.State.Highlighted(); ok {
			m.bar.SetCursor(m.indexOf(s))
		}
		m.setStatus("Custom: " + m.picker.Format.Label(m.picker.State.Mode(), v))
	}
	return m, nil
}

func (m *Model[V]) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	opts := m.picker.Format
	mode := m.picker.State.Mode()
	current := m.picker.State.Current()

	b.WriteString(headerStyle.Render(opts.MonthHeader(m.headerTime(current))))
	b.WriteString("\n\n")

	if current == nil {
		b.WriteString(placeholderStyle.Render(opts.Placeholder(mode)))
	} else {
		b.WriteString(valueStyle.Render(opts.Label(mode, current)))
		b.WriteString("  ")
		b.WriteString(clearHintStyle.Render("(x to clear)"))
	}
	b.WriteString("\n\n")

	selected := -1
	if s, ok := m.picker.State.Highlighted(); ok {
		selected = m.indexOf(s)
	}
	b.WriteString(m.bar.Render(selected, m.entry == nil))
	b.WriteString("\n")

	if m.entry != nil {
		b.WriteString("\n")
		b.WriteString(m.entry.prompt())
		b.WriteString(inputStyle.Render(m.entry.input + "_"))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(statusErrStyle.Render(m.status))
		} else {
			b.WriteString(statusStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help())
	return b.String()
}

// headerTime is the start of the current value, or now.
func (m *Model[V]) headerTime(v core.Value) time.Time {
	switch x := v.(type) {
	case core.Date:
		return x.Time
	case core.Range:
		return x.From
	}
	return m.picker.State.Env().Now()
}

func (m *Model[V]) help() string {
	pairs := [][2]string{
		{"h/l", "move"},
		{"enter", "apply"},
		{"c", "custom"},
		{"x", "clear"},
		{"s", "save"},
		{"q", "quit"},
	}
	if m.entry != nil {
		pairs = [][2]string{{"enter", "confirm"}, {"backspace", "delete"}, {"esc", "cancel"}}
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = keyStyle.Render(p[0]) + " " + helpDescStyle.Render(p[1])
	}
	return strings.Join(parts, "  ")
}
