package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/datepick/core"
	"github.com/jask/datepick/internal/config"
	"github.com/jask/datepick/internal/database"
	"github.com/jask/datepick/internal/database/repository"
	"github.com/jask/datepick/internal/service"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "delete":
		return tea.KeyMsg{Type: tea.KeyDelete}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func typeKeys[V core.Variant](m *Model[V], keys ...string) {
	for _, k := range keys {
		m.Update(keyMsg(k))
	}
}

func typeText[V core.Variant](m *Model[V], s string) {
	for _, r := range s {
		m.Update(keyMsg(string(r)))
	}
}

func melbourneEnv(t *testing.T) core.Env {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Melbourne")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := time.Date(2026, 2, 6, 12, 0, 0, 0, loc)
	return core.Env{Clock: core.FixedClock(now), Calendar: core.NewCalendar(loc, time.Monday)}
}

func newRangeModel(t *testing.T, store service.SelectionStore) (*Model[core.Range], *service.Picker[core.Range]) {
	t.Helper()
	p := service.NewPicker("default", melbourneEnv(t), core.DefaultShortcuts[core.Range]())
	p.Format.Calendar = p.State.Env().Calendar
	p.Store = store
	return New(context.Background(), p), p
}

func newStore(t *testing.T) *repository.SelectionRepo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := database.RunMigrations(dbPath); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewSelectionRepo(db)
}

func assertView(t *testing.T, view string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(view, w) {
			t.Fatalf("view missing %q:\n%s", w, view)
		}
	}
}

func highlightedName[V core.Variant](t *testing.T, p *service.Picker[V]) string {
	t.Helper()
	s, ok := p.State.Highlighted()
	if !ok {
		t.Fatalf("no shortcut highlighted")
	}
	return s.Name()
}

func TestViewPlaceholder(t *testing.T) {
	m, _ := newRangeModel(t, nil)
	view := m.View()
	assertView(t, view, "February 2026", "Select date range", "[Today]", ">[Today]")
	if strings.Contains(view, "x to clear") {
		t.Fatalf("clear hint shown without a value")
	}
}

func TestApplyShortcutHighlights(t *testing.T) {
	m, p := newRangeModel(t, nil)
	typeKeys(m, "l", "enter")

	v, ok := p.State.Value()
	if !ok || v.From.Day() != 30 {
		t.Fatalf("value = %v, %v; want last week", v, ok)
	}
	if got := highlightedName(t, p); got != "Last week" {
		t.Fatalf("highlighted = %q", got)
	}
	assertView(t, m.View(), "30 January – 6 February", "x to clear", "January 2026")
}

func TestDigitAppliesDirectly(t *testing.T) {
	m, p := newRangeModel(t, nil)
	typeKeys(m, "3")

	if got := highlightedName(t, p); got != "Last month" {
		t.Fatalf("highlighted = %q", got)
	}
	if m.bar.Cursor() != 2 {
		t.Fatalf("cursor = %d, want 2", m.bar.Cursor())
	}
}

func TestClearKeys(t *testing.T) {
	for _, key := range []string{"x", "delete"} {
		m, p := newRangeModel(t, nil)
		typeKeys(m, "enter", key)
		if _, ok := p.State.Value(); ok {
			t.Fatalf("%s: value still set", key)
		}
		assertView(t, m.View(), "Select date range")
	}
}

func TestCustomRangeEntry(t *testing.T) {
	m, p := newRangeModel(t, nil)
	typeKeys(m, "c")
	if m.entry == nil {
		t.Fatalf("custom entry not opened")
	}
	assertView(t, m.View(), "Start date (YYYY-MM-DD)")

	typeText(m, "2026-02-0")
	typeKeys(m, "enter")
	if !m.statusErr || !strings.Contains(m.status, "invalid date") {
		t.Fatalf("status = %q (err=%v), want invalid date", m.status, m.statusErr)
	}

	typeText(m, "2")
	typeKeys(m, "enter")
	if m.statusErr {
		t.Fatalf("unexpected error status %q", m.status)
	}
	assertView(t, m.View(), "End date (YYYY-MM-DD)")

	typeText(m, "2026-02-01")
	typeKeys(m, "enter")
	if !m.statusErr || !strings.Contains(m.status, "on or after start") {
		t.Fatalf("status = %q, want order error", m.status)
	}

	typeText(m, "2026-02-04")
	typeKeys(m, "enter")
	if m.entry != nil {
		t.Fatalf("entry still open after end date")
	}

	v, ok := p.State.Value()
	if !ok {
		t.Fatalf("no value after custom entry")
	}
	cal := p.State.Env().Calendar
	loc := cal.Location
	if !v.From.Equal(time.Date(2026, 2, 2, 0, 0, 0, 0, loc)) || !v.To.Equal(cal.EndOfDay(time.Date(2026, 2, 4, 0, 0, 0, 0, loc))) {
		t.Fatalf("custom range = %s", v)
	}
	if _, ok := p.State.Highlighted(); ok {
		t.Fatalf("custom range highlighted a shortcut")
	}
	assertView(t, m.View(), "2 February – 4 February")
}

func TestCustomEntryMatchingShortcutHighlights(t *testing.T) {
	m, p := newRangeModel(t, nil)
	typeKeys(m, "c")
	typeText(m, "2026-01-30")
	typeKeys(m, "enter")
	typeText(m, "2026-02-06")
	typeKeys(m, "enter")

	if got := highlightedName(t, p); got != "Last week" {
		t.Fatalf("highlighted = %q", got)
	}
	if m.bar.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1", m.bar.Cursor())
	}
}

func TestCustomEntryBackspaceAndCancel(t *testing.T) {
	m, p := newRangeModel(t, nil)
	typeKeys(m, "c")
	typeText(m, "2026x")
	typeKeys(m, "backspace")
	if m.entry.input != "2026" {
		t.Fatalf("input = %q", m.entry.input)
	}

	typeKeys(m, "esc")
	if m.entry != nil {
		t.Fatalf("entry still open after esc")
	}
	if _, ok := p.State.Value(); ok {
		t.Fatalf("cancelled entry set a value")
	}
}

func TestCustomSingleDate(t *testing.T) {
	p := service.NewPicker("default", melbourneEnv(t), core.DefaultShortcuts[core.Date]())
	p.Format.Calendar = p.State.Env().Calendar
	m := New(context.Background(), p)

	assertView(t, m.View(), "Select date")
	typeKeys(m, "c")
	assertView(t, m.View(), "Date (YYYY-MM-DD)")
	typeText(m, "2026-02-07")
	typeKeys(m, "enter")

	if got := highlightedName(t, p); got != "Tomorrow" {
		t.Fatalf("highlighted = %q", got)
	}
	assertView(t, m.View(), "7 February")
}

func TestCommitSavesAndQuits(t *testing.T) {
	store := newStore(t)
	m, p := newRangeModel(t, store)
	typeKeys(m, "l", "enter")

	_, cmd := m.Update(keyMsg("s"))
	if cmd == nil {
		t.Fatalf("commit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("commit did not quit")
	}

	v, ok := m.Committed()
	if !ok || v.From.Day() != 30 {
		t.Fatalf("committed = %v, %v", v, ok)
	}

	hist, err := p.History(context.Background(), 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 1 || hist[0].Shortcut != "last_week" {
		t.Fatalf("history = %+v", hist)
	}
}

func TestCommitWithoutValueRecordsClear(t *testing.T) {
	store := newStore(t)
	m, p := newRangeModel(t, store)

	if _, cmd := m.Update(keyMsg("s")); cmd == nil {
		t.Fatalf("commit returned no command")
	}
	if _, ok := m.Committed(); ok {
		t.Fatalf("empty commit reported a value")
	}

	hist, err := p.History(context.Background(), 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 1 || !hist[0].Cleared {
		t.Fatalf("history = %+v, want one clear", hist)
	}
}

type brokenStore struct{ service.SelectionStore }

func (brokenStore) Insert(context.Context, repository.Selection) error {
	return errors.New("database is locked")
}

func TestCommitFailureStaysOpen(t *testing.T) {
	m, _ := newRangeModel(t, brokenStore{})
	typeKeys(m, "enter")

	if _, cmd := m.Update(keyMsg("s")); cmd != nil {
		t.Fatalf("failed commit returned a command")
	}
	if _, ok := m.Committed(); ok {
		t.Fatalf("failed commit reported a value")
	}
	if !m.statusErr || !strings.Contains(m.status, "database is locked") {
		t.Fatalf("status = %q", m.status)
	}
	assertView(t, m.View(), "save:")
}

func TestQuitWithoutSaving(t *testing.T) {
	m, _ := newRangeModel(t, nil)
	typeKeys(m, "enter")
	_, cmd := m.Update(keyMsg("q"))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit")
	}
	if _, ok := m.Committed(); ok {
		t.Fatalf("quit reported a committed value")
	}
	if m.View() != "" {
		t.Fatalf("view after quit = %q", m.View())
	}
}

func TestInitRestoresLastSelection(t *testing.T) {
	store := newStore(t)
	first, _ := newRangeModel(t, store)
	typeKeys(first, "3")
	first.Update(keyMsg("s"))

	m, p := newRangeModel(t, store)
	m.Update(m.Init()())

	if got := highlightedName(t, p); got != "Last month" {
		t.Fatalf("highlighted = %q", got)
	}
	if m.bar.Cursor() != 2 {
		t.Fatalf("cursor = %d, want 2", m.bar.Cursor())
	}
	assertView(t, m.View(), "Restored last selection.")
}

func TestConfigChangedSwapsDisplay(t *testing.T) {
	m, p := newRangeModel(t, nil)
	typeKeys(m, "enter")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	cfg.Display.Format = "Jan 2"
	cfg.Picker.Shortcuts = []string{"today", "this_week"}
	m.Update(ConfigChangedMsg{Config: cfg})

	if m.bar.Len() != 2 {
		t.Fatalf("bar len = %d, want 2", m.bar.Len())
	}
	assertView(t, m.View(), "[This week]", "Feb 6", "Configuration reloaded.")
	// Calendar stays on the picker's own.
	if p.Format.Calendar != p.State.Env().Calendar {
		t.Fatalf("format calendar replaced by reload")
	}

	m.Update(ConfigChangedMsg{Err: context.Canceled})
	if !m.statusErr {
		t.Fatalf("reload error not shown")
	}
}
