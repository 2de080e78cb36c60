package tui

import (
	"strconv"
	"strings"
)

type BarAction int

const (
	BarActionNone BarAction = iota
	BarActionMoved
	BarActionApply
)

type BarResult struct {
	Action BarAction
	Index  int
}

// ShortcutBar is the row of shortcut chips. It only tracks the cursor; the
// chip matching the current value is passed in when rendering.
type ShortcutBar struct {
	labels []string
	cursor int
}

func NewShortcutBar(labels []string) *ShortcutBar {
	b := &ShortcutBar{}
	b.SetLabels(labels)
	return b
}

func (b *ShortcutBar) Len() int {
	if b == nil {
		return 0
	}
	return len(b.labels)
}

func (b *ShortcutBar) Cursor() int {
	if b == nil {
		return 0
	}
	return b.cursor
}

func (b *ShortcutBar) SetLabels(labels []string) {
	if b == nil {
		return
	}
	b.labels = append([]string(nil), labels...)
	b.SetCursor(b.cursor)
}

// SetCursor moves the cursor, clamping it to the chip range.
func (b *ShortcutBar) SetCursor(i int) {
	if b == nil {
		return
	}
	switch {
	case len(b.labels) == 0 || i < 0:
		b.cursor = 0
	case i >= len(b.labels):
		b.cursor = len(b.labels) - 1
	default:
		b.cursor = i
	}
}

// HandleKey moves the cursor with h/l or the arrow keys, wrapping at both
// ends. Enter applies the chip under the cursor; 1-9 apply a chip directly.
func (b *ShortcutBar) HandleKey(keyName string) BarResult {
	if b == nil || len(b.labels) == 0 {
		return BarResult{Action: BarActionNone}
	}
	n := len(b.labels)
	switch keyName {
	case "h", "left":
		b.cursor = (b.cursor - 1 + n) % n
		return BarResult{Action: BarActionMoved, Index: b.cursor}
	case "l", "right":
		b.cursor = (b.cursor + 1) % n
		return BarResult{Action: BarActionMoved, Index: b.cursor}
	case "enter":
		return BarResult{Action: BarActionApply, Index: b.cursor}
	}
	if d, err := strconv.Atoi(keyName); err == nil && len(keyName) == 1 && d >= 1 && d <= n {
		b.cursor = d - 1
		return BarResult{Action: BarActionApply, Index: b.cursor}
	}
	return BarResult{Action: BarActionNone, Index: b.cursor}
}

// Render draws the chips. selected is the index of the chip matching the
// current value, or -1.
func (b *ShortcutBar) Render(selected int, focused bool) string {
	if b == nil || len(b.labels) == 0 {
		return placeholderStyle.Render("no shortcuts configured")
	}
	parts := make([]string, 0, len(b.labels))
	for i, label := range b.labels {
		text := "[" + label + "]"
		cursor := focused && i == b.cursor
		if cursor {
			text = ">" + text
		}
		switch {
		case i == selected:
			parts = append(parts, chipSelectedStyle.Render(text))
		case cursor:
			parts = append(parts, chipCursorStyle.Render(text))
		default:
			parts = append(parts, chipStyle.Render(text))
		}
	}
	return strings.Join(parts, "")
}
