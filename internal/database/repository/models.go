package repository

import "time"

// Selection represents a selections row. From and To are nil on rows that
// record a clear.
type Selection struct {
	ID        string
	PickerID  string
	Mode      string
	From      *time.Time
	To        *time.Time
	Shortcut  *string
	Cleared   bool
	CreatedAt time.Time
}
