package repository

import (
	"context"
	"database/sql"
	"time"
)

const selectionColumns = `id, picker_id, mode, from_at, to_at, shortcut, cleared, created_at`

// SelectionRepo records committed and cleared picker values.
type SelectionRepo struct {
	db *sql.DB
}

func NewSelectionRepo(db *sql.DB) *SelectionRepo { return &SelectionRepo{db: db} }

func (r *SelectionRepo) Insert(ctx context.Context, s Selection) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO selections(`+selectionColumns+`)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.PickerID, s.Mode, s.From, s.To, s.Shortcut, s.Cleared, s.CreatedAt)
	return err
}

// Latest returns the most recent row for the picker, or nil when none exists.
func (r *SelectionRepo) Latest(ctx context.Context, pickerID string) (*Selection, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectionColumns+` FROM selections WHERE picker_id = ? ORDER BY seq DESC LIMIT 1`, pickerID)
	s, err := scanSelection(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// History lists rows newest first. A limit <= 0 returns everything.
func (r *SelectionRepo) History(ctx context.Context, pickerID string, limit int) ([]Selection, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectionColumns+` FROM selections WHERE picker_id = ? ORDER BY seq DESC LIMIT ?`, pickerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Selection
	for rows.Next() {
		s, err := scanSelection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Prune keeps the newest keep rows of the picker and deletes the rest.
func (r *SelectionRepo) Prune(ctx context.Context, pickerID string, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := r.db.ExecContext(ctx, `
	DELETE FROM selections
	WHERE picker_id = ?
	  AND seq NOT IN (SELECT seq FROM selections WHERE picker_id = ? ORDER BY seq DESC LIMIT ?)
	`, pickerID, pickerID, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSelection(row scanner) (Selection, error) {
	var s Selection
	err := row.Scan(&s.ID, &s.PickerID, &s.Mode, &s.From, &s.To, &s.Shortcut, &s.Cleared, &s.CreatedAt)
	return s, err
}
