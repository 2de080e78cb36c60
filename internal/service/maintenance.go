package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/datepick/internal/database"
)

// MaintenanceService houses destructive actions surfaced through the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset deletes the stored history of one picker, or of all pickers when
// pickerID is empty. The schema is kept.
func (s *MaintenanceService) Reset(ctx context.Context, pickerID string) (int64, error) {
	if s.DB == nil {
		return 0, fmt.Errorf("maintenance: db not configured")
	}
	var removed int64
	if err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		var (
			res sql.Result
			err error
		)
		if pickerID == "" {
			res, err = tx.ExecContext(ctx, "DELETE FROM selections")
		} else {
			res, err = tx.ExecContext(ctx, "DELETE FROM selections WHERE picker_id = ?", pickerID)
		}
		if err != nil {
			return fmt.Errorf("reset selections: %w", err)
		}
		removed, err = res.RowsAffected()
		return err
	}); err != nil {
		return 0, err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return removed, nil
}
